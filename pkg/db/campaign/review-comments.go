package campaign

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	campaignTypes "github.com/esg-framework/esg-backend/pkg/campaign/types"
)

func (dbService *CampaignDBService) CreateReviewComment(instanceID string, comment campaignTypes.ReviewComment) (campaignTypes.ReviewComment, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	comment.CreatedAt = time.Now().Unix()

	res, err := dbService.collectionReviewComments(instanceID).InsertOne(ctx, comment)
	if err != nil {
		return comment, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		comment.ID = oid
	}
	return comment, nil
}

// GetReviewCommentsForReviewAssignments loads all comments belonging to the
// given review assignments (one assignment snapshot's worth of comments).
func (dbService *CampaignDBService) GetReviewCommentsForReviewAssignments(instanceID string, reviewAssignmentIDs []string) (comments []campaignTypes.ReviewComment, err error) {
	if len(reviewAssignmentIDs) == 0 {
		return comments, nil
	}

	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"reviewAssignmentID": bson.M{"$in": reviewAssignmentIDs}}
	cursor, err := dbService.collectionReviewComments(instanceID).Find(ctx, filter)
	if err != nil {
		return comments, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &comments)
	return comments, err
}
