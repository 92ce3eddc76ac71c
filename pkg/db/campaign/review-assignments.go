package campaign

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	campaignTypes "github.com/esg-framework/esg-backend/pkg/campaign/types"
)

func (dbService *CampaignDBService) CreateReviewAssignment(instanceID string, reviewAssignment campaignTypes.ReviewAssignment) (campaignTypes.ReviewAssignment, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	if reviewAssignment.Status == "" {
		reviewAssignment.Status = campaignTypes.REVIEW_STATUS_PENDING
	}
	reviewAssignment.CreatedAt = time.Now().Unix()

	res, err := dbService.collectionReviewAssignments(instanceID).InsertOne(ctx, reviewAssignment)
	if err != nil {
		return reviewAssignment, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		reviewAssignment.ID = oid
	}
	return reviewAssignment, nil
}

func (dbService *CampaignDBService) GetReviewAssignmentsByAssignment(instanceID string, assignmentID string) (reviewAssignments []campaignTypes.ReviewAssignment, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"campaignAssignmentID": assignmentID}
	cursor, err := dbService.collectionReviewAssignments(instanceID).Find(ctx, filter)
	if err != nil {
		return reviewAssignments, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &reviewAssignments)
	return reviewAssignments, err
}

func (dbService *CampaignDBService) GetReviewAssignmentByID(instanceID string, reviewAssignmentID string) (reviewAssignment campaignTypes.ReviewAssignment, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(reviewAssignmentID)
	if err != nil {
		return reviewAssignment, err
	}

	err = dbService.collectionReviewAssignments(instanceID).FindOne(ctx, bson.M{"_id": _id}).Decode(&reviewAssignment)
	return reviewAssignment, err
}

func (dbService *CampaignDBService) UpdateReviewAssignmentStatus(instanceID string, reviewAssignmentID string, newStatus string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(reviewAssignmentID)
	if err != nil {
		return err
	}

	res, err := dbService.collectionReviewAssignments(instanceID).UpdateOne(
		ctx,
		bson.M{"_id": _id},
		bson.M{"$set": bson.M{"status": newStatus}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
