package campaign

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	campaignTypes "github.com/esg-framework/esg-backend/pkg/campaign/types"
)

func (dbService *CampaignDBService) CreateQuestionAssignment(instanceID string, questionAssignment campaignTypes.QuestionAssignment) (campaignTypes.QuestionAssignment, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	questionAssignment.CreatedAt = time.Now().Unix()

	res, err := dbService.collectionQuestionAssignments(instanceID).InsertOne(ctx, questionAssignment)
	if err != nil {
		return questionAssignment, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		questionAssignment.ID = oid
	}
	return questionAssignment, nil
}

func (dbService *CampaignDBService) GetQuestionAssignmentsByAssignment(instanceID string, assignmentID string) (questionAssignments []campaignTypes.QuestionAssignment, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"campaignAssignmentID": assignmentID}
	cursor, err := dbService.collectionQuestionAssignments(instanceID).Find(ctx, filter)
	if err != nil {
		return questionAssignments, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &questionAssignments)
	return questionAssignments, err
}

func (dbService *CampaignDBService) DeleteQuestionAssignment(instanceID string, questionAssignmentID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(questionAssignmentID)
	if err != nil {
		return err
	}

	res, err := dbService.collectionQuestionAssignments(instanceID).DeleteOne(ctx, bson.M{"_id": _id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
