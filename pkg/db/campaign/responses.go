package campaign

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	campaignTypes "github.com/esg-framework/esg-backend/pkg/campaign/types"
)

func (dbService *CampaignDBService) GetResponsesByAssignment(instanceID string, assignmentID string) (responses []campaignTypes.Response, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"campaignAssignmentID": assignmentID}
	cursor, err := dbService.collectionResponses(instanceID).Find(ctx, filter)
	if err != nil {
		return responses, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &responses)
	return responses, err
}

func (dbService *CampaignDBService) GetResponseByID(instanceID string, responseID string) (response campaignTypes.Response, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(responseID)
	if err != nil {
		return response, err
	}

	err = dbService.collectionResponses(instanceID).FindOne(ctx, bson.M{"_id": _id}).Decode(&response)
	return response, err
}

// SaveResponseValue upserts the response row for one (assignment, question)
// pair. The row is created on first write and only its value fields change
// afterwards, so response IDs stay stable for review comments and change
// tracking.
func (dbService *CampaignDBService) SaveResponseValue(instanceID string, assignmentID string, questionID string, userID string, value campaignTypes.ResponseValue) (response campaignTypes.Response, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"campaignAssignmentID": assignmentID,
		"questionID":           questionID,
	}
	update := bson.M{
		"$set": bson.M{
			"textValue":      value.TextValue,
			"numericValue":   value.NumericValue,
			"dateValue":      value.DateValue,
			"booleanValue":   value.BooleanValue,
			"selectedValues": value.SelectedValues,
			"updatedAt":      time.Now().Unix(),
			"updatedBy":      userID,
		},
		"$setOnInsert": bson.M{
			"campaignAssignmentID": assignmentID,
			"questionID":           questionID,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err = dbService.collectionResponses(instanceID).FindOneAndUpdate(ctx, filter, update, opts).Decode(&response)
	return response, err
}

// ClearResponseValue blanks all value fields of an existing response row.
// The row itself is preserved.
func (dbService *CampaignDBService) ClearResponseValue(instanceID string, assignmentID string, questionID string, userID string) (response campaignTypes.Response, err error) {
	return dbService.SaveResponseValue(instanceID, assignmentID, questionID, userID, campaignTypes.ResponseValue{})
}
