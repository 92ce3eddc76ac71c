package campaign

import (
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (dbService *CampaignDBService) ensureIndexes() error {
	slog.Debug("Ensuring indexes for campaign DB")
	for _, instanceID := range dbService.InstanceIDs {
		if err := dbService.createIndexes(instanceID); err != nil {
			slog.Error("Error creating indexes for campaign DB", slog.String("instanceID", instanceID), slog.String("error", err.Error()))
		}
	}
	return nil
}

func (dbService *CampaignDBService) createIndexes(instanceID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionQuestionnaires(instanceID).Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys: bson.D{
				{Key: "questionnaireKey", Value: 1},
				{Key: "versionID", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	)
	if err != nil {
		return err
	}

	_, err = dbService.collectionResponses(instanceID).Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys: bson.D{
				{Key: "campaignAssignmentID", Value: 1},
				{Key: "questionID", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	)
	if err != nil {
		return err
	}

	_, err = dbService.collectionDelegations(instanceID).Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys: bson.D{
				{Key: "campaignAssignmentID", Value: 1},
				{Key: "toUserID", Value: 1},
			},
		},
	)
	if err != nil {
		return err
	}

	_, err = dbService.collectionQuestionAssignments(instanceID).Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys: bson.D{
				{Key: "campaignAssignmentID", Value: 1},
				{Key: "assignedUserID", Value: 1},
			},
		},
	)
	if err != nil {
		return err
	}

	_, err = dbService.collectionReviewAssignments(instanceID).Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys: bson.D{
				{Key: "campaignAssignmentID", Value: 1},
			},
		},
	)
	if err != nil {
		return err
	}

	_, err = dbService.collectionReviewComments(instanceID).Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys: bson.D{
				{Key: "reviewAssignmentID", Value: 1},
				{Key: "responseID", Value: 1},
				{Key: "createdAt", Value: 1},
			},
		},
	)
	if err != nil {
		return err
	}

	_, err = dbService.collectionPermissions(instanceID).Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys: bson.D{
				{Key: "subjectId", Value: 1},
				{Key: "subjectType", Value: 1},
				{Key: "resourceType", Value: 1},
				{Key: "resourceKey", Value: 1},
				{Key: "action", Value: 1},
			},
		},
	)
	return err
}
