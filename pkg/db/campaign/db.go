package campaign

import (
	"context"
	"log/slog"
	"time"

	"github.com/esg-framework/esg-backend/pkg/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collection names
const (
	COLLECTION_NAME_QUESTIONNAIRES       = "questionnaires"
	COLLECTION_NAME_CAMPAIGN_ASSIGNMENTS = "campaignAssignments"
	COLLECTION_NAME_RESPONSES            = "responses"
	COLLECTION_NAME_DELEGATIONS          = "delegations"
	COLLECTION_NAME_QUESTION_ASSIGNMENTS = "questionAssignments"
	COLLECTION_NAME_REVIEW_ASSIGNMENTS   = "reviewAssignments"
	COLLECTION_NAME_REVIEW_COMMENTS      = "reviewComments"
	COLLECTION_NAME_PERMISSIONS          = "permissions"
)

type CampaignDBService struct {
	DBClient        *mongo.Client
	timeout         int
	noCursorTimeout bool
	DBNamePrefix    string
	InstanceIDs     []string
}

func NewCampaignDBService(configs db.DBConfig) (*CampaignDBService, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer cancel()

	dbClient, err := mongo.Connect(ctx,
		options.Client().ApplyURI(configs.URI),
		options.Client().SetMaxConnIdleTime(time.Duration(configs.IdleConnTimeout)*time.Second),
		options.Client().SetMaxPoolSize(configs.MaxPoolSize),
	)
	if err != nil {
		return nil, err
	}

	ctx, conCancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	err = dbClient.Ping(ctx, nil)
	defer conCancel()
	if err != nil {
		return nil, err
	}

	campaignDBSc := &CampaignDBService{
		DBClient:        dbClient,
		timeout:         configs.Timeout,
		noCursorTimeout: configs.NoCursorTimeout,
		DBNamePrefix:    configs.DBNamePrefix,
		InstanceIDs:     configs.InstanceIDs,
	}

	if configs.RunIndexCreation {
		if err := campaignDBSc.ensureIndexes(); err != nil {
			slog.Error("Error ensuring indexes for campaign DB", slog.String("error", err.Error()))
		}
	}

	return campaignDBSc, nil
}

func (dbService *CampaignDBService) getDBName(instanceID string) string {
	return dbService.DBNamePrefix + instanceID + "_campaignDB"
}

func (dbService *CampaignDBService) collectionQuestionnaires(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_QUESTIONNAIRES)
}

func (dbService *CampaignDBService) collectionCampaignAssignments(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_CAMPAIGN_ASSIGNMENTS)
}

func (dbService *CampaignDBService) collectionResponses(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_RESPONSES)
}

func (dbService *CampaignDBService) collectionDelegations(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_DELEGATIONS)
}

func (dbService *CampaignDBService) collectionQuestionAssignments(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_QUESTION_ASSIGNMENTS)
}

func (dbService *CampaignDBService) collectionReviewAssignments(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_REVIEW_ASSIGNMENTS)
}

func (dbService *CampaignDBService) collectionReviewComments(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_REVIEW_COMMENTS)
}

func (dbService *CampaignDBService) collectionPermissions(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_PERMISSIONS)
}

func (dbService *CampaignDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}

// GetCollectionIndexes exposes the index state of one collection for
// operational diagnostics.
func (dbService *CampaignDBService) GetCollectionIndexes(instanceID string, collectionName string) ([]bson.M, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	collection := dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(collectionName)
	return db.ListCollectionIndexes(ctx, collection)
}
