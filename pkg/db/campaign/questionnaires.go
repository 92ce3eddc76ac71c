package campaign

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	campaignTypes "github.com/esg-framework/esg-backend/pkg/campaign/types"
)

func (dbService *CampaignDBService) SaveQuestionnaireVersion(instanceID string, questionnaire campaignTypes.Questionnaire) (campaignTypes.Questionnaire, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	res, err := dbService.collectionQuestionnaires(instanceID).InsertOne(ctx, questionnaire)
	if err != nil {
		return questionnaire, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		questionnaire.ID = oid
	}
	return questionnaire, nil
}

func (dbService *CampaignDBService) GetQuestionnaireVersion(instanceID string, questionnaireKey string, versionID string) (questionnaire campaignTypes.Questionnaire, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"questionnaireKey": questionnaireKey,
		"versionID":        versionID,
	}
	err = dbService.collectionQuestionnaires(instanceID).FindOne(ctx, filter).Decode(&questionnaire)
	return questionnaire, err
}

// publishedQuestionnaireFilter matches questionnaire versions that were never
// unpublished. The unpublished field is omitted on insert when zero, so absence
// counts as published too.
func publishedQuestionnaireFilter(questionnaireKey string) bson.M {
	return bson.M{
		"questionnaireKey": questionnaireKey,
		"$or": []bson.M{
			{"unpublished": 0},
			{"unpublished": bson.M{"$exists": false}},
		},
	}
}

func (dbService *CampaignDBService) GetCurrentQuestionnaireVersion(instanceID string, questionnaireKey string) (questionnaire campaignTypes.Questionnaire, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := publishedQuestionnaireFilter(questionnaireKey)
	opts := options.FindOne().SetSort(bson.M{"published": -1})
	err = dbService.collectionQuestionnaires(instanceID).FindOne(ctx, filter, opts).Decode(&questionnaire)
	return questionnaire, err
}

// AddQuestionDependency appends a validated dependency edge to the embedded
// question definition. Graph validation happens in the campaign service
// before this is called.
func (dbService *CampaignDBService) AddQuestionDependency(instanceID string, questionnaireKey string, versionID string, dep campaignTypes.QuestionDependency) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"questionnaireKey": questionnaireKey,
		"versionID":        versionID,
		"questions.id":     dep.QuestionID,
	}
	update := bson.M{
		"$push": bson.M{
			"questions.$.dependencies": dep,
		},
	}
	res, err := dbService.collectionQuestionnaires(instanceID).UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
