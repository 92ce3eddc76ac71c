package campaign

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	campaignTypes "github.com/esg-framework/esg-backend/pkg/campaign/types"
)

func TestPublishedQuestionnaireFilter(t *testing.T) {
	t.Run("published questionnaire omits unpublished field on marshal", func(t *testing.T) {
		questionnaire := campaignTypes.Questionnaire{
			QuestionnaireKey: "env2026",
			VersionID:        "v1",
			Published:        time.Now().Unix(),
		}
		raw, err := bson.Marshal(questionnaire)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var doc bson.M
		if err := bson.Unmarshal(raw, &doc); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := doc["unpublished"]; ok {
			t.Error("expected unpublished field to be omitted for published questionnaire")
		}
	})

	t.Run("filter matches absent field as published", func(t *testing.T) {
		filter := publishedQuestionnaireFilter("env2026")
		if filter["questionnaireKey"] != "env2026" {
			t.Errorf("unexpected questionnaireKey filter: %v", filter["questionnaireKey"])
		}
		or, ok := filter["$or"].([]bson.M)
		if !ok {
			t.Fatal("expected $or branch in filter")
		}
		foundZero := false
		foundAbsent := false
		for _, branch := range or {
			if v, ok := branch["unpublished"]; ok {
				switch cond := v.(type) {
				case int:
					if cond == 0 {
						foundZero = true
					}
				case bson.M:
					if exists, ok := cond["$exists"].(bool); ok && !exists {
						foundAbsent = true
					}
				}
			}
		}
		if !foundZero {
			t.Error("expected filter branch for unpublished == 0")
		}
		if !foundAbsent {
			t.Error("expected filter branch for absent unpublished field")
		}
	})
}
