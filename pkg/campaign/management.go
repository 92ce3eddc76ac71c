package campaign

import (
	"errors"
	"time"

	"github.com/esg-framework/esg-backend/pkg/campaign/engine"
	campaignTypes "github.com/esg-framework/esg-backend/pkg/campaign/types"
	"github.com/esg-framework/esg-backend/pkg/utils"
)

var (
	ErrQuestionOrSection       = errors.New("question assignment requires exactly one of questionID or sectionName")
	ErrInvalidQuestionnaireKey = errors.New("questionnaire key must be URL safe")
)

// CreateQuestionnaireVersion validates the embedded dependency edges and
// stores a new published questionnaire version.
func CreateQuestionnaireVersion(instanceID string, questionnaire campaignTypes.Questionnaire) (campaignTypes.Questionnaire, error) {
	if !utils.IsURLSafe(questionnaire.QuestionnaireKey) {
		return campaignTypes.Questionnaire{}, ErrInvalidQuestionnaireKey
	}

	if _, err := engine.BuildDependencyGraph(questionnaire.Questions); err != nil {
		return campaignTypes.Questionnaire{}, err
	}

	if questionnaire.VersionID == "" {
		existing := []string{}
		if current, err := campaignDBService.GetCurrentQuestionnaireVersion(instanceID, questionnaire.QuestionnaireKey); err == nil {
			existing = append(existing, current.VersionID)
		}
		questionnaire.VersionID = utils.GenerateQuestionnaireVersionID(existing)
	}
	if questionnaire.Published == 0 {
		questionnaire.Published = time.Now().Unix()
	}

	return campaignDBService.SaveQuestionnaireVersion(instanceID, questionnaire)
}

// AddQuestionDependency validates the new edge against the stored
// questionnaire before persisting it. Self references and cycles never reach
// the database.
func AddQuestionDependency(instanceID string, questionnaireKey string, versionID string, dep campaignTypes.QuestionDependency) error {
	questionnaire, err := campaignDBService.GetQuestionnaireVersion(instanceID, questionnaireKey, versionID)
	if err != nil {
		return err
	}

	if err := engine.ValidateNewDependency(questionnaire.Questions, dep); err != nil {
		return err
	}

	return campaignDBService.AddQuestionDependency(instanceID, questionnaireKey, versionID, dep)
}

// CreateCampaignAssignment creates the answering instance for one target
// organisation.
func CreateCampaignAssignment(instanceID string, assignment campaignTypes.CampaignAssignment) (campaignTypes.CampaignAssignment, error) {
	if _, err := campaignDBService.GetQuestionnaireVersion(instanceID, assignment.QuestionnaireKey, assignment.VersionID); err != nil {
		return campaignTypes.CampaignAssignment{}, err
	}
	return campaignDBService.CreateCampaignAssignment(instanceID, assignment)
}

// CreateQuestionAssignment grants one user access to one question or to a
// whole section. Exactly one discriminator must be set; section membership
// stays dynamic, so nothing beyond the section name is stored.
func CreateQuestionAssignment(instanceID string, questionAssignment campaignTypes.QuestionAssignment) (campaignTypes.QuestionAssignment, error) {
	hasQuestion := questionAssignment.QuestionID != ""
	hasSection := questionAssignment.SectionName != ""
	if hasQuestion == hasSection {
		return campaignTypes.QuestionAssignment{}, ErrQuestionOrSection
	}

	assignment, err := campaignDBService.GetCampaignAssignmentByID(instanceID, questionAssignment.CampaignAssignmentID)
	if err != nil {
		return campaignTypes.QuestionAssignment{}, err
	}

	if hasQuestion {
		questionnaire, err := campaignDBService.GetQuestionnaireVersion(instanceID, assignment.QuestionnaireKey, assignment.VersionID)
		if err != nil {
			return campaignTypes.QuestionAssignment{}, err
		}
		if _, ok := findQuestion(questionnaire.Questions, questionAssignment.QuestionID); !ok {
			return campaignTypes.QuestionAssignment{}, engine.ErrUnknownQuestion
		}
	}

	return campaignDBService.CreateQuestionAssignment(instanceID, questionAssignment)
}
