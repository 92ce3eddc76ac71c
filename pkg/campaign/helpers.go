package campaign

import (
	"github.com/esg-framework/esg-backend/pkg/campaign/engine"
	campaignTypes "github.com/esg-framework/esg-backend/pkg/campaign/types"
)

// loadAssignmentSnapshot gathers everything the engine needs about one
// assignment into a single in-memory snapshot.
func loadAssignmentSnapshot(instanceID string, assignmentID string) (snapshot engine.AssignmentSnapshot, err error) {
	assignment, err := campaignDBService.GetCampaignAssignmentByID(instanceID, assignmentID)
	if err != nil {
		return snapshot, err
	}

	questionnaire, err := campaignDBService.GetQuestionnaireVersion(instanceID, assignment.QuestionnaireKey, assignment.VersionID)
	if err != nil {
		return snapshot, err
	}

	responses, err := campaignDBService.GetResponsesByAssignment(instanceID, assignmentID)
	if err != nil {
		return snapshot, err
	}

	delegations, err := campaignDBService.GetDelegationsByAssignment(instanceID, assignmentID)
	if err != nil {
		return snapshot, err
	}

	questionAssignments, err := campaignDBService.GetQuestionAssignmentsByAssignment(instanceID, assignmentID)
	if err != nil {
		return snapshot, err
	}

	reviewAssignments, err := campaignDBService.GetReviewAssignmentsByAssignment(instanceID, assignmentID)
	if err != nil {
		return snapshot, err
	}

	reviewAssignmentIDs := make([]string, len(reviewAssignments))
	for i, ra := range reviewAssignments {
		reviewAssignmentIDs[i] = ra.ID.Hex()
	}
	reviewComments, err := campaignDBService.GetReviewCommentsForReviewAssignments(instanceID, reviewAssignmentIDs)
	if err != nil {
		return snapshot, err
	}

	return engine.AssignmentSnapshot{
		Assignment:          assignment,
		Questions:           questionnaire.Questions,
		Responses:           responses,
		Delegations:         delegations,
		QuestionAssignments: questionAssignments,
		ReviewAssignments:   reviewAssignments,
		ReviewComments:      reviewComments,
	}, nil
}

func findQuestion(questions []campaignTypes.Question, questionID string) (campaignTypes.Question, bool) {
	for _, q := range questions {
		if q.ID == questionID {
			return q, true
		}
	}
	return campaignTypes.Question{}, false
}

func replaceResponse(responses []campaignTypes.Response, updated campaignTypes.Response) []campaignTypes.Response {
	for i, r := range responses {
		if r.QuestionID == updated.QuestionID {
			responses[i] = updated
			return responses
		}
	}
	return append(responses, updated)
}

func activeDelegationFor(snapshot engine.AssignmentSnapshot, questionID string, userID string) *campaignTypes.Delegation {
	for i := range snapshot.Delegations {
		d := &snapshot.Delegations[i]
		if d.IsActive && d.QuestionID == questionID && d.ToUserID == userID {
			return d
		}
	}
	return nil
}

// validateValueForQuestionType enforces that the populated value field
// matches the question type (value fields are type-exclusive).
func validateValueForQuestionType(question campaignTypes.Question, value campaignTypes.ResponseValue) error {
	switch question.QuestionType {
	case campaignTypes.QUESTION_TYPE_NUMBER:
		if value.NumericValue == nil {
			return ErrValueTypeMismatch
		}
	case campaignTypes.QUESTION_TYPE_DATE:
		if value.DateValue == 0 {
			return ErrValueTypeMismatch
		}
	case campaignTypes.QUESTION_TYPE_YES_NO:
		if value.BooleanValue == nil {
			return ErrValueTypeMismatch
		}
	case campaignTypes.QUESTION_TYPE_SELECT, campaignTypes.QUESTION_TYPE_RADIO:
		if len(value.SelectedValues) != 1 {
			return ErrValueTypeMismatch
		}
	case campaignTypes.QUESTION_TYPE_MULTISELECT, campaignTypes.QUESTION_TYPE_CHECKBOX:
		if len(value.SelectedValues) == 0 {
			return ErrValueTypeMismatch
		}
	default:
		// text, longText and fileUpload references are carried as text
		if value.TextValue == "" {
			return ErrValueTypeMismatch
		}
	}
	return nil
}
