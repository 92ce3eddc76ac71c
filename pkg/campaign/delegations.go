package campaign

import (
	"errors"

	"github.com/esg-framework/esg-backend/pkg/campaign/engine"
	campaignTypes "github.com/esg-framework/esg-backend/pkg/campaign/types"
)

var (
	ErrDelegationTargetMissing = errors.New("delegation requires a target user and a question")
	ErrNotDelegationOwner      = errors.New("only the lead responder may manage delegations")
)

// CreateDelegation grants single-question write access to another user. Only
// the lead responder (or a platform admin) may delegate.
func CreateDelegation(instanceID string, assignmentID string, userID string, flags engine.RoleFlags, questionID string, toUserID string, instructions string) (campaignTypes.Delegation, error) {
	assignment, err := campaignDBService.GetCampaignAssignmentByID(instanceID, assignmentID)
	if err != nil {
		return campaignTypes.Delegation{}, err
	}

	if !flags.IsPlatformAdmin && userID != assignment.LeadResponderID {
		return campaignTypes.Delegation{}, ErrNotDelegationOwner
	}
	if toUserID == "" || questionID == "" {
		return campaignTypes.Delegation{}, ErrDelegationTargetMissing
	}

	questionnaire, err := campaignDBService.GetQuestionnaireVersion(instanceID, assignment.QuestionnaireKey, assignment.VersionID)
	if err != nil {
		return campaignTypes.Delegation{}, err
	}
	if _, ok := findQuestion(questionnaire.Questions, questionID); !ok {
		return campaignTypes.Delegation{}, engine.ErrUnknownQuestion
	}

	delegation, err := campaignDBService.CreateDelegation(instanceID, campaignTypes.Delegation{
		CampaignAssignmentID: assignmentID,
		QuestionID:           questionID,
		FromUserID:           userID,
		ToUserID:             toUserID,
		Instructions:         instructions,
	})
	if err != nil {
		return campaignTypes.Delegation{}, err
	}

	if notificationSender != nil {
		notificationSender.OnDelegationCreated(instanceID, delegation)
	}
	return delegation, nil
}

// CancelDelegation deactivates a delegation. The record stays for history.
func CancelDelegation(instanceID string, assignmentID string, userID string, flags engine.RoleFlags, delegationID string) error {
	assignment, err := campaignDBService.GetCampaignAssignmentByID(instanceID, assignmentID)
	if err != nil {
		return err
	}
	if !flags.IsPlatformAdmin && userID != assignment.LeadResponderID {
		return ErrNotDelegationOwner
	}
	return campaignDBService.CancelDelegation(instanceID, delegationID)
}
