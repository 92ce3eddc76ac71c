package engine

import (
	campaignTypes "github.com/esg-framework/esg-backend/pkg/campaign/types"
)

const (
	ASSIGNMENT_EVENT_RESPONSE_SAVED    = "responseSaved"
	ASSIGNMENT_EVENT_SUBMITTED         = "submitted"
	ASSIGNMENT_EVENT_REVIEW_STARTED    = "reviewStarted"
	ASSIGNMENT_EVENT_APPROVED          = "approved"
	ASSIGNMENT_EVENT_CHANGES_REQUESTED = "changesRequested"
)

// allowedTransitions maps current status -> event -> next status.
// ChangesRequested -> InProgress (on the next response write) is the only
// backward transition; the cycle then repeats.
var allowedTransitions = map[string]map[string]string{
	campaignTypes.ASSIGNMENT_STATUS_NOT_STARTED: {
		ASSIGNMENT_EVENT_RESPONSE_SAVED: campaignTypes.ASSIGNMENT_STATUS_IN_PROGRESS,
	},
	campaignTypes.ASSIGNMENT_STATUS_IN_PROGRESS: {
		ASSIGNMENT_EVENT_SUBMITTED: campaignTypes.ASSIGNMENT_STATUS_SUBMITTED,
	},
	campaignTypes.ASSIGNMENT_STATUS_SUBMITTED: {
		ASSIGNMENT_EVENT_REVIEW_STARTED:    campaignTypes.ASSIGNMENT_STATUS_UNDER_REVIEW,
		ASSIGNMENT_EVENT_APPROVED:          campaignTypes.ASSIGNMENT_STATUS_APPROVED,
		ASSIGNMENT_EVENT_CHANGES_REQUESTED: campaignTypes.ASSIGNMENT_STATUS_CHANGES_REQUESTED,
	},
	campaignTypes.ASSIGNMENT_STATUS_UNDER_REVIEW: {
		ASSIGNMENT_EVENT_APPROVED:          campaignTypes.ASSIGNMENT_STATUS_APPROVED,
		ASSIGNMENT_EVENT_CHANGES_REQUESTED: campaignTypes.ASSIGNMENT_STATUS_CHANGES_REQUESTED,
	},
	campaignTypes.ASSIGNMENT_STATUS_CHANGES_REQUESTED: {
		ASSIGNMENT_EVENT_RESPONSE_SAVED: campaignTypes.ASSIGNMENT_STATUS_IN_PROGRESS,
	},
}

// Transition validates and applies one lifecycle event to the current
// assignment status, returning the new status.
func Transition(currentStatus string, event string) (string, error) {
	events, ok := allowedTransitions[currentStatus]
	if !ok {
		return "", ErrInvalidTransition
	}
	next, ok := events[event]
	if !ok {
		return "", ErrInvalidTransition
	}
	return next, nil
}

// CheckWriteAdmission rejects response writes against an assignment that is
// not open for answering. Platform admins may always write; everyone else is
// limited to the not-started, in-progress and changes-requested phases.
func CheckWriteAdmission(assignment campaignTypes.CampaignAssignment, flags RoleFlags) error {
	if flags.IsPlatformAdmin {
		return nil
	}
	switch assignment.Status {
	case campaignTypes.ASSIGNMENT_STATUS_NOT_STARTED,
		campaignTypes.ASSIGNMENT_STATUS_IN_PROGRESS,
		campaignTypes.ASSIGNMENT_STATUS_CHANGES_REQUESTED:
		return nil
	default:
		return ErrAssignmentLocked
	}
}
