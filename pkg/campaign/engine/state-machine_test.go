package engine

import (
	"errors"
	"testing"

	campaignTypes "github.com/esg-framework/esg-backend/pkg/campaign/types"
)

func TestTransition(t *testing.T) {
	cases := []struct {
		name    string
		current string
		event   string
		want    string
		wantErr bool
	}{
		{"first write starts the assignment", campaignTypes.ASSIGNMENT_STATUS_NOT_STARTED, ASSIGNMENT_EVENT_RESPONSE_SAVED, campaignTypes.ASSIGNMENT_STATUS_IN_PROGRESS, false},
		{"submit from in progress", campaignTypes.ASSIGNMENT_STATUS_IN_PROGRESS, ASSIGNMENT_EVENT_SUBMITTED, campaignTypes.ASSIGNMENT_STATUS_SUBMITTED, false},
		{"review started", campaignTypes.ASSIGNMENT_STATUS_SUBMITTED, ASSIGNMENT_EVENT_REVIEW_STARTED, campaignTypes.ASSIGNMENT_STATUS_UNDER_REVIEW, false},
		{"approval from under review", campaignTypes.ASSIGNMENT_STATUS_UNDER_REVIEW, ASSIGNMENT_EVENT_APPROVED, campaignTypes.ASSIGNMENT_STATUS_APPROVED, false},
		{"changes requested from under review", campaignTypes.ASSIGNMENT_STATUS_UNDER_REVIEW, ASSIGNMENT_EVENT_CHANGES_REQUESTED, campaignTypes.ASSIGNMENT_STATUS_CHANGES_REQUESTED, false},
		{"rework reopens the assignment", campaignTypes.ASSIGNMENT_STATUS_CHANGES_REQUESTED, ASSIGNMENT_EVENT_RESPONSE_SAVED, campaignTypes.ASSIGNMENT_STATUS_IN_PROGRESS, false},
		{"submit from not started is invalid", campaignTypes.ASSIGNMENT_STATUS_NOT_STARTED, ASSIGNMENT_EVENT_SUBMITTED, "", true},
		{"approval is terminal", campaignTypes.ASSIGNMENT_STATUS_APPROVED, ASSIGNMENT_EVENT_RESPONSE_SAVED, "", true},
		{"unknown status", "archived", ASSIGNMENT_EVENT_SUBMITTED, "", true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Transition(c.current, c.event)
			if c.wantErr {
				if !errors.Is(err, ErrInvalidTransition) {
					t.Errorf("expected invalid transition, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %s", err.Error())
				return
			}
			if got != c.want {
				t.Errorf("unexpected new status: %s", got)
			}
		})
	}
}

func TestCheckWriteAdmission(t *testing.T) {
	t.Run("open phases accept writes", func(t *testing.T) {
		for _, status := range []string{
			campaignTypes.ASSIGNMENT_STATUS_NOT_STARTED,
			campaignTypes.ASSIGNMENT_STATUS_IN_PROGRESS,
			campaignTypes.ASSIGNMENT_STATUS_CHANGES_REQUESTED,
		} {
			assignment := campaignTypes.CampaignAssignment{Status: status}
			if err := CheckWriteAdmission(assignment, RoleFlags{}); err != nil {
				t.Errorf("unexpected error for status %s: %s", status, err.Error())
			}
		}
	})

	t.Run("submitted assignment is locked for non admins", func(t *testing.T) {
		assignment := campaignTypes.CampaignAssignment{Status: campaignTypes.ASSIGNMENT_STATUS_SUBMITTED}
		err := CheckWriteAdmission(assignment, RoleFlags{IsOrgAdmin: true})
		if !errors.Is(err, ErrAssignmentLocked) {
			t.Errorf("expected assignment locked, got: %v", err)
		}
	})

	t.Run("platform admin bypasses the lock", func(t *testing.T) {
		assignment := campaignTypes.CampaignAssignment{Status: campaignTypes.ASSIGNMENT_STATUS_UNDER_REVIEW}
		if err := CheckWriteAdmission(assignment, RoleFlags{IsPlatformAdmin: true}); err != nil {
			t.Errorf("unexpected error: %s", err.Error())
		}
	})
}
