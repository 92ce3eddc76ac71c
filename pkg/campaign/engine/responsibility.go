package engine

import (
	campaignTypes "github.com/esg-framework/esg-backend/pkg/campaign/types"
)

const (
	RESPONSIBILITY_MODE_FULL      = "full"
	RESPONSIBILITY_MODE_DELEGATED = "delegated"
	RESPONSIBILITY_MODE_ASSIGNED  = "assigned"

	// RESPONSIBILITY_MODE_REVIEWER marks a read-only rendering for a user
	// whose only grants on the assignment are review assignments. It never
	// results from ResolveResponsibility and carries no write access.
	RESPONSIBILITY_MODE_REVIEWER = "reviewer"
)

// RoleFlags carries the requesting user's platform roles. They are resolved
// by the auth layer; the engine only consumes them.
type RoleFlags struct {
	IsPlatformAdmin bool
	IsOrgAdmin      bool
}

// Responsibility is the resolved grant set of one user on one assignment.
// Mode only affects how the UI frames the question set (for example whether
// delegation instructions are shown); write access is always decided by
// membership in QuestionIDs.
type Responsibility struct {
	QuestionIDs map[string]struct{}
	Mode        string
}

// CanWrite reports whether the user may write the given question.
func (r Responsibility) CanWrite(questionID string) bool {
	_, ok := r.QuestionIDs[questionID]
	return ok
}

// ResolveResponsibility computes the set of questions the user may read and
// write on this assignment, and the control mode. Platform admins and the
// lead responder get the full question set. Otherwise grants come from active
// delegations and from question assignments (direct or section-scoped, with
// section membership resolved live). A user holding both kinds gets their
// union. No grants at all means the caller must deny access.
func ResolveResponsibility(snapshot AssignmentSnapshot, userID string, flags RoleFlags) (Responsibility, error) {
	if flags.IsPlatformAdmin || userID == snapshot.Assignment.LeadResponderID {
		all := make(map[string]struct{}, len(snapshot.Questions))
		for _, q := range snapshot.Questions {
			all[q.ID] = struct{}{}
		}
		return Responsibility{QuestionIDs: all, Mode: RESPONSIBILITY_MODE_FULL}, nil
	}

	delegatedIDs := map[string]struct{}{}
	for _, d := range snapshot.Delegations {
		if d.IsActive && d.ToUserID == userID {
			delegatedIDs[d.QuestionID] = struct{}{}
		}
	}

	assignedIDs := map[string]struct{}{}
	for _, qa := range snapshot.QuestionAssignments {
		if qa.AssignedUserID != userID {
			continue
		}
		if qa.QuestionID != "" {
			assignedIDs[qa.QuestionID] = struct{}{}
			continue
		}
		for _, memberID := range snapshot.SectionMembers(qa.SectionName) {
			assignedIDs[memberID] = struct{}{}
		}
	}

	if len(delegatedIDs) > 0 && len(assignedIDs) == 0 {
		return Responsibility{QuestionIDs: delegatedIDs, Mode: RESPONSIBILITY_MODE_DELEGATED}, nil
	}

	if len(assignedIDs) > 0 {
		// Both grant kinds may coexist; the question set is their union.
		for id := range delegatedIDs {
			assignedIDs[id] = struct{}{}
		}
		return Responsibility{QuestionIDs: assignedIDs, Mode: RESPONSIBILITY_MODE_ASSIGNED}, nil
	}

	return Responsibility{}, ErrForbidden
}

// ReviewerQuestionIDs computes the questions a reviewer may read on this
// assignment, derived from their review assignments. Question scope covers
// the one question, section scope its current members, assignment scope the
// whole question set. An empty result means the user reviews nothing here.
func ReviewerQuestionIDs(snapshot AssignmentSnapshot, userID string) map[string]struct{} {
	ids := map[string]struct{}{}
	for _, ra := range snapshot.ReviewAssignments {
		if ra.ReviewerID != userID {
			continue
		}
		switch ra.Scope {
		case campaignTypes.REVIEW_SCOPE_QUESTION:
			ids[ra.QuestionID] = struct{}{}
		case campaignTypes.REVIEW_SCOPE_SECTION:
			for _, memberID := range snapshot.SectionMembers(ra.SectionName) {
				ids[memberID] = struct{}{}
			}
		case campaignTypes.REVIEW_SCOPE_ASSIGNMENT:
			for _, q := range snapshot.Questions {
				ids[q.ID] = struct{}{}
			}
		}
	}
	return ids
}

// DelegationCompletionAt decides the delegation completion marker after a
// write. Saving a value under delegated control marks the delegation complete
// at now, clearing the answer resets the marker to zero. Writes under any
// other control mode never touch the marker.
func DelegationCompletionAt(mode string, value campaignTypes.ResponseValue, now int64) (completedAt int64, applies bool) {
	if mode != RESPONSIBILITY_MODE_DELEGATED {
		return 0, false
	}
	if value.IsEmpty() {
		return 0, true
	}
	return now, true
}
