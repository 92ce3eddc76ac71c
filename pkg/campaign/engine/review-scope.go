package engine

import (
	campaignTypes "github.com/esg-framework/esg-backend/pkg/campaign/types"
)

// ReviewResolution is the effective review state for one response after
// reconciling scope-level review assignments with response-specific comments.
type ReviewResolution struct {
	IsAssignedForReview bool   `json:"isAssignedForReview"`
	EffectiveStatus     string `json:"effectiveStatus,omitempty"`
	ReviewAssignmentID  string `json:"reviewAssignmentId,omitempty"`
	ReviewerID          string `json:"reviewerId,omitempty"`
}

// ResolveReviewStatus derives a response's effective review status. Scope
// precedence is question > section > assignment, first match wins. For a
// question-scoped match the review assignment's own status applies directly.
// For broader scopes the most recent comment on the response is
// authoritative; without comments only a blanket approval (and only on an
// answered response) or an in-review status propagates. A section or
// assignment level changes-requested without a comment carries no actionable
// information for the responder, so it resolves to no status rather than
// flagging every response.
func ResolveReviewStatus(
	reviewAssignments []campaignTypes.ReviewAssignment,
	reviewComments []campaignTypes.ReviewComment,
	question campaignTypes.Question,
	response *campaignTypes.Response,
) ReviewResolution {
	matched := matchReviewAssignment(reviewAssignments, question)
	if matched == nil {
		return ReviewResolution{}
	}

	resolution := ReviewResolution{
		IsAssignedForReview: true,
		ReviewAssignmentID:  matched.ID.Hex(),
		ReviewerID:          matched.ReviewerID,
	}

	if matched.Scope == campaignTypes.REVIEW_SCOPE_QUESTION {
		resolution.EffectiveStatus = matched.Status
		return resolution
	}

	if latest := latestCommentForResponse(reviewComments, response); latest != nil {
		resolution.EffectiveStatus = statusFromAction(latest.ActionTaken)
		return resolution
	}

	switch matched.Status {
	case campaignTypes.REVIEW_STATUS_APPROVED:
		if response != nil && response.IsAnswered() {
			resolution.EffectiveStatus = campaignTypes.REVIEW_STATUS_APPROVED
		}
	case campaignTypes.REVIEW_STATUS_IN_REVIEW:
		resolution.EffectiveStatus = campaignTypes.REVIEW_STATUS_IN_REVIEW
	}
	return resolution
}

// CommentTargetAllowed reports whether a response may carry comments under
// the given review assignment. The response must belong to the reviewed
// campaign assignment, and for question scope it must answer the reviewed
// question.
func CommentTargetAllowed(reviewAssignment campaignTypes.ReviewAssignment, response campaignTypes.Response) bool {
	if response.CampaignAssignmentID != reviewAssignment.CampaignAssignmentID {
		return false
	}
	if reviewAssignment.Scope == campaignTypes.REVIEW_SCOPE_QUESTION && reviewAssignment.QuestionID != response.QuestionID {
		return false
	}
	return true
}

func matchReviewAssignment(reviewAssignments []campaignTypes.ReviewAssignment, question campaignTypes.Question) *campaignTypes.ReviewAssignment {
	for i := range reviewAssignments {
		ra := &reviewAssignments[i]
		if ra.Scope == campaignTypes.REVIEW_SCOPE_QUESTION && ra.QuestionID == question.ID {
			return ra
		}
	}
	section := question.SectionOrOther()
	for i := range reviewAssignments {
		ra := &reviewAssignments[i]
		if ra.Scope == campaignTypes.REVIEW_SCOPE_SECTION && ra.SectionName == section {
			return ra
		}
	}
	for i := range reviewAssignments {
		ra := &reviewAssignments[i]
		if ra.Scope == campaignTypes.REVIEW_SCOPE_ASSIGNMENT {
			return ra
		}
	}
	return nil
}

func latestCommentForResponse(comments []campaignTypes.ReviewComment, response *campaignTypes.Response) *campaignTypes.ReviewComment {
	if response == nil {
		return nil
	}
	responseID := response.ID.Hex()

	var latest *campaignTypes.ReviewComment
	for i := range comments {
		c := &comments[i]
		if c.ResponseID != responseID {
			continue
		}
		if latest == nil || c.CreatedAt > latest.CreatedAt {
			latest = c
		}
	}
	return latest
}

func statusFromAction(actionTaken string) string {
	switch actionTaken {
	case campaignTypes.REVIEW_ACTION_APPROVED:
		return campaignTypes.REVIEW_STATUS_APPROVED
	case campaignTypes.REVIEW_ACTION_CHANGES_REQUESTED:
		return campaignTypes.REVIEW_STATUS_CHANGES_REQUESTED
	default:
		return campaignTypes.REVIEW_STATUS_PENDING
	}
}
