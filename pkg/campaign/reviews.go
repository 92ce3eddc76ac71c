package campaign

import (
	"errors"
	"log/slog"

	"github.com/esg-framework/esg-backend/pkg/campaign/engine"
	campaignTypes "github.com/esg-framework/esg-backend/pkg/campaign/types"
)

var (
	ErrScopeDiscriminatorMismatch = errors.New("review assignment discriminator does not match its scope")
	ErrNotReviewer                = errors.New("user is not the reviewer of this review assignment")
	ErrResponseOutsideReview      = errors.New("response does not belong to the reviewed assignment")
)

// CreateReviewAssignment declares review responsibility at question, section
// or assignment scope. The discriminator must match the scope: exactly the
// questionID for question scope, exactly the sectionName for section scope,
// neither for assignment scope.
func CreateReviewAssignment(instanceID string, reviewAssignment campaignTypes.ReviewAssignment) (campaignTypes.ReviewAssignment, error) {
	switch reviewAssignment.Scope {
	case campaignTypes.REVIEW_SCOPE_QUESTION:
		if reviewAssignment.QuestionID == "" || reviewAssignment.SectionName != "" {
			return campaignTypes.ReviewAssignment{}, ErrScopeDiscriminatorMismatch
		}
	case campaignTypes.REVIEW_SCOPE_SECTION:
		if reviewAssignment.SectionName == "" || reviewAssignment.QuestionID != "" {
			return campaignTypes.ReviewAssignment{}, ErrScopeDiscriminatorMismatch
		}
	case campaignTypes.REVIEW_SCOPE_ASSIGNMENT:
		if reviewAssignment.QuestionID != "" || reviewAssignment.SectionName != "" {
			return campaignTypes.ReviewAssignment{}, ErrScopeDiscriminatorMismatch
		}
	default:
		return campaignTypes.ReviewAssignment{}, ErrScopeDiscriminatorMismatch
	}

	return campaignDBService.CreateReviewAssignment(instanceID, reviewAssignment)
}

// AddReviewComment records a reviewer's verdict on one response under their
// own review assignment.
func AddReviewComment(instanceID string, reviewAssignmentID string, reviewerID string, responseID string, commentText string, actionTaken string, requiresChange bool) (campaignTypes.ReviewComment, error) {
	reviewAssignment, err := campaignDBService.GetReviewAssignmentByID(instanceID, reviewAssignmentID)
	if err != nil {
		return campaignTypes.ReviewComment{}, err
	}
	if reviewAssignment.ReviewerID != reviewerID {
		return campaignTypes.ReviewComment{}, ErrNotReviewer
	}

	response, err := campaignDBService.GetResponseByID(instanceID, responseID)
	if err != nil {
		return campaignTypes.ReviewComment{}, err
	}
	if !engine.CommentTargetAllowed(reviewAssignment, response) {
		return campaignTypes.ReviewComment{}, ErrResponseOutsideReview
	}

	return campaignDBService.CreateReviewComment(instanceID, campaignTypes.ReviewComment{
		ReviewAssignmentID: reviewAssignmentID,
		ResponseID:         responseID,
		ReviewerID:         reviewerID,
		Comment:            commentText,
		ActionTaken:        actionTaken,
		RequiresChange:     requiresChange,
	})
}

// StartReview moves a submitted assignment under review and marks the
// reviewer's own assignment as in review.
func StartReview(instanceID string, assignmentID string, reviewAssignmentID string, reviewerID string) error {
	reviewAssignment, err := campaignDBService.GetReviewAssignmentByID(instanceID, reviewAssignmentID)
	if err != nil {
		return err
	}
	if reviewAssignment.ReviewerID != reviewerID {
		return ErrNotReviewer
	}

	assignment, err := campaignDBService.GetCampaignAssignmentByID(instanceID, assignmentID)
	if err != nil {
		return err
	}

	if assignment.Status == campaignTypes.ASSIGNMENT_STATUS_SUBMITTED {
		newStatus, err := engine.Transition(assignment.Status, engine.ASSIGNMENT_EVENT_REVIEW_STARTED)
		if err != nil {
			return err
		}
		if err := campaignDBService.UpdateAssignmentStatus(instanceID, assignmentID, assignment.Status, newStatus, nil); err != nil {
			return err
		}
	}

	return campaignDBService.UpdateReviewAssignmentStatus(instanceID, reviewAssignmentID, campaignTypes.REVIEW_STATUS_IN_REVIEW)
}

// CompleteReview closes a review assignment with a final verdict and drives
// the assignment lifecycle accordingly. An approval verdict transitions the
// assignment to approved; a changes-requested verdict reopens the answering
// cycle.
func CompleteReview(instanceID string, assignmentID string, reviewAssignmentID string, reviewerID string, verdict string) error {
	reviewAssignment, err := campaignDBService.GetReviewAssignmentByID(instanceID, reviewAssignmentID)
	if err != nil {
		return err
	}
	if reviewAssignment.ReviewerID != reviewerID {
		return ErrNotReviewer
	}

	var event string
	switch verdict {
	case campaignTypes.REVIEW_STATUS_APPROVED:
		event = engine.ASSIGNMENT_EVENT_APPROVED
	case campaignTypes.REVIEW_STATUS_CHANGES_REQUESTED:
		event = engine.ASSIGNMENT_EVENT_CHANGES_REQUESTED
	default:
		return engine.ErrInvalidTransition
	}

	assignment, err := campaignDBService.GetCampaignAssignmentByID(instanceID, assignmentID)
	if err != nil {
		return err
	}

	newStatus, err := engine.Transition(assignment.Status, event)
	if err != nil {
		return err
	}
	if err := campaignDBService.UpdateAssignmentStatus(instanceID, assignmentID, assignment.Status, newStatus, nil); err != nil {
		return err
	}

	if err := campaignDBService.UpdateReviewAssignmentStatus(instanceID, reviewAssignmentID, verdict); err != nil {
		slog.Error("failed to update review assignment status",
			slog.String("instanceID", instanceID),
			slog.String("reviewAssignmentID", reviewAssignmentID),
			slog.String("error", err.Error()))
	}

	if newStatus == campaignTypes.ASSIGNMENT_STATUS_CHANGES_REQUESTED && notificationSender != nil {
		assignment.Status = newStatus
		notificationSender.OnChangesRequested(instanceID, assignment)
	}
	return nil
}
