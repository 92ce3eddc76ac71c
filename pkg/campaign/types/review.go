package types

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	REVIEW_SCOPE_QUESTION   = "question"
	REVIEW_SCOPE_SECTION    = "section"
	REVIEW_SCOPE_ASSIGNMENT = "assignment"
)

const (
	REVIEW_STATUS_PENDING           = "pending"
	REVIEW_STATUS_IN_REVIEW         = "inReview"
	REVIEW_STATUS_APPROVED          = "approved"
	REVIEW_STATUS_CHANGES_REQUESTED = "changesRequested"
	REVIEW_STATUS_COMPLETED         = "completed"
)

const (
	REVIEW_ACTION_APPROVED          = "approved"
	REVIEW_ACTION_CHANGES_REQUESTED = "changesRequested"
	REVIEW_ACTION_PENDING           = "pending"
)

// ReviewAssignment declares a reviewer's responsibility for a question, a
// section, or the whole assignment. At most the discriminator matching the
// scope is populated.
type ReviewAssignment struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CampaignAssignmentID string             `bson:"campaignAssignmentID,omitempty" json:"campaignAssignmentId,omitempty"`
	Scope                string             `bson:"scope,omitempty" json:"scope,omitempty"`
	QuestionID           string             `bson:"questionID,omitempty" json:"questionId,omitempty"`
	SectionName          string             `bson:"sectionName,omitempty" json:"sectionName,omitempty"`
	ReviewerID           string             `bson:"reviewerID,omitempty" json:"reviewerId,omitempty"`
	Status               string             `bson:"status,omitempty" json:"status,omitempty"`
	Instructions         string             `bson:"instructions,omitempty" json:"instructions,omitempty"`
	CreatedAt            int64              `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// ReviewComment is a reviewer's verdict on one response. The most recent
// comment for a response is authoritative when the owning review assignment's
// scope is broader than a single question.
type ReviewComment struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ReviewAssignmentID string             `bson:"reviewAssignmentID,omitempty" json:"reviewAssignmentId,omitempty"`
	ResponseID         string             `bson:"responseID,omitempty" json:"responseId,omitempty"`
	ReviewerID         string             `bson:"reviewerID,omitempty" json:"reviewerId,omitempty"`
	Comment            string             `bson:"comment,omitempty" json:"comment,omitempty"`
	ActionTaken        string             `bson:"actionTaken,omitempty" json:"actionTaken,omitempty"`
	RequiresChange     bool               `bson:"requiresChange,omitempty" json:"requiresChange,omitempty"`
	CreatedAt          int64              `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}
