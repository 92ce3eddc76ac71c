package types

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	ASSIGNMENT_STATUS_NOT_STARTED       = "notStarted"
	ASSIGNMENT_STATUS_IN_PROGRESS       = "inProgress"
	ASSIGNMENT_STATUS_SUBMITTED         = "submitted"
	ASSIGNMENT_STATUS_UNDER_REVIEW      = "underReview"
	ASSIGNMENT_STATUS_APPROVED          = "approved"
	ASSIGNMENT_STATUS_CHANGES_REQUESTED = "changesRequested"
)

// CampaignAssignment is one organisation's instance of answering one
// questionnaire version within one campaign.
type CampaignAssignment struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CampaignID       string             `bson:"campaignID,omitempty" json:"campaignId,omitempty"`
	QuestionnaireKey string             `bson:"questionnaireKey,omitempty" json:"questionnaireKey,omitempty"`
	VersionID        string             `bson:"versionID,omitempty" json:"versionId,omitempty"`
	TargetOrgID      string             `bson:"targetOrgID,omitempty" json:"targetOrgId,omitempty"`
	LeadResponderID  string             `bson:"leadResponderID,omitempty" json:"leadResponderId,omitempty"`
	Status           string             `bson:"status,omitempty" json:"status,omitempty"`
	StartedAt        int64              `bson:"startedAt,omitempty" json:"startedAt,omitempty"`
	SubmittedAt      int64              `bson:"submittedAt,omitempty" json:"submittedAt,omitempty"`

	// Revision is bumped on every response write; the DB layer uses it as the
	// per-assignment serialisation boundary for visibility recomputation.
	Revision int64 `bson:"revision,omitempty" json:"revision,omitempty"`
}

// Delegation grants toUserID write access to exactly one question within one
// assignment. CompletedAt is derived from the delegated response's state, not
// a separate workflow step.
type Delegation struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CampaignAssignmentID string             `bson:"campaignAssignmentID,omitempty" json:"campaignAssignmentId,omitempty"`
	QuestionID           string             `bson:"questionID,omitempty" json:"questionId,omitempty"`
	FromUserID           string             `bson:"fromUserID,omitempty" json:"fromUserId,omitempty"`
	ToUserID             string             `bson:"toUserID,omitempty" json:"toUserId,omitempty"`
	Instructions         string             `bson:"instructions,omitempty" json:"instructions,omitempty"`
	IsActive             bool               `bson:"isActive" json:"isActive"`
	CreatedAt            int64              `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	CompletedAt          int64              `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
}

// QuestionAssignment grants a user write access to one question (QuestionID
// set) or to every question currently in one section (SectionName set).
// Exactly one of the two discriminators is populated. Section membership is
// resolved live against the questionnaire's current questions.
type QuestionAssignment struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CampaignAssignmentID string             `bson:"campaignAssignmentID,omitempty" json:"campaignAssignmentId,omitempty"`
	AssignedUserID       string             `bson:"assignedUserID,omitempty" json:"assignedUserId,omitempty"`
	QuestionID           string             `bson:"questionID,omitempty" json:"questionId,omitempty"`
	SectionName          string             `bson:"sectionName,omitempty" json:"sectionName,omitempty"`
	CreatedAt            int64              `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}
