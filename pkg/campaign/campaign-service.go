package campaign

import (
	"errors"
	"log/slog"
	"time"

	"github.com/esg-framework/esg-backend/pkg/campaign/engine"
	campaignTypes "github.com/esg-framework/esg-backend/pkg/campaign/types"
	campaigndb "github.com/esg-framework/esg-backend/pkg/db/campaign"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	campaignDBService  *campaigndb.CampaignDBService
	notificationSender NotificationSender
)

// NotificationSender hands engine side effects that require user-facing
// notifications to the (external) delivery collaborator. Implementations must
// not block; delivery failures are not the engine's concern.
type NotificationSender interface {
	OnDelegationCreated(instanceID string, delegation campaignTypes.Delegation)
	OnChangesRequested(instanceID string, assignment campaignTypes.CampaignAssignment)
}

func Init(
	campaignDB *campaigndb.CampaignDBService,
	sender NotificationSender,
) {
	campaignDBService = campaignDB
	notificationSender = sender
}

var ErrValueTypeMismatch = errors.New("response value does not match the question type")

// RenderedQuestion is one question prepared for display to one user: its
// definition plus the current response, visibility flag and effective review
// state.
type RenderedQuestion struct {
	Question   campaignTypes.Question    `json:"question"`
	Response   *campaignTypes.Response   `json:"response,omitempty"`
	IsVisible  bool                      `json:"isVisible"`
	Delegation *campaignTypes.Delegation `json:"delegation,omitempty"`
	Review     engine.ReviewResolution   `json:"review"`
}

// RenderedQuestionnaire is the full render result for one user on one
// assignment.
type RenderedQuestionnaire struct {
	Assignment campaignTypes.CampaignAssignment `json:"assignment"`
	Mode       string                           `json:"mode"`
	Questions  []RenderedQuestion               `json:"questions"`
}

// RenderQuestionnaireForUser resolves the user's grants, evaluates visibility
// against the current answers and derives each visible question's effective
// review status. Questions outside the user's grant set are omitted entirely.
func RenderQuestionnaireForUser(instanceID string, assignmentID string, userID string, flags engine.RoleFlags) (RenderedQuestionnaire, error) {
	snapshot, err := loadAssignmentSnapshot(instanceID, assignmentID)
	if err != nil {
		return RenderedQuestionnaire{}, err
	}

	responsibility, err := engine.ResolveResponsibility(snapshot, userID, flags)
	if err != nil {
		if !errors.Is(err, engine.ErrForbidden) {
			return RenderedQuestionnaire{}, err
		}
		// Reviewers hold no responder grants but may read the questions their
		// review assignments cover. Writes still resolve responsibility on
		// their own and stay denied.
		reviewerIDs := engine.ReviewerQuestionIDs(snapshot, userID)
		if len(reviewerIDs) == 0 {
			return RenderedQuestionnaire{}, err
		}
		responsibility = engine.Responsibility{QuestionIDs: reviewerIDs, Mode: engine.RESPONSIBILITY_MODE_REVIEWER}
	}

	graph, err := engine.BuildDependencyGraph(snapshot.Questions)
	if err != nil {
		slog.Error("dependency graph of stored questionnaire is invalid",
			slog.String("instanceID", instanceID),
			slog.String("assignmentID", assignmentID),
			slog.String("error", err.Error()))
		return RenderedQuestionnaire{}, err
	}
	visible := engine.EvaluateVisibility(graph, snapshot.Responses, nil)

	rendered := RenderedQuestionnaire{
		Assignment: snapshot.Assignment,
		Mode:       responsibility.Mode,
		Questions:  []RenderedQuestion{},
	}

	for _, q := range snapshot.Questions {
		if !responsibility.CanWrite(q.ID) {
			continue
		}
		response := snapshot.ResponseForQuestion(q.ID)
		item := RenderedQuestion{
			Question:  q,
			Response:  response,
			IsVisible: visible[q.ID],
			Review:    engine.ResolveReviewStatus(snapshot.ReviewAssignments, snapshot.ReviewComments, q, response),
		}
		if responsibility.Mode == engine.RESPONSIBILITY_MODE_DELEGATED {
			item.Delegation = activeDelegationFor(snapshot, q.ID, userID)
		}
		rendered.Questions = append(rendered.Questions, item)
	}

	return rendered, nil
}

// SaveResponse validates admission and responsibility, persists the value
// under the assignment's serialisation boundary, maintains the delegation
// completion flag and applies the lifecycle transition of a first or rework
// write. An empty value is a clear request: the row is blanked, never
// deleted.
func SaveResponse(instanceID string, assignmentID string, userID string, flags engine.RoleFlags, questionID string, value campaignTypes.ResponseValue) (campaignTypes.Response, error) {
	// Serialisation point: revision bump orders concurrent writers on the
	// same assignment before any snapshot is read.
	assignment, err := campaignDBService.BumpAssignmentRevision(instanceID, assignmentID)
	if err != nil {
		return campaignTypes.Response{}, err
	}

	if err := engine.CheckWriteAdmission(assignment, flags); err != nil {
		return campaignTypes.Response{}, err
	}

	snapshot, err := loadAssignmentSnapshot(instanceID, assignmentID)
	if err != nil {
		return campaignTypes.Response{}, err
	}

	responsibility, err := engine.ResolveResponsibility(snapshot, userID, flags)
	if err != nil {
		return campaignTypes.Response{}, err
	}
	if !responsibility.CanWrite(questionID) {
		return campaignTypes.Response{}, engine.ErrForbidden
	}

	question, ok := findQuestion(snapshot.Questions, questionID)
	if !ok {
		return campaignTypes.Response{}, engine.ErrUnknownQuestion
	}
	if !value.IsEmpty() {
		if err := validateValueForQuestionType(question, value); err != nil {
			return campaignTypes.Response{}, err
		}
	}

	response, err := campaignDBService.SaveResponseValue(instanceID, assignmentID, questionID, userID, value)
	if err != nil {
		return campaignTypes.Response{}, err
	}

	// Visibility may have changed downstream of this answer; log the questions
	// this save hides so their stale answers are traceable. Hidden answers are
	// retained in storage and only filtered at render time.
	if graph, gErr := engine.BuildDependencyGraph(snapshot.Questions); gErr == nil {
		if dependents := graph.DependentsOf(questionID); len(dependents) > 0 {
			snapshot.Responses = replaceResponse(snapshot.Responses, response)
			visible := engine.EvaluateVisibility(graph, snapshot.Responses, dependents)
			for id, isVisible := range visible {
				if !isVisible {
					slog.Debug("dependent question hidden by answer change",
						slog.String("assignmentID", assignmentID),
						slog.String("changedQuestionID", questionID),
						slog.String("hiddenQuestionID", id))
				}
			}
		}
	}

	if completedAt, applies := engine.DelegationCompletionAt(responsibility.Mode, value, time.Now().Unix()); applies {
		if err := campaignDBService.SetDelegationCompletedAt(instanceID, assignmentID, questionID, userID, completedAt); err != nil {
			slog.Error("failed to update delegation completion",
				slog.String("instanceID", instanceID),
				slog.String("assignmentID", assignmentID),
				slog.String("questionID", questionID),
				slog.String("error", err.Error()))
		}
	}

	applyWriteTransition(instanceID, assignment, userID)

	return response, nil
}

// ClearResponse blanks an existing answer. Same admission and responsibility
// rules as a save.
func ClearResponse(instanceID string, assignmentID string, userID string, flags engine.RoleFlags, questionID string) (campaignTypes.Response, error) {
	return SaveResponse(instanceID, assignmentID, userID, flags, questionID, campaignTypes.ResponseValue{})
}

// SubmitAssignment performs the explicit submit action of the lead responder.
// Completeness is advisory at this layer and not enforced.
func SubmitAssignment(instanceID string, assignmentID string, userID string, flags engine.RoleFlags) (campaignTypes.CampaignAssignment, error) {
	assignment, err := campaignDBService.GetCampaignAssignmentByID(instanceID, assignmentID)
	if err != nil {
		return assignment, err
	}

	if !flags.IsPlatformAdmin && userID != assignment.LeadResponderID {
		return assignment, engine.ErrForbidden
	}

	newStatus, err := engine.Transition(assignment.Status, engine.ASSIGNMENT_EVENT_SUBMITTED)
	if err != nil {
		return assignment, err
	}

	submittedAt := time.Now().Unix()
	if err := campaignDBService.UpdateAssignmentStatus(instanceID, assignmentID, assignment.Status, newStatus, map[string]interface{}{"submittedAt": submittedAt}); err != nil {
		return assignment, err
	}
	assignment.Status = newStatus
	assignment.SubmittedAt = submittedAt
	return assignment, nil
}

func applyWriteTransition(instanceID string, assignment campaignTypes.CampaignAssignment, userID string) {
	// Only the lead responder starts the assignment; delegated or assigned
	// users writing into a not-started assignment leave the status alone.
	if assignment.Status == campaignTypes.ASSIGNMENT_STATUS_NOT_STARTED && userID != assignment.LeadResponderID {
		return
	}

	newStatus, err := engine.Transition(assignment.Status, engine.ASSIGNMENT_EVENT_RESPONSE_SAVED)
	if err != nil {
		// Writes within InProgress have no transition to apply.
		return
	}

	extra := map[string]interface{}{}
	if assignment.Status == campaignTypes.ASSIGNMENT_STATUS_NOT_STARTED {
		extra["startedAt"] = time.Now().Unix()
	}
	if err := campaignDBService.UpdateAssignmentStatus(instanceID, assignment.ID.Hex(), assignment.Status, newStatus, extra); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		slog.Error("failed to apply assignment status transition",
			slog.String("instanceID", instanceID),
			slog.String("assignmentID", assignment.ID.Hex()),
			slog.String("from", assignment.Status),
			slog.String("to", newStatus),
			slog.String("error", err.Error()))
	}
}
