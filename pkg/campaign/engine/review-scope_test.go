package engine

import (
	"testing"

	campaignTypes "github.com/esg-framework/esg-backend/pkg/campaign/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestResolveReviewStatusScopePrecedence(t *testing.T) {
	question := campaignTypes.Question{ID: "Q1", Section: "Environmental"}
	questionScoped := campaignTypes.ReviewAssignment{
		ID:         primitive.NewObjectID(),
		Scope:      campaignTypes.REVIEW_SCOPE_QUESTION,
		QuestionID: "Q1",
		ReviewerID: "rev-q",
		Status:     campaignTypes.REVIEW_STATUS_CHANGES_REQUESTED,
	}
	sectionScoped := campaignTypes.ReviewAssignment{
		ID:          primitive.NewObjectID(),
		Scope:       campaignTypes.REVIEW_SCOPE_SECTION,
		SectionName: "Environmental",
		ReviewerID:  "rev-s",
		Status:      campaignTypes.REVIEW_STATUS_IN_REVIEW,
	}
	assignmentScoped := campaignTypes.ReviewAssignment{
		ID:         primitive.NewObjectID(),
		Scope:      campaignTypes.REVIEW_SCOPE_ASSIGNMENT,
		ReviewerID: "rev-a",
		Status:     campaignTypes.REVIEW_STATUS_PENDING,
	}

	t.Run("question scope wins over broader scopes", func(t *testing.T) {
		res := ResolveReviewStatus(
			[]campaignTypes.ReviewAssignment{assignmentScoped, sectionScoped, questionScoped},
			nil, question, nil)
		if !res.IsAssignedForReview || res.ReviewerID != "rev-q" {
			t.Errorf("unexpected resolution: %+v", res)
		}
		// Question scope applies its own status directly.
		if res.EffectiveStatus != campaignTypes.REVIEW_STATUS_CHANGES_REQUESTED {
			t.Errorf("unexpected status: %s", res.EffectiveStatus)
		}
	})

	t.Run("section scope wins over assignment scope", func(t *testing.T) {
		res := ResolveReviewStatus(
			[]campaignTypes.ReviewAssignment{assignmentScoped, sectionScoped},
			nil, question, nil)
		if res.ReviewerID != "rev-s" || res.EffectiveStatus != campaignTypes.REVIEW_STATUS_IN_REVIEW {
			t.Errorf("unexpected resolution: %+v", res)
		}
	})

	t.Run("empty section falls into Other", func(t *testing.T) {
		otherScoped := campaignTypes.ReviewAssignment{
			ID:          primitive.NewObjectID(),
			Scope:       campaignTypes.REVIEW_SCOPE_SECTION,
			SectionName: campaignTypes.SECTION_OTHER,
			ReviewerID:  "rev-o",
			Status:      campaignTypes.REVIEW_STATUS_IN_REVIEW,
		}
		res := ResolveReviewStatus(
			[]campaignTypes.ReviewAssignment{otherScoped},
			nil, campaignTypes.Question{ID: "Q9"}, nil)
		if res.ReviewerID != "rev-o" {
			t.Errorf("unexpected resolution: %+v", res)
		}
	})

	t.Run("no matching scope", func(t *testing.T) {
		res := ResolveReviewStatus(
			[]campaignTypes.ReviewAssignment{sectionScoped},
			nil, campaignTypes.Question{ID: "Q9", Section: "Governance"}, nil)
		if res.IsAssignedForReview || res.EffectiveStatus != "" {
			t.Errorf("unexpected resolution: %+v", res)
		}
	})
}

func TestResolveReviewStatusBlanketRollup(t *testing.T) {
	question := campaignTypes.Question{ID: "Q1", Section: "Environmental"}

	t.Run("blanket approval covers answered responses", func(t *testing.T) {
		approved := campaignTypes.ReviewAssignment{
			ID:     primitive.NewObjectID(),
			Scope:  campaignTypes.REVIEW_SCOPE_ASSIGNMENT,
			Status: campaignTypes.REVIEW_STATUS_APPROVED,
		}
		answered := &campaignTypes.Response{ID: primitive.NewObjectID(), QuestionID: "Q1", TextValue: "12 tCO2e"}
		res := ResolveReviewStatus([]campaignTypes.ReviewAssignment{approved}, nil, question, answered)
		if res.EffectiveStatus != campaignTypes.REVIEW_STATUS_APPROVED {
			t.Errorf("unexpected status: %s", res.EffectiveStatus)
		}

		res = ResolveReviewStatus([]campaignTypes.ReviewAssignment{approved}, nil, question, nil)
		if res.EffectiveStatus != "" {
			t.Errorf("unanswered response must not inherit approval: %+v", res)
		}
	})

	t.Run("blanket changes requested does not flag uncommented responses", func(t *testing.T) {
		changesRequested := campaignTypes.ReviewAssignment{
			ID:          primitive.NewObjectID(),
			Scope:       campaignTypes.REVIEW_SCOPE_SECTION,
			SectionName: "Environmental",
			Status:      campaignTypes.REVIEW_STATUS_CHANGES_REQUESTED,
		}
		answered := &campaignTypes.Response{ID: primitive.NewObjectID(), QuestionID: "Q1", TextValue: "12 tCO2e"}
		res := ResolveReviewStatus([]campaignTypes.ReviewAssignment{changesRequested}, nil, question, answered)
		if !res.IsAssignedForReview || res.EffectiveStatus != "" {
			t.Errorf("unexpected resolution: %+v", res)
		}
	})
}

func TestResolveReviewStatusLatestCommentWins(t *testing.T) {
	question := campaignTypes.Question{ID: "Q1", Section: "Environmental"}
	reviewAssignment := campaignTypes.ReviewAssignment{
		ID:          primitive.NewObjectID(),
		Scope:       campaignTypes.REVIEW_SCOPE_SECTION,
		SectionName: "Environmental",
		Status:      campaignTypes.REVIEW_STATUS_CHANGES_REQUESTED,
	}
	r17 := &campaignTypes.Response{ID: primitive.NewObjectID(), QuestionID: "Q1", TextValue: "revised figure"}
	r18 := &campaignTypes.Response{ID: primitive.NewObjectID(), QuestionID: "Q2", TextValue: "sibling answer"}

	comments := []campaignTypes.ReviewComment{
		{
			ResponseID:  r17.ID.Hex(),
			ActionTaken: campaignTypes.REVIEW_ACTION_CHANGES_REQUESTED,
			CreatedAt:   1000,
		},
		{
			ResponseID:  r17.ID.Hex(),
			ActionTaken: campaignTypes.REVIEW_ACTION_APPROVED,
			CreatedAt:   2000,
		},
	}

	t.Run("most recent comment decides", func(t *testing.T) {
		res := ResolveReviewStatus([]campaignTypes.ReviewAssignment{reviewAssignment}, comments, question, r17)
		if res.EffectiveStatus != campaignTypes.REVIEW_STATUS_APPROVED {
			t.Errorf("unexpected status: %s", res.EffectiveStatus)
		}
	})

	t.Run("sibling without comments resolves to none", func(t *testing.T) {
		sibling := campaignTypes.Question{ID: "Q2", Section: "Environmental"}
		res := ResolveReviewStatus([]campaignTypes.ReviewAssignment{reviewAssignment}, comments, sibling, r18)
		if res.EffectiveStatus != "" {
			t.Errorf("unexpected status: %s", res.EffectiveStatus)
		}
	})

	t.Run("pending action maps to pending status", func(t *testing.T) {
		pendingComment := []campaignTypes.ReviewComment{
			{ResponseID: r17.ID.Hex(), ActionTaken: campaignTypes.REVIEW_ACTION_PENDING, CreatedAt: 3000},
		}
		res := ResolveReviewStatus([]campaignTypes.ReviewAssignment{reviewAssignment}, pendingComment, question, r17)
		if res.EffectiveStatus != campaignTypes.REVIEW_STATUS_PENDING {
			t.Errorf("unexpected status: %s", res.EffectiveStatus)
		}
	})
}

func TestCommentTargetAllowed(t *testing.T) {
	reviewAssignment := campaignTypes.ReviewAssignment{
		CampaignAssignmentID: "assignment-1",
		Scope:                campaignTypes.REVIEW_SCOPE_SECTION,
		SectionName:          "Environmental",
	}

	t.Run("response of the reviewed assignment is allowed", func(t *testing.T) {
		response := campaignTypes.Response{CampaignAssignmentID: "assignment-1", QuestionID: "Q1"}
		if !CommentTargetAllowed(reviewAssignment, response) {
			t.Error("expected response of reviewed assignment to be allowed")
		}
	})

	t.Run("response of another assignment is rejected", func(t *testing.T) {
		response := campaignTypes.Response{CampaignAssignmentID: "assignment-2", QuestionID: "Q1"}
		if CommentTargetAllowed(reviewAssignment, response) {
			t.Error("expected response of another assignment to be rejected")
		}
	})

	t.Run("question scope rejects responses to other questions", func(t *testing.T) {
		questionScoped := campaignTypes.ReviewAssignment{
			CampaignAssignmentID: "assignment-1",
			Scope:                campaignTypes.REVIEW_SCOPE_QUESTION,
			QuestionID:           "Q1",
		}
		if CommentTargetAllowed(questionScoped, campaignTypes.Response{CampaignAssignmentID: "assignment-1", QuestionID: "Q2"}) {
			t.Error("expected response to another question to be rejected")
		}
		if !CommentTargetAllowed(questionScoped, campaignTypes.Response{CampaignAssignmentID: "assignment-1", QuestionID: "Q1"}) {
			t.Error("expected response to the reviewed question to be allowed")
		}
	})
}
