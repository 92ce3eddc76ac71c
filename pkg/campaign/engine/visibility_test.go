package engine

import (
	"testing"

	campaignTypes "github.com/esg-framework/esg-backend/pkg/campaign/types"
)

func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestEvaluateVisibilityIsAnswered(t *testing.T) {
	questions := []campaignTypes.Question{
		{ID: "Q1", QuestionType: campaignTypes.QUESTION_TYPE_TEXT, DisplayOrder: 1},
		{ID: "Q2", QuestionType: campaignTypes.QUESTION_TYPE_TEXT, DisplayOrder: 2, Dependencies: []campaignTypes.QuestionDependency{
			{QuestionID: "Q2", DependsOnQuestionID: "Q1", ConditionType: campaignTypes.CONDITION_TYPE_IS_ANSWERED},
		}},
	}
	g, err := BuildDependencyGraph(questions)
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}

	t.Run("hidden while upstream unanswered", func(t *testing.T) {
		visible := EvaluateVisibility(g, nil, nil)
		if !visible["Q1"] || visible["Q2"] {
			t.Errorf("unexpected visibility: %v", visible)
		}
	})

	t.Run("shown once upstream answered", func(t *testing.T) {
		responses := []campaignTypes.Response{
			{QuestionID: "Q1", TextValue: "something"},
		}
		visible := EvaluateVisibility(g, responses, nil)
		if !visible["Q2"] {
			t.Errorf("unexpected visibility: %v", visible)
		}
	})

	t.Run("hidden again after upstream cleared", func(t *testing.T) {
		cleared := campaignTypes.Response{QuestionID: "Q1", TextValue: "something"}
		cleared.Clear()
		visible := EvaluateVisibility(g, []campaignTypes.Response{cleared}, nil)
		if visible["Q2"] {
			t.Errorf("unexpected visibility: %v", visible)
		}
	})
}

func TestEvaluateVisibilityCascading(t *testing.T) {
	questions := []campaignTypes.Question{
		{ID: "Q1", QuestionType: campaignTypes.QUESTION_TYPE_TEXT, DisplayOrder: 1},
		{ID: "Q2", QuestionType: campaignTypes.QUESTION_TYPE_SELECT, DisplayOrder: 2, Dependencies: []campaignTypes.QuestionDependency{
			{QuestionID: "Q2", DependsOnQuestionID: "Q1", ConditionType: campaignTypes.CONDITION_TYPE_IS_ANSWERED},
		}},
		{ID: "Q3", QuestionType: campaignTypes.QUESTION_TYPE_TEXT, DisplayOrder: 3, Dependencies: []campaignTypes.QuestionDependency{
			{QuestionID: "Q3", DependsOnQuestionID: "Q2", ConditionType: campaignTypes.CONDITION_TYPE_EQUALS, ConditionValue: "Yes"},
		}},
	}
	g, err := BuildDependencyGraph(questions)
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}

	t.Run("fully visible chain", func(t *testing.T) {
		responses := []campaignTypes.Response{
			{QuestionID: "Q1", TextValue: "started"},
			{QuestionID: "Q2", SelectedValues: []string{"Yes"}},
		}
		visible := EvaluateVisibility(g, responses, nil)
		if !visible["Q2"] || !visible["Q3"] {
			t.Errorf("unexpected visibility: %v", visible)
		}
	})

	t.Run("clearing the root hides the whole chain", func(t *testing.T) {
		// Q2 and Q3 keep their stored answers, only Q1 is blanked.
		responses := []campaignTypes.Response{
			{QuestionID: "Q2", SelectedValues: []string{"Yes"}},
			{QuestionID: "Q3", TextValue: "details"},
		}
		visible := EvaluateVisibility(g, responses, nil)
		if visible["Q2"] || visible["Q3"] {
			t.Errorf("unexpected visibility: %v", visible)
		}
	})

	t.Run("target filter limits the result set", func(t *testing.T) {
		visible := EvaluateVisibility(g, nil, []string{"Q3"})
		if len(visible) != 1 {
			t.Errorf("unexpected result size: %v", visible)
		}
		if visible["Q3"] {
			t.Errorf("unexpected visibility: %v", visible)
		}
	})
}

func TestEvalConditionValueForms(t *testing.T) {
	t.Run("equals is case insensitive for text", func(t *testing.T) {
		dep := campaignTypes.QuestionDependency{ConditionType: campaignTypes.CONDITION_TYPE_EQUALS, ConditionValue: "yes"}
		q := campaignTypes.Question{ID: "Q1", QuestionType: campaignTypes.QUESTION_TYPE_TEXT}
		resp := &campaignTypes.Response{QuestionID: "Q1", TextValue: "YES"}
		if !evalCondition(dep, q, resp) {
			t.Error("expected condition to hold")
		}
	})

	t.Run("equals is exact for booleans", func(t *testing.T) {
		dep := campaignTypes.QuestionDependency{ConditionType: campaignTypes.CONDITION_TYPE_EQUALS, ConditionValue: "true"}
		q := campaignTypes.Question{ID: "Q1", QuestionType: campaignTypes.QUESTION_TYPE_YES_NO}
		if !evalCondition(dep, q, &campaignTypes.Response{QuestionID: "Q1", BooleanValue: boolPtr(true)}) {
			t.Error("expected condition to hold")
		}
		if evalCondition(dep, q, &campaignTypes.Response{QuestionID: "Q1", BooleanValue: boolPtr(false)}) {
			t.Error("expected condition to fail")
		}
	})

	t.Run("equals uses decimal equality for numbers", func(t *testing.T) {
		dep := campaignTypes.QuestionDependency{ConditionType: campaignTypes.CONDITION_TYPE_EQUALS, ConditionValue: "42.0"}
		q := campaignTypes.Question{ID: "Q1", QuestionType: campaignTypes.QUESTION_TYPE_NUMBER}
		if !evalCondition(dep, q, &campaignTypes.Response{QuestionID: "Q1", NumericValue: floatPtr(42)}) {
			t.Error("expected condition to hold")
		}
	})

	t.Run("not equals on an unanswered question fails", func(t *testing.T) {
		dep := campaignTypes.QuestionDependency{ConditionType: campaignTypes.CONDITION_TYPE_NOT_EQUALS, ConditionValue: "No"}
		q := campaignTypes.Question{ID: "Q1", QuestionType: campaignTypes.QUESTION_TYPE_TEXT}
		if evalCondition(dep, q, nil) {
			t.Error("expected condition to fail")
		}
	})

	t.Run("greater than against a non numeric answer fails", func(t *testing.T) {
		dep := campaignTypes.QuestionDependency{ConditionType: campaignTypes.CONDITION_TYPE_GREATER_THAN, ConditionValue: "10"}
		q := campaignTypes.Question{ID: "Q1", QuestionType: campaignTypes.QUESTION_TYPE_SELECT}
		if evalCondition(dep, q, &campaignTypes.Response{QuestionID: "Q1", SelectedValues: []string{"big"}}) {
			t.Error("expected condition to fail")
		}
	})

	t.Run("greater than and less than thresholds", func(t *testing.T) {
		q := campaignTypes.Question{ID: "Q1", QuestionType: campaignTypes.QUESTION_TYPE_NUMBER}
		resp := &campaignTypes.Response{QuestionID: "Q1", NumericValue: floatPtr(15)}
		gt := campaignTypes.QuestionDependency{ConditionType: campaignTypes.CONDITION_TYPE_GREATER_THAN, ConditionValue: "10"}
		lt := campaignTypes.QuestionDependency{ConditionType: campaignTypes.CONDITION_TYPE_LESS_THAN, ConditionValue: "10"}
		if !evalCondition(gt, q, resp) {
			t.Error("expected greater than to hold")
		}
		if evalCondition(lt, q, resp) {
			t.Error("expected less than to fail")
		}
	})

	t.Run("contains on a multi select answer", func(t *testing.T) {
		dep := campaignTypes.QuestionDependency{ConditionType: campaignTypes.CONDITION_TYPE_CONTAINS, ConditionValue: "Scope 2"}
		q := campaignTypes.Question{ID: "Q1", QuestionType: campaignTypes.QUESTION_TYPE_MULTISELECT}
		resp := &campaignTypes.Response{QuestionID: "Q1", SelectedValues: []string{"Scope 1", "Scope 2"}}
		if !evalCondition(dep, q, resp) {
			t.Error("expected condition to hold")
		}
	})

	t.Run("contains on free text is a substring match", func(t *testing.T) {
		dep := campaignTypes.QuestionDependency{ConditionType: campaignTypes.CONDITION_TYPE_CONTAINS, ConditionValue: "solar"}
		q := campaignTypes.Question{ID: "Q1", QuestionType: campaignTypes.QUESTION_TYPE_LONG_TEXT}
		resp := &campaignTypes.Response{QuestionID: "Q1", TextValue: "On-site Solar generation"}
		if !evalCondition(dep, q, resp) {
			t.Error("expected condition to hold")
		}
	})

	t.Run("unknown condition type keeps the question hidden", func(t *testing.T) {
		dep := campaignTypes.QuestionDependency{ConditionType: "matchesRegex", ConditionValue: ".*"}
		q := campaignTypes.Question{ID: "Q1", QuestionType: campaignTypes.QUESTION_TYPE_TEXT}
		if evalCondition(dep, q, &campaignTypes.Response{QuestionID: "Q1", TextValue: "anything"}) {
			t.Error("expected condition to fail")
		}
	})
}
