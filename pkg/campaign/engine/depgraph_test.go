package engine

import (
	"errors"
	"testing"

	campaignTypes "github.com/esg-framework/esg-backend/pkg/campaign/types"
)

func TestBuildDependencyGraph(t *testing.T) {
	t.Run("with no dependencies", func(t *testing.T) {
		questions := []campaignTypes.Question{
			{ID: "Q1", DisplayOrder: 1},
			{ID: "Q2", DisplayOrder: 2},
		}
		g, err := BuildDependencyGraph(questions)
		if err != nil {
			t.Errorf("unexpected error: %s", err.Error())
			return
		}
		if len(g.EvalOrder()) != 2 {
			t.Errorf("unexpected eval order length: %d", len(g.EvalOrder()))
		}
	})

	t.Run("with a valid DAG", func(t *testing.T) {
		questions := []campaignTypes.Question{
			{ID: "Q1", DisplayOrder: 1},
			{ID: "Q2", DisplayOrder: 2, Dependencies: []campaignTypes.QuestionDependency{
				{QuestionID: "Q2", DependsOnQuestionID: "Q1", ConditionType: campaignTypes.CONDITION_TYPE_IS_ANSWERED},
			}},
			{ID: "Q3", DisplayOrder: 3, Dependencies: []campaignTypes.QuestionDependency{
				{QuestionID: "Q3", DependsOnQuestionID: "Q2", ConditionType: campaignTypes.CONDITION_TYPE_IS_ANSWERED},
				{QuestionID: "Q3", DependsOnQuestionID: "Q1", ConditionType: campaignTypes.CONDITION_TYPE_IS_ANSWERED},
			}},
		}
		g, err := BuildDependencyGraph(questions)
		if err != nil {
			t.Errorf("unexpected error: %s", err.Error())
			return
		}

		position := map[string]int{}
		for i, id := range g.EvalOrder() {
			position[id] = i
		}
		if position["Q1"] > position["Q2"] || position["Q2"] > position["Q3"] {
			t.Errorf("unexpected eval order: %v", g.EvalOrder())
		}
	})

	t.Run("with a self dependency", func(t *testing.T) {
		questions := []campaignTypes.Question{
			{ID: "Q1", Dependencies: []campaignTypes.QuestionDependency{
				{QuestionID: "Q1", DependsOnQuestionID: "Q1", ConditionType: campaignTypes.CONDITION_TYPE_IS_ANSWERED},
			}},
		}
		_, err := BuildDependencyGraph(questions)
		if !errors.Is(err, ErrSelfDependency) {
			t.Errorf("expected self dependency error, got: %v", err)
		}
	})

	t.Run("with a three node cycle", func(t *testing.T) {
		questions := []campaignTypes.Question{
			{ID: "QA", Dependencies: []campaignTypes.QuestionDependency{
				{QuestionID: "QA", DependsOnQuestionID: "QC", ConditionType: campaignTypes.CONDITION_TYPE_IS_ANSWERED},
			}},
			{ID: "QB", Dependencies: []campaignTypes.QuestionDependency{
				{QuestionID: "QB", DependsOnQuestionID: "QA", ConditionType: campaignTypes.CONDITION_TYPE_IS_ANSWERED},
			}},
			{ID: "QC", Dependencies: []campaignTypes.QuestionDependency{
				{QuestionID: "QC", DependsOnQuestionID: "QB", ConditionType: campaignTypes.CONDITION_TYPE_IS_ANSWERED},
			}},
		}
		_, err := BuildDependencyGraph(questions)
		if !errors.Is(err, ErrCycleDetected) {
			t.Errorf("expected cycle error, got: %v", err)
		}
	})

	t.Run("with an unknown upstream question", func(t *testing.T) {
		questions := []campaignTypes.Question{
			{ID: "Q1", Dependencies: []campaignTypes.QuestionDependency{
				{QuestionID: "Q1", DependsOnQuestionID: "missing", ConditionType: campaignTypes.CONDITION_TYPE_IS_ANSWERED},
			}},
		}
		_, err := BuildDependencyGraph(questions)
		if !errors.Is(err, ErrUnknownQuestion) {
			t.Errorf("expected unknown question error, got: %v", err)
		}
	})
}

func TestValidateNewDependency(t *testing.T) {
	questions := []campaignTypes.Question{
		{ID: "Q1"},
		{ID: "Q2", Dependencies: []campaignTypes.QuestionDependency{
			{QuestionID: "Q2", DependsOnQuestionID: "Q1", ConditionType: campaignTypes.CONDITION_TYPE_IS_ANSWERED},
		}},
	}

	t.Run("rejects an edge that would close a cycle", func(t *testing.T) {
		err := ValidateNewDependency(questions, campaignTypes.QuestionDependency{
			QuestionID: "Q1", DependsOnQuestionID: "Q2",
		})
		if !errors.Is(err, ErrCycleDetected) {
			t.Errorf("expected cycle error, got: %v", err)
		}
	})

	t.Run("rejects a self reference before graph construction", func(t *testing.T) {
		err := ValidateNewDependency(questions, campaignTypes.QuestionDependency{
			QuestionID: "Q1", DependsOnQuestionID: "Q1",
		})
		if !errors.Is(err, ErrSelfDependency) {
			t.Errorf("expected self dependency error, got: %v", err)
		}
	})

	t.Run("rejects an edge for an unknown question", func(t *testing.T) {
		err := ValidateNewDependency(questions, campaignTypes.QuestionDependency{
			QuestionID: "missing", DependsOnQuestionID: "Q1",
		})
		if !errors.Is(err, ErrUnknownQuestion) {
			t.Errorf("expected unknown question error, got: %v", err)
		}
	})

	t.Run("accepts a valid new edge", func(t *testing.T) {
		withQ3 := append([]campaignTypes.Question{}, questions...)
		withQ3 = append(withQ3, campaignTypes.Question{ID: "Q3"})
		err := ValidateNewDependency(withQ3, campaignTypes.QuestionDependency{
			QuestionID: "Q3", DependsOnQuestionID: "Q2",
		})
		if err != nil {
			t.Errorf("unexpected error: %s", err.Error())
		}
	})
}
