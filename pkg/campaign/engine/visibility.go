package engine

import (
	"log/slog"
	"strconv"
	"strings"

	campaignTypes "github.com/esg-framework/esg-backend/pkg/campaign/types"
)

// EvaluateVisibility computes the visibility flag of every question in
// targetIDs (all questions if targetIDs is empty) against the assignment's
// current responses. Questions are evaluated in topological order so upstream
// visibility is always resolved first; a hidden question hides everything
// conditioned on it, transitively. An invisible question's stored response is
// left untouched.
func EvaluateVisibility(graph *DependencyGraph, responses []campaignTypes.Response, targetIDs []string) map[string]bool {
	responseByQuestion := make(map[string]campaignTypes.Response, len(responses))
	for _, r := range responses {
		responseByQuestion[r.QuestionID] = r
	}

	visible := make(map[string]bool, len(graph.EvalOrder()))
	for _, questionID := range graph.EvalOrder() {
		deps := graph.DependenciesOf(questionID)
		if len(deps) == 0 {
			visible[questionID] = true
			continue
		}

		// AND semantics: every dependency must hold and every upstream
		// question must itself be visible.
		isVisible := true
		for _, dep := range deps {
			if !visible[dep.DependsOnQuestionID] {
				isVisible = false
				break
			}
			dependsOn, ok := graph.QuestionByID(dep.DependsOnQuestionID)
			if !ok {
				isVisible = false
				break
			}
			resp, hasResp := responseByQuestion[dep.DependsOnQuestionID]
			var respRef *campaignTypes.Response
			if hasResp {
				respRef = &resp
			}
			if !evalCondition(dep, dependsOn, respRef) {
				isVisible = false
				break
			}
		}
		visible[questionID] = isVisible
	}

	if len(targetIDs) == 0 {
		return visible
	}

	filtered := make(map[string]bool, len(targetIDs))
	for _, id := range targetIDs {
		if v, ok := visible[id]; ok {
			filtered[id] = v
		}
	}
	return filtered
}

// evalCondition evaluates one dependency condition against the current
// response of the question it depends on. Unresolvable condition/type
// combinations evaluate false (keeping the dependent question hidden) and are
// logged so they can be fixed in the questionnaire definition.
func evalCondition(dep campaignTypes.QuestionDependency, dependsOn campaignTypes.Question, resp *campaignTypes.Response) bool {
	answered := resp != nil && resp.IsAnswered()

	switch dep.ConditionType {
	case campaignTypes.CONDITION_TYPE_IS_ANSWERED:
		return answered
	case campaignTypes.CONDITION_TYPE_IS_NOT_ANSWERED:
		return !answered
	case campaignTypes.CONDITION_TYPE_EQUALS:
		if !answered {
			return false
		}
		return valueEquals(dep.ConditionValue, dependsOn, resp)
	case campaignTypes.CONDITION_TYPE_NOT_EQUALS:
		if !answered {
			return false
		}
		return !valueEquals(dep.ConditionValue, dependsOn, resp)
	case campaignTypes.CONDITION_TYPE_GREATER_THAN:
		return compareNumeric(dep.ConditionValue, resp, func(a, b float64) bool { return a > b })
	case campaignTypes.CONDITION_TYPE_LESS_THAN:
		return compareNumeric(dep.ConditionValue, resp, func(a, b float64) bool { return a < b })
	case campaignTypes.CONDITION_TYPE_CONTAINS:
		if !answered {
			return false
		}
		return valueContains(dep.ConditionValue, resp)
	default:
		slog.Warn("unknown dependency condition type",
			slog.String("conditionType", dep.ConditionType),
			slog.String("questionID", dep.QuestionID),
			slog.String("dependsOnQuestionID", dep.DependsOnQuestionID))
		return false
	}
}

// valueEquals compares the condition value against the response rendered in
// the question's native form: case-insensitive for text-like answers, exact
// "true"/"false" for booleans, decimal equality for numbers.
func valueEquals(conditionValue string, dependsOn campaignTypes.Question, resp *campaignTypes.Response) bool {
	switch dependsOn.QuestionType {
	case campaignTypes.QUESTION_TYPE_YES_NO:
		if resp.BooleanValue == nil {
			return false
		}
		return conditionValue == strconv.FormatBool(*resp.BooleanValue)
	case campaignTypes.QUESTION_TYPE_NUMBER:
		if resp.NumericValue == nil {
			return false
		}
		want, err := strconv.ParseFloat(strings.TrimSpace(conditionValue), 64)
		if err != nil {
			return false
		}
		return want == *resp.NumericValue
	case campaignTypes.QUESTION_TYPE_SELECT, campaignTypes.QUESTION_TYPE_RADIO:
		for _, v := range resp.SelectedValues {
			if strings.EqualFold(v, conditionValue) {
				return true
			}
		}
		return false
	case campaignTypes.QUESTION_TYPE_MULTISELECT, campaignTypes.QUESTION_TYPE_CHECKBOX:
		// Equality on a multi-valued answer means the single selected value
		// matches; broader matching belongs to the contains condition.
		if len(resp.SelectedValues) != 1 {
			return false
		}
		return strings.EqualFold(resp.SelectedValues[0], conditionValue)
	case campaignTypes.QUESTION_TYPE_DATE:
		return conditionValue == strconv.FormatInt(resp.DateValue, 10)
	default:
		return strings.EqualFold(resp.TextValue, conditionValue)
	}
}

func compareNumeric(conditionValue string, resp *campaignTypes.Response, cmp func(a, b float64) bool) bool {
	if resp == nil || resp.NumericValue == nil {
		return false
	}
	threshold, err := strconv.ParseFloat(strings.TrimSpace(conditionValue), 64)
	if err != nil {
		return false
	}
	return cmp(*resp.NumericValue, threshold)
}

func valueContains(conditionValue string, resp *campaignTypes.Response) bool {
	if len(resp.SelectedValues) > 0 {
		for _, v := range resp.SelectedValues {
			if v == conditionValue {
				return true
			}
		}
		return false
	}
	if resp.TextValue != "" {
		return strings.Contains(strings.ToLower(resp.TextValue), strings.ToLower(conditionValue))
	}
	return false
}
