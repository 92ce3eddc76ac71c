package engine

import (
	"sort"

	campaignTypes "github.com/esg-framework/esg-backend/pkg/campaign/types"
)

// DependencyGraph indexes a questionnaire's question->question visibility
// dependencies. Built once per questionnaire version; safe for concurrent
// reads after construction.
type DependencyGraph struct {
	questions  map[string]campaignTypes.Question
	deps       map[string][]campaignTypes.QuestionDependency
	dependents map[string][]string
	evalOrder  []string
}

// BuildDependencyGraph collects the dependency edges of all questions and
// validates them: self references and cycles are rejected before the graph is
// usable anywhere.
func BuildDependencyGraph(questions []campaignTypes.Question) (*DependencyGraph, error) {
	g := &DependencyGraph{
		questions:  make(map[string]campaignTypes.Question, len(questions)),
		deps:       make(map[string][]campaignTypes.QuestionDependency),
		dependents: make(map[string][]string),
	}

	for _, q := range questions {
		g.questions[q.ID] = q
	}

	for _, q := range questions {
		for _, dep := range q.Dependencies {
			if dep.DependsOnQuestionID == q.ID {
				return nil, ErrSelfDependency
			}
			if _, ok := g.questions[dep.DependsOnQuestionID]; !ok {
				return nil, ErrUnknownQuestion
			}
			g.deps[q.ID] = append(g.deps[q.ID], dep)
			g.dependents[dep.DependsOnQuestionID] = append(g.dependents[dep.DependsOnQuestionID], q.ID)
		}
	}

	order, err := g.topologicalOrder(questions)
	if err != nil {
		return nil, err
	}
	g.evalOrder = order

	return g, nil
}

// ValidateNewDependency checks whether adding dep to the given questions would
// keep the dependency set a DAG. Used at write time, before persistence.
func ValidateNewDependency(questions []campaignTypes.Question, dep campaignTypes.QuestionDependency) error {
	if dep.QuestionID == dep.DependsOnQuestionID {
		return ErrSelfDependency
	}

	extended := make([]campaignTypes.Question, len(questions))
	copy(extended, questions)
	found := false
	for i, q := range extended {
		if q.ID == dep.QuestionID {
			withDep := q
			withDep.Dependencies = append(append([]campaignTypes.QuestionDependency{}, q.Dependencies...), dep)
			extended[i] = withDep
			found = true
			break
		}
	}
	if !found {
		return ErrUnknownQuestion
	}

	_, err := BuildDependencyGraph(extended)
	return err
}

// EvalOrder returns a topological order of the question ids: every question
// appears after all questions it depends on.
func (g *DependencyGraph) EvalOrder() []string {
	return g.evalOrder
}

// DependenciesOf returns the dependency edges of one question (nil if it has
// none).
func (g *DependencyGraph) DependenciesOf(questionID string) []campaignTypes.QuestionDependency {
	return g.deps[questionID]
}

// DependentsOf returns the ids of the questions that directly depend on the
// given question (nil if none do).
func (g *DependencyGraph) DependentsOf(questionID string) []string {
	return g.dependents[questionID]
}

// QuestionByID looks up a question definition in the graph.
func (g *DependencyGraph) QuestionByID(questionID string) (campaignTypes.Question, bool) {
	q, ok := g.questions[questionID]
	return q, ok
}

// topologicalOrder runs Kahn's algorithm. Leftover nodes after the queue
// drains mean the edge set contains a cycle. Roots are processed in display
// order so the evaluation order is deterministic.
func (g *DependencyGraph) topologicalOrder(questions []campaignTypes.Question) ([]string, error) {
	inDegree := make(map[string]int, len(questions))
	for _, q := range questions {
		inDegree[q.ID] = len(g.deps[q.ID])
	}

	queue := []string{}
	for _, q := range questions {
		if inDegree[q.ID] == 0 {
			queue = append(queue, q.ID)
		}
	}
	g.sortByDisplayOrder(queue)

	order := make([]string, 0, len(questions))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		order = append(order, current)

		released := []string{}
		for _, dependent := range g.dependents[current] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				released = append(released, dependent)
			}
		}
		g.sortByDisplayOrder(released)
		queue = append(queue, released...)
	}

	if len(order) != len(questions) {
		return nil, ErrCycleDetected
	}
	return order, nil
}

func (g *DependencyGraph) sortByDisplayOrder(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		qi := g.questions[ids[i]]
		qj := g.questions[ids[j]]
		if qi.DisplayOrder != qj.DisplayOrder {
			return qi.DisplayOrder < qj.DisplayOrder
		}
		return qi.ID < qj.ID
	})
}
