package engine

import (
	campaignTypes "github.com/esg-framework/esg-backend/pkg/campaign/types"
)

// AssignmentSnapshot bundles everything the engine needs about one campaign
// assignment. The caller loads it under its own consistency boundary; the
// engine performs no I/O of its own.
type AssignmentSnapshot struct {
	Assignment          campaignTypes.CampaignAssignment
	Questions           []campaignTypes.Question
	Responses           []campaignTypes.Response
	Delegations         []campaignTypes.Delegation
	QuestionAssignments []campaignTypes.QuestionAssignment
	ReviewAssignments   []campaignTypes.ReviewAssignment
	ReviewComments      []campaignTypes.ReviewComment
}

// SectionMembers resolves the current members of a section against the live
// question list. Membership is recomputed on every call on purpose: questions
// added to a section later are picked up by existing section grants.
func (s AssignmentSnapshot) SectionMembers(sectionName string) []string {
	members := []string{}
	for _, q := range s.Questions {
		if q.SectionOrOther() == sectionName {
			members = append(members, q.ID)
		}
	}
	return members
}

// ResponseForQuestion returns the stored response row for one question, or
// nil if none exists yet.
func (s AssignmentSnapshot) ResponseForQuestion(questionID string) *campaignTypes.Response {
	for i := range s.Responses {
		if s.Responses[i].QuestionID == questionID {
			return &s.Responses[i]
		}
	}
	return nil
}
