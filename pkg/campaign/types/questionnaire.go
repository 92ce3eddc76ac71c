package types

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	QUESTION_TYPE_TEXT        = "text"
	QUESTION_TYPE_LONG_TEXT   = "longText"
	QUESTION_TYPE_NUMBER      = "number"
	QUESTION_TYPE_DATE        = "date"
	QUESTION_TYPE_YES_NO      = "yesNo"
	QUESTION_TYPE_SELECT      = "select"
	QUESTION_TYPE_RADIO       = "radio"
	QUESTION_TYPE_MULTISELECT = "multiSelect"
	QUESTION_TYPE_CHECKBOX    = "checkbox"
	QUESTION_TYPE_FILE_UPLOAD = "fileUpload"
)

const (
	CONDITION_TYPE_EQUALS          = "equals"
	CONDITION_TYPE_NOT_EQUALS      = "notEquals"
	CONDITION_TYPE_IS_ANSWERED     = "isAnswered"
	CONDITION_TYPE_IS_NOT_ANSWERED = "isNotAnswered"
	CONDITION_TYPE_GREATER_THAN    = "greaterThan"
	CONDITION_TYPE_LESS_THAN       = "lessThan"
	CONDITION_TYPE_CONTAINS        = "contains"
)

// SECTION_OTHER groups questions that carry no section label of their own.
const SECTION_OTHER = "Other"

type Questionnaire struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	QuestionnaireKey string             `bson:"questionnaireKey,omitempty" json:"questionnaireKey,omitempty"`
	Name             string             `bson:"name,omitempty" json:"name,omitempty"`
	Description      string             `bson:"description,omitempty" json:"description,omitempty"`
	VersionID        string             `bson:"versionID,omitempty" json:"versionId,omitempty"`
	Published        int64              `bson:"published,omitempty" json:"published,omitempty"`
	Unpublished      int64              `bson:"unpublished,omitempty" json:"unpublished,omitempty"`
	Questions        []Question         `bson:"questions,omitempty" json:"questions,omitempty"`
	Metadata         map[string]string  `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

type Question struct {
	ID           string               `bson:"id" json:"id"`
	Text         string               `bson:"text,omitempty" json:"text,omitempty"`
	Section      string               `bson:"section,omitempty" json:"section,omitempty"`
	QuestionType string               `bson:"questionType,omitempty" json:"questionType,omitempty"`
	IsRequired   bool                 `bson:"isRequired,omitempty" json:"isRequired,omitempty"`
	DisplayOrder int                  `bson:"displayOrder,omitempty" json:"displayOrder,omitempty"`
	Options      []string             `bson:"options,omitempty" json:"options,omitempty"`
	Dependencies []QuestionDependency `bson:"dependencies,omitempty" json:"dependencies,omitempty"`
}

// SectionOrOther returns the section label used for grouping, with the
// "Other" sentinel for questions that have no section.
func (q Question) SectionOrOther() string {
	if q.Section == "" {
		return SECTION_OTHER
	}
	return q.Section
}

type QuestionDependency struct {
	QuestionID          string `bson:"questionID" json:"questionId"`
	DependsOnQuestionID string `bson:"dependsOnQuestionID" json:"dependsOnQuestionId"`
	ConditionType       string `bson:"conditionType" json:"conditionType"`
	ConditionValue      string `bson:"conditionValue,omitempty" json:"conditionValue,omitempty"`
}
