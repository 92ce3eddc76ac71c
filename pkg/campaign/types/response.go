package types

import "go.mongodb.org/mongo-driver/bson/primitive"

// Response holds the current answer to one question within one campaign
// assignment. A response row is never deleted: clearing blanks the value
// fields so change-tracking and delegation records keep their references.
type Response struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CampaignAssignmentID string             `bson:"campaignAssignmentID,omitempty" json:"campaignAssignmentId,omitempty"`
	QuestionID           string             `bson:"questionID,omitempty" json:"questionId,omitempty"`

	// Exactly one of the value fields is populated, matching the question type.
	TextValue      string   `bson:"textValue,omitempty" json:"textValue,omitempty"`
	NumericValue   *float64 `bson:"numericValue,omitempty" json:"numericValue,omitempty"`
	DateValue      int64    `bson:"dateValue,omitempty" json:"dateValue,omitempty"`
	BooleanValue   *bool    `bson:"booleanValue,omitempty" json:"booleanValue,omitempty"`
	SelectedValues []string `bson:"selectedValues,omitempty" json:"selectedValues,omitempty"`

	UpdatedAt int64  `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
	UpdatedBy string `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
}

// IsAnswered reports whether the response carries any substantive value.
func (r Response) IsAnswered() bool {
	return r.TextValue != "" ||
		r.NumericValue != nil ||
		r.DateValue != 0 ||
		r.BooleanValue != nil ||
		len(r.SelectedValues) > 0
}

// Clear blanks all value fields, preserving the row and its identifiers.
func (r *Response) Clear() {
	r.TextValue = ""
	r.NumericValue = nil
	r.DateValue = 0
	r.BooleanValue = nil
	r.SelectedValues = nil
}

// ResponseValue is the write payload for saving an answer.
type ResponseValue struct {
	TextValue      string   `json:"textValue,omitempty"`
	NumericValue   *float64 `json:"numericValue,omitempty"`
	DateValue      int64    `json:"dateValue,omitempty"`
	BooleanValue   *bool    `json:"booleanValue,omitempty"`
	SelectedValues []string `json:"selectedValues,omitempty"`
}

// IsEmpty reports whether the payload carries no value (a clear request).
func (v ResponseValue) IsEmpty() bool {
	return v.TextValue == "" &&
		v.NumericValue == nil &&
		v.DateValue == 0 &&
		v.BooleanValue == nil &&
		len(v.SelectedValues) == 0
}
