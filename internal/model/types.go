package model

import "time"

// Category tags a question type with its family. The set is closed; anything
// outside it is treated as unrecognized by the selection policy.
type Category string

const (
	CategoryMain      Category = "main"
	CategoryDetail    Category = "detail"
	CategoryInference Category = "inference"
	CategoryFlow      Category = "flow"
	CategoryVocab     Category = "vocab"
	CategoryTone      Category = "tone"
)

// Recognized reports whether the category belongs to the closed set.
func (c Category) Recognized() bool {
	switch c {
	case CategoryMain, CategoryDetail, CategoryInference, CategoryFlow, CategoryVocab, CategoryTone:
		return true
	}
	return false
}

// QuestionType is a catalog entry describing one generatable question type.
// Lower priority number means higher precedence.
type QuestionType struct {
	TypeID      string   `json:"typeId" bson:"typeId"`
	Name        string   `json:"name" bson:"name"`
	Priority    int      `json:"priority" bson:"priority"`
	Category    Category `json:"category" bson:"category"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`
}

// Requirement is one necessary condition on a passage attribute that a type
// must satisfy to be eligible. Requirements for the same type are ANDed;
// a type with zero requirements is unconditionally eligible.
type Requirement struct {
	TypeID   string      `json:"typeId" bson:"typeId"`
	Feature  string      `json:"feature" bson:"feature"`
	Operator string      `json:"operator" bson:"operator"`
	Value    interface{} `json:"value" bson:"value"`
}

// AttributeRecord maps feature names to authored passage attribute values
// (numbers, booleans, or category strings such as "tone").
type AttributeRecord map[string]interface{}

// Decision is the output of one full type-selection run. It is derived per
// request and never persisted.
type Decision struct {
	Eligibility map[string]bool `json:"eligibility"`
	FinalTypes  []string        `json:"finalTypes"`
	TypeDetails []QuestionType  `json:"typeDetails"`
	Capacity    int             `json:"capacity"`
	DecidedAt   time.Time       `json:"decidedAt"`
}
