package model

import "time"

// Passage is an authored text with the attribute record that drives
// question-type selection
type Passage struct {
	TextID    string          `json:"textId" bson:"textId"`
	Title     string          `json:"title" bson:"title"`
	Body      string          `json:"body" bson:"body"`
	Features  AttributeRecord `json:"features" bson:"features"`
	CreatedAt time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt" bson:"updatedAt"`
}
