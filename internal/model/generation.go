package model

import "time"

// GeneratedQuestion is one AI-generated question for a passage
type GeneratedQuestion struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	TextID      string    `json:"textId" bson:"textId"`
	TypeID      string    `json:"typeId" bson:"typeId"`
	Prompt      string    `json:"prompt" bson:"prompt"`
	Options     []string  `json:"options,omitempty" bson:"options,omitempty"`
	Answer      string    `json:"answer" bson:"answer"`
	Explanation string    `json:"explanation,omitempty" bson:"explanation,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// GenerationResult bundles the questions produced for one passage request
type GenerationResult struct {
	TextID    string              `json:"textId"`
	TypeIDs   []string            `json:"typeIds"`
	Questions []GeneratedQuestion `json:"questions"`
	Mocked    bool                `json:"mocked"` // true when the AI backend was unavailable
	CreatedAt time.Time           `json:"createdAt"`
}

// GeminiGeneration is the AI response schema for question generation
type GeminiGeneration struct {
	Questions []GeneratedQuestion `json:"questions"`
}
