package catalog

import "questdeck/internal/model"

// DefaultTypes is the built-in type catalog, used whenever the store is empty
// or unavailable. main_idea and detail carry no requirements so they stay
// unconditionally eligible.
func DefaultTypes() []model.QuestionType {
	return []model.QuestionType{
		{TypeID: "main_idea", Name: "Main Idea", Priority: 1, Category: model.CategoryMain,
			Description: "Identify the central point of the passage"},
		{TypeID: "detail", Name: "Supporting Detail", Priority: 2, Category: model.CategoryDetail,
			Description: "Locate a stated fact within the passage"},
		{TypeID: "title", Name: "Best Title", Priority: 3, Category: model.CategoryMain,
			Description: "Choose the most fitting title"},
		{TypeID: "vocab_in_context", Name: "Vocabulary in Context", Priority: 4, Category: model.CategoryVocab,
			Description: "Infer the meaning of a word from its context"},
		{TypeID: "inference_blank", Name: "Blank Inference", Priority: 5, Category: model.CategoryInference,
			Description: "Fill a removed phrase from contextual clues"},
		{TypeID: "inference_implication", Name: "Implied Meaning", Priority: 6, Category: model.CategoryInference,
			Description: "Infer what the author implies but does not state"},
		{TypeID: "flow_order", Name: "Paragraph Order", Priority: 7, Category: model.CategoryFlow,
			Description: "Restore the original paragraph sequence"},
		{TypeID: "flow_insertion", Name: "Sentence Insertion", Priority: 8, Category: model.CategoryFlow,
			Description: "Place a removed sentence back into the passage"},
		{TypeID: "tone_attitude", Name: "Tone and Attitude", Priority: 9, Category: model.CategoryTone,
			Description: "Identify the author's tone"},
	}
}

// DefaultRequirements is the built-in rule table matching DefaultTypes.
func DefaultRequirements() []model.Requirement {
	return []model.Requirement{
		{TypeID: "title", Feature: "paragraph_count", Operator: ">=", Value: 1},
		{TypeID: "vocab_in_context", Feature: "difficult_word_count", Operator: ">=", Value: 3},
		{TypeID: "inference_blank", Feature: "blank_suitability", Operator: ">=", Value: 3},
		{TypeID: "inference_implication", Feature: "tone", Operator: "in", Value: "evaluative,argumentative"},
		{TypeID: "flow_order", Feature: "paragraph_count", Operator: ">=", Value: 3},
		{TypeID: "flow_insertion", Feature: "sentence_count", Operator: ">=", Value: 5},
		{TypeID: "tone_attitude", Feature: "tone", Operator: "not_in", Value: "neutral"},
	}
}

// DefaultPassages seeds a couple of sample passages for local development.
func DefaultPassages() []model.Passage {
	return []model.Passage{
		{
			TextID: "T001",
			Title:  "The Honeybee Waggle Dance",
			Body: "When a forager bee returns to the hive, she performs a figure-eight dance " +
				"whose angle and duration encode the direction and distance of a food source. " +
				"Hive mates read the dance in complete darkness, translating vibration into flight plans.",
			Features: model.AttributeRecord{
				"tone":                 "neutral",
				"paragraph_count":      1,
				"sentence_count":       3,
				"difficult_word_count": 2,
				"blank_suitability":    2,
			},
		},
		{
			TextID: "T002",
			Title:  "Against the Attention Economy",
			Body: "Platforms that monetize attention do not merely compete for our time; they reshape " +
				"what we consider worth knowing. The feed rewards outrage over accuracy, and the " +
				"cumulative effect is a public square that mistakes volume for truth. We should treat " +
				"engagement metrics the way we treat any other pollutant: measure them, price them, " +
				"and hold their emitters to account.",
			Features: model.AttributeRecord{
				"tone":                 "evaluative",
				"paragraph_count":      3,
				"sentence_count":       7,
				"difficult_word_count": 5,
				"blank_suitability":    4,
			},
		},
	}
}
