package openai

import "github.com/sashabaranov/go-openai/jsonschema"

// Envelope keys for array-shaped payloads.
const (
	cardsKey = "cards"
	planKey  = "plan"
)

func strictObject(properties map[string]jsonschema.Definition, required ...string) jsonschema.Definition {
	return jsonschema.Definition{
		Type:                 jsonschema.Object,
		Properties:           properties,
		Required:             required,
		AdditionalProperties: false,
	}
}

func stringList() jsonschema.Definition {
	return jsonschema.Definition{
		Type:  jsonschema.Array,
		Items: &jsonschema.Definition{Type: jsonschema.String},
	}
}

func quizSchema() jsonschema.Definition {
	question := strictObject(map[string]jsonschema.Definition{
		"question": {Type: jsonschema.String},
		"options":  stringList(),
		"correctAnswerIndex": {
			Type:        jsonschema.Integer,
			Description: "Index of the correct option (0-based)",
		},
		"explanation": {Type: jsonschema.String},
	}, "question", "options", "correctAnswerIndex", "explanation")

	return strictObject(map[string]jsonschema.Definition{
		"title":     {Type: jsonschema.String},
		"questions": {Type: jsonschema.Array, Items: &question},
	}, "title", "questions")
}

func flashcardSchema() jsonschema.Definition {
	card := strictObject(map[string]jsonschema.Definition{
		"front": {Type: jsonschema.String, Description: "The term or question"},
		"back":  {Type: jsonschema.String, Description: "The definition or answer"},
	}, "front", "back")

	return strictObject(map[string]jsonschema.Definition{
		cardsKey: {Type: jsonschema.Array, Items: &card},
	}, cardsKey)
}

func studyPlanSchema() jsonschema.Definition {
	task := strictObject(map[string]jsonschema.Definition{
		"day":      {Type: jsonschema.String, Description: "e.g., Day 1"},
		"topics":   stringList(),
		"duration": {Type: jsonschema.String},
	}, "day", "topics", "duration")

	return strictObject(map[string]jsonschema.Definition{
		planKey: {Type: jsonschema.Array, Items: &task},
	}, planKey)
}
