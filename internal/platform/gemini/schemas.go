package gemini

import "google.golang.org/genai"

func int64Ptr(v int) *int64 {
	n := int64(v)
	return &n
}

func stringSchema(description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: description}
}

// quizSchema declares an object with a title and exactly questions items.
func quizSchema(questions int) *genai.Schema {
	question := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"question": stringSchema(""),
			"options": {
				Type:     genai.TypeArray,
				Items:    stringSchema(""),
				MinItems: int64Ptr(2),
			},
			"correctAnswerIndex": {
				Type:        genai.TypeInteger,
				Description: "Index of the correct option (0-based)",
			},
			"explanation": stringSchema("Why the correct answer is right"),
		},
		Required:         []string{"question", "options", "correctAnswerIndex", "explanation"},
		PropertyOrdering: []string{"question", "options", "correctAnswerIndex", "explanation"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title": stringSchema(""),
			"questions": {
				Type:     genai.TypeArray,
				Items:    question,
				MinItems: int64Ptr(questions),
				MaxItems: int64Ptr(questions),
			},
		},
		Required:         []string{"title", "questions"},
		PropertyOrdering: []string{"title", "questions"},
	}
}

// flashcardSchema declares an array of exactly cards front/back pairs.
func flashcardSchema(cards int) *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"front": stringSchema("The term or question"),
				"back":  stringSchema("The definition or answer"),
			},
			Required:         []string{"front", "back"},
			PropertyOrdering: []string{"front", "back"},
		},
		MinItems: int64Ptr(cards),
		MaxItems: int64Ptr(cards),
	}
}

// studyPlanSchema declares an array with one entry per day.
func studyPlanSchema(days int) *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"day": stringSchema("e.g., Day 1"),
				"topics": {
					Type:  genai.TypeArray,
					Items: stringSchema(""),
				},
				"duration": stringSchema("e.g., 2 hours"),
			},
			Required:         []string{"day", "topics", "duration"},
			PropertyOrdering: []string{"day", "topics", "duration"},
		},
		MinItems: int64Ptr(days),
		MaxItems: int64Ptr(days),
	}
}
