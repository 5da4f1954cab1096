package lesson

type QuestionType string

const (
	QuestionTypeAddition QuestionType = "addition"
	QuestionTypeCounting QuestionType = "counting"
	QuestionTypeShapes   QuestionType = "shapes"
)

type Question struct {
	ID       int
	Type     QuestionType
	Question string
	// Answer is compared after lower-casing and trimming.
	Answer string
	// Visual is shown next to the question, e.g. "🍎🍎🍎 + 🍎🍎 = ?".
	Visual  string
	Hint    string
	Options []string
}

func DefaultQuestions() []Question {
	return []Question{
		{
			ID:       1,
			Type:     QuestionTypeAddition,
			Question: "What is 3 + 2?",
			Answer:   "5",
			Visual:   "🍎🍎🍎 + 🍎🍎 = ?",
			Hint:     "Count all the apples together!",
		},
		{
			ID:       2,
			Type:     QuestionTypeCounting,
			Question: "How many stars do you see?",
			Answer:   "4",
			Visual:   "⭐⭐⭐⭐",
			Hint:     "Count each star one by one!",
		},
		{
			ID:       3,
			Type:     QuestionTypeAddition,
			Question: "What is 5 + 1?",
			Answer:   "6",
			Visual:   "🌟🌟🌟🌟🌟 + 🌟 = ?",
			Hint:     "Add one more star to the group!",
		},
		{
			ID:       4,
			Type:     QuestionTypeShapes,
			Question: "What shape is this?",
			Answer:   "circle",
			Visual:   "⭕",
			Options:  []string{"circle", "square", "triangle"},
			Hint:     "This shape is round like a ball!",
		},
		{
			ID:       5,
			Type:     QuestionTypeAddition,
			Question: "What is 4 + 3?",
			Answer:   "7",
			Visual:   "🎈🎈🎈🎈 + 🎈🎈🎈 = ?",
			Hint:     "Count all the balloons!",
		},
	}
}
