package events

const (
	KindLessonAnswerChecked Kind = "lesson.answer_checked"
	KindLessonCompleted     Kind = "lesson.completed"
)

type LessonAnswerChecked struct {
	Base
	QuestionIndex int
	Answer        string
	Correct       bool
	Hearts        int
}

func NewLessonAnswerChecked(questionIndex int, answer string, correct bool, hearts int) LessonAnswerChecked {
	return LessonAnswerChecked{
		Base:          NewBase(KindLessonAnswerChecked, 0),
		QuestionIndex: questionIndex,
		Answer:        answer,
		Correct:       correct,
		Hearts:        hearts,
	}
}

type LessonCompleted struct {
	Base
	Correct int
	Total   int
}

func NewLessonCompleted(correct, total int) LessonCompleted {
	return LessonCompleted{Base: NewBase(KindLessonCompleted, 0), Correct: correct, Total: total}
}
