package entities

// CaptureBatch holds the JPEG frames captured for one question attempt.
// It may hold fewer frames than requested, including none.
type CaptureBatch struct {
	Frames [][]byte
}

func (b CaptureBatch) Len() int {
	return len(b.Frames)
}

// Submission is the outbound record of one answered question. It is built
// per attempt and never retained.
type Submission struct {
	QuizID         int
	UserID         string
	QuestionID     int
	SelectedAnswer string // selected choice label
	Topic          string
	IsCorrect      bool
	TimeTaken      int // whole seconds since the question became current
	Images         CaptureBatch
}

// NewSubmission builds the record for answering q with selected.
func NewSubmission(quizID int, userID string, q Question, selected string, timeTaken int, batch CaptureBatch) Submission {
	return Submission{
		QuizID:         quizID,
		UserID:         userID,
		QuestionID:     q.ID,
		SelectedAnswer: selected,
		Topic:          q.Topic,
		IsCorrect:      q.IsCorrect(selected),
		TimeTaken:      timeTaken,
		Images:         batch,
	}
}
