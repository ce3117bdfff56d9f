package entities

// Completion is handed to the completion view when a session ends.
// UserAnswers is aligned with Questions; an empty label means no answer.
type Completion struct {
	QuizID      int
	Questions   []Question
	UserAnswers []string
}

// Score returns the number of correctly answered questions.
func (c Completion) Score() int {
	score := 0
	for i, q := range c.Questions {
		if i < len(c.UserAnswers) && q.IsCorrect(c.UserAnswers[i]) {
			score++
		}
	}
	return score
}

// Total returns the number of questions in the session.
func (c Completion) Total() int {
	return len(c.Questions)
}
