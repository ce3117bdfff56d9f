// messages.go contains message templates and MarkdownV2 helpers.

package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	msgInternalError      = "Something went wrong. Please try again later."
	msgUnknownCommand     = "Unknown command. Send /help to see what I can do."
	msgNotLoggedIn        = "Please log in first: /login <username> <password>"
	msgForbidden          = "This action is not available for your account."
	msgNoActiveQuiz       = "You have no running quiz. Pick one with /quizzes."
	msgEmptyQuiz          = "This quiz has no questions yet."
	msgQuizNotFound       = "Quiz not found."
	msgInvalidCredentials = "Invalid credentials."
	msgNoChoice           = "Pick an answer first."
	msgUnknownChoice      = "There is no such option."
	msgSubmitInFlight     = "Your answer is being submitted, please wait."
	msgSessionComplete    = "This quiz is already complete."
	msgSessionClosed      = "This quiz was closed."
	msgStaleButton        = "This question is no longer active."
	msgServiceTimeout     = "The quiz service did not answer in time. Try again."
	msgServiceUnreachable = "Cannot reach the quiz service. Check the connection and try again."
	msgSubmitFailed       = "Submission failed."

	msgUsageLogin       = "Usage: /login <username> <password>"
	msgUsageAdmin       = "Usage: /admin <email> <password>"
	msgUsageQuiz        = "Usage: /quiz <quiz id>"
	msgUsageNewQuiz     = "Usage: /newquiz <question count> <title>"
	msgUsageAddQuestion = "Usage: /addquestion <quiz id>"
	msgUsageDeleteQuiz  = "Usage: /deletequiz <quiz id>"
	msgUsageAnalyze     = "Usage: /analyze <quiz id>"

	msgLoggedOut        = "You are logged out."
	msgQuizCancelled    = "Quiz cancelled."
	msgNoQuizzes        = "There are no quizzes yet."
	msgNoRecommendation = "No results yet. Finish a quiz and ask again later."
	msgCameraOn         = "📷 Camera is on. Frames are captured while you answer."
	msgCameraOff        = "🚫 Camera is off. Answers are sent without frames."
	msgSubmitting       = "⏳ Submitting your answer..."
)

const msgHelp = `Emotion-aware quizzes.

Students:
/login <username> <password> - log in
/quizzes - list quizzes
/quiz <id> - start a quiz
/camera - turn frame capture on or off
/cancel - leave the running quiz
/recommendations - your results and recommendations

Lecturers:
/admin <email> <password> - log in as lecturer
/newquiz <count> <title> - create a quiz
/addquestion <quiz id> - add a question
/deletequiz <quiz id> - delete a quiz
/analyze <quiz id> - analyze answers of a quiz

/logout - log out`

const msgQuestionTemplate = `Send the question as one message:

What is 2 + 2?
A: 3
B: 4
C: 5
correct: B
topic: arithmetic`

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

// buildProgressBar creates an ASCII progress bar.
func buildProgressBar(current, total, length int) string {
	if total == 0 {
		return "[" + strings.Repeat("░", length) + "]"
	}

	filled := current * length / total
	if filled > length {
		filled = length
	}

	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", length-filled) + "]"
}
