package telegram

import (
	"strconv"
	"strings"

	"github.com/aliskhannn/emoquiz-bot/internal/domain/entities"
)

// Callback action constants.
const (
	actionQuiz   = "quiz"   // quiz:<quiz id>
	actionAnswer = "answer" // answer:<session id>:<index>:<option position>
	actionSubmit = "submit" // submit:<session id>:<index>
	actionRetry  = "retry"  // retry:<session id>:<index>
	actionCancel = "cancel" // cancel:<session id>
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// sessionRef identifies the question a session button belongs to.
type sessionRef struct {
	SessionID string
	Index     int
}

// sessionRef parses the session and question index of a session button.
func (cd callbackData) sessionRef() (sessionRef, bool) {
	if len(cd.Params) < 2 || cd.Params[0] == "" {
		return sessionRef{}, false
	}
	idx, err := strconv.Atoi(cd.Params[1])
	if err != nil || idx < 0 {
		return sessionRef{}, false
	}
	return sessionRef{SessionID: cd.Params[0], Index: idx}, true
}

func buildQuizStartCallback(quizID int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{strconv.Itoa(quizID)},
	}.encode()
}

// buildAnswerCallback builds callback data for selecting an option. The
// option is referenced by position, labels may be long or contain ':'.
func buildAnswerCallback(sessionID string, index, option int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{sessionID, strconv.Itoa(index), strconv.Itoa(option)},
	}.encode()
}

// optionLabel resolves the option position of an answer button against the
// question it was built for.
func (cd callbackData) optionLabel(q *entities.Question) (string, bool) {
	if q == nil || len(cd.Params) < 3 {
		return "", false
	}
	pos, err := strconv.Atoi(cd.Params[2])
	if err != nil || pos < 0 || pos >= len(q.Options) {
		return "", false
	}
	return q.Options[pos].Label, true
}

func buildSubmitCallback(sessionID string, index int) string {
	return callbackData{
		Action: actionSubmit,
		Params: []string{sessionID, strconv.Itoa(index)},
	}.encode()
}

func buildRetryCallback(sessionID string, index int) string {
	return callbackData{
		Action: actionRetry,
		Params: []string{sessionID, strconv.Itoa(index)},
	}.encode()
}

func buildCancelCallback(sessionID string) string {
	return callbackData{
		Action: actionCancel,
		Params: []string{sessionID},
	}.encode()
}
