package service

import "errors"

var (
	ErrNotLoggedIn  = errors.New("chat is not logged in")
	ErrForbidden    = errors.New("action is not allowed for this role")
	ErrNoActiveQuiz = errors.New("no active quiz in this chat")
	ErrEmptyQuiz    = errors.New("quiz has no questions yet")
)
