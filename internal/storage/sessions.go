package storage

import (
	"sync"
	"time"

	"github.com/aliskhannn/emoquiz-bot/internal/camera"
	"github.com/aliskhannn/emoquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/emoquiz-bot/internal/session"
)

// ActiveQuiz is a quiz being taken in one chat.
type ActiveQuiz struct {
	Session *session.Session
	Camera  *camera.Switch
	Account entities.Account
	Title   string

	messageID    int       // message showing the question card
	lastActivity time.Time // last user action
}

// SessionStorage provides in-memory storage for active quizzes by chat ID.
// Nothing here survives a restart.
type SessionStorage struct {
	mu      sync.RWMutex
	quizzes map[int64]*ActiveQuiz
	now     func() time.Time
}

// NewSessionStorage creates a new SessionStorage.
func NewSessionStorage() *SessionStorage {
	return &SessionStorage{
		quizzes: make(map[int64]*ActiveQuiz),
		now:     time.Now,
	}
}

// Store saves the active quiz of a chat and returns the one it replaced.
func (s *SessionStorage) Store(chatID int64, q *ActiveQuiz) *ActiveQuiz {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.quizzes[chatID]
	q.lastActivity = s.now()
	s.quizzes[chatID] = q
	return prev
}

// Get retrieves the active quiz of a chat.
func (s *SessionStorage) Get(chatID int64) (*ActiveQuiz, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.quizzes[chatID]
	return q, ok
}

// Touch records user activity in a chat.
func (s *SessionStorage) Touch(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q, ok := s.quizzes[chatID]; ok {
		q.lastActivity = s.now()
	}
}

// SetMessageID remembers the message that shows the question card.
func (s *SessionStorage) SetMessageID(chatID int64, messageID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q, ok := s.quizzes[chatID]; ok {
		q.messageID = messageID
	}
}

// MessageID returns the message that shows the question card.
func (s *SessionStorage) MessageID(chatID int64) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.quizzes[chatID]
	if !ok || q.messageID == 0 {
		return 0, false
	}
	return q.messageID, true
}

// Delete removes the active quiz of a chat, but only if it is still q.
// A nil q removes whatever is stored.
func (s *SessionStorage) Delete(chatID int64, q *ActiveQuiz) *ActiveQuiz {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.quizzes[chatID]
	if !ok || (q != nil && cur != q) {
		return nil
	}
	delete(s.quizzes, chatID)
	return cur
}

// RemoveIdle removes quizzes without activity since before and returns
// them keyed by chat ID.
func (s *SessionStorage) RemoveIdle(before time.Time) map[int64]*ActiveQuiz {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := make(map[int64]*ActiveQuiz)
	for chatID, q := range s.quizzes {
		if q.lastActivity.Before(before) {
			removed[chatID] = q
			delete(s.quizzes, chatID)
		}
	}
	return removed
}

// Len returns the number of active quizzes.
func (s *SessionStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.quizzes)
}
