package storage

import "sync"

// DraftStorage remembers chats that are about to send a question for a quiz.
type DraftStorage struct {
	mu      sync.Mutex
	pending map[int64]int
}

func NewDraftStorage() *DraftStorage {
	return &DraftStorage{pending: make(map[int64]int)}
}

// Expect records that the next message of the chat is a question for quizID.
func (s *DraftStorage) Expect(chatID int64, quizID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[chatID] = quizID
}

// Take returns and forgets the quiz the chat is adding a question to.
func (s *DraftStorage) Take(chatID int64) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	quizID, ok := s.pending[chatID]
	delete(s.pending, chatID)
	return quizID, ok
}

func (s *DraftStorage) Forget(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, chatID)
}
