// Package session holds the per-quiz answer session state machine.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aliskhannn/emoquiz-bot/internal/domain/entities"
)

var (
	ErrNoQuestions     = errors.New("quiz has no questions")
	ErrNoChoice        = errors.New("no answer selected")
	ErrUnknownChoice   = errors.New("unknown answer option")
	ErrSubmitInFlight  = errors.New("answer is already being submitted")
	ErrSessionComplete = errors.New("quiz is already complete")
	ErrSessionClosed   = errors.New("quiz session was closed")
)

// Snapshot is an immutable view of a session, passed to change listeners.
type Snapshot struct {
	ID        uuid.UUID
	QuizID    int
	State     State
	Index     int // equals Total once Complete
	Total     int
	Selected  string
	Question  *entities.Question // nil once Complete
	LastError error
}

// Attempt is the data of one submit, captured when it starts.
type Attempt struct {
	Index    int
	Question entities.Question
	Selected string
	Elapsed  int // whole seconds since the question became current
}

// Session tracks a user's progress through one quiz. It is mutated only
// through its transition methods and is safe for concurrent use.
type Session struct {
	mu sync.Mutex

	id        uuid.UUID
	quizID    int
	questions []entities.Question
	answers   []string

	state     State
	index     int
	selected  string
	startedAt time.Time
	lastErr   error
	closed    bool

	seq uint64 // bumped on every transition

	now      func() time.Time
	onChange func(Snapshot)

	notifyMu sync.Mutex
	notified uint64 // seq of the last snapshot passed to onChange
}

type Option func(*Session)

// WithClock replaces time.Now, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithListener registers a function called after every transition.
// It runs without the session lock held. Calls never overlap, and a
// snapshot older than one already delivered is dropped.
func WithListener(fn func(Snapshot)) Option {
	return func(s *Session) { s.onChange = fn }
}

// New starts a session at the first question of questions.
func New(quizID int, questions []entities.Question, opts ...Option) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	s := &Session{
		id:        uuid.New(),
		quizID:    quizID,
		questions: append([]entities.Question(nil), questions...),
		answers:   make([]string, len(questions)),
		state:     Answering,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.startedAt = s.now()

	return s, nil
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

func (s *Session) QuizID() int {
	return s.quizID
}

// Snapshot returns the current view of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID:        s.id,
		QuizID:    s.quizID,
		State:     s.state,
		Index:     s.index,
		Total:     len(s.questions),
		Selected:  s.selected,
		LastError: s.lastErr,
	}
	if s.index < len(s.questions) {
		q := s.questions[s.index]
		snap.Question = &q
	}
	return snap
}

// Select sets the choice for the current question. A failed session
// returns to Answering at the same index.
func (s *Session) Select(label string) error {
	s.mu.Lock()
	if err := s.checkOpenLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	if s.state == Submitting {
		s.mu.Unlock()
		return ErrSubmitInFlight
	}
	if !s.questions[s.index].Options.Has(label) {
		s.mu.Unlock()
		return ErrUnknownChoice
	}

	s.selected = label
	s.state = Answering
	snap, seq := s.changedLocked()
	s.mu.Unlock()

	s.notify(snap, seq)
	return nil
}

// BeginSubmit moves the session to Submitting and returns the attempt to
// submit. It is refused while no choice is set or while another submit is
// in flight; a refused call does not change the session.
func (s *Session) BeginSubmit() (Attempt, error) {
	s.mu.Lock()
	if err := s.checkOpenLocked(); err != nil {
		s.mu.Unlock()
		return Attempt{}, err
	}
	if s.state == Submitting {
		s.mu.Unlock()
		return Attempt{}, ErrSubmitInFlight
	}
	if s.selected == "" {
		s.mu.Unlock()
		return Attempt{}, ErrNoChoice
	}

	s.state = Submitting
	s.lastErr = nil

	attempt := Attempt{
		Index:    s.index,
		Question: s.questions[s.index],
		Selected: s.selected,
		Elapsed:  int(s.now().Sub(s.startedAt) / time.Second),
	}
	snap, seq := s.changedLocked()
	s.mu.Unlock()

	s.notify(snap, seq)
	return attempt, nil
}

// Resolve applies the outcome of attempt. On success the session advances
// to the next question or completes; on failure it moves to Failed with
// index and choice unchanged. Resolving a closed session or a stale
// attempt is a no-op. It reports whether the session is now Complete.
func (s *Session) Resolve(attempt Attempt, err error) bool {
	s.mu.Lock()
	if s.closed || s.state != Submitting || s.index != attempt.Index {
		s.mu.Unlock()
		return false
	}

	if err != nil {
		s.state = Failed
		s.lastErr = err
	} else {
		s.answers[s.index] = attempt.Selected
		s.selected = ""
		s.index++
		if s.index == len(s.questions) {
			s.state = Complete
		} else {
			s.state = Answering
			s.startedAt = s.now()
		}
	}

	complete := s.state == Complete
	snap, seq := s.changedLocked()
	s.mu.Unlock()

	s.notify(snap, seq)
	return complete
}

// Close abandons the session. Later transitions fail or are no-ops.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Completion returns the handoff for the completion view.
func (s *Session) Completion() entities.Completion {
	s.mu.Lock()
	defer s.mu.Unlock()

	return entities.Completion{
		QuizID:      s.quizID,
		Questions:   append([]entities.Question(nil), s.questions...),
		UserAnswers: append([]string(nil), s.answers...),
	}
}

func (s *Session) checkOpenLocked() error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.state == Complete {
		return ErrSessionComplete
	}
	return nil
}

// changedLocked records a transition and returns its snapshot.
func (s *Session) changedLocked() (Snapshot, uint64) {
	s.seq++
	return s.snapshotLocked(), s.seq
}

func (s *Session) notify(snap Snapshot, seq uint64) {
	if s.onChange == nil {
		return
	}

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	if seq <= s.notified {
		return
	}
	s.notified = seq
	s.onChange(snap)
}
