package flow

import (
	"context"
	"sync"
	"time"

	"github.com/sardorasatov93-code/Vakansiya-bot/core/logger"
	"log/slog"
)

// Session holds one applicant's in-progress intake, keyed by chat id.
// Fields are populated strictly in step order; anything past the current
// step is always zero.
type Session struct {
	Step      Step
	District  string
	Job       string
	FullName  string
	Phone     string
	Documents []Document
	Passport  string

	// DraftDistrict remembers the district menu the applicant browsed
	// before committing to a job; used to rebuild job menus on back nav.
	DraftDistrict string

	// LastActivity is shared with the sweeper goroutine; it is read and
	// written only under the store's lock (see Touch and sweep).
	LastActivity time.Time
}

// SessionStore maps chat ids to active sessions. Creation happens on the
// first step-triggering event, deletion on terminal paths or restart.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewSessionStore returns an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[int64]*Session)}
}

// Get returns the session for a chat, if any.
func (s *SessionStore) Get(chatID int64) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[chatID]
	return sess, ok
}

// GetOrCreate returns the chat's session, creating an empty one if absent.
func (s *SessionStore) GetOrCreate(chatID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[chatID]
	if !ok {
		sess = &Session{LastActivity: time.Now()}
		s.sessions[chatID] = sess
	}
	return sess
}

// Touch updates the session's activity timestamp.
func (s *SessionStore) Touch(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[chatID]; ok {
		sess.LastActivity = time.Now()
	}
}

// Delete removes a chat's session.
func (s *SessionStore) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}

// Len reports the number of active sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// StartSweeper evicts sessions idle longer than ttl. A ttl of zero
// disables eviction entirely and the call returns immediately.
func (s *SessionStore) StartSweeper(ctx context.Context, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	go func() {
		interval := ttl / 4
		if interval < time.Minute {
			interval = time.Minute
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.sweep(ttl); n > 0 {
					logger.Info(ctx, "flow", "session.evicted",
						slog.Int("count", n),
						slog.Duration("ttl", ttl),
					)
				}
			}
		}
	}()
}

func (s *SessionStore) sweep(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	cutoff := time.Now().Add(-ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for chatID, sess := range s.sessions {
		if sess.LastActivity.Before(cutoff) {
			delete(s.sessions, chatID)
			n++
		}
	}
	return n
}
