package server

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

type session struct {
	userID  int64
	expires time.Time
}

// sessionStore is an in-memory token store. Tokens are random 128-bit
// hex strings carried in an HTTP-only cookie. Entries expire lazily on
// lookup.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]session
	ttl      time.Duration
}

func newSessionStore(ttl time.Duration) *sessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &sessionStore{
		sessions: make(map[string]session),
		ttl:      ttl,
	}
}

func (s *sessionStore) create(userID int64) string {
	buf := make([]byte, 16)
	rand.Read(buf)
	token := hex.EncodeToString(buf)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = session{userID: userID, expires: time.Now().Add(s.ttl)}
	return token
}

// lookup returns the user bound to a token, expiring stale entries.
func (s *sessionStore) lookup(token string) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return 0, false
	}
	if time.Now().After(sess.expires) {
		delete(s.sessions, token)
		return 0, false
	}
	return sess.userID, true
}

func (s *sessionStore) revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}
