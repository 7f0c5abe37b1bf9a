package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

// CookieName is the HTTP cookie carrying the session ID.
const CookieName = "legal_session"

// DefaultTTL bounds how long an idle session keeps its credential.
const DefaultTTL = 12 * time.Hour

type entry struct {
	credential string
	lastSeen   time.Time
}

// Store keeps per-session credentials in memory only. Sessions idle
// past the TTL are evicted lazily on access; there is no background
// sweeper and nothing is ever written to disk.
type Store struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]*entry
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

// Create registers a fresh session and returns its random 128-bit hex
// ID. Expired entries are swept here, keeping the map bounded by live
// traffic.
func (s *Store) Create() (string, error) {
	id, err := newID()
	if err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for key, e := range s.entries {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.entries, key)
		}
	}
	s.entries[id] = &entry{lastSeen: now}
	return id, nil
}

// Valid reports whether the session exists and has not idled out. A
// valid session's idle timer is refreshed.
func (s *Store) Valid(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touch(id) != nil
}

// Credential returns the session's API key. ok is false when the
// session is unknown, expired, or holds no key.
func (s *Store) Credential(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.touch(id)
	if e == nil || e.credential == "" {
		return "", false
	}
	return e.credential, true
}

// SetCredential stores an API key on the session. It reports false
// when the session is unknown or expired.
func (s *Store) SetCredential(id, credential string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.touch(id)
	if e == nil {
		return false
	}
	e.credential = credential
	return true
}

// ClearCredential drops the session's API key but keeps the session.
func (s *Store) ClearCredential(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.touch(id)
	if e == nil {
		return false
	}
	e.credential = ""
	return true
}

// Len counts sessions that have not idled out.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := s.now()
	n := 0
	for _, e := range s.entries {
		if now.Sub(e.lastSeen) <= s.ttl {
			n++
		}
	}
	return n
}

// touch runs under mu. It evicts the entry when idle past the TTL and
// refreshes lastSeen otherwise.
func (s *Store) touch(id string) *entry {
	e, ok := s.entries[id]
	if !ok {
		return nil
	}
	now := s.now()
	if now.Sub(e.lastSeen) > s.ttl {
		delete(s.entries, id)
		return nil
	}
	e.lastSeen = now
	return e
}

func newID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
