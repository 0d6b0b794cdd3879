// Package session maps opaque bearer tokens to signed-in identities.
// Identity is always passed explicitly (token lookup, context value);
// there is no ambient current-user global.
package session

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"
)

// Identity is the signed-in user as supplied by the auth provider.
type Identity struct {
	UID         string
	DisplayName string
	Email       string
	PhotoURL    string
}

// Event describes a session change delivered to subscribers.
type Event struct {
	Identity Identity
	SignedIn bool
}

type entry struct {
	identity Identity
	expires  time.Time
}

// Store manages session tokens with automatic expiration
type Store struct {
	mu       sync.RWMutex
	sessions map[string]entry
	subs     map[int]func(Event)
	nextSub  int
	ttl      time.Duration
	done     chan struct{}
	wg       sync.WaitGroup
}

// NewStore creates a new session store with the given TTL
func NewStore(ttl time.Duration) *Store {
	s := &Store{
		sessions: make(map[string]entry),
		subs:     make(map[int]func(Event)),
		ttl:      ttl,
		done:     make(chan struct{}),
	}
	// Start background cleanup goroutine
	s.wg.Add(1)
	go s.cleanup()
	return s
}

// Create generates a new session token bound to the given identity
func (s *Store) Create(identity Identity) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(b)

	s.mu.Lock()
	s.sessions[token] = entry{identity: identity, expires: time.Now().Add(s.ttl)}
	subs := s.snapshotSubs()
	s.mu.Unlock()

	notify(subs, Event{Identity: identity, SignedIn: true})
	return token, nil
}

// Lookup resolves a token to its identity. ok is false when the token
// is unknown or expired.
func (s *Store) Lookup(token string) (Identity, bool) {
	s.mu.RLock()
	e, exists := s.sessions[token]
	s.mu.RUnlock()

	if !exists || time.Now().After(e.expires) {
		return Identity{}, false
	}
	return e.identity, true
}

// Delete removes a session token and notifies subscribers of the
// sign-out
func (s *Store) Delete(token string) {
	s.mu.Lock()
	e, existed := s.sessions[token]
	delete(s.sessions, token)
	subs := s.snapshotSubs()
	s.mu.Unlock()

	if existed {
		notify(subs, Event{Identity: e.identity, SignedIn: false})
	}
}

// Refresh extends the expiration of a valid token
func (s *Store) Refresh(token string) {
	s.mu.Lock()
	if e, exists := s.sessions[token]; exists && time.Now().Before(e.expires) {
		e.expires = time.Now().Add(s.ttl)
		s.sessions[token] = e
	}
	s.mu.Unlock()
}

// Subscribe registers fn for session change events and returns an
// unsubscribe function. Callbacks run synchronously; keep them short.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// snapshotSubs must be called with mu held.
func (s *Store) snapshotSubs() []func(Event) {
	subs := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return subs
}

func notify(subs []func(Event), ev Event) {
	for _, fn := range subs {
		fn(ev)
	}
}

// cleanup periodically removes expired sessions
func (s *Store) cleanup() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for token, e := range s.sessions {
				if now.After(e.expires) {
					delete(s.sessions, token)
				}
			}
			s.mu.Unlock()
		}
	}
}

// Close signals the cleanup goroutine to stop and waits for it to finish
func (s *Store) Close() {
	close(s.done)
	s.wg.Wait()
}
