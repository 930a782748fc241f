package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/AryaMundra/VeriWise/internal/config"
	"github.com/AryaMundra/VeriWise/internal/logging"
	"github.com/AryaMundra/VeriWise/internal/models"
)

// SessionsKey is the fixed key the session collection is stored under.
const SessionsKey = "sessions"

// Store manages the ordered session collection (newest first) and the
// active-session pointer. Every mutating operation persists the collection,
// except that an empty collection is never written: deleting the last
// session removes the stored key instead, so deleted sessions cannot
// resurface on reload.
//
// Accessors return snapshots. Callers never hold memory shared with the
// collection, so a timeline read in one goroutine cannot race an append
// in another.
type Store struct {
	mu       sync.RWMutex
	kv       KV
	sessions []*models.Session
	activeID string
}

// NewStore creates a store backed by kv and loads any persisted collection.
// A corrupt payload starts an empty store rather than failing startup.
func NewStore(kv KV) (*Store, error) {
	s := &Store{kv: kv}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// DefaultStore creates a store using the default storage location.
func DefaultStore() (*Store, error) {
	dir, err := config.GetConfigDir()
	if err != nil {
		return nil, err
	}
	kv, err := NewFileKV(filepath.Join(dir, "state"))
	if err != nil {
		return nil, err
	}
	return NewStore(kv)
}

// load reads the persisted collection. Runs once at construction.
func (s *Store) load() error {
	data, ok, err := s.kv.Get(SessionsKey)
	if err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}
	if !ok {
		return nil
	}

	var sessions []*models.Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		logging.L().Warn("discarding corrupt session collection", zap.Error(err))
		return nil
	}

	s.sessions = sessions
	if len(sessions) > 0 {
		s.activeID = sessions[0].ID
	}
	return nil
}

// persist writes the collection under the fixed key. An empty collection is
// never written; callers that empty the store delete the key explicitly.
func (s *Store) persist() error {
	if len(s.sessions) == 0 {
		return nil
	}

	data, err := json.MarshalIndent(s.sessions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sessions: %w", err)
	}
	return s.kv.Put(SessionsKey, data)
}

// CreateSession inserts a new empty session at the front of the collection
// and makes it active. Returns a snapshot of the new session.
func (s *Store) CreateSession() (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := models.NewSession()
	s.sessions = append([]*models.Session{sess}, s.sessions...)
	s.activeID = sess.ID

	if err := s.persist(); err != nil {
		return nil, err
	}
	return sess.Clone(), nil
}

// SwitchSession makes the session with the given id active. An unknown id
// is silently ignored; the bool reports whether a switch happened.
func (s *Store) SwitchSession(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sess := range s.sessions {
		if sess.ID == id {
			s.activeID = id
			return true
		}
	}
	return false
}

// DeleteSession removes the session. When the removed session was active,
// the head of the remaining collection becomes active, or none when the
// collection is now empty.
func (s *Store) DeleteSession(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, sess := range s.sessions {
		if sess.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("delete session %s: not found", id)
	}

	s.sessions = append(s.sessions[:idx], s.sessions[idx+1:]...)

	if s.activeID == id {
		if len(s.sessions) > 0 {
			s.activeID = s.sessions[0].ID
		} else {
			s.activeID = ""
		}
	}

	if len(s.sessions) == 0 {
		return s.kv.Delete(SessionsKey)
	}
	return s.persist()
}

// ClearAll removes every session and the persisted collection.
func (s *Store) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = nil
	s.activeID = ""
	return s.kv.Delete(SessionsKey)
}

// AppendMessage appends a message to the session's timeline. Timelines are
// append-only; there is no way to edit or remove a recorded message.
func (s *Store) AppendMessage(id string, msg models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.find(id)
	if sess == nil {
		return fmt.Errorf("append to session %s: not found", id)
	}

	sess.Append(msg)
	return s.persist()
}

// RenameSession updates a session title.
func (s *Store) RenameSession(id, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.find(id)
	if sess == nil {
		return fmt.Errorf("rename session %s: not found", id)
	}

	sess.Title = title
	return s.persist()
}

// Sessions returns snapshots of the ordered collection, newest first.
func (s *Store) Sessions() []*models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Session, len(s.sessions))
	for i, sess := range s.sessions {
		out[i] = sess.Clone()
	}
	return out
}

// Get returns a snapshot of the session with the given id, or nil.
func (s *Store) Get(id string) *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sess := s.find(id); sess != nil {
		return sess.Clone()
	}
	return nil
}

// Active returns a snapshot of the active session, or nil when the
// collection is empty.
func (s *Store) Active() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sess := s.find(s.activeID); sess != nil {
		return sess.Clone()
	}
	return nil
}

// ActiveID returns the active session id, or "" when none is active.
func (s *Store) ActiveID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// Len returns the number of sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// find must be called with the lock held.
func (s *Store) find(id string) *models.Session {
	if id == "" {
		return nil
	}
	for _, sess := range s.sessions {
		if sess.ID == id {
			return sess
		}
	}
	return nil
}
