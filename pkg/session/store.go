// Package session tracks per-conversation context: the entities mentioned
// so far, the most recently referenced entity, the turn history, and the
// authorized plant scope. Contexts live in memory and expire after a
// bounded idle period, independent of cookie lifetime.
package session

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Turn is one user/bot exchange. History is append-only within a session.
type Turn struct {
	User string
	Bot  string
}

// Context is the mutable conversation state for one session. All access
// goes through Store.WithSession so same-session mutations are serialized.
type Context struct {
	// Entities maps entity keys (catalog column names) to the last
	// observed value. Later writes overwrite earlier ones.
	Entities map[string]string

	// LastEntity is the key of the most recently written entity, used for
	// pronoun resolution. It is a lookup key into Entities, nothing more.
	LastEntity string

	// History holds the ordered user/bot turn pairs.
	History []Turn

	// PlantCode is the single authorized tenant scope for the session.
	// Set only through Store.SetPlantCode; never written by extraction.
	PlantCode string
}

// AppendTurn records a completed exchange.
func (c *Context) AppendTurn(user, bot string) {
	c.History = append(c.History, Turn{User: user, Bot: bot})
}

type entry struct {
	mu       sync.Mutex
	ctx      *Context
	lastSeen time.Time
}

// Store is a concurrency-safe session context store. Different sessions
// never block each other; operations on the same session are mutually
// exclusive. Idle sessions are swept after the configured TTL.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	logger  *zap.Logger
	done    chan struct{}
	once    sync.Once
}

// NewStore creates a store whose sessions expire after ttl of inactivity
// and starts the background sweeper.
func NewStore(ttl time.Duration, logger *zap.Logger) *Store {
	s := &Store{
		entries: make(map[string]*entry),
		ttl:     ttl,
		logger:  logger.Named("session"),
		done:    make(chan struct{}),
	}
	go s.sweepLoop()
	return s
}

// Close stops the background sweeper.
func (s *Store) Close() {
	s.once.Do(func() { close(s.done) })
}

// lookup returns the entry for sessionID, creating an empty context on
// first access. Only the map lookup happens under the store lock; the
// per-session mutex is what serializes context mutation.
func (s *Store) lookup(sessionID string) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[sessionID]
	if !ok {
		e = &entry{ctx: &Context{Entities: make(map[string]string)}}
		s.entries[sessionID] = e
	}
	e.lastSeen = time.Now()
	return e
}

// WithSession runs fn with exclusive access to the session's context.
// This is the only way to mutate a context; holding the per-session lock
// for the whole pipeline turn guarantees a session processes at most one
// request's entity/history update at a time.
func (s *Store) WithSession(sessionID string, fn func(*Context) error) error {
	e := s.lookup(sessionID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.ctx)
}

// Get returns a snapshot copy of the session's context, creating an empty
// context on first access. Mutating the snapshot does not affect the store.
func (s *Store) Get(sessionID string) Context {
	var snapshot Context
	_ = s.WithSession(sessionID, func(c *Context) error {
		snapshot = Context{
			Entities:   make(map[string]string, len(c.Entities)),
			LastEntity: c.LastEntity,
			History:    append([]Turn(nil), c.History...),
			PlantCode:  c.PlantCode,
		}
		for k, v := range c.Entities {
			snapshot.Entities[k] = v
		}
		return nil
	})
	return snapshot
}

// SetPlantCode records the authorized tenant scope for the session. This
// is the only channel through which PlantCode changes.
func (s *Store) SetPlantCode(sessionID, plantCode string) {
	_ = s.WithSession(sessionID, func(c *Context) error {
		c.PlantCode = plantCode
		return nil
	})
}

// Clear discards the session's context wholesale.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
}

func (s *Store) sweepLoop() {
	interval := s.ttl / 2
	if interval > time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.sweep(now)
		}
	}
}

// sweep removes sessions idle past the TTL. Sessions currently processing
// a request (per-session lock held) are skipped and picked up next round.
func (s *Store) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.entries {
		if now.Sub(e.lastSeen) < s.ttl {
			continue
		}
		if !e.mu.TryLock() {
			continue
		}
		e.mu.Unlock()
		delete(s.entries, id)
		s.logger.Debug("expired idle session", zap.String("session_id", id))
	}
}

// Len reports the number of live sessions. Used by tests and health info.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
