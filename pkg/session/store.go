package session

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// Store is the process-wide session map. TTL eviction runs in the cache
// janitor (a background sweep), never in the request path, so request
// latency stays independent of store size. An evicted session's lock
// entry is cleaned up by the eviction hook, but only once no turn holds
// it; expiry mid-turn never breaks same-session serialization.
//
// Concurrency contract: turns for the same session id are serialized via
// WithLock; different session ids proceed fully in parallel. A context
// fetched at request start stays valid for that request even if the TTL
// fires mid-flight; Commit simply re-inserts it.
type Store struct {
	cache *cache.Cache

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewStore creates a store with the given inactivity TTL and janitor
// sweep interval.
func NewStore(ttl, sweepInterval time.Duration) *Store {
	c := cache.New(ttl, sweepInterval)
	s := &Store{
		cache: c,
		locks: make(map[string]*sync.Mutex),
	}
	c.OnEvicted(func(key string, _ interface{}) {
		s.mu.Lock()
		defer s.mu.Unlock()
		lock, ok := s.locks[key]
		if !ok {
			return
		}
		// A turn may still hold the session lock when the TTL fires;
		// dropping the entry then would let the next turn run
		// concurrently with it. Leave the entry in place and let a
		// later eviction collect it.
		if lock.TryLock() {
			lock.Unlock()
			delete(s.locks, key)
		}
	})
	return s
}

// Get returns the session context for id, creating a fresh one on miss.
func (s *Store) Get(sessionId string) *Context {
	if x, found := s.cache.Get(sessionId); found {
		ctx := x.(*Context)
		ctx.LastActiveAt = time.Now()
		return ctx
	}
	now := time.Now()
	return &Context{
		SessionId:    sessionId,
		CreatedAt:    now,
		LastActiveAt: now,
	}
}

// Commit stores the updated context and resets its TTL.
func (s *Store) Commit(sessionId string, ctx *Context) {
	ctx.LastActiveAt = time.Now()
	s.cache.Set(sessionId, ctx, cache.DefaultExpiration)
}

// WithLock serializes fn against other turns for the same session id, so
// concurrent read-modify-write cycles cannot silently drop an update.
// After acquiring, the lock is re-checked against the map: if eviction
// replaced the entry between fetch and acquire, the stale mutex is
// released and the acquisition retried against the current one.
func (s *Store) WithLock(sessionId string, fn func()) {
	for {
		s.mu.Lock()
		lock, ok := s.locks[sessionId]
		if !ok {
			lock = &sync.Mutex{}
			s.locks[sessionId] = lock
		}
		s.mu.Unlock()

		lock.Lock()

		s.mu.Lock()
		current := s.locks[sessionId]
		s.mu.Unlock()
		if current != lock {
			lock.Unlock()
			continue
		}

		defer lock.Unlock()
		fn()
		return
	}
}

// Len reports the live session count (including not-yet-swept expired
// entries, matching the underlying cache semantics).
func (s *Store) Len() int {
	return s.cache.ItemCount()
}
