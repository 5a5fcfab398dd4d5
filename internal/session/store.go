// Package session keeps per-browser state between requests.
package session

import (
	"container/list"
	"sync"
	"time"

	"github.com/google/uuid"

	"cashify/internal/log"
	"cashify/internal/metrics"
	"cashify/internal/services"
)

// Session is the server side of one browser. It carries the workspace of
// the logged-in user, or nothing before login.
type Session struct {
	ID string

	mu        sync.Mutex
	workspace *services.Workspace
}

// Workspace returns the session's workspace, nil when nobody is logged in.
func (s *Session) Workspace() *services.Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.workspace
}

func (s *Session) SetWorkspace(w *services.Workspace) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workspace = w
}

// Clear drops the workspace; the session itself stays valid.
func (s *Session) Clear() {
	s.SetWorkspace(nil)
}

// Store is an LRU of sessions with a sliding idle TTL.
type Store struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*list.Element
	lru     *list.List
	now     func() time.Time

	stopCleanup  chan struct{}
	cleanupDone  chan struct{}
	shutdownOnce sync.Once
}

type entry struct {
	session   *Session
	expiresAt time.Time
}

// NewStore creates a store holding at most maxSize sessions, each expiring
// after ttl without use.
func NewStore(maxSize int, ttl time.Duration) *Store {
	if maxSize <= 0 {
		maxSize = 1000
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Store{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
		now:     time.Now,
	}
}

// Create starts a new empty session.
func (st *Store) Create() *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess := &Session{ID: uuid.NewString()}
	elem := st.lru.PushFront(&entry{session: sess, expiresAt: st.now().Add(st.ttl)})
	st.items[sess.ID] = elem

	if st.lru.Len() > st.maxSize {
		if oldest := st.lru.Back(); oldest != nil {
			st.removeElement(oldest)
		}
	}
	st.report()
	return sess
}

// Get returns a live session and extends its lifetime.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	elem, ok := st.items[id]
	if !ok {
		return nil, false
	}
	e := elem.Value.(*entry)
	now := st.now()
	if now.After(e.expiresAt) {
		st.removeElement(elem)
		st.report()
		return nil, false
	}
	e.expiresAt = now.Add(st.ttl)
	st.lru.MoveToFront(elem)
	return e.session, true
}

// Delete forgets a session.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if elem, ok := st.items[id]; ok {
		st.removeElement(elem)
		st.report()
	}
}

// Size returns the number of sessions held.
func (st *Store) Size() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.items)
}

// CleanExpired removes expired sessions and returns how many were removed.
func (st *Store) CleanExpired() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	var expired []*list.Element
	for elem := st.lru.Front(); elem != nil; elem = elem.Next() {
		if now.After(elem.Value.(*entry).expiresAt) {
			expired = append(expired, elem)
		}
	}
	for _, elem := range expired {
		st.removeElement(elem)
	}
	if len(expired) > 0 {
		st.report()
	}
	return len(expired)
}

// StartCleanup removes expired sessions every interval until Stop is called.
func (st *Store) StartCleanup(interval time.Duration, logger *log.Logger) {
	st.stopCleanup = make(chan struct{})
	st.cleanupDone = make(chan struct{})
	logger = logger.WithComponent(log.ComponentSession)

	go func() {
		defer close(st.cleanupDone)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if n := st.CleanExpired(); n > 0 {
					logger.Debug("Session cleanup completed", "sessions_removed", n)
				}
			case <-st.stopCleanup:
				return
			}
		}
	}()
}

// Stop ends the cleanup goroutine, if one was started.
func (st *Store) Stop() {
	st.shutdownOnce.Do(func() {
		if st.stopCleanup != nil {
			close(st.stopCleanup)
			<-st.cleanupDone
		}
	})
}

func (st *Store) removeElement(elem *list.Element) {
	e := elem.Value.(*entry)
	delete(st.items, e.session.ID)
	st.lru.Remove(elem)
}

// report must be called with st.mu held.
func (st *Store) report() {
	metrics.ActiveSessions.Set(float64(len(st.items)))
}
