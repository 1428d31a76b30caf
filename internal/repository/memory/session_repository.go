package memory

import (
	"sync"
	"time"

	"line-faq-bot/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps per-user dialogue state in memory. Sessions idle
// longer than the expiration window are purged, so the map cannot grow
// without bound. State is lost on process restart.
type SessionRepository struct {
	cache *cache.Cache

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewSessionRepository(expiration time.Duration) *SessionRepository {
	if expiration <= 0 {
		expiration = 12 * time.Hour
	}
	return &SessionRepository{
		cache: cache.New(expiration, 30*time.Minute),
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock acquires the per-user mutex so one user's read-decide-mutate sequence
// never interleaves with another message from the same user. Different users
// proceed concurrently. The returned func releases the lock.
func (r *SessionRepository) Lock(userID string) func() {
	r.mu.Lock()
	l, ok := r.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[userID] = l
	}
	r.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// GetOrCreate returns the user's session, creating the idle default on first
// contact.
func (r *SessionRepository) GetOrCreate(userID string) *store.Session {
	if x, found := r.cache.Get(userID); found {
		return x.(*store.Session)
	}
	session := &store.Session{UserID: userID}
	r.cache.Set(userID, session, cache.DefaultExpiration)
	return session
}

// Save stores the session and refreshes its expiration.
func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.UserID, session, cache.DefaultExpiration)
}

// Delete removes a user's session.
func (r *SessionRepository) Delete(userID string) {
	r.cache.Delete(userID)
}
