package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"crop-advisor-be/pkg/store"
)

// SessionRepository keeps advisory sessions in process memory. Sessions are
// keyed by user so a new recommendation replaces the previous conversation.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Create a cache with a default expiration time of 1 hour, and which
	// purges expired items every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *store.AdvisorySession) {
	r.cache.Set(session.UserID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(userID string) (*store.AdvisorySession, bool) {
	if x, found := r.cache.Get(userID); found {
		return x.(*store.AdvisorySession), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(userID string) {
	r.cache.Delete(userID)
}
