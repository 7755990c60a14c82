package memory

import (
	"time"

	"career-discovery-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// LiveStateRepository keeps the per-session voice/processing flags in memory.
// An idle conversation's flags expire after an hour; the defaults returned
// for a missing entry are all-false, which is correct for an idle session.
type LiveStateRepository struct {
	cache *cache.Cache
}

func NewLiveStateRepository() *LiveStateRepository {
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &LiveStateRepository{
		cache: c,
	}
}

func (r *LiveStateRepository) Save(state *store.LiveState) {
	r.cache.Set(state.SessionID, state, cache.DefaultExpiration)
}

func (r *LiveStateRepository) Get(sessionID string) (*store.LiveState, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.LiveState), true
	}
	return nil, false
}

func (r *LiveStateRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
