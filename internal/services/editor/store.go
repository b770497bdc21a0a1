package editor

import (
	"time"

	"listing_editor/internal/metrics"

	"github.com/patrickmn/go-cache"
)

// Store keeps open sessions and tears them down on delete or TTL expiry.
type Store struct {
	cache *cache.Cache
}

func NewStore(ttl time.Duration, onClose func(*Session)) *Store {
	cleanup := ttl / 2
	if cleanup < time.Second {
		cleanup = time.Second
	}

	c := cache.New(ttl, cleanup)
	c.OnEvicted(func(_ string, v interface{}) {
		s, ok := v.(*Session)
		if !ok {
			return
		}
		if s.Close() {
			metrics.EditorSessionsActive.Dec()
			if onClose != nil {
				onClose(s)
			}
		}
	})

	return &Store{cache: c}
}

func (st *Store) Put(s *Session) {
	st.cache.Set(s.ID.String(), s, cache.DefaultExpiration)
	metrics.EditorSessionsActive.Inc()
}

// Get returns an open session and extends its lifetime.
func (st *Store) Get(id string) (*Session, bool) {
	v, ok := st.cache.Get(id)
	if !ok {
		return nil, false
	}
	s := v.(*Session)
	if s.Closed() {
		return nil, false
	}
	st.cache.Set(id, s, cache.DefaultExpiration)
	return s, true
}

func (st *Store) Delete(id string) {
	st.cache.Delete(id)
}

func (st *Store) Len() int {
	return st.cache.ItemCount()
}

// CloseAll tears down every session, used on shutdown.
func (st *Store) CloseAll() {
	for id := range st.cache.Items() {
		st.cache.Delete(id)
	}
}
