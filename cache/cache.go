package cache

import (
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// Entry is a rendered response
type Entry struct {
	ContentType string
	Body        []byte
	Expires     time.Time
}

// PageCache keeps rendered pages for TTL. Writes elsewhere never invalidate it,
// pages go stale until they expire or Clear is called
type PageCache struct {
	TTL     time.Duration
	entries cmap.ConcurrentMap[string, Entry]
	now     func() time.Time
}

func New(ttl time.Duration) *PageCache {
	return &PageCache{
		TTL:     ttl,
		entries: cmap.New[Entry](),
		now:     time.Now,
	}
}

func (pc *PageCache) Get(key string) (Entry, bool) {
	e, ok := pc.entries.Get(key)
	if !ok {
		return Entry{}, false
	}
	now := pc.now()
	if !now.Before(e.Expires) {
		pc.entries.RemoveCb(key, func(key string, v Entry, exists bool) bool {
			return exists && !now.Before(v.Expires)
		})
		return Entry{}, false
	}
	return e, true
}

func (pc *PageCache) Set(key, contentType string, body []byte) {
	if pc.TTL <= 0 {
		return
	}
	pc.entries.Set(key, Entry{
		ContentType: contentType,
		Body:        body,
		Expires:     pc.now().Add(pc.TTL),
	})
}

func (pc *PageCache) Clear() {
	pc.entries.Clear()
}

func (pc *PageCache) Len() int {
	return pc.entries.Count()
}
