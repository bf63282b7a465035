package radarcatalog

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// frameCacheSize bounds how many stations' detail responses are kept
// warm at once; the network only has a few dozen radar stations, so
// this comfortably covers the whole catalog.
const frameCacheSize = 128

// frameCacheFreshness is how long a cached detail response is trusted
// before a fresh fetch is required, matching the abandoned cache
// module's 3-minute guideline.
const frameCacheFreshness = 3 * time.Minute

type cachedDetail struct {
	detail   rawDetail
	fetchedAt time.Time
}

// frameCache is a small freshness-bounded cache of per-station detail
// responses, consulted but never required: a miss or a cold start
// must produce the same result as a fresh fetch.
type frameCache struct {
	cache *lru.Cache[string, cachedDetail]
}

func newFrameCache() *frameCache {
	c, _ := lru.New[string, cachedDetail](frameCacheSize)
	return &frameCache{cache: c}
}

func (f *frameCache) get(code string) (rawDetail, bool) {
	entry, ok := f.cache.Get(code)
	if !ok {
		return rawDetail{}, false
	}
	if time.Since(entry.fetchedAt) > frameCacheFreshness {
		return rawDetail{}, false
	}
	return entry.detail, true
}

func (f *frameCache) set(code string, detail rawDetail) {
	f.cache.Add(code, cachedDetail{detail: detail, fetchedAt: time.Now()})
}
