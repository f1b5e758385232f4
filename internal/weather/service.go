package weather

import (
	"context"

	"github.com/jaehokim/nalssibot/internal/models"
)

// Service answers "what is the weather right now" for a location, going
// through the cache and falling through to the source adapter on a miss.
type Service struct {
	cache *Cache
	fetch Fetcher
}

func NewService(cache *Cache, fetch Fetcher) *Service {
	return &Service{cache: cache, fetch: fetch}
}

// Current returns the current observation for a (sido, area) pair. The
// result is tagged live, cached or synthetic; it is never an error.
func (s *Service) Current(ctx context.Context, sido, area string) models.Observation {
	return s.cache.GetOrFetch(ctx, sido, area, s.fetch)
}
