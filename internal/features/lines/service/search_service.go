package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"dockboard/internal/core/cache"
	"dockboard/internal/core/logger"
	"dockboard/internal/features/lines/domain"
	"dockboard/internal/features/lines/ports"

	"go.uber.org/zap"
)

// MinQueryLength is the shortest query forwarded upstream. Anything shorter
// would amount to scanning the whole purchase-order line table.
const MinQueryLength = 2

var (
	// ErrQueryTooShort is returned for queries below MinQueryLength.
	ErrQueryTooShort = errors.New("query too short")
	// ErrSuperseded is returned when a newer query arrived while this one
	// was waiting out its debounce interval.
	ErrSuperseded = errors.New("search superseded by newer query")
)

// searchCachePrefix namespaces per-query cache keys.
const searchCachePrefix = "po_line_search:"

// SearchService performs debounced, cached purchase-order line lookups.
// Overlapping searches follow last-request-wins semantics: an older search
// still waiting on its debounce is superseded by a newer one.
type SearchService struct {
	provider ports.LineProvider
	cache    cache.Cache
	ttl      time.Duration
	debounce time.Duration
	logger   *zap.Logger

	generation atomic.Uint64
}

// NewSearchService creates a SearchService with the given debounce interval
// and per-query result TTL.
func NewSearchService(provider ports.LineProvider, c cache.Cache, debounce, ttl time.Duration) *SearchService {
	return &SearchService{
		provider: provider,
		cache:    c,
		ttl:      ttl,
		debounce: debounce,
		logger:   logger.Named("line-search"),
	}
}

// Search performs one lookup immediately: length gate, cache, then upstream.
func (s *SearchService) Search(ctx context.Context, query string) ([]domain.LineResult, error) {
	query = strings.TrimSpace(query)
	if len(query) < MinQueryLength {
		return nil, ErrQueryTooShort
	}

	key := searchCachePrefix + strings.ToLower(query)
	if data, err := s.cache.Get(ctx, key); err == nil {
		var cached []domain.LineResult
		if err := json.Unmarshal(data, &cached); err == nil {
			s.logger.Debug("search cache hit", zap.String("query", query))
			return cached, nil
		}
	}

	results, err := s.provider.SearchLines(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search lines: %w", err)
	}
	if results == nil {
		results = []domain.LineResult{}
	}

	if data, err := json.Marshal(results); err == nil {
		if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
			s.logger.Warn("failed to cache search results", zap.Error(err))
		}
	}
	return results, nil
}

// Debounced waits out the debounce interval before searching. A call made
// while an earlier one is still waiting supersedes it: the earlier call
// returns ErrSuperseded and its lookup never fires.
func (s *SearchService) Debounced(ctx context.Context, query string) ([]domain.LineResult, error) {
	query = strings.TrimSpace(query)
	if len(query) < MinQueryLength {
		return nil, ErrQueryTooShort
	}

	generation := s.generation.Add(1)

	if s.debounce > 0 {
		timer := time.NewTimer(s.debounce)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if s.generation.Load() != generation {
		return nil, ErrSuperseded
	}
	return s.Search(ctx, query)
}
