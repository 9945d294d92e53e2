package catalog

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/wadidirect/storefront-backend/pkg/logger"
	"github.com/wadidirect/storefront-backend/pkg/metrics"
)

// Service exposes the catalog retrieval operations. Every operation degrades
// to an empty result on failure; callers never see a transport error, only a
// logged diagnostic and an empty list.
type Service interface {
	ByCategory(ctx context.Context, category string) []Product
	ByBrand(ctx context.Context, brand string) []Product
	All(ctx context.Context) []Product
	Search(ctx context.Context, query string) []Product
	Page(ctx context.Context, page int) Page
}

// Cache is the subset of the redis client the catalog needs. A nil Cache
// disables caching entirely.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CatalogKey(parts ...string) string
}

// Fetcher is the upstream surface the service consumes; satisfied by *Client.
type Fetcher interface {
	Fetch(ctx context.Context, kind, name string) ([]byte, error)
	FetchPage(ctx context.Context, page int) ([]byte, error)
}

// ServiceParams collects the service dependencies.
type ServiceParams struct {
	Client     Fetcher
	Cache      Cache
	Logger     *logger.Logger
	Metrics    *metrics.CatalogMetrics
	Categories []string
	CacheTTL   time.Duration
}

type service struct {
	client     Fetcher
	cache      Cache
	logg       *logger.Logger
	metrics    *metrics.CatalogMetrics
	categories []string
	cacheTTL   time.Duration
}

// NewService wires the catalog service.
func NewService(params ServiceParams) Service {
	return &service{
		client:     params.Client,
		cache:      params.Cache,
		logg:       params.Logger,
		metrics:    params.Metrics,
		categories: params.Categories,
		cacheTTL:   params.CacheTTL,
	}
}

// ByCategory returns the normalized products for one category. The requested
// category backfills records that omit their own.
func (s *service) ByCategory(ctx context.Context, category string) []Product {
	products, err := s.fetch(ctx, KindCategory, category, category)
	if err != nil {
		s.logFetchError(ctx, KindCategory, category, err)
		return []Product{}
	}
	return products
}

// ByBrand returns the normalized products for one brand.
func (s *service) ByBrand(ctx context.Context, brand string) []Product {
	products, err := s.fetch(ctx, KindBrand, brand, "")
	if err != nil {
		s.logFetchError(ctx, KindBrand, brand, err)
		return []Product{}
	}
	return products
}

// All concatenates every known category, fetching them concurrently. A
// failing category contributes nothing instead of emptying the whole result;
// the combined failure is logged once.
func (s *service) All(ctx context.Context) []Product {
	results := make([][]Product, len(s.categories))
	errs := make([]error, len(s.categories))

	var wg sync.WaitGroup
	for i, category := range s.categories {
		wg.Add(1)
		go func(i int, category string) {
			defer wg.Done()
			results[i], errs[i] = s.fetch(ctx, KindCategory, category, category)
		}(i, category)
	}
	wg.Wait()

	if combined := multierr.Combine(errs...); combined != nil && s.logg != nil {
		s.logg.Error(ctx, "catalog.fetch_all.partial_failure", combined)
	}

	all := []Product{}
	for _, products := range results {
		all = append(all, products...)
	}
	return all
}

// Search filters the full catalog by case-insensitive substring match on
// name, brand, and category. The Arabic name is matched as an exact
// substring without case folding. A blank query returns everything.
func (s *service) Search(ctx context.Context, query string) []Product {
	all := s.All(ctx)
	if strings.TrimSpace(query) == "" {
		return all
	}

	term := strings.ToLower(query)
	matched := []Product{}
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			(p.NameAr != "" && strings.Contains(p.NameAr, query)) ||
			strings.Contains(strings.ToLower(p.Brand), term) ||
			strings.Contains(strings.ToLower(p.Category), term) {
			matched = append(matched, p)
		}
	}
	return matched
}

// Page returns one page of the upstream's full listing with its pagination
// metadata, degrading to an empty page on failure.
func (s *service) Page(ctx context.Context, page int) Page {
	start := time.Now()
	body, err := s.client.FetchPage(ctx, page)
	s.metrics.ObserveFetch(KindAll, time.Since(start))
	if err != nil {
		s.metrics.IncFetchFailure(KindAll)
		s.logFetchError(ctx, KindAll, "", err)
		return Page{Products: []Product{}, Page: page}
	}
	return NormalizePage(body, page)
}

// fetch serves one kind/name request from the cache when possible, otherwise
// from the upstream, caching the normalized result.
func (s *service) fetch(ctx context.Context, kind, name, fallbackCategory string) ([]Product, error) {
	if cached, ok := s.cacheGet(ctx, kind, name); ok {
		s.metrics.IncCacheHit()
		return cached, nil
	}
	s.metrics.IncCacheMiss()

	start := time.Now()
	body, err := s.client.Fetch(ctx, kind, name)
	s.metrics.ObserveFetch(kind, time.Since(start))
	if err != nil {
		s.metrics.IncFetchFailure(kind)
		return nil, err
	}

	products := Normalize(body, fallbackCategory)
	s.cacheSet(ctx, kind, name, products)
	return products, nil
}

func (s *service) cacheGet(ctx context.Context, kind, name string) ([]Product, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, s.cache.CatalogKey(kind, name))
	if err != nil {
		return nil, false
	}
	var products []Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		return nil, false
	}
	return products, true
}

func (s *service) cacheSet(ctx context.Context, kind, name string, products []Product) {
	if s.cache == nil {
		return
	}
	encoded, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.CatalogKey(kind, name), string(encoded), s.cacheTTL); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "key", kind+":"+name), "catalog.cache.write_failed")
	}
}

func (s *service) logFetchError(ctx context.Context, kind, name string, err error) {
	if s.logg == nil {
		return
	}
	ctx = s.logg.WithFields(ctx, map[string]any{"kind": kind, "name": name})
	s.logg.Error(ctx, "catalog.fetch.failed", err)
}
