package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/flipradar/backend/internal/domain"
)

// AnalysisServiceConfig holds configuration for the analysis service
type AnalysisServiceConfig struct {
	Workers            int
	SearchLimit        int
	EnableDebugLogging bool
}

const (
	defaultWorkers     = 4
	defaultSearchLimit = 10
)

// AnalysisService drives the full pipeline for scraped retail products:
// cache -> Amazon search -> best-listing match -> viability analysis.
type AnalysisService struct {
	cache        domain.CacheRepository
	amazon       domain.AmazonClient
	retail       domain.RetailClient
	matcher      *Matcher
	analyzer     *DealAnalyzer
	preprocessor *QueryPreprocessor
	workers      int
	searchLimit  int
	debug        bool
}

// NewAnalysisService creates an analysis service with its collaborators
func NewAnalysisService(
	cache domain.CacheRepository,
	amazon domain.AmazonClient,
	retail domain.RetailClient,
	matcher *Matcher,
	analyzer *DealAnalyzer,
	config AnalysisServiceConfig,
) *AnalysisService {
	workers := config.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	searchLimit := config.SearchLimit
	if searchLimit <= 0 {
		searchLimit = defaultSearchLimit
	}

	return &AnalysisService{
		cache:        cache,
		amazon:       amazon,
		retail:       retail,
		matcher:      matcher,
		analyzer:     analyzer,
		preprocessor: NewQueryPreprocessor(config.EnableDebugLogging),
		workers:      workers,
		searchLimit:  searchLimit,
		debug:        config.EnableDebugLogging,
	}
}

// ScanRetailer searches one retailer for discounted products and analyzes
// every hit against Amazon. Products are analyzed by a small fixed worker
// pool; completion order is not preserved and callers must not rely on it.
func (s *AnalysisService) ScanRetailer(ctx context.Context, retailer, query string) ([]domain.DealAnalysis, error) {
	products, err := s.searchRetailer(ctx, retailer, query)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, nil
	}

	if s.debug {
		log.Printf("[SCAN] Analyzing %d products from %s with %d workers",
			len(products), retailer, s.workers)
	}

	jobs := make(chan domain.RetailProduct)
	var mu sync.Mutex
	var results []domain.DealAnalysis
	var wg sync.WaitGroup

	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for product := range jobs {
				analysis, err := s.AnalyzeProduct(ctx, product)
				if err != nil {
					log.Printf("[SCAN] Skipping %q: %v", product.Title, err)
					continue
				}
				mu.Lock()
				results = append(results, *analysis)
				mu.Unlock()
			}
		}()
	}

	for _, product := range products {
		select {
		case jobs <- product:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()

	return results, nil
}

// AnalyzeProduct matches one retail product to its Amazon listing and scores
// the deal. A missing match is not an error: the analysis reports it and
// the caller decides the fallback.
func (s *AnalysisService) AnalyzeProduct(ctx context.Context, product domain.RetailProduct) (*domain.DealAnalysis, error) {
	candidates, err := s.searchAmazon(ctx, s.preprocessor.BuildSearchQuery(product.Title))
	if err != nil {
		return nil, err
	}

	price := product.Price
	target := domain.MatchTarget{Title: product.Title}
	if price > 0 {
		target.Price = &price
	}

	match := s.matcher.PickBestMatch(candidates, target, nil)
	analysis := s.analyzer.Analyze(product, match)
	return &analysis, nil
}

// LookupListing resolves an Amazon listing by ASIN or by query+price,
// memoizing per-ASIN lookups.
func (s *AnalysisService) LookupListing(ctx context.Context, req domain.LookupRequest) (*domain.MatchResult, error) {
	if req.ASIN != "" {
		key := "asin:" + req.ASIN
		if cached, err := s.cache.Get(key); err == nil {
			if listing, ok := cached.(*domain.AmazonListing); ok {
				return &domain.MatchResult{AmazonListing: *listing, Score: 1}, nil
			}
		}

		listing, err := s.amazon.Lookup(ctx, req.ASIN)
		if err != nil {
			return nil, err
		}
		s.cache.Set(key, listing)
		return &domain.MatchResult{AmazonListing: *listing, Score: 1}, nil
	}

	if req.Query == "" {
		return nil, domain.ErrInvalidRequest
	}

	candidates, err := s.searchAmazon(ctx, s.preprocessor.BuildSearchQuery(req.Query))
	if err != nil {
		return nil, err
	}

	target := domain.MatchTarget{Title: req.Query, Price: req.Price}
	match := s.matcher.PickBestMatch(candidates, target, nil)
	if match == nil {
		return nil, domain.ErrListingNotFound
	}
	return match, nil
}

// searchRetailer runs a retailer search through the cache
func (s *AnalysisService) searchRetailer(ctx context.Context, retailer, query string) ([]domain.RetailProduct, error) {
	key := fmt.Sprintf("%s:%s:%d", retailer, normalizeText(query), s.searchLimit)
	if cached, err := s.cache.Get(key); err == nil {
		if products, ok := cached.([]domain.RetailProduct); ok {
			return products, nil
		}
	}

	products, err := s.retail.Search(ctx, retailer, query)
	if err != nil {
		return nil, err
	}
	if len(products) > s.searchLimit {
		products = products[:s.searchLimit]
	}

	s.cache.Set(key, products)
	return products, nil
}

// searchAmazon runs an Amazon search through the cache
func (s *AnalysisService) searchAmazon(ctx context.Context, query string) ([]domain.AmazonListing, error) {
	key := fmt.Sprintf("amazon:search:%s:%d", normalizeText(query), s.searchLimit)
	if cached, err := s.cache.Get(key); err == nil {
		if listings, ok := cached.([]domain.AmazonListing); ok {
			return listings, nil
		}
	}

	listings, err := s.amazon.Search(ctx, query, s.searchLimit)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, listings)
	return listings, nil
}
