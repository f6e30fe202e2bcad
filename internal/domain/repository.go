package domain

import "context"

// CacheRepository defines the interface for the bounded lookup cache.
// Get returns ErrCacheMiss for absent or expired keys; callers treat a miss
// as a normal outcome, not a failure.
type CacheRepository interface {
	Get(key string) (any, error)
	Set(key string, value any)
	Clear()
	Len() int
}

// AmazonClient defines the interface for Amazon listing lookups
type AmazonClient interface {
	Search(ctx context.Context, query string, limit int) ([]AmazonListing, error)
	Lookup(ctx context.Context, asin string) (*AmazonListing, error)
}

// RetailClient defines the interface for retailer discount searches
type RetailClient interface {
	Search(ctx context.Context, retailer, query string) ([]RetailProduct, error)
	Retailers() []string
}
