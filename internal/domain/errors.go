package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrUnknownRetailer is returned when the requested retailer is not configured
	ErrUnknownRetailer = errors.New("unknown retailer")

	// ErrListingNotFound is returned when Amazon has no listing for the ASIN or query
	ErrListingNotFound = errors.New("amazon listing not found")

	// ErrAmazonUnavailable is returned when the Amazon lookup service keeps failing
	ErrAmazonUnavailable = errors.New("amazon lookup unavailable")

	// ErrRetailerUnavailable is returned when a retailer search keeps failing
	ErrRetailerUnavailable = errors.New("retailer search unavailable")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
