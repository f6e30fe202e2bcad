package amazon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/flipradar/backend/internal/domain"
)

// Client handles communication with the Amazon lookup service (a scraping
// proxy exposing search and per-ASIN listing data as JSON)
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new Amazon lookup client
func NewClient(baseURL string) *Client {
	// Keep the scraping proxy comfortably under Amazon's tolerance:
	// 1 request/sec sustained with a small burst.
	limiter := rate.NewLimiter(rate.Limit(1), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		rateLimiter: limiter,
	}
}

// SetDebug enables or disables debug logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// listingPayload mirrors the lookup service's wire format. Numeric fields
// arrive as numbers or as display strings ("$59.99"), so they are decoded
// loosely and normalized afterwards.
type listingPayload struct {
	ASIN        string `json:"asin"`
	Title       string `json:"title"`
	Price       any    `json:"price"`
	URL         string `json:"url"`
	Image       string `json:"image"`
	Rating      any    `json:"rating"`
	Reviews     any    `json:"reviews"`
	SalesRank   any    `json:"salesRank"`
	IPComplaint *bool  `json:"ipComplaint"`
}

type searchPayload struct {
	Results []listingPayload `json:"results"`
}

// Search queries the lookup service and returns normalized, deduplicated
// listings
func (c *Client) Search(ctx context.Context, query string, limit int) ([]domain.AmazonListing, error) {
	if c.debug {
		log.Printf("[AMAZON] Search called with query: %q", query)
	}

	params := url.Values{}
	params.Add("q", query)
	params.Add("limit", strconv.Itoa(limit))
	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	body, err := c.doRequestWithRetry(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var payload searchPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decoding search response: %v", domain.ErrAmazonUnavailable, err)
	}

	listings := make([]domain.AmazonListing, 0, len(payload.Results))
	seen := make(map[string]bool)
	for _, raw := range payload.Results {
		listing := normalizeListing(raw)
		if listing.Title == "" {
			continue
		}
		if listing.ASIN != "" {
			if seen[listing.ASIN] {
				continue
			}
			seen[listing.ASIN] = true
		}
		listings = append(listings, listing)
	}

	if c.debug {
		log.Printf("[AMAZON] Search returned %d listings", len(listings))
	}
	return listings, nil
}

// Lookup fetches a single listing by ASIN
func (c *Client) Lookup(ctx context.Context, asin string) (*domain.AmazonListing, error) {
	if asin == "" {
		return nil, domain.ErrInvalidRequest
	}

	reqURL := fmt.Sprintf("%s/listings/%s", c.baseURL, url.PathEscape(asin))
	body, err := c.doRequestWithRetry(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var payload listingPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decoding listing response: %v", domain.ErrAmazonUnavailable, err)
	}

	listing := normalizeListing(payload)
	if listing.ASIN == "" {
		listing.ASIN = asin
	}
	return &listing, nil
}

// doRequestWithRetry executes a GET with rate limiting and up to 3 attempts
// for transient failures. 404 maps to ErrListingNotFound immediately.
func (c *Client) doRequestWithRetry(ctx context.Context, reqURL string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", "FlipRadar/1.0")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if c.debug {
				log.Printf("[AMAZON] Request error (attempt %d): %v", attempt, err)
			}
			lastErr = err
			sleepBackoff(ctx, attempt)
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			return body, nil
		}
		if resp.StatusCode == http.StatusNotFound {
			return nil, domain.ErrListingNotFound
		}

		if c.debug {
			log.Printf("[AMAZON] API error (attempt %d) - Status: %d, Body: %s",
				attempt, resp.StatusCode, string(body))
		}
		lastErr = fmt.Errorf("status %d", resp.StatusCode)
		sleepBackoff(ctx, attempt)
	}

	return nil, fmt.Errorf("%w: %v", domain.ErrAmazonUnavailable, lastErr)
}

// exponentialBackoff returns the wait before retrying the given attempt
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*math.Pow(2, float64(attempt-1))) * time.Millisecond
}

func sleepBackoff(ctx context.Context, attempt int) {
	select {
	case <-time.After(exponentialBackoff(attempt)):
	case <-ctx.Done():
	}
}

// normalizeListing converts a wire payload into a domain listing, dropping
// malformed numeric fields rather than failing.
func normalizeListing(raw listingPayload) domain.AmazonListing {
	listing := domain.AmazonListing{
		ASIN:        strings.TrimSpace(raw.ASIN),
		Title:       strings.TrimSpace(raw.Title),
		URL:         strings.TrimSpace(raw.URL),
		ImageURL:    strings.TrimSpace(raw.Image),
		IPComplaint: raw.IPComplaint,
	}

	if price := parseNumber(raw.Price); price != nil && *price > 0 {
		listing.Price = price
	}
	if rating := parseNumber(raw.Rating); rating != nil && *rating >= 0 {
		listing.Rating = rating
	}
	if reviews := parseNumber(raw.Reviews); reviews != nil && *reviews >= 0 {
		n := int(*reviews)
		listing.Reviews = &n
	}
	if rank := parseNumber(raw.SalesRank); rank != nil && *rank > 0 {
		n := int(*rank)
		listing.SalesRank = &n
	}

	return listing
}

// parseNumber extracts a finite float from a JSON number or a display
// string like "$1,299.99". Returns nil when no usable number is present.
func parseNumber(value any) *float64 {
	switch v := value.(type) {
	case nil:
		return nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		return &v
	case string:
		var cleaned strings.Builder
		for _, r := range v {
			if (r >= '0' && r <= '9') || r == '.' {
				cleaned.WriteRune(r)
			}
		}
		if cleaned.Len() == 0 {
			return nil
		}
		parsed, err := strconv.ParseFloat(cleaned.String(), 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return nil
		}
		return &parsed
	default:
		return nil
	}
}
