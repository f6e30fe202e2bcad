package retail

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/flipradar/backend/internal/domain"
)

// Client searches retailer discount/clearance feeds. One client covers all
// configured retailers; each retailer maps to a base URL of a JSON search
// endpoint (the scraping proxies live behind those URLs).
type Client struct {
	httpClient  *http.Client
	endpoints   map[string]string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a retail search client from a retailer -> base URL map
func NewClient(endpoints map[string]string) *Client {
	normalized := make(map[string]string, len(endpoints))
	for retailer, base := range endpoints {
		if base == "" {
			continue
		}
		normalized[strings.ToLower(retailer)] = strings.TrimSuffix(base, "/")
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		endpoints:   normalized,
		rateLimiter: rate.NewLimiter(rate.Limit(2), 5),
	}
}

// SetDebug enables or disables debug logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// Retailers lists the configured retailer names, sorted.
func (c *Client) Retailers() []string {
	names := make([]string, 0, len(c.endpoints))
	for name := range c.endpoints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// productPayload mirrors the search feed's wire format; prices may arrive
// as numbers or display strings.
type productPayload struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Price         any    `json:"price"`
	OriginalPrice any    `json:"originalPrice"`
	URL           string `json:"url"`
	Image         string `json:"image"`
	Clearance     bool   `json:"clearance"`
	Stock         string `json:"stock"`
	UPC           string `json:"upc"`
}

type searchPayload struct {
	Products []productPayload `json:"products"`
}

// Search queries one retailer's discount feed. Unknown retailers fail fast
// with ErrUnknownRetailer.
func (c *Client) Search(ctx context.Context, retailer, query string) ([]domain.RetailProduct, error) {
	base, ok := c.endpoints[strings.ToLower(retailer)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownRetailer, retailer)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	params := url.Values{}
	params.Add("q", query)
	reqURL := fmt.Sprintf("%s/search?%s", base, params.Encode())

	if c.debug {
		log.Printf("[RETAIL] Searching %s for %q", retailer, query)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "FlipRadar/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRetailerUnavailable, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrRetailerUnavailable, resp.StatusCode)
	}

	var payload searchPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", domain.ErrRetailerUnavailable, err)
	}

	products := make([]domain.RetailProduct, 0, len(payload.Products))
	seen := make(map[string]bool)
	for _, raw := range payload.Products {
		product := normalizeProduct(raw, strings.ToLower(retailer))
		if product.Title == "" || seen[product.ID] {
			continue
		}
		seen[product.ID] = true
		products = append(products, product)
	}

	if c.debug {
		log.Printf("[RETAIL] %s returned %d products", retailer, len(products))
	}
	return products, nil
}

// normalizeProduct converts a wire payload into a domain product. A product
// whose original price exceeds its current price is on markdown, so the
// clearance flag is derived even when the feed omits it.
func normalizeProduct(raw productPayload, retailer string) domain.RetailProduct {
	price := numberOrZero(raw.Price)
	original := numberOrZero(raw.OriginalPrice)
	if original == 0 {
		original = price
	}

	id := strings.TrimSpace(raw.ID)
	title := strings.TrimSpace(raw.Title)
	if id == "" && title != "" {
		id = fmt.Sprintf("%s-%x", retailer, truncate(title, 32))
	}

	stock := strings.TrimSpace(raw.Stock)
	if stock == "" {
		stock = "Unknown"
	}

	return domain.RetailProduct{
		ID:            id,
		Title:         title,
		Retailer:      retailer,
		Price:         price,
		OriginalPrice: original,
		URL:           strings.TrimSpace(raw.URL),
		ImageURL:      strings.TrimSpace(raw.Image),
		Clearance:     raw.Clearance || original > price,
		Stock:         stock,
		UPC:           strings.TrimSpace(raw.UPC),
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// numberOrZero parses a price field that may be a JSON number or a display
// string like "$24.99"; unparseable values become 0.
func numberOrZero(value any) float64 {
	switch v := value.(type) {
	case float64:
		if v > 0 {
			return v
		}
		return 0
	case string:
		var cleaned strings.Builder
		for _, r := range v {
			if (r >= '0' && r <= '9') || r == '.' {
				cleaned.WriteRune(r)
			}
		}
		parsed, err := strconv.ParseFloat(cleaned.String(), 64)
		if err != nil || parsed < 0 {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
