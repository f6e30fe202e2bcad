package domain

import "encoding/json"

// RetailProduct represents a discounted product scraped from a retail site
type RetailProduct struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Retailer      string  `json:"retailer"` // e.g., "walmart"
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice"`
	URL           string  `json:"url"`
	ImageURL      string  `json:"image,omitempty"`
	Clearance     bool    `json:"clearance"`
	Stock         string  `json:"stock,omitempty"`
	UPC           string  `json:"upc,omitempty"`
}

// AmazonListing represents a single Amazon search result or product lookup.
// Optional numeric fields are pointers: a missing price is a real state the
// matcher must handle, not a zero.
type AmazonListing struct {
	ASIN      string   `json:"asin"`
	Title     string   `json:"title"`
	Price     *float64 `json:"price,omitempty"`
	URL       string   `json:"url,omitempty"`
	ImageURL  string   `json:"image,omitempty"`
	Rating    *float64 `json:"rating,omitempty"`
	Reviews   *int     `json:"reviews,omitempty"`
	SalesRank *int     `json:"salesRank,omitempty"`
	// IPComplaint is tri-state: nil means the lookup service had no
	// intellectual-property complaint data for this listing.
	IPComplaint *bool `json:"ipComplaint,omitempty"`
}

// MatchTarget is the thing being searched for on Amazon: a title and an
// optional known price. Callers that only have a title use NewMatchTarget.
type MatchTarget struct {
	Title string   `json:"title"`
	Price *float64 `json:"price,omitempty"`
}

// NewMatchTarget builds a title-only target (the string shorthand form).
func NewMatchTarget(title string) MatchTarget {
	return MatchTarget{Title: title}
}

// UnmarshalJSON accepts either a bare string (title-only shorthand) or the
// full {title, price} object form.
func (t *MatchTarget) UnmarshalJSON(data []byte) error {
	var title string
	if err := json.Unmarshal(data, &title); err == nil {
		*t = NewMatchTarget(title)
		return nil
	}

	type plain MatchTarget
	var obj plain
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*t = MatchTarget(obj)
	return nil
}

// MatchResult is the selected Amazon listing enriched with the blended
// match score. All listing fields pass through unchanged.
type MatchResult struct {
	AmazonListing
	Score float64 `json:"score"`
}

// TitleClassification records the semantic facets of a product title.
// Facets are independent booleans and may overlap (e.g. bundle+console);
// an all-false classification means the title hit no keyword at all.
type TitleClassification struct {
	IsBundle       bool `json:"isBundle"`
	IsConsole      bool `json:"isConsole"`
	IsAccessory    bool `json:"isAccessory"`
	IsGiftCard     bool `json:"isGiftCard"`
	IsSubscription bool `json:"isSubscription"`
	IsGame         bool `json:"isGame"`
}

// Recommendation values produced by the deal analyzer.
const (
	RecommendationBuy    = "BUY"
	RecommendationReview = "REVIEW"
	RecommendationAvoid  = "AVOID"
)

// DealAnalysis is the resale viability assessment for one retail product.
type DealAnalysis struct {
	Product        RetailProduct `json:"product"`
	Match          *MatchResult  `json:"match,omitempty"`
	BuyBoxPrice    *float64      `json:"buyBoxPrice,omitempty"`
	Profit         *float64      `json:"profit,omitempty"`
	ROI            *float64      `json:"roi,omitempty"`
	MonthlySales   *int          `json:"monthlySales,omitempty"`
	ListingScore   float64       `json:"listingScore"`
	Recommendation string        `json:"recommendation"`
	Summary        string        `json:"summary,omitempty"`
	SOP            *SOPResult    `json:"sop,omitempty"`
}

// SOPCriteria are the buyer's standard operating procedure minimums a deal
// must clear before it is worth sourcing.
type SOPCriteria struct {
	MinPrice        float64 `json:"minPrice"`
	MinROI          float64 `json:"minROI"`
	MinMonthlySales int     `json:"minMonthlySales"`
}

// SOPResult holds tri-state check outcomes: a nil check means the data
// needed to evaluate it was unavailable. Passed is true when no check
// evaluated to false.
type SOPResult struct {
	Passed        bool             `json:"passed"`
	Checks        map[string]*bool `json:"checks"`
	FailedChecks  []string         `json:"failedChecks"`
	UnknownChecks []string         `json:"unknownChecks"`
}

// ScanRequest asks the backend to scrape one retailer and analyze the hits.
type ScanRequest struct {
	Retailer string `json:"retailer" binding:"required"`
	Query    string `json:"query"`
}

// MatchRequest exposes the matching engine directly: pick the best Amazon
// candidate for a target description.
type MatchRequest struct {
	Target     MatchTarget     `json:"target"`
	Candidates []AmazonListing `json:"candidates"`
	MinScore   *float64        `json:"minScore,omitempty"`
	Options    *MatchOptions   `json:"options,omitempty"`
}

// MatchOptions override the matcher's configured defaults for one call.
// Nil fields keep the configured value.
type MatchOptions struct {
	MinScore      *float64 `json:"minScore,omitempty"`
	MinPriceRatio *float64 `json:"minPriceRatio,omitempty"`
	MaxPriceRatio *float64 `json:"maxPriceRatio,omitempty"`
	StrictPrice   *bool    `json:"strictPrice,omitempty"`
}

// LookupRequest resolves an Amazon listing by ASIN, or by search query when
// no ASIN is known. Price, when present, sharpens the match.
type LookupRequest struct {
	ASIN  string   `json:"asin,omitempty"`
	Query string   `json:"query,omitempty"`
	Price *float64 `json:"price,omitempty"`
}
