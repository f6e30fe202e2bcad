package usecase

import (
	"fmt"
	"math"

	"github.com/flipradar/backend/internal/domain"
)

// Listing score adjustments. The score starts neutral and moves with the
// demand and quality signals that are actually known; unknown signals leave
// it untouched.
const (
	listingScoreBase = 50.0

	lowSalesPenaltyHeavy  = 25.0 // under 100 sales/month
	lowSalesPenaltyMedium = 15.0 // under 200
	lowSalesPenaltyLight  = 5.0  // under 300

	highRatingBonus  = 5.0  // rating >= 4.5
	lowRatingPenalty = 10.0 // rating < 3.8

	manyReviewsBonus  = 5.0 // >= 500 reviews
	fewReviewsPenalty = 5.0 // < 20 reviews

	ipComplaintPenalty = 20.0 // known IP complaint against the listing
)

// ROI recommendation thresholds (percent)
const (
	buyROIThreshold    = 40.0
	reviewROIThreshold = 25.0
)

// defaultFeeRate estimates Amazon referral + FBA fees as a fraction of the
// sell price.
const defaultFeeRate = 0.15

// AnalyzerConfig holds configuration for the deal analyzer
type AnalyzerConfig struct {
	FeeRate float64
	SOP     domain.SOPCriteria
}

// DealAnalyzer scores a matched retail product for resale viability
type DealAnalyzer struct {
	feeRate float64
	sop     domain.SOPCriteria
}

// NewDealAnalyzer creates a deal analyzer, defaulting the fee rate when the
// configured value is out of range.
func NewDealAnalyzer(config AnalyzerConfig) *DealAnalyzer {
	feeRate := config.FeeRate
	if feeRate <= 0 || feeRate >= 1 {
		feeRate = defaultFeeRate
	}
	return &DealAnalyzer{feeRate: feeRate, sop: config.SOP}
}

// Analyze produces the viability assessment for one retail product given its
// matched Amazon listing. A nil match is a valid input: the analysis then
// reports Amazon data unavailable and recommends a manual review.
func (a *DealAnalyzer) Analyze(product domain.RetailProduct, match *domain.MatchResult) domain.DealAnalysis {
	analysis := domain.DealAnalysis{
		Product:      product,
		Match:        match,
		ListingScore: listingScoreBase,
	}

	if match == nil {
		analysis.Recommendation = domain.RecommendationReview
		analysis.Summary = "No confident Amazon match found; verify the listing manually."
		analysis.SOP = a.validateSOP(product, analysis)
		return analysis
	}

	if match.SalesRank != nil {
		monthly := estimateMonthlySales(*match.SalesRank)
		analysis.MonthlySales = &monthly
	}
	analysis.ListingScore = a.listingScore(match, analysis.MonthlySales)

	if match.Price != nil && *match.Price > 0 && product.Price > 0 {
		buyBox := *match.Price
		analysis.BuyBoxPrice = &buyBox

		profit := buyBox - product.Price - buyBox*a.feeRate
		roi := roundTenth(profit / product.Price * 100)
		analysis.Profit = &profit
		analysis.ROI = &roi

		switch {
		case roi >= buyROIThreshold:
			analysis.Recommendation = domain.RecommendationBuy
			analysis.Summary = fmt.Sprintf("High profit opportunity with %.1f%% ROI.", roi)
		case roi >= reviewROIThreshold:
			analysis.Recommendation = domain.RecommendationReview
			analysis.Summary = fmt.Sprintf("Moderate profit with %.1f%% ROI. Check competition first.", roi)
		default:
			analysis.Recommendation = domain.RecommendationAvoid
			analysis.Summary = fmt.Sprintf("Low profit margin (%.1f%% ROI). Not recommended.", roi)
		}
	} else {
		analysis.Recommendation = domain.RecommendationReview
		analysis.Summary = "Amazon price unavailable; profit cannot be estimated."
	}

	analysis.SOP = a.validateSOP(product, analysis)
	return analysis
}

// listingScore rates listing quality/demand 0-100
func (a *DealAnalyzer) listingScore(match *domain.MatchResult, monthlySales *int) float64 {
	score := listingScoreBase

	if monthlySales != nil {
		switch {
		case *monthlySales < 100:
			score -= lowSalesPenaltyHeavy
		case *monthlySales < 200:
			score -= lowSalesPenaltyMedium
		case *monthlySales < 300:
			score -= lowSalesPenaltyLight
		}
	}

	if match.Rating != nil {
		if *match.Rating >= 4.5 {
			score += highRatingBonus
		} else if *match.Rating < 3.8 {
			score -= lowRatingPenalty
		}
	}
	if match.Reviews != nil {
		if *match.Reviews >= 500 {
			score += manyReviewsBonus
		} else if *match.Reviews < 20 {
			score -= fewReviewsPenalty
		}
	}
	if match.IPComplaint != nil && *match.IPComplaint {
		score -= ipComplaintPenalty
	}

	return math.Max(0, math.Min(100, score))
}

// validateSOP checks the deal against the configured sourcing minimums.
// Checks whose inputs are unknown stay nil rather than failing the deal.
func (a *DealAnalyzer) validateSOP(product domain.RetailProduct, analysis domain.DealAnalysis) *domain.SOPResult {
	checks := map[string]*bool{
		"minPrice":        boolPtr(product.Price >= a.sop.MinPrice),
		"minROI":          nil,
		"minMonthlySales": nil,
		"noIPComplaints":  nil,
	}

	if analysis.ROI != nil {
		checks["minROI"] = boolPtr(*analysis.ROI >= a.sop.MinROI)
	}
	if analysis.MonthlySales != nil {
		checks["minMonthlySales"] = boolPtr(*analysis.MonthlySales >= a.sop.MinMonthlySales)
	}
	if analysis.Match != nil && analysis.Match.IPComplaint != nil {
		checks["noIPComplaints"] = boolPtr(!*analysis.Match.IPComplaint)
	}

	result := &domain.SOPResult{Passed: true, Checks: checks}
	for name, passed := range checks {
		switch {
		case passed == nil:
			result.UnknownChecks = append(result.UnknownChecks, name)
		case !*passed:
			result.FailedChecks = append(result.FailedChecks, name)
			result.Passed = false
		}
	}
	return result
}

// estimateMonthlySales approximates monthly unit sales from a Best Sellers
// Rank. Coarse bands; good enough to separate dead listings from movers.
func estimateMonthlySales(salesRank int) int {
	switch {
	case salesRank < 1000:
		return 2000
	case salesRank < 5000:
		return 500
	case salesRank < 10000:
		return 250
	case salesRank < 50000:
		return 100
	case salesRank < 100000:
		return 50
	default:
		return 20
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

func boolPtr(b bool) *bool {
	return &b
}
