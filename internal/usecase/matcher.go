package usecase

import (
	"log"
	"math"

	"github.com/flipradar/backend/internal/domain"
)

// Blend weights for the final candidate score. Text similarity dominates;
// price plausibility adjusts.
const (
	textScoreWeight  = 0.7
	priceScoreWeight = 0.3
)

// defaultMinScore is the floor a candidate must strictly exceed to be
// returned at all.
const defaultMinScore = 0.2

// Type-match factors. Multiplicative and never short-circuited: every rule
// that applies gets multiplied in, so simultaneous conditions compound.
// Treat the rule list as a fixed contract, not a tuning surface.
const (
	factorGiftCardMismatch     = 0.2 // gift cards must never resolve to physical goods
	factorSubscriptionMismatch = 0.2
	factorGameVsConsole        = 0.3 // game search must not return a console bundle
	factorConsoleVsGame        = 0.3
	factorAccessoryVsConsole   = 0.3
	factorAccessoryVsGame      = 0.6
	factorUnwantedBundle       = 0.5 // target isn't a bundle, candidate is
	factorMissingBundle        = 0.7
	factorSameType             = 1.1
)

// MatcherConfig holds configuration for the match selector
type MatcherConfig struct {
	MinScore           float64
	MinPriceRatio      float64
	MaxPriceRatio      float64
	EnableDebugLogging bool
}

// Matcher selects the best Amazon candidate for a target description by
// blending text similarity, price plausibility, and product-type facets.
// Stateless after construction; safe for concurrent use.
type Matcher struct {
	minScore           float64
	minPriceRatio      float64
	maxPriceRatio      float64
	enableDebugLogging bool
}

// NewMatcher creates a matcher, substituting defaults for absent or
// non-finite configuration values.
func NewMatcher(config MatcherConfig) *Matcher {
	return &Matcher{
		minScore:           sanitizeRatio(config.MinScore, defaultMinScore),
		minPriceRatio:      sanitizeRatio(config.MinPriceRatio, defaultMinPriceRatio),
		maxPriceRatio:      sanitizeRatio(config.MaxPriceRatio, defaultMaxPriceRatio),
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// sanitizeRatio falls back to def when the configured value is unusable
func sanitizeRatio(value, def float64) float64 {
	if value <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return def
	}
	return value
}

// PickBestMatch returns the candidate with the highest blended score, or nil
// when no candidate strictly exceeds the minimum score floor. Nil is the
// expected "no confident match" outcome, not an error.
//
// When the target carries a price, strict price gating is on by default:
// candidates whose price ratio falls outside the acceptable band are skipped
// outright regardless of how well their titles overlap. A cheap console
// bundle must never be matched to a game search just because the titles
// share tokens.
func (m *Matcher) PickBestMatch(
	candidates []domain.AmazonListing,
	target domain.MatchTarget,
	opts *domain.MatchOptions,
) *domain.MatchResult {
	minScore := m.minScore
	minRatio := m.minPriceRatio
	maxRatio := m.maxPriceRatio
	strictPrice := target.Price != nil

	if opts != nil {
		if opts.MinScore != nil {
			minScore = *opts.MinScore
		}
		if opts.MinPriceRatio != nil {
			minRatio = sanitizeRatio(*opts.MinPriceRatio, defaultMinPriceRatio)
		}
		if opts.MaxPriceRatio != nil {
			maxRatio = sanitizeRatio(*opts.MaxPriceRatio, defaultMaxPriceRatio)
		}
		if opts.StrictPrice != nil {
			strictPrice = *opts.StrictPrice
		}
	}

	if m.enableDebugLogging {
		log.Printf("[MATCH] Searching %d candidates for %q (strictPrice=%v)",
			len(candidates), target.Title, strictPrice)
	}

	var best *domain.MatchResult
	bestScore := minScore

	for _, candidate := range candidates {
		price := PriceScore(target.Price, candidate.Price, minRatio, maxRatio)
		if strictPrice && price == priceScoreDisqualified {
			if m.enableDebugLogging {
				log.Printf("[MATCH] Skipping %q: price outside [%.2f, %.2f] band",
					candidate.Title, minRatio, maxRatio)
			}
			continue
		}

		text := TextSimilarity(candidate.Title, target.Title)
		factor := typeMatchFactor(target.Title, candidate.Title)
		blended := text*textScoreWeight + price*priceScoreWeight
		score := blended * factor

		if m.enableDebugLogging {
			log.Printf("[MATCH] %q | text=%.3f price=%.3f factor=%.3f score=%.3f",
				candidate.Title, text, price, factor, score)
		}

		// Strict > on both comparisons: ties keep the earlier candidate,
		// and a score exactly at the floor is excluded.
		if score > bestScore {
			bestScore = score
			best = &domain.MatchResult{AmazonListing: candidate, Score: score}
		}
	}

	if m.enableDebugLogging {
		if best != nil {
			log.Printf("[MATCH] Best match: %q (score=%.3f)", best.Title, best.Score)
		} else {
			log.Printf("[MATCH] No candidate cleared minScore=%.3f", minScore)
		}
	}

	return best
}

// typeMatchFactor computes the multiplicative adjustment applied to the
// blended score based on the two titles' classifications. Starts at 1.0;
// every applicable rule multiplies in. A shared-facet bonus stacks with any
// penalties rather than replacing them, so being "somewhat the same type"
// cannot override a strong cross-type signal.
func typeMatchFactor(targetTitle, candidateTitle string) float64 {
	target := ClassifyTitle(targetTitle)
	candidate := ClassifyTitle(candidateTitle)

	factor := 1.0
	if target.IsGiftCard && !candidate.IsGiftCard {
		factor *= factorGiftCardMismatch
	}
	if target.IsSubscription && !candidate.IsSubscription {
		factor *= factorSubscriptionMismatch
	}

	if target.IsGame && (candidate.IsConsole || candidate.IsBundle) {
		factor *= factorGameVsConsole
	}
	if target.IsConsole && candidate.IsGame {
		factor *= factorConsoleVsGame
	}
	if target.IsAccessory && (candidate.IsConsole || candidate.IsBundle) {
		factor *= factorAccessoryVsConsole
	}
	if target.IsAccessory && candidate.IsGame {
		factor *= factorAccessoryVsGame
	}

	if !target.IsBundle && candidate.IsBundle {
		factor *= factorUnwantedBundle
	}
	if target.IsBundle && !candidate.IsBundle {
		factor *= factorMissingBundle
	}

	sameType := (target.IsConsole && candidate.IsConsole) ||
		(target.IsGame && candidate.IsGame) ||
		(target.IsAccessory && candidate.IsAccessory) ||
		(target.IsGiftCard && candidate.IsGiftCard) ||
		(target.IsSubscription && candidate.IsSubscription)
	if sameType {
		factor *= factorSameType
	}

	return factor
}
