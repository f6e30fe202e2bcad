package usecase

import "math"

// Price plausibility sentinels. Neutral means price cannot help or hurt;
// disqualified is the only value that can exclude a candidate outright
// under the strict-price gate.
const (
	priceScoreNeutral      = 0.5
	priceScoreDisqualified = -1.0
)

// Default acceptable price-ratio band (candidate/target). Overridable via
// config and per-call options; non-finite or non-positive overrides fall
// back to these.
const (
	defaultMinPriceRatio = 0.4
	defaultMaxPriceRatio = 3.0
)

// PriceScore evaluates how plausible candidatePrice is for a target known to
// cost targetPrice.
//
//   - Either price missing or non-positive: 0.5, the neutral sentinel.
//   - Ratio non-finite or non-positive: 0 (implausible).
//   - Ratio outside [minRatio, maxRatio]: -1, the disqualification sentinel.
//   - Otherwise a symmetric log-distance falloff: equal prices score 1,
//     the band edge scores 0.
func PriceScore(targetPrice, candidatePrice *float64, minRatio, maxRatio float64) float64 {
	if targetPrice == nil || candidatePrice == nil {
		return priceScoreNeutral
	}
	if *targetPrice <= 0 || *candidatePrice <= 0 {
		return priceScoreNeutral
	}

	ratio := *candidatePrice / *targetPrice
	if math.IsInf(ratio, 0) || math.IsNaN(ratio) || ratio <= 0 {
		return 0
	}
	if ratio < minRatio || ratio > maxRatio {
		return priceScoreDisqualified
	}

	maxLog := math.Abs(math.Log(maxRatio))
	if maxLog == 0 {
		// maxRatio of exactly 1 leaves no band to measure distance in.
		return 1
	}
	diff := math.Abs(math.Log(ratio))
	return math.Max(0, 1-diff/maxLog)
}
