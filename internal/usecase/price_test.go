package usecase

import (
	"math"
	"testing"
)

func fptr(v float64) *float64 { return &v }

func TestPriceScore(t *testing.T) {
	testCases := []struct {
		name      string
		target    *float64
		candidate *float64
		minRatio  float64
		maxRatio  float64
		want      float64
	}{
		{
			name:      "missing target price is neutral",
			target:    nil,
			candidate: fptr(59.99),
			minRatio:  0.4, maxRatio: 3.0,
			want: 0.5,
		},
		{
			name:      "missing candidate price is neutral",
			target:    fptr(59.99),
			candidate: nil,
			minRatio:  0.4, maxRatio: 3.0,
			want: 0.5,
		},
		{
			name:      "zero target price is neutral",
			target:    fptr(0),
			candidate: fptr(59.99),
			minRatio:  0.4, maxRatio: 3.0,
			want: 0.5,
		},
		{
			name:      "negative candidate price is neutral",
			target:    fptr(59.99),
			candidate: fptr(-5),
			minRatio:  0.4, maxRatio: 3.0,
			want: 0.5,
		},
		{
			name:      "equal prices score 1",
			target:    fptr(69.99),
			candidate: fptr(69.99),
			minRatio:  0.4, maxRatio: 3.0,
			want: 1,
		},
		{
			name:      "ratio above band disqualifies",
			target:    fptr(69.99),
			candidate: fptr(499.99),
			minRatio:  0.4, maxRatio: 3.0,
			want: -1,
		},
		{
			name:      "ratio below band disqualifies",
			target:    fptr(100),
			candidate: fptr(10),
			minRatio:  0.4, maxRatio: 3.0,
			want: -1,
		},
		{
			name:      "ratio at upper boundary scores 0",
			target:    fptr(10),
			candidate: fptr(30),
			minRatio:  0.4, maxRatio: 3.0,
			want: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := PriceScore(tc.target, tc.candidate, tc.minRatio, tc.maxRatio)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("PriceScore() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPriceScoreSymmetricFalloff(t *testing.T) {
	// A ratio of r and a ratio of 1/r sit at the same log distance from 1
	// and must score the same.
	up := PriceScore(fptr(100), fptr(200), 0.4, 3.0)   // ratio 2
	down := PriceScore(fptr(200), fptr(100), 0.4, 3.0) // ratio 0.5
	if math.Abs(up-down) > 1e-9 {
		t.Errorf("falloff not symmetric: ratio 2 -> %v, ratio 0.5 -> %v", up, down)
	}
	if up <= 0 || up >= 1 {
		t.Errorf("mid-band score = %v, want strictly between 0 and 1", up)
	}
}

func TestPriceScoreMaxRatioOne(t *testing.T) {
	// maxRatio of exactly 1 would make the log-distance denominator zero;
	// the guard returns 1 for an in-band (equal-price) candidate.
	got := PriceScore(fptr(50), fptr(50), 1, 1)
	if got != 1 {
		t.Errorf("PriceScore with maxRatio=1 = %v, want 1", got)
	}
}

func TestPriceScoreMonotoneFalloff(t *testing.T) {
	target := fptr(100)
	prev := PriceScore(target, fptr(100), 0.4, 3.0)
	for _, candidate := range []float64{120, 150, 200, 280} {
		cur := PriceScore(target, fptr(candidate), 0.4, 3.0)
		if cur >= prev {
			t.Errorf("score did not fall moving away from ratio 1: %v -> %v at candidate %v", prev, cur, candidate)
		}
		prev = cur
	}
}
