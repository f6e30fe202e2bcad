package usecase

import (
	"math"
	"testing"
)

func TestJaccardSimilarity(t *testing.T) {
	t.Run("identical titles score 1", func(t *testing.T) {
		got := JaccardSimilarity("Spider-Man 2 PS5", "Spider-Man 2 PS5")
		if got != 1 {
			t.Errorf("JaccardSimilarity = %v, want 1", got)
		}
	})

	t.Run("disjoint titles score 0", func(t *testing.T) {
		got := JaccardSimilarity("Spider-Man 2", "Kitchen Knife Set")
		if got != 0 {
			t.Errorf("JaccardSimilarity = %v, want 0", got)
		}
	})

	t.Run("symmetry", func(t *testing.T) {
		pairs := [][2]string{
			{"PS5 Console Bundle", "PlayStation 5 Console"},
			{"DualSense Controller", "Xbox Controller"},
			{"", "anything"},
			{"Spider-Man 2 PS5", "Spider-Man PS5"},
		}
		for _, pair := range pairs {
			ab := JaccardSimilarity(pair[0], pair[1])
			ba := JaccardSimilarity(pair[1], pair[0])
			if ab != ba {
				t.Errorf("JaccardSimilarity(%q, %q) = %v but reversed = %v", pair[0], pair[1], ab, ba)
			}
		}
	})

	t.Run("empty token set scores 0", func(t *testing.T) {
		// "new sale" is all stopwords
		if got := JaccardSimilarity("new sale", "ps5 console"); got != 0 {
			t.Errorf("JaccardSimilarity = %v, want 0", got)
		}
		if got := JaccardSimilarity("", ""); got != 0 {
			t.Errorf("JaccardSimilarity(\"\",\"\") = %v, want 0", got)
		}
	})
}

func TestTextSimilarity(t *testing.T) {
	t.Run("self-similarity is 1 within blend rounding", func(t *testing.T) {
		got := TextSimilarity("Marvel's Spider-Man 2 PlayStation 5", "Marvel's Spider-Man 2 PlayStation 5")
		if math.Abs(got-1) > 1e-9 {
			t.Errorf("TextSimilarity(x, x) = %v, want 1", got)
		}
	})

	t.Run("bounded in [0,1]", func(t *testing.T) {
		pairs := [][2]string{
			{"PS5 Console", "PlayStation 5 Console Bundle"},
			{"DualSense Controller PS5", "PlayStation 5 Console"},
			{"", "PS5"},
		}
		for _, pair := range pairs {
			got := TextSimilarity(pair[0], pair[1])
			if got < 0 || got > 1 {
				t.Errorf("TextSimilarity(%q, %q) = %v out of [0,1]", pair[0], pair[1], got)
			}
		}
	})

	t.Run("word order affects the bigram component", func(t *testing.T) {
		// Same token set, different order: token Jaccard is 1 for both,
		// but shuffled word order loses bigram overlap.
		sameOrder := TextSimilarity("sony wireless gaming headset", "sony wireless gaming headset")
		shuffled := TextSimilarity("sony wireless gaming headset", "headset gaming sony wireless")
		if shuffled >= sameOrder {
			t.Errorf("shuffled order score %v should be below same-order score %v", shuffled, sameOrder)
		}
	})

	t.Run("zero when one side is empty", func(t *testing.T) {
		if got := TextSimilarity("", "PS5 Console"); got != 0 {
			t.Errorf("TextSimilarity = %v, want 0", got)
		}
	})
}
