package usecase

import (
	"strings"

	"github.com/flipradar/backend/internal/domain"
)

// Keyword lists for title classification. Matching is case-insensitive
// substring search over the normalized title. The precedence baked into
// ClassifyTitle (game requires the absence of the other hardware/credit
// facets) is a tested contract; changing a list changes match outcomes.
var (
	platformKeywords = []string{
		"ps5", "playstation 5", "playstation5",
		"ps4", "playstation 4",
		"xbox", "xbox series",
		"nintendo switch", "switch",
	}

	consoleKeywords = []string{
		"console", "system", "digital edition", "disc edition",
	}

	accessoryKeywords = []string{
		"controller", "headset", "charging", "dock", "stand", "case",
		"cover", "skin", "cable", "adapter", "remote", "camera",
	}

	giftCardKeywords = []string{
		"gift card", "giftcard", "digital code", "download code",
	}

	subscriptionKeywords = []string{
		"subscription", "membership", "game pass", "playstation plus", "ps plus",
	}
)

func hasKeyword(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// ClassifyTitle derives the semantic facets of a product title. Pure and
// deterministic. A bundle that names a platform counts as a console (a
// "PS5 Spider-Man Bundle" is console hardware, whatever the game on the
// box art says). Game is the residual facet: it only holds when none of
// console/accessory/gift-card/subscription do.
func ClassifyTitle(title string) domain.TitleClassification {
	normalized := normalizeText(title)

	isBundle := strings.Contains(normalized, "bundle")
	isConsole := hasKeyword(normalized, consoleKeywords) ||
		(isBundle && hasKeyword(normalized, platformKeywords))
	isAccessory := hasKeyword(normalized, accessoryKeywords)
	isGiftCard := hasKeyword(normalized, giftCardKeywords)
	isSubscription := hasKeyword(normalized, subscriptionKeywords)
	isGame := !isConsole && !isAccessory && !isGiftCard && !isSubscription &&
		(strings.Contains(normalized, "game") ||
			strings.Contains(normalized, "edition") ||
			hasKeyword(normalized, platformKeywords))

	return domain.TitleClassification{
		IsBundle:       isBundle,
		IsConsole:      isConsole,
		IsAccessory:    isAccessory,
		IsGiftCard:     isGiftCard,
		IsSubscription: isSubscription,
		IsGame:         isGame,
	}
}
