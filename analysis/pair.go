package analysis

import (
	"strings"

	"github.com/dilm-seo/ia-analyste/types"
)

// knownPairs is the fixed list of currency pair tokens the fallback
// detector recognizes.
var knownPairs = []string{
	"USD/CAD", "EUR/USD", "GBP/USD", "USD/JPY", "AUD/NZD", "XAU/USD", "BTC/USD",
}

// DetectCurrencyPair scans the item's concatenated title and
// description for a known pair token in slashed, space-separated or
// compact form ("EUR/USD", "EUR USD", "EURUSD"). Matching is
// case-insensitive. Returns Unknown when nothing matches.
func DetectCurrencyPair(item types.NewsItem) string {
	text := strings.ToUpper(item.Title + " " + item.Description)
	for _, pair := range knownPairs {
		if strings.Contains(text, pair) ||
			strings.Contains(text, strings.ReplaceAll(pair, "/", " ")) ||
			strings.Contains(text, strings.ReplaceAll(pair, "/", "")) {
			return pair
		}
	}
	return types.UnknownPair
}
