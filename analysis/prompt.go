package analysis

import (
	"fmt"
	"strings"

	"github.com/dilm-seo/ia-analyste/types"
)

// buildPrompt embeds the batch's title/description pairs into the
// fixed instruction set the response parser anchors on.
func buildPrompt(batch []types.NewsItem) string {
	var sb strings.Builder
	sb.WriteString(`Analyze the following forex news and provide:
1. Sentiment (bullish/bearish/neutral)
2. Impact level (low/medium/high)
3. Related keywords (max 3)
4. Trading recommendation (buy/sell/wait)
5. Confidence score (0-1)
6. Based on the news content, specify the relevant currency pair (e.g., EUR/USD, USD/JPY).

News: `)
	for _, item := range batch {
		fmt.Fprintf(&sb, "\nTitle: %s\nDescription: %s\n", item.Title, item.Description)
	}
	return sb.String()
}
