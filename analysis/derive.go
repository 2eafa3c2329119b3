package analysis

import "github.com/dilm-seo/ia-analyste/types"

// assemble applies the parsed fields to a copy of the batch and
// derives the trading signal. Only the first item receives
// classification updates; the signal cites up to the first two items
// as read-only evidence snapshots.
func (c *Client) assemble(batch []types.NewsItem, draft draftFields) *Result {
	updated := make([]types.NewsItem, len(batch))
	copy(updated, batch)

	first := &updated[0]
	if draft.hasSentiment {
		first.Sentiment = draft.sentiment
	}
	if draft.hasImpact {
		first.Impact = draft.impact
	}
	if draft.hasKeywords {
		first.Keywords = draft.keywords
	}

	pair := draft.pair
	if pair == types.UnknownPair {
		pair = DetectCurrencyPair(updated[0])
	}

	sources := updated
	if len(sources) > 2 {
		sources = sources[:2]
	}
	newsSource := make([]types.NewsItem, len(sources))
	copy(newsSource, sources)

	return &Result{
		UpdatedNews: updated,
		Signal: types.TradingSignal{
			ID:         c.newID(),
			Timestamp:  c.now(),
			Action:     draft.action,
			Confidence: c.policy.Recalibrate(draft.confidence, updated[0].Impact),
			Pair:       pair,
			NewsSource: newsSource,
		},
	}
}
