package analysis

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dilm-seo/ia-analyste/types"
)

// draftFields accumulates values recovered from the model's free-text
// reply. The response has no guaranteed structure, so parsing is
// heuristic: lines are matched against labeled anchors
// case-insensitively, and fields whose line is missing keep their
// defaults.
type draftFields struct {
	sentiment    types.Sentiment
	hasSentiment bool
	impact       types.Impact
	hasImpact    bool
	keywords     []string
	hasKeywords  bool
	action       types.Action
	confidence   float64
	pair         string
}

var floatPattern = regexp.MustCompile(`[\d.]+`)

// parseAnalysis scans the reply line by line. It is a pure function so
// the fragile text handling can be tested without a network call.
func parseAnalysis(text string) draftFields {
	draft := draftFields{
		action:     types.ActionWait,
		confidence: 0.5,
		pair:       types.UnknownPair,
	}

	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, "sentiment:"):
			draft.hasSentiment = true
			if strings.Contains(lower, "bullish") {
				draft.sentiment = types.SentimentBullish
			} else if strings.Contains(lower, "bearish") {
				draft.sentiment = types.SentimentBearish
			} else {
				draft.sentiment = types.SentimentNeutral
			}
		case strings.Contains(lower, "impact:"):
			draft.hasImpact = true
			if strings.Contains(lower, "high") {
				draft.impact = types.ImpactHigh
			} else if strings.Contains(lower, "medium") {
				draft.impact = types.ImpactMedium
			} else {
				draft.impact = types.ImpactLow
			}
		case strings.Contains(lower, "keywords:"):
			draft.hasKeywords = true
			draft.keywords = splitKeywords(line)
		case strings.Contains(lower, "trading recommendation:"):
			if strings.Contains(lower, "buy") {
				draft.action = types.ActionBuy
			} else if strings.Contains(lower, "sell") {
				draft.action = types.ActionSell
			}
		case strings.Contains(lower, "confidence:"):
			if match := floatPattern.FindString(line); match != "" {
				if value, err := strconv.ParseFloat(match, 64); err == nil {
					draft.confidence = clamp(value)
				}
			}
		case strings.Contains(lower, "pair"):
			if _, after, found := strings.Cut(line, ":"); found {
				if pair := strings.TrimSpace(after); pair != "" {
					draft.pair = pair
				}
			}
		}
	}

	return draft
}

// splitKeywords extracts at most three comma-separated keywords from
// the text after the label.
func splitKeywords(line string) []string {
	_, after, found := strings.Cut(line, ":")
	if !found {
		return []string{}
	}
	parts := strings.Split(after, ",")
	keywords := make([]string, 0, len(parts))
	for _, part := range parts {
		if kw := strings.TrimSpace(part); kw != "" {
			keywords = append(keywords, kw)
		}
		if len(keywords) == 3 {
			break
		}
	}
	return keywords
}

func clamp(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
