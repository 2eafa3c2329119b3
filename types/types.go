package types

import "time"

// Sentiment classifies the market tone assigned to a news item.
type Sentiment string

const (
	SentimentBullish Sentiment = "bullish"
	SentimentBearish Sentiment = "bearish"
	SentimentNeutral Sentiment = "neutral"
)

// Impact grades how strongly a news item is expected to move the market.
type Impact string

const (
	ImpactLow    Impact = "low"
	ImpactMedium Impact = "medium"
	ImpactHigh   Impact = "high"
)

// Action is the trading recommendation derived from a classification run.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
	ActionWait Action = "wait"
)

// UnknownPair is used when no currency pair could be determined.
const UnknownPair = "Unknown"

// NewsItem represents a single entry from the news feed. Items start
// with neutral sentiment, low impact and no keywords; the classifier
// fills those fields in once analysis completes.
type NewsItem struct {
	Title       string    `json:"title"`
	PublishedAt time.Time `json:"published_at"`
	Description string    `json:"description"`
	Link        string    `json:"link"`
	Sentiment   Sentiment `json:"sentiment"`
	Impact      Impact    `json:"impact"`
	Keywords    []string  `json:"keywords"`
}

// NewNewsItem builds a feed item with default classification fields.
func NewNewsItem(title string, publishedAt time.Time, description, link string) NewsItem {
	return NewsItem{
		Title:       title,
		PublishedAt: publishedAt,
		Description: description,
		Link:        link,
		Sentiment:   SentimentNeutral,
		Impact:      ImpactLow,
		Keywords:    []string{},
	}
}

// TradingSignal is the outcome of one classification run. NewsSource
// holds up to two items cited as evidence; they are snapshots and are
// never mutated after the signal is created.
type TradingSignal struct {
	ID         string     `json:"id"`
	Timestamp  time.Time  `json:"timestamp"`
	Action     Action     `json:"action"`
	Confidence float64    `json:"confidence"`
	Pair       string     `json:"pair"`
	NewsSource []NewsItem `json:"news_source"`
}

// Settings holds the user configuration persisted in the store. The
// JSON tags match the persisted key names.
type Settings struct {
	APIKey            string `json:"openaiKey"`
	Model             string `json:"openaiModel"`
	Language          string `json:"language"`
	NotificationEmail string `json:"notificationEmail,omitempty"`
	WebhookURL        string `json:"webhookUrl,omitempty"`
}
