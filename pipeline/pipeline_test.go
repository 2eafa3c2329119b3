package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dilm-seo/ia-analyste/analysis"
	"github.com/dilm-seo/ia-analyste/feed"
	"github.com/dilm-seo/ia-analyste/notify"
	"github.com/dilm-seo/ia-analyste/store"
	"github.com/dilm-seo/ia-analyste/types"
)

type countingNotifier struct {
	calls   int
	lastSig types.TradingSignal
}

func (n *countingNotifier) Notify(_ context.Context, signal types.TradingSignal, _ types.Settings) {
	n.calls++
	n.lastSig = signal
}

// testFixture wires a pipeline over an in-memory store with two
// cached news items and a stubbed classification service.
func testFixture(t *testing.T, responseBody string) (*Pipeline, *store.SignalHistory, *feed.Fetcher, *countingNotifier) {
	t.Helper()

	kv := store.NewMemoryKV()
	cache := store.NewCache(kv, 5*time.Minute)
	settings := store.NewSettingsStore(kv)
	history := store.NewSignalHistory(kv)

	fetcher := feed.NewFetcher("https://unused.example.com", "", cache)
	fetcher.Store(context.Background(), []types.NewsItem{
		types.NewNewsItem("Fed signals rate hike", time.Now(), "Dollar up", "https://example.com/1"),
		types.NewNewsItem("ECB holds steady", time.Now(), "EUR/USD slips", "https://example.com/2"),
	})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reply, _ := json.Marshal(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": responseBody}},
			},
		})
		w.Write(reply)
	}))
	t.Cleanup(server.Close)

	classifier := analysis.NewClient(analysis.ClientConfig{BaseURL: server.URL})
	notifier := &countingNotifier{}
	return New(fetcher, classifier, notifier, settings, history), history, fetcher, notifier
}

func saveKey(t *testing.T, p *Pipeline) {
	t.Helper()
	err := p.settings.Save(context.Background(), types.Settings{
		APIKey:   "sk-test",
		Model:    "gpt-4",
		Language: "en",
	})
	if err != nil {
		t.Fatalf("save settings: %v", err)
	}
}

func TestAnalyzeEndToEnd(t *testing.T) {
	p, history, fetcher, notifier := testFixture(t,
		"Sentiment: Bullish\nImpact: High\nKeywords: rate, hike, dollar\nTrading recommendation: Buy\nConfidence: 0.82")
	saveKey(t, p)
	ctx := context.Background()

	outcome, err := p.Analyze(ctx)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	// The cached news list's first item carries the classification.
	news, err := fetcher.Fetch(ctx)
	if err != nil {
		t.Fatalf("fetch after analyze: %v", err)
	}
	first := news[0]
	if first.Sentiment != types.SentimentBullish || first.Impact != types.ImpactHigh {
		t.Errorf("first item not updated: %+v", first)
	}
	if len(first.Keywords) != 3 || first.Keywords[0] != "rate" {
		t.Errorf("unexpected keywords %v", first.Keywords)
	}
	if news[1].Sentiment != types.SentimentNeutral {
		t.Error("second item must keep its defaults")
	}

	// Exactly one signal prepended.
	signals, err := history.All(ctx)
	if err != nil {
		t.Fatalf("load history: %v", err)
	}
	if len(signals) != 1 {
		t.Fatalf("expected 1 signal in history, got %d", len(signals))
	}
	if signals[0].Action != types.ActionBuy || signals[0].Confidence != 0.82 {
		t.Errorf("unexpected signal %+v", signals[0])
	}

	// Notifier invoked exactly once with that signal.
	if notifier.calls != 1 {
		t.Fatalf("expected 1 notification, got %d", notifier.calls)
	}
	if notifier.lastSig.ID != outcome.Signal.ID {
		t.Error("notifier did not receive the derived signal")
	}
}

func TestAnalyzeMissingKeyLeavesStateUntouched(t *testing.T) {
	p, history, fetcher, notifier := testFixture(t, "Sentiment: Bullish")
	ctx := context.Background()

	before, err := fetcher.Fetch(ctx)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	_, err = p.Analyze(ctx)
	if !errors.Is(err, analysis.ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}

	after, err := fetcher.Fetch(ctx)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(after) != len(before) || after[0].Sentiment != types.SentimentNeutral {
		t.Error("news list changed despite failed analysis")
	}

	signals, err := history.All(ctx)
	if err != nil {
		t.Fatalf("load history: %v", err)
	}
	if len(signals) != 0 {
		t.Fatalf("expected empty history, got %d signals", len(signals))
	}
	if notifier.calls != 0 {
		t.Fatalf("expected no notifications, got %d", notifier.calls)
	}
}

func TestAnalyzeOverlappingRunsAppendInArrivalOrder(t *testing.T) {
	p, history, _, _ := testFixture(t,
		"Sentiment: Neutral\nTrading recommendation: Wait\nConfidence: 0.5")
	saveKey(t, p)
	ctx := context.Background()

	if _, err := p.Analyze(ctx); err != nil {
		t.Fatalf("first analyze: %v", err)
	}
	if _, err := p.Analyze(ctx); err != nil {
		t.Fatalf("second analyze: %v", err)
	}

	signals, err := history.All(ctx)
	if err != nil {
		t.Fatalf("load history: %v", err)
	}
	if len(signals) != 2 {
		t.Fatalf("expected 2 signals, got %d", len(signals))
	}
}

// Smoke check: the real notifier satisfies the pipeline interface.
var _ Notifier = (*notify.Notifier)(nil)
