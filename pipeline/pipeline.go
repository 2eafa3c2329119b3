package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dilm-seo/ia-analyste/analysis"
	"github.com/dilm-seo/ia-analyste/store"
	"github.com/dilm-seo/ia-analyste/types"
)

// BatchSize caps how many feed items are sent to the classifier in one
// request.
const BatchSize = 3

// NewsFetcher supplies the current news list and lets the pipeline
// write classification results back.
type NewsFetcher interface {
	Fetch(ctx context.Context) ([]types.NewsItem, error)
	Store(ctx context.Context, items []types.NewsItem)
}

// Classifier turns a news batch into classified news plus a signal.
type Classifier interface {
	Analyze(ctx context.Context, batch []types.NewsItem, creds analysis.Credentials) (*analysis.Result, error)
}

// Notifier delivers a derived signal, best effort.
type Notifier interface {
	Notify(ctx context.Context, signal types.TradingSignal, settings types.Settings)
}

// Outcome is what one analysis run produced.
type Outcome struct {
	News   []types.NewsItem
	Signal types.TradingSignal
}

// Pipeline wires the news-to-signal flow together: fetch, classify,
// derive, persist, notify, strictly in that order within one run.
// Runs are not mutually excluded; overlapping invocations interleave
// and their history insertions land in arrival order.
type Pipeline struct {
	fetcher    NewsFetcher
	classifier Classifier
	notifier   Notifier
	settings   *store.SettingsStore
	history    *store.SignalHistory
}

func New(fetcher NewsFetcher, classifier Classifier, notifier Notifier, settings *store.SettingsStore, history *store.SignalHistory) *Pipeline {
	return &Pipeline{
		fetcher:    fetcher,
		classifier: classifier,
		notifier:   notifier,
		settings:   settings,
		history:    history,
	}
}

// Refresh fetches the news feed, serving from the cache when fresh.
func (p *Pipeline) Refresh(ctx context.Context) ([]types.NewsItem, error) {
	return p.fetcher.Fetch(ctx)
}

// Analyze runs one classification pass over the newest feed items. On
// any error before persistence the news list and history are left
// untouched; a missing API key fails before any network call.
func (p *Pipeline) Analyze(ctx context.Context) (*Outcome, error) {
	settings, err := p.settings.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if settings.APIKey == "" {
		return nil, analysis.ErrMissingAPIKey
	}

	news, err := p.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if len(news) == 0 {
		return nil, &analysis.AnalysisError{Err: errors.New("no news items to analyze")}
	}

	batch := news
	if len(batch) > BatchSize {
		batch = batch[:BatchSize]
	}

	result, err := p.classifier.Analyze(ctx, batch, analysis.Credentials{
		APIKey: settings.APIKey,
		Model:  settings.Model,
	})
	if err != nil {
		return nil, err
	}

	// Splice the classified batch back over the head of the list.
	updated := make([]types.NewsItem, 0, len(news))
	updated = append(updated, result.UpdatedNews...)
	updated = append(updated, news[len(result.UpdatedNews):]...)
	p.fetcher.Store(ctx, updated)

	if err := p.history.Prepend(ctx, result.Signal); err != nil {
		return nil, fmt.Errorf("persist signal: %w", err)
	}

	p.notifier.Notify(ctx, result.Signal, settings)

	log.Printf("analysis complete: %s %s (confidence %.2f)",
		result.Signal.Action, result.Signal.Pair, result.Signal.Confidence)

	return &Outcome{News: updated, Signal: result.Signal}, nil
}
