package feed

import (
	"context"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/dilm-seo/ia-analyste/store"
	"github.com/dilm-seo/ia-analyste/types"
)

// CacheKey is where the latest news list lives in the cache.
const CacheKey = "latest_news"

// FetchError indicates the news feed could not be retrieved or parsed.
// Callers are expected to surface it to the user; no retry is
// attempted here.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return "fetch news feed: " + e.Err.Error() }
func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher retrieves the remote news feed and normalizes it into
// NewsItems. Results are cached; a fresh cache entry suppresses the
// network call entirely.
type Fetcher struct {
	feedURL  string
	proxyURL string
	cache    *store.Cache
	parser   *gofeed.Parser
}

// NewFetcher creates a feed fetcher. proxyURL, when non-empty, is a
// raw-passthrough proxy prefix the encoded feed URL is appended to.
func NewFetcher(feedURL, proxyURL string, cache *store.Cache) *Fetcher {
	return &Fetcher{
		feedURL:  feedURL,
		proxyURL: proxyURL,
		cache:    cache,
		parser:   gofeed.NewParser(),
	}
}

// Fetch returns the current news list, serving from the cache while
// the entry is fresh. On a miss it retrieves and parses the feed,
// maps every entry to a NewsItem with default classification fields
// and caches the result.
func (f *Fetcher) Fetch(ctx context.Context) ([]types.NewsItem, error) {
	var cached []types.NewsItem
	if f.cache.Get(ctx, CacheKey, &cached) {
		return cached, nil
	}

	parsed, err := f.parser.ParseURLWithContext(f.resolveURL(), ctx)
	if err != nil {
		return nil, &FetchError{Err: err}
	}

	items := make([]types.NewsItem, 0, len(parsed.Items))
	for _, entry := range parsed.Items {
		var publishedAt time.Time
		if entry.PublishedParsed != nil {
			publishedAt = *entry.PublishedParsed
		} else if entry.UpdatedParsed != nil {
			publishedAt = *entry.UpdatedParsed
		}
		items = append(items, types.NewNewsItem(
			entry.Title,
			publishedAt,
			StripMarkup(entry.Description),
			entry.Link,
		))
	}

	f.cache.Set(ctx, CacheKey, items)
	return items, nil
}

// Store replaces the cached news list so classification results stay
// visible to subsequent reads.
func (f *Fetcher) Store(ctx context.Context, items []types.NewsItem) {
	f.cache.Set(ctx, CacheKey, items)
}

func (f *Fetcher) resolveURL() string {
	if f.proxyURL == "" {
		return f.feedURL
	}
	return f.proxyURL + url.QueryEscape(f.feedURL)
}
