package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/dilm-seo/ia-analyste/types"
)

// Notifier delivers trading signals to the configured targets.
// Delivery is best effort: a single attempt, failures logged and
// never returned to the caller.
type Notifier struct {
	client *http.Client
}

func NewNotifier() *Notifier {
	return &Notifier{client: &http.Client{}}
}

type webhookPayload struct {
	Text       string    `json:"text"`
	Confidence float64   `json:"confidence"`
	Timestamp  time.Time `json:"timestamp"`
	News       string    `json:"news"`
}

// Notify sends the signal to the webhook, if one is configured. An
// email target only records the intent; there is no delivery path
// wired up.
func (n *Notifier) Notify(ctx context.Context, signal types.TradingSignal, settings types.Settings) {
	if settings.WebhookURL != "" {
		if err := n.postWebhook(ctx, settings.WebhookURL, signal); err != nil {
			log.Printf("Warning: webhook notification failed: %v", err)
		}
	}

	if settings.NotificationEmail != "" {
		log.Printf("Email notification would be sent to: %s", settings.NotificationEmail)
	}
}

func (n *Notifier) postWebhook(ctx context.Context, webhookURL string, signal types.TradingSignal) error {
	titles := make([]string, 0, len(signal.NewsSource))
	for _, item := range signal.NewsSource {
		titles = append(titles, item.Title)
	}

	payload := webhookPayload{
		Text:       fmt.Sprintf("New Trading Signal: %s %s", strings.ToUpper(string(signal.Action)), signal.Pair),
		Confidence: signal.Confidence,
		Timestamp:  signal.Timestamp,
		News:       strings.Join(titles, "\n"),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
