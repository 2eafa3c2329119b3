package store

import (
	"context"
	"fmt"

	"github.com/dilm-seo/ia-analyste/types"
)

// Persisted settings key names.
const (
	keyAPIKey            = "openaiKey"
	keyModel             = "openaiModel"
	keyLanguage          = "language"
	keyNotificationEmail = "notificationEmail"
	keyWebhookURL        = "webhookUrl"
)

// Field defaults applied when a key has never been written.
const (
	DefaultModel    = "gpt-4"
	DefaultLanguage = "en"
)

// SettingsStore persists the user configuration. Each field is read
// and written individually; Save overwrites all fields wholesale with
// no partial-save atomicity.
type SettingsStore struct {
	kv KV
}

func NewSettingsStore(kv KV) *SettingsStore {
	return &SettingsStore{kv: kv}
}

// Load reads the settings, applying named defaults for absent fields.
func (s *SettingsStore) Load(ctx context.Context) (types.Settings, error) {
	settings := types.Settings{}

	fields := []struct {
		key      string
		dest     *string
		fallback string
	}{
		{keyAPIKey, &settings.APIKey, ""},
		{keyModel, &settings.Model, DefaultModel},
		{keyLanguage, &settings.Language, DefaultLanguage},
		{keyNotificationEmail, &settings.NotificationEmail, ""},
		{keyWebhookURL, &settings.WebhookURL, ""},
	}

	for _, f := range fields {
		val, ok, err := s.kv.Get(ctx, f.key)
		if err != nil {
			return types.Settings{}, fmt.Errorf("load setting %q: %w", f.key, err)
		}
		if ok {
			*f.dest = string(val)
		} else {
			*f.dest = f.fallback
		}
	}

	return settings, nil
}

// Save writes every field individually.
func (s *SettingsStore) Save(ctx context.Context, settings types.Settings) error {
	fields := map[string]string{
		keyAPIKey:            settings.APIKey,
		keyModel:             settings.Model,
		keyLanguage:          settings.Language,
		keyNotificationEmail: settings.NotificationEmail,
		keyWebhookURL:        settings.WebhookURL,
	}
	for key, val := range fields {
		if err := s.kv.Set(ctx, key, []byte(val)); err != nil {
			return fmt.Errorf("save setting %q: %w", key, err)
		}
	}
	return nil
}
