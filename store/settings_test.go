package store

import (
	"context"
	"testing"

	"github.com/dilm-seo/ia-analyste/types"
)

func TestSettingsDefaults(t *testing.T) {
	settings := NewSettingsStore(NewMemoryKV())

	loaded, err := settings.Load(context.Background())
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}

	if loaded.APIKey != "" {
		t.Errorf("expected empty API key, got %q", loaded.APIKey)
	}
	if loaded.Model != DefaultModel {
		t.Errorf("expected default model %q, got %q", DefaultModel, loaded.Model)
	}
	if loaded.Language != DefaultLanguage {
		t.Errorf("expected default language %q, got %q", DefaultLanguage, loaded.Language)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	settings := NewSettingsStore(NewMemoryKV())

	saved := types.Settings{
		APIKey:            "sk-test",
		Model:             "gpt-3.5-turbo",
		Language:          "fr",
		NotificationEmail: "trader@example.com",
		WebhookURL:        "https://hooks.example.com/signal",
	}
	if err := settings.Save(context.Background(), saved); err != nil {
		t.Fatalf("save settings: %v", err)
	}

	loaded, err := settings.Load(context.Background())
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if loaded != saved {
		t.Fatalf("round trip mismatch: saved %+v, loaded %+v", saved, loaded)
	}
}
