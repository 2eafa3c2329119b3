package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dilm-seo/ia-analyste/types"
)

const historyKey = "trading_signals"

// SignalHistory persists derived trading signals, most-recent first.
// The history grows without bound; signals are never mutated once
// appended.
type SignalHistory struct {
	mu sync.Mutex
	kv KV
}

func NewSignalHistory(kv KV) *SignalHistory {
	return &SignalHistory{kv: kv}
}

// All returns the full history, newest first.
func (h *SignalHistory) All(ctx context.Context) ([]types.TradingSignal, error) {
	raw, ok, err := h.kv.Get(ctx, historyKey)
	if err != nil {
		return nil, fmt.Errorf("load signal history: %w", err)
	}
	if !ok {
		return []types.TradingSignal{}, nil
	}

	var signals []types.TradingSignal
	if err := json.Unmarshal(raw, &signals); err != nil {
		return nil, fmt.Errorf("decode signal history: %w", err)
	}
	return signals, nil
}

// Prepend inserts a signal at the head of the history. The lock keeps
// the read-modify-write atomic: the backend round-trips suspend, and
// overlapping prepends would otherwise overwrite each other's signal.
// Order between concurrent prepends is whichever completes last.
func (h *SignalHistory) Prepend(ctx context.Context, signal types.TradingSignal) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	signals, err := h.All(ctx)
	if err != nil {
		return err
	}

	signals = append([]types.TradingSignal{signal}, signals...)

	raw, err := json.Marshal(signals)
	if err != nil {
		return fmt.Errorf("encode signal history: %w", err)
	}
	if err := h.kv.Set(ctx, historyKey, raw); err != nil {
		return fmt.Errorf("write signal history: %w", err)
	}
	return nil
}
