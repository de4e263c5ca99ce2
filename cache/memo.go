package cache

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"go.uber.org/zap"

	"adventure-us/logger"
)

// Store is a key/value backend for Memo.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	// Reset drops every entry written during this session.
	Reset(ctx context.Context) error
}

// Memo memoizes upstream results keyed by the exact call arguments. A store
// failure is treated as a miss, so results never depend on the cache.
type Memo struct {
	store  Store
	logger *logger.Logger
	hits   atomic.Int64
	misses atomic.Int64
}

// NewMemo wraps store.
func NewMemo(store Store, l *logger.Logger) *Memo {
	if l == nil {
		l = logger.L()
	}
	return &Memo{store: store, logger: l}
}

// Hits returns how many lookups were served from the store.
func (m *Memo) Hits() int64 { return m.hits.Load() }

// Misses returns how many lookups had to call through.
func (m *Memo) Misses() int64 { return m.misses.Load() }

// Stats is a snapshot of the counters.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

func (m *Memo) Stats() Stats {
	return Stats{Hits: m.Hits(), Misses: m.Misses()}
}

// Reset empties the store and zeroes the counters.
func (m *Memo) Reset(ctx context.Context) error {
	m.hits.Store(0)
	m.misses.Store(0)
	return m.store.Reset(ctx)
}

func (m *Memo) lookup(ctx context.Context, key string, dst any) bool {
	data, ok, err := m.store.Get(ctx, key)
	if err != nil {
		m.logger.WithContext(ctx).Warn("memo lookup failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		m.logger.WithContext(ctx).Warn("memo entry unreadable", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (m *Memo) save(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		m.logger.WithContext(ctx).Warn("memo entry not encodable", zap.String("key", key), zap.Error(err))
		return
	}
	if err := m.store.Set(ctx, key, data); err != nil {
		m.logger.WithContext(ctx).Warn("memo store failed", zap.String("key", key), zap.Error(err))
	}
}

// Do returns the memoized value for key, or calls fn and memoizes its result.
// Errors from fn are returned as-is and never memoized.
func Do[T any](ctx context.Context, m *Memo, key string, fn func(context.Context) (T, error)) (T, error) {
	var v T
	if m == nil {
		return fn(ctx)
	}
	if m.lookup(ctx, key, &v) {
		m.hits.Add(1)
		return v, nil
	}
	m.misses.Add(1)

	v, err := fn(ctx)
	if err != nil {
		return v, err
	}
	m.save(ctx, key, v)
	return v, nil
}
