package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Document stores one JSON value of type T under a fixed key.
type Document[T any] struct {
	store Store
	key   string
}

// NewDocument binds a key to a store.
func NewDocument[T any](store Store, key string) *Document[T] {
	return &Document[T]{store: store, key: key}
}

// Key returns the storage key.
func (d *Document[T]) Key() string {
	return d.key
}

// Load reads the document. found is false when the key is absent.
func (d *Document[T]) Load(ctx context.Context) (value T, found bool, err error) {
	raw, err := d.store.Get(ctx, d.key)
	if errors.Is(err, ErrNotFound) {
		return value, false, nil
	}
	if err != nil {
		return value, false, fmt.Errorf("failed to read %s: %w", d.key, err)
	}
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return value, false, fmt.Errorf("failed to decode %s: %w", d.key, err)
	}
	return value, true, nil
}

// Save writes the document without expiry.
func (d *Document[T]) Save(ctx context.Context, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", d.key, err)
	}
	if err := d.store.Set(ctx, d.key, string(data), 0); err != nil {
		return fmt.Errorf("failed to write %s: %w", d.key, err)
	}
	return nil
}

// Clear removes the document.
func (d *Document[T]) Clear(ctx context.Context) error {
	return d.store.Delete(ctx, d.key)
}
