// Package storage provides the device key-value stores pocketvault keeps its
// preferences in.
package storage

import (
	"context"
	"errors"
)

var (
	// ErrEmptyKey is returned when a store is asked for the empty key.
	ErrEmptyKey = errors.New("storage: empty key")

	// ErrCorrupt is wrapped by read errors for a file that does not parse as
	// a flat table of strings.
	ErrCorrupt = errors.New("corrupt file")
)

// Store is a durable string key-value store. It satisfies theme.Store.
type Store interface {
	// Get returns ok=false with a nil error for keys that were never set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
