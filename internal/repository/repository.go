package repository

import (
	"context"
	"time"
)

// KVStore is a durable string-keyed record store
type KVStore interface {
	// Get returns the value stored under key. found is false when the key is
	// absent.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Put stores value under key, overwriting any prior value
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Quarantine moves the value under key aside with a reason and returns
	// the quarantine entry id. The key itself is removed.
	Quarantine(ctx context.Context, key, reason string) (int64, error)

	// ListQuarantined returns quarantined records, newest first
	ListQuarantined(ctx context.Context) ([]QuarantinedRecord, error)

	// Close releases resources
	Close() error
}

// QuarantinedRecord is a stored value that could not be deserialized
type QuarantinedRecord struct {
	ID            int64     `json:"id"`
	Key           string    `json:"key"`
	Value         string    `json:"value"`
	Reason        string    `json:"reason"`
	QuarantinedAt time.Time `json:"quarantined_at"`
}
