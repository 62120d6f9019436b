// Package kv defines the local key-value persistence layer the ledger
// stores its blobs in.
package kv

import (
	"context"
	"errors"
)

// ErrQuotaExceeded is returned by a backend that refuses a write because
// its storage budget is used up.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Ports for the storage backends.
type (
	Reader interface {
		// Get returns the value stored under key; ok is false when absent.
		Get(ctx context.Context, key string) (value string, ok bool, err error)
	}

	Writer interface {
		// Set stores value under key, replacing any previous value.
		Set(ctx context.Context, key, value string) error
	}

	Deleter interface {
		// Delete removes keys. Missing keys are not an error.
		Delete(ctx context.Context, keys ...string) error
	}

	Store interface {
		Reader
		Writer
		Deleter
	}
)
