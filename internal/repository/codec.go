package repository

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/rpggio/rentledger/internal/store"
)

// GetJSON decodes the value under key into out. It reports false when the key is absent.
func GetJSON(tx store.Tx, key string, out any) (bool, error) {
	data, ok, err := tx.Get(key)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return true, nil
}

// PutJSON encodes v and stores it under key.
func PutJSON(tx store.Tx, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := tx.Set(key, data); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// NextSequence increments the counter under key (0 when absent) and persists it.
func NextSequence(tx store.Tx, key string) (uint64, error) {
	var current uint64
	if _, err := GetJSON(tx, key, &current); err != nil {
		return 0, err
	}
	if current == math.MaxUint64 {
		return 0, fmt.Errorf("%w: %s", ErrSequenceExhausted, key)
	}
	next := current + 1
	if err := PutJSON(tx, key, next); err != nil {
		return 0, err
	}
	return next, nil
}
