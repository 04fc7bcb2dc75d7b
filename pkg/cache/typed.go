package cache

import (
	"encoding/json"
	"fmt"
)

// GetTyped decodes the JSON value stored under key into T. A value that
// no longer decodes is deleted and reported as a miss along with the
// decode error.
func GetTyped[T any](s *Store, key string) (T, bool, error) {
	var zero T
	data, ok := s.Get(key)
	if !ok {
		return zero, false, nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		_ = s.Delete(key)
		return zero, false, fmt.Errorf("cache: decode %q: %w", key, err)
	}
	return v, true, nil
}

// PutTyped stores value as JSON with the default TTL.
func PutTyped[T any](s *Store, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: marshal typed value for %q: %w", key, err)
	}
	return s.Put(key, data)
}
