package docstore

import (
	"context"
	"encoding/json"
)

// LoadScalar reads a single-valued document. def is returned when the
// document is absent, unparsable, or rejected by validate.
func LoadScalar[T any](ctx context.Context, s *Store, key string, def T, validate func(T) error) T {
	raw, ok := s.Raw(ctx, key)
	if !ok {
		return def
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		s.log.Warn("document has wrong shape, using default", "key", key, "error", err)
		return def
	}
	if validate != nil {
		if err := validate(v); err != nil {
			s.log.Warn("document failed validation, using default", "key", key, "error", err)
			return def
		}
	}
	return v
}

// LoadList reads a JSON array document, keeping only entries that decode and
// pass validate. The result is never nil.
func LoadList[T any](ctx context.Context, s *Store, key string, validate func(T) error) []T {
	out := []T{}
	raw, ok := s.Raw(ctx, key)
	if !ok {
		return out
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		s.log.Warn("document is not a list, using default", "key", key, "error", err)
		return out
	}
	for i, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			s.log.Warn("discarding undecodable entry", "key", key, "index", i, "error", err)
			continue
		}
		if validate != nil {
			if err := validate(v); err != nil {
				s.log.Warn("discarding invalid entry", "key", key, "index", i, "error", err)
				continue
			}
		}
		out = append(out, v)
	}
	return out
}

// LoadMap reads a JSON object document, keeping only entries that decode and
// pass validate. The result is never nil.
func LoadMap[T any](ctx context.Context, s *Store, key string, validate func(string, T) error) map[string]T {
	out := map[string]T{}
	raw, ok := s.Raw(ctx, key)
	if !ok {
		return out
	}
	var items map[string]json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		s.log.Warn("document is not an object, using default", "key", key, "error", err)
		return out
	}
	for k, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			s.log.Warn("discarding undecodable entry", "key", key, "entry", k, "error", err)
			continue
		}
		if validate != nil {
			if err := validate(k, v); err != nil {
				s.log.Warn("discarding invalid entry", "key", key, "entry", k, "error", err)
				continue
			}
		}
		out[k] = v
	}
	return out
}
