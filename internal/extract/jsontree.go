package extract

import (
	"bytes"
	"encoding/json"
	"sort"
)

// decodeJSON unmarshals untrusted JSON keeping numbers as json.Number.
// Video identifiers are 19-digit integers that float64 would corrupt.
func decodeJSON(raw string) (any, bool) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	return v, true
}

// walkObjects visits every JSON object in v depth-first, children in
// sorted key order so repeated walks of the same tree are deterministic.
// visit returns true to stop the walk early.
func walkObjects(v any, visit func(map[string]any) bool) bool {
	switch t := v.(type) {
	case map[string]any:
		if visit(t) {
			return true
		}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if walkObjects(t[k], visit) {
				return true
			}
		}
	case []any:
		for _, child := range t {
			if walkObjects(child, visit) {
				return true
			}
		}
	}
	return false
}

// firstKey returns the first present, non-nil value among the given key
// variants, in the order listed.
func firstKey(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// asString narrows a JSON scalar to a non-empty string.
func asString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// asCount narrows a JSON scalar (number or count-formatted string) to a
// non-negative integer. Rejects negatives and malformed strings.
func asCount(v any) (int64, bool) {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil && n >= 0 {
			return n, true
		}
		if f, err := t.Float64(); err == nil && f >= 0 {
			return int64(f), true
		}
	case string:
		return ParseCount(t)
	}
	return 0, false
}
