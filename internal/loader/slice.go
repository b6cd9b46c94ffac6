package loader

import (
	"bytes"
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// Slice is one file of the Million Playlist Dataset layout:
//
//	{"info": {...}, "playlists": [{"name": ..., "tracks": [{"pos": 0, ...}]}]}
type Slice struct {
	Info      map[string]any   `json:"info"`
	Playlists []map[string]any `json:"playlists"`
}

// ReadSlice decodes a slice file. Numbers become int64 when integral and
// float64 otherwise, matching what the graph driver hands back.
func ReadSlice(r io.Reader) (*Slice, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var s Slice
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode slice: %w", err)
	}

	for i, pl := range s.Playlists {
		s.Playlists[i] = normalize(pl).(map[string]any)
	}
	s.Info = normalize(s.Info).(map[string]any)
	return &s, nil
}

// DecodeValue decodes a single JSON document into plain Go values with
// the same number handling as ReadSlice.
func DecodeValue(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode value: %w", err)
	}
	return normalize(v), nil
}

func normalize(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case []any:
		for i, elem := range val {
			val[i] = normalize(elem)
		}
		return val
	case map[string]any:
		if val == nil {
			return map[string]any{}
		}
		for k, elem := range val {
			val[k] = normalize(elem)
		}
		return val
	}
	return v
}
