package models

import (
	"encoding/json"
	"fmt"
	"io"
)

// FrameRecord is the persisted form of one frame
type FrameRecord struct {
	Path      string     `json:"path"`
	SizeIndex int        `json:"size_index"`
	Position  [2]float64 `json:"position"`
}

// rawRecord keeps pointers so missing fields can be told apart from zero values
type rawRecord struct {
	Path      *string    `json:"path"`
	SizeIndex *int       `json:"size_index"`
	Position  *[]float64 `json:"position"`
}

// EncodeState writes records as a JSON array, in order
func EncodeState(w io.Writer, records []FrameRecord) error {
	if records == nil {
		records = []FrameRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// DecodeState parses and validates a JSON layout. Every record must carry a
// string path, an in-range integer size_index and a two-element numeric position.
func DecodeState(data []byte) ([]FrameRecord, error) {
	var raw []rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("malformed layout: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("malformed layout: not an array")
	}

	records := make([]FrameRecord, 0, len(raw))
	for i, r := range raw {
		switch {
		case r.Path == nil:
			return nil, fmt.Errorf("record %d: missing path", i)
		case r.SizeIndex == nil:
			return nil, fmt.Errorf("record %d: missing size_index", i)
		case r.Position == nil:
			return nil, fmt.Errorf("record %d: missing position", i)
		case len(*r.Position) != 2:
			return nil, fmt.Errorf("record %d: position has %d elements, want 2", i, len(*r.Position))
		}
		if _, err := SizeClassFromIndex(*r.SizeIndex); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}

		pos := *r.Position
		records = append(records, FrameRecord{
			Path:      *r.Path,
			SizeIndex: *r.SizeIndex,
			Position:  [2]float64{pos[0], pos[1]},
		})
	}

	return records, nil
}
