package treecodec

import (
	"encoding/json"
	"fmt"

	"snowglobe/internal/state"
)

// LegacyVersion is the version tag of the long-form format.
const LegacyVersion = 1

// LegacyOrnament is the version 1 form of an ornament: full field names,
// vectors as objects, the click point kept.
type LegacyOrnament struct {
	ID         string             `json:"id"`
	Type       state.OrnamentType `json:"type"`
	Position   state.Vector3      `json:"position"`
	Normal     state.Vector3      `json:"normal"`
	ClickPoint state.Vector3      `json:"clickPoint"`
	Color      string             `json:"color"`
	Color2     string             `json:"color2,omitempty"`
}

// LegacyState is the version 1 document.
type LegacyState struct {
	Version   int              `json:"version"`
	Points    []state.Point    `json:"points"`
	Ornaments []LegacyOrnament `json:"ornaments"`
}

// SerializeLegacy builds a version 1 document. Nothing is rounded or
// shortened.
func SerializeLegacy(points []state.Point, ornaments []state.Ornament) LegacyState {
	out := LegacyState{
		Version:   LegacyVersion,
		Points:    append(make([]state.Point, 0, len(points)), points...),
		Ornaments: make([]LegacyOrnament, 0, len(ornaments)),
	}
	for _, o := range ornaments {
		out.Ornaments = append(out.Ornaments, LegacyOrnament{
			ID:         o.ID,
			Type:       o.Type,
			Position:   state.VectorFromArray(o.Position),
			Normal:     o.Normal,
			ClickPoint: o.ClickPoint,
			Color:      o.Color,
			Color2:     o.Color2,
		})
	}
	return out
}

// SerializeLegacyJSON returns the version 1 document as JSON text.
func SerializeLegacyJSON(points []state.Point, ornaments []state.Ornament) ([]byte, error) {
	return json.Marshal(SerializeLegacy(points, ornaments))
}

// DeserializeLegacy expands a version 1 document exactly.
func DeserializeLegacy(s LegacyState) (Tree, error) {
	if s.Version != LegacyVersion {
		return Tree{}, fmt.Errorf("%w: version=%d", ErrUnsupportedVersion, s.Version)
	}
	t := Tree{
		Points:    append(make([]state.Point, 0, len(s.Points)), s.Points...),
		Ornaments: make([]state.Ornament, 0, len(s.Ornaments)),
	}
	for _, o := range s.Ornaments {
		t.Ornaments = append(t.Ornaments, state.Ornament{
			ID:         o.ID,
			Type:       o.Type,
			Position:   o.Position.Array(),
			Normal:     o.Normal,
			ClickPoint: o.ClickPoint,
			Color:      o.Color,
			Color2:     o.Color2,
		})
	}
	return t, nil
}
