package treecodec

import (
	"encoding/json"
	"fmt"

	"snowglobe/internal/state"
)

// The wire structs mirror the public documents with pointer fields so that
// absent keys can be told apart from zero values.

type versionProbe struct {
	V       *int `json:"v"`
	Version *int `json:"version"`
}

type compactWire struct {
	V   int                    `json:"v"`
	Pts *[]Triple              `json:"pts"`
	Orn *[]compactOrnamentWire `json:"orn"`
}

type compactOrnamentWire struct {
	I  *string             `json:"i"`
	T  *state.OrnamentType `json:"t"`
	P  *Triple             `json:"p"`
	N  *Triple             `json:"n"`
	C  *string             `json:"c"`
	C2 string              `json:"c2"`
}

type legacyWire struct {
	Version   int                   `json:"version"`
	Points    *[]state.Point        `json:"points"`
	Ornaments *[]legacyOrnamentWire `json:"ornaments"`
}

type legacyOrnamentWire struct {
	ID         *string             `json:"id"`
	Type       *state.OrnamentType `json:"type"`
	Position   *state.Vector3      `json:"position"`
	Normal     *state.Vector3      `json:"normal"`
	ClickPoint *state.Vector3      `json:"clickPoint"`
	Color      *string             `json:"color"`
	Color2     string              `json:"color2"`
}

// DetectVersion reports the version tag of a JSON document without decoding the
// rest of it.
func DetectVersion(data []byte) (int, error) {
	var probe versionProbe
	if err := json.Unmarshal(data, &probe); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	switch {
	case probe.V != nil:
		return *probe.V, nil
	case probe.Version != nil:
		return *probe.Version, nil
	}
	return 0, fmt.Errorf("%w: no version tag", ErrInvalidFormat)
}

// DecodeCompact parses and checks a version 2 JSON document.
func DecodeCompact(data []byte) (CompactState, error) {
	var w compactWire
	if err := json.Unmarshal(data, &w); err != nil {
		return CompactState{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if w.V != Version {
		return CompactState{}, fmt.Errorf("%w: v=%d", ErrUnsupportedVersion, w.V)
	}
	if w.Pts == nil {
		return CompactState{}, fmt.Errorf("%w: missing pts", ErrInvalidFormat)
	}
	if w.Orn == nil {
		return CompactState{}, fmt.Errorf("%w: missing orn", ErrInvalidFormat)
	}

	s := CompactState{V: w.V, Pts: *w.Pts, Orn: make([]CompactOrnament, 0, len(*w.Orn))}
	for i, o := range *w.Orn {
		if o.I == nil || o.T == nil || o.P == nil || o.N == nil || o.C == nil {
			return CompactState{}, fmt.Errorf("%w: orn[%d] is missing a field", ErrInvalidFormat, i)
		}
		s.Orn = append(s.Orn, CompactOrnament{I: *o.I, T: *o.T, P: *o.P, N: *o.N, C: *o.C, C2: o.C2})
	}
	return s, nil
}

// DecodeLegacy parses and checks a version 1 JSON document.
func DecodeLegacy(data []byte) (LegacyState, error) {
	var w legacyWire
	if err := json.Unmarshal(data, &w); err != nil {
		return LegacyState{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if w.Version != LegacyVersion {
		return LegacyState{}, fmt.Errorf("%w: version=%d", ErrUnsupportedVersion, w.Version)
	}
	if w.Points == nil {
		return LegacyState{}, fmt.Errorf("%w: missing points", ErrInvalidFormat)
	}
	if w.Ornaments == nil {
		return LegacyState{}, fmt.Errorf("%w: missing ornaments", ErrInvalidFormat)
	}

	s := LegacyState{Version: w.Version, Points: *w.Points, Ornaments: make([]LegacyOrnament, 0, len(*w.Ornaments))}
	for i, o := range *w.Ornaments {
		if o.ID == nil || o.Type == nil || o.Position == nil || o.Normal == nil || o.ClickPoint == nil || o.Color == nil {
			return LegacyState{}, fmt.Errorf("%w: ornaments[%d] is missing a field", ErrInvalidFormat, i)
		}
		s.Ornaments = append(s.Ornaments, LegacyOrnament{
			ID:         *o.ID,
			Type:       *o.Type,
			Position:   *o.Position,
			Normal:     *o.Normal,
			ClickPoint: *o.ClickPoint,
			Color:      *o.Color,
			Color2:     o.Color2,
		})
	}
	return s, nil
}

// DeserializeJSON reads either format, choosing by the version tag.
func DeserializeJSON(data []byte) (Tree, error) {
	v, err := DetectVersion(data)
	if err != nil {
		return Tree{}, err
	}
	switch v {
	case Version:
		s, err := DecodeCompact(data)
		if err != nil {
			return Tree{}, err
		}
		return Deserialize(s)
	case LegacyVersion:
		s, err := DecodeLegacy(data)
		if err != nil {
			return Tree{}, err
		}
		return DeserializeLegacy(s)
	}
	return Tree{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
}

// Upgrade returns the compact form of a document in either format. Version 2
// input is returned as parsed, so its short ids survive; version 1 input is
// serialized with c.
func (c *Codec) Upgrade(data []byte) (CompactState, error) {
	v, err := DetectVersion(data)
	if err != nil {
		return CompactState{}, err
	}
	switch v {
	case Version:
		return DecodeCompact(data)
	case LegacyVersion:
		s, err := DecodeLegacy(data)
		if err != nil {
			return CompactState{}, err
		}
		t, err := DeserializeLegacy(s)
		if err != nil {
			return CompactState{}, err
		}
		return c.Serialize(t.Points, t.Ornaments), nil
	}
	return CompactState{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
}

// Upgrade calls Upgrade on the default Codec.
func Upgrade(data []byte) (CompactState, error) {
	return std.Upgrade(data)
}
