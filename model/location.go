package model

import (
	"github.com/arthur-debert/tamodel/ids"
	"github.com/arthur-debert/tamodel/types"
)

// Location is a state of a component automaton.
type Location struct {
	id *ids.ID[string]

	Nickname   string
	Invariant  string
	Type       LocationType
	Urgency    Urgency
	X, Y       float64
	Color      string
	NicknameX  float64
	NicknameY  float64
	InvariantX float64
	InvariantY float64
}

func (l *Location) ID() *ids.ID[string] { return l.id }

// Variant returns the subtype encoded in the id prefix. Opaque ids are
// normal.
func (l *Location) Variant() LocationVariant {
	if tag := l.id.Tag(); tag != "" {
		return LocationVariant(tag)
	}
	return VariantNormal
}

func (l *Location) ToRaw() types.RawLocation {
	return types.RawLocation{
		ID:         l.id.ToRaw(),
		Nickname:   l.Nickname,
		Invariant:  l.Invariant,
		Type:       string(l.Type),
		Urgency:    string(l.Urgency),
		X:          l.X,
		Y:          l.Y,
		Color:      l.Color,
		NicknameX:  l.NicknameX,
		NicknameY:  l.NicknameY,
		InvariantX: l.InvariantX,
		InvariantY: l.InvariantY,
	}
}

// locationFromRaw validates every field except the id, which the caller
// allocates once the rest is known to be good.
func locationFromRaw(raw types.RawLocation) (*Location, error) {
	typ, err := parseEnum("location type", raw.Type, locationTypes)
	if err != nil {
		return nil, err
	}
	urgency, err := parseEnum("urgency", raw.Urgency, urgencies)
	if err != nil {
		return nil, err
	}
	return &Location{
		Nickname:   raw.Nickname,
		Invariant:  raw.Invariant,
		Type:       typ,
		Urgency:    urgency,
		X:          raw.X,
		Y:          raw.Y,
		Color:      raw.Color,
		NicknameX:  raw.NicknameX,
		NicknameY:  raw.NicknameY,
		InvariantX: raw.InvariantX,
		InvariantY: raw.InvariantY,
	}, nil
}
