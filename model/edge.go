package model

import (
	"github.com/arthur-debert/tamodel/ids"
	"github.com/arthur-debert/tamodel/types"
)

// Nail is a bend point of an edge. A nail with a property other than
// PropertyNone anchors that label at PropertyX/PropertyY, relative to the
// nail.
type Nail struct {
	X, Y      float64
	Property  PropertyType
	PropertyX float64
	PropertyY float64
}

// LocationEdge is a transition between two locations of one component.
type LocationEdge struct {
	id *ids.ID[string]

	Group    string
	Source   *Location
	Target   *Location
	Status   EdgeStatus
	Select   string
	Guard    string
	Update   string
	Sync     string
	IsLocked bool
	Nails    []Nail
}

func (e *LocationEdge) ID() *ids.ID[string] { return e.id }

// Touches reports whether loc is either end of the edge.
func (e *LocationEdge) Touches(loc *Location) bool {
	return e.Source == loc || e.Target == loc
}

func (e *LocationEdge) ToRaw() types.RawEdge {
	nails := make([]types.RawNail, 0, len(e.Nails))
	for _, n := range e.Nails {
		nails = append(nails, types.RawNail{
			X:            n.X,
			Y:            n.Y,
			PropertyType: string(n.Property),
			PropertyX:    n.PropertyX,
			PropertyY:    n.PropertyY,
		})
	}
	return types.RawEdge{
		ID:             e.id.ToRaw(),
		Group:          e.Group,
		SourceLocation: e.Source.id.ToRaw(),
		TargetLocation: e.Target.id.ToRaw(),
		Status:         string(e.Status),
		Select:         e.Select,
		Guard:          e.Guard,
		Update:         e.Update,
		Sync:           e.Sync,
		IsLocked:       e.IsLocked,
		Nails:          nails,
	}
}

func edgeFromRaw(raw types.RawEdge, source, target *Location) (*LocationEdge, error) {
	status, err := parseEnum("edge status", raw.Status, edgeStatuses)
	if err != nil {
		return nil, err
	}
	var nails []Nail
	for _, rn := range raw.Nails {
		property, err := parseEnum("property type", rn.PropertyType, propertyTypes)
		if err != nil {
			return nil, err
		}
		nails = append(nails, Nail{
			X:         rn.X,
			Y:         rn.Y,
			Property:  property,
			PropertyX: rn.PropertyX,
			PropertyY: rn.PropertyY,
		})
	}
	return &LocationEdge{
		Group:    raw.Group,
		Source:   source,
		Target:   target,
		Status:   status,
		Select:   raw.Select,
		Guard:    raw.Guard,
		Update:   raw.Update,
		Sync:     raw.Sync,
		IsLocked: raw.IsLocked,
		Nails:    nails,
	}, nil
}
