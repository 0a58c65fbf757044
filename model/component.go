package model

import (
	"fmt"
	"slices"

	"github.com/arthur-debert/tamodel/ids"
	"github.com/arthur-debert/tamodel/types"
)

// Component is a timed automaton of a project.
type Component struct {
	id      *ids.ID[string]
	project *Project

	Declarations           string
	Description            string
	X, Y                   float64
	Width, Height          float64
	Color                  string
	IncludeInPeriodicCheck bool

	locations *ids.OwnedMap[string, *Location]
	edges     *ids.SubsetMap[string, *LocationEdge]
}

func (p *Project) newComponent(id *ids.ID[string]) *Component {
	return &Component{
		id:        id,
		project:   p,
		locations: ids.NewOwnedMap(p.locations, p.scopes, id.Raw()),
		edges:     ids.NewSubsetMap(p.edges, id.Raw()),
	}
}

func (c *Component) ID() *ids.ID[string] { return c.id }

// Name is the component's raw id.
func (c *Component) Name() string { return c.id.Raw() }

func (c *Component) Project() *Project { return c.project }

// Locations returns the locations owned by the component.
func (c *Component) Locations() *ids.OwnedMap[string, *Location] { return c.locations }

// Edges returns the edges of the component.
func (c *Component) Edges() *ids.SubsetMap[string, *LocationEdge] { return c.edges }

// Location looks up one of the component's locations by raw id.
func (c *Component) Location(raw string) (*Location, bool) {
	return c.locations.GetByRaw(raw)
}

// Edge looks up one of the component's edges by raw id.
func (c *Component) Edge(raw string) (*LocationEdge, bool) {
	return c.edges.GetByRaw(raw)
}

// InitialLocation returns the first location typed INITIAL.
func (c *Component) InitialLocation() (*Location, bool) {
	for loc := range c.locations.Values() {
		if loc.Type == LocationInitial {
			return loc, true
		}
	}
	return nil, false
}

// NewLocation adds a location at the next free "L<n>" of the project. The
// first location of a component is its initial location.
func (c *Component) NewLocation() (*Location, error) {
	store := c.project.locations.Store()
	id, err := store.NewOrderedID()
	if err != nil {
		return nil, err
	}
	loc := &Location{
		id:      id,
		Type:    LocationNormal,
		Urgency: UrgencyNormal,
		Color:   c.Color,
	}
	if c.locations.Len() == 0 {
		loc.Type = LocationInitial
	}
	if err := c.locations.Add(loc); err != nil {
		_ = store.Delete(id)
		return nil, err
	}
	return loc, nil
}

// RenameLocation gives loc a new raw id. It reports false when the id, or
// its order under another prefix, is taken anywhere in the project.
func (c *Component) RenameLocation(loc *Location, raw string) (bool, error) {
	return c.locations.Rename(loc.id, raw)
}

// DeleteLocation removes loc together with every edge that starts or ends
// in it, and frees their ids.
func (c *Component) DeleteLocation(loc *Location) error {
	if !c.locations.Has(loc.id) {
		return fmt.Errorf("%w: location %v in component %q", ErrUnknownReference, loc.id, c.Name())
	}
	var incident []*LocationEdge
	for e := range c.edges.Values() {
		if e.Touches(loc) {
			incident = append(incident, e)
		}
	}
	for _, e := range incident {
		if err := c.DeleteEdge(e); err != nil {
			return err
		}
	}
	return c.locations.Release(loc.id)
}

// NewEdge adds an edge between two locations of the component at the next
// free "E<n>" of the project.
func (c *Component) NewEdge(source, target *Location, status EdgeStatus) (*LocationEdge, error) {
	for _, loc := range []*Location{source, target} {
		if loc == nil || !c.locations.Has(loc.id) {
			return nil, fmt.Errorf("%w: edge end is not a location of %q", ErrUnknownReference, c.Name())
		}
	}
	if _, err := parseEnum("edge status", string(status), edgeStatuses); err != nil {
		return nil, err
	}
	store := c.project.edges.Store()
	id, err := store.NewOrderedID()
	if err != nil {
		return nil, err
	}
	e := &LocationEdge{id: id, Source: source, Target: target, Status: status}
	if err := c.edges.Add(e); err != nil {
		_ = store.Delete(id)
		return nil, err
	}
	return e, nil
}

// RenameEdge gives e a new raw id. It reports false when the id is taken.
func (c *Component) RenameEdge(e *LocationEdge, raw string) (bool, error) {
	return c.edges.Rename(e.id, raw)
}

// DeleteEdge removes e and frees its id.
func (c *Component) DeleteEdge(e *LocationEdge) error {
	if err := c.edges.Delete(e.id); err != nil {
		return err
	}
	return c.project.edges.Store().Delete(e.id)
}

func (c *Component) load(raw types.RawComponent) error {
	locStore := c.project.locations.Store()
	for _, rl := range raw.Locations {
		loc, err := locationFromRaw(rl)
		if err != nil {
			return fmt.Errorf("location %s: %w", rl.ID, err)
		}
		id, err := locStore.NewIDFromRaw(rl.ID)
		if err != nil {
			return idError("location", rl.ID, err)
		}
		loc.id = id
		if err := c.locations.Add(loc); err != nil {
			_ = locStore.Delete(id)
			return err
		}
	}

	edgeStore := c.project.edges.Store()
	for _, re := range raw.Edges {
		source, ok := c.locations.GetByRaw(re.SourceLocation)
		if !ok {
			return fmt.Errorf("edge %s: %w: source location %q", re.ID, ErrUnknownReference, re.SourceLocation)
		}
		target, ok := c.locations.GetByRaw(re.TargetLocation)
		if !ok {
			return fmt.Errorf("edge %s: %w: target location %q", re.ID, ErrUnknownReference, re.TargetLocation)
		}
		e, err := edgeFromRaw(re, source, target)
		if err != nil {
			return fmt.Errorf("edge %s: %w", re.ID, err)
		}
		id, err := edgeStore.NewIDFromRaw(re.ID)
		if err != nil {
			return idError("edge", re.ID, err)
		}
		e.id = id
		if err := c.edges.Add(e); err != nil {
			_ = edgeStore.Delete(id)
			return err
		}
	}
	return nil
}

// discard drops every edge and location of c and frees their ids.
func (c *Component) discard() {
	for _, e := range slices.Collect(c.edges.Values()) {
		_ = c.DeleteEdge(e)
	}
	for _, loc := range slices.Collect(c.locations.Values()) {
		_ = c.locations.Release(loc.id)
	}
}

// ToRaw returns the persisted form of the component.
func (c *Component) ToRaw() types.RawComponent {
	raw := types.RawComponent{
		Name:                   c.id.ToRaw(),
		Declarations:           c.Declarations,
		Locations:              []types.RawLocation{},
		Edges:                  []types.RawEdge{},
		Description:            c.Description,
		X:                      c.X,
		Y:                      c.Y,
		Width:                  c.Width,
		Height:                 c.Height,
		Color:                  c.Color,
		IncludeInPeriodicCheck: c.IncludeInPeriodicCheck,
	}
	for loc := range c.locations.Values() {
		raw.Locations = append(raw.Locations, loc.ToRaw())
	}
	for e := range c.edges.Values() {
		raw.Edges = append(raw.Edges, e.ToRaw())
	}
	return raw
}
