package model

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/arthur-debert/tamodel/ids"
	"github.com/arthur-debert/tamodel/types"
)

// Project is one model file: its components, its systems, and the project
// wide id spaces for locations and edges.
//
// Location and edge ids are unique across the whole project. Each component
// owns its locations through a scope of the shared location map and sees its
// edges through a subset of the shared edge map.
type Project struct {
	id *ids.ID[string]

	GlobalDeclarations string
	SystemDeclarations string

	components *ids.Map[string, *Component]
	systems    *ids.Map[string, *System]
	locations  *ids.Map[string, *Location]
	scopes     *ids.ScopeRegistry[string]
	edges      *ids.Map[string, *LocationEdge]

	log *slog.Logger
}

func newProject(id *ids.ID[string], o options) *Project {
	return &Project{
		id:         id,
		components: ids.NewMap[string, *Component](ids.NewStore[string](ComponentFormat{}, o.store("components")...)),
		systems:    ids.NewMap[string, *System](ids.NewStore[string](SystemFormat(), o.store("systems")...)),
		locations:  ids.NewMap[string, *Location](ids.NewStore[string](LocationFormat{}, o.store("locations")...)),
		scopes:     ids.NewScopeRegistry[string](),
		edges:      ids.NewMap[string, *LocationEdge](ids.NewStore[string](EdgeFormat{}, o.store("edges")...)),
		log:        o.logger,
	}
}

func (p *Project) ID() *ids.ID[string] { return p.id }

// Name is the project's raw id.
func (p *Project) Name() string { return p.id.Raw() }

// Components returns the component map. Mutate it through the Project
// methods; adding a component directly bypasses its location scope.
func (p *Project) Components() *ids.Map[string, *Component] { return p.components }

// Systems returns the system map.
func (p *Project) Systems() *ids.Map[string, *System] { return p.systems }

// Locations returns the project wide location map.
func (p *Project) Locations() *ids.Map[string, *Location] { return p.locations }

// Edges returns the project wide edge map.
func (p *Project) Edges() *ids.Map[string, *LocationEdge] { return p.edges }

// Component looks a component up by name.
func (p *Project) Component(name string) (*Component, bool) {
	return p.components.GetByRaw(name)
}

// System looks a system up by name.
func (p *Project) System(name string) (*System, bool) {
	return p.systems.GetByRaw(name)
}

// LocationOwner returns the component that owns loc.
func (p *Project) LocationOwner(loc *Location) (*Component, bool) {
	for c := range p.components.Values() {
		if c.locations.Has(loc.id) {
			return c, true
		}
	}
	return nil, false
}

func (p *Project) load(raw *types.RawProject) error {
	p.GlobalDeclarations = raw.GlobalDeclarations
	p.SystemDeclarations = raw.SystemDeclarations
	for _, rc := range raw.Components {
		if _, err := p.LoadComponent(rc); err != nil {
			return err
		}
	}
	for _, rs := range raw.Systems {
		if _, err := p.LoadSystem(rs); err != nil {
			return err
		}
	}
	return nil
}

// LoadComponent builds a component from its persisted form and adds it to
// the project. On error the project is left unchanged.
func (p *Project) LoadComponent(raw types.RawComponent) (*Component, error) {
	store := p.components.Store()
	id, err := store.NewIDFromRaw(raw.Name)
	if err != nil {
		return nil, idError("component", raw.Name, err)
	}
	c := p.newComponent(id)
	c.Declarations = raw.Declarations
	c.Description = raw.Description
	c.X, c.Y = raw.X, raw.Y
	c.Width, c.Height = raw.Width, raw.Height
	c.Color = raw.Color
	c.IncludeInPeriodicCheck = raw.IncludeInPeriodicCheck

	if err := c.load(raw); err != nil {
		c.discard()
		_ = store.Delete(id)
		return nil, fmt.Errorf("component %q: %w", raw.Name, err)
	}
	if err := p.components.Add(c); err != nil {
		c.discard()
		_ = store.Delete(id)
		return nil, err
	}
	p.log.Debug("component loaded", "component", raw.Name, "locations", c.locations.Len(), "edges", c.edges.Len())
	return c, nil
}

// NewComponent adds an empty component named "Component <n>" for the lowest
// free n. It starts with a single initial location.
func (p *Project) NewComponent() (*Component, error) {
	store := p.components.Store()
	for n := 1; n <= store.Len()+1; n++ {
		id, err := store.NewIDFromRaw(fmt.Sprintf("Component %d", n))
		if errors.Is(err, ids.ErrIDTaken) {
			continue
		}
		if err != nil {
			return nil, err
		}
		c := p.newComponent(id)
		if err := p.components.Add(c); err != nil {
			_ = store.Delete(id)
			return nil, err
		}
		if _, err := c.NewLocation(); err != nil {
			_ = p.components.Release(id)
			return nil, err
		}
		return c, nil
	}
	return nil, fmt.Errorf("no free component name")
}

// RenameComponent renames c. It reports false when name is taken. Instances
// refer to the component itself, so they follow the new name.
func (p *Project) RenameComponent(c *Component, name string) (bool, error) {
	ok, err := p.components.Rename(c.id, name)
	if err != nil || !ok {
		return ok, err
	}
	c.locations.SetName(name)
	c.edges.SetName(name)
	return true, nil
}

// DeleteComponent removes c with its locations and edges and frees its
// name. It fails with ErrComponentInUse while a system instantiates c.
func (p *Project) DeleteComponent(c *Component) error {
	if !p.components.Has(c.id) {
		return fmt.Errorf("%w: component %q", ErrUnknownReference, c.Name())
	}
	for s := range p.systems.Values() {
		for inst := range s.instances.Values() {
			if inst.Component == c {
				return fmt.Errorf("%w: %q is instantiated in %q", ErrComponentInUse, c.Name(), s.Name())
			}
		}
	}
	c.discard()
	return p.components.Release(c.id)
}

// LoadSystem builds a system from its persisted form. Components referenced
// by instances must already be loaded.
func (p *Project) LoadSystem(raw types.RawSystem) (*System, error) {
	store := p.systems.Store()
	id, err := store.NewIDFromRaw(raw.Name)
	if err != nil {
		return nil, idError("system", raw.Name, err)
	}
	s := p.newSystem(id)
	s.Description = raw.Description
	s.X, s.Y = raw.X, raw.Y
	s.Width, s.Height = raw.Width, raw.Height
	s.Color = raw.Color
	s.SystemRootX = raw.SystemRootX

	if err := s.load(raw); err != nil {
		_ = store.Delete(id)
		return nil, fmt.Errorf("system %q: %w", raw.Name, err)
	}
	if err := p.systems.Add(s); err != nil {
		_ = store.Delete(id)
		return nil, err
	}
	return s, nil
}

// NewSystem adds an empty system at the next free "System <n>".
func (p *Project) NewSystem() (*System, error) {
	id, err := p.systems.Store().NewOrderedID()
	if err != nil {
		return nil, err
	}
	s := p.newSystem(id)
	if err := p.systems.Add(s); err != nil {
		_ = p.systems.Store().Delete(id)
		return nil, err
	}
	return s, nil
}

// RenameSystem renames s. It reports false when name is taken.
func (p *Project) RenameSystem(s *System, name string) (bool, error) {
	return p.systems.Rename(s.id, name)
}

// DeleteSystem removes s and frees its name.
func (p *Project) DeleteSystem(s *System) error {
	return p.systems.Release(s.id)
}

// ToRaw returns the persisted form of the project.
func (p *Project) ToRaw() *types.RawProject {
	raw := &types.RawProject{
		Name:               p.id.ToRaw(),
		GlobalDeclarations: p.GlobalDeclarations,
		SystemDeclarations: p.SystemDeclarations,
		Components:         []types.RawComponent{},
		Systems:            []types.RawSystem{},
	}
	for c := range p.components.Values() {
		raw.Components = append(raw.Components, c.ToRaw())
	}
	for s := range p.systems.Values() {
		raw.Systems = append(raw.Systems, s.ToRaw())
	}
	return raw
}
