package model

import (
	"fmt"
	"slices"

	"github.com/arthur-debert/tamodel/ids"
	"github.com/arthur-debert/tamodel/types"
)

// Member kinds of a system.
const (
	KindInstance ids.Kind = "componentInstance"
	KindOperator ids.Kind = "operator"
)

// SystemMember is a node of a system tree: a *ComponentInstance or an
// *Operator. Both share one id space per system; MemberKind tells them
// apart.
type SystemMember interface {
	ID() *ids.ID[int]
	MemberKind() ids.Kind
}

// ComponentInstance places a component in a system.
type ComponentInstance struct {
	id        *ids.ID[int]
	Component *Component
	X, Y      float64
}

func (i *ComponentInstance) ID() *ids.ID[int]     { return i.id }
func (i *ComponentInstance) MemberKind() ids.Kind { return KindInstance }

// Operator combines its children.
type Operator struct {
	id   *ids.ID[int]
	Type OperatorType
	X, Y float64
}

func (o *Operator) ID() *ids.ID[int]     { return o.id }
func (o *Operator) MemberKind() ids.Kind { return KindOperator }

// SystemEdge links Child to Parent. Parent is SystemRoot for the top of the
// tree.
type SystemEdge struct {
	Parent int
	Child  int
}

// link is a tree edge held by member id, so renaming a member through any
// view of the member map carries its edges along. A nil parent is the root.
type link struct {
	parent *ids.ID[int]
	child  *ids.ID[int]
}

func rawOf(id *ids.ID[int]) int {
	if id == nil {
		return SystemRoot
	}
	return id.Raw()
}

func (l link) edge() SystemEdge {
	return SystemEdge{Parent: rawOf(l.parent), Child: rawOf(l.child)}
}

// System is a composition of component instances under a tree of operators.
type System struct {
	id      *ids.ID[string]
	project *Project

	Description   string
	X, Y          float64
	Width, Height float64
	Color         string
	SystemRootX   float64

	members   *ids.Map[int, SystemMember]
	instances *ids.ProjectedMap[int, SystemMember, *ComponentInstance]
	operators *ids.ProjectedMap[int, SystemMember, *Operator]
	links     []link
}

func (p *Project) newSystem(id *ids.ID[string]) *System {
	members := ids.NewMap[int, SystemMember](ids.NewStore[int](SystemMemberFormat{}, ids.WithName("members"), ids.WithLogger(p.log)))
	return &System{
		id:        id,
		project:   p,
		members:   members,
		instances: ids.NewProjectedMap[int, SystemMember, *ComponentInstance](members, KindInstance),
		operators: ids.NewProjectedMap[int, SystemMember, *Operator](members, KindOperator),
	}
}

func (s *System) ID() *ids.ID[string] { return s.id }

// Name is the system's raw id.
func (s *System) Name() string { return s.id.Raw() }

func (s *System) Project() *Project { return s.project }

// Members returns the shared member map.
func (s *System) Members() *ids.Map[int, SystemMember] { return s.members }

// Instances returns the component instance projection.
func (s *System) Instances() *ids.ProjectedMap[int, SystemMember, *ComponentInstance] {
	return s.instances
}

// Operators returns the operator projection.
func (s *System) Operators() *ids.ProjectedMap[int, SystemMember, *Operator] { return s.operators }

// Edges returns the system tree edges, under current member ids, in
// insertion order.
func (s *System) Edges() []SystemEdge {
	out := make([]SystemEdge, 0, len(s.links))
	for _, l := range s.links {
		out = append(out, l.edge())
	}
	return out
}

// Member looks a member up by raw id.
func (s *System) Member(raw int) (SystemMember, bool) {
	return s.members.GetByRaw(raw)
}

// Parent returns the parent of child, if it is connected.
func (s *System) Parent(child int) (int, bool) {
	for _, l := range s.links {
		if rawOf(l.child) == child {
			return rawOf(l.parent), true
		}
	}
	return 0, false
}

// Children returns the members directly below parent.
func (s *System) Children(parent int) []int {
	var out []int
	for _, l := range s.links {
		if rawOf(l.parent) == parent {
			out = append(out, rawOf(l.child))
		}
	}
	return out
}

// AddInstance instantiates c at the next free member id.
func (s *System) AddInstance(c *Component) (*ComponentInstance, error) {
	if c == nil || !s.project.components.Has(c.id) {
		return nil, fmt.Errorf("%w: component is not part of project %q", ErrUnknownReference, s.project.Name())
	}
	id, err := s.members.Store().NewOrderedID()
	if err != nil {
		return nil, err
	}
	inst := &ComponentInstance{id: id, Component: c}
	if err := s.instances.Add(inst); err != nil {
		_ = s.members.Store().Delete(id)
		return nil, err
	}
	return inst, nil
}

// AddOperator adds an operator at the next free member id.
func (s *System) AddOperator(t OperatorType) (*Operator, error) {
	t, err := ParseOperatorType(string(t))
	if err != nil {
		return nil, err
	}
	id, err := s.members.Store().NewOrderedID()
	if err != nil {
		return nil, err
	}
	op := &Operator{id: id, Type: t}
	if err := s.operators.Add(op); err != nil {
		_ = s.members.Store().Delete(id)
		return nil, err
	}
	return op, nil
}

// Connect places child below parent. Every member has at most one parent,
// only operators and the root have children, and the tree stays acyclic.
func (s *System) Connect(parent, child int) error {
	if child == SystemRoot {
		return fmt.Errorf("%w: the root cannot be a child", ErrInvalidEdge)
	}
	c, ok := s.members.GetByRaw(child)
	if !ok {
		return fmt.Errorf("%w: member %d", ErrUnknownReference, child)
	}
	l := link{child: c.ID()}
	if parent != SystemRoot {
		m, ok := s.members.GetByRaw(parent)
		if !ok {
			return fmt.Errorf("%w: member %d", ErrUnknownReference, parent)
		}
		if m.MemberKind() != KindOperator {
			return fmt.Errorf("%w: %s %d cannot have children", ErrInvalidEdge, m.MemberKind(), parent)
		}
		l.parent = m.ID()
	}
	if p, ok := s.Parent(child); ok {
		return fmt.Errorf("%w: member %d already below %d", ErrInvalidEdge, child, p)
	}
	for at := parent; at != SystemRoot; {
		if at == child {
			return fmt.Errorf("%w: %d -> %d closes a cycle", ErrInvalidEdge, parent, child)
		}
		next, ok := s.Parent(at)
		if !ok {
			break
		}
		at = next
	}
	s.links = append(s.links, l)
	return nil
}

// Disconnect removes the edge parent -> child. It reports whether the edge
// existed.
func (s *System) Disconnect(parent, child int) bool {
	i := slices.IndexFunc(s.links, func(l link) bool {
		return l.edge() == SystemEdge{Parent: parent, Child: child}
	})
	if i < 0 {
		return false
	}
	s.links = slices.Delete(s.links, i, i+1)
	return true
}

// RemoveMember deletes m, drops every edge touching it and frees its id.
func (s *System) RemoveMember(m SystemMember) error {
	var err error
	switch m.MemberKind() {
	case KindInstance:
		err = s.instances.Delete(m.ID())
	case KindOperator:
		err = s.operators.Delete(m.ID())
	default:
		return fmt.Errorf("%w: member kind %q", ErrInvalidValue, m.MemberKind())
	}
	if err != nil {
		return err
	}
	id := m.ID()
	s.links = slices.DeleteFunc(s.links, func(l link) bool {
		return l.parent == id || l.child == id
	})
	return s.members.Store().Delete(m.ID())
}

func (s *System) load(raw types.RawSystem) error {
	store := s.members.Store()
	for _, ri := range raw.ComponentInstances {
		c, ok := s.project.Component(ri.ComponentName)
		if !ok {
			return fmt.Errorf("instance %d: %w: component %q", ri.ID, ErrUnknownReference, ri.ComponentName)
		}
		id, err := store.NewIDFromRaw(ri.ID)
		if err != nil {
			return idError("instance", ri.ID, err)
		}
		if err := s.instances.Add(&ComponentInstance{id: id, Component: c, X: ri.X, Y: ri.Y}); err != nil {
			return err
		}
	}
	for _, ro := range raw.Operators {
		t, err := ParseOperatorType(ro.Type)
		if err != nil {
			return fmt.Errorf("operator %d: %w", ro.ID, err)
		}
		id, err := store.NewIDFromRaw(ro.ID)
		if err != nil {
			return idError("operator", ro.ID, err)
		}
		if err := s.operators.Add(&Operator{id: id, Type: t, X: ro.X, Y: ro.Y}); err != nil {
			return err
		}
	}
	for _, re := range raw.Edges {
		if err := s.Connect(re.Parent, re.Child); err != nil {
			return fmt.Errorf("edge %d -> %d: %w", re.Parent, re.Child, err)
		}
	}
	return nil
}

// ToRaw returns the persisted form of the system. Instances and operators
// are listed by ascending id; operator types are written in lower case.
func (s *System) ToRaw() types.RawSystem {
	raw := types.RawSystem{
		Name:               s.id.ToRaw(),
		Description:        s.Description,
		X:                  s.X,
		Y:                  s.Y,
		Width:              s.Width,
		Height:             s.Height,
		Color:              s.Color,
		SystemRootX:        s.SystemRootX,
		ComponentInstances: []types.RawComponentInstance{},
		Operators:          []types.RawOperator{},
		Edges:              []types.RawSystemEdge{},
	}
	for inst := range s.instances.Values() {
		raw.ComponentInstances = append(raw.ComponentInstances, types.RawComponentInstance{
			ID:            inst.id.ToRaw(),
			ComponentName: inst.Component.Name(),
			X:             inst.X,
			Y:             inst.Y,
		})
	}
	for op := range s.operators.Values() {
		raw.Operators = append(raw.Operators, types.RawOperator{
			ID:   op.id.ToRaw(),
			Type: string(op.Type),
			X:    op.X,
			Y:    op.Y,
		})
	}
	for _, e := range s.Edges() {
		raw.Edges = append(raw.Edges, types.RawSystemEdge{Parent: e.Parent, Child: e.Child})
	}
	return raw
}
