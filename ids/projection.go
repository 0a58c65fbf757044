package ids

import (
	"fmt"
	"iter"
)

// Kind is the explicit discriminant of a member in a shared id space.
type Kind string

// Tagged is a member that declares its kind.
type Tagged[R Raw] interface {
	comparable
	ID() *ID[R]
	MemberKind() Kind
}

// ProjectedMap is a type-homogeneous view over a Map that holds a union of
// member kinds sharing one id space. C is the union (usually an interface),
// P the concrete member type of this projection. Dispatch uses the member's
// declared kind, never its runtime type.
type ProjectedMap[R Raw, C Tagged[R], P Tagged[R]] struct {
	kind   Kind
	parent *Map[R, C]
	n      int
}

// NewProjectedMap creates a projection of kind over parent.
func NewProjectedMap[R Raw, C Tagged[R], P Tagged[R]](parent *Map[R, C], kind Kind) *ProjectedMap[R, C, P] {
	return &ProjectedMap[R, C, P]{kind: kind, parent: parent}
}

// Kind returns the projected member kind.
func (p *ProjectedMap[R, C, P]) Kind() Kind { return p.kind }

// Parent returns the shared backing map.
func (p *ProjectedMap[R, C, P]) Parent() *Map[R, C] { return p.parent }

// Len returns the number of members of this kind added through the
// projection, independent of the parent's total size.
func (p *ProjectedMap[R, C, P]) Len() int { return p.n }

func (p *ProjectedMap[R, C, P]) where() string {
	return fmt.Sprintf("%s[%s]", p.parent.store.where(), p.kind)
}

func (p *ProjectedMap[R, C, P]) widen(op string, member P) (C, error) {
	var zero C
	if member.MemberKind() != p.kind {
		return zero, violation(op, p.where(), member.ID(), ErrWrongKind)
	}
	c, ok := any(member).(C)
	if !ok {
		return zero, violation(op, p.where(), member.ID(), ErrWrongKind)
	}
	return c, nil
}

func (p *ProjectedMap[R, C, P]) narrow(c C) (P, bool) {
	var zero P
	if c.MemberKind() != p.kind {
		return zero, false
	}
	m, ok := any(c).(P)
	return m, ok
}

func (p *ProjectedMap[R, C, P]) requireKind(op string, id *ID[R]) error {
	if id == nil {
		return violation[R](op, p.where(), nil, ErrNilID)
	}
	c, ok := p.parent.Get(id)
	if !ok {
		return violation(op, p.where(), id, ErrNotFound)
	}
	if c.MemberKind() != p.kind {
		return violation(op, p.where(), id, ErrWrongKind)
	}
	return nil
}

// Add stores member in the shared map.
func (p *ProjectedMap[R, C, P]) Add(member P) error {
	c, err := p.widen("add", member)
	if err != nil {
		return err
	}
	if err := p.parent.Add(c); err != nil {
		return err
	}
	p.n++
	return nil
}

// Update replaces a member of this kind.
func (p *ProjectedMap[R, C, P]) Update(member P) error {
	c, err := p.widen("update", member)
	if err != nil {
		return err
	}
	if err := p.requireKind("update", member.ID()); err != nil {
		return err
	}
	return p.parent.Update(c)
}

// Delete removes a member of this kind.
func (p *ProjectedMap[R, C, P]) Delete(id *ID[R]) error {
	if err := p.requireKind("delete", id); err != nil {
		return err
	}
	if err := p.parent.Delete(id); err != nil {
		return err
	}
	p.n--
	return nil
}

// Get returns the member under id if it is of this kind.
func (p *ProjectedMap[R, C, P]) Get(id *ID[R]) (P, bool) {
	var zero P
	c, ok := p.parent.Get(id)
	if !ok {
		return zero, false
	}
	return p.narrow(c)
}

// Has reports whether a member of this kind lives under id.
func (p *ProjectedMap[R, C, P]) Has(id *ID[R]) bool {
	_, ok := p.Get(id)
	return ok
}

// GetByRaw looks a member of this kind up by raw id.
func (p *ProjectedMap[R, C, P]) GetByRaw(raw R) (P, bool) {
	var zero P
	c, ok := p.parent.GetByRaw(raw)
	if !ok {
		return zero, false
	}
	return p.narrow(c)
}

// Rename rebinds the id of a member of this kind.
func (p *ProjectedMap[R, C, P]) Rename(id *ID[R], newRaw R) (bool, error) {
	if err := p.requireKind("rename", id); err != nil {
		return false, err
	}
	return p.parent.Rename(id, newRaw)
}

// All yields the members of this kind in the parent's iteration order.
func (p *ProjectedMap[R, C, P]) All() iter.Seq2[*ID[R], P] {
	return func(yield func(*ID[R], P) bool) {
		for id, c := range p.parent.All() {
			m, ok := p.narrow(c)
			if ok && !yield(id, m) {
				return
			}
		}
	}
}

// Values yields the members of this kind.
func (p *ProjectedMap[R, C, P]) Values() iter.Seq[P] {
	return func(yield func(P) bool) {
		for _, m := range p.All() {
			if !yield(m) {
				return
			}
		}
	}
}
