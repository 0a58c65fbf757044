package ids

import (
	"fmt"
	"iter"
)

// Scope is an ownership token. Each OwnedMap has one.
type Scope struct {
	name string
}

func (s *Scope) String() string { return s.name }

// ScopeRegistry records which scope owns each id of one id space. All
// OwnedMaps over the same Map share one registry, so the exclusivity check
// lives here rather than on the id.
type ScopeRegistry[R Raw] struct {
	owners map[*ID[R]]*Scope
}

// NewScopeRegistry creates an empty registry.
func NewScopeRegistry[R Raw]() *ScopeRegistry[R] {
	return &ScopeRegistry[R]{owners: make(map[*ID[R]]*Scope)}
}

// Owner returns the scope that currently owns id.
func (r *ScopeRegistry[R]) Owner(id *ID[R]) (*Scope, bool) {
	s, ok := r.owners[id]
	return s, ok
}

// OwnedMap is a view over a shared Map in which every id is owned by at
// most one scope. A Location id, for instance, belongs to exactly one
// Component while the project-wide map still enforces global uniqueness.
type OwnedMap[R Raw, C Member[R]] struct {
	scope    *Scope
	registry *ScopeRegistry[R]
	parent   *Map[R, C]
	n        int
}

// NewOwnedMap creates a scope named name over parent.
func NewOwnedMap[R Raw, C Member[R]](parent *Map[R, C], registry *ScopeRegistry[R], name string) *OwnedMap[R, C] {
	return &OwnedMap[R, C]{
		scope:    &Scope{name: name},
		registry: registry,
		parent:   parent,
	}
}

// Scope returns the ownership token of this view.
func (o *OwnedMap[R, C]) Scope() *Scope { return o.scope }

// Parent returns the shared backing map.
func (o *OwnedMap[R, C]) Parent() *Map[R, C] { return o.parent }

// Len returns the number of members owned by this scope.
func (o *OwnedMap[R, C]) Len() int { return o.n }

// SetName renames the scope token, e.g. after the owning component is renamed.
func (o *OwnedMap[R, C]) SetName(name string) { o.scope.name = name }

func (o *OwnedMap[R, C]) where() string {
	return fmt.Sprintf("%s/%s", o.parent.store.where(), o.scope.name)
}

func (o *OwnedMap[R, C]) owns(id *ID[R]) bool {
	s, ok := o.registry.owners[id]
	return ok && s == o.scope
}

func (o *OwnedMap[R, C]) requireOwned(op string, id *ID[R]) error {
	if id == nil {
		return violation[R](op, o.where(), nil, ErrNilID)
	}
	if !o.owns(id) {
		o.parent.log.Warn("access from wrong scope", "op", op, "raw", id.parsed.Raw, "scope", o.scope.name)
		return violation(op, o.where(), id, ErrWrongScope)
	}
	return nil
}

// Add stores member and claims its id for this scope. It fails if another
// scope owns the id.
func (o *OwnedMap[R, C]) Add(member C) error {
	id := member.ID()
	if id == nil {
		return violation[R]("add", o.where(), nil, ErrNilID)
	}
	if owner, ok := o.registry.owners[id]; ok && owner != o.scope {
		o.parent.log.Warn("id already owned", "raw", id.parsed.Raw, "owner", owner.name, "scope", o.scope.name)
		return violation("add", o.where(), id, fmt.Errorf("%w (%s)", ErrWrongScope, owner.name))
	}
	if err := o.parent.Add(member); err != nil {
		return err
	}
	o.registry.owners[id] = o.scope
	o.n++
	return nil
}

// Update replaces an owned member.
func (o *OwnedMap[R, C]) Update(member C) error {
	if err := o.requireOwned("update", member.ID()); err != nil {
		return err
	}
	return o.parent.Update(member)
}

// Delete removes an owned member and gives up ownership of its id.
func (o *OwnedMap[R, C]) Delete(id *ID[R]) error {
	if err := o.requireOwned("delete", id); err != nil {
		return err
	}
	if err := o.parent.Delete(id); err != nil {
		return err
	}
	delete(o.registry.owners, id)
	o.n--
	return nil
}

// Release deletes an owned member and frees its raw id for reuse.
func (o *OwnedMap[R, C]) Release(id *ID[R]) error {
	if err := o.Delete(id); err != nil {
		return err
	}
	return o.parent.store.Delete(id)
}

// Get returns the member under id if this scope owns it.
func (o *OwnedMap[R, C]) Get(id *ID[R]) (C, bool) {
	var zero C
	if id == nil || !o.owns(id) {
		return zero, false
	}
	return o.parent.Get(id)
}

// Has reports whether this scope owns a live member under id.
func (o *OwnedMap[R, C]) Has(id *ID[R]) bool {
	_, ok := o.Get(id)
	return ok
}

// GetByRaw looks a member up by raw id within this scope.
func (o *OwnedMap[R, C]) GetByRaw(raw R) (C, bool) {
	var zero C
	id, ok := o.parent.store.Get(raw)
	if !ok {
		return zero, false
	}
	return o.Get(id)
}

// Rename rebinds an owned id. Ownership follows the id object.
func (o *OwnedMap[R, C]) Rename(id *ID[R], newRaw R) (bool, error) {
	if err := o.requireOwned("rename", id); err != nil {
		return false, err
	}
	return o.parent.Rename(id, newRaw)
}

// All yields the owned members in the parent's iteration order.
func (o *OwnedMap[R, C]) All() iter.Seq2[*ID[R], C] {
	return func(yield func(*ID[R], C) bool) {
		for id, c := range o.parent.All() {
			if o.owns(id) && !yield(id, c) {
				return
			}
		}
	}
}

// Values yields the owned members.
func (o *OwnedMap[R, C]) Values() iter.Seq[C] {
	return func(yield func(C) bool) {
		for _, c := range o.All() {
			if !yield(c) {
				return
			}
		}
	}
}
