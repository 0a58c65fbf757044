package ids

import (
	"fmt"
	"iter"
)

// SubsetMap is a view that sees only the ids activated through it. The
// members themselves live in the shared parent map; an id known to the
// parent but never added here is invisible.
type SubsetMap[R Raw, C Member[R]] struct {
	name   string
	parent *Map[R, C]
	active map[*ID[R]]struct{}
}

// NewSubsetMap creates an empty subset over parent.
func NewSubsetMap[R Raw, C Member[R]](parent *Map[R, C], name string) *SubsetMap[R, C] {
	return &SubsetMap[R, C]{
		name:   name,
		parent: parent,
		active: make(map[*ID[R]]struct{}),
	}
}

// Parent returns the shared backing map.
func (s *SubsetMap[R, C]) Parent() *Map[R, C] { return s.parent }

// Len returns the number of active ids.
func (s *SubsetMap[R, C]) Len() int { return len(s.active) }

// SetName changes the name used in errors.
func (s *SubsetMap[R, C]) SetName(name string) { s.name = name }

func (s *SubsetMap[R, C]) where() string {
	return fmt.Sprintf("%s/%s", s.parent.store.where(), s.name)
}

func (s *SubsetMap[R, C]) isActive(id *ID[R]) bool {
	_, ok := s.active[id]
	return ok
}

func (s *SubsetMap[R, C]) requireActive(op string, id *ID[R]) error {
	if id == nil {
		return violation[R](op, s.where(), nil, ErrNilID)
	}
	if !s.isActive(id) {
		return violation(op, s.where(), id, ErrNotInSubset)
	}
	return nil
}

// Add stores member in the parent and activates its id here.
func (s *SubsetMap[R, C]) Add(member C) error {
	id := member.ID()
	if id == nil {
		return violation[R]("add", s.where(), nil, ErrNilID)
	}
	if s.isActive(id) {
		return violation("add", s.where(), id, ErrExists)
	}
	if err := s.parent.Add(member); err != nil {
		return err
	}
	s.active[id] = struct{}{}
	return nil
}

// Adopt activates an id whose member already lives in the parent.
func (s *SubsetMap[R, C]) Adopt(id *ID[R]) error {
	if id == nil {
		return violation[R]("adopt", s.where(), nil, ErrNilID)
	}
	if s.isActive(id) {
		return violation("adopt", s.where(), id, ErrExists)
	}
	if !s.parent.Has(id) {
		return violation("adopt", s.where(), id, ErrNotFound)
	}
	s.active[id] = struct{}{}
	return nil
}

// Update replaces an active member.
func (s *SubsetMap[R, C]) Update(member C) error {
	if err := s.requireActive("update", member.ID()); err != nil {
		return err
	}
	return s.parent.Update(member)
}

// Delete removes an active member from the parent and deactivates it.
func (s *SubsetMap[R, C]) Delete(id *ID[R]) error {
	if err := s.requireActive("delete", id); err != nil {
		return err
	}
	if err := s.parent.Delete(id); err != nil {
		return err
	}
	delete(s.active, id)
	return nil
}

// Get returns the member under id if it is active here and live in the parent.
func (s *SubsetMap[R, C]) Get(id *ID[R]) (C, bool) {
	var zero C
	if id == nil || !s.isActive(id) {
		return zero, false
	}
	return s.parent.Get(id)
}

// Has reports whether id is active here and live in the parent.
func (s *SubsetMap[R, C]) Has(id *ID[R]) bool {
	_, ok := s.Get(id)
	return ok
}

// GetByRaw looks a member up by raw id within the subset.
func (s *SubsetMap[R, C]) GetByRaw(raw R) (C, bool) {
	var zero C
	id, ok := s.parent.store.Get(raw)
	if !ok {
		return zero, false
	}
	return s.Get(id)
}

// Rename rebinds an active id.
func (s *SubsetMap[R, C]) Rename(id *ID[R], newRaw R) (bool, error) {
	if err := s.requireActive("rename", id); err != nil {
		return false, err
	}
	return s.parent.Rename(id, newRaw)
}

// All yields the active members in the parent's iteration order.
func (s *SubsetMap[R, C]) All() iter.Seq2[*ID[R], C] {
	return func(yield func(*ID[R], C) bool) {
		for id, c := range s.parent.All() {
			if s.isActive(id) && !yield(id, c) {
				return
			}
		}
	}
}

// Values yields the active members.
func (s *SubsetMap[R, C]) Values() iter.Seq[C] {
	return func(yield func(C) bool) {
		for _, c := range s.All() {
			if !yield(c) {
				return
			}
		}
	}
}
