package ids

import (
	"iter"
	"log/slog"
)

// Member is anything stored in a Map: it carries its own id. Members are
// compared by identity, so they are normally pointers (or interfaces over
// pointers).
type Member[R Raw] interface {
	comparable
	ID() *ID[R]
}

// Map associates live ids with member objects. Ids are remembered by the
// backing Store; the Map only tracks which of them currently have a member.
// Deleting a member keeps its raw id remembered so it is not reissued.
type Map[R Raw, C Member[R]] struct {
	store   *Store[R]
	members *table[R, C]
	log     *slog.Logger
}

// NewMap creates an empty map backed by store. Several maps may share one
// store; a rename through any of them moves the id in all.
func NewMap[R Raw, C Member[R]](store *Store[R]) *Map[R, C] {
	m := &Map[R, C]{
		store:   store,
		members: newTable[R, C](),
		log:     store.log,
	}
	store.link(m)
	return m
}

// Store returns the backing id store.
func (m *Map[R, C]) Store() *Store[R] { return m.store }

// Len returns the number of live members.
func (m *Map[R, C]) Len() int { return m.members.n }

func (m *Map[R, C]) relink(old key[R], id *ID[R]) {
	m.members.move(old, id)
}

func (m *Map[R, C]) holds(id *ID[R]) bool {
	return m.members.find(keyOf(id.parsed), id) != nil
}

// check verifies that id is the object the store remembers for its raw value.
func (m *Map[R, C]) check(op string, id *ID[R]) error {
	if err := m.store.Check(id); err != nil {
		return err
	}
	if !m.store.Contains(id) {
		return violation(op, m.store.where(), id, ErrUnknownID)
	}
	return nil
}

// Add stores member under its id. The id must be remembered by the store
// and have no live member yet.
func (m *Map[R, C]) Add(member C) error {
	id := member.ID()
	if id == nil {
		return violation[R]("add", m.store.where(), nil, ErrNilID)
	}
	if err := m.check("add", id); err != nil {
		return err
	}
	if m.holds(id) {
		m.log.Warn("add on live id", "raw", id.parsed.Raw)
		return violation("add", m.store.where(), id, ErrExists)
	}
	m.members.put(id, member)
	return nil
}

// Update replaces the member stored under its id.
func (m *Map[R, C]) Update(member C) error {
	id := member.ID()
	if id == nil {
		return violation[R]("update", m.store.where(), nil, ErrNilID)
	}
	if err := m.check("update", id); err != nil {
		return err
	}
	s := m.members.find(keyOf(id.parsed), id)
	if s == nil {
		return violation("update", m.store.where(), id, ErrNotFound)
	}
	s.val = member
	return nil
}

// Delete removes the member stored under id. The raw id stays remembered.
func (m *Map[R, C]) Delete(id *ID[R]) error {
	if err := m.store.Check(id); err != nil {
		return err
	}
	if m.members.remove(keyOf(id.parsed), id) == nil {
		return violation("delete", m.store.where(), id, ErrNotFound)
	}
	m.log.Debug("member deleted", "raw", id.parsed.Raw)
	return nil
}

// DeleteMember removes member, failing if a different object is stored
// under its id.
func (m *Map[R, C]) DeleteMember(member C) error {
	id := member.ID()
	if err := m.CheckMember(id, member); err != nil {
		return err
	}
	return m.Delete(id)
}

// Release deletes the member under id and frees the raw id in the store so
// it can be allocated again.
func (m *Map[R, C]) Release(id *ID[R]) error {
	if err := m.Delete(id); err != nil {
		return err
	}
	return m.store.Delete(id)
}

// CheckMember verifies id against the store and, if a member is live under
// it, that it is the expected object.
func (m *Map[R, C]) CheckMember(id *ID[R], member C) error {
	if id == nil {
		return violation[R]("check", m.store.where(), nil, ErrNilID)
	}
	if err := m.store.Check(id); err != nil {
		return err
	}
	if s := m.members.find(keyOf(id.parsed), id); s != nil && s.val != member {
		return violation("check", m.store.where(), id, ErrMemberMismatch)
	}
	return nil
}

// Get returns the member stored under id.
func (m *Map[R, C]) Get(id *ID[R]) (C, bool) {
	var zero C
	if id == nil || id.store != m.store {
		return zero, false
	}
	s := m.members.find(keyOf(id.parsed), id)
	if s == nil {
		return zero, false
	}
	return s.val, true
}

// Has reports whether id has a live member.
func (m *Map[R, C]) Has(id *ID[R]) bool {
	_, ok := m.Get(id)
	return ok
}

// GetByRaw returns the member whose id has the given raw value.
func (m *Map[R, C]) GetByRaw(raw R) (C, bool) {
	var zero C
	id, ok := m.store.Get(raw)
	if !ok {
		return zero, false
	}
	return m.Get(id)
}

// Rename rebinds a live id under newRaw, moving its member with it.
func (m *Map[R, C]) Rename(id *ID[R], newRaw R) (bool, error) {
	if err := m.store.Check(id); err != nil {
		return false, err
	}
	if !m.holds(id) {
		return false, violation("rename", m.store.where(), id, ErrNotFound)
	}
	return m.store.Rename(id, newRaw)
}

// All yields live ids with their members. Ordered ids come first in
// ascending order, then composite ids, then the rest in insertion order;
// the regimes are not merged into one global order.
func (m *Map[R, C]) All() iter.Seq2[*ID[R], C] {
	return func(yield func(*ID[R], C) bool) {
		for _, s := range m.members.snapshot() {
			if !yield(s.id, s.val) {
				return
			}
		}
	}
}

// Keys yields the live ids in the order of All.
func (m *Map[R, C]) Keys() iter.Seq[*ID[R]] {
	return func(yield func(*ID[R]) bool) {
		for id := range m.All() {
			if !yield(id) {
				return
			}
		}
	}
}

// Values yields the members in the order of All.
func (m *Map[R, C]) Values() iter.Seq[C] {
	return func(yield func(C) bool) {
		for _, c := range m.All() {
			if !yield(c) {
				return
			}
		}
	}
}
