package ids

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"github.com/google/uuid"
)

var errOrderSpaceExhausted = errors.New("dense order space exhausted")

// relinker is implemented by maps built on a store, so a rename can move
// every association of the id in the same step.
type relinker[R Raw] interface {
	relink(old key[R], id *ID[R])
	holds(id *ID[R]) bool
}

type storeOptions struct {
	name   string
	logger *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*storeOptions)

// WithName sets the name used in errors and log records.
func WithName(name string) StoreOption {
	return func(o *storeOptions) { o.name = name }
}

// WithLogger sets the logger; the default is slog.Default().
func WithLogger(logger *slog.Logger) StoreOption {
	return func(o *storeOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Store owns the set of live ids of one kind and guarantees that no two id
// objects share a raw value.
//
// A Store is not safe for concurrent use. The free-order cursor advances
// optimistically and only rewinds on delete, which is sound only while a
// single goroutine drives the store.
type Store[R Raw] struct {
	name     string
	instance string
	format   Format[R]
	ids      *table[R, struct{}]
	nextFree int
	linked   []relinker[R]
	renaming bool
	log      *slog.Logger
}

// NewStore creates an empty store for ids parsed by format.
func NewStore[R Raw](format Format[R], opts ...StoreOption) *Store[R] {
	o := storeOptions{name: format.Name(), logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	instance := uuid.NewString()[:8]
	s := &Store[R]{
		name:     o.name,
		instance: instance,
		format:   format,
		ids:      newTable[R, struct{}](),
		log:      o.logger.With("store", o.name, "instance", instance),
	}
	if of, ok := format.(OrderedFormat[R]); ok {
		s.nextFree = of.MinOrder()
	}
	return s
}

// Name returns the store name.
func (s *Store[R]) Name() string { return s.name }

// Format returns the parser of this store.
func (s *Store[R]) Format() Format[R] { return s.format }

// Len returns the number of remembered ids.
func (s *Store[R]) Len() int { return s.ids.n }

func (s *Store[R]) where() string {
	return fmt.Sprintf("%s#%s", s.name, s.instance)
}

func (s *Store[R]) link(l relinker[R]) {
	s.linked = append(s.linked, l)
}

// NewIDFromRaw allocates an id bound to raw. If raw is already taken it
// returns ErrIDTaken, which is an ordinary condition.
func (s *Store[R]) NewIDFromRaw(raw R) (*ID[R], error) {
	if s.renaming {
		return nil, &InvariantError{Op: "allocate", Store: s.where(), Raw: fmt.Sprint(raw), Err: ErrReentrant}
	}
	p, err := parseWith(s.format, raw)
	if err != nil {
		return nil, err
	}
	if s.ids.occupant(keyOf(p)) != nil {
		s.log.Debug("raw id taken", "raw", raw)
		return nil, ErrIDTaken
	}
	id := &ID[R]{parsed: p, store: s}
	s.ids.put(id, struct{}{})
	s.log.Debug("id allocated", "raw", raw)
	return id, nil
}

// NewOrderedID allocates the lowest free order at or after the cursor.
func (s *Store[R]) NewOrderedID() (*ID[R], error) {
	if s.renaming {
		return nil, violation[R]("allocate", s.where(), nil, ErrReentrant)
	}
	of, ok := s.format.(OrderedFormat[R])
	if !ok {
		return nil, violation[R]("allocate", s.where(), nil, ErrNotOrdered)
	}
	order, ok := s.freeOrder()
	if !ok {
		return nil, violation[R]("allocate", s.where(), nil, errOrderSpaceExhausted)
	}
	raw := of.FromOrder(order)
	p, err := parseWith(s.format, raw)
	if err != nil {
		return nil, err
	}
	if p.Order != order {
		return nil, &InvariantError{
			Op:    "allocate",
			Store: s.where(),
			Raw:   fmt.Sprint(raw),
			Err:   fmt.Errorf("%w: order %d parsed back as %d", ErrInvalidRaw, order, p.Order),
		}
	}
	id := &ID[R]{parsed: p, store: s}
	s.ids.put(id, struct{}{})
	s.nextFree = order + 1
	s.log.Debug("ordered id allocated", "raw", raw, "order", order)
	return id, nil
}

// PeekOrder returns the order NewOrderedID would allocate next.
func (s *Store[R]) PeekOrder() (int, bool) {
	if _, ok := s.format.(OrderedFormat[R]); !ok {
		return NoOrder, false
	}
	return s.freeOrder()
}

func (s *Store[R]) freeOrder() (int, bool) {
	for order := s.nextFree; order <= maxDenseOrder; order++ {
		if s.ids.occupant(key[R]{kind: denseKey, order: order}) == nil {
			return order, true
		}
	}
	return NoOrder, false
}

// Get returns the id bound to raw.
func (s *Store[R]) Get(raw R) (*ID[R], bool) {
	p, err := s.format.Parse(raw)
	if err != nil || p.Raw != raw {
		return nil, false
	}
	sl := s.ids.exact(keyOf(p))
	if sl == nil {
		return nil, false
	}
	return sl.id, true
}

// Has reports whether raw is bound to a live id.
func (s *Store[R]) Has(raw R) bool {
	_, ok := s.Get(raw)
	return ok
}

// Taken reports whether allocating raw would fail. It differs from Has when
// another raw id with the same order already holds the dense slot.
func (s *Store[R]) Taken(raw R) bool {
	p, err := s.format.Parse(raw)
	if err != nil || p.Raw != raw {
		return false
	}
	return s.ids.occupant(keyOf(p)) != nil
}

// Contains reports whether this very id object is live in the store.
func (s *Store[R]) Contains(id *ID[R]) bool {
	return id != nil && id.store == s && s.ids.find(keyOf(id.parsed), id) != nil
}

// Check fails if id was produced by another store, or if the store already
// maps its raw value to a different id object.
func (s *Store[R]) Check(id *ID[R]) error {
	if id == nil {
		return violation[R]("check", s.where(), nil, ErrNilID)
	}
	if id.store != s {
		return violation("check", s.where(), id, ErrForeignID)
	}
	if occ := s.ids.occupant(keyOf(id.parsed)); occ != nil && occ.id != id {
		return violation("check", s.where(), id, ErrForeignID)
	}
	return nil
}

// Delete releases id so its raw value and order can be allocated again.
// It fails while any map built on this store still holds a member for id.
func (s *Store[R]) Delete(id *ID[R]) error {
	if s.renaming {
		return violation("delete", s.where(), id, ErrReentrant)
	}
	if err := s.Check(id); err != nil {
		return err
	}
	k := keyOf(id.parsed)
	if s.ids.find(k, id) == nil {
		return violation("delete", s.where(), id, ErrNotFound)
	}
	for _, l := range s.linked {
		if l.holds(id) {
			return violation("delete", s.where(), id, ErrInUse)
		}
	}
	s.ids.remove(k, id)
	if k.kind == denseKey && k.order < s.nextFree {
		s.nextFree = k.order
	}
	s.log.Debug("id released", "raw", id.parsed.Raw)
	return nil
}

// Rename rebinds id under newRaw. It returns false, changing nothing, when
// newRaw is taken. Unbinding the old key, reparsing and rebinding the new
// key, in the store and in every map built on it, happen in one step.
func (s *Store[R]) Rename(id *ID[R], newRaw R) (bool, error) {
	if s.renaming {
		return false, violation("rename", s.where(), id, ErrReentrant)
	}
	if err := s.Check(id); err != nil {
		return false, err
	}
	oldKey := keyOf(id.parsed)
	if s.ids.find(oldKey, id) == nil {
		return false, violation("rename", s.where(), id, ErrNotFound)
	}
	if newRaw == id.parsed.Raw {
		return true, nil
	}
	p, err := parseWith(s.format, newRaw)
	if err != nil {
		return false, err
	}
	if occ := s.ids.occupant(keyOf(p)); occ != nil && occ.id != id {
		s.log.Debug("rename target taken", "raw", id.parsed.Raw, "target", newRaw)
		return false, nil
	}

	s.renaming = true
	defer func() { s.renaming = false }()

	oldRaw := id.parsed.Raw
	id.parsed = p
	s.ids.move(oldKey, id)
	for _, l := range s.linked {
		l.relink(oldKey, id)
	}
	if newKey := keyOf(p); oldKey.kind == denseKey && (newKey.kind != denseKey || newKey.order != oldKey.order) && oldKey.order < s.nextFree {
		s.nextFree = oldKey.order
	}
	s.log.Debug("id renamed", "from", oldRaw, "to", newRaw)
	return true, nil
}

// All yields the remembered ids: ordered ids ascending, composite ids by
// [count, sum], then the remaining ids in insertion order.
func (s *Store[R]) All() iter.Seq[*ID[R]] {
	return func(yield func(*ID[R]) bool) {
		for _, sl := range s.ids.snapshot() {
			if !yield(sl.id) {
				return
			}
		}
	}
}
