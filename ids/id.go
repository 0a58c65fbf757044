package ids

import (
	"fmt"
	"math"
	"slices"
)

// NoOrder marks a parsed id that carries no dense order.
const NoOrder = -1

// Raw is the persisted form of an identifier: a string such as "L5" or
// "System 3", or a bare integer for system members.
type Raw interface {
	~string | ~int
}

// Parsed is the result of parsing a raw id. At most one of Order and Orders
// is set. Tag carries format specific markers (e.g. the location variant).
type Parsed[R Raw] struct {
	Raw    R
	Order  int
	Orders []int
	Tag    string
}

// Opaque returns a parse result with no order information.
func Opaque[R Raw](raw R) Parsed[R] {
	return Parsed[R]{Raw: raw, Order: NoOrder}
}

// Ordered returns a parse result with a dense order.
func Ordered[R Raw](raw R, order int) Parsed[R] {
	return Parsed[R]{Raw: raw, Order: order}
}

// Composite returns a parse result for a raw id encoding several numbers.
func Composite[R Raw](raw R, orders []int) Parsed[R] {
	return Parsed[R]{Raw: raw, Order: NoOrder, Orders: orders}
}

// WithTag returns a copy of p carrying tag.
func (p Parsed[R]) WithTag(tag string) Parsed[R] {
	p.Tag = tag
	return p
}

func (p Parsed[R]) validate() error {
	if p.Order < NoOrder {
		return fmt.Errorf("negative order %d", p.Order)
	}
	if p.Order != NoOrder && len(p.Orders) > 0 {
		return fmt.Errorf("both order and orders set")
	}
	for _, o := range p.Orders {
		if o < 0 {
			return fmt.Errorf("negative component order %d", o)
		}
	}
	return nil
}

// Format parses one kind of raw id. Parse must be pure: the same input
// always yields the same result, and Parsed.Raw must equal the input.
// An error marks the raw value as illegal for this kind.
type Format[R Raw] interface {
	Name() string
	Parse(raw R) (Parsed[R], error)
}

// OrderedFormat is a Format that can also produce the canonical raw id for
// a given order, which enables NewOrderedID.
type OrderedFormat[R Raw] interface {
	Format[R]
	FromOrder(order int) R
	MinOrder() int
}

// HigherOrder indexes a composite id into a two dimensional table.
type HigherOrder struct {
	Count int
	Sum   int
}

// higherOf reports false when a component is negative or the sum does not
// fit in an int.
func higherOf(orders []int) (HigherOrder, bool) {
	h := HigherOrder{Count: len(orders)}
	for _, o := range orders {
		if o < 0 || h.Sum > math.MaxInt-o {
			return HigherOrder{}, false
		}
		h.Sum += o
	}
	return h, true
}

// ID is a canonical, parsed identifier. An ID is created by a Store and stays
// bound to it; its raw value only changes through a successful rename.
type ID[R Raw] struct {
	parsed Parsed[R]
	store  *Store[R]
}

// Raw returns the persisted raw value.
func (id *ID[R]) Raw() R { return id.parsed.Raw }

// ToRaw returns the raw value exactly as it was accepted.
func (id *ID[R]) ToRaw() R { return id.parsed.Raw }

// Order returns the dense order, if the raw value carries one.
func (id *ID[R]) Order() (int, bool) {
	return id.parsed.Order, id.parsed.Order != NoOrder
}

// Orders returns a copy of the component orders of a composite id.
func (id *ID[R]) Orders() []int {
	return slices.Clone(id.parsed.Orders)
}

// HigherOrder returns the [count, sum] index of a composite id. It reports
// false for ids that are not composite and for composites whose sum
// overflows.
func (id *ID[R]) HigherOrder() (HigherOrder, bool) {
	if len(id.parsed.Orders) == 0 {
		return HigherOrder{}, false
	}
	return higherOf(id.parsed.Orders)
}

// Tag returns the format specific marker set by the parser.
func (id *ID[R]) Tag() string { return id.parsed.Tag }

// Store returns the store that allocated the id.
func (id *ID[R]) Store() *Store[R] { return id.store }

func (id *ID[R]) String() string {
	if id == nil {
		return "<nil>"
	}
	return fmt.Sprint(id.parsed.Raw)
}

// Renamer is implemented by every container that can rename an id it holds:
// Store, Map and the views over a Map.
type Renamer[R Raw] interface {
	Rename(id *ID[R], newRaw R) (bool, error)
}

// Rename asks owner to rebind the id under newRaw. It reports false, with no
// change, when newRaw is already taken.
func (id *ID[R]) Rename(newRaw R, owner Renamer[R]) (bool, error) {
	return owner.Rename(id, newRaw)
}

// FromRaw parses raw with format into a detached id that belongs to no
// store. It is meant for probing and round-trip checks; ids that take part
// in a model are always allocated through a Store.
func FromRaw[R Raw](format Format[R], raw R) (*ID[R], error) {
	p, err := parseWith(format, raw)
	if err != nil {
		return nil, err
	}
	return &ID[R]{parsed: p}, nil
}

func parseWith[R Raw](format Format[R], raw R) (Parsed[R], error) {
	p, err := format.Parse(raw)
	if err != nil {
		return Parsed[R]{}, &InvariantError{Op: "parse", Store: format.Name(), Raw: fmt.Sprint(raw), Err: fmt.Errorf("%w: %v", ErrInvalidRaw, err)}
	}
	if p.Raw != raw {
		return Parsed[R]{}, &InvariantError{Op: "parse", Store: format.Name(), Raw: fmt.Sprint(raw), Err: fmt.Errorf("%w: parser rewrote raw to %v", ErrInvalidRaw, p.Raw)}
	}
	if err := p.validate(); err != nil {
		return Parsed[R]{}, &InvariantError{Op: "parse", Store: format.Name(), Raw: fmt.Sprint(raw), Err: fmt.Errorf("%w: %v", ErrInvalidRaw, err)}
	}
	return p, nil
}
