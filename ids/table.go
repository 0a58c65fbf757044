package ids

import (
	"cmp"
	"maps"
	"slices"
)

// Orders beyond these bounds leave the slices so a single odd raw id cannot
// balloon them. Large orders keep their slot semantics in a map keyed by
// order; oversized composites fall back to the hash tier.
const (
	maxDenseOrder  = 1 << 20
	maxHigherCount = 64
	maxHigherSum   = 1 << 16
)

type keyKind uint8

const (
	hashKey keyKind = iota
	denseKey
	spillKey
	higherKey
)

// key locates a raw id in a table.
type key[R Raw] struct {
	kind   keyKind
	order  int
	higher HigherOrder
	raw    R
}

func keyOf[R Raw](p Parsed[R]) key[R] {
	switch {
	case p.Order >= 0 && p.Order <= maxDenseOrder:
		return key[R]{kind: denseKey, order: p.Order, raw: p.Raw}
	case p.Order > maxDenseOrder:
		return key[R]{kind: spillKey, order: p.Order, raw: p.Raw}
	case len(p.Orders) > 0:
		h, ok := higherOf(p.Orders)
		if ok && h.Count <= maxHigherCount && h.Sum <= maxHigherSum {
			return key[R]{kind: higherKey, higher: h, raw: p.Raw}
		}
	}
	return key[R]{kind: hashKey, raw: p.Raw}
}

type slot[R Raw, V any] struct {
	id  *ID[R]
	val V
	seq uint64
}

// table is the three-tier storage shared by Store and Map: a dense slice
// indexed by order (spilling into a map for very large orders), a
// [count][sum] grid of small buckets for composite ids, and a hash map for
// everything else.
type table[R Raw, V any] struct {
	dense   []*slot[R, V]
	spilled map[int]*slot[R, V]
	higher  [][][]*slot[R, V]
	hashed  map[R]*slot[R, V]
	seq     uint64
	n       int
}

func newTable[R Raw, V any]() *table[R, V] {
	return &table[R, V]{
		spilled: make(map[int]*slot[R, V]),
		hashed:  make(map[R]*slot[R, V]),
	}
}

func (t *table[R, V]) bucket(h HigherOrder) []*slot[R, V] {
	if h.Count < len(t.higher) && h.Sum < len(t.higher[h.Count]) {
		return t.higher[h.Count][h.Sum]
	}
	return nil
}

// occupant returns the slot that blocks k. An ordered slot blocks every raw
// id with the same order; the other tiers only block the identical raw id.
func (t *table[R, V]) occupant(k key[R]) *slot[R, V] {
	switch k.kind {
	case denseKey:
		if k.order < len(t.dense) {
			return t.dense[k.order]
		}
		return nil
	case spillKey:
		return t.spilled[k.order]
	case higherKey:
		for _, s := range t.bucket(k.higher) {
			if s.id.parsed.Raw == k.raw {
				return s
			}
		}
		return nil
	default:
		return t.hashed[k.raw]
	}
}

// exact returns the slot bound to precisely k.raw.
func (t *table[R, V]) exact(k key[R]) *slot[R, V] {
	s := t.occupant(k)
	if s == nil || s.id.parsed.Raw != k.raw {
		return nil
	}
	return s
}

// find returns the slot holding this very id object, looked up under k.
func (t *table[R, V]) find(k key[R], id *ID[R]) *slot[R, V] {
	if k.kind == higherKey {
		for _, s := range t.bucket(k.higher) {
			if s.id == id {
				return s
			}
		}
		return nil
	}
	s := t.occupant(k)
	if s == nil || s.id != id {
		return nil
	}
	return s
}

func (t *table[R, V]) put(id *ID[R], v V) {
	t.seq++
	t.insert(&slot[R, V]{id: id, val: v, seq: t.seq})
}

func (t *table[R, V]) insert(s *slot[R, V]) {
	k := keyOf(s.id.parsed)
	switch k.kind {
	case denseKey:
		if k.order >= len(t.dense) {
			t.dense = append(t.dense, make([]*slot[R, V], k.order-len(t.dense)+1)...)
		}
		t.dense[k.order] = s
	case spillKey:
		t.spilled[k.order] = s
	case higherKey:
		for len(t.higher) <= k.higher.Count {
			t.higher = append(t.higher, nil)
		}
		row := t.higher[k.higher.Count]
		if k.higher.Sum >= len(row) {
			row = append(row, make([][]*slot[R, V], k.higher.Sum-len(row)+1)...)
			t.higher[k.higher.Count] = row
		}
		row[k.higher.Sum] = append(row[k.higher.Sum], s)
	default:
		t.hashed[k.raw] = s
	}
	t.n++
}

// remove unbinds id from the slot located by k.
func (t *table[R, V]) remove(k key[R], id *ID[R]) *slot[R, V] {
	s := t.find(k, id)
	if s == nil {
		return nil
	}
	switch k.kind {
	case denseKey:
		t.dense[k.order] = nil
		last := len(t.dense)
		for last > 0 && t.dense[last-1] == nil {
			last--
		}
		t.dense = t.dense[:last]
	case spillKey:
		delete(t.spilled, k.order)
	case higherKey:
		row := t.higher[k.higher.Count]
		row[k.higher.Sum] = slices.DeleteFunc(row[k.higher.Sum], func(x *slot[R, V]) bool { return x == s })
	default:
		delete(t.hashed, k.raw)
	}
	t.n--
	return s
}

// move rebinds the slot of id from old to the key of its current raw value.
// Insertion sequence is kept so hash-tier iteration order survives renames.
func (t *table[R, V]) move(old key[R], id *ID[R]) bool {
	s := t.remove(old, id)
	if s == nil {
		return false
	}
	t.insert(s)
	return true
}

// each visits ordered slots ascending, then composite buckets by
// [count, sum], then hashed slots in insertion order.
func (t *table[R, V]) each(yield func(*slot[R, V]) bool) {
	for _, s := range t.dense {
		if s != nil && !yield(s) {
			return
		}
	}
	for _, order := range slices.Sorted(maps.Keys(t.spilled)) {
		if !yield(t.spilled[order]) {
			return
		}
	}
	for _, row := range t.higher {
		for _, b := range row {
			for _, s := range b {
				if !yield(s) {
					return
				}
			}
		}
	}
	hashed := make([]*slot[R, V], 0, len(t.hashed))
	for _, s := range t.hashed {
		hashed = append(hashed, s)
	}
	slices.SortFunc(hashed, func(a, b *slot[R, V]) int { return cmp.Compare(a.seq, b.seq) })
	for _, s := range hashed {
		if !yield(s) {
			return
		}
	}
}

// snapshot collects the slots so callers can mutate while walking.
func (t *table[R, V]) snapshot() []*slot[R, V] {
	out := make([]*slot[R, V], 0, t.n)
	t.each(func(s *slot[R, V]) bool {
		out = append(out, s)
		return true
	})
	return out
}
