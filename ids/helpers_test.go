package ids

import (
	"errors"
	"fmt"
	"iter"
	"regexp"
	"strconv"
	"testing"
)

// nodeFormat accepts "N<uint>" and "VN<uint>" (same order, tag "v"),
// "C<uint>.<uint>[.<uint>...]" composites and any other non-empty string
// as an opaque id.
type nodeFormat struct{}

var (
	nodePattern      = regexp.MustCompile(`^(V?)N(0|[1-9][0-9]*)$`)
	compositePattern = regexp.MustCompile(`^C(?:0|[1-9][0-9]*)(?:\.(?:0|[1-9][0-9]*))+$`)
	digitsPattern    = regexp.MustCompile(`[0-9]+`)
)

func (nodeFormat) Name() string { return "node" }

func (nodeFormat) Parse(raw string) (Parsed[string], error) {
	if raw == "" {
		return Parsed[string]{}, errors.New("empty id")
	}
	if m := nodePattern.FindStringSubmatch(raw); m != nil {
		n, _ := strconv.Atoi(m[2])
		p := Ordered(raw, n)
		if m[1] == "V" {
			p = p.WithTag("v")
		}
		return p, nil
	}
	if compositePattern.MatchString(raw) {
		var orders []int
		for _, d := range digitsPattern.FindAllString(raw, -1) {
			n, _ := strconv.Atoi(d)
			orders = append(orders, n)
		}
		return Composite(raw, orders), nil
	}
	return Opaque(raw), nil
}

func (nodeFormat) FromOrder(order int) string { return fmt.Sprintf("N%d", order) }

func (nodeFormat) MinOrder() int { return 0 }

// plainFormat has no ordered allocation.
type plainFormat struct{}

func (plainFormat) Name() string { return "plain" }

func (plainFormat) Parse(raw string) (Parsed[string], error) { return Opaque(raw), nil }

// countFormat accepts positive integers.
type countFormat struct{}

func (countFormat) Name() string { return "count" }

func (countFormat) Parse(raw int) (Parsed[int], error) {
	if raw <= 0 {
		return Parsed[int]{}, fmt.Errorf("%d is reserved", raw)
	}
	return Ordered(raw, raw), nil
}

func (countFormat) FromOrder(order int) int { return order }

func (countFormat) MinOrder() int { return 1 }

type node struct {
	id    *ID[string]
	label string
}

func (n *node) ID() *ID[string] { return n.id }

func mustID(t *testing.T, s *Store[string], raw string) *ID[string] {
	t.Helper()
	id, err := s.NewIDFromRaw(raw)
	if err != nil {
		t.Fatalf("NewIDFromRaw(%q): %v", raw, err)
	}
	return id
}

func mustNode(t *testing.T, s *Store[string], raw, label string) *node {
	t.Helper()
	return &node{id: mustID(t, s, raw), label: label}
}

func raws[R Raw](seq iter.Seq[*ID[R]]) []R {
	var out []R
	for id := range seq {
		out = append(out, id.Raw())
	}
	return out
}
