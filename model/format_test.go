package model

import (
	"errors"
	"testing"

	"github.com/arthur-debert/tamodel/ids"
	"github.com/google/go-cmp/cmp"
)

func TestStringFormats(t *testing.T) {
	tests := []struct {
		name    string
		format  ids.Format[string]
		raw     string
		order   int
		orders  []int
		tag     string
		wantErr bool
	}{
		{name: "location", format: LocationFormat{}, raw: "L5", order: 5, tag: "NORMAL"},
		{name: "location zero", format: LocationFormat{}, raw: "L0", order: 0, tag: "NORMAL"},
		{name: "universal", format: LocationFormat{}, raw: "UL7", order: 7, tag: "UNIVERSAL"},
		{name: "inconsistent", format: LocationFormat{}, raw: "IL3", order: 3, tag: "INCONSISTENT"},
		{name: "conflicting prefixes keep the last", format: LocationFormat{}, raw: "UIL3", order: 3, tag: "INCONSISTENT"},
		{name: "conflicting prefixes reversed", format: LocationFormat{}, raw: "IUL3", order: 3, tag: "UNIVERSAL"},
		{name: "leading zero is opaque", format: LocationFormat{}, raw: "L05", order: ids.NoOrder},
		{name: "free location name", format: LocationFormat{}, raw: "start", order: ids.NoOrder},
		{name: "empty location", format: LocationFormat{}, raw: "", wantErr: true},

		{name: "edge", format: EdgeFormat{}, raw: "E12", order: 12},
		{name: "composite edge", format: EdgeFormat{}, raw: "E4.2", order: ids.NoOrder, orders: []int{4, 2}},
		{name: "composite with three parts", format: EdgeFormat{}, raw: "E1-2-3", order: ids.NoOrder, orders: []int{1, 2, 3}},
		{name: "single padded number", format: EdgeFormat{}, raw: "E007", order: ids.NoOrder},
		{name: "padded composite", format: EdgeFormat{}, raw: "E1.02", order: ids.NoOrder},
		{name: "composite near int bounds", format: EdgeFormat{}, raw: "E9223372036854775807.1", order: ids.NoOrder, orders: []int{9223372036854775807, 1}},
		{name: "free edge name", format: EdgeFormat{}, raw: "Finish", order: ids.NoOrder},

		{name: "project", format: ProjectFormat(), raw: "Project 3", order: 3},
		{name: "project zero", format: ProjectFormat(), raw: "Project 0", order: ids.NoOrder},
		{name: "free project name", format: ProjectFormat(), raw: "UniversityExample", order: ids.NoOrder},
		{name: "system", format: SystemFormat(), raw: "System 2", order: 2},
		{name: "system without space", format: SystemFormat(), raw: "System2", order: ids.NoOrder},
		{name: "empty system", format: SystemFormat(), raw: "", wantErr: true},

		{name: "component", format: ComponentFormat{}, raw: "Component 3", order: ids.NoOrder},
		{name: "empty component", format: ComponentFormat{}, raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ids.FromRaw(tt.format, tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ids.ErrInvalidRaw) {
					t.Fatalf("error = %v, want ErrInvalidRaw", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromRaw(%q): %v", tt.raw, err)
			}
			if id.ToRaw() != tt.raw {
				t.Errorf("ToRaw() = %q, want %q", id.ToRaw(), tt.raw)
			}
			order, ok := id.Order()
			if tt.order == ids.NoOrder {
				if ok {
					t.Errorf("unexpected order %d", order)
				}
			} else if !ok || order != tt.order {
				t.Errorf("Order() = %d, %v; want %d", order, ok, tt.order)
			}
			if diff := cmp.Diff(tt.orders, id.Orders()); diff != "" {
				t.Errorf("Orders mismatch (-want +got):\n%s", diff)
			}
			if id.Tag() != tt.tag {
				t.Errorf("Tag() = %q, want %q", id.Tag(), tt.tag)
			}
		})
	}
}

func TestSystemMemberFormat(t *testing.T) {
	for _, raw := range []int{1, 2, 40} {
		id, err := ids.FromRaw[int](SystemMemberFormat{}, raw)
		if err != nil {
			t.Fatalf("FromRaw(%d): %v", raw, err)
		}
		if order, _ := id.Order(); order != raw || id.ToRaw() != raw {
			t.Errorf("member %d parsed as order %d raw %d", raw, order, id.ToRaw())
		}
	}

	t.Run("root is reserved", func(t *testing.T) {
		_, err := ids.FromRaw[int](SystemMemberFormat{}, SystemRoot)
		if !ids.IsInvariant(err) || !errors.Is(err, ids.ErrInvalidRaw) {
			t.Errorf("error = %v, want invariant ErrInvalidRaw", err)
		}
		s := ids.NewStore[int](SystemMemberFormat{})
		if _, err := s.NewIDFromRaw(0); !errors.Is(err, ids.ErrInvalidRaw) {
			t.Errorf("store accepted member 0: %v", err)
		}
	})

	t.Run("negative", func(t *testing.T) {
		if _, err := ids.FromRaw[int](SystemMemberFormat{}, -1); !errors.Is(err, ids.ErrInvalidRaw) {
			t.Errorf("error = %v, want ErrInvalidRaw", err)
		}
	})
}

func TestFromOrderRoundTrip(t *testing.T) {
	formats := []ids.OrderedFormat[string]{LocationFormat{}, EdgeFormat{}, ProjectFormat(), SystemFormat()}
	for _, f := range formats {
		t.Run(f.Name(), func(t *testing.T) {
			for order := f.MinOrder(); order < f.MinOrder()+25; order++ {
				raw := f.FromOrder(order)
				id, err := ids.FromRaw[string](f, raw)
				if err != nil {
					t.Fatalf("FromRaw(%q): %v", raw, err)
				}
				if got, ok := id.Order(); !ok || got != order {
					t.Fatalf("%q parsed as order %d, want %d", raw, got, order)
				}
			}
		})
	}
}

func TestLocationVariantSharesOrder(t *testing.T) {
	s := ids.NewStore[string](LocationFormat{})
	if _, err := s.NewIDFromRaw("L5"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.NewIDFromRaw("UL5"); !errors.Is(err, ids.ErrIDTaken) {
		t.Errorf("UL5 allocated next to L5: %v", err)
	}
	if !s.Taken("IL5") || s.Has("IL5") {
		t.Errorf("IL5 should be taken but not present")
	}

	t.Run("large orders", func(t *testing.T) {
		if _, err := s.NewIDFromRaw("L2000000"); err != nil {
			t.Fatal(err)
		}
		if _, err := s.NewIDFromRaw("UL2000000"); !errors.Is(err, ids.ErrIDTaken) {
			t.Errorf("UL2000000 allocated next to L2000000: %v", err)
		}
	})
}

func TestOverflowingEdgeLoads(t *testing.T) {
	s := ids.NewStore[string](EdgeFormat{})
	id, err := s.NewIDFromRaw("E9223372036854775807.1")
	if err != nil {
		t.Fatalf("NewIDFromRaw: %v", err)
	}
	if _, ok := id.HigherOrder(); ok {
		t.Errorf("overflowing composite reported a higher order")
	}
	if got, ok := s.Get("E9223372036854775807.1"); !ok || got != id {
		t.Errorf("Get did not return the allocated id")
	}
	if _, err := s.NewIDFromRaw("E9223372036854775807.1"); !errors.Is(err, ids.ErrIDTaken) {
		t.Errorf("second allocation error = %v, want ErrIDTaken", err)
	}
}
