package ids

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestOwnedMap(t *testing.T) {
	s := NewStore[string](nodeFormat{})
	shared := NewMap[string, *node](s)
	registry := NewScopeRegistry[string]()
	first := NewOwnedMap(shared, registry, "first")
	second := NewOwnedMap(shared, registry, "second")

	n := mustNode(t, s, "N1", "x")
	require.NoError(t, first.Add(n))

	t.Run("second scope cannot add", func(t *testing.T) {
		err := second.Add(n)
		if !errors.Is(err, ErrWrongScope) {
			t.Fatalf("error = %v, want ErrWrongScope", err)
		}
		if second.Len() != 0 {
			t.Errorf("second scope grew")
		}
	})

	t.Run("visibility", func(t *testing.T) {
		if !first.Has(n.id) {
			t.Errorf("owner cannot see its member")
		}
		if second.Has(n.id) {
			t.Errorf("other scope sees a foreign member")
		}
		if _, ok := second.GetByRaw("N1"); ok {
			t.Errorf("GetByRaw leaks across scopes")
		}
		owner, ok := registry.Owner(n.id)
		if !ok || owner != first.Scope() {
			t.Errorf("registry owner = %v", owner)
		}
	})

	t.Run("foreign mutation", func(t *testing.T) {
		if err := second.Update(n); !errors.Is(err, ErrWrongScope) {
			t.Errorf("Update error = %v, want ErrWrongScope", err)
		}
		if err := second.Delete(n.id); !errors.Is(err, ErrWrongScope) {
			t.Errorf("Delete error = %v, want ErrWrongScope", err)
		}
		if _, err := second.Rename(n.id, "N9"); !errors.Is(err, ErrWrongScope) {
			t.Errorf("Rename error = %v, want ErrWrongScope", err)
		}
		if !shared.Has(n.id) {
			t.Errorf("shared map lost the member")
		}
	})

	t.Run("ownership follows rename", func(t *testing.T) {
		ok, err := first.Rename(n.id, "N9")
		require.NoError(t, err)
		require.True(t, ok)
		got, found := first.GetByRaw("N9")
		if !found || got != n {
			t.Errorf("renamed member not visible to its owner")
		}
	})

	t.Run("delete releases ownership", func(t *testing.T) {
		require.NoError(t, first.Delete(n.id))
		if _, ok := registry.Owner(n.id); ok {
			t.Errorf("ownership kept after delete")
		}
		if first.Len() != 0 {
			t.Errorf("Len() = %d, want 0", first.Len())
		}
		require.NoError(t, second.Add(n))
	})

	t.Run("duplicate add in same scope", func(t *testing.T) {
		m := mustNode(t, s, "N2", "y")
		require.NoError(t, first.Add(m))
		if err := first.Add(m); !errors.Is(err, ErrExists) {
			t.Errorf("error = %v, want ErrExists", err)
		}
	})
}

func TestOwnedMapIteration(t *testing.T) {
	s := NewStore[string](nodeFormat{})
	shared := NewMap[string, *node](s)
	registry := NewScopeRegistry[string]()
	a := NewOwnedMap(shared, registry, "a")
	b := NewOwnedMap(shared, registry, "b")

	for _, raw := range []string{"N3", "N1", "other"} {
		require.NoError(t, a.Add(mustNode(t, s, raw, raw)))
	}
	require.NoError(t, b.Add(mustNode(t, s, "N2", "N2")))

	var got []string
	for id := range a.All() {
		got = append(got, id.Raw())
	}
	if diff := cmp.Diff([]string{"N1", "N3", "other"}, got); diff != "" {
		t.Errorf("iteration mismatch (-want +got):\n%s", diff)
	}
}

func TestSubsetMap(t *testing.T) {
	s := NewStore[string](nodeFormat{})
	shared := NewMap[string, *node](s)
	sub := NewSubsetMap(shared, "sub")

	inSub := mustNode(t, s, "N1", "in")
	require.NoError(t, sub.Add(inSub))

	bypass := mustNode(t, s, "N2", "bypass")
	require.NoError(t, shared.Add(bypass))

	t.Run("isolation", func(t *testing.T) {
		if !shared.Has(bypass.id) {
			t.Fatalf("parent does not report the member")
		}
		if sub.Has(bypass.id) {
			t.Errorf("subset sees a member added to the parent directly")
		}
		if _, ok := sub.Get(bypass.id); ok {
			t.Errorf("Get leaks parent member")
		}
		if _, ok := sub.GetByRaw("N2"); ok {
			t.Errorf("GetByRaw leaks parent member")
		}
		if !sub.Has(inSub.id) {
			t.Errorf("subset does not see its own member")
		}
		if sub.Len() != 1 || shared.Len() != 2 {
			t.Errorf("sizes = %d/%d, want 1/2", sub.Len(), shared.Len())
		}
	})

	t.Run("mutation outside subset", func(t *testing.T) {
		if err := sub.Update(bypass); !errors.Is(err, ErrNotInSubset) {
			t.Errorf("Update error = %v, want ErrNotInSubset", err)
		}
		if err := sub.Delete(bypass.id); !errors.Is(err, ErrNotInSubset) {
			t.Errorf("Delete error = %v, want ErrNotInSubset", err)
		}
		if _, err := sub.Rename(bypass.id, "N7"); !errors.Is(err, ErrNotInSubset) {
			t.Errorf("Rename error = %v, want ErrNotInSubset", err)
		}
	})

	t.Run("global uniqueness through the parent", func(t *testing.T) {
		other := NewSubsetMap(shared, "other")
		if _, err := s.NewIDFromRaw("N1"); !errors.Is(err, ErrIDTaken) {
			t.Errorf("raw id reusable in another subset: %v", err)
		}
		if err := other.Add(inSub); !errors.Is(err, ErrExists) {
			t.Errorf("error = %v, want ErrExists from the parent", err)
		}
		if other.Len() != 0 {
			t.Errorf("failed add activated the id")
		}
	})

	t.Run("adopt", func(t *testing.T) {
		require.NoError(t, sub.Adopt(bypass.id))
		if !sub.Has(bypass.id) {
			t.Errorf("adopted member invisible")
		}
		orphan := mustID(t, s, "N5")
		if err := sub.Adopt(orphan); !errors.Is(err, ErrNotFound) {
			t.Errorf("Adopt error = %v, want ErrNotFound", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, sub.Delete(inSub.id))
		if shared.Has(inSub.id) || sub.Has(inSub.id) {
			t.Errorf("member survived delete")
		}
	})
}

type kindedMember interface {
	ID() *ID[int]
	MemberKind() Kind
}

type instance struct {
	id   *ID[int]
	name string
}

func (i *instance) ID() *ID[int]     { return i.id }
func (i *instance) MemberKind() Kind { return "instance" }

type operator struct {
	id *ID[int]
	op string
}

func (o *operator) ID() *ID[int]     { return o.id }
func (o *operator) MemberKind() Kind { return "operator" }

func TestProjectedMap(t *testing.T) {
	s := NewStore[int](countFormat{})
	shared := NewMap[int, kindedMember](s)
	instances := NewProjectedMap[int, kindedMember, *instance](shared, "instance")
	operators := NewProjectedMap[int, kindedMember, *operator](shared, "operator")

	newID := func() *ID[int] {
		id, err := s.NewOrderedID()
		require.NoError(t, err)
		return id
	}
	i1 := &instance{id: newID(), name: "Machine"}
	o2 := &operator{id: newID(), op: "conjunction"}
	i3 := &instance{id: newID(), name: "Researcher"}
	require.NoError(t, instances.Add(i1))
	require.NoError(t, operators.Add(o2))
	require.NoError(t, instances.Add(i3))

	t.Run("projection", func(t *testing.T) {
		if got, ok := instances.Get(i1.id); !ok || got != i1 {
			t.Errorf("instance not visible")
		}
		if instances.Has(o2.id) {
			t.Errorf("operator visible through the instance projection")
		}
		if _, ok := operators.GetByRaw(1); ok {
			t.Errorf("instance visible through the operator projection")
		}
		if got, ok := operators.GetByRaw(2); !ok || got != o2 {
			t.Errorf("operator not visible")
		}
	})

	t.Run("sizes are per projection", func(t *testing.T) {
		if instances.Len() != 2 || operators.Len() != 1 || shared.Len() != 3 {
			t.Errorf("sizes = %d/%d/%d, want 2/1/3", instances.Len(), operators.Len(), shared.Len())
		}
	})

	t.Run("shared id space", func(t *testing.T) {
		clash := &operator{id: i1.id, op: "quotient"}
		if err := operators.Add(clash); !errors.Is(err, ErrExists) {
			t.Errorf("error = %v, want ErrExists", err)
		}
	})

	t.Run("wrong kind mutation", func(t *testing.T) {
		if err := operators.Delete(i1.id); !errors.Is(err, ErrWrongKind) {
			t.Errorf("Delete error = %v, want ErrWrongKind", err)
		}
		if _, err := operators.Rename(i1.id, 9); !errors.Is(err, ErrWrongKind) {
			t.Errorf("Rename error = %v, want ErrWrongKind", err)
		}
		if !instances.Has(i1.id) {
			t.Errorf("instance removed by the wrong projection")
		}
	})

	t.Run("iteration", func(t *testing.T) {
		var names []string
		for inst := range instances.Values() {
			names = append(names, inst.name)
		}
		if diff := cmp.Diff([]string{"Machine", "Researcher"}, names); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, operators.Delete(o2.id))
		if operators.Len() != 0 || shared.Len() != 2 {
			t.Errorf("sizes = %d/%d, want 0/2", operators.Len(), shared.Len())
		}
	})
}
