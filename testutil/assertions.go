package testutil

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/arthur-debert/tamodel/ids"
	"github.com/google/go-cmp/cmp"
)

// AssertJSONEqual compares want (a JSON document) with the JSON encoding of
// got, ignoring key order and number formatting.
func AssertJSONEqual(t testing.TB, want []byte, got any) {
	t.Helper()
	gotBytes, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("failed to marshal result: %v", err)
	}
	var w, g any
	if err := json.Unmarshal(want, &w); err != nil {
		t.Fatalf("failed to parse expected JSON: %v", err)
	}
	if err := json.Unmarshal(gotBytes, &g); err != nil {
		t.Fatalf("failed to parse result JSON: %v", err)
	}
	if diff := cmp.Diff(w, g); diff != "" {
		t.Errorf("JSON mismatch (-want +got):\n%s", diff)
	}
}

// AssertRaws checks the raw ids of members in iteration order.
func AssertRaws[R ids.Raw, M interface{ ID() *ids.ID[R] }](t testing.TB, members []M, want ...R) {
	t.Helper()
	got := make([]R, 0, len(members))
	for _, m := range members {
		got = append(got, m.ID().Raw())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("raw ids mismatch (-want +got):\n%s", diff)
	}
}

// AssertInvariant checks that err is an invariant violation wrapping target.
func AssertInvariant(t testing.TB, err, target error) {
	t.Helper()
	if !ids.IsInvariant(err) {
		t.Fatalf("expected an invariant violation, got %v", err)
	}
	if target != nil && !errors.Is(err, target) {
		t.Errorf("error = %v, want it to wrap %v", err, target)
	}
}
