package search_test

import (
	"testing"

	"github.com/arthur-debert/tamodel/search"
	"github.com/arthur-debert/tamodel/testutil"
	"github.com/google/go-cmp/cmp"
)

func TestSearchProject(t *testing.T) {
	u := testutil.LoadUniversity(t)

	results, err := search.SearchProject(u.Project, search.Options{
		Query:      "coin",
		Fields:     []string{"sync"},
		ExactMatch: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, r := range results {
		if r.Entry.Kind != search.KindEdge {
			t.Errorf("%s is a %s", r.Entry.Path, r.Entry.Kind)
		}
		got = append(got, r.Entry.Path)
	}
	want := []string{"Administration/E4", "Machine/E25", "Machine/E28", "Spec/E41.2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("edges synchronising on coin (-want +got):\n%s", diff)
	}
}

func TestProjectProviderEntries(t *testing.T) {
	u := testutil.LoadUniversity(t)

	entries, err := search.NewProjectProvider(u.Project).Entries()
	if err != nil {
		t.Fatal(err)
	}
	// project + 4 components + 14 locations + 17 edges + 2 systems
	if len(entries) != 38 {
		t.Errorf("expected 38 entries, got %d", len(entries))
	}
	if entries[0].Kind != search.KindProject || entries[0].Path != "UniversityExample" {
		t.Errorf("first entry = %+v", entries[0])
	}
	if last := entries[len(entries)-1]; last.Kind != search.KindSystem || last.Path != "Main" {
		t.Errorf("last entry = %+v", last)
	}
	for _, e := range entries {
		for _, f := range e.Fields {
			if f.Text == "" {
				t.Errorf("%s has empty field %s", e.Path, f.Name)
			}
		}
	}
}
