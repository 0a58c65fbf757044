package search

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEngine_Search_EmptyQuery(t *testing.T) {
	engine := NewEngine(&mockProvider{entries: sampleEntries()})

	results, err := engine.Search(Options{Query: ""})
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected 0 results for empty query, got %d", len(results))
	}
}

func TestEngine_Search_ProviderError(t *testing.T) {
	engine := NewEngine(&mockProvider{err: errors.New("load failed")})

	_, err := engine.Search(Options{Query: "coin"})
	if err == nil || !strings.Contains(err.Error(), "failed to get entries") {
		t.Errorf("Expected provider error, got: %v", err)
	}
}

func TestEngine_Search(t *testing.T) {
	tests := []struct {
		name    string
		options Options
		want    []string
	}{
		{
			name:    "case insensitive ranks names first",
			options: Options{Query: "coin"},
			want:    []string{"A/L1", "A/E1", "A/E2"},
		},
		{
			name:    "case sensitive",
			options: Options{Query: "coin", CaseSensitive: true},
			want:    []string{"A/L1", "A/E1"},
		},
		{
			name:    "exact match",
			options: Options{Query: "COIN", ExactMatch: true},
			want:    []string{"A/E1", "A/E2"},
		},
		{
			name:    "field restriction",
			options: Options{Query: "coin", Fields: []string{"sync"}},
			want:    []string{"A/E1", "A/E2"},
		},
		{
			name:    "labels across kinds",
			options: Options{Query: "<= 5"},
			want:    []string{"A/L1", "B/L2"},
		},
		{
			name:    "max results",
			options: Options{Query: "coin", MaxResults: 1},
			want:    []string{"A/L1"},
		},
		{
			name:    "no match",
			options: Options{Query: "tea"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := NewEngine(&mockProvider{entries: sampleEntries()}).Search(tt.options)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, paths(results)); diff != "" {
				t.Errorf("results mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEngine_Search_Scoring(t *testing.T) {
	results, err := NewEngine(&mockProvider{entries: sampleEntries()}).Search(Options{Query: "coin"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}

	// Name field with prefix match
	if results[0].Score != 1.0 || results[0].MatchType != MatchPartialName {
		t.Errorf("L1 scored %v (%s)", results[0].Score, results[0].MatchType)
	}
	// Label prefix match covering the whole field
	if results[1].Score != 0.8 || results[1].MatchType != MatchPartialLabel {
		t.Errorf("E1 scored %v (%s)", results[1].Score, results[1].MatchType)
	}
	if diff := cmp.Diff([]string{"sync"}, results[1].MatchedFields); diff != "" {
		t.Errorf("MatchedFields (-want +got):\n%s", diff)
	}

	exact, err := NewEngine(&mockProvider{entries: sampleEntries()}).Search(Options{Query: "E2", ExactMatch: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(exact) != 1 || exact[0].Score != 1.0 || exact[0].MatchType != MatchExactName {
		t.Errorf("unexpected exact result: %+v", exact)
	}
}

func TestEngine_Search_WithHighlights(t *testing.T) {
	entries := []Entry{{Kind: KindEdge, Path: "A/E3", Fields: []Field{
		{Name: "guard", Text: "X > 3 && x < 9"},
	}}}

	results, err := NewEngine(&mockProvider{entries: entries}).Search(Options{
		Query:               "x",
		EnableHighlight:     true,
		IncludeMatchDetails: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	r := results[0]
	if got := r.Highlights["guard"]; got != "**X** > 3 && **x** < 9" {
		t.Errorf("highlight = %q", got)
	}

	var starts []int
	for _, m := range r.FieldMatches[0].Matches {
		starts = append(starts, m.Start)
	}
	if diff := cmp.Diff([]int{0, 9}, starts); diff != "" {
		t.Errorf("match starts (-want +got):\n%s", diff)
	}
	if r.FieldMatches[0].Matches[0].Text != "X" {
		t.Errorf("match text should come from the original, got %q", r.FieldMatches[0].Matches[0].Text)
	}

	t.Run("custom markers", func(t *testing.T) {
		results, err := NewEngine(&mockProvider{entries: entries}).Search(Options{
			Query:                "x",
			CaseSensitive:        true,
			EnableHighlight:      true,
			HighlightStartMarker: "[",
			HighlightEndMarker:   "]",
		})
		if err != nil {
			t.Fatal(err)
		}
		if got := results[0].Highlights["guard"]; got != "X > 3 && [x] < 9" {
			t.Errorf("highlight = %q", got)
		}
	})

	t.Run("without highlights", func(t *testing.T) {
		results, err := NewEngine(&mockProvider{entries: entries}).Search(Options{Query: "x"})
		if err != nil {
			t.Fatal(err)
		}
		if results[0].Highlights != nil || results[0].FieldMatches != nil {
			t.Error("highlights and details must be opt-in")
		}
	})
}
