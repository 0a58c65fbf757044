package search

// mockProvider implements Provider for testing
type mockProvider struct {
	entries []Entry
	err     error
}

func (m *mockProvider) Entries() ([]Entry, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.entries, nil
}

func sampleEntries() []Entry {
	return []Entry{
		{Kind: KindEdge, Path: "A/E1", Fields: []Field{
			{Name: "id", Text: "E1"},
			{Name: "guard", Text: "x > 3"},
			{Name: "sync", Text: "coin"},
		}},
		{Kind: KindEdge, Path: "A/E2", Fields: []Field{
			{Name: "id", Text: "E2"},
			{Name: "update", Text: "x = 0"},
			{Name: "sync", Text: "Coin"},
		}},
		{Kind: KindLocation, Path: "A/L1", Fields: []Field{
			{Name: "id", Text: "L1"},
			{Name: "nickname", Text: "coin_slot"},
			{Name: "invariant", Text: "x <= 5"},
		}},
		{Kind: KindLocation, Path: "B/L2", Fields: []Field{
			{Name: "id", Text: "L2"},
			{Name: "invariant", Text: "y <= 5"},
		}},
	}
}

func paths(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Entry.Path
	}
	return out
}
