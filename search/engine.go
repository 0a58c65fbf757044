package search

import (
	"fmt"
	"slices"
	"strings"
)

// nameFields identify an entry rather than label it and score higher.
var nameFields = map[string]bool{"id": true, "nickname": true}

// Engine implements Searcher over a Provider.
type Engine struct {
	provider Provider
}

// NewEngine creates a search engine reading entries from provider.
func NewEngine(provider Provider) *Engine {
	return &Engine{provider: provider}
}

// Search returns the matching entries, best first. Entries with equal
// scores keep provider order.
func (e *Engine) Search(options Options) ([]Result, error) {
	if options.Query == "" {
		return []Result{}, nil
	}

	entries, err := e.provider.Entries()
	if err != nil {
		return nil, fmt.Errorf("failed to get entries: %w", err)
	}

	results := []Result{}
	for _, entry := range entries {
		if result := e.searchEntry(entry, options); result != nil {
			results = append(results, *result)
		}
	}

	slices.SortStableFunc(results, func(a, b Result) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})

	if options.MaxResults > 0 && len(results) > options.MaxResults {
		results = results[:options.MaxResults]
	}
	return results, nil
}

func (e *Engine) searchEntry(entry Entry, options Options) *Result {
	startMarker := options.HighlightStartMarker
	endMarker := options.HighlightEndMarker
	if startMarker == "" {
		startMarker = "**"
	}
	if endMarker == "" {
		endMarker = "**"
	}

	var fieldMatches []FieldMatch
	var best MatchType
	var maxScore float64
	for _, field := range entry.Fields {
		if len(options.Fields) > 0 && !slices.Contains(options.Fields, field.Name) {
			continue
		}
		fm := e.searchField(field, options, startMarker, endMarker)
		if fm == nil {
			continue
		}
		fieldMatches = append(fieldMatches, *fm)
		if fm.FieldScore > maxScore {
			maxScore = fm.FieldScore
			best = fm.Matches[0].MatchType
		}
	}
	if len(fieldMatches) == 0 {
		return nil
	}

	result := &Result{
		Entry:         entry,
		Score:         maxScore,
		MatchType:     best,
		MatchedFields: make([]string, 0, len(fieldMatches)),
	}
	if options.IncludeMatchDetails {
		result.FieldMatches = fieldMatches
	}
	if options.EnableHighlight {
		result.Highlights = make(map[string]string, len(fieldMatches))
	}
	for _, fm := range fieldMatches {
		result.MatchedFields = append(result.MatchedFields, fm.FieldName)
		if options.EnableHighlight {
			result.Highlights[fm.FieldName] = fm.HighlightedText
		}
	}
	return result
}

func (e *Engine) searchField(field Field, options Options, startMarker, endMarker string) *FieldMatch {
	matches := e.findMatches(field, options)
	if len(matches) == 0 {
		return nil
	}

	var score float64
	for _, m := range matches {
		score = max(score, m.Score)
	}

	highlighted := field.Text
	if options.EnableHighlight {
		highlighted = highlight(field.Text, matches, startMarker, endMarker)
	}
	return &FieldMatch{
		FieldName:       field.Name,
		OriginalText:    field.Text,
		HighlightedText: highlighted,
		Matches:         matches,
		FieldScore:      score,
	}
}

// calculateScore rates a substring match of query in text, counting in
// tenths so scores compare exactly.
func calculateScore(text, query string, name bool) float64 {
	points := 5
	if name {
		points = 8
	}
	if strings.HasPrefix(text, query) {
		points += 2
	}
	if 2*len(query) > len(text) {
		points++
	}
	return float64(min(points, 10)) / 10
}

func (e *Engine) findMatches(field Field, options Options) []MatchInfo {
	text, query := field.Text, options.Query
	if !options.CaseSensitive {
		text, query = fold(text), fold(query)
	}
	name := nameFields[field.Name]

	if options.ExactMatch {
		if text != query {
			return nil
		}
		mt := MatchExactLabel
		if name {
			mt = MatchExactName
		}
		return []MatchInfo{{Start: 0, End: len(field.Text), Text: field.Text, Score: 1.0, MatchType: mt}}
	}

	mt := MatchPartialLabel
	if name {
		mt = MatchPartialName
	}
	score := calculateScore(text, query, name)

	var matches []MatchInfo
	for i := 0; i+len(query) <= len(text); {
		j := strings.Index(text[i:], query)
		if j < 0 {
			break
		}
		start, end := i+j, i+j+len(query)
		matches = append(matches, MatchInfo{
			Start:     start,
			End:       end,
			Text:      field.Text[start:end],
			Score:     score,
			MatchType: mt,
		})
		i = end
	}
	return matches
}

// highlight wraps every match in markers. Matches must be ordered and
// disjoint.
func highlight(text string, matches []MatchInfo, startMarker, endMarker string) string {
	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m.Start])
		b.WriteString(startMarker)
		b.WriteString(text[m.Start:m.End])
		b.WriteString(endMarker)
		last = m.End
	}
	b.WriteString(text[last:])
	return b.String()
}

// fold lower-cases ASCII letters only, so byte offsets into the folded
// string are valid in the original.
func fold(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
