package search

// Options configures a search.
type Options struct {
	// Query is the text to look for
	Query string

	// Fields restricts the search to these field names, e.g. "sync" or
	// "guard". Empty searches every field.
	Fields []string

	// CaseSensitive controls whether search is case-sensitive
	CaseSensitive bool

	// ExactMatch requires the entire field to equal the query
	ExactMatch bool

	// EnableHighlight fills Result.Highlights
	EnableHighlight bool

	// Markers placed around highlighted matches; both default to "**"
	HighlightStartMarker string
	HighlightEndMarker   string

	// IncludeMatchDetails fills Result.FieldMatches
	IncludeMatchDetails bool

	// MaxResults limits the number of results; 0 means no limit
	MaxResults int
}

// Kind names what an entry describes.
type Kind string

const (
	KindProject   Kind = "project"
	KindComponent Kind = "component"
	KindLocation  Kind = "location"
	KindEdge      Kind = "edge"
	KindSystem    Kind = "system"
)

// Field is one searchable text of an entry.
type Field struct {
	Name string
	Text string
}

// Entry is a searchable model element. Path locates it, e.g. "Machine/E25".
type Entry struct {
	Kind   Kind
	Path   string
	Fields []Field
}

// Result is a matching entry with its relevance.
type Result struct {
	Entry Entry

	// Score is in (0, 1], higher is better
	Score float64

	// MatchType of the best scoring field
	MatchType MatchType

	// MatchedFields lists the fields that matched, in entry order
	MatchedFields []string

	// Highlights maps field name to text with match markers
	Highlights map[string]string

	FieldMatches []FieldMatch
}

// MatchType tells names from labels and whole-field from partial matches.
type MatchType string

const (
	MatchExactName    MatchType = "exact_name"
	MatchPartialName  MatchType = "partial_name"
	MatchExactLabel   MatchType = "exact_label"
	MatchPartialLabel MatchType = "partial_label"
)

// FieldMatch details the matches inside one field.
type FieldMatch struct {
	FieldName       string
	OriginalText    string
	HighlightedText string
	Matches         []MatchInfo
	FieldScore      float64
}

// MatchInfo is a single occurrence; Start and End are byte offsets.
type MatchInfo struct {
	Start     int
	End       int
	Text      string
	Score     float64
	MatchType MatchType
}

// Provider supplies the entries to search.
type Provider interface {
	Entries() ([]Entry, error)
}

// Searcher is implemented by Engine.
type Searcher interface {
	Search(options Options) ([]Result, error)
}
