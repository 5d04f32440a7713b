package domain

// ItemKind distinguishes the two searchable content kinds.
type ItemKind string

const (
	KindNote     ItemKind = "note"
	KindDocument ItemKind = "document"
)

// ScoredItem is one search candidate, already scored and ranked by the
// backend. Similarity is in [0,1]. Immutable once received: the client
// composes result sets but never recomputes scores.
type ScoredItem struct {
	ID         int       `json:"id"`
	Kind       ItemKind  `json:"type"`
	Title      string    `json:"title"`
	Similarity float64   `json:"similarity"`
	Tags       []string  `json:"tags,omitempty"`
	Summary    string    `json:"summary,omitempty"`
	UpdatedAt  Timestamp `json:"updated_at,omitempty"`
	CreatedAt  Timestamp `json:"created_at,omitempty"`
}

// SearchResult is one composed result set. Built fresh per search call,
// never cached across queries. Kinds stay partitioned; within each kind the
// backend's descending-similarity order is preserved verbatim.
type SearchResult struct {
	Query         string       `json:"query"`
	AIBoost       bool         `json:"ai_boost"`
	ExpandedTerms []string     `json:"expanded_terms"`
	Notes         []ScoredItem `json:"notes"`
	Documents     []ScoredItem `json:"documents"`
	Total         int          `json:"total"`
}

// Empty reports the valid no-results terminal state: both kinds empty.
func (r SearchResult) Empty() bool {
	return len(r.Notes) == 0 && len(r.Documents) == 0
}
