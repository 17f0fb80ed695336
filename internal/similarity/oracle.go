package similarity

// Match is a scored candidate returned by an Oracle.
type Match struct {
	Candidate string
	// Score is the similarity between the query and the candidate in [0,1].
	Score float64
}

// Oracle picks the single best candidate for a query string. A nil Match means
// no candidate cleared the oracle's acceptance bar. Implementations must be
// deterministic for a given (query, candidates) pair.
type Oracle interface {
	BestMatch(query string, candidates []string) (*Match, error)
}
