package catalog

import (
	"fmt"
	"strings"
	"time"
)

// MatchKind tags the matching strategy a keyword was created for. The tag is
// descriptive metadata: the matcher always runs its exact phase before its
// fuzzy phase regardless of the stored kind.
type MatchKind string

const (
	MatchKindExact MatchKind = "exact"
	MatchKindFuzzy MatchKind = "fuzzy"
)

// ParseMatchKind validates a user-supplied match kind string.
func ParseMatchKind(value string) (MatchKind, error) {
	switch MatchKind(strings.ToLower(strings.TrimSpace(value))) {
	case MatchKindExact:
		return MatchKindExact, nil
	case MatchKindFuzzy:
		return MatchKindFuzzy, nil
	default:
		return "", fmt.Errorf("match kind: unsupported value %q", value)
	}
}

// Business is a named commercial entity to be recognized in text.
type Business struct {
	ID   int64
	Name string
	// CaseSensitive is reserved for default-keyword generation policy; it does
	// not affect matching of existing keywords.
	CaseSensitive bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Keyword is an alias string used to recognize its owning business.
type Keyword struct {
	ID            int64
	BusinessID    int64
	BusinessName  string
	Text          string
	CaseSensitive bool
	Kind          MatchKind
	UsageCount    int64
	LastUsed      *time.Time
	CreatedAt     time.Time
}

// UsageSummary aggregates catalog-wide usage counters.
type UsageSummary struct {
	TotalBusinesses int64
	TotalKeywords   int64
	TotalUsage      int64
	// BusinessesWithUsage counts businesses owning at least one keyword with a
	// positive usage count.
	BusinessesWithUsage int64
}
