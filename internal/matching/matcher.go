package matching

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"vendormatch/internal/catalog"
	"vendormatch/internal/config"
	"vendormatch/internal/logging"
	"vendormatch/internal/similarity"
)

// caseMismatchPenalty scales confidence whenever a case-sensitive keyword is
// matched without respecting its case. It applies to both phases: an exact
// case-insensitive hit scores 0.8 flat, a fuzzy hit scores rawScore × 0.8.
const caseMismatchPenalty = 0.8

// Match is the outcome of a successful lookup.
type Match struct {
	Business string
	Keyword  string
	// KeywordID identifies the winning keyword so callers can record usage
	// after accepting the match.
	KeywordID  int64
	Kind       catalog.MatchKind
	Confidence float64
}

// Matcher resolves free-form text fragments to catalog businesses. Matching is
// a pure query: state never changes and no usage is recorded.
type Matcher struct {
	store        *catalog.Store
	oracle       similarity.Oracle
	logger       *slog.Logger
	fuzzyEnabled bool
}

// New builds a matcher over the given store and oracle. A nil oracle disables
// the fuzzy phase, as does matching.fuzzy_enabled=false in the config.
func New(store *catalog.Store, oracle similarity.Oracle, cfg *config.Config, logger *slog.Logger) *Matcher {
	fuzzyEnabled := oracle != nil
	if cfg != nil && !cfg.Matching.FuzzyEnabled {
		fuzzyEnabled = false
	}
	return &Matcher{
		store:        store,
		oracle:       oracle,
		logger:       logging.NewComponentLogger(logger, "matcher"),
		fuzzyEnabled: fuzzyEnabled,
	}
}

// Match resolves text against the whole catalog.
func (m *Matcher) Match(ctx context.Context, text string) (*Match, error) {
	keywords, err := m.store.Keywords(ctx)
	if err != nil {
		return nil, fmt.Errorf("load keywords: %w", err)
	}
	return m.match(text, keywords), nil
}

// MatchAmong resolves text against the keywords of the named businesses only.
func (m *Matcher) MatchAmong(ctx context.Context, text string, businessNames []string) (*Match, error) {
	keywords, err := m.store.KeywordsForBusinessNames(ctx, businessNames)
	if err != nil {
		return nil, fmt.Errorf("load keywords for businesses: %w", err)
	}
	return m.match(text, keywords), nil
}

// match runs the two-phase algorithm: exact identity beats any similarity
// score, so the exact phase always completes before the oracle is consulted.
func (m *Matcher) match(text string, keywords []*catalog.Keyword) *Match {
	requestID := uuid.NewString()
	input := strings.TrimSpace(text)
	if input == "" || len(keywords) == 0 {
		return nil
	}

	if match := m.exactPhase(input, keywords); match != nil {
		m.logger.Debug("exact match",
			slog.String("request_id", requestID),
			slog.String("business", match.Business),
			slog.Float64("confidence", match.Confidence))
		return match
	}

	match := m.fuzzyPhase(input, keywords, requestID)
	if match != nil {
		m.logger.Debug("fuzzy match",
			slog.String("request_id", requestID),
			slog.String("business", match.Business),
			slog.Float64("confidence", match.Confidence))
	}
	return match
}

// exactPhase scans keywords in enumeration order and stops at the first
// case-insensitive equality. Case-sensitive keywords score 1.0 only when the
// input case matches exactly.
func (m *Matcher) exactPhase(input string, keywords []*catalog.Keyword) *Match {
	for _, kw := range keywords {
		kwText := strings.TrimSpace(kw.Text)
		if !strings.EqualFold(input, kwText) {
			continue
		}
		confidence := 1.0
		if kw.CaseSensitive && input != kwText {
			confidence = caseMismatchPenalty
		}
		return &Match{
			Business:   kw.BusinessName,
			Keyword:    kw.Text,
			KeywordID:  kw.ID,
			Kind:       catalog.MatchKindExact,
			Confidence: confidence,
		}
	}
	return nil
}

// fuzzyPhase consults the oracle with the case-folded candidate set. Folding
// rather than lowercasing keeps non-ASCII keywords comparable ("STRAẞE" and
// "strasse" fold to the same string). Oracle failures and malformed results
// degrade to "no match" so exact matching stays usable when the approximate
// layer is down.
func (m *Matcher) fuzzyPhase(input string, keywords []*catalog.Keyword, requestID string) *Match {
	if !m.fuzzyEnabled || m.oracle == nil {
		return nil
	}

	candidates := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		candidates = append(candidates, catalog.Fold(strings.TrimSpace(kw.Text)))
	}

	best, err := m.oracle.BestMatch(catalog.Fold(input), candidates)
	if err != nil {
		m.logger.Warn("similarity oracle unavailable, skipping fuzzy phase",
			slog.String("request_id", requestID),
			logging.Error(err))
		return nil
	}
	if best == nil || strings.TrimSpace(best.Candidate) == "" {
		return nil
	}
	if best.Score < 0 || best.Score > 1 {
		m.logger.Warn("similarity oracle returned malformed score",
			slog.String("request_id", requestID),
			slog.Float64("score", best.Score))
		return nil
	}

	for _, kw := range keywords {
		if catalog.Fold(strings.TrimSpace(kw.Text)) != best.Candidate {
			continue
		}
		confidence := best.Score
		if kw.CaseSensitive {
			confidence *= caseMismatchPenalty
		}
		return &Match{
			Business:   kw.BusinessName,
			Keyword:    kw.Text,
			KeywordID:  kw.ID,
			Kind:       catalog.MatchKindFuzzy,
			Confidence: confidence,
		}
	}

	// The oracle returned a candidate that maps to no keyword; treat as no match.
	m.logger.Warn("similarity oracle candidate not found in catalog",
		slog.String("request_id", requestID),
		slog.String("candidate", best.Candidate))
	return nil
}
