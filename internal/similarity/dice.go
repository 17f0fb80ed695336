package similarity

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// DiceOracle scores candidates with Sørensen–Dice bigram similarity. It is the
// default oracle wired into the CLI; callers with their own scoring service
// can substitute any Oracle implementation.
type DiceOracle struct {
	metric    *metrics.SorensenDice
	threshold float64
}

// NewDiceOracle builds an oracle that accepts candidates scoring at or above
// threshold. Out-of-range thresholds are clamped into [0,1].
func NewDiceOracle(threshold float64) *DiceOracle {
	if threshold < 0 {
		threshold = 0
	}
	if threshold > 1 {
		threshold = 1
	}
	metric := metrics.NewSorensenDice()
	metric.CaseSensitive = true
	metric.NgramSize = 2
	return &DiceOracle{metric: metric, threshold: threshold}
}

// BestMatch returns the highest-scoring candidate at or above the threshold,
// or nil when none qualifies. Blank candidates are skipped; the first of two
// equally scored candidates wins, so candidate order decides exact ties.
func (o *DiceOracle) BestMatch(query string, candidates []string) (*Match, error) {
	query = strings.TrimSpace(query)
	if query == "" || len(candidates) == 0 {
		return nil, nil
	}

	best := (*Match)(nil)
	for _, candidate := range candidates {
		if strings.TrimSpace(candidate) == "" {
			continue
		}
		score := strutil.Similarity(query, candidate, o.metric)
		if score < 0 {
			score = 0
		}
		if score > 1 {
			score = 1
		}
		if score < o.threshold {
			continue
		}
		if best == nil || score > best.Score {
			best = &Match{Candidate: candidate, Score: score}
		}
	}
	return best, nil
}
