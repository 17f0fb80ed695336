package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"vendormatch/internal/catalog"
	"vendormatch/internal/logging"
)

// Summary is the catalog-wide statistics report.
type Summary struct {
	TotalBusinesses int64
	TotalKeywords   int64
	TotalUsage      int64
	// KeywordEfficiency is the share of businesses with at least one used
	// keyword, as a percentage rounded to one decimal place. Zero when the
	// catalog holds no businesses.
	KeywordEfficiency float64
}

// Aggregator tracks keyword usage and computes catalog statistics. Every query
// re-reads current store state; nothing is cached between calls.
type Aggregator struct {
	store  *catalog.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewAggregator builds an aggregator over the given store.
func NewAggregator(store *catalog.Store, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		store:  store,
		logger: logging.NewComponentLogger(logger, "stats"),
		now:    time.Now,
	}
}

// RecordUsage increments the usage counter of a business's keyword and stamps
// it with the current time. ok is false when the business or keyword does not
// exist; the caller typically invokes this right after accepting a match.
func (a *Aggregator) RecordUsage(ctx context.Context, businessName, keywordText string) (bool, error) {
	business, err := a.store.BusinessByName(ctx, businessName)
	if err != nil {
		return false, fmt.Errorf("record usage: %w", err)
	}
	if business == nil {
		return false, nil
	}

	keyword, err := a.store.KeywordByText(ctx, business.ID, keywordText)
	if err != nil {
		return false, fmt.Errorf("record usage: %w", err)
	}
	if keyword == nil {
		return false, nil
	}

	return a.recordByID(ctx, keyword.ID)
}

// RecordUsageByID increments the usage counter of a keyword by identifier,
// for callers that kept the id from a match result.
func (a *Aggregator) RecordUsageByID(ctx context.Context, keywordID int64) (bool, error) {
	return a.recordByID(ctx, keywordID)
}

func (a *Aggregator) recordByID(ctx context.Context, keywordID int64) (bool, error) {
	usedAt := a.now()
	if err := a.store.RecordUsage(ctx, keywordID, usedAt); err != nil {
		if errors.Is(err, catalog.ErrKeywordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("record usage: %w", err)
	}
	a.logger.Debug("usage recorded", slog.Int64("keyword_id", keywordID))
	return true, nil
}

// Summary computes totals and the keyword efficiency metric from current state.
func (a *Aggregator) Summary(ctx context.Context) (*Summary, error) {
	usage, err := a.store.UsageSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}

	summary := &Summary{
		TotalBusinesses: usage.TotalBusinesses,
		TotalKeywords:   usage.TotalKeywords,
		TotalUsage:      usage.TotalUsage,
	}
	if usage.TotalBusinesses > 0 {
		ratio := float64(usage.BusinessesWithUsage) / float64(usage.TotalBusinesses)
		summary.KeywordEfficiency = math.Round(ratio*1000) / 10
	}
	return summary, nil
}

// MostUsed ranks keywords by usage count descending, ties broken by the most
// recent last_used with never-used keywords last.
func (a *Aggregator) MostUsed(ctx context.Context, limit int) ([]*catalog.Keyword, error) {
	return a.store.MostUsedKeywords(ctx, limit)
}
