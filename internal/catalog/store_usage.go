package catalog

import (
	"context"
	"fmt"
	"time"
)

// RecordUsage increments a keyword's usage counter and stamps last_used with
// the provided time. One UPDATE statement, so concurrent callers cannot lose
// increments. Returns ErrKeywordNotFound when no row matched.
func (s *Store) RecordUsage(ctx context.Context, keywordID int64, usedAt time.Time) error {
	res, err := s.execWithRetry(
		ctx,
		`UPDATE keywords SET usage_count = usage_count + 1, last_used = ? WHERE id = ?`,
		usedAt.UTC().Format(time.RFC3339Nano), keywordID,
	)
	if err != nil {
		return fmt.Errorf("record usage: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrKeywordNotFound
	}
	return nil
}

// UsageSummary aggregates catalog-wide counters in one pass over current state.
func (s *Store) UsageSummary(ctx context.Context) (*UsageSummary, error) {
	summary := &UsageSummary{}

	row := s.db.QueryRowContext(ctx, `
        SELECT
            (SELECT COUNT(1) FROM businesses),
            (SELECT COUNT(1) FROM keywords),
            (SELECT COALESCE(SUM(usage_count), 0) FROM keywords),
            (SELECT COUNT(DISTINCT business_id) FROM keywords WHERE usage_count > 0)`)
	if err := row.Scan(
		&summary.TotalBusinesses,
		&summary.TotalKeywords,
		&summary.TotalUsage,
		&summary.BusinessesWithUsage,
	); err != nil {
		return nil, fmt.Errorf("usage summary: %w", err)
	}
	return summary, nil
}

// MostUsedKeywords ranks keywords by usage count descending. Ties fall back to
// the most recent last_used (nulls last), then keyword text for stability.
func (s *Store) MostUsedKeywords(ctx context.Context, limit int) ([]*Keyword, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+keywordColumns+keywordFrom+`
        ORDER BY k.usage_count DESC, k.last_used IS NULL, k.last_used DESC, k.keyword
        LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("most used keywords: %w", err)
	}
	return collectKeywords(rows)
}
