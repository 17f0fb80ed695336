package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const keywordColumns = `k.id, k.business_id, b.name, k.keyword, k.is_case_sensitive,
    k.match_kind, k.usage_count, k.last_used, k.created_at`

const keywordFrom = ` FROM keywords k JOIN businesses b ON b.id = k.business_id `

func scanKeyword(row interface{ Scan(...any) error }) (*Keyword, error) {
	var (
		k             Keyword
		caseSensitive int64
		kind          string
		lastUsed      sql.NullString
		createdAt     string
	)
	if err := row.Scan(&k.ID, &k.BusinessID, &k.BusinessName, &k.Text, &caseSensitive,
		&kind, &k.UsageCount, &lastUsed, &createdAt); err != nil {
		return nil, err
	}
	k.CaseSensitive = caseSensitive != 0
	k.Kind = MatchKind(kind)
	k.LastUsed = nullableTimestamp(lastUsed)
	k.CreatedAt = parseTimestamp(createdAt)
	return &k, nil
}

// InsertKeyword adds a keyword for an existing business. Uniqueness is
// case-insensitive within the business; violations surface as ErrKeywordExists.
func (s *Store) InsertKeyword(ctx context.Context, businessID int64, text string, caseSensitive bool, kind MatchKind) (*Keyword, error) {
	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO keywords (business_id, keyword, is_case_sensitive, match_kind, created_at) VALUES (?, ?, ?, ?, ?)`,
		businessID, text, boolToInt(caseSensitive), kind, nowTimestamp(),
	)
	if err != nil {
		if isConstraintViolation(err) {
			return nil, ErrKeywordExists
		}
		return nil, fmt.Errorf("insert keyword: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.KeywordByID(ctx, id)
}

// KeywordByID fetches a keyword by identifier. Returns (nil, nil) when absent.
func (s *Store) KeywordByID(ctx context.Context, id int64) (*Keyword, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+keywordColumns+keywordFrom+`WHERE k.id = ?`, id)
	keyword, err := scanKeyword(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get keyword: %w", err)
	}
	return keyword, nil
}

// KeywordByText fetches a business's keyword by text, compared
// case-insensitively. Returns (nil, nil) when absent.
func (s *Store) KeywordByText(ctx context.Context, businessID int64, text string) (*Keyword, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+keywordColumns+keywordFrom+`WHERE k.business_id = ? AND lower(k.keyword) = lower(?)`,
		businessID, text,
	)
	keyword, err := scanKeyword(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get keyword by text: %w", err)
	}
	return keyword, nil
}

// Keywords returns every keyword joined with its business name, ordered by id
// so the matcher's exact phase enumerates in a stable order.
func (s *Store) Keywords(ctx context.Context) ([]*Keyword, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+keywordColumns+keywordFrom+`ORDER BY k.id`)
	if err != nil {
		return nil, fmt.Errorf("list keywords: %w", err)
	}
	return collectKeywords(rows)
}

// KeywordsForBusiness returns the keywords owned by one business, ordered by id.
func (s *Store) KeywordsForBusiness(ctx context.Context, businessID int64) ([]*Keyword, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+keywordColumns+keywordFrom+`WHERE k.business_id = ? ORDER BY k.id`,
		businessID,
	)
	if err != nil {
		return nil, fmt.Errorf("list business keywords: %w", err)
	}
	return collectKeywords(rows)
}

// KeywordsForBusinessNames returns the keywords owned by the named businesses,
// ordered by keyword id. Unknown names contribute nothing.
func (s *Store) KeywordsForBusinessNames(ctx context.Context, names []string) ([]*Keyword, error) {
	if len(names) == 0 {
		return nil, nil
	}
	placeholders := make([]byte, 0, len(names)*2)
	args := make([]any, 0, len(names))
	for i, name := range names {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
		args = append(args, name)
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+keywordColumns+keywordFrom+`WHERE b.name IN (`+string(placeholders)+`) ORDER BY k.id`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("list keywords for businesses: %w", err)
	}
	return collectKeywords(rows)
}

func collectKeywords(rows *sql.Rows) ([]*Keyword, error) {
	defer rows.Close()

	var keywords []*Keyword
	for rows.Next() {
		keyword, err := scanKeyword(rows)
		if err != nil {
			return nil, fmt.Errorf("scan keyword: %w", err)
		}
		keywords = append(keywords, keyword)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate keywords: %w", err)
	}
	return keywords, nil
}

// KeywordCount returns the number of keywords a business owns.
func (s *Store) KeywordCount(ctx context.Context, businessID int64) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM keywords WHERE business_id = ?`, businessID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count keywords: %w", err)
	}
	return count, nil
}

// DeleteKeywordCascade removes a keyword and, when it was the business's last
// keyword, the business itself. Both deletions happen in one transaction so
// the pair is observable as a single logical event. The returned flag reports
// whether the business was removed too.
func (s *Store) DeleteKeywordCascade(ctx context.Context, keywordID, businessID int64) (bool, error) {
	businessDeleted := false
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM keywords WHERE id = ? AND business_id = ?`, keywordID, businessID)
		if err != nil {
			return fmt.Errorf("delete keyword: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return ErrKeywordNotFound
		}

		var remaining int64
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM keywords WHERE business_id = ?`, businessID).Scan(&remaining); err != nil {
			return fmt.Errorf("count remaining keywords: %w", err)
		}
		if remaining > 0 {
			return nil
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM businesses WHERE id = ?`, businessID); err != nil {
			return fmt.Errorf("delete emptied business: %w", err)
		}
		businessDeleted = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return businessDeleted, nil
}
