package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const businessColumns = "id, name, case_sensitive, created_at, updated_at"

func scanBusiness(row interface{ Scan(...any) error }) (*Business, error) {
	var (
		b             Business
		caseSensitive int64
		createdAt     string
		updatedAt     string
	)
	if err := row.Scan(&b.ID, &b.Name, &caseSensitive, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	b.CaseSensitive = caseSensitive != 0
	b.CreatedAt = parseTimestamp(createdAt)
	b.UpdatedAt = parseTimestamp(updatedAt)
	return &b, nil
}

// CreateBusiness inserts a business together with its implicit default keyword:
// a non-case-sensitive exact alias equal to the business name. Both rows are
// written in one transaction so a business never exists without a keyword.
// Returns ErrBusinessExists when the exact name is already taken.
func (s *Store) CreateBusiness(ctx context.Context, name string) (*Business, error) {
	timestamp := nowTimestamp()

	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(
			ctx,
			`INSERT INTO businesses (name, case_sensitive, created_at, updated_at) VALUES (?, 0, ?, ?)`,
			name, timestamp, timestamp,
		)
		if err != nil {
			if isConstraintViolation(err) {
				return ErrBusinessExists
			}
			return fmt.Errorf("insert business: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO keywords (business_id, keyword, is_case_sensitive, match_kind, created_at) VALUES (?, ?, 0, ?, ?)`,
			id, name, MatchKindExact, timestamp,
		); err != nil {
			return fmt.Errorf("insert default keyword: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.BusinessByID(ctx, id)
}

// BusinessByID fetches a business by identifier. Returns (nil, nil) when absent.
func (s *Store) BusinessByID(ctx context.Context, id int64) (*Business, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+businessColumns+` FROM businesses WHERE id = ?`, id)
	business, err := scanBusiness(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get business: %w", err)
	}
	return business, nil
}

// BusinessByName fetches a business by its exact, case-sensitive display name.
// Returns (nil, nil) when absent.
func (s *Store) BusinessByName(ctx context.Context, name string) (*Business, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+businessColumns+` FROM businesses WHERE name = ?`, name)
	business, err := scanBusiness(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get business by name: %w", err)
	}
	return business, nil
}

// Businesses returns every business ordered by id for stable enumeration.
func (s *Store) Businesses(ctx context.Context) ([]*Business, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+businessColumns+` FROM businesses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}
	defer rows.Close()

	var businesses []*Business
	for rows.Next() {
		business, err := scanBusiness(rows)
		if err != nil {
			return nil, fmt.Errorf("scan business: %w", err)
		}
		businesses = append(businesses, business)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate businesses: %w", err)
	}
	return businesses, nil
}

// DeleteBusiness removes a business; the foreign key cascade removes its
// keywords in the same statement. Returns ErrBusinessNotFound when no row
// matched.
func (s *Store) DeleteBusiness(ctx context.Context, id int64) error {
	res, err := s.execWithRetry(ctx, `DELETE FROM businesses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete business: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrBusinessNotFound
	}
	return nil
}

// UpdateBusinessAndKeyword renames a business and rewrites one of its keywords
// in a single transaction. Either both changes commit or neither does.
// Name collisions surface as ErrBusinessExists, keyword collisions as
// ErrKeywordExists.
func (s *Store) UpdateBusinessAndKeyword(ctx context.Context, businessID int64, newName string, keywordID int64, newText string, caseSensitive bool, kind MatchKind) error {
	timestamp := nowTimestamp()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(
			ctx,
			`UPDATE businesses SET name = ?, updated_at = ? WHERE id = ?`,
			newName, timestamp, businessID,
		)
		if err != nil {
			if isConstraintViolation(err) {
				return ErrBusinessExists
			}
			return fmt.Errorf("update business name: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return ErrBusinessNotFound
		}

		res, err = tx.ExecContext(
			ctx,
			`UPDATE keywords SET keyword = ?, is_case_sensitive = ?, match_kind = ? WHERE id = ? AND business_id = ?`,
			newText, boolToInt(caseSensitive), kind, keywordID, businessID,
		)
		if err != nil {
			if isConstraintViolation(err) {
				return ErrKeywordExists
			}
			return fmt.Errorf("update keyword: %w", err)
		}
		affected, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return ErrKeywordNotFound
		}
		return nil
	})
}

func boolToInt(value bool) int64 {
	if value {
		return 1
	}
	return 0
}
