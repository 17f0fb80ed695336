package catalog

import (
	"errors"
	"strings"
)

// Sentinel errors for expected catalog rule violations. Callers distinguish
// these from infrastructure failures with errors.Is; anything else coming out
// of the store is a storage failure the caller must treat as non-recoverable
// for the current operation.
var (
	ErrBusinessExists   = errors.New("business already exists")
	ErrKeywordExists    = errors.New("keyword already exists for business")
	ErrBusinessNotFound = errors.New("business not found")
	ErrKeywordNotFound  = errors.New("keyword not found")
)

// IsRuleViolation reports whether err is one of the expected catalog rule
// violations rather than a storage failure.
func IsRuleViolation(err error) bool {
	return errors.Is(err, ErrBusinessExists) ||
		errors.Is(err, ErrKeywordExists) ||
		errors.Is(err, ErrBusinessNotFound) ||
		errors.Is(err, ErrKeywordNotFound)
}

const (
	sqliteConstraintCode       = 19
	sqliteConstraintUniqueCode = 2067
)

func isConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) {
		switch coder.Code() {
		case sqliteConstraintCode, sqliteConstraintUniqueCode:
			return true
		}
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
