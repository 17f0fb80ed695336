// Package catalog persists businesses and their keyword aliases in SQLite and
// exposes the queries the matcher, lifecycle manager, and analytics layers run.
//
// The Store manages the database connection, schema initialization, a
// single-writer lock file, and busy retries. Businesses own their keywords:
// the schema enforces a cascading foreign key and case-insensitive keyword
// uniqueness per business, while the higher lifecycle rules (implicit default
// keyword, last-keyword cascade) live in the mapping package.
//
// Treat this package as the single source of truth for catalog state; callers
// must not cache rows across calls. Schema changes bump the version in
// schema.go; users clear the database to adopt the new schema.
package catalog
