// Package stats records keyword usage and aggregates catalog statistics such
// as total usage and keyword efficiency. It derives everything from store
// state at query time and holds no counters of its own.
package stats
