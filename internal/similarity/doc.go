// Package similarity defines the approximate string matching contract the
// keyword matcher consumes, plus a default implementation built on
// Sørensen–Dice bigram similarity.
//
// The matcher depends only on the Oracle interface; swapping in a different
// scoring backend never touches matching logic.
package similarity
