// Package matching resolves OCR text fragments to catalog businesses.
//
// The algorithm is deterministic and two-phase: an exact phase compares the
// input against every keyword ignoring case and stops at the first hit, and a
// fuzzy phase consults the similarity oracle only when the exact phase found
// nothing. Case-sensitive keywords matched without their exact case take a
// fixed 0.8 confidence penalty in either phase.
//
// Matching never mutates the catalog; recording usage for an accepted match is
// the stats package's job.
package matching
