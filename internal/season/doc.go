// Package season encodes the NFL season calendar and week normalization.
//
// The regular-season length and the position of each playoff round have
// changed several times since 1961 (expansion to 16 and then 17 and 18
// games, strike-shortened 1982 and 1987, the bye-week experiments of 1993
// and 2001, the wild-card round added in 1978). This package is the single
// source of truth for those rules, and converts raw week designators
// (numeric weeks or playoff round names) into canonical 1-indexed week
// numbers.
package season
