// Package parseerr defines the errors raised while turning a token
// event stream into dump records.
//
// Every error is an *Error carrying a Kind. Use errors.Is with the
// Err* sentinels, or KindOf, to branch on the kind of failure after
// wrapping.
package parseerr
