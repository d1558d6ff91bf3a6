// Package stats provides post-run diagnostics over serialized image context
// files: classification tallies across a corpus, and random sampling of
// books with ambiguous caption assignments for manual review.
package stats
