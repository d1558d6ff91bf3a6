// Package model provides the shared data structures for figure-reference
// extraction.
//
// This package defines the user-facing types produced by the extraction
// pipeline. All preprocessing, caption discovery, and reference resolution
// operations ultimately produce these types, making them the primary API for
// consuming extracted content.
//
// # Document structure
//
// A markdown document is segmented into [Paragraph] records, each tracking
// the 1-based line range it occupies in the source. Paragraph records are the
// search space for every reference lookup.
//
// # Image context
//
// Each image marker found in a document yields an [ImageContext]: the marker
// position, its surrounding text, nearby captions, a [Classification], and
// the [CaptionReference] entries that tie captions to in-text citations.
//
// # References
//
// A [CaptionReference] groups the [Reference] occurrences found for one
// caption. Each Reference pins the matched text to a source line through its
// [MatchLineInfo].
package model
