// Package document prepares OCR-derived markdown for figure-reference
// analysis.
//
// Documents arrive as markdown produced by PDF-to-markdown conversion, which
// leaves three kinds of interference behind: "list of figures" sections whose
// entries look exactly like captions, HTML table markup embedded in the text,
// and character-level OCR noise (a letter "o" read in place of a trailing
// zero, full-width digits, 一 standing in for a dash between digits).
// [Preprocess] removes all three.
//
// The package also segments cleaned content into [model.Paragraph] records
// with 1-based source line ranges, which downstream packages use as the
// search space for caption and reference lookups.
package document
