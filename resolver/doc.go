// Package resolver recovers the true figure-number reference from a
// corrupted caption fragment.
//
// OCR and layout-recovery pipelines frequently glue trailing noise onto a
// figure identifier: a caption reading "图2 2015-2016年增长率" can surface as
// the fragment "图22015-2016". The resolver trims the fragment from the
// right, one character at a time, and tests each shorter candidate against
// the rest of the document. A candidate survives when it occurs inside a
// recognized figure-caption form (such as "图2", "Figure 3.1" or "Fig. 4-2")
// in a paragraph that does not itself contain the image. When several
// candidates survive, the one whose digits are numerically closest to the
// image's own sequence index wins; ties go to the longer candidate.
//
// Resolution returns an explicit [Resolution] value rather than mutating the
// input record, so callers decide when to overwrite their own data.
// [Resolution.Apply] performs the overwrite for callers that want the
// in-place contract.
package resolver
