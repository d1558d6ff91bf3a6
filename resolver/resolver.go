package resolver

import (
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/tsawler/figref/model"
)

const (
	// minDigitRun is the run of consecutive digits a fragment must contain
	// before resolution is attempted. Fragments with shorter runs are either
	// already well-formed figure numbers or too short to disambiguate, and
	// trimming them risks false positives.
	minDigitRun = 3

	// patternWindow is the number of characters inspected from each
	// candidate occurrence onward when validating the figure-caption form.
	patternWindow = 20
)

// Resolution is the outcome of a successful reference search.
type Resolution struct {
	// CaptionPart is the corrected caption fragment: a right-truncated
	// prefix of the fragment that was resolved.
	CaptionPart string

	// References are the accepted in-text occurrences of CaptionPart, in
	// document order.
	References []model.Reference
}

// Apply writes the resolution into a caption-reference record, for callers
// that want the in-place update contract of the extraction pipeline.
func (res Resolution) Apply(cr *model.CaptionReference) {
	cr.CaptionPart = res.CaptionPart
	cr.References = res.References
	cr.ReferenceCount = len(res.References)
}

// Resolver searches a segmented document for corrected caption references.
// It holds only read-only state, so a single Resolver may be shared across
// goroutines resolving independent caption records.
type Resolver struct {
	paragraphs []model.Paragraph
	log        *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for per-candidate progress output.
// The default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(r *Resolver) {
		r.log = log
	}
}

// NewResolver creates a resolver over a segmented document. The paragraph
// slice is retained, not copied; callers must not mutate it while the
// resolver is in use.
func NewResolver(paragraphs []model.Paragraph, opts ...Option) *Resolver {
	r := &Resolver{
		paragraphs: paragraphs,
		log:        zap.NewNop(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve attempts to recover the true figure reference for a corrupted
// caption fragment. imageID is the image filename (its digits give the
// image's sequence index), imageLine the 1-based source line of the image
// marker.
//
// The record is not modified. The boolean result is false when the record
// does not qualify for resolution (it already has references, or its
// fragment is empty or lacks a three-digit run) or when no candidate matched
// anything; callers observe the unchanged record as the "no correction
// available" signal.
func (r *Resolver) Resolve(cr *model.CaptionReference, imageID string, imageLine int) (Resolution, bool) {
	if cr.ReferenceCount != 0 || cr.CaptionPart == "" {
		return Resolution{}, false
	}
	if !hasDigitRun(cr.CaptionPart, minDigitRun) {
		return Resolution{}, false
	}

	r.log.Debug("resolving caption fragment",
		zap.String("caption_part", cr.CaptionPart),
		zap.String("image", imageID))

	// Collect every candidate that matches anywhere in the document. The
	// loop never stops at the first hit: several truncations can each match
	// a different figure number, and disambiguation happens afterwards.
	var pairs []candidatePair
	for seq := newCandidates(cr.CaptionPart); ; {
		candidate, ok := seq.next()
		if !ok {
			break
		}
		refs := r.matchCandidate(candidate, imageLine)
		if len(refs) > 0 {
			r.log.Debug("candidate matched",
				zap.String("candidate", candidate),
				zap.Int("references", len(refs)))
			pairs = append(pairs, candidatePair{candidate: candidate, references: refs})
		}
	}

	best, ok := selectBest(pairs, digitsValue(imageID))
	if !ok {
		return Resolution{}, false
	}

	r.log.Debug("caption fragment resolved",
		zap.String("caption_part", best.candidate),
		zap.Int("references", len(best.references)))

	return Resolution{CaptionPart: best.candidate, References: best.references}, true
}

// Correct resolves the record and, on success, applies the resolution in
// place. It reports whether the record was changed.
func (r *Resolver) Correct(cr *model.CaptionReference, imageID string, imageLine int) bool {
	res, ok := r.Resolve(cr, imageID, imageLine)
	if ok {
		res.Apply(cr)
	}
	return ok
}

// candidatePair couples one truncation candidate with the references it
// matched.
type candidatePair struct {
	candidate  string
	references []model.Reference
}

// hasDigitRun reports whether s contains at least n consecutive digit
// characters.
func hasDigitRun(s string, n int) bool {
	run := 0
	for _, ch := range s {
		if unicode.IsDigit(ch) {
			run++
			if run >= n {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}

// candidates yields successively shorter prefixes of a caption fragment,
// dropping one character from the right per step. The sequence ends before
// a candidate would become a single character or lose its last digit. The
// full fragment itself is never yielded; the first candidate is the
// fragment minus its final character.
type candidates struct {
	runes []rune
}

func newCandidates(captionPart string) *candidates {
	return &candidates{runes: []rune(captionPart)}
}

func (c *candidates) next() (string, bool) {
	if len(c.runes) <= 1 {
		return "", false
	}
	c.runes = c.runes[:len(c.runes)-1]
	if len(c.runes) <= 1 || !containsDigit(c.runes) {
		return "", false
	}
	return string(c.runes), true
}

func containsDigit(runes []rune) bool {
	for _, ch := range runes {
		if unicode.IsDigit(ch) {
			return true
		}
	}
	return false
}

// matchCandidate scans every paragraph except those containing the image
// line, and returns a reference for each occurrence of the candidate that
// sits inside a recognized figure-caption form.
func (r *Resolver) matchCandidate(candidate string, imageLine int) []model.Reference {
	var refs []model.Reference
	candRunes := foldRunes(candidate)

	for _, para := range r.paragraphs {
		// A paragraph containing the image can never be the source of its
		// own corrected reference.
		if para.ContainsLine(imageLine) {
			continue
		}

		content := []rune(para.Content)
		for _, start := range indexAll(foldRunes(para.Content), candRunes) {
			end := start + patternWindow
			if end > len(content) {
				end = len(content)
			}
			refText, ok := matchFigurePattern(string(content[start:end]))
			if !ok {
				continue
			}

			lineInfo, ok := LocateLine(para, start)
			if !ok {
				// Content and lines are out of sync for this paragraph;
				// drop the occurrence and keep going.
				continue
			}

			refs = append(refs, model.Reference{
				ReferenceText:         refText,
				IsExactMatch:          candidate == refText,
				MatchLineInfo:         lineInfo,
				ParagraphContent:      para.Content,
				TotalLinesInParagraph: para.LineCount(),
			})
		}
	}

	return refs
}

// foldRunes lowercases s rune by rune for case-insensitive comparison.
func foldRunes(s string) []rune {
	runes := []rune(s)
	for i, ch := range runes {
		runes[i] = unicode.ToLower(ch)
	}
	return runes
}

// indexAll returns the starting offsets of every non-overlapping occurrence
// of needle in haystack. Offsets count characters, not bytes, so they can be
// mapped onto line boundaries directly.
func indexAll(haystack, needle []rune) []int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return nil
	}
	var offsets []int
	for i := 0; i+len(needle) <= len(haystack); {
		if runesEqual(haystack[i:i+len(needle)], needle) {
			offsets = append(offsets, i)
			i += len(needle)
		} else {
			i++
		}
	}
	return offsets
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// LocateLine maps a character offset inside a paragraph's content to the
// source line it falls on. Each line accounts for its own length plus one
// for the joining newline. The boolean result is false when no line accounts
// for the offset, which happens only when Content and Lines have diverged;
// callers drop such occurrences and keep going.
func LocateLine(para model.Paragraph, offset int) (model.MatchLineInfo, bool) {
	cumulative := 0
	for i, line := range para.Lines {
		lineLen := len([]rune(line)) + 1
		if cumulative <= offset && offset < cumulative+lineLen {
			return model.MatchLineInfo{
				LineNumber:              para.StartLine + i,
				Content:                 strings.TrimSpace(line),
				CharPositionInParagraph: offset,
			}, true
		}
		cumulative += lineLen
	}
	return model.MatchLineInfo{}, false
}

// selectBest picks the candidate whose digits are numerically closest to the
// image's own index. Pairs arrive longest candidate first, and the strict
// comparison keeps the earlier pair on ties, so equal distances resolve to
// the longer candidate.
func selectBest(pairs []candidatePair, indexNumber int) (candidatePair, bool) {
	var best candidatePair
	bestDistance := -1

	for _, pair := range pairs {
		distance := digitsValue(pair.candidate) - indexNumber
		if distance < 0 {
			distance = -distance
		}
		if bestDistance == -1 || distance < bestDistance {
			bestDistance = distance
			best = pair
		}
	}

	return best, bestDistance != -1
}

// digitsValue concatenates every digit character of s and parses the result
// as an integer. An empty digit string parses as 0, which also strips
// leading zeros from padded image filenames like "000001.jpg".
func digitsValue(s string) int {
	var b strings.Builder
	for _, ch := range s {
		if ch >= '0' && ch <= '9' {
			b.WriteRune(ch)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}
	return n
}
