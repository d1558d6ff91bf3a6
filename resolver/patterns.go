package resolver

import "regexp"

// figurePatterns is the fixed set of figure-caption forms a candidate must
// appear in to count as a reference. Order matters: when two patterns match
// at the same position in a window, the earlier pattern wins. Compiled once
// at init; a malformed pattern is a defect in these constants, never a
// function of input, so MustCompile aborting startup is the intended
// behavior.
var figurePatterns = []*regexp.Regexp{
	// CJK figure marker: 图, an optional single letter, then digit groups
	// separated by "." or "-".
	regexp.MustCompile(`(?i)图\s*[a-zA-Z]?\s*\d+(?:\s*[.\-]\s*\d+)*\s*`),
	// "Figure N", "Figure N.N", "figure N-N".
	regexp.MustCompile(`(?i)Figure\s*\d+(?:\s*[.\-]\s*\d+\s*)*`),
	// "Fig. N", "Fig N.N".
	regexp.MustCompile(`(?i)Fig\.?\s*\d+(?:\s*[.\-]\s*\d+\s*)*`),
}

// matchFigurePattern tests a text window against the pattern set and returns
// the matched reference text. The leftmost match across all patterns wins;
// at equal start positions the pattern listed first wins.
func matchFigurePattern(window string) (string, bool) {
	bestStart := -1
	var bestText string
	for _, p := range figurePatterns {
		loc := p.FindStringIndex(window)
		if loc == nil {
			continue
		}
		if bestStart == -1 || loc[0] < bestStart {
			bestStart = loc[0]
			bestText = window[loc[0]:loc[1]]
		}
	}
	if bestStart == -1 {
		return "", false
	}
	return bestText, true
}
