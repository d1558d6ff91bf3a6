package document

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/width"
)

var (
	// brokenCellTag repairs cell tags whose closing bracket was lost to the
	// layout recovery, e.g. "<td2.1" for "<td>2.1".
	brokenCellTag = regexp.MustCompile(`<(t[dh])([0-9. ])`)

	runsOfSpaces  = regexp.MustCompile(`[ \t]+`)
	blankLineRuns = regexp.MustCompile(`\n\s*\n`)

	// ocrTrailingO fixes a trailing zero misread as the letter o in figure
	// identifiers: "图1o" -> "图10", "Figure 3O" -> "Figure 30".
	ocrTrailingO = regexp.MustCompile(`(?i)((?:figure|fig\.?|图)\s*\d+)[oO]`)

	// cjkDashDigit rewrites 一 between digits as the dash it was misread
	// from, as in "2015一2016".
	cjkDashDigit = regexp.MustCompile(`(\d)一(\d)`)
)

var (
	tableCellTags = map[string]bool{
		"td": true,
		"th": true,
	}
	tableStructureTags = map[string]bool{
		"table": true,
		"tr":    true,
		"tbody": true,
		"thead": true,
		"tfoot": true,
	}
)

// StripTableMarkup removes HTML table markup while preserving the text it
// wraps. Cell boundaries become newlines so that cell contents survive as
// separate lines, structural tags disappear entirely, and everything outside
// table markup is passed through untouched. Runs of spaces collapse to one
// space and runs of blank lines to one paragraph break afterwards.
func StripTableMarkup(content string) string {
	content = brokenCellTag.ReplaceAllString(content, "<$1>$2")

	z := html.NewTokenizer(strings.NewReader(content))
	var b strings.Builder
	b.Grow(len(content))

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		switch tt {
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := strings.ToLower(string(name))
			switch {
			case tableCellTags[tag]:
				b.WriteByte('\n')
			case tableStructureTags[tag]:
				// Dropped together with its attributes.
			default:
				b.Write(z.Raw())
			}
		default:
			b.Write(z.Raw())
		}
	}

	cleaned := runsOfSpaces.ReplaceAllString(b.String(), " ")
	cleaned = blankLineRuns.ReplaceAllString(cleaned, "\n\n")
	return strings.TrimSpace(cleaned)
}

// NormalizeOCRArtifacts repairs character-level OCR noise that breaks
// figure-number matching: full-width digits and punctuation fold to their
// ASCII forms, a trailing letter o after a figure number becomes the zero it
// was read from, and 一 between digits becomes a dash.
func NormalizeOCRArtifacts(content string) string {
	content = width.Fold.String(content)
	content = ocrTrailingO.ReplaceAllString(content, "${1}0")

	// Overlapping runs like "2015一2016一2017" need repeated passes because
	// each replacement consumes its right-hand digit.
	for {
		out := cjkDashDigit.ReplaceAllString(content, "${1}-${2}")
		if out == content {
			return out
		}
		content = out
	}
}

// Preprocess runs the full cleaning sequence on raw markdown: figure
// directory removal, table markup stripping, and OCR artifact repair.
func Preprocess(content string) string {
	content = RemoveFigureDirectory(content)
	content = StripTableMarkup(content)
	return NormalizeOCRArtifacts(content)
}
