package document

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// figureDirectoryTitle matches headings that introduce a list-of-figures
// style section. Entries in those sections look exactly like captions, so
// the whole section has to go before caption discovery runs.
var figureDirectoryTitle = regexp.MustCompile(`(?i)^\s*(?:` + strings.Join([]string{
	// Chinese figure directories and indexes.
	`图\s*目\s*录`,
	`图\s*表\s*目\s*录`,
	`插\s*图\s*目\s*录`,
	`图形目录`,
	`图片目录`,
	`图\s*索\s*引`,
	`图表索引`,
	`插图索引`,
	`图形索引`,
	`目录\s*图`,
	`索引\s*图`,
	// English figure directories.
	`figure\s*directory`,
	`table\s*of\s*figures`,
	`figures\s*list`,
	`list(?:\s*of)?\s*figures(?:\s*and\s*tables)?`,
	`index\s*of\s*figures`,
	`figure\s*index`,
	`contents\s*of\s*figures`,
	`figures\s*contents`,
	`figure\s*catalog`,
	`catalog\s*of\s*figures`,
	// Illustrations.
	`list\s*of\s*illustrations`,
	`illustrations\s*list`,
	`index\s*of\s*illustrations`,
	`illustrations\s*index`,
	`table\s*of\s*illustrations`,
	`illustrations\s*directory`,
	`illustrations\s*catalog`,
	`catalog\s*of\s*illustrations`,
	// Charts and graphs.
	`list\s*of\s*charts`,
	`charts\s*list`,
	`index\s*of\s*charts`,
	`chart\s*index`,
	`table\s*of\s*charts`,
	`list\s*of\s*graphs`,
	`graphs\s*list`,
	`index\s*of\s*graphs`,
	`graph\s*index`,
	// Mixed table/figure directories.
	`tables\s*and\s*figures\s*list`,
	`index\s*of\s*tables\s*and\s*figures`,
	`list\s*of\s*tables\s*and\s*figures`,
}, `|`) + `)`)

// markdown is the shared goldmark instance used for heading discovery. Only
// the parser is used; nothing is ever rendered.
var markdown = goldmark.New()

type headingPos struct {
	// start is the byte offset of the first character of the heading line.
	start int
	// title is the heading text without markers.
	title string
}

// collectHeadings walks the markdown AST and returns every heading with its
// position in source order.
func collectHeadings(src []byte) []headingPos {
	doc := markdown.Parser().Parse(text.NewReader(src))

	var headings []headingPos
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if h.Lines().Len() == 0 {
			return ast.WalkSkipChildren, nil
		}
		seg := h.Lines().At(0)
		headings = append(headings, headingPos{
			start: lineStart(src, seg.Start),
			title: strings.TrimSpace(string(seg.Value(src))),
		})
		return ast.WalkSkipChildren, nil
	})

	return headings
}

// lineStart walks back from offset to the beginning of its line.
func lineStart(src []byte, offset int) int {
	if offset > len(src) {
		offset = len(src)
	}
	for offset > 0 && src[offset-1] != '\n' {
		offset--
	}
	return offset
}

// RemoveFigureDirectory deletes the first list-of-figures section from the
// content: everything from its heading up to the next heading of any level,
// or to the end of the document when no heading follows. Content without
// such a section is returned unchanged.
func RemoveFigureDirectory(content string) string {
	src := []byte(content)
	headings := collectHeadings(src)

	cut := -1
	var end int
	for i, h := range headings {
		if !figureDirectoryTitle.MatchString(h.title) {
			continue
		}
		cut = h.start
		end = len(src)
		if i+1 < len(headings) {
			end = headings[i+1].start
		}
		break
	}
	if cut == -1 {
		return content
	}

	return strings.TrimSpace(content[:cut] + content[end:])
}
