package document

import (
	"strings"

	"github.com/tsawler/figref/model"
)

// SplitIntoParagraphs segments content into blank-line-delimited paragraphs,
// tracking the 1-based line range each paragraph occupies in the source.
// Empty paragraphs are skipped but still advance the line counter, so the
// recorded ranges stay aligned with the original document.
func SplitIntoParagraphs(content string) []model.Paragraph {
	raw := strings.Split(content, "\n\n")
	var paragraphs []model.Paragraph
	currentLine := 1

	for _, block := range raw {
		stripped := strings.TrimSpace(block)
		if stripped == "" {
			currentLine++
			continue
		}

		lines := strings.Split(stripped, "\n")
		start := currentLine
		end := currentLine + len(lines) - 1

		paragraphs = append(paragraphs, model.Paragraph{
			Content:   stripped,
			StartLine: start,
			EndLine:   end,
			Lines:     lines,
		})

		// end+2 accounts for the blank separator line.
		currentLine = end + 2
	}

	return paragraphs
}

// EnsureMinimumContext grows text to at least k characters by absorbing
// whole neighbouring paragraphs from content, half of k on each side.
// text must occur verbatim in content; whenever the span cannot be located,
// the input text is returned unchanged rather than an error, because context
// expansion is best-effort.
func EnsureMinimumContext(content string, k int, text string) string {
	paragraphs := SplitIntoParagraphs(content)
	if len(paragraphs) == 0 {
		return text
	}

	// Locate each paragraph in the raw content. Sequential search keeps
	// duplicate paragraphs anchored to their own positions.
	positions := make([]int, len(paragraphs))
	searchPos := 0
	for i, p := range paragraphs {
		idx := strings.Index(content[searchPos:], p.Content)
		if idx == -1 {
			return text
		}
		positions[i] = searchPos + idx
		searchPos = positions[i] + len(p.Content) + 2
		if searchPos > len(content) {
			searchPos = len(content)
		}
	}

	pos := strings.Index(content, text)
	if pos == -1 {
		return text
	}
	textEnd := pos + len(text)

	startIdx, endIdx := -1, -1
	for i, paraPos := range positions {
		paraEnd := paraPos + len(paragraphs[i].Content)
		if paraPos <= pos && pos < paraEnd {
			startIdx = i
		}
		if paraPos < textEnd && textEnd <= paraEnd {
			endIdx = i
			break
		}
	}
	if startIdx == -1 || endIdx == -1 || startIdx > endIdx {
		return text
	}

	requiredEachSide := k / 2

	prevChars := 0
	for startIdx > 0 && prevChars < requiredEachSide {
		startIdx--
		prevChars += len([]rune(paragraphs[startIdx].Content)) + 2
	}

	nextChars := 0
	for endIdx < len(paragraphs)-1 && nextChars < requiredEachSide {
		endIdx++
		nextChars += len([]rune(paragraphs[endIdx].Content)) + 2
	}

	parts := make([]string, 0, endIdx-startIdx+1)
	for _, p := range paragraphs[startIdx : endIdx+1] {
		parts = append(parts, p.Content)
	}
	return strings.Join(parts, "\n\n")
}
