package model

// Paragraph represents one blank-line-delimited block of a markdown document
// together with its position in the source.
type Paragraph struct {
	// Content is the paragraph text, stripped of leading and trailing
	// whitespace.
	Content string `json:"content"`

	// StartLine is the 1-based source line on which the paragraph begins.
	StartLine int `json:"start_line"`

	// EndLine is the 1-based source line on which the paragraph ends.
	EndLine int `json:"end_line"`

	// Lines are the individual lines that make up the paragraph. Joining
	// them with "\n" reconstructs Content.
	Lines []string `json:"lines"`
}

// ContainsLine reports whether the 1-based source line falls inside the
// paragraph's line range.
func (p Paragraph) ContainsLine(line int) bool {
	return p.StartLine <= line && line <= p.EndLine
}

// LineCount returns the number of lines in the paragraph.
func (p Paragraph) LineCount() int {
	return len(p.Lines)
}
