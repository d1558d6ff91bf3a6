package model

// MatchLineInfo pins a reference match to a single source line.
type MatchLineInfo struct {
	// LineNumber is the 1-based source line containing the match.
	LineNumber int `json:"line_number"`

	// Content is the matched line, stripped of surrounding whitespace.
	Content string `json:"content"`

	// CharPositionInParagraph is the 0-based character offset of the match
	// within the paragraph content.
	CharPositionInParagraph int `json:"char_position_in_paragraph"`
}

// Reference records one in-text occurrence of a figure reference.
type Reference struct {
	// ReferenceText is the figure reference as it appears in the text,
	// e.g. "图2" or "Figure 3.1".
	ReferenceText string `json:"reference_text"`

	// IsExactMatch reports whether the matched text equals the caption
	// fragment that was searched for.
	IsExactMatch bool `json:"is_exact_match"`

	// MatchLineInfo locates the match in the source document.
	MatchLineInfo MatchLineInfo `json:"match_line_info"`

	// ParagraphContent is the full content of the paragraph containing the
	// match.
	ParagraphContent string `json:"paragraph_content"`

	// ParagraphContext is the paragraph content expanded with neighbouring
	// paragraphs, when the caller requested context expansion.
	ParagraphContext string `json:"reference_paragraph_extension,omitempty"`

	// TotalLinesInParagraph is the line count of the containing paragraph.
	TotalLinesInParagraph int `json:"total_lines_in_paragraph"`
}

// CaptionReference groups the in-text references found for one caption.
type CaptionReference struct {
	// Caption is the full caption text the references belong to. Empty when
	// the record was built directly from a caption fragment.
	Caption string `json:"caption,omitempty"`

	// CaptionPart is the figure-identifier fragment of the caption, e.g.
	// "图2" extracted from "图2经济增长率". This is the token searched for in
	// the document body, and the token rewritten when resolution corrects a
	// corrupted fragment.
	CaptionPart string `json:"caption_part"`

	// ReferenceCount is len(References). Kept explicit because serialized
	// context files carry it as a first-class field.
	ReferenceCount int `json:"reference_count"`

	// References are the accepted in-text occurrences, in document order.
	References []Reference `json:"references"`
}
