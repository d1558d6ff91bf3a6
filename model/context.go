package model

// Classification labels how reliably an image could be tied to a caption.
type Classification string

const (
	// ClassNormal means exactly one caption was found and no other image
	// markers compete for it.
	ClassNormal Classification = "normal"

	// ClassAbnormal means the caption assignment is ambiguous: either
	// several captions were found, or another image marker sits close enough
	// to claim the same caption.
	ClassAbnormal Classification = "abnormal"

	// ClassExtremeAbnormal means no caption was found at all.
	ClassExtremeAbnormal Classification = "extreme abnormal"
)

// Caption is a caption candidate found near an image marker.
type Caption struct {
	// Content is the caption line text.
	Content string `json:"content"`

	// ContextParagraph is the caption expanded with surrounding paragraphs.
	ContextParagraph string `json:"content_paragraph"`

	// LineNumber is the 1-based source line of the caption.
	LineNumber int `json:"line_number"`

	// Distance is the line distance between the caption and the image
	// marker.
	Distance int `json:"distance"`
}

// NearbyImage describes another image marker found near the current one.
type NearbyImage struct {
	LineNumber int    `json:"line_number"`
	Content    string `json:"content"`
	Distance   int    `json:"distance"`
}

// NearbyImages summarizes the other image markers in search range.
type NearbyImages struct {
	Count  int           `json:"count"`
	Images []NearbyImage `json:"images"`
}

// ImageContext is the complete record extracted for one image marker.
type ImageContext struct {
	// Classification grades the caption assignment (normal, abnormal,
	// extreme abnormal).
	Classification Classification `json:"classification"`

	// BookID identifies the source document, conventionally a zero-padded
	// six-digit string.
	BookID string `json:"book_id"`

	// ImageFilename is the image file referenced by the marker,
	// conventionally "%06d.<ext>".
	ImageFilename string `json:"image_filename"`

	// ImageLineNumber is the 1-based source line of the image marker.
	ImageLineNumber int `json:"image_tag_line_number"`

	// SurroundingText is the document text around the marker, expanded to a
	// minimum size with whole-paragraph granularity.
	SurroundingText string `json:"image_surround_text"`

	// OtherImages lists competing image markers found in search range.
	OtherImages NearbyImages `json:"other_images_nearby"`

	// CaptionCount is the number of caption candidates found.
	CaptionCount int `json:"caption_count"`

	// Captions are the caption candidates, closest first.
	Captions []Caption `json:"captions_found"`

	// NearestCaption is the text of the closest caption, or empty when none
	// was found.
	NearestCaption string `json:"nearest_caption"`

	// CaptionReferences tie each distinct caption to its in-text citations.
	CaptionReferences []*CaptionReference `json:"caption_references"`

	// TotalReferenceCount sums ReferenceCount over CaptionReferences.
	TotalReferenceCount int `json:"total_reference_count"`
}
