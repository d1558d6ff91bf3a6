package captions

import (
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/tsawler/figref/document"
	"github.com/tsawler/figref/model"
)

var (
	// imageMarker matches the markdown image tags emitted by the PDF
	// conversion, "![alt](../images/<book>/<file>)", capturing the filename.
	imageMarker = regexp.MustCompile(`!\[.*?\]\(\.\./images/[^/]+/([^)]+)\)`)

	// captionLine recognizes caption-shaped text anywhere in a line.
	captionLine = regexp.MustCompile(`(?i)(?:图\s*[a-zA-Z]?(?:\d+(?:[.\-]\d+)*)+|Figure\s*(?:\d+(?:[.\-]\d+)*)+|Fig\.?\s*(?:\d+(?:[.\-]\d+)*)+)`)

	// figureStart anchors a figure marker to the beginning of a line; a
	// caption must lead its line or its paragraph.
	figureStart = regexp.MustCompile(`(?i)^\s*(?:图|figura|figure|fig)`)

	// figureIdentifier extracts the figure-number fragment from a caption,
	// e.g. "图2" out of "图2经济增长率".
	figureIdentifier = regexp.MustCompile(`(?i)(?:图\s*[a-zA-Z]?\s*\d+(?:[.-]\d+)*|Figure\s*\d+(?:[.-]\d+)*|Fig\.?\s*\d+(?:[.-]\d+)*)`)
)

// Config controls caption discovery and reference association.
type Config struct {
	// SearchRange is the base line distance searched around an image marker
	// for captions and competing markers.
	SearchRange int

	// SurroundContext is the minimum character count recorded as the text
	// surrounding each image marker.
	SurroundContext int

	// CaptionContext is the minimum character count recorded as the
	// paragraph context of each caption.
	CaptionContext int

	// ReferenceContext is the minimum character count recorded as the
	// expanded paragraph of each reference.
	ReferenceContext int

	// MaxPartialMatches caps the non-exact references collected for one
	// caption once an exact match has been seen.
	MaxPartialMatches int
}

// DefaultConfig returns the discovery defaults used by the batch pipeline.
func DefaultConfig() Config {
	return Config{
		SearchRange:       5,
		SurroundContext:   4000,
		CaptionContext:    500,
		ReferenceContext:  1000,
		MaxPartialMatches: 2,
	}
}

// Extractor discovers image contexts in preprocessed markdown.
type Extractor struct {
	cfg Config
	log *zap.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithConfig replaces the default discovery configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extractor) {
		e.cfg = cfg
	}
}

// WithLogger sets the logger for discovery progress. Default is no-op.
func WithLogger(log *zap.Logger) Option {
	return func(e *Extractor) {
		e.log = log
	}
}

// NewExtractor creates an extractor with the default configuration.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		cfg: DefaultConfig(),
		log: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// marker is an image tag located in the document.
type marker struct {
	lineNum  int // 1-based source line
	paraIdx  int
	filename string
}

// Extract finds every image marker in content and builds its context:
// surrounding text, caption candidates, competing markers, and a
// classification. Reference association is a separate pass; see
// AssociateReferences.
func (e *Extractor) Extract(content, bookID string) []model.ImageContext {
	paragraphs := document.SplitIntoParagraphs(content)
	allLines := strings.Split(content, "\n")

	var markers []marker
	for _, loc := range imageMarker.FindAllStringSubmatchIndex(content, -1) {
		lineNum := strings.Count(content[:loc[0]], "\n") + 1

		paraIdx := -1
		for i, p := range paragraphs {
			if p.ContainsLine(lineNum) {
				paraIdx = i
				break
			}
		}
		// Markers outside any paragraph have no context to analyze.
		if paraIdx == -1 {
			continue
		}

		markers = append(markers, marker{
			lineNum:  lineNum,
			paraIdx:  paraIdx,
			filename: content[loc[2]:loc[3]],
		})
	}

	contexts := make([]model.ImageContext, 0, len(markers))
	for _, m := range markers {
		para := paragraphs[m.paraIdx]
		surround := document.EnsureMinimumContext(content, e.cfg.SurroundContext, para.Content)

		found := findInRange(allLines, m.lineNum-1, captionLine, e.cfg.SearchRange)
		found = filterCaptionStarts(found, allLines, paragraphs)

		others := findInRange(allLines, m.lineNum-1, imageMarker, e.cfg.SearchRange)
		kept := others[:0]
		for _, img := range others {
			if img.lineIndex+1 != m.lineNum {
				kept = append(kept, img)
			}
		}
		others = kept

		sort.SliceStable(found, func(i, j int) bool {
			return found[i].distance < found[j].distance
		})

		classification, nearest := classify(found, others)

		captionEntries := make([]model.Caption, 0, len(found))
		for _, c := range found {
			dist := c.lineIndex + 1 - m.lineNum
			if dist < 0 {
				dist = -dist
			}
			captionEntries = append(captionEntries, model.Caption{
				Content:          c.content,
				ContextParagraph: document.EnsureMinimumContext(content, e.cfg.CaptionContext, c.content),
				LineNumber:       c.lineIndex + 1,
				Distance:         dist,
			})
		}

		nearby := model.NearbyImages{Count: len(others)}
		for _, img := range others {
			nearby.Images = append(nearby.Images, model.NearbyImage{
				LineNumber: img.lineIndex + 1,
				Content:    img.content,
				Distance:   img.distance,
			})
		}

		contexts = append(contexts, model.ImageContext{
			Classification:  classification,
			BookID:          bookID,
			ImageFilename:   m.filename,
			ImageLineNumber: m.lineNum,
			SurroundingText: surround,
			OtherImages:     nearby,
			CaptionCount:    len(found),
			Captions:        captionEntries,
			NearestCaption:  nearest,
		})
	}

	e.log.Debug("image contexts extracted",
		zap.String("book_id", bookID),
		zap.Int("images", len(contexts)))

	return contexts
}

// filterCaptionStarts keeps only hits whose line, or whose paragraph's first
// line, starts with a figure marker. Mid-sentence mentions like "如图2所示"
// are references, not captions.
func filterCaptionStarts(found []element, allLines []string, paragraphs []model.Paragraph) []element {
	var kept []element
	for _, el := range found {
		if figureStart.MatchString(allLines[el.lineIndex]) {
			kept = append(kept, el)
			continue
		}

		lineNum := el.lineIndex + 1
		for _, p := range paragraphs {
			if p.ContainsLine(lineNum) {
				if len(p.Lines) > 0 && figureStart.MatchString(p.Lines[0]) {
					kept = append(kept, el)
				}
				break
			}
		}
	}
	return kept
}

// classify grades the caption assignment. One caption with no competing
// image markers is normal; multiple captions, or a competing marker, make
// the assignment ambiguous; no caption at all is the extreme case.
func classify(captions, otherImages []element) (model.Classification, string) {
	switch {
	case len(captions) == 0:
		return model.ClassExtremeAbnormal, ""
	case len(captions) == 1 && len(otherImages) == 0:
		return model.ClassNormal, captions[0].content
	default:
		return model.ClassAbnormal, captions[0].content
	}
}
