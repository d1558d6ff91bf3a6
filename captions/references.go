package captions

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/tsawler/figref/document"
	"github.com/tsawler/figref/model"
	"github.com/tsawler/figref/resolver"
)

// Process runs the full pipeline over one document: discover image contexts,
// then associate in-text references with each caption.
func (e *Extractor) Process(content, bookID string) []model.ImageContext {
	return e.AssociateReferences(content, e.Extract(content, bookID))
}

// AssociateReferences scans the document body for citations of each caption's
// figure number ("如图2所示", "see Figure 3.1") and records them on the image
// contexts. Captions whose figure number matches nothing in the body are
// handed to the resolver, which trims glued-on digits and retries.
func (e *Extractor) AssociateReferences(content string, images []model.ImageContext) []model.ImageContext {
	paragraphs := document.SplitIntoParagraphs(content)
	res := resolver.NewResolver(paragraphs, resolver.WithLogger(e.log))

	for i := range images {
		img := &images[i]

		seenCaptions := make(map[string]bool)
		seenFigures := make(map[string]bool)
		var captionRefs []*model.CaptionReference

		for _, c := range img.Captions {
			if seenCaptions[c.Content] {
				continue
			}
			seenCaptions[c.Content] = true

			figID := figureIdentifier.FindString(c.Content)
			if figID == "" || seenFigures[figID] {
				continue
			}
			seenFigures[figID] = true

			refs := e.collectReferences(content, paragraphs, figID, img.ImageLineNumber, c.LineNumber)

			captionRefs = append(captionRefs, &model.CaptionReference{
				Caption:        c.Content,
				CaptionPart:    figID,
				ReferenceCount: len(refs),
				References:     refs,
			})
		}

		for _, cr := range captionRefs {
			if cr.ReferenceCount == 0 && cr.CaptionPart != "" {
				if res.Correct(cr, img.ImageFilename, img.ImageLineNumber) {
					e.log.Debug("caption fragment corrected",
						zap.String("image", img.ImageFilename),
						zap.String("caption_part", cr.CaptionPart),
						zap.Int("references", cr.ReferenceCount))
				}
			}
		}

		img.CaptionReferences = captionRefs

		total := 0
		for _, cr := range captionRefs {
			total += cr.ReferenceCount
		}
		img.TotalReferenceCount = total
	}

	return images
}

// collectReferences finds every occurrence of figID in the document body,
// skipping the image's own paragraph and the caption line itself. Scanning
// stops early once an exact match plus MaxPartialMatches non-exact matches
// have been collected.
func (e *Extractor) collectReferences(content string, paragraphs []model.Paragraph, figID string, imageLine, captionLine int) []model.Reference {
	pattern, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(figID))
	if err != nil {
		return nil
	}

	var refs []model.Reference
	exactFound := false
	nonExact := 0

	for pi := range paragraphs {
		para := &paragraphs[pi]

		if para.ContainsLine(imageLine) {
			continue
		}

		// Remove the caption's own line so it cannot count as a citation of
		// itself. Later occurrences in the same paragraph shift up a line,
		// which the stored Lines and EndLine reflect.
		if para.ContainsLine(captionLine) {
			rel := captionLine - para.StartLine
			if rel >= 0 && rel < len(para.Lines) {
				para.Lines = append(para.Lines[:rel], para.Lines[rel+1:]...)
				para.Content = strings.Join(para.Lines, "\n")
				para.EndLine--
			}
		}

		expanded := "null"
		if strings.Contains(content, para.Content) {
			expanded = document.EnsureMinimumContext(content, e.cfg.ReferenceContext, para.Content)
		}

		for _, loc := range pattern.FindAllStringIndex(para.Content, -1) {
			offset := utf8.RuneCountInString(para.Content[:loc[0]])

			lineInfo, ok := resolver.LocateLine(*para, offset)
			if !ok || lineInfo.LineNumber == captionLine {
				continue
			}

			matches := figureIdentifier.FindAllString(lineInfo.Content, -1)
			refText := ""
			if len(matches) > 0 {
				refText = matches[0]
			}

			exact := false
			for _, m := range matches {
				if strings.EqualFold(figID, m) {
					exact = true
					break
				}
			}
			if exact {
				exactFound = true
			} else {
				nonExact++
			}

			refs = append(refs, model.Reference{
				ReferenceText:         refText,
				IsExactMatch:          exact,
				MatchLineInfo:         lineInfo,
				ParagraphContent:      para.Content,
				ParagraphContext:      expanded,
				TotalLinesInParagraph: len(para.Lines),
			})

			if exactFound && nonExact >= e.cfg.MaxPartialMatches {
				break
			}
		}

		if exactFound && nonExact >= e.cfg.MaxPartialMatches {
			break
		}
	}

	return refs
}
