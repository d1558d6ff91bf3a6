// Package figref provides a fluent API for extracting figure-caption context
// from OCR-converted markdown books: image markers, nearby captions, in-text
// citations of each caption, and a classification of how reliably the two
// could be tied together.
//
// Basic usage:
//
//	contexts, err := figref.Open("markdown/000001.md").Extract()
//	if err != nil {
//	    // handle error
//	}
//
// With options:
//
//	contexts, err := figref.Open("markdown/000001.md").
//	    BookID("000001").
//	    SearchRange(8).
//	    Extract()
//
// For lower-level access, the document, captions, and resolver packages are
// also available.
package figref

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/tsawler/figref/captions"
	"github.com/tsawler/figref/document"
	"github.com/tsawler/figref/model"
)

// Pipeline provides a fluent interface for extracting image contexts from a
// markdown document. Each configuration method returns a new Pipeline
// instance, making it safe for concurrent use and allowing method chaining.
type Pipeline struct {
	// Source: a filename, or literal content.
	filename string
	content  string

	// Configuration
	options PipelineOptions

	// Accumulated error (fail-fast)
	err error
}

// Open prepares a pipeline over a markdown file. The file is read and
// preprocessed when a terminal operation runs.
//
// Example:
//
//	contexts, err := figref.Open("markdown/000001.md").Extract()
func Open(filename string) *Pipeline {
	return &Pipeline{
		filename: filename,
		options:  defaultPipelineOptions(),
	}
}

// FromString prepares a pipeline over literal markdown content. The content
// is preprocessed the same way Open preprocesses file content.
func FromString(content string) *Pipeline {
	return &Pipeline{
		content: content,
		options: defaultPipelineOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	contexts := figref.Must(figref.Open("markdown/000001.md").Extract())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// clone creates a copy of the Pipeline so chain methods stay immutable.
func (p *Pipeline) clone() *Pipeline {
	return &Pipeline{
		filename: p.filename,
		content:  p.content,
		options:  p.options.clone(),
		err:      p.err,
	}
}

// BookID sets the book identifier recorded on every extracted context.
// When unset, the identifier is derived from the filename.
func (p *Pipeline) BookID(id string) *Pipeline {
	np := p.clone()
	np.options.bookID = id
	return np
}

// SearchRange sets the base line distance searched around each image marker
// for captions and competing markers.
func (p *Pipeline) SearchRange(lines int) *Pipeline {
	np := p.clone()
	if lines < 1 {
		np.err = fmt.Errorf("search range must be at least 1, got %d", lines)
		return np
	}
	np.options.config.SearchRange = lines
	return np
}

// Config replaces the full caption discovery configuration.
func (p *Pipeline) Config(cfg captions.Config) *Pipeline {
	np := p.clone()
	np.options.config = cfg
	return np
}

// Logger sets the logger used for pipeline progress. Default is no-op.
func (p *Pipeline) Logger(log *zap.Logger) *Pipeline {
	np := p.clone()
	np.options.logger = log
	return np
}

// RawContent disables preprocessing, so figure directories, residual table
// markup, and OCR artifacts are left in place.
func (p *Pipeline) RawContent() *Pipeline {
	np := p.clone()
	np.options.preprocess = false
	return np
}

// Extract runs the full pipeline: load and preprocess the document, discover
// image contexts, and associate caption references.
func (p *Pipeline) Extract() ([]model.ImageContext, error) {
	if p.err != nil {
		return nil, p.err
	}

	content, err := p.load()
	if err != nil {
		return nil, err
	}

	bookID := p.options.bookID
	if bookID == "" && p.filename != "" {
		base := filepath.Base(p.filename)
		bookID = strings.TrimSuffix(base, filepath.Ext(base))
	}

	e := captions.NewExtractor(
		captions.WithConfig(p.options.config),
		captions.WithLogger(p.options.logger),
	)
	return e.Process(content, bookID), nil
}

// ExtractJSON runs Extract and serializes the result the way context files
// are stored on disk: two-space indented, non-ASCII preserved.
func (p *Pipeline) ExtractJSON() ([]byte, error) {
	contexts, err := p.Extract()
	if err != nil {
		return nil, err
	}
	return MarshalContexts(contexts)
}

// WriteJSON runs Extract and writes the serialized result to path.
func (p *Pipeline) WriteJSON(path string) error {
	data, err := p.ExtractJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing context file: %w", err)
	}
	return nil
}

// MarshalContexts serializes image contexts in the on-disk context file
// format. HTML escaping is disabled so CJK text and markdown stay readable.
func MarshalContexts(contexts []model.ImageContext) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(contexts); err != nil {
		return nil, fmt.Errorf("encoding image contexts: %w", err)
	}
	return buf.Bytes(), nil
}

func (p *Pipeline) load() (string, error) {
	if p.filename != "" {
		if p.options.preprocess {
			return document.ReadFile(p.filename)
		}
		data, err := os.ReadFile(p.filename)
		if err != nil {
			return "", fmt.Errorf("reading markdown file: %w", err)
		}
		return string(data), nil
	}

	if p.options.preprocess {
		return document.Preprocess(p.content), nil
	}
	return p.content, nil
}
