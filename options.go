package figref

import (
	"go.uber.org/zap"

	"github.com/tsawler/figref/captions"
)

// PipelineOptions holds configuration for context extraction.
type PipelineOptions struct {
	// Book identity; derived from the filename when empty.
	bookID string

	// Caption discovery configuration.
	config captions.Config

	// Logger for pipeline progress.
	logger *zap.Logger

	// Whether raw content is cleaned before extraction.
	preprocess bool
}

// defaultPipelineOptions returns the default pipeline options.
func defaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		bookID:     "",
		config:     captions.DefaultConfig(),
		logger:     zap.NewNop(),
		preprocess: true,
	}
}

// clone creates a copy of PipelineOptions.
func (o PipelineOptions) clone() PipelineOptions {
	return PipelineOptions{
		bookID:     o.bookID,
		config:     o.config,
		logger:     o.logger,
		preprocess: o.preprocess,
	}
}
