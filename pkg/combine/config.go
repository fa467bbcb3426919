// File: pkg/combine/config.go
package combine

import (
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Combiner writes configured file groups into a single output file.
type Combiner struct {
	fs     afero.Fs    // Filesystem used for sources, glob expansion and the output file.
	logger *zap.Logger // Logger for progress, skipped sources and failures.
}

// Option configures a Combiner.
type Option func(*Combiner)

// WithFs sets the filesystem the Combiner reads from and writes to.
// The default is the host filesystem.
func WithFs(fs afero.Fs) Option {
	return func(c *Combiner) {
		c.fs = fs
	}
}

// New returns a Combiner that logs to logger.
func New(logger *zap.Logger, opts ...Option) *Combiner {
	if logger == nil {
		logger = zap.NewNop() // Use no-op logger if none is provided
	}
	c := &Combiner{
		fs:     afero.NewOsFs(),
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
