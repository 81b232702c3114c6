package pha

import (
	"github.com/spexlab/spex/errs"
	"github.com/spexlab/spex/internal/options"
	"github.com/spexlab/spex/phafile"
)

// writeConfig collects the Write parameters.
type writeConfig struct {
	filename  string
	overwrite bool
	encOpts   []phafile.EncoderOption
}

// WriteOption configures a Write call.
type WriteOption = options.Option[*writeConfig]

// WithFilename names the target file. Required for a record that has never
// been written or opened.
func WithFilename(name string) WriteOption {
	return options.NoError(func(cfg *writeConfig) {
		cfg.filename = name
	})
}

// WithOverwrite permits replacing an existing target file.
func WithOverwrite() WriteOption {
	return options.NoError(func(cfg *writeConfig) {
		cfg.overwrite = true
	})
}

// WithEncoderOptions forwards container encoder options, such as byte
// order and section compression.
func WithEncoderOptions(opts ...phafile.EncoderOption) WriteOption {
	return options.NoError(func(cfg *writeConfig) {
		cfg.encOpts = append(cfg.encOpts, opts...)
	})
}

// resolveWriteName picks the target filename for a Write: an explicit
// WithFilename always wins; otherwise the record's remembered name is
// used, which is gone after Close.
func (r *record) resolveWriteName(cfg *writeConfig) (string, error) {
	if cfg.filename != "" {
		return cfg.filename, nil
	}
	if r.closed {
		return "", errs.ErrRecordClosed
	}
	if r.filename == "" {
		return "", errs.ErrRecordUnnamed
	}

	return r.filename, nil
}
