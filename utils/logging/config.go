// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import "io"

// Config defines the configuration of a logger
type Config struct {
	Level  Level  `json:"level"`
	Format Format `json:"format"`
	// Prefix is the name given to the root logger. Empty means no name.
	Prefix string `json:"prefix"`
}

// DefaultConfig logs at Info in the plain format.
func DefaultConfig() Config {
	return Config{
		Level:  Info,
		Format: Plain,
	}
}

// New returns a logger writing to [w] as described by [config]. Stopping the
// logger does not close [w].
func New(config Config, w io.Writer) Logger {
	return NewLogger(
		config.Prefix,
		NewWrappedCore(config.Level, nopCloser{w}, config.Format.Encoder()),
	)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
