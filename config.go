// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package uncompress

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
)

// ConfigOption is a function pointer to implement the option pattern
type ConfigOption func(*Config)

// Config provides a configuration struct and options to adjust the configuration.
//
// The configuration struct holds all configuration options for an uncompress
// run. The configuration options can be adjusted using the option pattern style.
type Config struct {
	// copySource announces that the source is expected to already have been
	// transferred onto this host. If false, a URL source is fetched before
	// decompression.
	copySource bool

	// customDecompressFileMode is the file mode for the decompressed file (respecting umask)
	customDecompressFileMode fs.FileMode

	// deepCheck selects a full byte-for-byte comparison against an existing
	// destination instead of the byte-length comparison.
	deepCheck bool

	// fileAttributes are the ownership and permission attributes applied to
	// the destination after materialization.
	fileAttributes FileAttributes

	// httpClient performs URL fetches
	httpClient *http.Client

	// logger stream for the pipeline
	logger logger

	// maxDecompressedSize is the maximum size of the file after decompression.
	// Set value to -1 to disable the check.
	maxDecompressedSize int64

	// maxInputSize is the maximum size of the compressed input
	// Set value to -1 to disable the check.
	maxInputSize int64

	// telemetryHook is a function to consume telemetry data after a finished run
	// Important: do not adjust this value after the run started
	telemetryHook TelemetryHook

	// tempDir is the directory for scratch files; empty means the system default
	tempDir string
}

// Copy returns true if the source is expected to already have been transferred
// onto this host by an external collaborator.
func (c *Config) Copy() bool {
	return c.copySource
}

// CustomDecompressFileMode returns the file mode for the decompressed file.
// (respecting umask)
func (c *Config) CustomDecompressFileMode() fs.FileMode {
	return c.customDecompressFileMode
}

// DeepCheck returns true if an existing destination is compared byte-for-byte
// against the decompressed content. If false, only byte lengths are compared,
// which is faster but treats equal-sized files as unchanged even if their
// content differs.
func (c *Config) DeepCheck() bool {
	return c.deepCheck
}

// FileAttributes returns the attributes applied to the destination file.
func (c *Config) FileAttributes() FileAttributes {
	return c.fileAttributes
}

// HTTPClient returns the client used to fetch URL sources.
func (c *Config) HTTPClient() *http.Client {
	if c.httpClient == nil {
		return http.DefaultClient
	}
	return c.httpClient
}

// Logger returns the logger.
func (c *Config) Logger() logger {
	return c.logger
}

// MaxDecompressedSize returns the maximum size of the file after decompression.
func (c *Config) MaxDecompressedSize() int64 {
	return c.maxDecompressedSize
}

// MaxInputSize returns the maximum size of the compressed input.
func (c *Config) MaxInputSize() int64 {
	return c.maxInputSize
}

// TelemetryHook returns the telemetry hook.
func (c *Config) TelemetryHook() TelemetryHook {
	if c.telemetryHook == nil {
		return func(ctx context.Context, d *TelemetryData) {
			// noop
		}
	}
	return c.telemetryHook
}

// TempDir returns the directory for scratch files. An empty string selects
// the system default temp directory.
func (c *Config) TempDir() string {
	return c.tempDir
}

const (
	defaultCopySource               = true          // source transferred by an external collaborator
	defaultCustomDecompressFileMode = 0644          // default decompression permissions rw-r--r--
	defaultDeepCheck                = false         // compare byte lengths only
	defaultMaxDecompressedSize      = 1 << (10 * 3) // 1 Gb
	defaultMaxInputSize             = 1 << (10 * 3) // 1 Gb
)

var (
	// slog to discard
	defaultLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	// no operation telemetry hook
	defaultTelemetryHook = func(ctx context.Context, d *TelemetryData) {
		// noop
	}
)

// NewConfig is a generator option that takes opts as adjustments of the
// default configuration in an option pattern style.
func NewConfig(opts ...ConfigOption) *Config {

	// setup default values
	config := &Config{
		copySource:               defaultCopySource,
		customDecompressFileMode: defaultCustomDecompressFileMode,
		deepCheck:                defaultDeepCheck,
		logger:                   defaultLogger,
		maxDecompressedSize:      defaultMaxDecompressedSize,
		maxInputSize:             defaultMaxInputSize,
		telemetryHook:            defaultTelemetryHook,
	}

	// Loop through each option
	for _, opt := range opts {
		opt(config)
	}

	return config
}

// WithCopy options pattern function to announce whether the source has already
// been transferred onto this host. If set to false and the source names a URL,
// the pipeline fetches it before decompression.
func WithCopy(copy bool) ConfigOption {
	return func(c *Config) {
		c.copySource = copy
	}
}

// WithCustomDecompressFileMode options pattern function to set the file mode
// for the decompressed file. (respecting umask)
func WithCustomDecompressFileMode(mode fs.FileMode) ConfigOption {
	return func(c *Config) {
		c.customDecompressFileMode = mode
	}
}

// WithDeepCheck options pattern function to compare an existing destination
// byte-for-byte instead of by byte length only.
func WithDeepCheck(deep bool) ConfigOption {
	return func(c *Config) {
		c.deepCheck = deep
	}
}

// WithFileAttributes options pattern function to set the ownership and
// permission attributes applied to the destination after materialization.
func WithFileAttributes(attrs FileAttributes) ConfigOption {
	return func(c *Config) {
		c.fileAttributes = attrs
	}
}

// WithHTTPClient options pattern function to set a custom client for URL fetches.
func WithHTTPClient(client *http.Client) ConfigOption {
	return func(c *Config) {
		c.httpClient = client
	}
}

// WithLogger options pattern function to set a custom logger.
func WithLogger(logger logger) ConfigOption {
	return func(c *Config) {
		c.logger = logger
	}
}

// WithMaxDecompressedSize options pattern function to set the maximum size of
// the file after decompression. (-1 to disable check)
func WithMaxDecompressedSize(maxDecompressedSize int64) ConfigOption {
	return func(c *Config) {
		c.maxDecompressedSize = maxDecompressedSize
	}
}

// WithMaxInputSize options pattern function to set the maximum size of the
// compressed input. (-1 to disable check)
func WithMaxInputSize(maxInputSize int64) ConfigOption {
	return func(c *Config) {
		c.maxInputSize = maxInputSize
	}
}

// WithTelemetryHook options pattern function to set a telemetry hook that
// consumes the [TelemetryData] after a finished run.
func WithTelemetryHook(hook TelemetryHook) ConfigOption {
	return func(c *Config) {
		c.telemetryHook = hook
	}
}

// WithTempDir options pattern function to set the directory for scratch files.
func WithTempDir(dir string) ConfigOption {
	return func(c *Config) {
		c.tempDir = dir
	}
}
