// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package uncompress

import (
	"context"
	"os"
	"path/filepath"
)

// Result is the outcome of a successful uncompress run.
type Result struct {
	// Changed is true if the destination was created or overwritten, or if
	// applying file attributes changed anything.
	Changed bool `json:"changed"`

	// Dest is the final resolved destination path.
	Dest string `json:"dest"`
}

// Uncompress decompresses the file at src and converges the result onto dst.
//
// If dst names an existing directory, the output filename is derived from src
// by stripping the compression suffix (see [DeriveFilename]); otherwise dst is
// the literal output path. The compression format is detected from the source
// content, never from its name.
//
// If src does not exist locally and the configuration has [WithCopy] set to
// false, a URL source is fetched first. An existing destination is replaced
// only when the decompressed content differs under the configured comparison
// strategy, so repeated runs with the same inputs report Changed only once.
//
// The pipeline is linear with no retries; every failure is terminal and is
// returned as an [*Error] carrying the failure [Kind].
func Uncompress(ctx context.Context, src string, dst string, cfg *Config) (res *Result, err error) {
	if cfg == nil {
		cfg = NewConfig()
	}

	// prepare telemetry capturing
	td := &TelemetryData{}
	defer cfg.TelemetryHook()(ctx, td)
	defer captureDuration(td, now())
	defer func() {
		if err != nil {
			td.LastError = err
		}
	}()

	cfg.Logger().Info("uncompress", "src", src, "dst", dst)

	// if dst is an existing directory, derive the output filename from src
	if stat, statErr := os.Stat(dst); statErr == nil && stat.IsDir() {
		dst = filepath.Join(dst, DeriveFilename(src))
		cfg.Logger().Debug("derived destination", "dst", dst)
	}

	// locate the source, fetching it if necessary
	local, scratch, err := resolveSource(ctx, src, cfg)
	if err != nil {
		return nil, err
	}
	if scratch {
		defer os.Remove(local)
	}

	// front-load all preconditions before any decompression work
	if err := checkSource(local); err != nil {
		return nil, err
	}
	if stat, statErr := os.Stat(filepath.Dir(dst)); statErr != nil || !stat.IsDir() {
		return nil, newError(KindDestinationInvalid, "destination '%s' is not a directory", dst)
	}

	// check if context is canceled
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, wrapError(KindSourceUnavailable, ctxErr, "context error")
	}

	// detect format and decompress into a scratch file
	tmp, err := decompressToTemp(ctx, local, filepath.Base(dst), cfg, td)
	if err != nil {
		return nil, err
	}

	// replace the destination only if the content differs
	changed, err := materialize(tmp, dst, cfg.DeepCheck())
	if err != nil {
		return nil, wrapError(KindFinalizationFailed, err, "cannot materialize '%s'", dst)
	}
	cfg.Logger().Debug("materialized", "dst", dst, "changed", changed)

	// converge ownership and permissions, which may itself constitute a change
	attrChanged, err := applyFileAttributes(dst, cfg.FileAttributes())
	if err != nil {
		return nil, wrapError(KindFinalizationFailed, err, "unexpected error when accessing exploded file")
	}
	changed = changed || attrChanged

	td.Changed = changed
	return &Result{Changed: changed, Dest: dst}, nil
}
