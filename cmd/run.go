// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alecthomas/kong"

	uncompress "github.com/hashicorp/go-uncompress"
)

// CLI are the cli parameters for the go-uncompress binary
type CLI struct {
	Source      string `arg:"" name:"src" help:"Path or URL of the compressed file."`
	Destination string `arg:"" name:"dest" help:"Destination path. If it names an existing directory, the output filename is derived from src."`

	DeepCheck           bool             `short:"d" help:"Compare an existing destination byte-for-byte instead of by size only."`
	Group               string           `optional:"" help:"Group name or gid for the destination file."`
	MaxDecompressedSize int64            `optional:"" default:"1073741824" help:"Maximum size after decompression (in bytes). (disable check: -1)"`
	MaxInputSize        int64            `optional:"" default:"1073741824" help:"Maximum input size that is allowed (in bytes). (disable check: -1)"`
	Mode                string           `optional:"" help:"Octal permission mode for the destination file."`
	NoCopy              bool             `short:"n" help:"Source is resolved on this host; a URL source is downloaded first."`
	Owner               string           `optional:"" help:"Owner name or uid for the destination file."`
	Telemetry           bool             `short:"T" optional:"" default:"false" help:"Print telemetry data to log after the run."`
	TempDir             string           `optional:"" help:"Directory for scratch files."`
	Verbose             bool             `short:"v" optional:"" help:"Verbose logging."`
	Version             kong.VersionFlag `short:"V" optional:"" help:"Print release version information."`
}

// Run is the entrypoint into go-uncompress as a cli tool
func Run(version, commit, date string) {
	ctx := context.Background()
	var cli CLI
	kong.Parse(&cli,
		kong.Description("Uncompress a single gzip, bzip2 or xz compressed file onto a destination path"),
		kong.UsageOnError(),
		kong.Vars{
			"version": fmt.Sprintf("%s (%s), commit %s, built at %s", filepath.Base(os.Args[0]), version, commit, date),
		},
	)

	// Check for verbose output
	logLevel := slog.LevelError
	if cli.Verbose {
		logLevel = slog.LevelDebug
	}

	// setup logger
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	// setup telemetry hook
	telemetryToLog := func(ctx context.Context, td *uncompress.TelemetryData) {
		if cli.Telemetry {
			logger.Info("uncompress finished", "telemetry", td)
		}
	}

	attrs, err := fileAttributes(cli)
	if err != nil {
		logger.Error("invalid file attributes", "err", err)
		os.Exit(1)
	}

	// process cli params
	cfg := uncompress.NewConfig(
		uncompress.WithCopy(!cli.NoCopy),
		uncompress.WithDeepCheck(cli.DeepCheck),
		uncompress.WithFileAttributes(attrs),
		uncompress.WithLogger(logger),
		uncompress.WithMaxDecompressedSize(cli.MaxDecompressedSize),
		uncompress.WithMaxInputSize(cli.MaxInputSize),
		uncompress.WithTelemetryHook(telemetryToLog),
		uncompress.WithTempDir(cli.TempDir),
	)

	res, err := uncompress.Uncompress(ctx, cli.Source, cli.Destination, cfg)
	if err != nil {
		logger.Error("uncompress failed", "err", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("changed=%t dest=%s\n", res.Changed, res.Dest)
}

// fileAttributes translates the cli flags into [uncompress.FileAttributes].
func fileAttributes(cli CLI) (uncompress.FileAttributes, error) {
	attrs := uncompress.FileAttributes{
		Owner: cli.Owner,
		Group: cli.Group,
	}
	if cli.Mode != "" {
		parsed, err := strconv.ParseUint(cli.Mode, 8, 32)
		if err != nil {
			return attrs, fmt.Errorf("cannot parse mode '%s': %w", cli.Mode, err)
		}
		mode := fs.FileMode(parsed)
		attrs.Mode = &mode
	}
	return attrs, nil
}
