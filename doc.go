// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package uncompress converges a single compressed file onto a destination path.
//
// The compression format (gzip, bzip2 or xz) is detected from the file content,
// never from the filename, and the decompressed result replaces the destination
// only if the content actually differs. Repeated invocations with the same
// inputs therefore report no spurious change.
//
// The source may already exist locally, or it can be fetched from a URL before
// decompression. Configuration is done using the [Config] option pattern, which
// selects the comparison strategy, the logger, the telemetry hook, size limits
// and the file attributes applied to the final destination. Telemetry about a
// run is captured in [TelemetryData].
package uncompress
