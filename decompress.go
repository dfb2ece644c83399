// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package uncompress

import (
	"context"
	"io"
	"os"
)

// decompressionFunc returns a reader that decompresses the given stream.
type decompressionFunc func(io.Reader) (io.Reader, error)

// decompressorFor returns the decompressor for the given format, or nil for
// [FormatUnsupported]. The format set is fixed; adding a format means adding
// a case here and an entry to the signature table.
func decompressorFor(f Format) decompressionFunc {
	switch f {
	case FormatGzip:
		return decompressGZipStream
	case FormatBzip2:
		return decompressBzip2Stream
	case FormatXz:
		return decompressXzStream
	default:
		return nil
	}
}

// decompressToTemp detects the compression format of the file at src and
// decompresses it into a uniquely named scratch file in the configured temp
// directory. The scratch file name starts with nameHint. On success the
// scratch path is returned and the caller owns the file; on error no scratch
// file is left behind.
func decompressToTemp(ctx context.Context, src string, nameHint string, cfg *Config, td *TelemetryData) (string, error) {
	f, err := os.Open(src)
	if err != nil {
		return "", wrapError(KindSourceUnavailable, err, "source '%s' not readable", src)
	}
	defer f.Close()

	// limit input size
	limitedReader := newLimitErrorReader(f, cfg.MaxInputSize())
	defer captureInputSize(td, limitedReader)

	// peek the header to identify the compression format
	headerReader, err := newHeaderReader(limitedReader, maxHeaderLength)
	if err != nil {
		return "", wrapError(KindDecompressionFailed, err, "cannot read source header")
	}
	format, mimeType := detectFormat(headerReader.PeekHeader())
	td.Format = format.String()
	cfg.Logger().Debug("detected format", "format", format, "mimeType", mimeType)
	if format == FormatUnsupported {
		return "", newError(KindUnsupportedFormat, "filetype not supported by uncompress: %s", mimeType)
	}

	// check if context is canceled
	if err := ctx.Err(); err != nil {
		return "", wrapError(KindDecompressionFailed, err, "context error")
	}

	// start decompression
	decompressedStream, err := decompressorFor(format)(headerReader)
	if err != nil {
		return "", wrapError(KindDecompressionFailed, err, "cannot start decompression")
	}
	defer func() {
		if closer, ok := decompressedStream.(io.Closer); ok {
			closer.Close()
		}
	}()

	// stream into a uniquely named scratch file
	tmp, err := os.CreateTemp(cfg.TempDir(), nameHint+"-*")
	if err != nil {
		return "", wrapError(KindDecompressionFailed, err, "cannot create scratch file")
	}

	n, err := io.Copy(limitWriter(tmp, cfg.MaxDecompressedSize()), decompressedStream)
	td.DecompressedSize = n
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(tmp.Name(), cfg.CustomDecompressFileMode())
	}
	if err != nil {
		os.Remove(tmp.Name())
		if err == io.ErrShortWrite {
			return "", wrapError(KindDecompressionFailed, err, "maximum decompressed size exceeded")
		}
		return "", wrapError(KindDecompressionFailed, err, "cannot decompress '%s'", src)
	}

	return tmp.Name(), nil
}

// captureInputSize stores the bytes read from the limited reader in td.
func captureInputSize(td *TelemetryData, l *limitErrorReader) {
	td.InputSize = int64(l.ReadBytes())
}
