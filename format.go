// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package uncompress

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"unicode"
	"unicode/utf8"
)

// Format is the compression format of a source file, determined solely from
// its content signature and never from the filename extension.
type Format int

const (
	// FormatUnsupported is content that matches none of the supported
	// compression signatures.
	FormatUnsupported Format = iota

	// FormatGzip is gzip compressed content.
	FormatGzip

	// FormatBzip2 is bzip2 compressed content.
	FormatBzip2

	// FormatXz is xz compressed content.
	FormatXz
)

// String returns the common name of the format.
func (f Format) String() string {
	switch f {
	case FormatGzip:
		return fileExtensionGZip
	case FormatBzip2:
		return fileExtensionBzip2
	case FormatXz:
		return fileExtensionXz
	default:
		return "unsupported"
	}
}

// MimeType returns the media type reported for the format, compatible with
// the output of `file -b -i`.
func (f Format) MimeType() string {
	switch f {
	case FormatGzip:
		return mimeTypeGZip
	case FormatBzip2:
		return mimeTypeBzip2
	case FormatXz:
		return mimeTypeXz
	default:
		return mimeTypeOctetStream
	}
}

const (
	mimeTypeOctetStream = "application/octet-stream"
	mimeTypeEmpty       = "inode/x-empty"
	mimeTypeText        = "text/plain"
)

// signature associates a media type with the magic bytes that identify it.
// Only entries with a format other than [FormatUnsupported] can be
// decompressed; the rest exist so that rejected content is named precisely.
type signature struct {
	mimeType   string
	format     Format
	offset     int
	magicBytes [][]byte
}

// signatures is the closed set of recognized content signatures, checked in
// order with first match winning. The tar entry is last because its magic
// bytes sit at a large offset.
var signatures = []signature{
	{mimeTypeGZip, FormatGzip, 0, magicBytesGZip},
	{mimeTypeBzip2, FormatBzip2, 0, magicBytesBzip2},
	{mimeTypeXz, FormatXz, 0, magicBytesXz},
	{"application/zstd", FormatUnsupported, 0, magicBytesZstd},
	{"application/x-lz4", FormatUnsupported, 0, magicBytesLZ4},
	{"application/zip", FormatUnsupported, 0, magicBytesZip},
	{"application/x-7z-compressed", FormatUnsupported, 0, magicBytes7zip},
	{"application/x-rar", FormatUnsupported, 0, magicBytesRar},
	{"application/x-snappy-framed", FormatUnsupported, 0, magicBytesSnappy},
	{"application/x-lzma", FormatUnsupported, 0, magicBytesLzma},
	{"application/x-tar", FormatUnsupported, offsetTar, magicBytesTar},
}

// magicBytesZstd is the magic bytes for zstandard files.
// reference: https://www.rfc-editor.org/rfc/rfc8878.html
var magicBytesZstd = [][]byte{
	{0x28, 0xb5, 0x2f, 0xfd},
}

// magicBytesLZ4 is the magic bytes for LZ4 frame files.
// reference https://android.googlesource.com/platform/external/lz4/+/HEAD/doc/lz4_Frame_format.md
var magicBytesLZ4 = [][]byte{
	{0x04, 0x22, 0x4D, 0x18},
}

// magicBytesZip contains the magic bytes for a zip archive.
// reference: https://golang.org/pkg/archive/zip/
var magicBytesZip = [][]byte{
	{0x50, 0x4B, 0x03, 0x04},
}

// magicBytes7zip contains the magic bytes for a 7zip archive.
var magicBytes7zip = [][]byte{
	{0x37, 0x7a, 0xbc, 0xaf, 0x27, 0x1c},
}

// magicBytesRar are the magic bytes for Rar files.
var magicBytesRar = [][]byte{
	{0x52, 0x61, 0x72, 0x21, 0x1A, 0x07, 0x00},       // Rar 1.5
	{0x52, 0x61, 0x72, 0x21, 0x1A, 0x07, 0x01, 0x00}, // Rar 5.0
}

// magicBytesSnappy is the magic bytes for framed snappy files.
var magicBytesSnappy = [][]byte{
	append([]byte{0xff, 0x06, 0x00, 0x00}, []byte("sNaPpY")...),
}

// magicBytesLzma is the magic bytes for legacy lzma_alone files.
var magicBytesLzma = [][]byte{
	{0x5d, 0x00, 0x00},
}

// offsetTar is the offset where the magic bytes are located in the file
const offsetTar = 257

// magicBytesTar are the magic bytes for tar files
var magicBytesTar = [][]byte{
	[]byte("ustar\x00tar\x00"),
	[]byte("ustar\x00"),
	[]byte("ustar  \x00"),
}

// maxHeaderLength is the maximum header length over all signatures
var maxHeaderLength int

// init calculates the maximum header length
func init() {
	for _, sig := range signatures {
		needs := sig.offset
		for _, mb := range sig.magicBytes {
			if len(mb)+sig.offset > needs {
				needs = len(mb) + sig.offset
			}
		}
		if needs > maxHeaderLength {
			maxHeaderLength = needs
		}
	}
}

// detectFormat classifies header against the signature table. It returns the
// detected format and the media type of whatever was recognized, so that
// unsupported content can be rejected with a precise name.
func detectFormat(header []byte) (Format, string) {
	if len(header) == 0 {
		return FormatUnsupported, mimeTypeEmpty
	}

	for _, sig := range signatures {
		if matchesMagicBytes(header, sig.offset, sig.magicBytes) {
			return sig.format, sig.mimeType
		}
	}

	if isText(header) {
		return FormatUnsupported, mimeTypeText
	}

	return FormatUnsupported, mimeTypeOctetStream
}

// DetectFile reports the compression format of the file at path based on its
// content signature. For unrecognized content it returns [FormatUnsupported]
// together with the media type of whatever was identified.
func DetectFile(path string) (Format, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return FormatUnsupported, "", fmt.Errorf("cannot open file: %w", err)
	}
	defer f.Close()

	header := make([]byte, maxHeaderLength)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return FormatUnsupported, "", fmt.Errorf("cannot read header: %w", err)
	}

	format, mimeType := detectFormat(header[:n])
	return format, mimeType, nil
}

// matchesMagicBytes checks if the data matches any of the magic bytes at offset
func matchesMagicBytes(data []byte, offset int, magicBytes [][]byte) bool {
	// check all possible magic bytes until match is found
	for _, mb := range magicBytes {
		// check if header is long enough
		if offset+len(mb) > len(data) {
			continue
		}

		// check for byte match
		if bytes.Equal(mb, data[offset:offset+len(mb)]) {
			return true
		}
	}

	// no match found
	return false
}

// isText reports whether header looks like printable text, so that plain text
// input is rejected with the name an operator would expect.
func isText(header []byte) bool {
	if !utf8.Valid(header) {
		return false
	}
	for _, r := range string(header) {
		if r == utf8.RuneError {
			return false
		}
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
