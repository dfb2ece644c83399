// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package uncompress

import (
	"bytes"
	"testing"
)

func TestIsGZip(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
		want   bool
	}{
		{
			name:   "Valid GZIP header",
			header: []byte{0x1f, 0x8b, 0x08},
			want:   true,
		},
		{
			name:   "Invalid GZIP header",
			header: []byte{0x1f, 0x7b, 0x07},
			want:   false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := isGZip(test.header); got != test.want {
				t.Errorf("isGZip() = %v, want %v", got, test.want)
			}
		})
	}
}

func TestIsBzip2(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
		want   bool
	}{
		{
			name:   "Valid bzip2 header",
			header: []byte("BZh9Some"),
			want:   true,
		},
		{
			name:   "Invalid bzip2 header",
			header: []byte("BZx9Some"),
			want:   false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := isBzip2(test.header); got != test.want {
				t.Errorf("isBzip2() = %v, want %v", got, test.want)
			}
		})
	}
}

func TestIsXz(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
		want   bool
	}{
		{
			name:   "Valid xz header",
			header: []byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00, 0x01},
			want:   true,
		},
		{
			name:   "Invalid xz header",
			header: []byte{0xFD, 0x37, 0x7A, 0x58, 0x5B, 0x00},
			want:   false,
		},
		{
			name:   "Header too short",
			header: []byte{0xFD, 0x37},
			want:   false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := isXz(test.header); got != test.want {
				t.Errorf("isXz() = %v, want %v", got, test.want)
			}
		})
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name         string
		header       []byte
		wantFormat   Format
		wantMimeType string
	}{
		{
			name:         "gzip",
			header:       []byte{0x1f, 0x8b, 0x08, 0x00},
			wantFormat:   FormatGzip,
			wantMimeType: "application/gzip",
		},
		{
			name:         "bzip2",
			header:       []byte("BZh91AY&SY"),
			wantFormat:   FormatBzip2,
			wantMimeType: "application/x-bzip2",
		},
		{
			name:         "xz",
			header:       []byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00},
			wantFormat:   FormatXz,
			wantMimeType: "application/x-xz",
		},
		{
			name:         "zstd is named but not supported",
			header:       []byte{0x28, 0xb5, 0x2f, 0xfd, 0x00},
			wantFormat:   FormatUnsupported,
			wantMimeType: "application/zstd",
		},
		{
			name:         "zip is named but not supported",
			header:       []byte{0x50, 0x4B, 0x03, 0x04, 0x00},
			wantFormat:   FormatUnsupported,
			wantMimeType: "application/zip",
		},
		{
			name:         "plain text",
			header:       []byte("just some text\n"),
			wantFormat:   FormatUnsupported,
			wantMimeType: "text/plain",
		},
		{
			name:         "empty header",
			header:       nil,
			wantFormat:   FormatUnsupported,
			wantMimeType: "inode/x-empty",
		},
		{
			name:         "unknown binary",
			header:       []byte{0x00, 0x01, 0x02, 0x03},
			wantFormat:   FormatUnsupported,
			wantMimeType: "application/octet-stream",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			format, mimeType := detectFormat(test.header)
			if format != test.wantFormat {
				t.Errorf("detectFormat() format = %v, want %v", format, test.wantFormat)
			}
			if mimeType != test.wantMimeType {
				t.Errorf("detectFormat() mimeType = %q, want %q", mimeType, test.wantMimeType)
			}
		})
	}
}

func TestDetectFile(t *testing.T) {
	testData := []byte("Hello, World!")

	tests := []struct {
		name       string
		filename   string
		compress   compressFunc
		wantFormat Format
	}{
		{
			name:       "gzip without extension",
			filename:   "data",
			compress:   compressGzip,
			wantFormat: FormatGzip,
		},
		{
			name:       "bzip2 with misleading gzip extension",
			filename:   "data.gz",
			compress:   compressBzip2,
			wantFormat: FormatBzip2,
		},
		{
			name:       "xz with misleading extension",
			filename:   "data.bz2",
			compress:   compressXz,
			wantFormat: FormatXz,
		},
		{
			name:       "lz4 is not supported",
			filename:   "data.gz",
			compress:   compressLZ4,
			wantFormat: FormatUnsupported,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := createTestFile(t, t.TempDir(), test.filename, test.compress(t, testData))

			format, mimeType, err := DetectFile(path)
			if err != nil {
				t.Fatalf("DetectFile() error = %v", err)
			}
			if format != test.wantFormat {
				t.Errorf("DetectFile() format = %v (%s), want %v", format, mimeType, test.wantFormat)
			}
		})
	}
}

func TestMaxHeaderLength(t *testing.T) {
	// the tar signature sits deepest in the header
	want := offsetTar + len(magicBytesTar[0])
	if maxHeaderLength != want {
		t.Errorf("maxHeaderLength = %d, want %d", maxHeaderLength, want)
	}
}

func TestFormatMimeType(t *testing.T) {
	if got := FormatGzip.MimeType(); got != "application/gzip" {
		t.Errorf("FormatGzip.MimeType() = %q", got)
	}
	if got := FormatUnsupported.MimeType(); got != "application/octet-stream" {
		t.Errorf("FormatUnsupported.MimeType() = %q", got)
	}
}

func TestMatchesMagicBytes(t *testing.T) {
	data := append(bytes.Repeat([]byte{0x00}, 4), []byte("magic")...)
	if !matchesMagicBytes(data, 4, [][]byte{[]byte("magic")}) {
		t.Error("matchesMagicBytes() = false, want true")
	}
	if matchesMagicBytes(data, 5, [][]byte{[]byte("magic")}) {
		t.Error("matchesMagicBytes() = true, want false")
	}
}
