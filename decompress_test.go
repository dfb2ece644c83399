// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package uncompress

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
)

func TestDecompressToTemp(t *testing.T) {
	testData := []byte("Hello, World!")

	tests := []struct {
		name     string
		compress compressFunc
	}{
		{
			name:     "gzip",
			compress: compressGzip,
		},
		{
			name:     "bzip2",
			compress: compressBzip2,
		},
		{
			name:     "xz",
			compress: compressXz,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dir := t.TempDir()
			src := createTestFile(t, dir, "compressed", test.compress(t, testData))
			cfg := NewConfig(WithTempDir(dir))
			td := &TelemetryData{}

			tmp, err := decompressToTemp(context.Background(), src, "out", cfg, td)
			if err != nil {
				t.Fatalf("decompressToTemp() error = %v", err)
			}
			defer os.Remove(tmp)

			got, err := os.ReadFile(tmp)
			if err != nil {
				t.Fatalf("error reading scratch file: %v", err)
			}
			if string(got) != string(testData) {
				t.Errorf("decompressed content = %q, want %q", got, testData)
			}
			if td.Format != test.name {
				t.Errorf("telemetry format = %q, want %q", td.Format, test.name)
			}
			if td.DecompressedSize != int64(len(testData)) {
				t.Errorf("telemetry decompressed size = %d, want %d", td.DecompressedSize, len(testData))
			}
		})
	}
}

func TestDecompressToTempFailures(t *testing.T) {
	testData := []byte("Hello, World!")

	tests := []struct {
		name     string
		data     func(t *testing.T) []byte
		cfg      func(dir string) *Config
		wantKind Kind
	}{
		{
			name: "unsupported content is rejected with the detected type",
			data: func(t *testing.T) []byte { return compressZstd(t, testData) },
			cfg: func(dir string) *Config {
				return NewConfig(WithTempDir(dir))
			},
			wantKind: KindUnsupportedFormat,
		},
		{
			name: "plain text is rejected",
			data: func(t *testing.T) []byte { return []byte("not compressed at all\n") },
			cfg: func(dir string) *Config {
				return NewConfig(WithTempDir(dir))
			},
			wantKind: KindUnsupportedFormat,
		},
		{
			name: "truncated gzip stream",
			data: func(t *testing.T) []byte { return compressGzip(t, testData)[:5] },
			cfg: func(dir string) *Config {
				return NewConfig(WithTempDir(dir))
			},
			wantKind: KindDecompressionFailed,
		},
		{
			name: "maximum decompressed size exceeded",
			data: func(t *testing.T) []byte { return compressGzip(t, testData) },
			cfg: func(dir string) *Config {
				return NewConfig(WithTempDir(dir), WithMaxDecompressedSize(1))
			},
			wantKind: KindDecompressionFailed,
		},
		{
			name: "maximum input size exceeded",
			data: func(t *testing.T) []byte { return compressGzip(t, testData) },
			cfg: func(dir string) *Config {
				return NewConfig(WithTempDir(dir), WithMaxInputSize(4))
			},
			wantKind: KindDecompressionFailed,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			srcDir := t.TempDir()
			tempDir := t.TempDir()
			src := createTestFile(t, srcDir, "compressed", test.data(t))
			td := &TelemetryData{}

			_, err := decompressToTemp(context.Background(), src, "out", test.cfg(tempDir), td)
			if err == nil {
				t.Fatal("decompressToTemp() expected error")
			}
			var uErr *Error
			if !errors.As(err, &uErr) || uErr.Kind() != test.wantKind {
				t.Errorf("decompressToTemp() error = %v, want kind %v", err, test.wantKind)
			}

			// no scratch file may be left behind on failure
			entries, readErr := os.ReadDir(tempDir)
			if readErr != nil {
				t.Fatalf("error reading temp dir: %v", readErr)
			}
			if len(entries) != 0 {
				t.Errorf("scratch file left behind: %v", entries)
			}
		})
	}
}

func TestDecompressToTempUnsupportedNamesType(t *testing.T) {
	dir := t.TempDir()
	src := createTestFile(t, dir, "data", compressZstd(t, []byte("Hello, World!")))

	_, err := decompressToTemp(context.Background(), src, "out", NewConfig(WithTempDir(dir)), &TelemetryData{})
	if err == nil {
		t.Fatal("decompressToTemp() expected error")
	}
	if want := "application/zstd"; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q does not name the detected type %q", err, want)
	}
}

func TestDecompressToTempCanceledContext(t *testing.T) {
	dir := t.TempDir()
	src := createTestFile(t, dir, "data", compressGzip(t, []byte("Hello, World!")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := decompressToTemp(ctx, src, "out", NewConfig(WithTempDir(dir)), &TelemetryData{})
	if err == nil {
		t.Fatal("decompressToTemp() expected error for canceled context")
	}
}

func TestDecompressorFor(t *testing.T) {
	for _, format := range []Format{FormatGzip, FormatBzip2, FormatXz} {
		if decompressorFor(format) == nil {
			t.Errorf("decompressorFor(%v) = nil", format)
		}
	}
	if decompressorFor(FormatUnsupported) != nil {
		t.Error("decompressorFor(FormatUnsupported) != nil")
	}
}
