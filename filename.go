// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package uncompress

import (
	"path/filepath"
	"strings"
)

// urlSchemes are the schemes that mark a source string as a URL. Checking for
// a known scheme avoids false positives with paths like C:/path/file.gz.
var urlSchemes = []string{"http", "https", "ftp", "ftps", "file"}

// suffixRule rewrites a recognized compression suffix into the suffix of the
// uncompressed file.
type suffixRule struct {
	suffix      string
	replacement string
}

// suffixRules are checked in order, first match wins.
var suffixRules = []suffixRule{
	{".gz", ""},
	{".bz2", ""},
	{".xz", ""},
	{".lzma", ""},
	{".txz", ".tar"},
	{".tlz", ".tar"},
}

// DeriveFilename computes the uncompressed output filename for a source path
// or URL. It is purely syntactic on the string and never opens the file: the
// derivation only governs the destination name when the destination is a
// directory, while the format detection that selects the decompressor is
// content based. The two can disagree for misleadingly named files.
//
// For URLs the last path segment is used and any query string is stripped.
// Recognized compression suffixes are removed; .txz and .tlz are rewritten
// to .tar. A name without a recognized suffix is returned unchanged.
func DeriveFilename(src string) string {
	filename := src

	if isURL(src) {
		// URL: extract path portion and get the last segment
		pathPart := strings.SplitN(src, "://", 2)[1]
		if idx := strings.LastIndex(pathPart, "/"); idx != -1 {
			filename = pathPart[idx+1:]
		} else {
			filename = pathPart
		}
		// strip query parameters
		filename = strings.SplitN(filename, "?", 2)[0]
	} else {
		// local path: get basename
		filename = filepath.Base(src)
	}

	for _, rule := range suffixRules {
		if strings.HasSuffix(filename, rule.suffix) {
			return filename[:len(filename)-len(rule.suffix)] + rule.replacement
		}
	}

	// no recognized compression suffix, return as-is
	return filename
}

// isURL reports whether src starts with a recognized scheme followed by "://".
func isURL(src string) bool {
	if !strings.Contains(src, "://") {
		return false
	}
	for _, scheme := range urlSchemes {
		if strings.HasPrefix(src, scheme+"://") {
			return true
		}
	}
	return false
}
