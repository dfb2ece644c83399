// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package uncompress

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"
)

// resolveSource locates the compressed source file on this host. If src does
// not exist locally and the configuration allows it, a URL source is fetched
// into a uniquely named scratch file. The returned scratch flag is true when
// the caller must remove the local file after the run.
func resolveSource(ctx context.Context, src string, cfg *Config) (local string, scratch bool, err error) {
	if _, err := os.Stat(src); err == nil {
		return src, false, nil
	}

	// source was expected to arrive via the external transfer collaborator
	if cfg.Copy() {
		return "", false, newError(KindSourceUnavailable, "source '%s' failed to transfer", src)
	}

	if strings.Contains(src, "://") {
		local, err := fetchURL(ctx, src, cfg)
		if err != nil {
			return "", false, err
		}
		return local, true, nil
	}

	return "", false, newError(KindSourceUnavailable, "source '%s' does not exist", src)
}

// fetchURL downloads src into a scratch file named after the last path
// segment of the URL and returns the local path.
func fetchURL(ctx context.Context, src string, cfg *Config) (string, error) {
	cfg.Logger().Info("downloading source", "url", src)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return "", wrapError(KindDownloadFailed, err, "failure downloading %s", src)
	}
	resp, err := cfg.HTTPClient().Do(req)
	if err != nil {
		return "", wrapError(KindDownloadFailed, err, "failure downloading %s", src)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", newError(KindDownloadFailed, "failure downloading %s, %d", src, resp.StatusCode)
	}

	f, err := os.CreateTemp(cfg.TempDir(), urlFilename(src)+"-*")
	if err != nil {
		return "", wrapError(KindDownloadFailed, err, "failure downloading %s", src)
	}

	_, err = io.Copy(f, resp.Body)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(f.Name())
		return "", wrapError(KindDownloadFailed, err, "failure downloading %s", src)
	}

	return f.Name(), nil
}

// urlFilename returns the last path segment of a URL with any query stripped.
func urlFilename(src string) string {
	name := src
	if idx := strings.LastIndex(name, "/"); idx != -1 {
		name = name[idx+1:]
	}
	return strings.SplitN(name, "?", 2)[0]
}

// checkSource verifies the entry preconditions on a resolved local source:
// it must exist, be readable and contain at least one byte.
func checkSource(src string) error {
	stat, err := os.Stat(src)
	if err != nil {
		return wrapError(KindSourceUnavailable, err, "source '%s' not readable", src)
	}
	if stat.Size() == 0 {
		return newError(KindSourceEmpty, "invalid archive '%s', the file is 0 bytes", src)
	}

	f, err := os.Open(src)
	if err != nil {
		return wrapError(KindSourceUnavailable, err, "source '%s' not readable", src)
	}
	f.Close()

	return nil
}
