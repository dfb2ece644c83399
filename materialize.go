// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package uncompress

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// compareBufferSize is the chunk size for byte-for-byte file comparison.
const compareBufferSize = 65536

// materialize promotes the scratch file tmp to dst, unless dst already holds
// equivalent content. Equivalence is judged by byte length only, or by a full
// byte-for-byte comparison when deepCheck is set. The fast mode deliberately
// treats equal-sized files as unchanged even if their content differs.
//
// materialize owns the cleanup of tmp: on the unchanged path the scratch file
// is removed, on the changed path it is moved to dst, and on a failed
// promotion it is removed as well.
func materialize(tmp string, dst string, deepCheck bool) (bool, error) {
	stat, err := os.Stat(dst)
	if os.IsNotExist(err) {
		// destination does not exist, place the file
		if err := moveFile(tmp, dst); err != nil {
			os.Remove(tmp)
			return false, err
		}
		return true, nil
	}
	if err != nil {
		os.Remove(tmp)
		return false, err
	}
	if stat.IsDir() {
		os.Remove(tmp)
		return false, fmt.Errorf("destination '%s' is a directory", dst)
	}

	var equal bool
	if deepCheck {
		equal, err = compareFileContents(tmp, dst)
	} else {
		equal, err = compareFileSizes(tmp, dst)
	}
	if err != nil {
		os.Remove(tmp)
		return false, err
	}

	if equal {
		os.Remove(tmp)
		return false, nil
	}

	if err := moveFile(tmp, dst); err != nil {
		os.Remove(tmp)
		return false, err
	}
	return true, nil
}

// compareFileSizes reports whether both files have the same byte length.
func compareFileSizes(a, b string) (bool, error) {
	statA, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	statB, err := os.Stat(b)
	if err != nil {
		return false, err
	}
	return statA.Size() == statB.Size(), nil
}

// compareFileContents reports whether both files have identical content. A
// size mismatch short-circuits before any bytes are read.
func compareFileContents(a, b string) (bool, error) {
	if equal, err := compareFileSizes(a, b); err != nil || !equal {
		return false, err
	}

	fa, err := os.Open(a)
	if err != nil {
		return false, err
	}
	defer fa.Close()
	fb, err := os.Open(b)
	if err != nil {
		return false, err
	}
	defer fb.Close()

	bufA := make([]byte, compareBufferSize)
	bufB := make([]byte, compareBufferSize)
	for {
		nA, errA := io.ReadFull(fa, bufA)
		nB, errB := io.ReadFull(fb, bufB)
		if !bytes.Equal(bufA[:nA], bufB[:nB]) {
			return false, nil
		}
		if errA == io.EOF || errA == io.ErrUnexpectedEOF {
			return errB == io.EOF || errB == io.ErrUnexpectedEOF, nil
		}
		if errA != nil {
			return false, errA
		}
		if errB != nil {
			return false, errB
		}
	}
}

// moveFile renames src to dst, falling back to a copy into the destination
// directory plus rename when src and dst are on different filesystems. The
// final step is always a rename, so dst is never observed half written.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	// cross-device move: copy next to dst, then rename into place
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	stat, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.CreateTemp(filepath.Dir(dst), filepath.Base(dst)+"-*")
	if err != nil {
		return err
	}

	_, err = io.Copy(out, in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(out.Name(), stat.Mode().Perm())
	}
	if err == nil {
		err = os.Rename(out.Name(), dst)
	}
	if err != nil {
		os.Remove(out.Name())
		return err
	}

	return os.Remove(src)
}
