// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package uncompress

import (
	"io/fs"
	"os"
)

// FileAttributes are the ownership and permission attributes applied to the
// destination file after materialization. Zero-value fields are left alone,
// so the default configuration changes nothing.
type FileAttributes struct {
	// Owner is the user name or numeric uid that should own the file.
	Owner string

	// Group is the group name or numeric gid that should own the file.
	Group string

	// Mode is the permission mode of the file.
	Mode *fs.FileMode
}

// empty reports whether no attribute is requested.
func (a FileAttributes) empty() bool {
	return a.Owner == "" && a.Group == "" && a.Mode == nil
}

// applyFileAttributes converges the file at path onto the requested
// attributes. It reports whether anything had to change, so an attribute
// drift flips the run's changed flag even when the content was unchanged.
func applyFileAttributes(path string, attrs FileAttributes) (bool, error) {
	if attrs.empty() {
		return false, nil
	}

	changed := false

	if attrs.Mode != nil {
		stat, err := os.Stat(path)
		if err != nil {
			return changed, err
		}
		if stat.Mode().Perm() != attrs.Mode.Perm() {
			if err := os.Chmod(path, attrs.Mode.Perm()); err != nil {
				return changed, err
			}
			changed = true
		}
	}

	if attrs.Owner != "" || attrs.Group != "" {
		ownershipChanged, err := applyOwnership(path, attrs.Owner, attrs.Group)
		if err != nil {
			return changed, err
		}
		changed = changed || ownershipChanged
	}

	return changed, nil
}
