// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package uncompress

import "fmt"

// applyOwnership is not supported outside unix; requesting an owner or group
// change is an error rather than a silent no-op.
func applyOwnership(path string, owner, group string) (bool, error) {
	return false, fmt.Errorf("changing ownership of '%s' is not supported on this platform", path)
}
