// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

//go:build unix

package uncompress

import (
	"fmt"
	"os"
	"os/user"
	"strconv"

	"golang.org/x/sys/unix"
)

// applyOwnership converges the owner and group of the file at path. Empty
// owner or group means keep the current value. It reports whether a chown
// was necessary.
func applyOwnership(path string, owner, group string) (bool, error) {
	var stat unix.Stat_t
	if err := unix.Stat(path, &stat); err != nil {
		return false, fmt.Errorf("cannot stat '%s': %w", path, err)
	}

	uid := int(stat.Uid)
	gid := int(stat.Gid)

	if owner != "" {
		newUID, err := lookupUID(owner)
		if err != nil {
			return false, err
		}
		uid = newUID
	}
	if group != "" {
		newGID, err := lookupGID(group)
		if err != nil {
			return false, err
		}
		gid = newGID
	}

	if uid == int(stat.Uid) && gid == int(stat.Gid) {
		return false, nil
	}

	if err := os.Chown(path, uid, gid); err != nil {
		return false, err
	}
	return true, nil
}

// lookupUID resolves a user name or numeric uid.
func lookupUID(owner string) (int, error) {
	if uid, err := strconv.Atoi(owner); err == nil {
		return uid, nil
	}
	u, err := user.Lookup(owner)
	if err != nil {
		return 0, fmt.Errorf("cannot resolve owner '%s': %w", owner, err)
	}
	return strconv.Atoi(u.Uid)
}

// lookupGID resolves a group name or numeric gid.
func lookupGID(group string) (int, error) {
	if gid, err := strconv.Atoi(group); err == nil {
		return gid, nil
	}
	g, err := user.LookupGroup(group)
	if err != nil {
		return 0, fmt.Errorf("cannot resolve group '%s': %w", group, err)
	}
	return strconv.Atoi(g.Gid)
}
