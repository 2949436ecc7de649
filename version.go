// Copyright 2025 The Device Compat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package perfclass

import (
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/devicecompat/perfclass/errors"
)

// VersionCode identifies a platform release. The domain is ordered and
// open-ended: threshold tables are resolved by floor lookup over whatever
// version codes they declare, so new releases only require new table entries.
type VersionCode int

// Version codes of the releases the shipped requirement definitions cover.
// The numeric values match the platform's SDK version numbers so that report
// records stay comparable with device-reported values.
const (
	VersionR VersionCode = 30
	VersionS VersionCode = 31
	VersionT VersionCode = 33
	VersionU VersionCode = 34
	VersionV VersionCode = 35
)

var versionNames = map[VersionCode]string{
	VersionR: "R",
	VersionS: "S",
	VersionT: "T",
	VersionU: "U",
	VersionV: "V",
}

// String returns the release letter for known versions and the decimal SDK
// number otherwise.
func (v VersionCode) String() string {
	if name, ok := versionNames[v]; ok {
		return name
	}
	return strconv.Itoa(int(v))
}

// ParseVersionCode parses a version tag as used in requirement definition
// files: a release letter ("R", "S", ...) or a decimal SDK number.
func ParseVersionCode(s string) (VersionCode, error) {
	for v, name := range versionNames {
		if strings.EqualFold(s, name) {
			return v, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return VersionCode(n), nil
	}
	return 0, errors.Errorf("unknown version tag %q", s)
}

// floorVersion returns the greatest element of versions that is <= target.
// versions must be sorted in ascending order.
func floorVersion(versions []VersionCode, target VersionCode) (VersionCode, bool) {
	idx, found := slices.BinarySearch(versions, target)
	if found {
		return versions[idx], true
	}
	if idx == 0 {
		return 0, false
	}
	return versions[idx-1], true
}
