// Copyright 2025 The Device Compat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package perfclass_test

import (
	"testing"

	perfclass "github.com/devicecompat/perfclass"
)

func TestVersionCodeString(t *testing.T) {
	for _, tc := range []struct {
		v    perfclass.VersionCode
		want string
	}{
		{perfclass.VersionR, "R"},
		{perfclass.VersionT, "T"},
		{perfclass.VersionV, "V"},
		{perfclass.VersionCode(36), "36"},
	} {
		if got := tc.v.String(); got != tc.want {
			t.Errorf("VersionCode(%d).String() = %q; want %q", int(tc.v), got, tc.want)
		}
	}
}

func TestParseVersionCode(t *testing.T) {
	for _, tc := range []struct {
		s       string
		want    perfclass.VersionCode
		wantErr bool
	}{
		{"R", perfclass.VersionR, false},
		{"r", perfclass.VersionR, false},
		{"U", perfclass.VersionU, false},
		{"33", perfclass.VersionT, false},
		{"36", perfclass.VersionCode(36), false},
		{"QQ", 0, true},
		{"-1", 0, true},
		{"", 0, true},
	} {
		got, err := perfclass.ParseVersionCode(tc.s)
		if gotErr := err != nil; gotErr != tc.wantErr {
			t.Errorf("ParseVersionCode(%q) = %v; wantErr %v", tc.s, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("ParseVersionCode(%q) = %v; want %v", tc.s, got, tc.want)
		}
	}
}
