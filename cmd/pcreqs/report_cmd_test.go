// Copyright 2025 The Device Compat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	perfclass "github.com/devicecompat/perfclass"
	"github.com/devicecompat/perfclass/reportlog"
	"github.com/devicecompat/perfclass/testutil"
)

func TestSummarize(t *testing.T) {
	recs := []perfclass.Record{
		{Requirements: []perfclass.RequirementRecord{
			{ID: "7.5/H-1-5", Met: true},
			{ID: "5.1/H-1-1", TestConfig: "720p", Met: true},
		}},
		{Requirements: []perfclass.RequirementRecord{
			{ID: "7.5/H-1-5", Met: false},
			{ID: "5.1/H-1-1", TestConfig: "720p", Variant: "vp9", Met: true},
		}},
	}
	got := summarize(recs)
	want := []reqSummary{
		{ID: "5.1/H-1-1 [720p]", Total: 1, Met: 1},
		{ID: "5.1/H-1-1 [720p] [vp9]", Total: 1, Met: 1},
		{ID: "7.5/H-1-5", Total: 2, Met: 1},
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("summarize mismatch (-got +want):\n%s", diff)
	}
}

func TestExpandPathsAndReadAll(t *testing.T) {
	td := testutil.TempDir(t)
	for _, class := range []string{"CameraTest", "CodecTest"} {
		w, err := reportlog.New(td, class)
		if err != nil {
			t.Fatal("reportlog.New failed: ", err)
		}
		if err := w.Write(&perfclass.Record{
			Test:          "testSample",
			Realm:         perfclass.RealmMustPass,
			TargetVersion: "T",
			Requirements:  []perfclass.RequirementRecord{{ID: "7.5/H-1-5", Met: true}},
		}); err != nil {
			t.Fatal("Write failed: ", err)
		}
		if err := w.Close(); err != nil {
			t.Fatal("Close failed: ", err)
		}
	}
	if err := testutil.WriteFiles(td, map[string]string{"notes.txt": "ignored"}); err != nil {
		t.Fatal("WriteFiles failed: ", err)
	}

	paths, err := expandPaths([]string{td})
	if err != nil {
		t.Fatal("expandPaths failed: ", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expandPaths returned %d paths (%v); want 2", len(paths), paths)
	}

	recs, err := readAll(context.Background(), paths)
	if err != nil {
		t.Fatal("readAll failed: ", err)
	}
	if len(recs) != 2 {
		t.Errorf("readAll returned %d records; want 2", len(recs))
	}
}
