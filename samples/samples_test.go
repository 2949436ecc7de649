// Copyright 2025 The Device Compat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package samples_test

import (
	"testing"
	"time"

	"github.com/devicecompat/perfclass/samples"
)

func TestRecorderPercentiles(t *testing.T) {
	r := samples.NewLatency()
	for v := int64(1); v <= 100; v++ {
		if err := r.Record(v); err != nil {
			t.Fatalf("Record(%d) failed: %v", v, err)
		}
	}
	if got := r.Count(); got != 100 {
		t.Errorf("Count = %d; want 100", got)
	}
	if got := r.Max(); got != 100 {
		t.Errorf("Max = %d; want 100", got)
	}
	// Three significant figures keep values this small exact.
	if got := r.Percentile(50); got != 50 {
		t.Errorf("Percentile(50) = %d; want 50", got)
	}
	if got := r.Percentile(90); got != 90 {
		t.Errorf("Percentile(90) = %d; want 90", got)
	}
	if got := r.Mean(); got != 50.5 {
		t.Errorf("Mean = %v; want 50.5", got)
	}
}

func TestRecordDuration(t *testing.T) {
	r := samples.NewLatency()
	if err := r.RecordDuration(450 * time.Millisecond); err != nil {
		t.Fatal("RecordDuration failed: ", err)
	}
	if got := r.Max(); got != 450 {
		t.Errorf("Max = %d; want 450", got)
	}
}

func TestRecordOutOfRange(t *testing.T) {
	r := samples.New(1, 1000, 3)
	if err := r.Record(1_000_000); err == nil {
		t.Error("Record above the trackable range unexpectedly succeeded")
	}
}
