// Copyright 2025 The Device Compat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package perfclass_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	perfclass "github.com/devicecompat/perfclass"
)

// newLatencyRequirement builds the requirement used by several tests:
// one float measurement "latency" judged by <=, with thresholds 1000 at R
// and 500 at T.
func newLatencyRequirement(t *testing.T, opts ...perfclass.ReqOption) *perfclass.Requirement {
	t.Helper()
	m := perfclass.NewMeasurement("latency").
		Type(perfclass.TypeFloat).
		Compare(perfclass.ComparisonLessThanOrEqual).
		RequiredValue(perfclass.VersionR, 1000.0).
		RequiredValue(perfclass.VersionT, 500.0).
		MustBuild()
	r, err := perfclass.NewRequirement("8.2/H-1-1", []*perfclass.RequiredMeasurement{m}, opts...)
	if err != nil {
		t.Fatal("NewRequirement failed: ", err)
	}
	return r
}

func TestSetMeasuredValueUnknownKey(t *testing.T) {
	r := newLatencyRequirement(t)
	for _, v := range []interface{}{1.0, int64(1), true, "x"} {
		if err := r.SetMeasuredValue("nonexistent", v); !errors.Is(err, perfclass.ErrUnknownMeasurementKey) {
			t.Errorf("SetMeasuredValue(nonexistent, %v) = %v; want ErrUnknownMeasurementKey", v, err)
		}
	}
}

func TestSetMeasuredValueTypeMismatch(t *testing.T) {
	r := newLatencyRequirement(t)
	if err := r.SetMeasuredValue("latency", "fast"); !errors.Is(err, perfclass.ErrTypeMismatch) {
		t.Errorf("SetMeasuredValue with string = %v; want ErrTypeMismatch", err)
	}
}

func TestSetMeasuredValueOverwrites(t *testing.T) {
	r := newLatencyRequirement(t)
	if err := r.SetMeasuredValue("latency", 700.0); err != nil {
		t.Fatal("SetMeasuredValue failed: ", err)
	}
	if err := r.SetMeasuredValue("latency", 450.0); err != nil {
		t.Fatal("SetMeasuredValue overwrite failed: ", err)
	}
	got, err := r.MeasuredFloat("latency")
	if err != nil {
		t.Fatal("MeasuredFloat failed: ", err)
	}
	if got != 450.0 {
		t.Errorf("MeasuredFloat(latency) = %v; want 450", got)
	}
}

func TestRequirementLifecycle(t *testing.T) {
	r := newLatencyRequirement(t)
	if s := r.State(); s != perfclass.StateUnset {
		t.Errorf("State = %v; want StateUnset", s)
	}
	if err := r.SetMeasuredValue("latency", 450.0); err != nil {
		t.Fatal("SetMeasuredValue failed: ", err)
	}
	if s := r.State(); s != perfclass.StateReady {
		t.Errorf("State = %v; want StateReady", s)
	}

	pce := perfclass.New(t.Name(), perfclass.VersionT)
	if _, err := pce.AddRequirement(r); err != nil {
		t.Fatal("AddRequirement failed: ", err)
	}
	if met, err := pce.SubmitAndVerify(context.Background()); err != nil || !met {
		t.Fatalf("SubmitAndVerify = %v, %v; want true, nil", met, err)
	}
	if s := r.State(); s != perfclass.StateEvaluated {
		t.Errorf("State = %v; want StateEvaluated", s)
	}

	// The requirement is frozen after evaluation.
	if err := r.SetMeasuredValue("latency", 100.0); !errors.Is(err, perfclass.ErrAlreadyEvaluated) {
		t.Errorf("SetMeasuredValue after evaluation = %v; want ErrAlreadyEvaluated", err)
	}
}

func TestResolvedID(t *testing.T) {
	for _, tc := range []struct {
		opts []perfclass.ReqOption
		want string
	}{
		{nil, "8.2/H-1-1"},
		{[]perfclass.ReqOption{perfclass.WithTestConfig("720p")}, "8.2/H-1-1 [720p]"},
		{
			[]perfclass.ReqOption{perfclass.WithTestConfig("720p"), perfclass.WithVariant("vp9")},
			"8.2/H-1-1 [720p] [vp9]",
		},
	} {
		r := newLatencyRequirement(t, tc.opts...)
		if got := r.ResolvedID(); got != tc.want {
			t.Errorf("ResolvedID = %q; want %q", got, tc.want)
		}
	}
}

func TestMeasurementKeys(t *testing.T) {
	a := perfclass.NewMeasurement("a").Type(perfclass.TypeInt).Compare(perfclass.ComparisonEqual).MustBuild()
	b := perfclass.NewMeasurement("b").Type(perfclass.TypeInt).Compare(perfclass.ComparisonEqual).MustBuild()
	r, err := perfclass.NewRequirement("8.2/H-1-2", []*perfclass.RequiredMeasurement{a, b})
	if err != nil {
		t.Fatal("NewRequirement failed: ", err)
	}
	if diff := cmp.Diff(r.MeasurementKeys(), []string{"a", "b"}); diff != "" {
		t.Errorf("MeasurementKeys mismatch (-got +want):\n%s", diff)
	}
}

func TestNewRequirementRejectsDuplicateKeys(t *testing.T) {
	a := perfclass.NewMeasurement("a").Type(perfclass.TypeInt).Compare(perfclass.ComparisonEqual).MustBuild()
	a2 := perfclass.NewMeasurement("a").Type(perfclass.TypeInt).Compare(perfclass.ComparisonEqual).MustBuild()
	if _, err := perfclass.NewRequirement("8.2/H-1-3", []*perfclass.RequiredMeasurement{a, a2}); err == nil {
		t.Error("NewRequirement with duplicate keys unexpectedly succeeded")
	}
}

func TestTypedGetters(t *testing.T) {
	ms := []*perfclass.RequiredMeasurement{
		perfclass.NewMeasurement("b").Type(perfclass.TypeBool).Compare(perfclass.ComparisonEqual).MustBuild(),
		perfclass.NewMeasurement("i").Type(perfclass.TypeInt).Compare(perfclass.ComparisonEqual).MustBuild(),
		perfclass.NewMeasurement("f").Type(perfclass.TypeFloat).Compare(perfclass.ComparisonEqual).MustBuild(),
		perfclass.NewMeasurement("s").Type(perfclass.TypeString).Compare(perfclass.ComparisonEqual).MustBuild(),
	}
	r, err := perfclass.NewRequirement("8.2/H-1-4", ms)
	if err != nil {
		t.Fatal("NewRequirement failed: ", err)
	}
	for k, v := range map[string]interface{}{"b": true, "i": 7, "f": 1.5, "s": "x"} {
		if err := r.SetMeasuredValue(k, v); err != nil {
			t.Fatalf("SetMeasuredValue(%q) failed: %v", k, err)
		}
	}

	if v, err := r.MeasuredBool("b"); err != nil || v != true {
		t.Errorf("MeasuredBool = %v, %v; want true, nil", v, err)
	}
	if v, err := r.MeasuredInt("i"); err != nil || v != 7 {
		t.Errorf("MeasuredInt = %v, %v; want 7, nil", v, err)
	}
	if v, err := r.MeasuredFloat("f"); err != nil || v != 1.5 {
		t.Errorf("MeasuredFloat = %v, %v; want 1.5, nil", v, err)
	}
	if v, err := r.MeasuredString("s"); err != nil || v != "x" {
		t.Errorf("MeasuredString = %v, %v; want x, nil", v, err)
	}

	// Wrong-typed access and access to a value never set.
	if _, err := r.MeasuredInt("f"); !errors.Is(err, perfclass.ErrTypeMismatch) {
		t.Errorf("MeasuredInt(f) = %v; want ErrTypeMismatch", err)
	}
	r2 := newLatencyRequirement(t)
	if _, err := r2.MeasuredFloat("latency"); !errors.Is(err, perfclass.ErrMissingMeasurement) {
		t.Errorf("MeasuredFloat on unset measurement = %v; want ErrMissingMeasurement", err)
	}
}
