// Copyright 2025 The Device Compat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package perfclass

import (
	"time"
)

// Outcome is the verdict for a single measurement comparison.
type Outcome int

const (
	// OutcomePass indicates that the comparison was satisfied, or that the
	// measurement is informational.
	OutcomePass Outcome = iota
	// OutcomeFail indicates that the comparison was not satisfied.
	OutcomeFail
	// OutcomeNotApplicable indicates that no required value applies to the
	// target version.
	OutcomeNotApplicable
)

// String returns the name recorded for this outcome in report records.
func (o Outcome) String() string {
	switch o {
	case OutcomePass:
		return "pass"
	case OutcomeFail:
		return "fail"
	case OutcomeNotApplicable:
		return "not_applicable"
	}
	return "unknown"
}

// RequiredNotApplicable is recorded verbatim in the required field of a
// measurement record when no required value applies to the target version.
const RequiredNotApplicable = "not applicable"

// Realms distinguishing the two submission entrypoints in report records.
const (
	// RealmMustPass marks records submitted via SubmitAndCheck.
	RealmMustPass = "must_pass"
	// RealmInformational marks records submitted via SubmitAndVerify.
	RealmInformational = "informational"
)

// The structs below are the report log contract consumed by downstream
// aggregation tooling outside this repository. Do not rename fields.

// MeasurementRecord reports the verdict for one measurement.
type MeasurementRecord struct {
	// Key is the measurement key.
	Key string `json:"key"`
	// Comparison is the comparison kind, as named by Comparison.String.
	Comparison string `json:"comparison"`
	// Required is the resolved required value, or the literal
	// RequiredNotApplicable string when no version entry applied.
	Required interface{} `json:"required"`
	// Measured is the value supplied by the test.
	Measured interface{} `json:"measured"`
	// Outcome is "pass", "fail" or "not_applicable".
	Outcome string `json:"outcome"`
}

// RequirementRecord reports the verdict for one requirement.
type RequirementRecord struct {
	// ID is the stable requirement identifier, e.g. "7.5/H-1-1".
	ID string `json:"id"`
	// TestConfig is the test config the requirement instance was resolved
	// under, if any.
	TestConfig string `json:"test_config,omitempty"`
	// Variant is the variant the requirement instance was resolved under,
	// if any.
	Variant string `json:"variant,omitempty"`
	// Met aggregates pass/fail over all non-informational, non-config
	// measurements with an applicable required value. A requirement with
	// no applicable measurement is vacuously met.
	Met bool `json:"met"`
	// Measurements lists per-measurement verdicts in declaration order.
	Measurements []MeasurementRecord `json:"measurements"`
}

// Record is one report log entry, corresponding to one submitted evaluator.
type Record struct {
	// Time is when the record was persisted. It is stamped by the report
	// writer, not by the evaluator.
	Time time.Time `json:"time"`
	// Test names the test method that owned the evaluator.
	Test string `json:"test"`
	// Realm is RealmMustPass or RealmInformational.
	Realm string `json:"realm"`
	// TargetVersion is the version the evaluation ran against.
	TargetVersion string `json:"target_version"`
	// PerformanceClassMet aggregates Met over all requirements.
	PerformanceClassMet bool `json:"performance_class_met"`
	// Requirements lists per-requirement verdicts in registration order.
	Requirements []RequirementRecord `json:"requirements"`
}
