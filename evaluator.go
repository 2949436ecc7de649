// Copyright 2025 The Device Compat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package perfclass

import (
	"context"
	"fmt"
	"strings"

	"github.com/devicecompat/perfclass/errors"
	"github.com/devicecompat/perfclass/internal/logging"
)

// RecordWriter persists evaluation records. reportlog.Writer implements it.
type RecordWriter interface {
	Write(rec *Record) error
}

// Evaluator owns the requirements registered by one test method, evaluates
// them against a target version and persists one structured record per run.
//
// An evaluator is built, mutated and submitted on a single test goroutine;
// it performs no internal locking and must not be shared between tests.
type Evaluator struct {
	testName string
	target   VersionCode
	report   RecordWriter

	reqs      []*Requirement
	resolved  map[string]struct{}
	submitted bool
	last      *Record
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithReportWriter makes the evaluator persist its record through w at
// submission. Without it the record is computed but not persisted.
func WithReportWriter(w RecordWriter) Option {
	return func(e *Evaluator) { e.report = w }
}

// New creates an evaluator for the named test method, evaluating against
// target.
func New(testName string, target VersionCode, opts ...Option) *Evaluator {
	e := &Evaluator{
		testName: testName,
		target:   target,
		resolved: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// TestName returns the name of the owning test method.
func (e *Evaluator) TestName() string { return e.testName }

// TargetVersion returns the version requirements are evaluated against.
func (e *Evaluator) TargetVersion() VersionCode { return e.target }

// AddRequirement registers r and returns it unchanged, enabling fluent
// chaining at call sites. Registering two requirements with the same
// resolved identity is a test-authoring error.
func (e *Evaluator) AddRequirement(r *Requirement) (*Requirement, error) {
	if e.submitted {
		return nil, errors.Wrapf(ErrAlreadySubmitted, "test %s: cannot add requirement %s", e.testName, r.ResolvedID())
	}
	id := r.ResolvedID()
	if _, ok := e.resolved[id]; ok {
		return nil, errors.Wrapf(ErrDuplicateRequirement, "test %s: requirement %s", e.testName, id)
	}
	e.resolved[id] = struct{}{}
	e.reqs = append(e.reqs, r)
	return r, nil
}

// SubmitAndCheck evaluates every registered requirement, persists the full
// record, and returns an error naming every failing requirement and its
// offending measurements if the performance class was not met. It is used in
// automated conformance suites where failure must halt the test.
func (e *Evaluator) SubmitAndCheck(ctx context.Context) error {
	met, err := e.submit(ctx, RealmMustPass)
	if err != nil {
		return err
	}
	if !met {
		return errors.Errorf("performance class requirements not met:\n%s", e.failureSummary())
	}
	return nil
}

// SubmitAndVerify performs the same evaluation and persistence as
// SubmitAndCheck but reports the aggregate outcome as a boolean, for
// human-reviewed verification contexts where a miss is informational.
func (e *Evaluator) SubmitAndVerify(ctx context.Context) (bool, error) {
	met, err := e.submit(ctx, RealmInformational)
	if err != nil {
		return false, err
	}
	if !met {
		logging.ContextLogf(ctx, "Device did not meet performance class requirements for version %s", e.target)
	}
	return met, nil
}

// submit runs the evaluation exactly once. A second call fails without
// touching the first call's persisted record.
func (e *Evaluator) submit(ctx context.Context, realm string) (bool, error) {
	if e.submitted {
		return false, errors.Wrapf(ErrAlreadySubmitted, "test %s: results were already submitted", e.testName)
	}
	e.submitted = true

	if err := e.checkConfigConsistency(); err != nil {
		return false, err
	}

	rec := &Record{
		Test:                e.testName,
		Realm:               realm,
		TargetVersion:       e.target.String(),
		PerformanceClassMet: true,
	}
	for _, r := range e.reqs {
		rr, err := r.evaluate(e.target)
		if err != nil {
			return false, err
		}
		if rr.Met {
			logging.ContextLogf(ctx, "Requirement %s met at version %s", r.ResolvedID(), e.target)
		} else {
			logging.ContextLogf(ctx, "Requirement %s NOT met at version %s", r.ResolvedID(), e.target)
			rec.PerformanceClassMet = false
		}
		rec.Requirements = append(rec.Requirements, *rr)
	}
	e.last = rec

	// Persist both passing and failing records before any verdict is
	// raised to the caller.
	if e.report != nil {
		if err := e.report.Write(rec); err != nil {
			return false, errors.Wrap(err, "failed to persist report record")
		}
	}
	return rec.PerformanceClassMet, nil
}

// checkConfigConsistency verifies that requirements sharing a test config
// agree on every config measurement they both record. Config measurements
// describe the test's own setup and must be singular truth.
func (e *Evaluator) checkConfigConsistency() error {
	type source struct {
		value interface{}
		reqID string
	}
	seen := make(map[string]map[string]source) // config -> measurement key -> first value
	for _, r := range e.reqs {
		if r.config == "" {
			continue
		}
		for _, key := range r.keys {
			if r.measurements[key].comparison != ComparisonConfig {
				continue
			}
			v, ok := r.measured[key]
			if !ok {
				// Missing values are reported by evaluate.
				continue
			}
			byKey := seen[r.config]
			if byKey == nil {
				byKey = make(map[string]source)
				seen[r.config] = byKey
			}
			prev, ok := byKey[key]
			if !ok {
				byKey[key] = source{v, r.ResolvedID()}
				continue
			}
			if prev.value != v {
				return errors.Wrapf(ErrConfigInconsistency,
					"test config %q: measurement %q is %v in %s but %v in %s",
					r.config, key, prev.value, prev.reqID, v, r.ResolvedID())
			}
		}
	}
	return nil
}

// failureSummary formats every failing measurement of the last submission as
// one line per failure, e.g.
//
//	7.5/H-1-5: rear_camera_latency: required <= 500, measured 600
func (e *Evaluator) failureSummary() string {
	var lines []string
	for _, rr := range e.last.Requirements {
		if rr.Met {
			continue
		}
		id := rr.ID
		if rr.TestConfig != "" {
			id += " [" + rr.TestConfig + "]"
		}
		if rr.Variant != "" {
			id += " [" + rr.Variant + "]"
		}
		for _, mr := range rr.Measurements {
			if mr.Outcome != OutcomeFail.String() {
				continue
			}
			c, err := ParseComparison(mr.Comparison)
			sym := mr.Comparison
			if err == nil {
				sym = c.Symbol()
			}
			lines = append(lines, fmt.Sprintf("  %s: %s: required %s %v, measured %v",
				id, mr.Key, sym, mr.Required, mr.Measured))
		}
	}
	return strings.Join(lines, "\n")
}
