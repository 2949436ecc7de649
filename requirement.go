// Copyright 2025 The Device Compat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package perfclass

import (
	"github.com/devicecompat/perfclass/errors"
)

// State tracks the lifecycle of a Requirement. Transitions only move
// forward: Unset -> Ready -> Evaluated.
type State int

const (
	// StateUnset means no measured value has been recorded yet.
	StateUnset State = iota
	// StateReady means at least one measured value has been recorded.
	StateReady
	// StateEvaluated means the requirement was evaluated and is frozen.
	StateEvaluated
)

// Requirement is one compatibility rule: a stable section/clause identifier
// plus the measurements it is judged by. Instances are created by factories
// (see the defs and requirements packages), mutated only through measured
// value setters, and frozen once evaluated by the owning evaluator.
type Requirement struct {
	id      string
	config  string // optional test config name
	variant string // optional variant name

	keys         []string // measurement keys in declaration order
	measurements map[string]*RequiredMeasurement
	measured     map[string]interface{}
	state        State
}

// ReqOption configures a Requirement at construction time.
type ReqOption func(*Requirement)

// WithTestConfig resolves the requirement under the named test config.
func WithTestConfig(name string) ReqOption {
	return func(r *Requirement) { r.config = name }
}

// WithVariant resolves the requirement under the named variant.
func WithVariant(name string) ReqOption {
	return func(r *Requirement) { r.variant = name }
}

// NewRequirement constructs a requirement from its measurement definitions.
// Measurement keys must be unique, and at least one measurement is required.
func NewRequirement(id string, ms []*RequiredMeasurement, opts ...ReqOption) (*Requirement, error) {
	if id == "" {
		return nil, errors.New("requirement id must not be empty")
	}
	if len(ms) == 0 {
		return nil, errors.Errorf("requirement %s declares no measurements", id)
	}
	r := &Requirement{
		id:           id,
		measurements: make(map[string]*RequiredMeasurement, len(ms)),
		measured:     make(map[string]interface{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	for _, m := range ms {
		if _, ok := r.measurements[m.key]; ok {
			return nil, errors.Errorf("requirement %s declares measurement %q twice", r.ResolvedID(), m.key)
		}
		r.measurements[m.key] = m
		r.keys = append(r.keys, m.key)
	}
	return r, nil
}

// ID returns the stable requirement identifier.
func (r *Requirement) ID() string { return r.id }

// TestConfig returns the test config name the instance was resolved under,
// or an empty string.
func (r *Requirement) TestConfig() string { return r.config }

// Variant returns the variant name the instance was resolved under, or an
// empty string.
func (r *Requirement) Variant() string { return r.variant }

// State returns the current lifecycle state.
func (r *Requirement) State() State { return r.state }

// MeasurementKeys returns the declared measurement keys in declaration order.
func (r *Requirement) MeasurementKeys() []string {
	return append([]string(nil), r.keys...)
}

// ResolvedID returns the identity that makes an instance unique within an
// evaluator: the requirement id qualified by test config and variant.
func (r *Requirement) ResolvedID() string {
	s := r.id
	if r.config != "" {
		s += " [" + r.config + "]"
	}
	if r.variant != "" {
		s += " [" + r.variant + "]"
	}
	return s
}

// SetMeasuredValue records the measured value for a declared measurement key,
// overwriting any earlier value. The typed setters in the requirements
// package are sugar over this call.
func (r *Requirement) SetMeasuredValue(key string, v interface{}) error {
	if r.state == StateEvaluated {
		return errors.Wrapf(ErrAlreadyEvaluated, "requirement %s: cannot set %q after evaluation", r.ResolvedID(), key)
	}
	m, ok := r.measurements[key]
	if !ok {
		return errors.Wrapf(ErrUnknownMeasurementKey, "requirement %s: measurement %q is not declared", r.ResolvedID(), key)
	}
	nv, err := normalizeValue(m.valueType, v)
	if err != nil {
		return errors.Wrapf(ErrTypeMismatch, "requirement %s: measurement %q: %v", r.ResolvedID(), key, err)
	}
	r.measured[key] = nv
	r.state = StateReady
	return nil
}

// measuredValue returns the recorded value for key.
func (r *Requirement) measuredValue(key string) (interface{}, error) {
	if _, ok := r.measurements[key]; !ok {
		return nil, errors.Wrapf(ErrUnknownMeasurementKey, "requirement %s: measurement %q is not declared", r.ResolvedID(), key)
	}
	v, ok := r.measured[key]
	if !ok {
		return nil, errors.Wrapf(ErrMissingMeasurement, "requirement %s: measurement %q was never set", r.ResolvedID(), key)
	}
	return v, nil
}

// MeasuredBool returns the recorded value for a bool measurement.
func (r *Requirement) MeasuredBool(key string) (bool, error) {
	v, err := r.measuredValue(key)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, errors.Wrapf(ErrTypeMismatch, "requirement %s: measurement %q holds %T, not bool", r.ResolvedID(), key, v)
	}
	return b, nil
}

// MeasuredInt returns the recorded value for an int measurement.
func (r *Requirement) MeasuredInt(key string) (int64, error) {
	v, err := r.measuredValue(key)
	if err != nil {
		return 0, err
	}
	n, ok := v.(int64)
	if !ok {
		return 0, errors.Wrapf(ErrTypeMismatch, "requirement %s: measurement %q holds %T, not int64", r.ResolvedID(), key, v)
	}
	return n, nil
}

// MeasuredFloat returns the recorded value for a float measurement.
func (r *Requirement) MeasuredFloat(key string) (float64, error) {
	v, err := r.measuredValue(key)
	if err != nil {
		return 0, err
	}
	f, ok := v.(float64)
	if !ok {
		return 0, errors.Wrapf(ErrTypeMismatch, "requirement %s: measurement %q holds %T, not float64", r.ResolvedID(), key, v)
	}
	return f, nil
}

// MeasuredString returns the recorded value for a string measurement.
func (r *Requirement) MeasuredString(key string) (string, error) {
	v, err := r.measuredValue(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", errors.Wrapf(ErrTypeMismatch, "requirement %s: measurement %q holds %T, not string", r.ResolvedID(), key, v)
	}
	return s, nil
}

// evaluate judges every declared measurement against target and freezes the
// requirement. A measurement whose value was never set is a hard error; a
// requirement with no applicable measurement for target is vacuously met.
func (r *Requirement) evaluate(target VersionCode) (*RequirementRecord, error) {
	if r.state == StateEvaluated {
		return nil, errors.Wrapf(ErrAlreadyEvaluated, "requirement %s", r.ResolvedID())
	}
	rec := &RequirementRecord{
		ID:         r.id,
		TestConfig: r.config,
		Variant:    r.variant,
		Met:        true,
	}
	for _, key := range r.keys {
		v, err := r.measuredValue(key)
		if err != nil {
			return nil, err
		}
		mrec, err := r.measurements[key].evaluate(v, target)
		if err != nil {
			return nil, errors.Wrapf(err, "requirement %s", r.ResolvedID())
		}
		if mrec.Outcome == OutcomeFail.String() {
			rec.Met = false
		}
		rec.Measurements = append(rec.Measurements, mrec)
	}
	r.state = StateEvaluated
	return rec, nil
}
