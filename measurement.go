// Copyright 2025 The Device Compat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package perfclass

import (
	"golang.org/x/exp/slices"

	"github.com/devicecompat/perfclass/errors"
)

// RequiredMeasurement describes one named measurable quantity within a
// requirement: its value type, the predicate used to judge it, and a sparse
// version-indexed table of required values. It is immutable once built.
//
// The table is resolved by floor lookup: the required value for a target
// version is the one attached to the greatest declared version <= target.
// A version below every entry has no requirement at all, and a measurement
// with zero entries is never enforced. Several shipped requirement
// definitions intentionally omit entries for early releases.
type RequiredMeasurement struct {
	key        string
	valueType  ValueType
	comparison Comparison
	versions   []VersionCode // ascending
	required   map[VersionCode]interface{}
}

// Key returns the stable measurement key.
func (m *RequiredMeasurement) Key() string { return m.key }

// ValueType returns the measurement's value type.
func (m *RequiredMeasurement) ValueType() ValueType { return m.valueType }

// Comparison returns the measurement's comparison predicate.
func (m *RequiredMeasurement) Comparison() Comparison { return m.comparison }

// RequiredValue resolves the required value for target by floor lookup.
// ok is false if no declared version is <= target.
func (m *RequiredMeasurement) RequiredValue(target VersionCode) (v interface{}, ok bool) {
	ver, ok := floorVersion(m.versions, target)
	if !ok {
		return nil, false
	}
	return m.required[ver], true
}

// evaluate judges measured against the required value resolved for target.
// The caller guarantees that measured was normalized by normalizeValue.
func (m *RequiredMeasurement) evaluate(measured interface{}, target VersionCode) (MeasurementRecord, error) {
	rec := MeasurementRecord{
		Key:        m.key,
		Comparison: m.comparison.String(),
		Measured:   measured,
		Required:   RequiredNotApplicable,
	}
	required, ok := m.RequiredValue(target)
	if ok {
		rec.Required = required
	}

	switch m.comparison {
	case ComparisonInfoOnly, ComparisonConfig:
		// Never a failure criterion; config values are cross-checked by
		// the evaluator at submission.
		rec.Outcome = OutcomePass.String()
		return rec, nil
	}

	if !ok {
		rec.Outcome = OutcomeNotApplicable.String()
		return rec, nil
	}
	pass, err := m.comparison.satisfied(m.valueType, measured, required)
	if err != nil {
		return rec, errors.Wrapf(err, "measurement %q", m.key)
	}
	if pass {
		rec.Outcome = OutcomePass.String()
	} else {
		rec.Outcome = OutcomeFail.String()
	}
	return rec, nil
}

// MeasurementBuilder builds a RequiredMeasurement. Construction errors are
// accumulated and reported by Build so that calls can be chained fluently.
type MeasurementBuilder struct {
	key        string
	valueType  ValueType
	typeSet    bool
	comparison Comparison
	cmpSet     bool
	entries    []versionValue
	err        error
}

type versionValue struct {
	version VersionCode
	value   interface{}
}

// NewMeasurement starts building a measurement with the given key.
func NewMeasurement(key string) *MeasurementBuilder {
	return &MeasurementBuilder{key: key}
}

// Type sets the measurement's value type.
func (b *MeasurementBuilder) Type(t ValueType) *MeasurementBuilder {
	b.valueType = t
	b.typeSet = true
	return b
}

// Compare sets the measurement's comparison predicate.
func (b *MeasurementBuilder) Compare(c Comparison) *MeasurementBuilder {
	b.comparison = c
	b.cmpSet = true
	return b
}

// RequiredValue adds a (version, required value) table entry. Entries may be
// added in any order; zero entries is legal and yields a measurement that is
// never enforced.
func (b *MeasurementBuilder) RequiredValue(ver VersionCode, v interface{}) *MeasurementBuilder {
	b.entries = append(b.entries, versionValue{ver, v})
	return b
}

// Build validates the accumulated state and returns the immutable measurement.
func (b *MeasurementBuilder) Build() (*RequiredMeasurement, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.key == "" {
		return nil, errors.New("measurement key must not be empty")
	}
	if !b.typeSet {
		return nil, errors.Errorf("measurement %q: value type not set", b.key)
	}
	if !b.cmpSet {
		return nil, errors.Errorf("measurement %q: comparison not set", b.key)
	}
	if !b.comparison.compatibleWith(b.valueType) {
		return nil, errors.Errorf("measurement %q: comparison %s is not applicable to type %s",
			b.key, b.comparison, b.valueType)
	}

	m := &RequiredMeasurement{
		key:        b.key,
		valueType:  b.valueType,
		comparison: b.comparison,
		required:   make(map[VersionCode]interface{}, len(b.entries)),
	}
	for _, e := range b.entries {
		if _, ok := m.required[e.version]; ok {
			return nil, errors.Errorf("measurement %q: duplicate required value for version %s", b.key, e.version)
		}
		v, err := normalizeValue(b.valueType, e.value)
		if err != nil {
			return nil, errors.Wrapf(err, "measurement %q: required value for version %s", b.key, e.version)
		}
		m.required[e.version] = v
		m.versions = append(m.versions, e.version)
	}
	slices.Sort(m.versions)
	return m, nil
}

// MustBuild is like Build but panics on error. It is meant for factory code
// whose tables are fixed at compile time.
func (b *MeasurementBuilder) MustBuild() *RequiredMeasurement {
	m, err := b.Build()
	if err != nil {
		panic(err)
	}
	return m
}
