// Copyright 2025 The Device Compat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package perfclass

import (
	"github.com/devicecompat/perfclass/errors"
)

// Comparison is the predicate used to judge a measured value against its
// required value.
type Comparison int

const (
	// ComparisonEqual requires the measured value to equal the required
	// value exactly. No tolerance is applied; callers needing tolerance
	// must round before setting the measured value.
	ComparisonEqual Comparison = iota
	// ComparisonLessThan requires measured < required.
	ComparisonLessThan
	// ComparisonLessThanOrEqual requires measured <= required.
	ComparisonLessThanOrEqual
	// ComparisonGreaterThan requires measured > required.
	ComparisonGreaterThan
	// ComparisonGreaterThanOrEqual requires measured >= required.
	ComparisonGreaterThanOrEqual
	// ComparisonInfoOnly records the measured value for diagnostics and
	// never fails.
	ComparisonInfoOnly
	// ComparisonConfig marks a value describing the test's own setup
	// (e.g. the resolution a run was performed at). It never fails per
	// measurement, but all requirements sharing a test config must agree
	// on it; disagreement is a test-authoring error caught at submission.
	ComparisonConfig
)

var comparisonNames = map[Comparison]string{
	ComparisonEqual:              "equal",
	ComparisonLessThan:           "less_than",
	ComparisonLessThanOrEqual:    "less_than_or_equal",
	ComparisonGreaterThan:        "greater_than",
	ComparisonGreaterThanOrEqual: "greater_than_or_equal",
	ComparisonInfoOnly:           "info_only",
	ComparisonConfig:             "config",
}

// String returns the name used for this comparison in definition files and
// report records.
func (c Comparison) String() string {
	if name, ok := comparisonNames[c]; ok {
		return name
	}
	return "unknown"
}

// Symbol returns the operator used when formatting failure messages.
func (c Comparison) Symbol() string {
	switch c {
	case ComparisonEqual:
		return "=="
	case ComparisonLessThan:
		return "<"
	case ComparisonLessThanOrEqual:
		return "<="
	case ComparisonGreaterThan:
		return ">"
	case ComparisonGreaterThanOrEqual:
		return ">="
	default:
		return c.String()
	}
}

// ParseComparison parses a comparison name as used in definition files.
func ParseComparison(s string) (Comparison, error) {
	for c, name := range comparisonNames {
		if s == name {
			return c, nil
		}
	}
	return 0, errors.Errorf("unknown comparison %q", s)
}

// ValueType is the semantic type of a measurement's values.
type ValueType int

const (
	// TypeBool holds a boolean value.
	TypeBool ValueType = iota
	// TypeInt holds a signed integer value, stored as int64.
	TypeInt
	// TypeFloat holds a floating point value, stored as float64.
	TypeFloat
	// TypeString holds a string value.
	TypeString
)

var valueTypeNames = map[ValueType]string{
	TypeBool:   "bool",
	TypeInt:    "int",
	TypeFloat:  "float",
	TypeString: "string",
}

// String returns the name used for this type in definition files.
func (t ValueType) String() string {
	if name, ok := valueTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseValueType parses a type name as used in definition files.
func ParseValueType(s string) (ValueType, error) {
	for t, name := range valueTypeNames {
		if s == name {
			return t, nil
		}
	}
	return 0, errors.Errorf("unknown value type %q", s)
}

// ordered reports whether the comparison needs an ordered value domain.
func (c Comparison) ordered() bool {
	switch c {
	case ComparisonLessThan, ComparisonLessThanOrEqual, ComparisonGreaterThan, ComparisonGreaterThanOrEqual:
		return true
	}
	return false
}

// compatibleWith reports whether values of type t can be judged by c.
// Booleans and strings have no useful ordering here.
func (c Comparison) compatibleWith(t ValueType) bool {
	if !c.ordered() {
		return true
	}
	return t == TypeInt || t == TypeFloat
}

// normalizeValue converts v to the canonical representation of t
// (bool, int64, float64 or string). Integer values are accepted for
// float measurements since definition files spell thresholds like "500".
func normalizeValue(t ValueType, v interface{}) (interface{}, error) {
	switch t {
	case TypeBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case TypeInt:
		switch x := v.(type) {
		case int:
			return int64(x), nil
		case int32:
			return int64(x), nil
		case int64:
			return x, nil
		}
	case TypeFloat:
		switch x := v.(type) {
		case float64:
			return x, nil
		case float32:
			return float64(x), nil
		case int:
			return float64(x), nil
		case int64:
			return float64(x), nil
		}
	case TypeString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	}
	return nil, errors.Errorf("value %v (%T) is not assignable to type %s", v, v, t)
}

// satisfied applies c to a (measured, required) pair of canonical values of
// type t. Both values must already be normalized.
func (c Comparison) satisfied(t ValueType, measured, required interface{}) (bool, error) {
	if c == ComparisonEqual {
		return measured == required, nil
	}
	switch t {
	case TypeInt:
		m, mok := measured.(int64)
		r, rok := required.(int64)
		if !mok || !rok {
			return false, errors.Errorf("cannot compare %T against %T as %s", measured, required, t)
		}
		return orderedSatisfied(c, m, r)
	case TypeFloat:
		m, mok := measured.(float64)
		r, rok := required.(float64)
		if !mok || !rok {
			return false, errors.Errorf("cannot compare %T against %T as %s", measured, required, t)
		}
		return orderedSatisfied(c, m, r)
	}
	return false, errors.Errorf("comparison %s is not applicable to type %s", c, t)
}

// orderedSatisfied applies an ordering comparison to two values of the same
// ordered type.
func orderedSatisfied[T int64 | float64](c Comparison, measured, required T) (bool, error) {
	switch c {
	case ComparisonLessThan:
		return measured < required, nil
	case ComparisonLessThanOrEqual:
		return measured <= required, nil
	case ComparisonGreaterThan:
		return measured > required, nil
	case ComparisonGreaterThanOrEqual:
		return measured >= required, nil
	}
	return false, errors.Errorf("comparison %s has no ordering", c)
}
