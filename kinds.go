// Copyright 2025 The Device Compat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package perfclass

import (
	"github.com/devicecompat/perfclass/errors"
)

// Sentinel error kinds surfaced by this package. All of them indicate
// test-authoring mistakes, not environmental failures, and are never
// retried or recovered. Match them with the standard errors.Is.
var (
	// ErrUnknownMeasurementKey is returned when a value is set for a key
	// the requirement never declared.
	ErrUnknownMeasurementKey = errors.New("unknown measurement key")

	// ErrMissingMeasurement is returned when evaluation reaches a
	// measurement whose value was never set, indicating an incomplete test.
	ErrMissingMeasurement = errors.New("missing measurement")

	// ErrTypeMismatch is returned when a value cannot be represented in the
	// measurement's declared type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrDuplicateRequirement is returned when a requirement with the same
	// resolved identity is registered twice with one evaluator.
	ErrDuplicateRequirement = errors.New("duplicate requirement")

	// ErrAlreadySubmitted is returned when an evaluator's submission
	// entrypoint is called more than once.
	ErrAlreadySubmitted = errors.New("already submitted")

	// ErrAlreadyEvaluated is returned when a measured value is written
	// after the requirement was evaluated.
	ErrAlreadyEvaluated = errors.New("already evaluated")

	// ErrConfigInconsistency is returned when requirements sharing a test
	// config disagree on a config measurement's value.
	ErrConfigInconsistency = errors.New("config inconsistency")
)
