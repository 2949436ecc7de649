// Copyright 2025 The Device Compat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package samples collects repeated latency or rate observations and reduces
// them to the single number a requirement setter takes.
//
// Measurement producers typically exercise a device subsystem many times and
// report a percentile or worst case, pre-rounded, to a requirement. The
// recorder keeps observations in an HDR histogram so percentile queries stay
// cheap at any sample count.
package samples

import (
	"time"

	hdrhistogram "github.com/HdrHistogram/hdrhistogram-go"

	"github.com/devicecompat/perfclass/errors"
)

// Recorder accumulates integer observations within a fixed trackable range.
type Recorder struct {
	h *hdrhistogram.Histogram
}

// New creates a recorder tracking values in [min, max] with the given number
// of significant figures.
func New(min, max int64, sigfigs int) *Recorder {
	return &Recorder{h: hdrhistogram.New(min, max, sigfigs)}
}

// NewLatency creates a recorder suitable for millisecond latencies of device
// operations, tracking 1 ms to 60 s at three significant figures.
func NewLatency() *Recorder {
	return New(1, 60000, 3)
}

// Record adds one observation.
func (r *Recorder) Record(v int64) error {
	if err := r.h.RecordValue(v); err != nil {
		return errors.Wrapf(err, "value %d is outside the trackable range", v)
	}
	return nil
}

// RecordDuration adds one observation of a duration, in milliseconds.
func (r *Recorder) RecordDuration(d time.Duration) error {
	return r.Record(d.Milliseconds())
}

// Count returns the number of recorded observations.
func (r *Recorder) Count() int64 {
	return r.h.TotalCount()
}

// Percentile returns the value at quantile q (0 < q <= 100), e.g. 50.0 for
// the median or 90.0 for the 90th percentile.
func (r *Recorder) Percentile(q float64) int64 {
	return r.h.ValueAtQuantile(q)
}

// Max returns the largest recorded observation.
func (r *Recorder) Max() int64 {
	return r.h.Max()
}

// Mean returns the mean of the recorded observations.
func (r *Recorder) Mean() float64 {
	return r.h.Mean()
}
