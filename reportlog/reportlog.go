// Copyright 2025 The Device Compat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package reportlog persists evaluation records as JSON lines.
//
// One file is kept per test class, named "<class>.jsonl" under the report
// directory, with one entry appended per submitted evaluator. The file is
// append-only for the lifetime of the test process; entries from independent
// tests may interleave in any order.
package reportlog

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"code.cloudfoundry.org/clock"

	perfclass "github.com/devicecompat/perfclass"
	"github.com/devicecompat/perfclass/errors"
)

// Writer appends records to one report log file. All writes are serialized;
// a Writer may be shared by every test in a class.
type Writer struct {
	mu  sync.Mutex
	f   *os.File
	clk clock.Clock
}

// Option configures a Writer.
type Option func(*Writer)

// WithClock substitutes the clock used to stamp records. Tests use a fake
// clock to get deterministic timestamps.
func WithClock(clk clock.Clock) Option {
	return func(w *Writer) { w.clk = clk }
}

// New opens (creating if needed) the report log for the named test class
// under dir.
func New(dir, class string, opts ...Option) (*Writer, error) {
	if class == "" {
		return nil, errors.New("test class name must not be empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create report directory")
	}
	f, err := os.OpenFile(Path(dir, class), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open report log for %s", class)
	}
	w := &Writer{f: f, clk: clock.NewClock()}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path returns the report log path for a test class under dir.
func Path(dir, class string) string {
	return filepath.Join(dir, class+".jsonl")
}

// Write stamps rec with the current time and appends it as one JSON line.
// The caller's record is not modified.
func (w *Writer) Write(rec *perfclass.Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.f == nil {
		return errors.New("report log is closed")
	}
	stamped := *rec
	stamped.Time = w.clk.Now()
	b, err := json.Marshal(&stamped)
	if err != nil {
		return errors.Wrap(err, "failed to marshal report record")
	}
	if _, err := w.f.Write(append(b, '\n')); err != nil {
		return errors.Wrap(err, "failed to append report record")
	}
	return nil
}

// Close closes the underlying file. Further writes fail.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.f == nil {
		return nil
	}
	err := w.f.Close()
	w.f = nil
	return err
}

// Read parses all records from a report log file.
func Read(path string) ([]perfclass.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open report log %s", path)
	}
	defer f.Close()

	var recs []perfclass.Record
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		if len(sc.Bytes()) == 0 {
			continue
		}
		var rec perfclass.Record
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			return nil, errors.Wrapf(err, "malformed record in %s", path)
		}
		recs = append(recs, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read report log %s", path)
	}
	return recs, nil
}
