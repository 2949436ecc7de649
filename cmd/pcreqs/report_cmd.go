// Copyright 2025 The Device Compat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"

	perfclass "github.com/devicecompat/perfclass"
	"github.com/devicecompat/perfclass/internal/logging"
	"github.com/devicecompat/perfclass/reportlog"
)

// reportCmd implements subcommands.Command to summarize report logs.
type reportCmd struct {
	json   bool      // marshal the summary to JSON instead of a table
	stdout io.Writer // where to write the summary
}

// newReportCmd returns a new reportCmd that writes its summary to stdout.
func newReportCmd(stdout io.Writer) *reportCmd {
	return &reportCmd{stdout: stdout}
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "summarize report logs" }
func (*reportCmd) Usage() string {
	return `Usage: report [flag]... <path>...

Description:
    Read report log files (or directories containing *.jsonl files) and
    print a per-requirement rollup of met/total counts.

Flag:
`
}

func (rc *reportCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&rc.json, "json", false, "print the summary as JSON")
}

func (rc *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if len(f.Args()) == 0 {
		logging.ContextLog(ctx, "Missing report path.\n\n"+rc.Usage())
		return subcommands.ExitUsageError
	}
	paths, err := expandPaths(f.Args())
	if err != nil {
		logging.ContextLogf(ctx, "Failed to resolve report paths: %v", err)
		return subcommands.ExitFailure
	}
	recs, err := readAll(ctx, paths)
	if err != nil {
		logging.ContextLogf(ctx, "Failed to read report logs: %v", err)
		return subcommands.ExitFailure
	}
	sum := summarize(recs)
	if rc.json {
		enc := json.NewEncoder(rc.stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(sum); err != nil {
			logging.ContextLogf(ctx, "Failed to write summary: %v", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	for _, rs := range sum {
		fmt.Fprintf(rc.stdout, "%-40s %d/%d met\n", rs.ID, rs.Met, rs.Total)
	}
	return subcommands.ExitSuccess
}

// expandPaths resolves directories to the *.jsonl files they contain.
func expandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		fi, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !fi.IsDir() {
			paths = append(paths, arg)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(arg, "*.jsonl"))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}

// readAll reads report files in parallel.
func readAll(ctx context.Context, paths []string) ([]perfclass.Record, error) {
	var mu sync.Mutex
	var recs []perfclass.Record
	g, _ := errgroup.WithContext(ctx)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			rs, err := reportlog.Read(path)
			if err != nil {
				return err
			}
			mu.Lock()
			recs = append(recs, rs...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return recs, nil
}

// reqSummary is the per-requirement rollup printed by the report command.
type reqSummary struct {
	ID    string `json:"id"`
	Total int    `json:"total"`
	Met   int    `json:"met"`
}

// summarize rolls up records per resolved requirement identity.
func summarize(recs []perfclass.Record) []reqSummary {
	byID := make(map[string]*reqSummary)
	for _, rec := range recs {
		for _, rr := range rec.Requirements {
			id := rr.ID
			if rr.TestConfig != "" {
				id += " [" + rr.TestConfig + "]"
			}
			if rr.Variant != "" {
				id += " [" + rr.Variant + "]"
			}
			rs := byID[id]
			if rs == nil {
				rs = &reqSummary{ID: id}
				byID[id] = rs
			}
			rs.Total++
			if rr.Met {
				rs.Met++
			}
		}
	}
	var out []reqSummary
	for _, rs := range byID {
		out = append(out, *rs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
