// Copyright 2025 The Device Compat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/devicecompat/perfclass/defs"
	"github.com/devicecompat/perfclass/internal/logging"
)

// lintCmd implements subcommands.Command to validate definition files.
type lintCmd struct{}

func (*lintCmd) Name() string     { return "lint" }
func (*lintCmd) Synopsis() string { return "validate requirement definition files" }
func (*lintCmd) Usage() string {
	return `Usage: lint <file>...

Description:
    Parse and validate one or more requirement definition YAML files.
    Exits non-zero if any file is invalid.

`
}

func (*lintCmd) SetFlags(f *flag.FlagSet) {}

func (*lintCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if len(f.Args()) == 0 {
		logging.ContextLog(ctx, "Missing definition file.\n\n"+(&lintCmd{}).Usage())
		return subcommands.ExitUsageError
	}
	status := subcommands.ExitSuccess
	for _, path := range f.Args() {
		reg, err := defs.LoadFile(path)
		if err != nil {
			logging.ContextLogf(ctx, "%s: %v", path, err)
			status = subcommands.ExitFailure
			continue
		}
		logging.ContextLogf(ctx, "%s: OK (%d requirements)", path, len(reg.IDs()))
	}
	return status
}
