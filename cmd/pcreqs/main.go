// Copyright 2025 The Device Compat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package main implements the pcreqs executable, used to validate requirement
// definition files and summarize report logs.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/devicecompat/perfclass/internal/logging"
)

// Version is the version info of this command. It is filled in at build time.
var Version = "<unknown>"

// doMain implements the main body of the program. It's a separate function so
// that its deferred functions will run before os.Exit makes the program exit
// immediately.
func doMain() int {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&lintCmd{}, "")
	subcommands.Register(newReportCmd(os.Stdout), "")

	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Printf("pcreqs version %s\n", Version)
		return 0
	}

	ctx := logging.NewContext(context.Background(), func(msg string) {
		fmt.Fprintln(os.Stderr, msg)
	})
	return int(subcommands.Execute(ctx))
}

func main() {
	os.Exit(doMain())
}
