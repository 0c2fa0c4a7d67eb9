// Command drjsoncat reads a DrJson document from stdin and prints it
// to stdout, optionally pretty-printed. It exists to exercise the
// library end to end, not as a general-purpose CLI tool, so it uses
// only the standard library's flag package for its two options
// (-pretty and -intern).
//
// Copyright (c) 2026 The DrJson Authors
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dr-json/drjson"
)

func main() {
	pretty := flag.Bool("pretty", false, "pretty-print the output")
	intern := flag.Bool("intern", false, "structurally intern objects and arrays while parsing")
	flag.Parse()

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, "drjsoncat: read stdin:", err)
		os.Exit(1)
	}

	ctx := drjson.NewContext(drjson.DefaultConfig())
	defer ctx.Close()

	var flags drjson.ParseFlags
	if *intern {
		flags |= drjson.FlagInternObjects
	}

	v, err := ctx.Parse(input, flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, drjson.FormatErrorPosition("<stdin>", input, err))
		os.Exit(1)
	}

	w := drjson.NewWriter(os.Stdout)
	if err := ctx.Print(w, v, *pretty); err != nil {
		fmt.Fprintln(os.Stderr, "drjsoncat: write stdout:", err)
		os.Exit(1)
	}
	fmt.Println()
}
