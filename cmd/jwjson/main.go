// Copyright (c) 2026, the JWJSON authors.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/TheNamesJames/JWJSON/data"
)

// CLI defines the command-line interface.
var CLI struct {
	Input   string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Pointer string `help:"RFC 6901 JSON Pointer to evaluate against the document." short:"p" default:""`
	Pretty  bool   `help:"Indent the output with two spaces."`
	Version bool   `help:"Show version information." short:"v"`
}

const version = "1.0.0"

func main() {
	parser := kong.Must(&CLI,
		kong.Name("jwjson"),
		kong.Description("Query JSON documents with JSON Pointers"),
		kong.UsageOnError(),
	)
	_, err := parser.Parse(os.Args[1:])
	if err != nil {
		os.Exit(1)
	}
	if CLI.Version {
		fmt.Printf("jwjson version %s\n", version)
		return
	}

	in := io.Reader(os.Stdin)
	if CLI.Input != "" {
		f, err := os.Open(CLI.Input)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}
	err = run(in, os.Stdout, CLI.Pointer, CLI.Pretty)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run evaluates the pointer against the JSON document read from in and
// prints the result.
func run(in io.Reader, out io.Writer, pointer string, pretty bool) error {
	text, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	result := data.Parse(text).AtPointer(pointer)
	if err := result.Err(); err != nil {
		return err
	}
	var encoded []byte
	if pretty {
		encoded, err = result.MarshalIndent()
	} else {
		encoded, err = result.Marshal()
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s\n", encoded)
	return err
}
