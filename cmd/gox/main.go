// Copyright 2025 The GoxLang Authors
// This file is part of GoxLang.
//
// GoxLang is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Command gox is the GoxLang parser command line interface.
//
// Usage:
//
//	gox parse <file>.gox     Parse a file and write its AST document
//	gox check <file>.gox...  Parse files and report diagnostics only
//	gox tokens <file>.gox    Print the token table for a file
//	gox serve                Run the parse HTTP API
//	gox dumpconfig           Print the active TOML configuration
//	gox version              Print version numbers
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/goxlang/gox/lang/astjson"
	"github.com/goxlang/gox/lang/diag"
	"github.com/goxlang/gox/lang/lexer"
	"github.com/goxlang/gox/lang/parser"
	"github.com/goxlang/gox/params"
)

var (
	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	nocolorFlag = cli.BoolFlag{
		Name:  "nocolor",
		Usage: "Disable colorized diagnostics",
	}
	addrFlag = cli.StringFlag{
		Name:  "addr",
		Usage: "Listen address for the parse API",
		Value: defaultListenAddr,
	}
)

var app = cli.NewApp()

func init() {
	app.Name = "gox"
	app.Usage = "the GoxLang parser command line interface"
	app.Version = params.VersionWithMeta
	app.Flags = []cli.Flag{configFileFlag, nocolorFlag}
	app.Commands = []cli.Command{
		parseCommand,
		checkCommand,
		tokensCommand,
		serveCommand,
		dumpConfigCommand,
		versionCommand,
	}
	sort.Sort(cli.CommandsByName(app.Commands))
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// Language commands
// ---------------------------------------------------------------------------

var parseCommand = cli.Command{
	Action:    runParse,
	Name:      "parse",
	Usage:     "Parse a .gox file and write its AST document",
	ArgsUsage: "<filename>.gox",
	Category:  "LANGUAGE COMMANDS",
	Description: `Parses the given file and writes <filename>.json next to it, containing the
serialized AST. On syntax errors the diagnostics are printed instead and no
document is written.`,
}

var checkCommand = cli.Command{
	Action:    runCheck,
	Name:      "check",
	Usage:     "Parse files and report diagnostics without writing documents",
	ArgsUsage: "<filename>.gox [filename.gox ...]",
	Category:  "LANGUAGE COMMANDS",
	Description: `Parses every given file, each in its own goroutine, and prints the
diagnostics grouped per file in argument order.`,
}

var tokensCommand = cli.Command{
	Action:    runTokens,
	Name:      "tokens",
	Usage:     "Print the token table for a .gox file",
	ArgsUsage: "<filename>.gox",
	Category:  "LANGUAGE COMMANDS",
}

func runParse(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		fatalf("Usage: gox parse <filename>.gox")
	}
	filename := ctx.Args().First()
	source := readGoxFile(filename)

	sink := diag.NewSink()
	prog := parser.ParseSource(source, sink)
	if sink.HasErrors() {
		reportDiagnostics(ctx, filename, sink.All())
		os.Exit(1)
	}

	doc, err := astjson.Marshal(prog)
	if err != nil {
		fatalf("Error: %v", err)
	}
	fmt.Printf("Successfully parsed %s\n", filename)

	output := outputPath(filename)
	if err := os.WriteFile(output, doc, 0644); err != nil {
		fatalf("Error: %v", err)
	}
	fmt.Printf("AST saved to %s\n", output)
	return nil
}

func runCheck(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		fatalf("Usage: gox check <filename>.gox [filename.gox ...]")
	}
	files := ctx.Args()
	for _, file := range files {
		if err := checkExtension(file); err != nil {
			fatalf("Error: %v", err)
		}
	}

	sinks := make([]*diag.Sink, len(files))
	var g errgroup.Group
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			data, err := os.ReadFile(file)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("File '%s' not found", file)
				}
				return err
			}
			sink := diag.NewSink()
			parser.ParseSource(string(data), sink)
			sinks[i] = sink
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fatalf("Error: %v", err)
	}

	failed := 0
	for i, file := range files {
		if sinks[i].HasErrors() {
			failed++
			reportDiagnostics(ctx, file, sinks[i].All())
		} else {
			fmt.Printf("%s: ok\n", file)
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
	return nil
}

func runTokens(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		fatalf("Usage: gox tokens <filename>.gox")
	}
	filename := ctx.Args().First()
	source := readGoxFile(filename)

	sink := diag.NewSink()
	tokens := lexer.New(source, sink).Tokenize()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Line", "Type", "Literal"})
	for _, tok := range tokens {
		table.Append([]string{strconv.Itoa(tok.Line), tok.Type.String(), tok.Literal})
	}
	table.Render()

	if sink.HasErrors() {
		reportDiagnostics(ctx, filename, sink.All())
		os.Exit(1)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Shared helpers
// ---------------------------------------------------------------------------

// checkExtension rejects filenames without the .gox suffix.
func checkExtension(filename string) error {
	if !strings.HasSuffix(filename, ".gox") {
		return errors.New("File must have .gox extension")
	}
	return nil
}

// readGoxFile validates the extension and reads the file, exiting with the
// contract messages on failure.
func readGoxFile(filename string) string {
	if err := checkExtension(filename); err != nil {
		fatalf("Error: %v", err)
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			fatalf("Error: File '%s' not found", filename)
		}
		fatalf("Error: %v", err)
	}
	return string(data)
}

// outputPath swaps the final extension for .json, keeping the rest of the
// name.
func outputPath(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename)) + ".json"
}

// reportDiagnostics prints the failure header and each diagnostic to stderr,
// in red when stderr is a terminal and color is not disabled.
func reportDiagnostics(ctx *cli.Context, filename string, diags []diag.Diagnostic) {
	usecolor := !ctx.GlobalBool(nocolorFlag.Name) &&
		(isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) &&
		os.Getenv("TERM") != "dumb"

	w := io.Writer(os.Stderr)
	if usecolor {
		w = colorable.NewColorableStderr()
	}
	printDiagnostics(w, usecolor, filename, diags)
}

func printDiagnostics(w io.Writer, usecolor bool, filename string, diags []diag.Diagnostic) {
	red := color.New(color.FgRed)
	writeln := func(line string) {
		if usecolor {
			red.Fprintln(w, line)
		} else {
			fmt.Fprintln(w, line)
		}
	}
	writeln(fmt.Sprintf("Parsing failed for %s:", filename))
	for _, d := range diags {
		writeln(d.String())
	}
}

// fatalf prints a message to stderr and exits with a non-zero status.
func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
