// SPDX-License-Identifier: MIT
//
// Copyright (c) 2024 Adrian "asie" Siekierka

package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/WonderfulToolchain/wf-elf64/elf"
	"github.com/WonderfulToolchain/wf-elf64/report"
	"github.com/fatih/color"
	"github.com/midbel/cli"
	"golang.org/x/sync/errgroup"
)

var commands = []*cli.Command{
	{
		Usage:   "dump [-json] [-debug] [-no-color] [-parallel] <file>",
		Short:   "print the structure of an ELF64 file",
		Alias:   []string{"show"},
		Run:     runDump,
		Default: true,
	},
	{
		Usage: "verify [-debug] [-no-color] [-parallel] <file>...",
		Short: "check that files re-encode to identical bytes",
		Alias: []string{"check"},
		Run:   runVerify,
	},
	{
		Usage: "deps [-retained] [-debug] [-no-color] [-parallel] <file> [<section>...]",
		Short: "list the sections a section depends on",
		Run:   runDeps,
	},
	{
		Usage: "pack [-debug] [-no-color] [-parallel] <input> <output>",
		Short: "recompute the layout of a file and write it",
		Run:   runPack,
	},
}

var debugEnabled bool

var (
	info    = color.New(color.Bold).PrintfFunc()
	success = color.New(color.Bold, color.FgGreen).PrintfFunc()
	failure = color.New(color.Bold, color.FgRed).PrintfFunc()
)

func debug(format string, a ...any) {
	if debugEnabled {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", a...)
	}
}

func main() {
	cli.RunAndExit(commands, func() {})
}

type options struct {
	noColor  *bool
	parallel *bool
}

func commonFlags(cmd *cli.Command) options {
	cmd.Flag.BoolVar(&debugEnabled, "debug", false, "enable debug output")
	return options{
		noColor:  cmd.Flag.Bool("no-color", false, "disable colored output"),
		parallel: cmd.Flag.Bool("parallel", false, "decode sections and segments concurrently"),
	}
}

func (o options) apply() elf.Options {
	if *o.noColor {
		color.NoColor = true
	}
	return elf.Options{Parallel: *o.parallel, Debugf: debug}
}

func parseFile(path string, opts elf.Options) (*elf.File, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	debug("%s: %d bytes", path, len(data))
	f, err := elf.ParseWithOptions(data, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, data, nil
}

func runDump(cmd *cli.Command, args []string) error {
	opts := commonFlags(cmd)
	asJSON := cmd.Flag.Bool("json", false, "print as JSON")
	if err := cmd.Flag.Parse(args); err != nil {
		return err
	}
	if cmd.Flag.NArg() != 1 {
		return fmt.Errorf("dump: expected one file, got %d", cmd.Flag.NArg())
	}
	f, _, err := parseFile(cmd.Flag.Arg(0), opts.apply())
	if err != nil {
		return err
	}
	if *asJSON {
		return report.JSON(os.Stdout, f)
	}
	return report.Text(os.Stdout, f)
}

func verifyFile(path string, opts elf.Options) error {
	f, data, err := parseFile(path, opts)
	if err != nil {
		return err
	}
	out, err := f.Encode()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if len(out) != len(data) {
		return fmt.Errorf("%s: re-encoded to %d bytes, want %d", path, len(out), len(data))
	}
	for i := range out {
		if out[i] != data[i] {
			return fmt.Errorf("%s: first difference at offset %#x", path, i)
		}
	}
	return nil
}

func runVerify(cmd *cli.Command, args []string) error {
	opts := commonFlags(cmd)
	if err := cmd.Flag.Parse(args); err != nil {
		return err
	}
	files := cmd.Flag.Args()
	if len(files) == 0 {
		return errors.New("verify: no files given")
	}
	parseOpts := opts.apply()

	results := make([]error, len(files))
	var group errgroup.Group
	group.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range files {
		i, path := i, path
		group.Go(func() error {
			results[i] = verifyFile(path, parseOpts)
			return nil
		})
	}
	group.Wait()

	failed := 0
	for i, path := range files {
		fmt.Printf("• %s... ", path)
		if results[i] != nil {
			failed++
			failure("FAIL\n")
			debug("%v", results[i])
			fmt.Fprintf(os.Stderr, "  %v\n", results[i])
			continue
		}
		success("ok\n")
	}
	if failed > 0 {
		return fmt.Errorf("verify: %d of %d files failed", failed, len(files))
	}
	return nil
}

func runDeps(cmd *cli.Command, args []string) error {
	opts := commonFlags(cmd)
	retained := cmd.Flag.Bool("retained", false, "also start from sections flagged SHF_GNU_RETAIN")
	if err := cmd.Flag.Parse(args); err != nil {
		return err
	}
	if cmd.Flag.NArg() < 1 {
		return errors.New("deps: no file given")
	}
	f, _, err := parseFile(cmd.Flag.Arg(0), opts.apply())
	if err != nil {
		return err
	}

	var roots []int
	for _, name := range cmd.Flag.Args()[1:] {
		idx := f.SectionIndex(name)
		if idx < 0 {
			return fmt.Errorf("deps: no section named %q", name)
		}
		roots = append(roots, idx)
	}
	if *retained {
		roots = append(roots, f.RetainedSections()...)
	}
	if len(roots) == 0 {
		return errors.New("deps: no root sections")
	}
	debug("roots: %v", roots)

	closure := f.Closure(roots...)
	info("%d sections reached:\n", len(closure))
	names := make([]string, 0, len(closure))
	for _, idx := range closure {
		s := f.Sections[idx]
		names = append(names, fmt.Sprintf("[%d] %s", idx, s.Name))
	}
	fmt.Println(strings.Join(names, "\n"))
	return nil
}

func runPack(cmd *cli.Command, args []string) error {
	opts := commonFlags(cmd)
	if err := cmd.Flag.Parse(args); err != nil {
		return err
	}
	if cmd.Flag.NArg() != 2 {
		return fmt.Errorf("pack: expected input and output, got %d arguments", cmd.Flag.NArg())
	}
	f, _, err := parseFile(cmd.Flag.Arg(0), opts.apply())
	if err != nil {
		return err
	}
	if err := f.Pack(); err != nil {
		return err
	}

	w, err := os.Create(cmd.Flag.Arg(1))
	if err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	info("wrote %s\n", cmd.Flag.Arg(1))
	return nil
}
