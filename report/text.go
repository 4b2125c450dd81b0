// SPDX-License-Identifier: MIT
//
// Copyright (c) 2024 Adrian "asie" Siekierka

package report

import (
	"fmt"
	"io"
	"text/tabwriter"
	"text/template"

	"github.com/WonderfulToolchain/wf-elf64/elf"
	"github.com/fatih/color"
)

const headerTemplate = `ELF header
- class       : {{.Class}}
- endian      : {{.Endian}}
- abi         : {{.ABI}} (version {{.ABIVersion}})
- type        : {{.Type}}
- machine     : {{.Machine}}
- version     : {{.Version}}
- entry       : {{hex .Entry}}
- flags       : {{hex .Flags}}
- phdrs       : {{.ProgHdrCount}} x {{.ProgHdrEntrySize}} at {{hex .ProgHdrOffset}}
- shdrs       : {{.SecHdrCount}} x {{.SecHdrEntrySize}} at {{hex .SecHdrOffset}}
- shstrndx    : {{.SecHdrStrIndex}}{{if ge .NameTable 0}} (names from section {{.NameTable}}){{end}}

`

var (
	heading = color.New(color.Bold).SprintFunc()
	name    = color.New(color.FgGreen).SprintFunc()
	known   = color.New(color.FgCyan).SprintFunc()
	unknown = color.New(color.FgYellow).SprintFunc()
)

// tag colors a tag name by whether it is recognized. Both colors emit escape
// sequences of the same length, so tabwriter columns stay aligned.
func tag(s string, ok bool) string {
	if ok {
		return known(s)
	}
	return unknown(s)
}

func hex[T uint16 | uint32 | uint64](v T) string {
	return fmt.Sprintf("%#x", v)
}

// Text writes a human-readable report of f. Colors follow color.NoColor.
func Text(w io.Writer, f *elf.File) error {
	r := New(f)

	fs := template.FuncMap{
		"hex": func(v any) string { return fmt.Sprintf("%#x", v) },
	}
	t, err := template.New("header").Funcs(fs).Parse(headerTemplate)
	if err != nil {
		return err
	}
	if err := t.Execute(w, r.Header); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 4, 2, 2, ' ', 0)

	fmt.Fprintln(tw, heading(fmt.Sprintf("Sections (%d)", len(r.Sections))))
	fmt.Fprintln(tw, "[Nr]\tName\tType\tAddress\tOffset\tSize\tEntSize\tLink\tInfo\tAlign\tFlags\tContent")
	for _, s := range r.Sections {
		fmt.Fprintf(tw, "[%d]\t%s\t%s\t%s\t%s\t%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
			s.Index, name(s.Name), tag(s.Type, s.Known),
			hex(s.Address), hex(s.Offset), hex(s.Size), hex(s.EntrySize),
			s.Link, s.Info, s.AddrAlign, s.Flags, describe(s.Content))
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, heading(fmt.Sprintf("Segments (%d)", len(r.Segments))))
	fmt.Fprintln(tw, "[Nr]\tType\tOffset\tVAddr\tPAddr\tFileSize\tMemSize\tAlign\tFlags")
	for _, seg := range r.Segments {
		fmt.Fprintf(tw, "[%d]\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			seg.Index, tag(seg.Type, seg.Known),
			hex(seg.Offset), hex(seg.VAddr), hex(seg.PAddr),
			hex(seg.FileSize), hex(seg.MemSize), hex(seg.Align), seg.Permissions)
	}

	return tw.Flush()
}

func describe(c Content) string {
	s := fmt.Sprintf("%s[%d]", c.Kind, c.Length)
	if c.Trailing > 0 {
		s += fmt.Sprintf(" +%d", c.Trailing)
	}
	return s
}
