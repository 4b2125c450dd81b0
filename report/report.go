// SPDX-License-Identifier: MIT
//
// Copyright (c) 2024 Adrian "asie" Siekierka

// Package report renders a decoded ELF64 file for people and for tools.
package report

import (
	"encoding/json"
	"io"

	"github.com/WonderfulToolchain/wf-elf64/elf"
)

type Report struct {
	Header   Header    `json:"header"`
	Sections []Section `json:"sections"`
	Segments []Segment `json:"segments"`
}

type Header struct {
	Class            string `json:"class"`
	Endian           string `json:"endian"`
	HeaderVersion    uint8  `json:"header_version"`
	ABI              string `json:"abi"`
	ABIVersion       uint8  `json:"abi_version"`
	Type             string `json:"type"`
	Machine          string `json:"machine"`
	Version          string `json:"version"`
	Entry            uint64 `json:"entry"`
	ProgHdrOffset    uint64 `json:"phoff"`
	SecHdrOffset     uint64 `json:"shoff"`
	Flags            uint32 `json:"flags"`
	HeaderSize       uint16 `json:"ehsize"`
	ProgHdrEntrySize uint16 `json:"phentsize"`
	ProgHdrCount     uint16 `json:"phnum"`
	SecHdrEntrySize  uint16 `json:"shentsize"`
	SecHdrCount      uint16 `json:"shnum"`
	SecHdrStrIndex   uint16 `json:"shstrndx"`
	NameTable        int    `json:"name_table"`
}

type Section struct {
	Index     int     `json:"index"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Known     bool    `json:"known"`
	Flags     string  `json:"flags"`
	Address   uint64  `json:"address"`
	Offset    uint64  `json:"offset"`
	Size      uint64  `json:"size"`
	Link      uint32  `json:"link"`
	Info      uint32  `json:"info"`
	AddrAlign uint64  `json:"addralign"`
	EntrySize uint64  `json:"entsize"`
	Content   Content `json:"content"`
}

// Content summarizes a section's decoded content. Only the list matching
// Kind is populated.
type Content struct {
	Kind        string       `json:"kind"`
	Length      int          `json:"length"`
	Trailing    int          `json:"trailing,omitempty"`
	Strings     []String     `json:"strings,omitempty"`
	Symbols     []Symbol     `json:"symbols,omitempty"`
	Relocations []Relocation `json:"relocations,omitempty"`
	Dynamic     []Dynamic    `json:"dynamic,omitempty"`
}

type String struct {
	Offset uint32 `json:"offset"`
	Value  string `json:"value"`
}

type Symbol struct {
	NameOffset   uint32 `json:"name_offset"`
	Type         string `json:"type"`
	Binding      string `json:"binding"`
	Other        uint8  `json:"other"`
	SectionIndex uint16 `json:"shndx"`
	Value        uint64 `json:"value"`
	Size         uint64 `json:"size"`
}

type Relocation struct {
	Offset uint64 `json:"offset"`
	Type   string `json:"type"`
	Symbol uint32 `json:"symbol"`
	Addend *int64 `json:"addend,omitempty"`
}

type Dynamic struct {
	Tag   string `json:"tag"`
	Value uint64 `json:"value"`
}

type Segment struct {
	Index       int    `json:"index"`
	Type        string `json:"type"`
	Known       bool   `json:"known"`
	Flags       string `json:"flags"`
	Permissions string `json:"permissions"`
	Offset      uint64 `json:"offset"`
	VAddr       uint64 `json:"vaddr"`
	PAddr       uint64 `json:"paddr"`
	FileSize    uint64 `json:"filesz"`
	MemSize     uint64 `json:"memsz"`
	Align       uint64 `json:"align"`
	Length      int    `json:"length"`
}

// New builds the report of f. Tags are rendered by name; unknown values keep
// their number.
func New(f *elf.File) *Report {
	r := &Report{
		Header:   newHeader(f),
		Sections: make([]Section, 0, len(f.Sections)),
		Segments: make([]Segment, 0, len(f.Segments)),
	}
	for i, s := range f.Sections {
		r.Sections = append(r.Sections, Section{
			Index:     i,
			Name:      s.Name,
			Type:      s.Type.String(),
			Known:     s.Type.Known(),
			Flags:     s.Flags.String(),
			Address:   s.Address,
			Offset:    s.Offset,
			Size:      s.Size,
			Link:      s.Link,
			Info:      s.Info,
			AddrAlign: s.AddrAlign,
			EntrySize: s.EntrySize,
			Content:   newContent(s.Content),
		})
	}
	for i, seg := range f.Segments {
		r.Segments = append(r.Segments, Segment{
			Index:       i,
			Type:        seg.Type.String(),
			Known:       seg.Type.Known(),
			Flags:       seg.Flags.String(),
			Permissions: seg.Flags.Permissions(),
			Offset:      seg.Offset,
			VAddr:       seg.VAddr,
			PAddr:       seg.PAddr,
			FileSize:    seg.FileSize,
			MemSize:     seg.MemSize,
			Align:       seg.Align,
			Length:      len(seg.Data),
		})
	}
	return r
}

func newHeader(f *elf.File) Header {
	h := Header{
		Class:            f.Class.String(),
		Endian:           f.Endian.String(),
		HeaderVersion:    f.HeaderVersion,
		ABI:              f.ABI.String(),
		ABIVersion:       f.ABIVersion,
		Type:             f.Type.String(),
		Machine:          f.Machine.String(),
		Version:          f.Version.String(),
		Entry:            f.Entry,
		ProgHdrOffset:    f.ProgHdrOffset,
		SecHdrOffset:     f.SecHdrOffset,
		Flags:            f.Flags,
		HeaderSize:       f.HeaderSize,
		ProgHdrEntrySize: f.ProgHdrEntrySize,
		ProgHdrCount:     f.ProgHdrCount,
		SecHdrEntrySize:  f.SecHdrEntrySize,
		SecHdrCount:      f.SecHdrCount,
		SecHdrStrIndex:   f.SecHdrStrIndex,
		NameTable:        -1,
	}
	if strtab := f.StringTable(); strtab != nil {
		for i, s := range f.Sections {
			if t, ok := s.Content.(*elf.StringTable); ok && t == strtab {
				h.NameTable = i
				break
			}
		}
	}
	return h
}

func newContent(content elf.SectionContent) Content {
	if content == nil {
		return Content{Kind: "none"}
	}
	var c Content
	switch t := content.(type) {
	case *elf.StringTable:
		c.Kind = "strings"
		c.Trailing = len(t.Trailing)
		for _, off := range t.Offsets() {
			c.Strings = append(c.Strings, String{Offset: off, Value: t.Strings[off]})
		}
		c.Length = len(c.Strings)
	case *elf.SymbolTable:
		c.Kind = "symbols"
		c.Trailing = len(t.Trailing)
		c.Length = len(t.Symbols)
		for _, sym := range t.Symbols {
			c.Symbols = append(c.Symbols, Symbol{
				NameOffset:   sym.NameOffset,
				Type:         sym.Type().String(),
				Binding:      sym.Binding().String(),
				Other:        sym.Other,
				SectionIndex: sym.SectionIndex,
				Value:        sym.Value,
				Size:         sym.Size,
			})
		}
	case *elf.RelTable:
		c.Kind = "rel"
		c.Trailing = len(t.Trailing)
		c.Length = len(t.Entries)
		for _, rel := range t.Entries {
			c.Relocations = append(c.Relocations, Relocation{
				Offset: rel.Offset,
				Type:   rel.Type().String(),
				Symbol: rel.SymbolIndex(),
			})
		}
	case *elf.RelaTable:
		c.Kind = "rela"
		c.Trailing = len(t.Trailing)
		c.Length = len(t.Entries)
		for _, rel := range t.Entries {
			addend := rel.Addend
			c.Relocations = append(c.Relocations, Relocation{
				Offset: rel.Offset,
				Type:   rel.Type().String(),
				Symbol: rel.SymbolIndex(),
				Addend: &addend,
			})
		}
	case *elf.DynamicTable:
		c.Kind = "dynamic"
		c.Trailing = len(t.Trailing)
		c.Length = len(t.Entries)
		for _, e := range t.Entries {
			c.Dynamic = append(c.Dynamic, Dynamic{Tag: e.Tag.String(), Value: e.Value})
		}
	default:
		c.Kind = "raw"
		c.Length = len(content.Bytes())
	}
	return c
}

// JSON writes the report of f as indented JSON.
func JSON(w io.Writer, f *elf.File) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(New(f))
}
