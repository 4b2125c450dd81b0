// SPDX-License-Identifier: MIT
//
// Copyright (c) 2024 Adrian "asie" Siekierka

package elf

import (
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Options tunes ParseWithOptions.
type Options struct {
	// Parallel decodes section contents and segments concurrently. The result
	// is the same as a sequential parse.
	Parallel bool
	// Debugf, when set, receives a trace of each decoding stage.
	Debugf func(format string, args ...any)
}

type reader struct {
	ctx  parseContext
	opts Options
}

// Parse decodes an ELF64 image. data is not copied: segment and raw section
// bytes alias it, so it must not be modified while the File is in use.
func Parse(data []byte) (*File, error) {
	return ParseWithOptions(data, Options{})
}

func ParseWithOptions(data []byte, opts Options) (*File, error) {
	r := &reader{ctx: newParseContext(data), opts: opts}
	return r.parse()
}

// Read reads r to the end and parses the result.
func Read(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func (r *reader) debugf(format string, args ...any) {
	if r.opts.Debugf != nil {
		r.opts.Debugf(format, args...)
	}
}

// each runs fn for 0..n-1, concurrently if requested.
func (r *reader) each(n int, fn func(i int) error) error {
	if !r.opts.Parallel || n < 2 {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			return fn(i)
		})
	}
	return g.Wait()
}

func (r *reader) parse() (*File, error) {
	f := &File{}

	// Read main header
	c := r.ctx
	h, err := readHeader(&c)
	if err != nil {
		return nil, &FormatError{Structure: "file header", Index: -1, Err: err}
	}
	f.Header = h
	r.debugf("header: type %v, machine %v, %d program headers at %#x, %d sections at %#x",
		h.Type, h.Machine, h.ProgHdrCount, h.ProgHdrOffset, h.SecHdrCount, h.SecHdrOffset)

	// Read sections; everything after this point may depend on the whole table
	if err := r.readSections(f); err != nil {
		return nil, err
	}

	// Read shstrtab
	if idx, ok := f.sectionNameTableIndex(); ok {
		r.debugf("section names: table %d", idx)
	}
	f.resolveSectionNames()

	// Read program headers; their count may be stored in the first section
	count, err := f.ProgramHeaderCount()
	if err != nil {
		return nil, &FormatError{Structure: "program header table", Index: -1, Offset: f.ProgHdrOffset, Err: err}
	}
	if err := r.readSegments(f, count); err != nil {
		return nil, err
	}

	r.debugf("parsed %d sections, %d segments", len(f.Sections), len(f.Segments))
	return f, nil
}

func (r *reader) readSections(f *File) error {
	if f.SecHdrCount == 0 && f.SecHdrOffset == 0 {
		return nil
	}

	c, err := r.ctx.at(f.SecHdrOffset)
	if err != nil {
		return &FormatError{Structure: "section header table", Index: -1, Offset: f.SecHdrOffset, Err: err}
	}

	count := uint64(f.SecHdrCount)
	headers := make([]SectionHeader, 0, min(count, uint64(len(c.remaining)/SectionHeaderSize)))
	for i := uint64(0); i < count || i == 0; i++ {
		pos := c.position()
		sh, err := readSectionHeader(&c)
		if err != nil {
			return &FormatError{Structure: "section header", Index: int(i), Offset: pos, Size: SectionHeaderSize, Err: err}
		}
		if i == 0 && count == 0 {
			// SecHdrCount == 0 with a table present: the real count is the
			// first header's Size, which then cannot be zero.
			count = sh.Size
			r.debugf("section count escape: %d sections", count)
			if count == 0 {
				return &FormatError{Structure: "section header table", Index: -1, Offset: f.SecHdrOffset, Err: ErrMalformed}
			}
		}
		headers = append(headers, sh)
	}

	f.Sections = make([]*Section, len(headers))
	return r.each(len(headers), func(i int) error {
		sh := &headers[i]
		content, err := readSectionContent(r.ctx, sh)
		if err != nil {
			return &FormatError{Structure: "section", Index: i, Offset: sh.Offset, Size: sh.Size, Err: err}
		}
		f.Sections[i] = &Section{SectionHeader: *sh, Content: content}
		return nil
	})
}

func (r *reader) readSegments(f *File, count uint64) error {
	if count == 0 {
		return nil
	}

	c, err := r.ctx.at(f.ProgHdrOffset)
	if err != nil {
		return &FormatError{Structure: "program header table", Index: -1, Offset: f.ProgHdrOffset, Err: err}
	}

	headers := make([]ProgramHeader, 0, min(count, uint64(len(c.remaining)/ProgramHeaderSize)))
	for i := uint64(0); i < count; i++ {
		pos := c.position()
		ph, err := readProgramHeader(&c)
		if err != nil {
			return &FormatError{Structure: "program header", Index: int(i), Offset: pos, Size: ProgramHeaderSize, Err: err}
		}
		headers = append(headers, ph)
	}

	f.Segments = make([]*Segment, len(headers))
	return r.each(len(headers), func(i int) error {
		ph := &headers[i]
		data, err := readSegmentData(r.ctx, ph)
		if err != nil {
			return &FormatError{Structure: "segment", Index: i, Offset: ph.Offset, Size: ph.FileSize, Err: err}
		}
		f.Segments[i] = &Segment{ProgramHeader: *ph, Data: data}
		return nil
	})
}

// sectionNameTableIndex returns the index of the section name string table,
// following the SHN_XINDEX escape into the first section's Link.
func (f *File) sectionNameTableIndex() (int, bool) {
	idx := int(f.SecHdrStrIndex)
	if f.SecHdrStrIndex == SHN_XINDEX && len(f.Sections) > 0 {
		idx = int(f.Sections[0].Link)
	}
	if idx >= len(f.Sections) {
		return 0, false
	}
	return idx, true
}

// StringTable returns the section name string table, if the header designates
// one and it decoded as a string table.
func (f *File) StringTable() *StringTable {
	idx, ok := f.sectionNameTableIndex()
	if !ok {
		return nil
	}
	strtab, _ := f.Sections[idx].Content.(*StringTable)
	return strtab
}

func (f *File) resolveSectionNames() {
	strtab := f.StringTable()
	if strtab == nil {
		return
	}
	for _, s := range f.Sections {
		if name, ok := strtab.Lookup(s.NameOffset); ok {
			s.Name = name
		}
	}
}

// ProgramHeaderCount is the number of program headers, following the PN_XNUM
// escape into the first section's Info.
func (f *File) ProgramHeaderCount() (uint64, error) {
	if f.ProgHdrCount != PN_XNUM {
		return uint64(f.ProgHdrCount), nil
	}
	if len(f.Sections) == 0 {
		return 0, ErrMalformed
	}
	return uint64(f.Sections[0].Info), nil
}

// Section returns the first section with the given name.
func (f *File) Section(name string) *Section {
	for _, s := range f.Sections {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// SectionIndex returns the index of the first section with the given name, or -1.
func (f *File) SectionIndex(name string) int {
	for i, s := range f.Sections {
		if s.Name == name {
			return i
		}
	}
	return -1
}
