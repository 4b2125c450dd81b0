// SPDX-License-Identifier: MIT
//
// Copyright (c) 2024 Adrian "asie" Siekierka

package elf

import (
	"bytes"
	"io"

	"github.com/WonderfulToolchain/wf-elf64/layout"
)

// maxImageSize bounds the images Encode and Pack will produce.
const maxImageSize = 1 << 36

// NewFile returns an empty file model with current-version identification.
func NewFile(typ FileType, machine MachineType) *File {
	return &File{
		Header: Header{
			Ident: Ident{
				Class:         ELFCLASS64,
				Endian:        ELFDATA2LSB,
				HeaderVersion: uint8(EV_CURRENT),
				ABI:           ELFOSABI_SYSV,
			},
			Type:             typ,
			Machine:          machine,
			Version:          EV_CURRENT,
			HeaderSize:       HeaderSize,
			ProgHdrEntrySize: ProgramHeaderSize,
			SecHdrEntrySize:  SectionHeaderSize,
		},
	}
}

// AddSection appends a section and returns its index.
func (f *File) AddSection(name string, typ SectionHeaderType, content SectionContent) int {
	if content == nil {
		content = &RawData{}
	}
	f.Sections = append(f.Sections, &Section{
		SectionHeader: SectionHeader{Type: typ},
		Name:          name,
		Content:       content,
	})
	return len(f.Sections) - 1
}

type image []byte

func (img *image) put(offset uint64, data []byte) error {
	end := offset + uint64(len(data))
	if end < offset || end > maxImageSize {
		return ErrLayout
	}
	if n := int(end); n > len(*img) {
		*img = append(*img, make([]byte, n-len(*img))...)
	}
	copy((*img)[offset:], data)
	return nil
}

// Encode writes every structure at the offset its header records. Bytes no
// structure covers are zero; the header is written last.
func (f *File) Encode() ([]byte, error) {
	var img image

	// Write program data
	for i, seg := range f.Segments {
		if len(seg.Data) == 0 {
			continue
		}
		if err := img.put(seg.Offset, seg.Data); err != nil {
			return nil, &FormatError{Structure: "segment", Index: i, Offset: seg.Offset, Size: uint64(len(seg.Data)), Err: err}
		}
	}

	// Write section data
	for i, s := range f.Sections {
		if !s.Type.HasDataInFile() || s.Offset == 0 || s.Content == nil {
			continue
		}
		data := s.Content.Bytes()
		if len(data) == 0 {
			continue
		}
		if err := img.put(s.Offset, data); err != nil {
			return nil, &FormatError{Structure: "section", Index: i, Offset: s.Offset, Size: uint64(len(data)), Err: err}
		}
	}

	// Write program headers
	if len(f.Segments) > 0 {
		var buf bytes.Buffer
		for _, seg := range f.Segments {
			if err := writeProgramHeader(&buf, &seg.ProgramHeader); err != nil {
				return nil, err
			}
		}
		if err := img.put(f.ProgHdrOffset, buf.Bytes()); err != nil {
			return nil, &FormatError{Structure: "program header table", Index: -1, Offset: f.ProgHdrOffset, Size: uint64(buf.Len()), Err: err}
		}
	}

	// Write section headers
	if len(f.Sections) > 0 {
		var buf bytes.Buffer
		for _, s := range f.Sections {
			if err := writeSectionHeader(&buf, &s.SectionHeader); err != nil {
				return nil, err
			}
		}
		if err := img.put(f.SecHdrOffset, buf.Bytes()); err != nil {
			return nil, &FormatError{Structure: "section header table", Index: -1, Offset: f.SecHdrOffset, Size: uint64(buf.Len()), Err: err}
		}
	}

	// Write file header
	var buf bytes.Buffer
	if err := writeHeader(&buf, &f.Header); err != nil {
		return nil, err
	}
	if err := img.put(0, buf.Bytes()); err != nil {
		return nil, err
	}

	return img, nil
}

func (f *File) Write(w io.Writer) error {
	data, err := f.Encode()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// extent is one placed item of a packed file.
type extent struct {
	offset uint64
	size   uint64
	align  uint64
}

func (e *extent) Offset() uint64 { return e.offset }
func (e *extent) SetOffset(off uint64) { e.offset = off }
func (e *extent) Size() uint64 { return e.size }
func (e *extent) Alignment() uint64 { return e.align }

// nameTable returns the index of the section name table Pack should fill,
// appending a .shstrtab section if the file has none and names are in use.
func (f *File) nameTable() (int, bool) {
	if idx, ok := f.sectionNameTableIndex(); ok && idx != 0 {
		if _, ok := f.Sections[idx].Content.(*StringTable); ok {
			return idx, true
		}
	}
	if idx := f.SectionIndex(".shstrtab"); idx > 0 {
		if _, ok := f.Sections[idx].Content.(*StringTable); ok {
			return idx, true
		}
	}
	for _, s := range f.Sections {
		if s.Name != "" {
			return f.AddSection(".shstrtab", SHT_STRTAB, &StringTable{}), true
		}
	}
	return 0, false
}

// isNull reports whether the section can carry extended counts: a null
// section without content.
func (s *Section) isNull() bool {
	return s.Type == SHT_NULL && (s.Content == nil || len(s.Content.Bytes()) == 0)
}

func defaultEntrySize(typ SectionHeaderType) uint64 {
	switch typ {
	case SHT_SYMTAB, SHT_DYNSYM:
		return SymbolSize
	case SHT_REL:
		return RelSize
	case SHT_RELA:
		return RelaSize
	case SHT_DYNAMIC:
		return DynamicEntrySize
	}
	return 0
}

// Pack recomputes every layout-derived field so that Encode produces a
// consistent file: entry sizes, counts, section name offsets, and the file
// offsets and sizes of all headers, segments and sections.
//
// Layout:
// - file header
// - program headers
// - program data
// - section data
// - section headers
func (f *File) Pack() error {
	f.HeaderSize = HeaderSize
	f.ProgHdrEntrySize = ProgramHeaderSize
	f.SecHdrEntrySize = SectionHeaderSize

	if len(f.Segments) >= PN_XNUM && len(f.Sections) == 0 {
		return &FormatError{Structure: "program header table", Index: -1, Err: ErrLayout}
	}

	// Recover names stored as a suffix of another string
	if strtab := f.StringTable(); strtab != nil {
		for _, s := range f.Sections {
			if s.Name != "" || s.NameOffset == 0 {
				continue
			}
			if name, ok := strtab.Suffix(s.NameOffset); ok {
				s.Name = name
			}
		}
	}

	// Populate section string table
	nameIdx, hasNames := f.nameTable()
	escaped := len(f.Sections) >= SHN_LORESERVE || nameIdx >= SHN_LORESERVE || len(f.Segments) >= PN_XNUM
	if escaped && !f.Sections[0].isNull() {
		return &FormatError{Structure: "section", Index: 0, Err: ErrLayout}
	}
	if hasNames {
		strtab := &StringTable{}
		strtab.Add("")
		for _, s := range f.Sections {
			s.NameOffset = strtab.Add(s.Name)
		}
		f.Sections[nameIdx].Content = strtab
	}

	region := layout.NewRegion[*extent](0, maxImageSize, false)
	place := func(structure string, index int, e *extent) error {
		if err := region.Place(e); err != nil {
			return &FormatError{Structure: structure, Index: index, Size: e.size, Err: ErrLayout}
		}
		return nil
	}

	// Layout file header
	if err := region.PlaceAt(&extent{size: HeaderSize, align: 1}, 0); err != nil {
		return &FormatError{Structure: "file header", Index: -1, Size: HeaderSize, Err: ErrLayout}
	}

	// Layout program headers
	f.ProgHdrOffset = 0
	if len(f.Segments) > 0 {
		e := &extent{size: uint64(len(f.Segments)) * ProgramHeaderSize, align: 8}
		if err := place("program header table", -1, e); err != nil {
			return err
		}
		f.ProgHdrOffset = e.offset
	}

	// Layout program data
	for i, seg := range f.Segments {
		seg.FileSize = uint64(len(seg.Data))
		seg.MemSize = max(seg.MemSize, seg.FileSize)
		seg.Offset = 0
		if seg.FileSize == 0 {
			continue
		}
		e := &extent{size: seg.FileSize, align: 8}
		if err := place("segment", i, e); err != nil {
			return err
		}
		seg.Offset = e.offset
	}

	// Layout section data
	for i, s := range f.Sections {
		if s.EntrySize == 0 {
			s.EntrySize = defaultEntrySize(s.Type)
		}
		if !s.Type.HasDataInFile() {
			continue
		}
		var data []byte
		if s.Content != nil {
			data = s.Content.Bytes()
		}
		s.Offset = 0
		s.Size = uint64(len(data))
		if len(data) == 0 {
			continue
		}
		e := &extent{size: s.Size, align: max(1, s.AddrAlign)}
		if err := place("section", i, e); err != nil {
			return err
		}
		s.Offset = e.offset
	}

	// Layout section headers
	f.SecHdrOffset = 0
	if len(f.Sections) > 0 {
		e := &extent{size: uint64(len(f.Sections)) * SectionHeaderSize, align: 8}
		if err := place("section header table", -1, e); err != nil {
			return err
		}
		f.SecHdrOffset = e.offset
	}

	// Counts, escaping into the first section when they do not fit
	if n := len(f.Sections); n >= SHN_LORESERVE {
		f.SecHdrCount = 0
		f.Sections[0].Size = uint64(n)
	} else {
		f.SecHdrCount = uint16(n)
	}
	switch {
	case !hasNames:
		f.SecHdrStrIndex = SHN_UNDEF
	case nameIdx >= SHN_LORESERVE:
		f.SecHdrStrIndex = SHN_XINDEX
		f.Sections[0].Link = uint32(nameIdx)
	default:
		f.SecHdrStrIndex = uint16(nameIdx)
	}
	if n := len(f.Segments); n >= PN_XNUM {
		f.ProgHdrCount = PN_XNUM
		f.Sections[0].Info = uint32(n)
	} else {
		f.ProgHdrCount = uint16(n)
	}

	return nil
}
