// SPDX-License-Identifier: MIT
//
// Copyright (c) 2024 Adrian "asie" Siekierka

package elf

// File is a decoded ELF64 image.
//
// Offsets, sizes and counts in Header and in every SectionHeader and
// ProgramHeader are kept exactly as read, so that Encode reproduces the
// input. Pack recomputes them for hand-built files.
type File struct {
	Header
	Sections []*Section
	Segments []*Segment
}

type Ident struct {
	Class         FileClass
	Endian        FileEndian
	HeaderVersion uint8
	ABI           FileABI
	ABIVersion    uint8
	Pad           uint8
	Reserved      [5]byte
	IdentSize     uint8
}

type Header struct {
	Ident

	Type             FileType
	Machine          MachineType
	Version          FileVersion
	Entry            uint64
	ProgHdrOffset    uint64
	SecHdrOffset     uint64
	Flags            uint32
	HeaderSize       uint16
	ProgHdrEntrySize uint16
	ProgHdrCount     uint16
	SecHdrEntrySize  uint16
	SecHdrCount      uint16
	SecHdrStrIndex   uint16
}

type ProgramHeader struct {
	Type     ProgramHeaderType
	Flags    ProgramHeaderFlag
	Offset   uint64
	VAddr    uint64
	PAddr    uint64
	FileSize uint64
	MemSize  uint64
	Align    uint64
}

// Segment is a program header and the file bytes it covers. Data aliases the
// buffer passed to Parse.
type Segment struct {
	ProgramHeader
	Data []byte
}

type SectionHeader struct {
	NameOffset uint32
	Type       SectionHeaderType
	Flags      SectionHeaderFlag
	Address    uint64
	Offset     uint64
	Size       uint64
	Link       uint32
	Info       uint32
	AddrAlign  uint64
	EntrySize  uint64
}

// Section is a section header, its name as found in the section name string
// table, and its decoded contents.
type Section struct {
	SectionHeader
	Name    string
	Content SectionContent
}

// SectionContent is one of *StringTable, *SymbolTable, *RelTable, *RelaTable,
// *DynamicTable or *RawData.
type SectionContent interface {
	// Bytes returns the encoded form of the content.
	Bytes() []byte
	isSectionContent()
}

// RawData holds the bytes of a section whose type has no dedicated decoder.
// SHT_NOBITS sections always carry an empty RawData.
type RawData struct {
	Data []byte
}

func (d *RawData) Bytes() []byte { return d.Data }
func (d *RawData) isSectionContent() {}

type Symbol struct {
	NameOffset   uint32
	Info         uint8
	Other        uint8
	SectionIndex uint16
	Value        uint64
	Size         uint64
}

// Type is the low nibble of Info.
func (s Symbol) Type() SymbolType {
	return SymbolType(s.Info & 0xF)
}

// Binding is the high nibble of Info.
func (s Symbol) Binding() SymbolBinding {
	return SymbolBinding(s.Info >> 4)
}

// SymbolInfo packs a binding and a type into a symbol info byte.
func SymbolInfo(binding SymbolBinding, typ SymbolType) uint8 {
	return uint8(binding)<<4 | uint8(typ)&0xF
}

type SymbolTable struct {
	Symbols []Symbol
	// Trailing holds bytes after the last whole entry.
	Trailing []byte
}

func (t *SymbolTable) isSectionContent() {}

type Rel struct {
	Offset uint64
	Info   uint64
}

func (r Rel) Type() RelocationType { return RelocationType(uint32(r.Info)) }
func (r Rel) SymbolIndex() uint32 { return uint32(r.Info >> 32) }

type Rela struct {
	Offset uint64
	Info   uint64
	Addend int64
}

func (r Rela) Type() RelocationType { return RelocationType(uint32(r.Info)) }
func (r Rela) SymbolIndex() uint32 { return uint32(r.Info >> 32) }

// RelocationInfo packs a symbol index and a relocation kind into an info word.
func RelocationInfo(symbolIndex uint32, typ RelocationType) uint64 {
	return uint64(symbolIndex)<<32 | uint64(typ)
}

type RelTable struct {
	Entries  []Rel
	Trailing []byte
}

func (t *RelTable) isSectionContent() {}

type RelaTable struct {
	Entries  []Rela
	Trailing []byte
}

func (t *RelaTable) isSectionContent() {}

type DynamicEntry struct {
	Tag   DynamicTag
	Value uint64
}

type DynamicTable struct {
	Entries  []DynamicEntry
	Trailing []byte
}

func (t *DynamicTable) isSectionContent() {}
