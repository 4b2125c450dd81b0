// SPDX-License-Identifier: MIT
//
// Copyright (c) 2024 Adrian "asie" Siekierka

package elf

import (
	"bytes"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFile() *File {
	f := NewFile(ET_REL, EM_X86_64)
	f.AddSection("", SHT_NULL, nil)

	text := f.AddSection(".text", SHT_PROGBITS, &RawData{Data: testCode})
	f.Sections[text].Flags = SHF_ALLOC | SHF_EXECINSTR
	f.Sections[text].AddrAlign = 16

	data := f.AddSection(".data", SHT_PROGBITS, &RawData{Data: []byte{1, 2, 3}})
	f.Sections[data].Flags = SHF_WRITE | SHF_ALLOC
	f.Sections[data].AddrAlign = 8

	bss := f.AddSection(".bss", SHT_NOBITS, nil)
	f.Sections[bss].Size = 0x40

	strtab := &StringTable{}
	strtab.Add("")
	mainName := strtab.Add("main")
	strIdx := f.AddSection(".strtab", SHT_STRTAB, strtab)

	symIdx := f.AddSection(".symtab", SHT_SYMTAB, &SymbolTable{Symbols: []Symbol{
		{},
		{NameOffset: mainName, Info: SymbolInfo(STB_GLOBAL, STT_FUNC), SectionIndex: uint16(text), Size: uint64(len(testCode))},
	}})
	f.Sections[symIdx].Link = uint32(strIdx)
	f.Sections[symIdx].Info = 1
	f.Sections[symIdx].AddrAlign = 8

	relaIdx := f.AddSection(".rela.text", SHT_RELA, &RelaTable{Entries: []Rela{
		{Offset: 5, Info: RelocationInfo(1, R_X86_64_PC32), Addend: -4},
	}})
	f.Sections[relaIdx].Flags = SHF_INFO_LINK
	f.Sections[relaIdx].Link = uint32(symIdx)
	f.Sections[relaIdx].Info = uint32(text)
	f.Sections[relaIdx].AddrAlign = 8

	f.Segments = append(f.Segments, &Segment{
		ProgramHeader: ProgramHeader{Type: PT_LOAD, Flags: PF_R | PF_X, VAddr: 0x401000, PAddr: 0x401000, Align: 0x1000},
		Data:          testCode,
	})
	return f
}

func TestNewFile(t *testing.T) {
	f := NewFile(ET_EXEC, EM_X86_64)
	assert.Equal(t, ELFCLASS64, f.Class)
	assert.Equal(t, ELFDATA2LSB, f.Endian)
	assert.Equal(t, ELFOSABI_SYSV, f.ABI)
	assert.Equal(t, EV_CURRENT, f.Version)
	assert.Equal(t, uint16(HeaderSize), f.HeaderSize)

	require.NoError(t, f.Pack())
	out, err := f.Encode()
	require.NoError(t, err)
	assert.Len(t, out, HeaderSize)

	g, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, f.Header, g.Header)
}

func TestPack(t *testing.T) {
	f := newTestFile()
	require.NoError(t, f.Pack())

	require.Len(t, f.Sections, 8)
	assert.Equal(t, ".shstrtab", f.Sections[7].Name)
	assert.Equal(t, uint16(7), f.SecHdrStrIndex)
	assert.Equal(t, uint16(8), f.SecHdrCount)
	assert.Equal(t, uint16(1), f.ProgHdrCount)
	assert.Equal(t, uint64(HeaderSize), f.ProgHdrOffset)

	seg := f.Segments[0]
	assert.Equal(t, uint64(HeaderSize+ProgramHeaderSize), seg.Offset)
	assert.Equal(t, uint64(len(testCode)), seg.FileSize)
	assert.Equal(t, uint64(len(testCode)), seg.MemSize)

	text := f.Section(".text")
	assert.Zero(t, text.Offset%16)
	assert.Equal(t, uint64(len(testCode)), text.Size)

	bss := f.Section(".bss")
	assert.Zero(t, bss.Offset)
	assert.Equal(t, uint64(0x40), bss.Size)

	assert.Equal(t, uint64(SymbolSize), f.Section(".symtab").EntrySize)
	assert.Equal(t, uint64(RelaSize), f.Section(".rela.text").EntrySize)
	assert.Zero(t, f.Section(".text").EntrySize)

	// Every placed extent is disjoint from the others.
	type span struct{ start, end uint64 }
	spans := []span{
		{0, HeaderSize},
		{f.ProgHdrOffset, f.ProgHdrOffset + ProgramHeaderSize},
		{seg.Offset, seg.Offset + seg.FileSize},
		{f.SecHdrOffset, f.SecHdrOffset + uint64(len(f.Sections))*SectionHeaderSize},
	}
	for _, s := range f.Sections {
		if s.Type != SHT_NOBITS && s.Size > 0 {
			spans = append(spans, span{s.Offset, s.Offset + s.Size})
		}
	}
	slices.SortFunc(spans, func(a, b span) int { return int(a.start) - int(b.start) })
	for i := 1; i < len(spans); i++ {
		assert.LessOrEqual(t, spans[i-1].end, spans[i].start, "extent %d overlaps", i)
	}
}

func TestPackRoundTrip(t *testing.T) {
	f := newTestFile()
	require.NoError(t, f.Pack())
	out, err := f.Encode()
	require.NoError(t, err)

	g, err := Parse(out)
	require.NoError(t, err)

	assert.Equal(t, f.Header, g.Header)
	require.Len(t, g.Sections, len(f.Sections))
	for i := range f.Sections {
		assert.Equal(t, f.Sections[i].Name, g.Sections[i].Name, "section %d", i)
		assert.Equal(t, f.Sections[i].SectionHeader, g.Sections[i].SectionHeader, "section %d", i)
		assert.Equal(t, f.Sections[i].Content, g.Sections[i].Content, "section %d", i)
	}
	require.Len(t, g.Segments, 1)
	assert.Equal(t, f.Segments[0].ProgramHeader, g.Segments[0].ProgramHeader)
	assert.Equal(t, testCode, g.Segments[0].Data)

	again, err := g.Encode()
	require.NoError(t, err)
	assert.Equal(t, out, again)

	require.NoError(t, g.Pack(), "packing a packed file is stable")
	packed, err := g.Encode()
	require.NoError(t, err)
	assert.Equal(t, out, packed)
}

func TestPackKeepsSuffixNames(t *testing.T) {
	img := testImage{
		sections: []testSection{
			{typ: SHT_PROGBITS, flags: SHF_ALLOC | SHF_EXECINSTR, align: 16, data: testCode},
			{typ: SHT_RELA, flags: SHF_INFO_LINK, info: 1, align: 8, entsize: RelaSize, data: relaBytes(
				Rela{Offset: 5, Info: RelocationInfo(0, R_X86_64_PC32), Addend: -4},
			)},
		},
		nameTable:   []byte("\x00.rela.text\x00.shstrtab\x00"),
		nameOffsets: []uint32{6, 1, 12},
	}
	f, err := Parse(img.build())
	require.NoError(t, err)
	assert.Equal(t, "", f.Sections[1].Name)
	assert.Equal(t, ".rela.text", f.Sections[2].Name)

	require.NoError(t, f.Pack())
	assert.Equal(t, ".text", f.Sections[1].Name)

	out, err := f.Encode()
	require.NoError(t, err)
	g, err := Parse(out)
	require.NoError(t, err)
	require.Len(t, g.Sections, 4)
	assert.Equal(t, ".text", g.Sections[1].Name)
	assert.Equal(t, ".rela.text", g.Sections[2].Name)
	assert.Equal(t, ".shstrtab", g.Sections[3].Name)
	assert.Equal(t, testCode, g.Sections[1].Content.Bytes())
}

func TestPackExtendedProgramHeaderCount(t *testing.T) {
	f := NewFile(ET_CORE, EM_X86_64)
	f.AddSection("", SHT_NULL, nil)
	for i := 0; i < PN_XNUM; i++ {
		f.Segments = append(f.Segments, &Segment{ProgramHeader: ProgramHeader{Type: PT_NOTE}})
	}
	f.Segments[42].Data = []byte("note")

	require.NoError(t, f.Pack())
	assert.Equal(t, uint16(PN_XNUM), f.ProgHdrCount)
	assert.Equal(t, uint32(PN_XNUM), f.Sections[0].Info)

	out, err := f.Encode()
	require.NoError(t, err)
	g, err := Parse(out)
	require.NoError(t, err)
	require.Len(t, g.Segments, PN_XNUM)
	assert.Equal(t, []byte("note"), g.Segments[42].Data)
}

func TestPackExtendedSectionCount(t *testing.T) {
	f := NewFile(ET_REL, EM_X86_64)
	f.AddSection("", SHT_NULL, nil)
	for i := 0; i < SHN_LORESERVE; i++ {
		f.AddSection("", SHT_NOBITS, nil)
	}
	last := f.AddSection(".last", SHT_PROGBITS, &RawData{Data: []byte{0xC3}})

	require.NoError(t, f.Pack())
	n := len(f.Sections)
	assert.Equal(t, last+2, n, ".shstrtab appended")
	assert.Equal(t, uint16(0), f.SecHdrCount)
	assert.Equal(t, uint64(n), f.Sections[0].Size)
	assert.Equal(t, uint16(SHN_XINDEX), f.SecHdrStrIndex)
	assert.Equal(t, uint32(n-1), f.Sections[0].Link)

	out, err := f.Encode()
	require.NoError(t, err)
	g, err := Parse(out)
	require.NoError(t, err)
	require.Len(t, g.Sections, n)
	assert.Equal(t, ".last", g.Sections[last].Name)
	assert.Equal(t, []byte{0xC3}, g.Sections[last].Content.Bytes())
}

func TestPackProgramHeaderEscapeNeedsSection(t *testing.T) {
	f := NewFile(ET_CORE, EM_X86_64)
	for i := 0; i < PN_XNUM; i++ {
		f.Segments = append(f.Segments, &Segment{})
	}
	assert.ErrorIs(t, f.Pack(), ErrLayout)
}

func TestPackEscapeNeedsNullSection(t *testing.T) {
	f := NewFile(ET_CORE, EM_X86_64)
	f.AddSection(".note", SHT_NOTE, &RawData{Data: []byte("note")})
	for i := 0; i < PN_XNUM; i++ {
		f.Segments = append(f.Segments, &Segment{})
	}

	err := f.Pack()
	assert.ErrorIs(t, err, ErrLayout)
	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 0, fe.Index)
	assert.Equal(t, []byte("note"), f.Sections[0].Content.Bytes())
	assert.Zero(t, f.Sections[0].Info)
}

func TestEncodeLayoutError(t *testing.T) {
	f := NewFile(ET_EXEC, EM_X86_64)
	f.Segments = append(f.Segments, &Segment{
		ProgramHeader: ProgramHeader{Type: PT_LOAD, Offset: maxImageSize},
		Data:          []byte{1},
	})
	_, err := f.Encode()
	assert.ErrorIs(t, err, ErrLayout)

	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "segment", fe.Structure)

	var buf bytes.Buffer
	assert.ErrorIs(t, f.Write(&buf), ErrLayout)
	assert.Zero(t, buf.Len())
}
