// SPDX-License-Identifier: MIT
//
// Copyright (c) 2024 Adrian "asie" Siekierka

package elf

import (
	"encoding/binary"
)

// testSection describes one section of a fixture image. Index 0 (the null
// section) and the trailing .shstrtab are added by buildImage.
type testSection struct {
	name    string
	typ     SectionHeaderType
	flags   SectionHeaderFlag
	link    uint32
	info    uint32
	align   uint64
	entsize uint64
	data    []byte
	// size is used for sections without data, such as SHT_NOBITS.
	size uint64
}

type testSegment struct {
	typ   ProgramHeaderType
	flags ProgramHeaderFlag
	vaddr uint64
	data  []byte
}

// testImage builds little-endian ELF64 images without going through the
// package's own encoder. Layout: header, program headers, segment data,
// section data, .shstrtab, section headers.
type testImage struct {
	sections []testSection
	segments []testSegment
	// nameTable replaces the generated .shstrtab contents; section names are
	// then ignored and nameOffsets is used instead.
	nameTable   []byte
	nameOffsets []uint32
}

const (
	offPhoff    = 32
	offShoff    = 40
	offPhnum    = 56
	offShnum    = 60
	offShstrndx = 62

	offShSize = 32
	offShLink = 40
	offShInfo = 44

	offPhFilesz = 32
)

type byteWriter struct {
	buf []byte
}

func (w *byteWriter) pad(align int) {
	for len(w.buf)%align != 0 {
		w.buf = append(w.buf, 0)
	}
}

func (w *byteWriter) u8(v uint8) { w.buf = append(w.buf, v) }
func (w *byteWriter) u16(v uint16) { w.buf = binary.LittleEndian.AppendUint16(w.buf, v) }
func (w *byteWriter) u32(v uint32) { w.buf = binary.LittleEndian.AppendUint32(w.buf, v) }
func (w *byteWriter) u64(v uint64) { w.buf = binary.LittleEndian.AppendUint64(w.buf, v) }

// minimalHeader is a well-formed header with no sections and no segments.
func minimalHeader() []byte {
	var w byteWriter
	writeTestHeader(&w, 0, 0, 0, 0, 0)
	return w.buf
}

func writeTestHeader(w *byteWriter, phoff uint64, phnum uint16, shoff uint64, shnum uint16, shstrndx uint16) {
	w.buf = append(w.buf, 0x7F, 'E', 'L', 'F')
	w.u8(2) // ELFCLASS64
	w.u8(1) // ELFDATA2LSB
	w.u8(1) // EV_CURRENT
	w.u8(0) // ELFOSABI_SYSV
	w.u8(0)
	w.buf = append(w.buf, make([]byte, 6)...)
	w.u8(0)
	w.u16(uint16(ET_REL))
	w.u16(uint16(EM_X86_64))
	w.u32(1)
	w.u64(0x401000)
	w.u64(phoff)
	w.u64(shoff)
	w.u32(0)
	w.u16(HeaderSize)
	w.u16(ProgramHeaderSize)
	w.u16(phnum)
	w.u16(SectionHeaderSize)
	w.u16(shnum)
	w.u16(shstrndx)
}

func (img *testImage) build() []byte {
	var w byteWriter
	w.buf = make([]byte, HeaderSize)

	phoff := uint64(0)
	if len(img.segments) > 0 {
		phoff = uint64(len(w.buf))
		w.buf = append(w.buf, make([]byte, len(img.segments)*ProgramHeaderSize)...)
	}
	segOffsets := make([]uint64, len(img.segments))
	for i, seg := range img.segments {
		if len(seg.data) == 0 {
			continue
		}
		w.pad(8)
		segOffsets[i] = uint64(len(w.buf))
		w.buf = append(w.buf, seg.data...)
	}

	names := img.nameTable
	nameOffsets := img.nameOffsets
	if names == nil {
		names = []byte{0}
		nameOffsets = make([]uint32, len(img.sections)+1)
		for i, s := range img.sections {
			nameOffsets[i] = uint32(len(names))
			names = append(names, s.name...)
			names = append(names, 0)
		}
		nameOffsets[len(img.sections)] = uint32(len(names))
		names = append(names, ".shstrtab"...)
		names = append(names, 0)
	}

	all := append([]testSection{{}}, img.sections...)
	all = append(all, testSection{typ: SHT_STRTAB, align: 1, data: names})
	secOffsets := make([]uint64, len(all))
	for i, s := range all {
		if len(s.data) == 0 {
			continue
		}
		w.pad(int(max(1, s.align)))
		secOffsets[i] = uint64(len(w.buf))
		w.buf = append(w.buf, s.data...)
	}

	w.pad(8)
	shoff := uint64(len(w.buf))
	for i, s := range all {
		name := uint32(0)
		if i > 0 && i-1 < len(nameOffsets) {
			name = nameOffsets[i-1]
		}
		size := s.size
		if len(s.data) > 0 {
			size = uint64(len(s.data))
		}
		w.u32(name)
		w.u32(uint32(s.typ))
		w.u64(uint64(s.flags))
		w.u64(0)
		w.u64(secOffsets[i])
		w.u64(size)
		w.u32(s.link)
		w.u32(s.info)
		w.u64(s.align)
		w.u64(s.entsize)
	}

	// Program headers go into the space reserved after the file header.
	var ph byteWriter
	for i, seg := range img.segments {
		ph.u32(uint32(seg.typ))
		ph.u32(uint32(seg.flags))
		ph.u64(segOffsets[i])
		ph.u64(seg.vaddr)
		ph.u64(seg.vaddr)
		ph.u64(uint64(len(seg.data)))
		ph.u64(uint64(len(seg.data)))
		ph.u64(8)
	}
	copy(w.buf[phoff:], ph.buf)

	var hdr byteWriter
	writeTestHeader(&hdr, phoff, uint16(len(img.segments)), shoff, uint16(len(all)), uint16(len(all)-1))
	copy(w.buf, hdr.buf)

	return w.buf
}

// Patch helpers for building malformed or escaped images.

func put16(b []byte, off uint64, v uint16) { binary.LittleEndian.PutUint16(b[off:], v) }
func put32(b []byte, off uint64, v uint32) { binary.LittleEndian.PutUint32(b[off:], v) }
func put64(b []byte, off uint64, v uint64) { binary.LittleEndian.PutUint64(b[off:], v) }

func sectionHeaderAt(b []byte, i int) uint64 {
	return binary.LittleEndian.Uint64(b[offShoff:]) + uint64(i)*SectionHeaderSize
}

func programHeaderAt(b []byte, i int) uint64 {
	return binary.LittleEndian.Uint64(b[offPhoff:]) + uint64(i)*ProgramHeaderSize
}

func symbolBytes(syms ...Symbol) []byte {
	var w byteWriter
	for _, s := range syms {
		w.u32(s.NameOffset)
		w.u8(s.Info)
		w.u8(s.Other)
		w.u16(s.SectionIndex)
		w.u64(s.Value)
		w.u64(s.Size)
	}
	return w.buf
}

func relaBytes(entries ...Rela) []byte {
	var w byteWriter
	for _, r := range entries {
		w.u64(r.Offset)
		w.u64(r.Info)
		w.u64(uint64(r.Addend))
	}
	return w.buf
}

func relBytes(entries ...Rel) []byte {
	var w byteWriter
	for _, r := range entries {
		w.u64(r.Offset)
		w.u64(r.Info)
	}
	return w.buf
}

func dynamicBytes(entries ...DynamicEntry) []byte {
	var w byteWriter
	for _, d := range entries {
		w.u64(uint64(d.Tag))
		w.u64(d.Value)
	}
	return w.buf
}
