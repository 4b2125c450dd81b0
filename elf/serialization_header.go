// SPDX-License-Identifier: MIT
//
// Copyright (c) 2024 Adrian "asie" Siekierka

package elf

import (
	"bytes"
	"io"
)

// On-disk sizes of the fixed records.
const (
	IdentSize         = 16
	HeaderSize        = 64
	SectionHeaderSize = 64
	ProgramHeaderSize = 56
	SymbolSize        = 24
	RelSize           = 16
	RelaSize          = 24
	DynamicEntrySize  = 16
)

var elfMagic = [4]byte{0x7F, 0x45, 0x4C, 0x46}

type elfIdent64 struct {
	Magic      [4]byte
	Class      uint8
	Data       uint8
	Version    uint8
	OSABI      uint8
	ABIVersion uint8
	Pad        uint8
	Reserved   [5]byte
	NIdent     uint8
}

type elfHeader64 struct {
	Ident            elfIdent64
	Type             uint16
	Machine          uint16
	Version          uint32
	Entry            uint64
	ProgHdrOff       uint64
	SecHdrOff        uint64
	Flags            uint32
	HeaderSize       uint16
	ProgHdrEntrySize uint16
	ProgHdrCount     uint16
	SecHdrEntrySize  uint16
	SecHdrCount      uint16
	SecHdrStrIndex   uint16
}

func readHeader(c *parseContext) (Header, error) {
	var h Header

	if len(c.remaining) < len(elfMagic) {
		return h, ErrTruncated
	}
	if !bytes.Equal(c.remaining[:len(elfMagic)], elfMagic[:]) {
		return h, ErrMagicMismatch
	}

	var fh elfHeader64
	if err := c.read(&fh); err != nil {
		return h, err
	}

	h.Class = FileClass(fh.Ident.Class)
	h.Endian = FileEndian(fh.Ident.Data)
	h.HeaderVersion = fh.Ident.Version
	h.ABI = FileABI(fh.Ident.OSABI)
	h.ABIVersion = fh.Ident.ABIVersion
	h.Pad = fh.Ident.Pad
	h.Reserved = fh.Ident.Reserved
	h.IdentSize = fh.Ident.NIdent

	h.Type = FileType(fh.Type)
	h.Machine = MachineType(fh.Machine)
	h.Version = FileVersion(fh.Version)
	h.Entry = fh.Entry
	h.ProgHdrOffset = fh.ProgHdrOff
	h.SecHdrOffset = fh.SecHdrOff
	h.Flags = fh.Flags
	h.HeaderSize = fh.HeaderSize
	h.ProgHdrEntrySize = fh.ProgHdrEntrySize
	h.ProgHdrCount = fh.ProgHdrCount
	h.SecHdrEntrySize = fh.SecHdrEntrySize
	h.SecHdrCount = fh.SecHdrCount
	h.SecHdrStrIndex = fh.SecHdrStrIndex

	return h, nil
}

func writeHeader(w io.Writer, h *Header) error {
	var fh elfHeader64

	fh.Ident.Magic = elfMagic
	fh.Ident.Class = uint8(h.Class)
	fh.Ident.Data = uint8(h.Endian)
	fh.Ident.Version = h.HeaderVersion
	fh.Ident.OSABI = uint8(h.ABI)
	fh.Ident.ABIVersion = h.ABIVersion
	fh.Ident.Pad = h.Pad
	fh.Ident.Reserved = h.Reserved
	fh.Ident.NIdent = h.IdentSize

	fh.Type = uint16(h.Type)
	fh.Machine = uint16(h.Machine)
	fh.Version = uint32(h.Version)
	fh.Entry = h.Entry
	fh.ProgHdrOff = h.ProgHdrOffset
	fh.SecHdrOff = h.SecHdrOffset
	fh.Flags = h.Flags
	fh.HeaderSize = h.HeaderSize
	fh.ProgHdrEntrySize = h.ProgHdrEntrySize
	fh.ProgHdrCount = h.ProgHdrCount
	fh.SecHdrEntrySize = h.SecHdrEntrySize
	fh.SecHdrCount = h.SecHdrCount
	fh.SecHdrStrIndex = h.SecHdrStrIndex

	return write(w, &fh)
}
