// SPDX-License-Identifier: MIT
//
// Copyright (c) 2024 Adrian "asie" Siekierka

package elf

import (
	"io"
)

// SectionHeader's field order and widths match Elf64_Shdr, so it is read and
// written as-is.

func readSectionHeader(c *parseContext) (SectionHeader, error) {
	var sh SectionHeader
	err := c.read(&sh)
	return sh, err
}

func writeSectionHeader(w io.Writer, sh *SectionHeader) error {
	return write(w, sh)
}

// hasFileData reports whether the header points at bytes in the file.
func (sh *SectionHeader) hasFileData() bool {
	return sh.Type.HasDataInFile() && sh.Offset != 0 && sh.Size != 0
}

// readSectionContent slices the section's bytes out of the whole file and
// decodes them according to the header's type.
func readSectionContent(c parseContext, sh *SectionHeader) (SectionContent, error) {
	if !sh.Type.HasDataInFile() {
		return &RawData{}, nil
	}

	var data []byte
	if sh.hasFileData() {
		var err error
		if data, err = c.slice(sh.Offset, sh.Size); err != nil {
			return nil, err
		}
	}

	switch sh.Type {
	case SHT_SYMTAB, SHT_DYNSYM:
		return readSymbolTable(data), nil
	case SHT_STRTAB:
		return readStringTable(data), nil
	case SHT_REL:
		return readRelTable(data), nil
	case SHT_RELA:
		return readRelaTable(data), nil
	case SHT_DYNAMIC:
		return readDynamicTable(data), nil
	default:
		return &RawData{Data: data}, nil
	}
}
