// SPDX-License-Identifier: MIT
//
// Copyright (c) 2024 Adrian "asie" Siekierka

package elf

import (
	"io"
)

// ProgramHeader mirrors Elf64_Phdr; note that Flags precedes Offset, unlike
// the 32-bit layout.

func readProgramHeader(c *parseContext) (ProgramHeader, error) {
	var ph ProgramHeader
	err := c.read(&ph)
	return ph, err
}

func writeProgramHeader(w io.Writer, ph *ProgramHeader) error {
	return write(w, ph)
}

// readSegmentData returns the file bytes [Offset, Offset+FileSize).
func readSegmentData(c parseContext, ph *ProgramHeader) ([]byte, error) {
	if ph.FileSize == 0 {
		return nil, nil
	}
	return c.slice(ph.Offset, ph.FileSize)
}
