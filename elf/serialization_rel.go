// SPDX-License-Identifier: MIT
//
// Copyright (c) 2024 Adrian "asie" Siekierka

package elf

import (
	"bytes"
	"io"
)

// Rel and Rela mirror Elf64_Rel and Elf64_Rela. The info word keeps the
// symbol index in its high 32 bits and the relocation kind in its low 32 bits.

func readRelTable(data []byte) *RelTable {
	entries, rest := readEntries[Rel](data)
	return &RelTable{Entries: entries, Trailing: rest}
}

func readRelaTable(data []byte) *RelaTable {
	entries, rest := readEntries[Rela](data)
	return &RelaTable{Entries: entries, Trailing: rest}
}

func writeRel(w io.Writer, rel *Rel) error {
	return write(w, rel)
}

func writeRela(w io.Writer, rela *Rela) error {
	return write(w, rela)
}

func (t *RelTable) Bytes() []byte {
	var buf bytes.Buffer
	buf.Grow(len(t.Entries)*RelSize + len(t.Trailing))
	for i := range t.Entries {
		_ = writeRel(&buf, &t.Entries[i])
	}
	buf.Write(t.Trailing)
	return buf.Bytes()
}

func (t *RelaTable) Bytes() []byte {
	var buf bytes.Buffer
	buf.Grow(len(t.Entries)*RelaSize + len(t.Trailing))
	for i := range t.Entries {
		_ = writeRela(&buf, &t.Entries[i])
	}
	buf.Write(t.Trailing)
	return buf.Bytes()
}
