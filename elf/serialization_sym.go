// SPDX-License-Identifier: MIT
//
// Copyright (c) 2024 Adrian "asie" Siekierka

package elf

import (
	"bytes"
	"io"
)

// Symbol mirrors Elf64_Sym field for field.

func readSymbolTable(data []byte) *SymbolTable {
	symbols, rest := readEntries[Symbol](data)
	return &SymbolTable{Symbols: symbols, Trailing: rest}
}

func writeSymbol(w io.Writer, sym *Symbol) error {
	return write(w, sym)
}

func (t *SymbolTable) Bytes() []byte {
	var buf bytes.Buffer
	buf.Grow(len(t.Symbols)*SymbolSize + len(t.Trailing))
	for i := range t.Symbols {
		// Writes to a bytes.Buffer cannot fail.
		_ = writeSymbol(&buf, &t.Symbols[i])
	}
	buf.Write(t.Trailing)
	return buf.Bytes()
}
