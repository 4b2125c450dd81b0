// SPDX-License-Identifier: MIT
//
// Copyright (c) 2024 Adrian "asie" Siekierka

package elf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolInfo(t *testing.T) {
	info := SymbolInfo(STB_GLOBAL, STT_FUNC)
	assert.Equal(t, uint8(0x12), info)

	sym := Symbol{Info: info}
	assert.Equal(t, STT_FUNC, sym.Type())
	assert.Equal(t, STB_GLOBAL, sym.Binding())
}

func TestSymbolTableDecode(t *testing.T) {
	data := symbolBytes(
		Symbol{},
		Symbol{NameOffset: 1, Info: SymbolInfo(STB_LOCAL, STT_OBJECT), SectionIndex: 2, Value: 0x10, Size: 8},
		Symbol{NameOffset: 9, Info: SymbolInfo(STB_GLOBAL, STT_FUNC), Other: 2, SectionIndex: 1, Value: 0x401000, Size: 0x20},
	)

	symtab := readSymbolTable(data)
	require.Len(t, symtab.Symbols, 3)
	assert.Nil(t, symtab.Trailing)

	sym := symtab.Symbols[2]
	assert.Equal(t, uint32(9), sym.NameOffset)
	assert.Equal(t, STT_FUNC, sym.Type())
	assert.Equal(t, STB_GLOBAL, sym.Binding())
	assert.Equal(t, uint8(2), sym.Other)
	assert.Equal(t, uint16(1), sym.SectionIndex)
	assert.Equal(t, uint64(0x401000), sym.Value)
	assert.Equal(t, uint64(0x20), sym.Size)

	assert.Equal(t, data, symtab.Bytes())
}

func TestSymbolUnknownTags(t *testing.T) {
	data := symbolBytes(Symbol{NameOffset: 3, Info: 0xEE, Other: 0xFF, SectionIndex: 0xFFF1})

	symtab := readSymbolTable(data)
	require.Len(t, symtab.Symbols, 1)
	sym := symtab.Symbols[0]

	assert.Equal(t, SymbolType(0xE), sym.Type())
	assert.Equal(t, SymbolBinding(0xE), sym.Binding())
	assert.False(t, sym.Binding().Known())
	assert.Equal(t, "UNSPECIFIED(0xe)", sym.Binding().String())
	assert.Equal(t, data, symtab.Bytes())
}

func TestSymbolTableTrailing(t *testing.T) {
	data := append(symbolBytes(Symbol{Value: 1}), 1, 2, 3, 4, 5)

	symtab := readSymbolTable(data)
	assert.Len(t, symtab.Symbols, 1)
	assert.Equal(t, []byte{1, 2, 3, 4, 5}, symtab.Trailing)
	assert.Equal(t, data, symtab.Bytes())

	short := readSymbolTable([]byte{1, 2, 3})
	assert.Empty(t, short.Symbols)
	assert.Equal(t, []byte{1, 2, 3}, short.Trailing)

	assert.Empty(t, readSymbolTable(nil).Symbols)
}
