// SPDX-License-Identifier: MIT
//
// Copyright (c) 2024 Adrian "asie" Siekierka

package elf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newGraphTestFile() *File {
	f := NewFile(ET_REL, EM_X86_64)
	f.AddSection("", SHT_NULL, nil)                                // 0
	f.AddSection(".text", SHT_PROGBITS, &RawData{Data: testCode})  // 1
	f.AddSection(".data", SHT_PROGBITS, &RawData{Data: []byte{0}}) // 2
	f.AddSection(".strtab", SHT_STRTAB, &StringTable{})            // 3
	f.AddSection(".symtab", SHT_SYMTAB, &SymbolTable{Symbols: []Symbol{
		{},
		{SectionIndex: 2},
		{SectionIndex: SHN_ABS},
		{SectionIndex: 99},
	}}) // 4
	f.AddSection(".rela.text", SHT_RELA, &RelaTable{Entries: []Rela{
		{Info: RelocationInfo(1, R_X86_64_PC32)},
		{Info: RelocationInfo(2, R_X86_64_64)},
		{Info: RelocationInfo(3, R_X86_64_64)},
		{Info: RelocationInfo(50, R_X86_64_64)},
	}})                                                                 // 5
	f.AddSection(".comment", SHT_PROGBITS, &RawData{Data: []byte("x")}) // 6
	f.AddSection(".init", SHT_PROGBITS, &RawData{})                     // 7
	f.AddSection(".group", SHT_GROUP, &RawData{})                       // 8

	f.Sections[4].Link = 3
	f.Sections[5].Link = 4
	f.Sections[5].Info = 1
	f.Sections[7].Flags = SHF_GNU_RETAIN
	f.Sections[8].Flags = SHF_INFO_LINK
	f.Sections[8].Info = 6
	return f
}

func TestClosureFollowsRelocations(t *testing.T) {
	f := newGraphTestFile()

	assert.Equal(t, []int{1, 2, 3, 4, 5}, f.Closure(1))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, f.Closure(5))
	assert.Equal(t, []int{3, 4}, f.Closure(4))
	assert.Equal(t, []int{2}, f.Closure(2))
}

func TestClosureInfoLink(t *testing.T) {
	f := newGraphTestFile()

	assert.Equal(t, []int{6, 8}, f.Closure(8))
	assert.Equal(t, []int{6}, f.Closure(6))
}

func TestClosureRoots(t *testing.T) {
	f := newGraphTestFile()

	assert.Empty(t, f.Closure())
	assert.Empty(t, f.Closure(-1, 99))
	assert.Equal(t, []int{0}, f.Closure(0))
	assert.Equal(t, []int{2, 3, 4, 6}, f.Closure(6, 4, 2, 6))
}

func TestRetainedSections(t *testing.T) {
	f := newGraphTestFile()

	assert.Equal(t, []int{7}, f.RetainedSections())
	assert.Equal(t, []int{7}, f.Closure(f.RetainedSections()...))
}
