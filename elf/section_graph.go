// SPDX-License-Identifier: MIT
//
// Copyright (c) 2024 Adrian "asie" Siekierka

package elf

import (
	"slices"
)

// sectionGraph maps a section index to the indices of the sections it
// depends on.
type sectionGraph map[int]map[int]bool

func (g sectionGraph) add(parent int, child int) {
	if parent == child {
		return
	}
	children, ok := g[parent]
	if !ok {
		children = make(map[int]bool)
		g[parent] = children
	}
	children[child] = true
}

func (f *File) validSectionIndex(idx uint64) bool {
	return idx != SHN_UNDEF && idx < uint64(len(f.Sections))
}

// relocationSymbols returns the symbol indices referenced by a relocation section.
func relocationSymbols(s *Section) []uint32 {
	var indices []uint32
	switch t := s.Content.(type) {
	case *RelTable:
		for _, r := range t.Entries {
			indices = append(indices, r.SymbolIndex())
		}
	case *RelaTable:
		for _, r := range t.Entries {
			indices = append(indices, r.SymbolIndex())
		}
	}
	return indices
}

func (f *File) sectionGraph() sectionGraph {
	g := make(sectionGraph)

	for i, s := range f.Sections {
		if f.validSectionIndex(uint64(s.Link)) {
			g.add(i, int(s.Link))
		}
		if !s.Type.HasSectionInInfo() && s.Flags&SHF_INFO_LINK == 0 {
			continue
		}
		if !f.validSectionIndex(uint64(s.Info)) {
			continue
		}
		g.add(i, int(s.Info))
		if !s.Type.HasSectionInInfo() {
			continue
		}

		// A relocated section pulls in its relocations and every section
		// their symbols are defined in.
		target := int(s.Info)
		g.add(target, i)

		var symbols *SymbolTable
		if f.validSectionIndex(uint64(s.Link)) {
			symbols, _ = f.Sections[s.Link].Content.(*SymbolTable)
		}
		if symbols == nil {
			continue
		}
		for _, idx := range relocationSymbols(s) {
			if int(idx) >= len(symbols.Symbols) {
				continue
			}
			shndx := symbols.Symbols[idx].SectionIndex
			if shndx < SHN_LORESERVE && f.validSectionIndex(uint64(shndx)) {
				g.add(target, int(shndx))
			}
		}
	}

	return g
}

// RetainedSections returns the indices of sections flagged SHF_GNU_RETAIN.
func (f *File) RetainedSections() []int {
	var indices []int
	for i, s := range f.Sections {
		if s.Flags&SHF_GNU_RETAIN != 0 {
			indices = append(indices, i)
		}
	}
	return indices
}

// Closure returns, in ascending order, the roots and every section they
// transitively depend on through link and info references, relocations and
// relocation symbols. Out of range roots are ignored.
func (f *File) Closure(roots ...int) []int {
	children := f.sectionGraph()

	newlyReached := make(map[int]bool)
	for _, root := range roots {
		if root >= 0 && root < len(f.Sections) {
			newlyReached[root] = true
		}
	}

	// Traverse the tree of parent<->child relations
	reached := make(map[int]bool)
	for len(newlyReached) > 0 {
		next := make(map[int]bool)
		for idx := range newlyReached {
			reached[idx] = true
			for child := range children[idx] {
				if !reached[child] {
					next[child] = true
				}
			}
		}
		newlyReached = next
	}

	indices := make([]int, 0, len(reached))
	for idx := range reached {
		indices = append(indices, idx)
	}
	slices.Sort(indices)
	return indices
}
