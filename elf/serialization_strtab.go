// SPDX-License-Identifier: MIT
//
// Copyright (c) 2024 Adrian "asie" Siekierka

package elf

import (
	"bytes"
	"slices"
)

// StringTable maps the offset of each NUL-terminated string in a string table
// section to the string itself. Only offsets where a string starts are keys;
// offsets into the middle of a string are not resolved.
type StringTable struct {
	Strings map[uint32]string
	// Trailing holds bytes after the last NUL terminator.
	Trailing []byte
}

func (t *StringTable) isSectionContent() {}

func readStringTable(data []byte) *StringTable {
	t := &StringTable{Strings: make(map[uint32]string)}
	pos := 0
	for pos < len(data) {
		end := bytes.IndexByte(data[pos:], 0)
		if end < 0 {
			break
		}
		t.Strings[uint32(pos)] = string(data[pos : pos+end])
		pos += end + 1
	}
	t.Trailing = trailing(data[pos:])
	return t
}

// Lookup returns the string starting at offset off.
func (t *StringTable) Lookup(off uint32) (string, bool) {
	s, ok := t.Strings[off]
	return s, ok
}

// Suffix returns the string at offset off, which may point into the middle of
// a string stored in the table; linkers share ".text" with ".rela.text" this way.
func (t *StringTable) Suffix(off uint32) (string, bool) {
	start, found := uint32(0), false
	for key := range t.Strings {
		if key <= off && (!found || key > start) {
			start, found = key, true
		}
	}
	if !found {
		return "", false
	}
	s := t.Strings[start]
	if rel := off - start; rel <= uint32(len(s)) {
		return s[rel:], true
	}
	return "", false
}

// Offsets returns the keys of the table in ascending order.
func (t *StringTable) Offsets() []uint32 {
	offsets := make([]uint32, 0, len(t.Strings))
	for off := range t.Strings {
		offsets = append(offsets, off)
	}
	slices.Sort(offsets)
	return offsets
}

// Add returns the offset of s, appending it if the table does not hold it yet.
// The new offset is where Bytes will place it.
func (t *StringTable) Add(s string) uint32 {
	if t.Strings == nil {
		t.Strings = make(map[uint32]string)
	}
	// TODO: Support substrings
	end := uint32(0)
	for _, off := range t.Offsets() {
		if t.Strings[off] == s {
			return off
		}
		end += uint32(len(t.Strings[off])) + 1
	}
	t.Strings[end] = s
	return end
}

// Bytes emits every string in offset order, each followed by one NUL.
func (t *StringTable) Bytes() []byte {
	var buf bytes.Buffer
	for _, off := range t.Offsets() {
		buf.WriteString(t.Strings[off])
		buf.WriteByte(0)
	}
	buf.Write(t.Trailing)
	return buf.Bytes()
}
