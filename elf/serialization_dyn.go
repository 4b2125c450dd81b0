// SPDX-License-Identifier: MIT
//
// Copyright (c) 2024 Adrian "asie" Siekierka

package elf

import (
	"bytes"
	"io"
)

func readDynamicTable(data []byte) *DynamicTable {
	entries, rest := readEntries[DynamicEntry](data)
	return &DynamicTable{Entries: entries, Trailing: rest}
}

func writeDynamicEntry(w io.Writer, d *DynamicEntry) error {
	return write(w, d)
}

func (t *DynamicTable) Bytes() []byte {
	var buf bytes.Buffer
	buf.Grow(len(t.Entries)*DynamicEntrySize + len(t.Trailing))
	for i := range t.Entries {
		_ = writeDynamicEntry(&buf, &t.Entries[i])
	}
	buf.Write(t.Trailing)
	return buf.Bytes()
}

// Lookup returns the values of every entry with the given tag, in table order.
func (t *DynamicTable) Lookup(tag DynamicTag) []uint64 {
	var values []uint64
	for _, d := range t.Entries {
		if d.Tag == tag {
			values = append(values, d.Value)
		}
	}
	return values
}
