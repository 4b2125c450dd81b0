// SPDX-License-Identifier: MIT
//
// Copyright (c) 2023, 2024 Adrian "asie" Siekierka

// Package layout places aligned extents (headers, tables, section and segment
// payloads) inside a span of file offsets.
package layout

import (
	"errors"
	"slices"
)

var ErrNoSpace = errors.New("layout: no gap large enough")

type Extent interface {
	Offset() uint64
	SetOffset(uint64)
	Size() uint64
	Alignment() uint64
}

// Region is a span [offset, offset+size) holding non-overlapping extents,
// kept sorted by offset.
type Region[T Extent] struct {
	offset     uint64
	size       uint64
	entries    []T
	descending bool
}

// NewRegion creates an empty region. A descending region fills gaps from the
// top instead of the bottom.
func NewRegion[T Extent](offset uint64, size uint64, descending bool) *Region[T] {
	return &Region[T]{
		offset:     offset,
		size:       size,
		entries:    make([]T, 0),
		descending: descending,
	}
}

func (r *Region[T]) Offset() uint64 {
	return r.offset
}

func (r *Region[T]) Size() uint64 {
	return r.size
}

func (r *Region[T]) Empty() bool {
	return len(r.entries) == 0
}

func (r *Region[T]) Entries() []T {
	return r.entries
}

// End is one past the highest byte in use, or the region start when empty.
func (r *Region[T]) End() uint64 {
	end := r.offset
	for _, e := range r.entries {
		end = max(end, e.Offset()+e.Size())
	}
	return end
}

func alignUp(v uint64, align uint64) uint64 {
	if align > 1 {
		v += align - 1
		v -= v % align
	}
	return v
}

func alignDown(v uint64, align uint64) uint64 {
	if align > 1 {
		v -= v % align
	}
	return v
}

// fit returns where an extent of the given size goes inside [start, end).
func (r *Region[T]) fit(start uint64, end uint64, size uint64, align uint64) (uint64, bool) {
	if end < start || end-start < size {
		return 0, false
	}
	if r.descending {
		offset := alignDown(end-size, align)
		return offset, offset >= start
	}
	offset := alignUp(start, align)
	return offset, offset >= start && offset+size <= end
}

// gap returns the free span before entries[i], or after the last entry when
// i == len(entries), clipped to [lo, hi).
func (r *Region[T]) gap(i int, lo uint64, hi uint64) (uint64, uint64) {
	start := r.offset
	if i > 0 {
		prev := r.entries[i-1]
		start = prev.Offset() + prev.Size()
	}
	end := r.offset + r.size
	if i < len(r.entries) {
		end = r.entries[i].Offset()
	}
	return max(start, lo), min(end, hi)
}

func (r *Region[T]) place(entry T, lo uint64, hi uint64) error {
	lo = max(lo, r.offset)
	hi = min(hi, r.offset+r.size)

	try := func(i int) bool {
		start, end := r.gap(i, lo, hi)
		offset, ok := r.fit(start, end, entry.Size(), entry.Alignment())
		if ok {
			entry.SetOffset(offset)
			r.entries = slices.Insert(r.entries, i, entry)
		}
		return ok
	}

	if r.descending {
		for i := len(r.entries); i >= 0; i-- {
			if try(i) {
				return nil
			}
		}
	} else {
		for i := 0; i <= len(r.entries); i++ {
			if try(i) {
				return nil
			}
		}
	}
	return ErrNoSpace
}

// Place puts entry in the first gap that can hold it at its alignment.
func (r *Region[T]) Place(entry T) error {
	return r.place(entry, r.offset, r.offset+r.size)
}

// PlaceAt puts entry exactly at offset, which must be free and aligned.
func (r *Region[T]) PlaceAt(entry T, offset uint64) error {
	if offset+entry.Size() < offset {
		return ErrNoSpace
	}
	return r.place(entry, offset, offset+entry.Size())
}
