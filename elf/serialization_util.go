// SPDX-License-Identifier: MIT
//
// Copyright (c) 2024 Adrian "asie" Siekierka

package elf

import (
	"bytes"
	"encoding/binary"
	"io"
)

// parseContext carries two views of the same buffer: the whole file, which
// every absolute offset is resolved against, and the remaining bytes of the
// structure currently being read sequentially. Neither view is copied.
type parseContext struct {
	whole     []byte
	remaining []byte
}

func newParseContext(data []byte) parseContext {
	return parseContext{whole: data, remaining: data}
}

// position is the absolute offset of the remaining view.
func (c parseContext) position() uint64 {
	return uint64(len(c.whole) - len(c.remaining))
}

// at returns a context reading sequentially from absolute offset off.
func (c parseContext) at(off uint64) (parseContext, error) {
	if off > uint64(len(c.whole)) {
		return c, ErrOutOfBounds
	}
	return parseContext{whole: c.whole, remaining: c.whole[off:]}, nil
}

// slice returns whole[off:off+size] after checking it lies inside the buffer.
func (c parseContext) slice(off uint64, size uint64) ([]byte, error) {
	end := off + size
	if end < off || end > uint64(len(c.whole)) {
		return nil, ErrOutOfBounds
	}
	return c.whole[off:end:end], nil
}

// read decodes one fixed-size little-endian record and advances.
func (c *parseContext) read(v any) error {
	n := binary.Size(v)
	if n < 0 || n > len(c.remaining) {
		return ErrTruncated
	}
	if err := binary.Read(bytes.NewReader(c.remaining[:n]), binary.LittleEndian, v); err != nil {
		return err
	}
	c.remaining = c.remaining[n:]
	return nil
}

// write encodes one fixed-size record little-endian.
func write(w io.Writer, v any) error {
	return binary.Write(w, binary.LittleEndian, v)
}

// readEntries decodes data as consecutive fixed-size records of type T.
// Bytes after the last whole record are returned separately.
func readEntries[T any](data []byte) ([]T, []byte) {
	var zero T
	size := binary.Size(&zero)
	if len(data) < size {
		return nil, trailing(data)
	}
	c := newParseContext(data)
	entries := make([]T, 0, len(data)/size)
	for len(c.remaining) >= size {
		var entry T
		if err := c.read(&entry); err != nil {
			break
		}
		entries = append(entries, entry)
	}
	return entries, trailing(c.remaining)
}

func trailing(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return b
}
