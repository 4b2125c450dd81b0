// SPDX-License-Identifier: MIT
//
// Copyright (c) 2024 Adrian "asie" Siekierka

package elf

import (
	"errors"
	"fmt"
)

var (
	ErrMagicMismatch = errors.New("invalid magic")
	ErrTruncated     = errors.New("truncated buffer")
	ErrOutOfBounds   = errors.New("offset out of bounds")
	ErrMalformed     = errors.New("malformed file")
	ErrLayout        = errors.New("cannot lay out file")
)

// FormatError reports which structure of the file could not be decoded.
// errors.Is matches it against the Err* kinds above.
type FormatError struct {
	Structure string
	Index     int // -1 for singletons such as the file header
	Offset    uint64
	Size      uint64
	Err       error
}

func (e *FormatError) Error() string {
	where := e.Structure
	if e.Index >= 0 {
		where = fmt.Sprintf("%s %d", e.Structure, e.Index)
	}
	if e.Size > 0 {
		return fmt.Sprintf("elf: %s: %v (offset %#x, size %#x)", where, e.Err, e.Offset, e.Size)
	}
	return fmt.Sprintf("elf: %s: %v (offset %#x)", where, e.Err, e.Offset)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
