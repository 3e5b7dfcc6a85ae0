package stencil

import "errors"

var (
	// ErrPrimitiveIndexOutOfRange is returned when a vertex references a
	// primitive past the end of the table.
	ErrPrimitiveIndexOutOfRange = errors.New("stencil: primitive index out of range")

	// ErrEmptyTable is returned when a batch has vertices but no primitives.
	ErrEmptyTable = errors.New("stencil: primitive table is empty")

	// ErrShortBuffer is returned when decoding from a byte slice that is not
	// a whole number of records.
	ErrShortBuffer = errors.New("stencil: buffer length is not a multiple of the record size")
)
