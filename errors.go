package sinter

import "errors"

// ErrInteriorNul is returned when constructing an IStr from a
// nul-terminated source whose bytes contain a nul before the final byte,
// which would make the nul-terminated view ambiguous.
var ErrInteriorNul = errors.New("sinter: interior nul byte in nul-terminated source")

// ErrTooLong is returned when a byte sequence exceeds the maximum length
// the arena's record format can encode.
var ErrTooLong = errors.New("sinter: byte length exceeds uint32 range")
