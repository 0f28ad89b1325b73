// SPDX-License-Identifier: MIT
// Package flagio reads and writes boolean vectors in a compact text format
// framed by two caller-chosen magic numbers:
//
//	<magic1> <N>
//	<b0> <b1> ... <b(ceil(N/8)-1)>
//	<magic2>
//
// Every b is a decimal byte; bit j of byte i holds element 8*i+j.
package flagio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrMagicNumber is returned when a framing number does not match.
	ErrMagicNumber = errors.New("flagio: magic number mismatch")

	// ErrFormat is returned for truncated or malformed input.
	ErrFormat = errors.New("flagio: malformed flag stream")

	// ErrLength is returned by ReadN when the header announces another length.
	ErrLength = errors.New("flagio: unexpected vector length")
)

// preallocBytes caps the buffer reserved from an untrusted header.
const preallocBytes = 1 << 12

// Pack packs v into ceil(len(v)/8) bytes.
func Pack(v []bool) []byte {
	out := make([]byte, (len(v)+7)/8)
	for i, b := range v {
		if b {
			out[i/8] |= 1 << (i % 8)
		}
	}

	return out
}

// Unpack expands the first n bits of packed.
func Unpack(packed []byte, n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = packed[i/8]&(1<<(i%8)) != 0
	}

	return out
}

// Write encodes v framed by magic1 and magic2.
func Write(w io.Writer, magic1 uint32, v []bool, magic2 uint32) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d %d\n", magic1, len(v)); err != nil {
		return err
	}
	for _, b := range Pack(v) {
		if _, err := fmt.Fprintf(bw, "%d ", b); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(bw, "\n%d\n", magic2); err != nil {
		return err
	}

	return bw.Flush()
}

// Read decodes a vector written by Write, validating both magic numbers.
// Memory grows with the bytes actually present, not with the announced length.
func Read(r io.Reader, magic1, magic2 uint32) ([]bool, error) {
	return read(r, magic1, magic2, -1)
}

// ReadN is Read for a vector whose length must be want. A different header
// length fails with ErrLength before any payload is consumed.
func ReadN(r io.Reader, magic1, magic2 uint32, want int) ([]bool, error) {
	if want < 0 {
		return nil, fmt.Errorf("want %d: %w", want, ErrLength)
	}

	return read(r, magic1, magic2, want)
}

func read(r io.Reader, magic1, magic2 uint32, want int) ([]bool, error) {
	br := bufio.NewReader(r)
	var m1 uint32
	var n int
	if _, err := fmt.Fscan(br, &m1, &n); err != nil {
		return nil, fmt.Errorf("header: %w", ErrFormat)
	}
	if m1 != magic1 {
		return nil, fmt.Errorf("begin %d != %d: %w", m1, magic1, ErrMagicNumber)
	}
	if n < 0 {
		return nil, fmt.Errorf("length %d: %w", n, ErrFormat)
	}
	if want >= 0 && n != want {
		return nil, fmt.Errorf("length %d, want %d: %w", n, want, ErrLength)
	}
	nbytes := n / 8
	if n%8 != 0 {
		nbytes++
	}
	packed := make([]byte, 0, min(nbytes, preallocBytes))
	for i := 0; i < nbytes; i++ {
		var b uint
		if _, err := fmt.Fscan(br, &b); err != nil || b > 255 {
			return nil, fmt.Errorf("byte %d: %w", i, ErrFormat)
		}
		packed = append(packed, byte(b))
	}
	var m2 uint32
	if _, err := fmt.Fscan(br, &m2); err != nil {
		return nil, fmt.Errorf("trailer: %w", ErrFormat)
	}
	if m2 != magic2 {
		return nil, fmt.Errorf("end %d != %d: %w", m2, magic2, ErrMagicNumber)
	}

	return Unpack(packed, n), nil
}
