// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wire implements the consensus-critical binary codec for
// masternode list diffs, quorum rotation bundles and the types they are
// built from: little-endian multi-byte integers, compact-size integers,
// fixed bitsets and fixed-width byte arrays.
package wire

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/dashpay/dashmnle/hashtypes"
)

// messageError creates a formatted error for a message reading or writing
// failure, naming the function that failed for easier diagnosis.
func messageError(function, description string) error {
	return fmt.Errorf("%s: %s", function, description)
}

// binaryFreeList houses a free list of byte slices used to reduce garbage
// collection pressure when reading and writing the numeric primitives of
// the binary wire format. Lifted from the teacher's wire package idiom.
type binaryFreeList chan []byte

// binaryFreeListMaxItems is the maximum number of byte slices retained by a
// binaryFreeList.
const binaryFreeListMaxItems = 1024

// Borrow returns a byte slice of length 8 from the free list, allocating a
// new one if the list is empty.
func (l binaryFreeList) Borrow() []byte {
	var buf []byte
	select {
	case buf = <-l:
	default:
		buf = make([]byte, 8)
	}
	return buf[:8]
}

// Return releases a byte slice back to the free list, discarding it if the
// list is full.
func (l binaryFreeList) Return(buf []byte) {
	select {
	case l <- buf:
	default:
	}
}

// Uint8 reads a single byte from r using a buffer from the free list.
func (l binaryFreeList) Uint8(r io.Reader) (uint8, error) {
	buf := l.Borrow()[:1]
	if _, err := io.ReadFull(r, buf); err != nil {
		l.Return(buf)
		return 0, err
	}
	rv := buf[0]
	l.Return(buf)
	return rv, nil
}

// Uint16 reads two bytes from r as a little-endian uint16.
func (l binaryFreeList) Uint16(r io.Reader) (uint16, error) {
	buf := l.Borrow()[:2]
	if _, err := io.ReadFull(r, buf); err != nil {
		l.Return(buf)
		return 0, err
	}
	rv := binary.LittleEndian.Uint16(buf)
	l.Return(buf)
	return rv, nil
}

// Uint32 reads four bytes from r as a little-endian uint32.
func (l binaryFreeList) Uint32(r io.Reader) (uint32, error) {
	buf := l.Borrow()[:4]
	if _, err := io.ReadFull(r, buf); err != nil {
		l.Return(buf)
		return 0, err
	}
	rv := binary.LittleEndian.Uint32(buf)
	l.Return(buf)
	return rv, nil
}

// Uint64 reads eight bytes from r as a little-endian uint64.
func (l binaryFreeList) Uint64(r io.Reader) (uint64, error) {
	buf := l.Borrow()[:8]
	if _, err := io.ReadFull(r, buf); err != nil {
		l.Return(buf)
		return 0, err
	}
	rv := binary.LittleEndian.Uint64(buf)
	l.Return(buf)
	return rv, nil
}

// PutUint8 writes a single byte to w.
func (l binaryFreeList) PutUint8(w io.Writer, val uint8) error {
	buf := l.Borrow()[:1]
	buf[0] = val
	_, err := w.Write(buf)
	l.Return(buf)
	return err
}

// PutUint16 writes val to w as two little-endian bytes.
func (l binaryFreeList) PutUint16(w io.Writer, val uint16) error {
	buf := l.Borrow()[:2]
	binary.LittleEndian.PutUint16(buf, val)
	_, err := w.Write(buf)
	l.Return(buf)
	return err
}

// PutUint32 writes val to w as four little-endian bytes.
func (l binaryFreeList) PutUint32(w io.Writer, val uint32) error {
	buf := l.Borrow()[:4]
	binary.LittleEndian.PutUint32(buf, val)
	_, err := w.Write(buf)
	l.Return(buf)
	return err
}

// PutUint64 writes val to w as eight little-endian bytes.
func (l binaryFreeList) PutUint64(w io.Writer, val uint64) error {
	buf := l.Borrow()[:8]
	binary.LittleEndian.PutUint64(buf, val)
	_, err := w.Write(buf)
	l.Return(buf)
	return err
}

var binarySerializer binaryFreeList = make(chan []byte, binaryFreeListMaxItems)

// readElement reads the next field from r into element using its concrete
// type to decide how many bytes to consume. Every wire type in this module
// funnels its decoding through this switch, matching the teacher's
// readElement dispatch pattern.
func readElement(r io.Reader, element interface{}) error {
	switch e := element.(type) {
	case *bool:
		b, err := binarySerializer.Uint8(r)
		if err != nil {
			return err
		}
		*e = b != 0
		return nil
	case *uint8:
		v, err := binarySerializer.Uint8(r)
		if err != nil {
			return err
		}
		*e = v
		return nil
	case *uint16:
		v, err := binarySerializer.Uint16(r)
		if err != nil {
			return err
		}
		*e = v
		return nil
	case *int16:
		v, err := binarySerializer.Uint16(r)
		if err != nil {
			return err
		}
		*e = int16(v)
		return nil
	case *uint32:
		v, err := binarySerializer.Uint32(r)
		if err != nil {
			return err
		}
		*e = v
		return nil
	case *int32:
		v, err := binarySerializer.Uint32(r)
		if err != nil {
			return err
		}
		*e = int32(v)
		return nil
	case *uint64:
		v, err := binarySerializer.Uint64(r)
		if err != nil {
			return err
		}
		*e = v
		return nil
	case *hashtypes.Hash:
		_, err := io.ReadFull(r, e[:])
		return err
	}
	return fmt.Errorf("readElement: unhandled type %T", element)
}

// writeElement writes element to w using its concrete type to decide how
// many bytes to emit.
func writeElement(w io.Writer, element interface{}) error {
	switch e := element.(type) {
	case bool:
		var v uint8
		if e {
			v = 1
		}
		return binarySerializer.PutUint8(w, v)
	case uint8:
		return binarySerializer.PutUint8(w, e)
	case uint16:
		return binarySerializer.PutUint16(w, e)
	case int16:
		return binarySerializer.PutUint16(w, uint16(e))
	case uint32:
		return binarySerializer.PutUint32(w, e)
	case int32:
		return binarySerializer.PutUint32(w, uint32(e))
	case uint64:
		return binarySerializer.PutUint64(w, e)
	case hashtypes.Hash:
		_, err := w.Write(e[:])
		return err
	case *hashtypes.Hash:
		_, err := w.Write(e[:])
		return err
	}
	return fmt.Errorf("writeElement: unhandled type %T", element)
}

// ReadElement is the exported form of readElement, used by wire types
// defined outside this package (quorum entries, masternode entries) that
// need the same per-type decode dispatch.
func ReadElement(r io.Reader, element interface{}) error {
	return readElement(r, element)
}

// WriteElement is the exported form of writeElement.
func WriteElement(w io.Writer, element interface{}) error {
	return writeElement(w, element)
}

// readFixedBytes reads exactly n bytes from r and returns them.
func readFixedBytes(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadFixedBytes is the exported form of readFixedBytes, used by wire
// types defined outside this package for raw fixed-width fields such as
// voting key IDs and platform node IDs.
func ReadFixedBytes(r io.Reader, n int) ([]byte, error) {
	return readFixedBytes(r, n)
}
