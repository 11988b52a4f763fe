// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"

	"github.com/jrick/bitset"
)

// ReadFixedBitset reads a declared-length LSB-first bitset of n bits,
// consuming exactly ceil(n/8) bytes, and returns it as a []bool of length
// n. maxAllowed bounds n to guard against a hostile or corrupt length
// prefix inflating the read.
func ReadFixedBitset(r io.Reader, n, maxAllowed int) ([]bool, error) {
	if n < 0 || n > maxAllowed {
		return nil, messageError("ReadFixedBitset", "bitset length exceeds cap")
	}
	byteLen := (n + 7) / 8
	raw, err := readFixedBytes(r, byteLen)
	if err != nil {
		return nil, err
	}
	bs := bitset.Bytes(raw)
	out := make([]bool, n)
	for i := 0; i < n; i++ {
		out[i] = bs.Get(i)
	}
	return out, nil
}

// WriteFixedBitset writes bits as an LSB-first bitset occupying
// ceil(len(bits)/8) bytes.
func WriteFixedBitset(w io.Writer, bits []bool) error {
	bs := bitset.NewBytes(len(bits))
	for i, v := range bits {
		if v {
			bs.Set(i)
		}
	}
	_, err := w.Write(bs)
	return err
}
