// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "io"

// ReadVarInt reads a variable length integer ("compact size") from r and
// returns it as a uint64. Values below 0xfd are stored inline in the
// prefix byte; 0xfd, 0xfe and 0xff prefix a following uint16, uint32 and
// uint64 respectively.
func ReadVarInt(r io.Reader) (uint64, error) {
	discriminant, err := binarySerializer.Uint8(r)
	if err != nil {
		return 0, err
	}

	switch discriminant {
	case 0xff:
		rv, err := binarySerializer.Uint64(r)
		if err != nil {
			return 0, err
		}
		if rv < 0x100000000 {
			return 0, messageError("ReadVarInt", "non-canonical varint")
		}
		return rv, nil

	case 0xfe:
		rv, err := binarySerializer.Uint32(r)
		if err != nil {
			return 0, err
		}
		if uint64(rv) < 0x10000 {
			return 0, messageError("ReadVarInt", "non-canonical varint")
		}
		return uint64(rv), nil

	case 0xfd:
		rv, err := binarySerializer.Uint16(r)
		if err != nil {
			return 0, err
		}
		if uint64(rv) < 0xfd {
			return 0, messageError("ReadVarInt", "non-canonical varint")
		}
		return uint64(rv), nil

	default:
		return uint64(discriminant), nil
	}
}

// WriteVarInt writes val to w using the minimal compact-size encoding.
func WriteVarInt(w io.Writer, val uint64) error {
	if val < 0xfd {
		return binarySerializer.PutUint8(w, uint8(val))
	}

	if val <= 0xffff {
		if err := binarySerializer.PutUint8(w, 0xfd); err != nil {
			return err
		}
		return binarySerializer.PutUint16(w, uint16(val))
	}

	if val <= 0xffffffff {
		if err := binarySerializer.PutUint8(w, 0xfe); err != nil {
			return err
		}
		return binarySerializer.PutUint32(w, uint32(val))
	}

	if err := binarySerializer.PutUint8(w, 0xff); err != nil {
		return err
	}
	return binarySerializer.PutUint64(w, val)
}

// VarIntSerializeSize returns the number of bytes it would take to encode
// val as a compact-size integer.
func VarIntSerializeSize(val uint64) int {
	if val < 0xfd {
		return 1
	}
	if val <= 0xffff {
		return 3
	}
	if val <= 0xffffffff {
		return 5
	}
	return 9
}

// ReadVarBytes reads a compact-size length prefix followed by that many
// bytes, rejecting lengths beyond maxAllowed. fieldName is used only to
// build a descriptive error.
func ReadVarBytes(r io.Reader, maxAllowed uint64, fieldName string) ([]byte, error) {
	count, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if count > maxAllowed {
		return nil, messageError("ReadVarBytes", "var bytes too long for "+fieldName)
	}
	return readFixedBytes(r, int(count))
}

// WriteVarBytes writes a compact-size length prefix followed by data.
func WriteVarBytes(w io.Writer, data []byte) error {
	if err := WriteVarInt(w, uint64(len(data))); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}
