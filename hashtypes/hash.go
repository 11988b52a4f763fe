// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package hashtypes defines the strongly-typed 32-byte hash newtypes used
// throughout the masternode list and quorum engine, built on top of
// chainhash.Hash, plus the two comparator utilities ("cmp_reversed" and
// "cmp_raw") that every sort site in this module names explicitly.
package hashtypes

import (
	"crypto/sha256"

	"github.com/decred/dcrd/chaincfg/chainhash"
)

// Hash is the 32-byte digest type shared by every hash-valued field in this
// module. It is chainhash.Hash directly: Dash's wire format for a 32-byte
// hash is bit-identical to Decred's, and chainhash.Hash already carries the
// byte-reversed String() convention this module's display paths rely on.
type Hash = chainhash.Hash

// Size is the length in bytes of a Hash.
const Size = chainhash.HashSize

// BlockHash, ProTxHash, QuorumHash, MerkleRoot and CommitmentHash are all
// plain 32-byte hashes; the distinction is which domain they identify. They
// are kept as distinct names (rather than one bare Hash) because a function
// signature naming the wrong one is the kind of bug this module cannot
// afford.
type (
	BlockHash      = Hash
	ProTxHash      = Hash
	QuorumHash     = Hash
	MerkleRoot     = Hash
	CommitmentHash = Hash
	VVecHash       = Hash
)

// Sha256Single returns the single SHA-256 digest of data. Several
// consensus-critical values in this module (commitment hashes, quorum
// modifiers, masternode scores) are deliberately single-hashed rather than
// double-hashed; using chainhash.HashB there would silently double-hash.
func Sha256Single(data []byte) Hash {
	return sha256.Sum256(data)
}

// Sha256Double returns the double SHA-256 digest of data, matching
// chainhash.HashB/HashH. Entry hashes (for both masternode entries and
// quorum entries) are double-hashed over their canonical encoding.
func Sha256Double(data []byte) Hash {
	return chainhash.HashH(data)
}

// Reversed returns a copy of h with its bytes in reverse order. Dash
// displays hashes byte-reversed (matching Bitcoin/Decred convention); the
// masternode list additionally *keys* its maps and *compares* candidates
// using this reversed form, not the raw wire form.
func Reversed(h Hash) Hash {
	var out Hash
	for i := 0; i < Size; i++ {
		out[i] = h[Size-1-i]
	}
	return out
}

// CmpRaw compares two hashes as raw wire-order byte strings. Used for the
// quorum merkle root leaf ordering, which the specification defines over
// raw entry-hash bytes.
func CmpRaw(a, b Hash) int {
	for i := 0; i < Size; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// CmpReversed compares two hashes as though each were first byte-reversed
// and then compared as a big-endian integer (equivalently: compare from the
// last byte down to the first of the original encoding). This is the
// "ordering hash" / "provider tx order" / "score" comparator used for
// masternode-list keying and quorum member selection.
func CmpReversed(a, b Hash) int {
	for i := Size - 1; i >= 0; i-- {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// LessReversed reports whether a sorts before b under CmpReversed. Provided
// because sort.Slice call sites read more naturally with a boolean less
// function than a three-way comparator.
func LessReversed(a, b Hash) bool {
	return CmpReversed(a, b) < 0
}

// LessRaw reports whether a sorts before b under CmpRaw.
func LessRaw(a, b Hash) bool {
	return CmpRaw(a, b) < 0
}
