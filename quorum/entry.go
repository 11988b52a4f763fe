// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package quorum implements the quorum commitment structure (C4): its
// canonical wire encoding, structural validation, and the two derived
// digests (commitment hash and entry hash) every quorum is keyed and
// verified by.
package quorum

import (
	"bytes"
	"io"

	"github.com/dashpay/dashmnle/bls"
	"github.com/dashpay/dashmnle/chaincfg"
	"github.com/dashpay/dashmnle/hashtypes"
	"github.com/dashpay/dashmnle/llmqerr"
	"github.com/dashpay/dashmnle/wire"
)

// maxBitsetLen bounds the bitset length accepted from the wire; no LLMQ
// type carries more than a few hundred members, so a ceiling of more
// than ten times the largest configured quorum size (400) is a generous
// guard against a corrupt or hostile length prefix.
const maxBitsetLen = 4096

// Entry is a single quorum commitment (QuorumEntry, §3/§4.2).
type Entry struct {
	Version                          uint16
	LLMQType                         chaincfg.LLMQType
	QuorumHash                       hashtypes.QuorumHash
	QuorumIndex                      *int16 // present iff Version in {2,4}
	Signers                          []bool
	ValidMembers                     []bool
	QuorumPublicKey                  bls.PublicKey
	QuorumVVecHash                   hashtypes.VVecHash
	ThresholdSig                     bls.Signature
	AllCommitmentAggregatedSignature bls.Signature
}

// hasQuorumIndex reports whether version carries an explicit QuorumIndex
// field, per §3: "optional quorum_index: i16 present iff version ∈
// {2,4}".
func hasQuorumIndex(version uint16) bool {
	return version == 2 || version == 4
}

// BtcDecode decodes r into the receiver using the canonical encoding
// order from §4.2, mirroring MsgCFilter.BtcDecode's per-field decode
// pattern.
func (e *Entry) BtcDecode(r io.Reader) error {
	if err := readElement(r, &e.Version); err != nil {
		return err
	}
	var llmqType uint8
	if err := readElement(r, &llmqType); err != nil {
		return err
	}
	e.LLMQType = chaincfg.LLMQType(llmqType)

	if err := readElement(r, &e.QuorumHash); err != nil {
		return err
	}

	if hasQuorumIndex(e.Version) {
		var idx int16
		if err := readElement(r, &idx); err != nil {
			return err
		}
		e.QuorumIndex = &idx
	} else {
		e.QuorumIndex = nil
	}

	signersLen, err := wire.ReadVarInt(r)
	if err != nil {
		return err
	}
	e.Signers, err = wire.ReadFixedBitset(r, int(signersLen), maxBitsetLen)
	if err != nil {
		return err
	}

	validLen, err := wire.ReadVarInt(r)
	if err != nil {
		return err
	}
	e.ValidMembers, err = wire.ReadFixedBitset(r, int(validLen), maxBitsetLen)
	if err != nil {
		return err
	}

	if _, err := io.ReadFull(r, e.QuorumPublicKey[:]); err != nil {
		return err
	}
	if err := readElement(r, &e.QuorumVVecHash); err != nil {
		return err
	}
	if _, err := io.ReadFull(r, e.ThresholdSig[:]); err != nil {
		return err
	}
	if _, err := io.ReadFull(r, e.AllCommitmentAggregatedSignature[:]); err != nil {
		return err
	}
	return nil
}

// BtcEncode encodes the receiver to w using the canonical encoding order
// from §4.2.
func (e *Entry) BtcEncode(w io.Writer) error {
	if err := writeElement(w, e.Version); err != nil {
		return err
	}
	if err := writeElement(w, uint8(e.LLMQType)); err != nil {
		return err
	}
	if err := writeElement(w, e.QuorumHash); err != nil {
		return err
	}
	if hasQuorumIndex(e.Version) {
		var idx int16
		if e.QuorumIndex != nil {
			idx = *e.QuorumIndex
		}
		if err := writeElement(w, idx); err != nil {
			return err
		}
	}

	if err := wire.WriteVarInt(w, uint64(len(e.Signers))); err != nil {
		return err
	}
	if err := wire.WriteFixedBitset(w, e.Signers); err != nil {
		return err
	}

	if err := wire.WriteVarInt(w, uint64(len(e.ValidMembers))); err != nil {
		return err
	}
	if err := wire.WriteFixedBitset(w, e.ValidMembers); err != nil {
		return err
	}

	if _, err := w.Write(e.QuorumPublicKey[:]); err != nil {
		return err
	}
	if err := writeElement(w, e.QuorumVVecHash); err != nil {
		return err
	}
	if _, err := w.Write(e.ThresholdSig[:]); err != nil {
		return err
	}
	if _, err := w.Write(e.AllCommitmentAggregatedSignature[:]); err != nil {
		return err
	}
	return nil
}

// Bytes returns the canonical encoding of e.
func (e *Entry) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := e.BtcEncode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Size returns the length in bytes of e's canonical encoding.
func (e *Entry) Size() int {
	n := 2 + 1 + hashtypes.Size // version, llmq_type, quorum_hash
	if hasQuorumIndex(e.Version) {
		n += 2
	}
	n += wire.VarIntSerializeSize(uint64(len(e.Signers))) + (len(e.Signers)+7)/8
	n += wire.VarIntSerializeSize(uint64(len(e.ValidMembers))) + (len(e.ValidMembers)+7)/8
	n += bls.PublicKeySize + hashtypes.Size + bls.SignatureSize + bls.SignatureSize
	return n
}

// EntryHash returns the double-SHA256 of e's canonical encoding, used as
// a leaf of the masternode list's quorum (LLMQ) merkle root (§4.2).
func (e *Entry) EntryHash() (hashtypes.Hash, error) {
	b, err := e.Bytes()
	if err != nil {
		return hashtypes.Hash{}, err
	}
	return hashtypes.Sha256Double(b), nil
}

// CommitmentHash returns the single-SHA256 digest covering the parts of
// the commitment that are stable across blocks — deliberately excluding
// Signers, since the set of masternodes that actually signed a given
// commitment may differ from block to block even though the commitment
// itself does not (§4.2).
func (e *Entry) CommitmentHash() (hashtypes.CommitmentHash, error) {
	var buf bytes.Buffer
	if err := writeElement(&buf, uint8(e.LLMQType)); err != nil {
		return hashtypes.Hash{}, err
	}
	if err := writeElement(&buf, e.QuorumHash); err != nil {
		return hashtypes.Hash{}, err
	}
	if err := wire.WriteVarInt(&buf, uint64(len(e.ValidMembers))); err != nil {
		return hashtypes.Hash{}, err
	}
	if err := wire.WriteFixedBitset(&buf, e.ValidMembers); err != nil {
		return hashtypes.Hash{}, err
	}
	if _, err := buf.Write(e.QuorumPublicKey[:]); err != nil {
		return hashtypes.Hash{}, err
	}
	if err := writeElement(&buf, e.QuorumVVecHash); err != nil {
		return hashtypes.Hash{}, err
	}
	return hashtypes.Sha256Single(buf.Bytes()), nil
}

// Threshold returns the signature threshold required for e's LLMQ type
// on n, or false if the type is not configured on n.
func (e *Entry) Threshold(n *chaincfg.Network) (int, bool) {
	p, ok := n.Params(e.LLMQType)
	if !ok {
		return 0, false
	}
	return p.Threshold, true
}

func popcount(bits []bool) int {
	n := 0
	for _, b := range bits {
		if b {
			n++
		}
	}
	return n
}

// ValidateStructure enforces the invariants in §3, returning the first
// violated rule as a *llmqerr.QuorumValidationError.
func (e *Entry) ValidateStructure(n *chaincfg.Network) error {
	if len(e.Signers) != len(e.ValidMembers) {
		return llmqerr.NewQuorumError(llmqerr.ErrMismatchedBitsetLengths,
			"signers has %d bits, valid_members has %d", len(e.Signers), len(e.ValidMembers))
	}

	threshold, ok := e.Threshold(n)
	if !ok {
		return llmqerr.NewQuorumError(llmqerr.ErrQuorumCorruptedCodeExecution,
			"unconfigured llmq type %s", e.LLMQType)
	}

	if signers := popcount(e.Signers); signers < threshold {
		return llmqerr.NewInsufficientError(llmqerr.ErrInsufficientSigners, threshold, signers)
	}
	if valid := popcount(e.ValidMembers); valid < threshold {
		return llmqerr.NewInsufficientError(llmqerr.ErrInsufficientValidMembers, threshold, valid)
	}

	if e.QuorumPublicKey.IsZero() {
		return llmqerr.NewQuorumError(llmqerr.ErrInvalidQuorumPublicKey, "zeroed public key")
	}
	if e.ThresholdSig.IsZero() {
		return llmqerr.NewQuorumError(llmqerr.ErrThresholdSignatureNotValid, "zeroed threshold signature")
	}
	if e.AllCommitmentAggregatedSignature.IsZero() {
		return llmqerr.NewQuorumError(llmqerr.ErrAllCommitmentAggregatedSignatureNotValid, "zeroed aggregated signature")
	}
	return nil
}

func readElement(r io.Reader, v interface{}) error {
	return wire.ReadElement(r, v)
}

func writeElement(w io.Writer, v interface{}) error {
	return wire.WriteElement(w, v)
}
