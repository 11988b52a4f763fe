// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mnentry implements a single masternode's entry in a masternode
// list (C5): its canonical wire encoding, entry hash, and the scoring
// function used to select quorum membership.
package mnentry

import (
	"bytes"
	"io"

	"github.com/dashpay/dashmnle/bls"
	"github.com/dashpay/dashmnle/hashtypes"
	"github.com/dashpay/dashmnle/wire"
)

// Type distinguishes a regular masternode from a high-performance
// (Platform) masternode, tagged on the wire by a u16 present only on
// entry versions >= 2.
type Type uint16

const (
	TypeRegular        Type = 0
	TypeHighPerformance Type = 1
)

func (t Type) String() string {
	if t == TypeHighPerformance {
		return "high-performance"
	}
	return "regular"
}

// keyIDVotingSize and platformNodeIDSize are both RIPEMD160-shaped
// 20-byte identifiers, matching the size of a P2PKH key hash even though
// neither field is itself a key hash.
const (
	keyIDVotingSize    = 20
	platformNodeIDSize = 20
)

// hasMnType reports whether version carries the optional mn_type tag
// (and, for HighPerformance, its platform fields), per §3: "present iff
// version >= 2".
func hasMnType(version uint16) bool {
	return version >= 2
}

// Entry is one masternode's entry in a masternode list
// (MasternodeListEntry, §3).
type Entry struct {
	Version           uint16
	ProRegTxHash      hashtypes.ProTxHash
	ConfirmedHash     *hashtypes.Hash // nil iff the wire value was all-zero
	ServiceAddress    wire.ServiceAddress
	OperatorPublicKey bls.PublicKey
	KeyIDVoting       [keyIDVotingSize]byte
	IsValid           bool

	// Type, PlatformHTTPPort and PlatformNodeID are only meaningful
	// (and only present on the wire) when Version >= 2. Type is
	// TypeRegular and the platform fields are zero otherwise.
	Type             Type
	PlatformHTTPPort uint16
	PlatformNodeID   [platformNodeIDSize]byte
}

// Scheme returns the BLS scheme e's operator public key must be decoded
// under, derived from e's version (§3/bls package doc).
func (e *Entry) Scheme() bls.Scheme {
	return bls.SchemeForMasternodeVersion(e.Version)
}

// BtcDecode decodes r into the receiver using the canonical field order
// from §4.3.
func (e *Entry) BtcDecode(r io.Reader) error {
	if err := wire.ReadElement(r, &e.Version); err != nil {
		return err
	}
	if err := wire.ReadElement(r, &e.ProRegTxHash); err != nil {
		return err
	}

	var confirmed hashtypes.Hash
	if err := wire.ReadElement(r, &confirmed); err != nil {
		return err
	}
	if confirmed != (hashtypes.Hash{}) {
		h := confirmed
		e.ConfirmedHash = &h
	} else {
		e.ConfirmedHash = nil
	}

	addr, err := wire.ReadServiceAddress(r)
	if err != nil {
		return err
	}
	e.ServiceAddress = addr

	if _, err := io.ReadFull(r, e.OperatorPublicKey[:]); err != nil {
		return err
	}

	keyID, err := wire.ReadFixedBytes(r, keyIDVotingSize)
	if err != nil {
		return err
	}
	copy(e.KeyIDVoting[:], keyID)

	var isValid bool
	if err := wire.ReadElement(r, &isValid); err != nil {
		return err
	}
	e.IsValid = isValid

	e.Type = TypeRegular
	e.PlatformHTTPPort = 0
	e.PlatformNodeID = [platformNodeIDSize]byte{}

	if hasMnType(e.Version) {
		var tag uint16
		if err := wire.ReadElement(r, &tag); err != nil {
			return err
		}
		e.Type = Type(tag)
		if e.Type == TypeHighPerformance {
			var port uint16
			if err := wire.ReadElement(r, &port); err != nil {
				return err
			}
			e.PlatformHTTPPort = port

			nodeID, err := wire.ReadFixedBytes(r, platformNodeIDSize)
			if err != nil {
				return err
			}
			copy(e.PlatformNodeID[:], nodeID)
		}
	}
	return nil
}

// BtcEncode encodes the receiver to w using the canonical field order
// from §4.3.
func (e *Entry) BtcEncode(w io.Writer) error {
	if err := wire.WriteElement(w, e.Version); err != nil {
		return err
	}
	if err := wire.WriteElement(w, e.ProRegTxHash); err != nil {
		return err
	}

	var confirmed hashtypes.Hash
	if e.ConfirmedHash != nil {
		confirmed = *e.ConfirmedHash
	}
	if err := wire.WriteElement(w, confirmed); err != nil {
		return err
	}

	if err := wire.WriteServiceAddress(w, e.ServiceAddress); err != nil {
		return err
	}
	if _, err := w.Write(e.OperatorPublicKey[:]); err != nil {
		return err
	}
	if _, err := w.Write(e.KeyIDVoting[:]); err != nil {
		return err
	}
	if err := wire.WriteElement(w, e.IsValid); err != nil {
		return err
	}

	if hasMnType(e.Version) {
		if err := wire.WriteElement(w, uint16(e.Type)); err != nil {
			return err
		}
		if e.Type == TypeHighPerformance {
			if err := wire.WriteElement(w, e.PlatformHTTPPort); err != nil {
				return err
			}
			if _, err := w.Write(e.PlatformNodeID[:]); err != nil {
				return err
			}
		}
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
	n := 2 + hashtypes.Size + hashtypes.Size + wire.SocketAddrSize +
		bls.PublicKeySize + keyIDVotingSize + 1
	if hasMnType(e.Version) {
		n += 2
		if e.Type == TypeHighPerformance {
			n += 2 + platformNodeIDSize
		}
	}
	return n
}

// EntryHash returns the double-SHA256 of e's canonical encoding, used as
// a masternode-list merkle leaf (§4.4).
func (e *Entry) EntryHash() (hashtypes.Hash, error) {
	b, err := e.Bytes()
	if err != nil {
		return hashtypes.Hash{}, err
	}
	return hashtypes.Sha256Double(b), nil
}
