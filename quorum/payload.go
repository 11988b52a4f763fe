// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package quorum

import (
	"bytes"
	"io"
)

// CommitmentPayload is the special-transaction payload carrying one
// quorum commitment, per §6: version | height | QuorumEntry.
type CommitmentPayload struct {
	Version uint16
	Height  uint32
	Entry   Entry
}

// BtcDecode decodes r into the receiver.
func (p *CommitmentPayload) BtcDecode(r io.Reader) error {
	if err := readElement(r, &p.Version); err != nil {
		return err
	}
	if err := readElement(r, &p.Height); err != nil {
		return err
	}
	return p.Entry.BtcDecode(r)
}

// BtcEncode encodes the receiver to w.
func (p *CommitmentPayload) BtcEncode(w io.Writer) error {
	if err := writeElement(w, p.Version); err != nil {
		return err
	}
	if err := writeElement(w, p.Height); err != nil {
		return err
	}
	return p.Entry.BtcEncode(w)
}

// Bytes returns the canonical encoding of p.
func (p *CommitmentPayload) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.BtcEncode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Size returns the length in bytes of p's canonical encoding: 6 bytes
// (version + height) plus the size of the wrapped quorum entry (§6).
func (p *CommitmentPayload) Size() int {
	return 2 + 4 + p.Entry.Size()
}
