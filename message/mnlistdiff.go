// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package message implements the getmnlistd/mnlistdiff and
// getqrinfo/qrinfo wire messages (§6): the full, merkle-proof-carrying
// shapes a peer exchanges on the network, decoded and encoded in the
// teacher's per-field BtcDecode/BtcEncode style. Each message type
// reduces to the lighter shape its consumer actually needs
// (mnlist.Diff, engine.QRInfoInput) via a Reduce method, mirroring
// those types' own documented "reduced before being handed to" phrasing.
//
// This package sits above wire, mnentry and quorum rather than inside
// wire itself: mnentry.Entry and quorum.Entry both already import wire
// for their own field codecs, so a message type embedding either of
// them cannot live in the wire package without an import cycle.
package message

import (
	"fmt"
	"io"

	"github.com/dashpay/dashmnle/bls"
	"github.com/dashpay/dashmnle/chaincfg"
	"github.com/dashpay/dashmnle/hashtypes"
	"github.com/dashpay/dashmnle/mnentry"
	"github.com/dashpay/dashmnle/mnlist"
	"github.com/dashpay/dashmnle/quorum"
	"github.com/dashpay/dashmnle/wire"
)

// Per-vector caps guarding decode against a hostile or corrupt length
// prefix. None of these vectors is bounded by consensus to a specific
// count; these ceilings are generous multiples of what any real
// mnlistdiff has ever carried.
const (
	maxHashVectorLen   = 1 << 16
	maxByteVectorLen   = 1 << 20
	maxEntryVectorLen  = 1 << 16
	maxSigVectorLen    = 1 << 16
	maxCoinbaseTxBytes = 1 << 22
)

func tooLong(field string) error {
	return fmt.Errorf("message: %s exceeds decode cap", field)
}

// GetMnListDiff is the getmnlistd request: the caller's known base block
// and the block it wants a diff up to.
type GetMnListDiff struct {
	BaseBlockHash hashtypes.BlockHash
	BlockHash     hashtypes.BlockHash
}

// BtcDecode decodes r into the receiver.
func (m *GetMnListDiff) BtcDecode(r io.Reader) error {
	if err := wire.ReadElement(r, &m.BaseBlockHash); err != nil {
		return err
	}
	return wire.ReadElement(r, &m.BlockHash)
}

// BtcEncode encodes the receiver to w.
func (m *GetMnListDiff) BtcEncode(w io.Writer) error {
	if err := wire.WriteElement(w, m.BaseBlockHash); err != nil {
		return err
	}
	return wire.WriteElement(w, m.BlockHash)
}

// DeletedQuorum names an LLMQ removed since a diff's base block.
type DeletedQuorum struct {
	LLMQType   chaincfg.LLMQType
	QuorumHash hashtypes.QuorumHash
}

// BtcDecode decodes r into the receiver.
func (d *DeletedQuorum) BtcDecode(r io.Reader) error {
	var t uint8
	if err := wire.ReadElement(r, &t); err != nil {
		return err
	}
	d.LLMQType = chaincfg.LLMQType(t)
	return wire.ReadElement(r, &d.QuorumHash)
}

// BtcEncode encodes the receiver to w.
func (d *DeletedQuorum) BtcEncode(w io.Writer) error {
	if err := wire.WriteElement(w, uint8(d.LLMQType)); err != nil {
		return err
	}
	return wire.WriteElement(w, d.QuorumHash)
}

// MnListDiff is the mnlistdiff response: the masternode list diff
// together with the merkle proof fields and serialized coinbase
// transaction that commit to it.
//
// CoinbaseTx is carried as its opaque serialized bytes rather than
// parsed into a transaction type: nothing downstream of this message
// inspects them (Reduce drops them), and a general Dash transaction
// parser is out of scope.
type MnListDiff struct {
	Version            uint16
	BaseBlockHash      hashtypes.BlockHash
	BlockHash          hashtypes.BlockHash
	TotalTransactions  uint32
	MerkleHashes       []hashtypes.MerkleRoot
	MerkleFlags        []byte
	CoinbaseTx         []byte
	DeletedMasternodes []hashtypes.ProTxHash
	NewMasternodes     []mnentry.Entry
	DeletedQuorums     []DeletedQuorum
	NewQuorums         []quorum.Entry

	// ChainLockSignatures is the ChainLock signature used to calculate
	// members per quorum index for each entry in NewQuorums.
	ChainLockSignatures []bls.Signature
}

// BtcDecode decodes r into the receiver using the field order the
// reference wire format defines.
func (m *MnListDiff) BtcDecode(r io.Reader) error {
	if err := wire.ReadElement(r, &m.Version); err != nil {
		return err
	}
	if err := wire.ReadElement(r, &m.BaseBlockHash); err != nil {
		return err
	}
	if err := wire.ReadElement(r, &m.BlockHash); err != nil {
		return err
	}
	if err := wire.ReadElement(r, &m.TotalTransactions); err != nil {
		return err
	}

	hashCount, err := wire.ReadVarInt(r)
	if err != nil {
		return err
	}
	if hashCount > maxHashVectorLen {
		return tooLong("merkle_hashes")
	}
	m.MerkleHashes = make([]hashtypes.MerkleRoot, hashCount)
	for i := range m.MerkleHashes {
		if err := wire.ReadElement(r, &m.MerkleHashes[i]); err != nil {
			return err
		}
	}

	flagsLen, err := wire.ReadVarInt(r)
	if err != nil {
		return err
	}
	if flagsLen > maxByteVectorLen {
		return tooLong("merkle_flags")
	}
	m.MerkleFlags, err = wire.ReadFixedBytes(r, int(flagsLen))
	if err != nil {
		return err
	}

	coinbaseLen, err := wire.ReadVarInt(r)
	if err != nil {
		return err
	}
	if coinbaseLen > maxCoinbaseTxBytes {
		return tooLong("coinbase_tx")
	}
	m.CoinbaseTx, err = wire.ReadFixedBytes(r, int(coinbaseLen))
	if err != nil {
		return err
	}

	deletedCount, err := wire.ReadVarInt(r)
	if err != nil {
		return err
	}
	if deletedCount > maxHashVectorLen {
		return tooLong("deleted_masternodes")
	}
	m.DeletedMasternodes = make([]hashtypes.ProTxHash, deletedCount)
	for i := range m.DeletedMasternodes {
		if err := wire.ReadElement(r, &m.DeletedMasternodes[i]); err != nil {
			return err
		}
	}

	newCount, err := wire.ReadVarInt(r)
	if err != nil {
		return err
	}
	if newCount > maxEntryVectorLen {
		return tooLong("new_masternodes")
	}
	m.NewMasternodes = make([]mnentry.Entry, newCount)
	for i := range m.NewMasternodes {
		if err := m.NewMasternodes[i].BtcDecode(r); err != nil {
			return err
		}
	}

	deletedQuorumCount, err := wire.ReadVarInt(r)
	if err != nil {
		return err
	}
	if deletedQuorumCount > maxEntryVectorLen {
		return tooLong("deleted_quorums")
	}
	m.DeletedQuorums = make([]DeletedQuorum, deletedQuorumCount)
	for i := range m.DeletedQuorums {
		if err := m.DeletedQuorums[i].BtcDecode(r); err != nil {
			return err
		}
	}

	newQuorumCount, err := wire.ReadVarInt(r)
	if err != nil {
		return err
	}
	if newQuorumCount > maxEntryVectorLen {
		return tooLong("new_quorums")
	}
	m.NewQuorums = make([]quorum.Entry, newQuorumCount)
	for i := range m.NewQuorums {
		if err := m.NewQuorums[i].BtcDecode(r); err != nil {
			return err
		}
	}

	sigCount, err := wire.ReadVarInt(r)
	if err != nil {
		return err
	}
	if sigCount > maxSigVectorLen {
		return tooLong("quorums_chainlock_signatures")
	}
	m.ChainLockSignatures = make([]bls.Signature, sigCount)
	for i := range m.ChainLockSignatures {
		if _, err := io.ReadFull(r, m.ChainLockSignatures[i][:]); err != nil {
			return err
		}
	}

	return nil
}

// BtcEncode encodes the receiver to w using the same field order
// BtcDecode reads.
func (m *MnListDiff) BtcEncode(w io.Writer) error {
	if err := wire.WriteElement(w, m.Version); err != nil {
		return err
	}
	if err := wire.WriteElement(w, m.BaseBlockHash); err != nil {
		return err
	}
	if err := wire.WriteElement(w, m.BlockHash); err != nil {
		return err
	}
	if err := wire.WriteElement(w, m.TotalTransactions); err != nil {
		return err
	}

	if err := wire.WriteVarInt(w, uint64(len(m.MerkleHashes))); err != nil {
		return err
	}
	for _, h := range m.MerkleHashes {
		if err := wire.WriteElement(w, h); err != nil {
			return err
		}
	}

	if err := wire.WriteVarInt(w, uint64(len(m.MerkleFlags))); err != nil {
		return err
	}
	if _, err := w.Write(m.MerkleFlags); err != nil {
		return err
	}

	if err := wire.WriteVarInt(w, uint64(len(m.CoinbaseTx))); err != nil {
		return err
	}
	if _, err := w.Write(m.CoinbaseTx); err != nil {
		return err
	}

	if err := wire.WriteVarInt(w, uint64(len(m.DeletedMasternodes))); err != nil {
		return err
	}
	for _, h := range m.DeletedMasternodes {
		if err := wire.WriteElement(w, h); err != nil {
			return err
		}
	}

	if err := wire.WriteVarInt(w, uint64(len(m.NewMasternodes))); err != nil {
		return err
	}
	for i := range m.NewMasternodes {
		if err := m.NewMasternodes[i].BtcEncode(w); err != nil {
			return err
		}
	}

	if err := wire.WriteVarInt(w, uint64(len(m.DeletedQuorums))); err != nil {
		return err
	}
	for i := range m.DeletedQuorums {
		if err := m.DeletedQuorums[i].BtcEncode(w); err != nil {
			return err
		}
	}

	if err := wire.WriteVarInt(w, uint64(len(m.NewQuorums))); err != nil {
		return err
	}
	for i := range m.NewQuorums {
		if err := m.NewQuorums[i].BtcEncode(w); err != nil {
			return err
		}
	}

	if err := wire.WriteVarInt(w, uint64(len(m.ChainLockSignatures))); err != nil {
		return err
	}
	for _, sig := range m.ChainLockSignatures {
		if _, err := w.Write(sig[:]); err != nil {
			return err
		}
	}

	return nil
}

// Reduce drops the merkle proof fields and coinbase transaction,
// producing the mnlist.Diff shape ApplyDiff consumes. Deleted masternode
// hashes are converted from wire order to the reversed form mnlist.Diff
// carries.
func (m *MnListDiff) Reduce() mnlist.Diff {
	deletedMasternodes := make([]hashtypes.ProTxHash, len(m.DeletedMasternodes))
	for i, h := range m.DeletedMasternodes {
		deletedMasternodes[i] = hashtypes.Reversed(h)
	}
	deletedQuorums := make([]mnlist.DeletedQuorumRef, len(m.DeletedQuorums))
	for i, d := range m.DeletedQuorums {
		deletedQuorums[i] = mnlist.DeletedQuorumRef{LLMQType: d.LLMQType, QuorumHash: d.QuorumHash}
	}
	return mnlist.Diff{
		BaseBlockHash:      m.BaseBlockHash,
		BlockHash:          m.BlockHash,
		DeletedMasternodes: deletedMasternodes,
		NewMasternodes:     m.NewMasternodes,
		DeletedQuorums:     deletedQuorums,
		NewQuorums:         m.NewQuorums,
	}
}
