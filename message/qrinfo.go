// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package message

import (
	"io"

	"github.com/dashpay/dashmnle/chaincfg"
	"github.com/dashpay/dashmnle/engine"
	"github.com/dashpay/dashmnle/hashtypes"
	"github.com/dashpay/dashmnle/membership"
	"github.com/dashpay/dashmnle/quorum"
	"github.com/dashpay/dashmnle/wire"
)

const (
	maxBlockHashVectorLen  = 1 << 16
	maxCommitmentVectorLen = 1 << 12
	maxExtraVectorLen      = 1 << 12
)

// GetQRInfo is the getqrinfo request: the base block hashes the caller
// already has masternode lists for, the block the rotation-information
// bundle is requested for, and whether the h-4c pair should be included.
type GetQRInfo struct {
	BaseBlockHashes  []hashtypes.BlockHash
	BlockRequestHash hashtypes.BlockHash
	ExtraShare       bool
}

// BtcDecode decodes r into the receiver.
func (m *GetQRInfo) BtcDecode(r io.Reader) error {
	count, err := wire.ReadVarInt(r)
	if err != nil {
		return err
	}
	if count > maxBlockHashVectorLen {
		return tooLong("base_block_hashes")
	}
	m.BaseBlockHashes = make([]hashtypes.BlockHash, count)
	for i := range m.BaseBlockHashes {
		if err := wire.ReadElement(r, &m.BaseBlockHashes[i]); err != nil {
			return err
		}
	}
	if err := wire.ReadElement(r, &m.BlockRequestHash); err != nil {
		return err
	}
	return wire.ReadElement(r, &m.ExtraShare)
}

// BtcEncode encodes the receiver to w.
func (m *GetQRInfo) BtcEncode(w io.Writer) error {
	if err := wire.WriteVarInt(w, uint64(len(m.BaseBlockHashes))); err != nil {
		return err
	}
	for _, h := range m.BaseBlockHashes {
		if err := wire.WriteElement(w, h); err != nil {
			return err
		}
	}
	if err := wire.WriteElement(w, m.BlockRequestHash); err != nil {
		return err
	}
	return wire.WriteElement(w, m.ExtraShare)
}

// QRInfo is the qrinfo response: the three historical quorum snapshots,
// the five chained masternode list diffs, the optional h-4c pair, and
// the rotation cycle's trailing vectors (§4.8, §6). Quorum snapshots are
// carried as membership.Snapshot directly — its BtcDecode/BtcEncode
// methods serve both this message and engine persistence, and the type
// itself belongs to membership since that's the package every other
// snapshot consumer (engine.FeedSnapshot, the rotated-membership
// reconstruction) already uses.
type QRInfo struct {
	HCSnapshot  membership.Snapshot
	H2CSnapshot membership.Snapshot
	H3CSnapshot membership.Snapshot

	TipDiff MnListDiff
	HDiff   MnListDiff
	HCDiff  MnListDiff
	H2CDiff MnListDiff
	H3CDiff MnListDiff

	HasH4C      bool
	H4CSnapshot membership.Snapshot
	H4CDiff     MnListDiff

	LastCommitmentPerIndex []quorum.Entry
	ExtraSnapshots         []membership.Snapshot
	ExtraDiffs             []MnListDiff
}

// BtcDecode decodes r into the receiver, in the field order the
// reference implementation's hand-written Decodable impl uses: the
// three snapshots, the five diffs, the extra_share flag and its
// conditional h-4c pair, then the three trailing vectors.
func (q *QRInfo) BtcDecode(r io.Reader) error {
	if err := q.HCSnapshot.BtcDecode(r); err != nil {
		return err
	}
	if err := q.H2CSnapshot.BtcDecode(r); err != nil {
		return err
	}
	if err := q.H3CSnapshot.BtcDecode(r); err != nil {
		return err
	}

	for _, d := range []*MnListDiff{&q.TipDiff, &q.HDiff, &q.HCDiff, &q.H2CDiff, &q.H3CDiff} {
		if err := d.BtcDecode(r); err != nil {
			return err
		}
	}

	if err := wire.ReadElement(r, &q.HasH4C); err != nil {
		return err
	}
	if q.HasH4C {
		if err := q.H4CSnapshot.BtcDecode(r); err != nil {
			return err
		}
		if err := q.H4CDiff.BtcDecode(r); err != nil {
			return err
		}
	}

	commitmentCount, err := wire.ReadVarInt(r)
	if err != nil {
		return err
	}
	if commitmentCount > maxCommitmentVectorLen {
		return tooLong("last_commitment_per_index")
	}
	q.LastCommitmentPerIndex = make([]quorum.Entry, commitmentCount)
	for i := range q.LastCommitmentPerIndex {
		if err := q.LastCommitmentPerIndex[i].BtcDecode(r); err != nil {
			return err
		}
	}

	snapshotListCount, err := wire.ReadVarInt(r)
	if err != nil {
		return err
	}
	if snapshotListCount > maxExtraVectorLen {
		return tooLong("quorum_snapshot_list")
	}
	q.ExtraSnapshots = make([]membership.Snapshot, snapshotListCount)
	for i := range q.ExtraSnapshots {
		if err := q.ExtraSnapshots[i].BtcDecode(r); err != nil {
			return err
		}
	}

	diffListCount, err := wire.ReadVarInt(r)
	if err != nil {
		return err
	}
	if diffListCount > maxExtraVectorLen {
		return tooLong("mn_list_diff_list")
	}
	q.ExtraDiffs = make([]MnListDiff, diffListCount)
	for i := range q.ExtraDiffs {
		if err := q.ExtraDiffs[i].BtcDecode(r); err != nil {
			return err
		}
	}

	return nil
}

// BtcEncode encodes the receiver to w using the same field order
// BtcDecode reads.
func (q *QRInfo) BtcEncode(w io.Writer) error {
	if err := q.HCSnapshot.BtcEncode(w); err != nil {
		return err
	}
	if err := q.H2CSnapshot.BtcEncode(w); err != nil {
		return err
	}
	if err := q.H3CSnapshot.BtcEncode(w); err != nil {
		return err
	}

	for _, d := range []*MnListDiff{&q.TipDiff, &q.HDiff, &q.HCDiff, &q.H2CDiff, &q.H3CDiff} {
		if err := d.BtcEncode(w); err != nil {
			return err
		}
	}

	if err := wire.WriteElement(w, q.HasH4C); err != nil {
		return err
	}
	if q.HasH4C {
		if err := q.H4CSnapshot.BtcEncode(w); err != nil {
			return err
		}
		if err := q.H4CDiff.BtcEncode(w); err != nil {
			return err
		}
	}

	if err := wire.WriteVarInt(w, uint64(len(q.LastCommitmentPerIndex))); err != nil {
		return err
	}
	for i := range q.LastCommitmentPerIndex {
		if err := q.LastCommitmentPerIndex[i].BtcEncode(w); err != nil {
			return err
		}
	}

	if err := wire.WriteVarInt(w, uint64(len(q.ExtraSnapshots))); err != nil {
		return err
	}
	for i := range q.ExtraSnapshots {
		if err := q.ExtraSnapshots[i].BtcEncode(w); err != nil {
			return err
		}
	}

	if err := wire.WriteVarInt(w, uint64(len(q.ExtraDiffs))); err != nil {
		return err
	}
	for i := range q.ExtraDiffs {
		if err := q.ExtraDiffs[i].BtcEncode(w); err != nil {
			return err
		}
	}

	return nil
}

// taggedDiffAt pairs a diff with the height its BlockHash is known at,
// resolved by the caller (the wire message itself carries no height,
// only block hashes — matching §6's host-resolves-heights convention).
func taggedDiffAt(d MnListDiff, height uint32) engine.TaggedDiff {
	return engine.TaggedDiff{Diff: d.Reduce(), Height: height}
}

// Heights names the block heights the caller has already resolved for
// each block hash embedded in a QRInfo, since the wire message itself
// only carries hashes. Reduce uses these to build the engine.TaggedDiff
// values FeedQRInfo requires.
type Heights struct {
	Tip, H, HC, H2C, H3C uint32
	H4C                  uint32
	Extra                []uint32
}

// Reduce converts q into the engine.QRInfoInput shape FeedQRInfo
// consumes, given llmqType and the block heights the caller has already
// resolved for every block hash q references.
func (q *QRInfo) Reduce(llmqType chaincfg.LLMQType, heights Heights) engine.QRInfoInput {
	extraDiffs := make([]engine.TaggedDiff, len(q.ExtraDiffs))
	for i, d := range q.ExtraDiffs {
		height := uint32(0)
		if i < len(heights.Extra) {
			height = heights.Extra[i]
		}
		extraDiffs[i] = taggedDiffAt(d, height)
	}

	return engine.QRInfoInput{
		LLMQType: llmqType,

		H3C: taggedDiffAt(q.H3CDiff, heights.H3C),
		H2C: taggedDiffAt(q.H2CDiff, heights.H2C),
		HC:  taggedDiffAt(q.HCDiff, heights.HC),
		H:   taggedDiffAt(q.HDiff, heights.H),
		Tip: taggedDiffAt(q.TipDiff, heights.Tip),

		H3CSnapshot: q.H3CSnapshot,
		H2CSnapshot: q.H2CSnapshot,
		HCSnapshot:  q.HCSnapshot,

		HasH4C:      q.HasH4C,
		H4C:         taggedDiffAt(q.H4CDiff, heights.H4C),
		H4CSnapshot: q.H4CSnapshot,

		LastCommitmentPerIndex: q.LastCommitmentPerIndex,
		ExtraSnapshots:         q.ExtraSnapshots,
		ExtraDiffs:             extraDiffs,
	}
}
