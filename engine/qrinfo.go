// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine

import (
	"github.com/dashpay/dashmnle/bls"
	"github.com/dashpay/dashmnle/chaincfg"
	"github.com/dashpay/dashmnle/llmqerr"
	"github.com/dashpay/dashmnle/membership"
	"github.com/dashpay/dashmnle/mnlist"
	"github.com/dashpay/dashmnle/quorum"
)

// TaggedDiff pairs a reduced masternode list diff with the height its
// target block is known to be at, matching the height/block_hash pairs
// a QRINFO response carries alongside each MnListDiff (§6).
type TaggedDiff struct {
	Diff   mnlist.Diff
	Height uint32
}

// QRInfoInput is the reduced shape of a QRINFO response (§6) FeedQRInfo
// consumes: the wire-level merkle proof and coinbase transaction fields
// of each embedded MnListDiff are assumed already reduced to mnlist.Diff
// by the caller, matching mnlist.Diff's own "reduced before being handed
// to ApplyDiff" convention.
type QRInfoInput struct {
	LLMQType chaincfg.LLMQType

	H3C TaggedDiff
	H2C TaggedDiff
	HC  TaggedDiff
	H   TaggedDiff
	Tip TaggedDiff

	H3CSnapshot membership.Snapshot
	H2CSnapshot membership.Snapshot
	HCSnapshot  membership.Snapshot

	HasH4C      bool
	H4C         TaggedDiff
	H4CSnapshot membership.Snapshot

	LastCommitmentPerIndex []quorum.Entry

	// ExtraSnapshots/ExtraDiffs are the trailing extra_share vectors,
	// ingested first and in parallel order (snapshot[k] belongs to
	// diff[k]), per §4.8 step 3.
	ExtraSnapshots []membership.Snapshot
	ExtraDiffs     []TaggedDiff
}

// chainDiff applies d against whatever list the engine already has for
// d.Diff.BaseBlockHash, storing the result at d.Height. verifyQuorums is
// always false here: rotating quorums are validated as a cycle at the end
// of FeedQRInfo, and any non-rotating quorums riding along on these
// ancillary diffs are left for a subsequent VerifyMasternodeListQuorums
// call, matching §4.8's division of labor between apply_diff and
// feed_qr_info.
func (e *Engine) chainDiff(d TaggedDiff) error {
	return e.ApplyDiff(d.Diff, d.Height, false)
}

// FeedQRInfo ingests a quorum rotation information bundle: the three
// historical snapshots, the chain of MnListDiffs from h-3c through tip,
// the optional h-4c pair, and the rotation cycle's
// last_commitment_per_index vector, then optionally validates that
// vector as a rotation cycle (§4.8 step 5, §4.9).
//
// Every block referenced must already be height-mapped (via
// FeedBlockHeight) and, if Core v20 may be active at any of the four
// work heights, have a ChainLock signature already fed (via
// FeedChainLockSig) — FeedQRInfo does not itself invoke host callbacks;
// the caller pre-fetches and feeds that data, keeping this method free
// of I/O.
func (e *Engine) FeedQRInfo(info QRInfoInput, verifyRotated bool) error {
	for i, d := range info.ExtraDiffs {
		if err := e.chainDiff(d); err != nil {
			return err
		}
		if i < len(info.ExtraSnapshots) {
			e.FeedSnapshot(d.Diff.BlockHash, info.ExtraSnapshots[i])
		}
	}

	if info.HasH4C {
		if err := e.chainDiff(info.H4C); err != nil {
			return err
		}
		e.FeedSnapshot(info.H4C.Diff.BlockHash, info.H4CSnapshot)
	}

	for _, d := range []TaggedDiff{info.H3C, info.H2C, info.HC, info.H, info.Tip} {
		if err := e.chainDiff(d); err != nil {
			return err
		}
	}
	e.FeedSnapshot(info.H3C.Diff.BlockHash, info.H3CSnapshot)
	e.FeedSnapshot(info.H2C.Diff.BlockHash, info.H2CSnapshot)
	e.FeedSnapshot(info.HC.Diff.BlockHash, info.HCSnapshot)

	qualifiedCommitments := make([]*quorum.Qualified, 0, len(info.LastCommitmentPerIndex))
	for _, entry := range info.LastCommitmentPerIndex {
		q, err := quorum.NewQualified(entry)
		if err != nil {
			return err
		}
		qualifiedCommitments = append(qualifiedCommitments, q)
	}

	e.mu.Lock()
	e.lastCommitmentPerIndex[info.LLMQType] = qualifiedCommitments
	e.mu.Unlock()

	if !verifyRotated {
		return nil
	}
	return e.verifyRotationCycle(info.LLMQType, info.H, info.HC, info.H2C, info.H3C, qualifiedCommitments)
}

// workBlockFor builds a membership.WorkBlock for d, looking up its
// masternode list and, when relevant, the ChainLock signature active at
// its block hash.
func (e *Engine) workBlockFor(d TaggedDiff) (membership.WorkBlock, error) {
	list, ok := e.ListAtHeight(d.Height)
	if !ok {
		return membership.WorkBlock{}, llmqerr.NewQuorumError(llmqerr.ErrRequiredMasternodeListNotPresent,
			"no known masternode list at height %d", d.Height)
	}
	var sigPtr *bls.Signature
	if sig, ok := e.ChainLockSignature(d.Diff.BlockHash); ok {
		sigPtr = &sig
	}
	return membership.WorkBlock{
		Height:       d.Height,
		BlockHash:    d.Diff.BlockHash,
		List:         list,
		ChainLockSig: sigPtr,
	}, nil
}

// verifyRotationCycle reconstructs the rotated membership for the cycle
// at h and validates every qualified commitment in commitments against
// its corresponding quorum index's membership, per §4.9.
func (e *Engine) verifyRotationCycle(t chaincfg.LLMQType, h, hc, h2c, h3c TaggedDiff, commitments []*quorum.Qualified) error {
	hBlock, err := e.workBlockFor(h)
	if err != nil {
		for _, q := range commitments {
			recordSkippable(q, err)
		}
		return nil
	}
	hcBlock, err := e.workBlockFor(hc)
	if err != nil {
		for _, q := range commitments {
			recordSkippable(q, err)
		}
		return nil
	}
	h2cBlock, err := e.workBlockFor(h2c)
	if err != nil {
		for _, q := range commitments {
			recordSkippable(q, err)
		}
		return nil
	}
	h3cBlock, err := e.workBlockFor(h3c)
	if err != nil {
		for _, q := range commitments {
			recordSkippable(q, err)
		}
		return nil
	}

	hcSnapshot, _ := e.Snapshot(hc.Diff.BlockHash)
	h2cSnapshot, _ := e.Snapshot(h2c.Diff.BlockHash)
	h3cSnapshot, _ := e.Snapshot(h3c.Diff.BlockHash)

	membershipPerIndex, err := membership.RotatedMembers(e.network, t,
		hBlock,
		hcBlock, hcSnapshot,
		h2cBlock, h2cSnapshot,
		h3cBlock, h3cSnapshot,
	)
	if err != nil {
		for _, q := range commitments {
			recordSkippable(q, err)
		}
		return nil
	}

	for i, q := range commitments {
		if i >= len(membershipPerIndex) {
			recordSkippable(q, llmqerr.NewQuorumError(llmqerr.ErrRequiredQuorumIndexNotPresent,
				"commitment %d has no reconstructed membership (only %d quorum indices)", i, len(membershipPerIndex)))
			continue
		}
		if e.commitmentSeen(q.CommitmentHash[:]) {
			q.UpdateStatus(false, nil)
			continue
		}
		e.validateAgainst(q, membershipPerIndex[i])
		if q.Status == quorum.StatusVerified {
			e.markCommitmentSeen(q.CommitmentHash[:])
		}
	}
	return nil
}
