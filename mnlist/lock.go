// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnlist

import (
	"bytes"
	"sort"

	"github.com/dashpay/dashmnle/chaincfg"
	"github.com/dashpay/dashmnle/hashtypes"
	"github.com/dashpay/dashmnle/quorum"
	"github.com/dashpay/dashmnle/wire"
)

// orderingHash computes double_sha256(varint(llmq_type) || quorum_hash ||
// requestID), the value InstantSend-lock quorum selection ranks by
// (§4.4).
func orderingHash(t chaincfg.LLMQType, quorumHash hashtypes.QuorumHash, requestID hashtypes.Hash) (hashtypes.Hash, error) {
	var buf bytes.Buffer
	if err := wire.WriteVarInt(&buf, uint64(t)); err != nil {
		return hashtypes.Hash{}, err
	}
	if _, err := buf.Write(quorumHash[:]); err != nil {
		return hashtypes.Hash{}, err
	}
	if _, err := buf.Write(requestID[:]); err != nil {
		return hashtypes.Hash{}, err
	}
	return hashtypes.Sha256Double(buf.Bytes()), nil
}

// rankedQuorum pairs a qualified quorum with its ordering hash, so both
// BestQuorumForLock and OrderedQuorumsForLock can share one sort.
type rankedQuorum struct {
	quorum *quorum.Qualified
	hash   hashtypes.Hash
}

func (l *List) rankQuorumsForLock(t chaincfg.LLMQType, requestID hashtypes.Hash) ([]rankedQuorum, error) {
	candidates := l.QuorumsOfType(t)
	ranked := make([]rankedQuorum, 0, len(candidates))
	for _, q := range candidates {
		h, err := orderingHash(t, q.QuorumEntry.QuorumHash, requestID)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, rankedQuorum{quorum: q, hash: h})
	}
	sort.Slice(ranked, func(i, j int) bool {
		return hashtypes.CmpReversed(ranked[i].hash, ranked[j].hash) < 0
	})
	return ranked, nil
}

// BestQuorumForLock returns the qualified quorum of type t with the
// smallest byte-reversed ordering hash for requestID — the single quorum
// an InstantSend/ChainLock signing request is routed to (§4.4).
func (l *List) BestQuorumForLock(t chaincfg.LLMQType, requestID hashtypes.Hash) (*quorum.Qualified, bool) {
	ranked, err := l.rankQuorumsForLock(t, requestID)
	if err != nil || len(ranked) == 0 {
		return nil, false
	}
	return ranked[0].quorum, true
}

// OrderedQuorumsForLock returns every qualified quorum of type t, sorted
// ascending by byte-reversed ordering hash for requestID.
//
// The distilled wording for this operation says "sort descending"; the
// reference implementation (is_lock_methods.rs) sorts ascending
// (smallest ordering hash first) and this module follows the reference
// implementation — see DESIGN.md Open Question 1.
func (l *List) OrderedQuorumsForLock(t chaincfg.LLMQType, requestID hashtypes.Hash) ([]*quorum.Qualified, error) {
	ranked, err := l.rankQuorumsForLock(t, requestID)
	if err != nil {
		return nil, err
	}
	out := make([]*quorum.Qualified, len(ranked))
	for i, r := range ranked {
		out[i] = r.quorum
	}
	return out, nil
}
