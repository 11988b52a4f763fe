// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package membership reconstructs quorum membership: the ordered set of
// masternodes that made up a quorum at the time it formed, for both
// non-rotating (C8) and DIP-24 rotated (C9) LLMQ types.
package membership

import (
	"sort"

	"github.com/dashpay/dashmnle/bls"
	"github.com/dashpay/dashmnle/chaincfg"
	"github.com/dashpay/dashmnle/hashtypes"
	"github.com/dashpay/dashmnle/llmqerr"
	"github.com/dashpay/dashmnle/mnentry"
	"github.com/dashpay/dashmnle/mnlist"
	"github.com/dashpay/dashmnle/modifier"
)

// scoredMember pairs a qualified masternode with its score under a given
// quorum modifier, retaining the raw (non-reversed) digest for the
// degenerate-tie fallback comparison §4.6 step 4 requires.
type scoredMember struct {
	entry  *mnentry.Qualified
	score  scoreValue
	digest hashtypes.Hash
}

// rankedEligibleMembers returns every masternode in list eligible to be
// scored for t (excluding those with no confirmed hash, is_valid=false,
// or — when t is the network's Platform type — any non-HighPerformance
// entry), sorted descending by score with raw-digest as the tiebreaker
// (§4.6 step 4).
func rankedEligibleMembers(list *mnlist.List, network *chaincfg.Network, t chaincfg.LLMQType, mod hashtypes.Hash) []scoredMember {
	platformOnly := t == network.PlatformLLMQType()

	out := make([]scoredMember, 0, len(list.Masternodes))
	for _, q := range list.Masternodes {
		if platformOnly && q.Entry.Type != mnentry.TypeHighPerformance {
			continue
		}
		score, ok := q.Entry.Score(mod)
		if !ok {
			continue
		}
		digest, _ := q.Entry.ScoreDigest(mod)
		out = append(out, scoredMember{entry: q, score: score, digest: digest})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := compareScores(out[i].score, out[j].score); c != 0 {
			return c > 0 // descending score
		}
		return hashtypes.CmpRaw(out[i].digest, out[j].digest) > 0 // descending raw bytes
	})
	return out
}

// NonRotatedMembers reconstructs the membership of a non-rotating quorum
// of type t, validated against the masternode list at workHeight =
// height_of(quorum_hash) - 8 (the caller, normally the engine, resolves
// that height and looks up the corresponding list). workBlockHash must
// be the block hash at workHeight (§4.6).
func NonRotatedMembers(list *mnlist.List, network *chaincfg.Network, t chaincfg.LLMQType, workHeight uint32, workBlockHash hashtypes.BlockHash, chainLockSig *bls.Signature) ([]*mnentry.Qualified, error) {
	params, ok := network.Params(t)
	if !ok {
		return nil, llmqerr.NewQuorumError(llmqerr.ErrQuorumCorruptedCodeExecution, "unconfigured llmq type %s", t)
	}

	mod, err := modifier.Resolve(network, t, workHeight, workBlockHash, chainLockSig)
	if err != nil {
		return nil, err
	}

	ranked := rankedEligibleMembers(list, network, t, mod)
	n := params.Size
	if n > len(ranked) {
		n = len(ranked)
	}
	out := make([]*mnentry.Qualified, n)
	for i := 0; i < n; i++ {
		out[i] = ranked[i].entry
	}
	return out, nil
}
