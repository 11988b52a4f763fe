// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package membership

import (
	"github.com/dashpay/dashmnle/bls"
	"github.com/dashpay/dashmnle/chaincfg"
	"github.com/dashpay/dashmnle/hashtypes"
	"github.com/dashpay/dashmnle/llmqerr"
	"github.com/dashpay/dashmnle/mnentry"
	"github.com/dashpay/dashmnle/mnlist"
	"github.com/dashpay/dashmnle/modifier"
)

// WorkBlock is the masternode-list state the engine resolves for one of
// the four work heights a rotation cycle reconstructs from:
// work_height(i) = cycle_base_height - i*c - 8 (§4.7). The caller
// (normally the engine) is responsible for locating the block hash,
// masternode list and, when Core v20 may be active, the ChainLock
// signature for each of these heights before calling RotatedMembers.
type WorkBlock struct {
	Height       uint32
	BlockHash    hashtypes.BlockHash
	List         *mnlist.List
	ChainLockSig *bls.Signature
}

func rankWorkBlock(network *chaincfg.Network, t chaincfg.LLMQType, b WorkBlock) ([]scoredMember, error) {
	mod, err := modifier.Resolve(network, t, b.Height, b.BlockHash, b.ChainLockSig)
	if err != nil {
		return nil, err
	}
	return rankedEligibleMembers(b.List, network, t, mod), nil
}

// RotatedMembers reconstructs the full per-quorum-index membership of a
// rotation cycle (§4.7): the three historical quarters (h-c, h-2c, h-3c),
// each expanded via its stored snapshot, and the new quarter at h,
// assembled in order [h-3c, h-2c, h-c, new] for every quorum index.
//
// The returned slice has one entry per quorum index
// (params.SigningActiveQuorumCount entries); each entry is the ordered
// membership of that quorum.
func RotatedMembers(
	network *chaincfg.Network,
	t chaincfg.LLMQType,
	newBlock WorkBlock,
	hcBlock WorkBlock, hcSnapshot Snapshot,
	h2cBlock WorkBlock, h2cSnapshot Snapshot,
	h3cBlock WorkBlock, h3cSnapshot Snapshot,
) ([][]*mnentry.Qualified, error) {
	params, ok := network.Params(t)
	if !ok {
		return nil, llmqerr.NewQuorumError(llmqerr.ErrQuorumCorruptedCodeExecution, "unconfigured llmq type %s", t)
	}
	n := params.SigningActiveQuorumCount
	quarterSize := params.QuarterSize()

	h3cRanked, err := rankWorkBlock(network, t, h3cBlock)
	if err != nil {
		return nil, err
	}
	h3cQuarter, err := quarterFromSnapshot(h3cRanked, h3cSnapshot, quarterSize, n)
	if err != nil {
		return nil, err
	}

	h2cRanked, err := rankWorkBlock(network, t, h2cBlock)
	if err != nil {
		return nil, err
	}
	h2cQuarter, err := quarterFromSnapshot(h2cRanked, h2cSnapshot, quarterSize, n)
	if err != nil {
		return nil, err
	}

	hcRanked, err := rankWorkBlock(network, t, hcBlock)
	if err != nil {
		return nil, err
	}
	hcQuarter, err := quarterFromSnapshot(hcRanked, hcSnapshot, quarterSize, n)
	if err != nil {
		return nil, err
	}

	newRanked, err := rankWorkBlock(network, t, newBlock)
	if err != nil {
		return nil, err
	}
	// previous_quarters order per §4.7: [q_{h-c}, q_{h-2c}, q_{h-3c}].
	prior := [3]Quarter{hcQuarter, h2cQuarter, h3cQuarter}
	newQuarterResult := newQuarter(newRanked, prior, quarterSize, n)

	return AssembleMembers(h3cQuarter, h2cQuarter, hcQuarter, newQuarterResult, n), nil
}
