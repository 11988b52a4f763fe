// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine

import (
	"github.com/dashpay/dashmnle/hashtypes"
	"github.com/dashpay/dashmnle/llmqerr"
	"github.com/dashpay/dashmnle/mnlist"
)

// InitializeWithDiffToHeight builds e's first masternode list by applying
// diff against an empty list tagged with the network's genesis hash,
// storing the result at height. Fails if diff.BaseBlockHash does not
// equal the genesis hash.
func (e *Engine) InitializeWithDiffToHeight(diff mnlist.Diff, height uint32) error {
	if diff.BaseBlockHash != e.network.GenesisHash {
		return llmqerr.NewSmlError(llmqerr.ErrBaseBlockNotGenesis,
			"diff base block %s is not genesis %s", diff.BaseBlockHash, e.network.GenesisHash)
	}

	base := mnlist.Empty(e.network.GenesisHash)
	next, err := base.ApplyDiff(diff, height)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.registerBlock(0, e.network.GenesisHash)
	e.registerBlock(height, diff.BlockHash)
	e.lists[0] = base
	e.lists[height] = next
	return nil
}

// ApplyDiff chooses the base list diff chains from. If diff.BaseBlockHash
// is the network's genesis hash, it behaves like
// InitializeWithDiffToHeight at endHeight; otherwise it looks up the list
// tagged with diff.BaseBlockHash and fails with ErrMissingStartMasternodeList
// if none is known. If verifyQuorums, every newly added quorum of a
// non-rotating type is validated per §4.9 and its status recorded in
// place after the list is stored; newly added quorums of rotating types
// are not validated here and keep their existing status.
func (e *Engine) ApplyDiff(diff mnlist.Diff, endHeight uint32, verifyQuorums bool) error {
	if diff.BaseBlockHash == e.network.GenesisHash {
		if err := e.InitializeWithDiffToHeight(diff, endHeight); err != nil {
			return err
		}
	} else {
		e.mu.RLock()
		baseHeight, ok := e.blockHeights[diff.BaseBlockHash]
		var base *mnlist.List
		if ok {
			base, ok = e.lists[baseHeight]
		}
		e.mu.RUnlock()
		if !ok || base == nil {
			return llmqerr.NewSmlError(llmqerr.ErrMissingStartMasternodeList,
				"no known masternode list for base block %s", diff.BaseBlockHash)
		}

		next, err := base.ApplyDiff(diff, endHeight)
		if err != nil {
			return err
		}

		e.mu.Lock()
		e.registerBlock(endHeight, diff.BlockHash)
		e.lists[endHeight] = next
		e.mu.Unlock()
	}

	if !verifyQuorums {
		return nil
	}

	list, ok := e.ListAtHeight(endHeight)
	if !ok {
		return llmqerr.NewSmlError(llmqerr.ErrCorruptedCodeExecution, "list just stored at height %d is missing", endHeight)
	}
	newHashes := make(map[hashtypes.QuorumHash]bool, len(diff.NewQuorums))
	for _, q := range diff.NewQuorums {
		newHashes[q.QuorumHash] = true
	}
	for t, inner := range list.Quorums {
		if t.IsRotatingQuorumType(e.network) {
			continue
		}
		for hash, qualified := range inner {
			if !newHashes[hash] {
				continue
			}
			e.validateNonRotatedQuorum(list, qualified)
		}
	}
	return nil
}
