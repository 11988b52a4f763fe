// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mnlist implements the masternode list snapshot (C6): the
// mapping of masternodes and quorums known at a given block, diff
// application, and the two merkle roots a coinbase payload commits to.
package mnlist

import (
	"sort"

	"github.com/dashpay/dashmnle/chaincfg"
	"github.com/dashpay/dashmnle/hashtypes"
	"github.com/dashpay/dashmnle/merkle"
	"github.com/dashpay/dashmnle/mnentry"
	"github.com/dashpay/dashmnle/quorum"
)

// List is a snapshot of the masternode set and quorum set known at a
// given block (MasternodeList, §3).
//
// Masternodes is keyed by the *reversed* pro_reg_tx_hash, matching the
// ordering the reference implementation's BTreeMap iterates in; Quorums
// is keyed first by LLMQ type, then by quorum_hash.
type List struct {
	BlockHash hashtypes.BlockHash
	Height    uint32

	Masternodes map[hashtypes.Hash]*mnentry.Qualified
	Quorums     map[chaincfg.LLMQType]map[hashtypes.QuorumHash]*quorum.Qualified

	masternodeMerkleRoot   *hashtypes.MerkleRoot
	llmqMerkleRoot         *hashtypes.MerkleRoot
}

// Empty returns a List with no masternodes or quorums, tagged with the
// network's genesis block hash at height 0 — the baseline every
// initializing diff applies against.
func Empty(genesisHash hashtypes.BlockHash) *List {
	return &List{
		BlockHash:   genesisHash,
		Height:      0,
		Masternodes: make(map[hashtypes.Hash]*mnentry.Qualified),
		Quorums:     make(map[chaincfg.LLMQType]map[hashtypes.QuorumHash]*quorum.Qualified),
	}
}

// DeletedQuorumRef names a quorum to remove during diff application.
type DeletedQuorumRef struct {
	LLMQType   chaincfg.LLMQType
	QuorumHash hashtypes.QuorumHash
}

// Diff is the subset of an MnListDiff message ApplyDiff needs: the base
// and target block identifiers plus the additions/removals to apply.
// The full wire MnListDiff (merkle proof fields, coinbase transaction)
// is defined in the wire-message layer and reduced to this shape before
// being handed to ApplyDiff.
type Diff struct {
	BaseBlockHash hashtypes.BlockHash
	BlockHash     hashtypes.BlockHash

	DeletedMasternodes []hashtypes.ProTxHash // reversed form
	NewMasternodes     []mnentry.Entry

	DeletedQuorums []DeletedQuorumRef
	NewQuorums     []quorum.Entry
}

// ApplyDiff applies diff on top of l, producing a new List at
// diffEndHeight. diff.BaseBlockHash must equal l.BlockHash. Follows the
// three-step algorithm in §4.4: clone+mutate masternodes, clone+mutate
// quorums, then retag and recompute merkle roots.
func (l *List) ApplyDiff(diff Diff, diffEndHeight uint32) (*List, error) {
	if diff.BaseBlockHash != l.BlockHash {
		return nil, baseBlockMismatch(diff.BaseBlockHash, l.BlockHash)
	}

	masternodes := make(map[hashtypes.Hash]*mnentry.Qualified, len(l.Masternodes))
	for k, v := range l.Masternodes {
		masternodes[k] = v
	}
	for _, reversedHash := range diff.DeletedMasternodes {
		delete(masternodes, reversedHash)
	}
	for _, entry := range diff.NewMasternodes {
		q, err := mnentry.NewQualified(entry)
		if err != nil {
			return nil, err
		}
		masternodes[hashtypes.Reversed(entry.ProRegTxHash)] = q
	}

	quorums := make(map[chaincfg.LLMQType]map[hashtypes.QuorumHash]*quorum.Qualified, len(l.Quorums))
	for t, inner := range l.Quorums {
		innerCopy := make(map[hashtypes.QuorumHash]*quorum.Qualified, len(inner))
		for k, v := range inner {
			innerCopy[k] = v
		}
		quorums[t] = innerCopy
	}
	for _, ref := range diff.DeletedQuorums {
		if inner, ok := quorums[ref.LLMQType]; ok {
			delete(inner, ref.QuorumHash)
			if len(inner) == 0 {
				delete(quorums, ref.LLMQType)
			}
		}
	}
	for _, entry := range diff.NewQuorums {
		q, err := quorum.NewQualified(entry)
		if err != nil {
			return nil, err
		}
		inner, ok := quorums[entry.LLMQType]
		if !ok {
			inner = make(map[hashtypes.QuorumHash]*quorum.Qualified)
			quorums[entry.LLMQType] = inner
		}
		inner[entry.QuorumHash] = q
	}

	next := &List{
		BlockHash:   diff.BlockHash,
		Height:      diffEndHeight,
		Masternodes: masternodes,
		Quorums:     quorums,
	}
	next.recomputeMerkleRoots()
	return next, nil
}

// sortedMasternodeKeys returns the reversed pro_reg_tx_hash keys of l's
// masternode map in ascending order (§4.4 merkle root construction).
func (l *List) sortedMasternodeKeys() []hashtypes.Hash {
	keys := make([]hashtypes.Hash, 0, len(l.Masternodes))
	for k := range l.Masternodes {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return hashtypes.CmpRaw(keys[i], keys[j]) < 0
	})
	return keys
}

// recomputeMerkleRoots recomputes and caches l's two merkle roots.
func (l *List) recomputeMerkleRoots() {
	mnKeys := l.sortedMasternodeKeys()
	mnLeaves := make([]hashtypes.Hash, 0, len(mnKeys))
	for _, k := range mnKeys {
		mnLeaves = append(mnLeaves, l.Masternodes[k].EntryHash)
	}
	if root, ok := merkle.Root(mnLeaves); ok {
		l.masternodeMerkleRoot = &root
	} else {
		l.masternodeMerkleRoot = nil
	}

	quorumLeaves := make([]hashtypes.Hash, 0)
	for _, inner := range l.Quorums {
		for _, q := range inner {
			quorumLeaves = append(quorumLeaves, q.EntryHash)
		}
	}
	sort.Slice(quorumLeaves, func(i, j int) bool {
		return hashtypes.CmpRaw(quorumLeaves[i], quorumLeaves[j]) < 0
	})
	if root, ok := merkle.Root(quorumLeaves); ok {
		l.llmqMerkleRoot = &root
	} else {
		l.llmqMerkleRoot = nil
	}
}

// MasternodeMerkleRoot returns l's memoized masternode merkle root, and
// false if l has no masternodes.
func (l *List) MasternodeMerkleRoot() (hashtypes.MerkleRoot, bool) {
	if l.masternodeMerkleRoot == nil {
		return hashtypes.Hash{}, false
	}
	return *l.masternodeMerkleRoot, true
}

// LLMQMerkleRoot returns l's memoized quorum merkle root, and false if l
// has no quorums.
func (l *List) LLMQMerkleRoot() (hashtypes.MerkleRoot, bool) {
	if l.llmqMerkleRoot == nil {
		return hashtypes.Hash{}, false
	}
	return *l.llmqMerkleRoot, true
}

// HasValidMnListRoot reports whether coinbaseRoot matches l's computed
// masternode merkle root. A missing computed root (empty list) never
// validates.
func (l *List) HasValidMnListRoot(coinbaseRoot hashtypes.MerkleRoot) bool {
	root, ok := l.MasternodeMerkleRoot()
	return ok && root == coinbaseRoot
}

// HasValidLlmqListRoot reports whether coinbaseRoot matches l's computed
// quorum merkle root.
func (l *List) HasValidLlmqListRoot(coinbaseRoot hashtypes.MerkleRoot) bool {
	root, ok := l.LLMQMerkleRoot()
	return ok && root == coinbaseRoot
}

// QuorumsOfType returns the qualified quorum entries of t known to l, in
// no particular order.
func (l *List) QuorumsOfType(t chaincfg.LLMQType) []*quorum.Qualified {
	inner, ok := l.Quorums[t]
	if !ok {
		return nil
	}
	out := make([]*quorum.Qualified, 0, len(inner))
	for _, q := range inner {
		out = append(out, q)
	}
	return out
}

// Entries flattens l back into the bare masternode and quorum entries it
// was built from, in no particular order. Used by engine persistence to
// serialize a list without needing to replay the diff history that built
// it.
func (l *List) Entries() (masternodes []mnentry.Entry, quorums []quorum.Entry) {
	masternodes = make([]mnentry.Entry, 0, len(l.Masternodes))
	for _, q := range l.Masternodes {
		masternodes = append(masternodes, q.Entry)
	}
	for _, inner := range l.Quorums {
		for _, q := range inner {
			quorums = append(quorums, q.QuorumEntry)
		}
	}
	return masternodes, quorums
}

// FromEntries builds a List directly from a flat set of masternode and
// quorum entries, tagged with blockHash and height, rather than by
// applying a diff against a prior list. Used by engine persistence to
// reconstruct a list from a serialized snapshot.
func FromEntries(blockHash hashtypes.BlockHash, height uint32, masternodes []mnentry.Entry, quorums []quorum.Entry) (*List, error) {
	l := &List{
		BlockHash:   blockHash,
		Height:      height,
		Masternodes: make(map[hashtypes.Hash]*mnentry.Qualified, len(masternodes)),
		Quorums:     make(map[chaincfg.LLMQType]map[hashtypes.QuorumHash]*quorum.Qualified),
	}
	for _, entry := range masternodes {
		q, err := mnentry.NewQualified(entry)
		if err != nil {
			return nil, err
		}
		l.Masternodes[hashtypes.Reversed(entry.ProRegTxHash)] = q
	}
	for _, entry := range quorums {
		q, err := quorum.NewQualified(entry)
		if err != nil {
			return nil, err
		}
		inner, ok := l.Quorums[entry.LLMQType]
		if !ok {
			inner = make(map[hashtypes.QuorumHash]*quorum.Qualified)
			l.Quorums[entry.LLMQType] = inner
		}
		inner[entry.QuorumHash] = q
	}
	l.recomputeMerkleRoots()
	return l, nil
}
