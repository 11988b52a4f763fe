// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package engine implements the masternode list / LLMQ engine (C10): the
// orchestrator that ingests diffs and quorum rotation bundles, keeps a
// history of masternode lists and quorum snapshots, and validates quorum
// commitments against derived membership.
package engine

import (
	"sync"

	"github.com/decred/dcrd/container/apbf"
	"github.com/decred/slog"

	"github.com/dashpay/dashmnle/bls"
	"github.com/dashpay/dashmnle/chaincfg"
	"github.com/dashpay/dashmnle/hashtypes"
	"github.com/dashpay/dashmnle/membership"
	"github.com/dashpay/dashmnle/mnlist"
	"github.com/dashpay/dashmnle/quorum"
)

// BlockHeightSource is implemented by the host application to resolve a
// block's height given its hash (§6). The engine calls this only from
// FeedBlockHeight's convenience wrapper; every other mutator requires
// the height to already be known.
type BlockHeightSource interface {
	BlockHeight(hash hashtypes.Hash) (uint32, error)
}

// ChainLockSource is implemented by the host application to resolve the
// ChainLock signature active at a block, if any (§6).
type ChainLockSource interface {
	ChainLockSignature(hash hashtypes.Hash) (*bls.Signature, error)
}

// Engine is the single-owner mutable orchestrator described in §3/§4.8:
// a history of masternode lists keyed by height, the height<->block_hash
// bijection, known ChainLock signatures and quorum rotation snapshots
// keyed by block hash, and the most recently reconstructed rotated
// quorum commitments per LLMQ type.
//
// Mutators (InitializeWithDiffToHeight, ApplyDiff, FeedQRInfo,
// FeedChainLockSig, FeedBlockHeight) take the exclusive lock; read-only
// accessors take the shared lock, matching §5's concurrency model.
type Engine struct {
	mu sync.RWMutex

	network *chaincfg.Network

	blockHeights map[hashtypes.BlockHash]uint32
	blockHashes  map[uint32]hashtypes.BlockHash
	lists        map[uint32]*mnlist.List
	chainLocks   map[hashtypes.BlockHash]bls.Signature
	snapshots    map[hashtypes.BlockHash]membership.Snapshot

	// lastCommitmentPerIndex holds, per rotating LLMQ type, the most
	// recently ingested rotation cycle's qualified commitments indexed
	// by quorum index (§3 "vector of rotated last commitment per
	// index entries").
	lastCommitmentPerIndex map[chaincfg.LLMQType][]*quorum.Qualified

	// dedupMu guards commitmentDedup separately from mu: the dedup
	// filter is consulted from verifyRotationCycle, which deliberately
	// runs its BLS checks without holding mu.
	dedupMu         sync.Mutex
	commitmentDedup *apbf.Filter

	log slog.Logger
}

// New returns an Engine with no known lists, configured for network.
func New(network *chaincfg.Network) *Engine {
	return &Engine{
		network:                network,
		blockHeights:           make(map[hashtypes.BlockHash]uint32),
		blockHashes:            make(map[uint32]hashtypes.BlockHash),
		lists:                  make(map[uint32]*mnlist.List),
		chainLocks:             make(map[hashtypes.BlockHash]bls.Signature),
		snapshots:              make(map[hashtypes.BlockHash]membership.Snapshot),
		lastCommitmentPerIndex: make(map[chaincfg.LLMQType][]*quorum.Qualified),
		log:                    slog.Disabled,
	}
}

// UseLogger sets the subsystem logger used by e.
func (e *Engine) UseLogger(logger slog.Logger) {
	e.log = logger
}

// Network returns the network e is configured for.
func (e *Engine) Network() *chaincfg.Network {
	return e.network
}

// registerBlock records the height<->block_hash pair, preserving the
// bijection invariant from §5.
func (e *Engine) registerBlock(height uint32, blockHash hashtypes.BlockHash) {
	e.blockHeights[blockHash] = height
	e.blockHashes[height] = blockHash
}

// LatestHeight returns the highest height e has a masternode list for,
// and false if e has no lists at all.
func (e *Engine) LatestHeight() (uint32, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var best uint32
	found := false
	for h := range e.lists {
		if !found || h > best {
			best = h
			found = true
		}
	}
	return best, found
}

// LatestList returns the masternode list at e's highest known height.
func (e *Engine) LatestList() (*mnlist.List, bool) {
	height, ok := e.LatestHeight()
	if !ok {
		return nil, false
	}
	return e.ListAtHeight(height)
}

// ListAtHeight returns the masternode list known at height.
func (e *Engine) ListAtHeight(height uint32) (*mnlist.List, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	l, ok := e.lists[height]
	return l, ok
}

// MasternodeListForBlockHash returns the masternode list tagged with
// blockHash, if any.
func (e *Engine) MasternodeListForBlockHash(blockHash hashtypes.BlockHash) (*mnlist.List, bool) {
	e.mu.RLock()
	height, ok := e.blockHeights[blockHash]
	e.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return e.ListAtHeight(height)
}

// HeightForBlockHash returns the known height of blockHash.
func (e *Engine) HeightForBlockHash(blockHash hashtypes.BlockHash) (uint32, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	h, ok := e.blockHeights[blockHash]
	return h, ok
}

// BlockHashForHeight returns the known block hash at height.
func (e *Engine) BlockHashForHeight(height uint32) (hashtypes.BlockHash, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	h, ok := e.blockHashes[height]
	return h, ok
}

// ChainLockSignature returns the ChainLock signature known for
// blockHash, if any.
func (e *Engine) ChainLockSignature(blockHash hashtypes.BlockHash) (bls.Signature, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	sig, ok := e.chainLocks[blockHash]
	return sig, ok
}

// Snapshot returns the quorum snapshot known for blockHash, if any.
func (e *Engine) Snapshot(blockHash hashtypes.BlockHash) (membership.Snapshot, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	s, ok := e.snapshots[blockHash]
	return s, ok
}

// FeedBlockHeight registers that blockHash is known to be at height,
// satisfying the height<->block_hash bijection the rest of the engine
// depends on. It is safe to call more than once with the same pair.
func (e *Engine) FeedBlockHeight(blockHash hashtypes.BlockHash, height uint32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.registerBlock(height, blockHash)
}

// FeedBlockHeightFrom resolves blockHash's height via source and
// registers it, for callers that would rather hand the engine a host
// callback than look the height up themselves.
func (e *Engine) FeedBlockHeightFrom(blockHash hashtypes.BlockHash, source BlockHeightSource) error {
	height, err := source.BlockHeight(blockHash)
	if err != nil {
		return err
	}
	e.FeedBlockHeight(blockHash, height)
	return nil
}

// FeedChainLockSig registers the ChainLock signature active at
// blockHash.
func (e *Engine) FeedChainLockSig(blockHash hashtypes.BlockHash, sig bls.Signature) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.chainLocks[blockHash] = sig
}

// FeedSnapshot registers the quorum rotation snapshot known for
// blockHash.
func (e *Engine) FeedSnapshot(blockHash hashtypes.BlockHash, snapshot membership.Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.snapshots[blockHash] = snapshot
}

// LastCommitmentPerIndex returns the most recently ingested rotation
// cycle's qualified commitments for t, indexed by quorum index.
func (e *Engine) LastCommitmentPerIndex(t chaincfg.LLMQType) ([]*quorum.Qualified, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	entries, ok := e.lastCommitmentPerIndex[t]
	return entries, ok
}
