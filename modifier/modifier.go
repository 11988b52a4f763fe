// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package modifier computes the quorum modifier hash (C7) that seeds
// masternode scoring for both non-rotated (C8) and rotated (C9) quorum
// membership derivation.
package modifier

import (
	"bytes"

	"github.com/dashpay/dashmnle/bls"
	"github.com/dashpay/dashmnle/chaincfg"
	"github.com/dashpay/dashmnle/hashtypes"
	"github.com/dashpay/dashmnle/llmqerr"
	"github.com/dashpay/dashmnle/wire"
)

// PreCoreV20 computes sha256(varint(llmq_type) || block_hash), the
// modifier form used before Core v20 activates (§4.5).
func PreCoreV20(t chaincfg.LLMQType, blockHash hashtypes.BlockHash) (hashtypes.Hash, error) {
	var buf bytes.Buffer
	if err := wire.WriteVarInt(&buf, uint64(t)); err != nil {
		return hashtypes.Hash{}, err
	}
	if _, err := buf.Write(blockHash[:]); err != nil {
		return hashtypes.Hash{}, err
	}
	return hashtypes.Sha256Single(buf.Bytes()), nil
}

// CoreV20 computes sha256(varint(llmq_type) || u32_le(workBlockHeight) ||
// chainLockSig), the modifier form used once Core v20 is active (§4.5).
func CoreV20(t chaincfg.LLMQType, workBlockHeight uint32, chainLockSig bls.Signature) (hashtypes.Hash, error) {
	var buf bytes.Buffer
	if err := wire.WriteVarInt(&buf, uint64(t)); err != nil {
		return hashtypes.Hash{}, err
	}
	if err := wire.WriteElement(&buf, workBlockHeight); err != nil {
		return hashtypes.Hash{}, err
	}
	if _, err := buf.Write(chainLockSig[:]); err != nil {
		return hashtypes.Hash{}, err
	}
	return hashtypes.Sha256Single(buf.Bytes()), nil
}

// Resolve picks the PreCoreV20 or CoreV20 form of the quorum modifier for
// t at workBlockHeight/workBlockHash, depending on whether network
// reports Core v20 as active at that height. chainLockSig must be
// non-nil when Core v20 is active; its absence is reported as
// ErrRequiredChainLockNotPresent (skippable, §7), not a hard failure,
// since it usually means the ChainLock simply has not been fed to the
// engine yet.
func Resolve(network *chaincfg.Network, t chaincfg.LLMQType, workBlockHeight uint32, workBlockHash hashtypes.BlockHash, chainLockSig *bls.Signature) (hashtypes.Hash, error) {
	if network.IsCoreV20Active(workBlockHeight) {
		if chainLockSig == nil {
			return hashtypes.Hash{}, llmqerr.NewQuorumError(llmqerr.ErrRequiredChainLockNotPresent,
				"core v20 active at height %d but no chain lock signature known for block %s", workBlockHeight, workBlockHash)
		}
		return CoreV20(t, workBlockHeight, *chainLockSig)
	}
	return PreCoreV20(t, workBlockHash)
}
