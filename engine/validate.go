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
	"github.com/dashpay/dashmnle/mnentry"
	"github.com/dashpay/dashmnle/mnlist"
	"github.com/dashpay/dashmnle/quorum"
)

// validateAgainst runs the full §4.9 sequence for q given its ordered
// membership m and writes the resulting status onto q.
func (e *Engine) validateAgainst(q *quorum.Qualified, m []*mnentry.Qualified) {
	entry := &q.QuorumEntry

	if err := entry.ValidateStructure(e.network); err != nil {
		q.UpdateStatus(false, err)
		return
	}

	if len(entry.Signers) != len(m) {
		q.UpdateStatus(false, llmqerr.NewQuorumError(llmqerr.ErrMismatchedBitsetLengths,
			"signers has %d bits, membership has %d entries", len(entry.Signers), len(m)))
		return
	}

	threshold, _ := entry.Threshold(e.network)
	signerKeys := make([]bls.SignerKey, 0, len(m))
	for i, signed := range entry.Signers {
		if !signed {
			continue
		}
		mem := m[i]
		signerKeys = append(signerKeys, bls.SignerKey{
			Key:    mem.Entry.OperatorPublicKey,
			Scheme: mem.Entry.Scheme(),
		})
	}
	if len(signerKeys) < threshold {
		q.UpdateStatus(false, llmqerr.NewInsufficientError(llmqerr.ErrInsufficientSigners, threshold, len(signerKeys)))
		return
	}

	if err := bls.VerifyAggregate(signerKeys, q.CommitmentHash[:], entry.AllCommitmentAggregatedSignature); err != nil {
		q.UpdateStatus(false, llmqerr.NewQuorumError(llmqerr.ErrAllCommitmentAggregatedSignatureNotValid, "%v", err))
		return
	}

	if err := bls.Verify(entry.QuorumPublicKey, bls.Basic, q.CommitmentHash[:], entry.ThresholdSig); err != nil {
		q.UpdateStatus(false, llmqerr.NewQuorumError(llmqerr.ErrThresholdSignatureNotValid, "%v", err))
		return
	}

	q.UpdateStatus(false, nil)
}

// recordSkippable writes a Skipped/Invalid verdict onto q for err,
// classifying it via llmqerr.IsSkippable when err is a
// *llmqerr.QuorumValidationError.
func recordSkippable(q *quorum.Qualified, err error) {
	skippable := false
	if qerr, ok := err.(*llmqerr.QuorumValidationError); ok {
		skippable = llmqerr.IsSkippable(qerr.Kind)
	}
	q.UpdateStatus(skippable, err)
}

// validateNonRotatedQuorum resolves the work-block membership for a
// non-rotating quorum commitment and validates it per §4.9. list is the
// masternode list the commitment itself was found in and is not otherwise
// read; membership is derived from the masternode list at
// work_height = height_of(quorum_hash) - 8, per §4.6.
func (e *Engine) validateNonRotatedQuorum(list *mnlist.List, q *quorum.Qualified) {
	_ = list
	entry := &q.QuorumEntry

	quorumHeight, ok := e.HeightForBlockHash(entry.QuorumHash)
	if !ok {
		recordSkippable(q, llmqerr.NewQuorumError(llmqerr.ErrRequiredBlockHeightNotPresent,
			"no known height for quorum hash %s", entry.QuorumHash))
		return
	}
	if quorumHeight < 8 {
		recordSkippable(q, llmqerr.NewQuorumError(llmqerr.ErrRequiredBlockNotPresent,
			"quorum height %d has no work block 8 blocks prior", quorumHeight))
		return
	}
	workHeight := quorumHeight - 8

	workBlockHash, ok := e.BlockHashForHeight(workHeight)
	if !ok {
		recordSkippable(q, llmqerr.NewQuorumError(llmqerr.ErrRequiredBlockNotPresent,
			"no known block hash at work height %d", workHeight))
		return
	}
	workList, ok := e.ListAtHeight(workHeight)
	if !ok {
		recordSkippable(q, llmqerr.NewQuorumError(llmqerr.ErrRequiredMasternodeListNotPresent,
			"no known masternode list at work height %d", workHeight))
		return
	}

	var sigPtr *bls.Signature
	if sig, ok := e.ChainLockSignature(workBlockHash); ok {
		sigPtr = &sig
	}

	m, err := membership.NonRotatedMembers(workList, e.network, entry.LLMQType, workHeight, workBlockHash, sigPtr)
	if err != nil {
		recordSkippable(q, err)
		return
	}

	e.validateAgainst(q, m)
}

// VerifyMasternodeListQuorums validates every non-excluded, non-rotating
// quorum in the list at height, per §4.9, writing verdicts back onto the
// list's qualified quorum entries. Rotating quorum types are skipped here
// since their verdicts come from the engine's last-commitment-per-index
// state (populated by FeedQRInfo), matching §4.8.
func (e *Engine) VerifyMasternodeListQuorums(height uint32, exclude map[chaincfg.LLMQType]bool) error {
	list, ok := e.ListAtHeight(height)
	if !ok {
		return llmqerr.NewQuorumError(llmqerr.ErrRequiredMasternodeListNotPresent,
			"no known masternode list at height %d", height)
	}

	for t, inner := range list.Quorums {
		if exclude[t] {
			continue
		}
		if t.IsRotatingQuorumType(e.network) {
			continue
		}
		for _, qualified := range inner {
			e.validateNonRotatedQuorum(list, qualified)
		}
	}
	return nil
}
