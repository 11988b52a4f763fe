// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// These tests exercise the non-rotated and rotated quorum verification
// end-to-end scenarios against synthetic fixtures: genuinely-signed BLS
// commitments over a small custom LLMQ configuration, standing in for
// the bit-exact historical mainnet snapshot this retrieval pack does not
// carry (see DESIGN.md's Open Question decision 5, "Test fixtures").
package engine_test

import (
	"testing"

	"github.com/dashpay/dashmnle/bls"
	"github.com/dashpay/dashmnle/chaincfg"
	"github.com/dashpay/dashmnle/engine"
	"github.com/dashpay/dashmnle/hashtypes"
	"github.com/dashpay/dashmnle/membership"
	"github.com/dashpay/dashmnle/message"
	"github.com/dashpay/dashmnle/mnentry"
	"github.com/dashpay/dashmnle/mnlist"
	"github.com/dashpay/dashmnle/quorum"
)

func fillHash(b byte) (h hashtypes.Hash) {
	h[0] = b
	h[1] = b ^ 0xff
	return h
}

// TestVerifyMasternodeListQuorumsMarksGenuineCommitmentVerified covers
// scenario 5: loading a masternode list whose non-rotating quorum
// commitment carries a genuinely valid aggregate and threshold
// signature must mark that quorum Verified.
func TestVerifyMasternodeListQuorumsMarksGenuineCommitmentVerified(t *testing.T) {
	genesisHash := fillHash(0x01)
	workHash := fillHash(0x02)
	quorumHash := fillHash(0x03)

	llmqType := chaincfg.Llmqtype50_60
	network := &chaincfg.Network{
		Name:                    "scenario5",
		GenesisHash:             genesisHash,
		CoreV20ActivationHeight: 0,
		LLMQParams: map[chaincfg.LLMQType]chaincfg.LLMQParams{
			llmqType: {Type: llmqType, Size: 3, Threshold: 2, SigningActiveQuorumCount: 1, DKGInterval: 24},
		},
	}

	memberKeys := make([]testKeypair, 3)
	masternodes := make([]mnentry.Entry, 3)
	for i := range masternodes {
		memberKeys[i] = newTestKeypair(byte(10 + i))
		confirmed := fillHash(byte(20 + i))
		masternodes[i] = mnentry.Entry{
			Version:           2,
			ProRegTxHash:      fillHash(byte(30 + i)),
			ConfirmedHash:     &confirmed,
			OperatorPublicKey: memberKeys[i].pk,
			IsValid:           true,
		}
	}

	e := engine.New(network)
	if err := e.InitializeWithDiffToHeight(mnlist.Diff{
		BaseBlockHash:  genesisHash,
		BlockHash:      workHash,
		NewMasternodes: masternodes,
	}, 8); err != nil {
		t.Fatalf("initialize with diff: %v", err)
	}

	quorumKeys := newTestKeypair(99)
	entry := quorum.Entry{
		Version:         1,
		LLMQType:        llmqType,
		QuorumHash:      quorumHash,
		Signers:         []bool{true, true, true},
		ValidMembers:    []bool{true, true, true},
		QuorumPublicKey: quorumKeys.pk,
		QuorumVVecHash:  fillHash(0x44),
	}
	commitmentHash, err := entry.CommitmentHash()
	if err != nil {
		t.Fatalf("commitment hash: %v", err)
	}

	sigs := make([]bls.Signature, len(memberKeys))
	for i, kp := range memberKeys {
		sigs[i] = kp.sign(commitmentHash[:])
	}
	aggSig, err := aggregateSignatures(sigs)
	if err != nil {
		t.Fatalf("aggregate signatures: %v", err)
	}
	entry.AllCommitmentAggregatedSignature = aggSig
	entry.ThresholdSig = quorumKeys.sign(commitmentHash[:])

	if err := e.ApplyDiff(mnlist.Diff{
		BaseBlockHash: workHash,
		BlockHash:     quorumHash,
		NewQuorums:    []quorum.Entry{entry},
	}, 16, false); err != nil {
		t.Fatalf("apply diff: %v", err)
	}

	if err := e.VerifyMasternodeListQuorums(16, nil); err != nil {
		t.Fatalf("verify masternode list quorums: %v", err)
	}

	list, ok := e.ListAtHeight(16)
	if !ok {
		t.Fatalf("no list at height 16")
	}
	qualified, ok := list.Quorums[llmqType][quorumHash]
	if !ok {
		t.Fatalf("quorum %s missing from list", quorumHash)
	}
	if qualified.Status != quorum.StatusVerified {
		t.Fatalf("status = %s, reason = %v, want %s", qualified.Status, qualified.StatusReason, quorum.StatusVerified)
	}
}

// TestFeedQRInfoVerifiesRotatedCommitment covers scenario 6: feeding a
// QRInfo rotation bundle whose last_commitment_per_index entry carries a
// genuinely valid signature over the membership the engine itself
// reconstructs must mark that commitment Verified, with no error from
// the cycle-level feed call.
func TestFeedQRInfoVerifiesRotatedCommitment(t *testing.T) {
	genesisHash := fillHash(0x51)
	h3cHash := fillHash(0x52)
	h2cHash := fillHash(0x53)
	hcHash := fillHash(0x54)
	hHash := fillHash(0x55)
	tipHash := fillHash(0x56)

	llmqType := chaincfg.Llmqtype60_75
	network := &chaincfg.Network{
		Name:                    "scenario6",
		GenesisHash:             genesisHash,
		CoreV20ActivationHeight: 0,
		LLMQParams: map[chaincfg.LLMQType]chaincfg.LLMQParams{
			llmqType: {Type: llmqType, Size: 4, Threshold: 1, SigningActiveQuorumCount: 1, DKGInterval: 4, Rotating: true},
		},
	}

	memberKey := newTestKeypair(77)
	confirmed := fillHash(0x60)
	member := mnentry.Entry{
		Version:           2,
		ProRegTxHash:      fillHash(0x61),
		ConfirmedHash:     &confirmed,
		OperatorPublicKey: memberKey.pk,
		IsValid:           true,
	}

	skipAll := membership.Snapshot{SkipListMode: membership.SkipAll}

	h3cDiff := message.MnListDiff{BaseBlockHash: genesisHash, BlockHash: h3cHash}
	h2cDiff := message.MnListDiff{BaseBlockHash: h3cHash, BlockHash: h2cHash}
	hcDiff := message.MnListDiff{BaseBlockHash: h2cHash, BlockHash: hcHash}
	hDiff := message.MnListDiff{BaseBlockHash: hcHash, BlockHash: hHash, NewMasternodes: []mnentry.Entry{member}}
	tipDiff := message.MnListDiff{BaseBlockHash: hHash, BlockHash: tipHash}

	quorumKey := newTestKeypair(88)
	quorumIndex := int16(0)
	commitment := quorum.Entry{
		Version:         2,
		LLMQType:        llmqType,
		QuorumHash:      hHash,
		QuorumIndex:     &quorumIndex,
		Signers:         []bool{true},
		ValidMembers:    []bool{true},
		QuorumPublicKey: quorumKey.pk,
		QuorumVVecHash:  fillHash(0x70),
	}
	commitmentHash, err := commitment.CommitmentHash()
	if err != nil {
		t.Fatalf("commitment hash: %v", err)
	}
	aggSig, err := aggregateSignatures([]bls.Signature{memberKey.sign(commitmentHash[:])})
	if err != nil {
		t.Fatalf("aggregate signatures: %v", err)
	}
	commitment.AllCommitmentAggregatedSignature = aggSig
	commitment.ThresholdSig = quorumKey.sign(commitmentHash[:])

	info := message.QRInfo{
		HCSnapshot:             skipAll,
		H2CSnapshot:            skipAll,
		H3CSnapshot:            skipAll,
		TipDiff:                tipDiff,
		HDiff:                  hDiff,
		HCDiff:                 hcDiff,
		H2CDiff:                h2cDiff,
		H3CDiff:                h3cDiff,
		LastCommitmentPerIndex: []quorum.Entry{commitment},
	}
	heights := message.Heights{Tip: 40, H: 32, HC: 24, H2C: 16, H3C: 8}

	e := engine.New(network)
	if err := e.FeedQRInfo(info.Reduce(llmqType, heights), true); err != nil {
		t.Fatalf("feed qr info: %v", err)
	}

	commitments, ok := e.LastCommitmentPerIndex(llmqType)
	if !ok {
		t.Fatalf("no last commitment per index for %s", llmqType)
	}
	if len(commitments) != 1 {
		t.Fatalf("len(commitments) = %d, want 1", len(commitments))
	}
	if commitments[0].Status != quorum.StatusVerified {
		t.Fatalf("status = %s, reason = %v, want %s", commitments[0].Status, commitments[0].StatusReason, quorum.StatusVerified)
	}
}
