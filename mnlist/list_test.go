// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnlist

import (
	"testing"

	"github.com/dashpay/dashmnle/chaincfg"
	"github.com/dashpay/dashmnle/hashtypes"
	"github.com/dashpay/dashmnle/mnentry"
	"github.com/dashpay/dashmnle/quorum"
)

func hashFilledWith(b byte) hashtypes.Hash {
	var h hashtypes.Hash
	for i := range h {
		h[i] = b
	}
	return h
}

func TestApplyDiffAddsAndRemovesMasternodes(t *testing.T) {
	genesis := hashFilledWith(0x00)
	l := Empty(genesis)

	blockHash1 := hashFilledWith(0x01)
	confirmed := hashFilledWith(0x02)
	entryA := mnentry.Entry{Version: 1, IsValid: true, ConfirmedHash: &confirmed}
	entryA.ProRegTxHash = hashFilledWith(0x10)

	l2, err := l.ApplyDiff(Diff{
		BaseBlockHash:  genesis,
		BlockHash:      blockHash1,
		NewMasternodes: []mnentry.Entry{entryA},
	}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(l2.Masternodes) != 1 {
		t.Fatalf("len(Masternodes) = %d, want 1", len(l2.Masternodes))
	}
	if _, ok := l2.MasternodeMerkleRoot(); !ok {
		t.Fatal("expected a masternode merkle root after adding an entry")
	}

	blockHash2 := hashFilledWith(0x03)
	l3, err := l2.ApplyDiff(Diff{
		BaseBlockHash:      blockHash1,
		BlockHash:          blockHash2,
		DeletedMasternodes: []hashtypes.ProTxHash{hashtypes.Reversed(entryA.ProRegTxHash)},
	}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(l3.Masternodes) != 0 {
		t.Fatalf("len(Masternodes) = %d, want 0 after deletion", len(l3.Masternodes))
	}
	if _, ok := l3.MasternodeMerkleRoot(); ok {
		t.Fatal("expected no masternode merkle root for an empty list")
	}
}

func TestApplyDiffRejectsWrongBaseBlock(t *testing.T) {
	genesis := hashFilledWith(0x00)
	l := Empty(genesis)

	_, err := l.ApplyDiff(Diff{BaseBlockHash: hashFilledWith(0xff), BlockHash: hashFilledWith(0x01)}, 1)
	if err == nil {
		t.Fatal("expected an error applying a diff with the wrong base block hash")
	}
}

func TestApplyDiffUpsertsAndDropsEmptyQuorumBucket(t *testing.T) {
	genesis := hashFilledWith(0x00)
	l := Empty(genesis)

	qh := hashFilledWith(0x20)
	entry := quorum.Entry{
		Version:      1,
		LLMQType:     chaincfg.Llmqtype50_60,
		QuorumHash:   qh,
		Signers:      make([]bool, 50),
		ValidMembers: make([]bool, 50),
	}

	l2, err := l.ApplyDiff(Diff{
		BaseBlockHash: genesis,
		BlockHash:     hashFilledWith(0x01),
		NewQuorums:    []quorum.Entry{entry},
	}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(l2.QuorumsOfType(chaincfg.Llmqtype50_60)) != 1 {
		t.Fatalf("expected one quorum of type llmq_50_60")
	}

	l3, err := l2.ApplyDiff(Diff{
		BaseBlockHash: l2.BlockHash,
		BlockHash:     hashFilledWith(0x02),
		DeletedQuorums: []DeletedQuorumRef{
			{LLMQType: chaincfg.Llmqtype50_60, QuorumHash: qh},
		},
	}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := l3.Quorums[chaincfg.Llmqtype50_60]; ok {
		t.Fatal("expected the llmq_50_60 bucket to be dropped once empty")
	}
}
