// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine

import (
	"errors"
	"testing"

	"github.com/dashpay/dashmnle/chaincfg"
	"github.com/dashpay/dashmnle/hashtypes"
	"github.com/dashpay/dashmnle/llmqerr"
	"github.com/dashpay/dashmnle/mnentry"
	"github.com/dashpay/dashmnle/mnlist"
	"github.com/dashpay/dashmnle/quorum"
)

func TestInitializeWithDiffToHeightStoresBothEndpoints(t *testing.T) {
	network := chaincfg.MainNetParams()
	e := New(network)

	confirmed := hashtypes.Hash{0x01}
	entry := mnentry.Entry{Version: 1, IsValid: true, ConfirmedHash: &confirmed}
	entry.ProRegTxHash = hashtypes.Hash{0xaa}

	blockHash := hashtypes.Hash{0x01, 0x02}
	diff := mnlist.Diff{
		BaseBlockHash:  network.GenesisHash,
		BlockHash:      blockHash,
		NewMasternodes: []mnentry.Entry{entry},
	}
	if err := e.InitializeWithDiffToHeight(diff, 1000); err != nil {
		t.Fatal(err)
	}

	list, ok := e.ListAtHeight(1000)
	if !ok {
		t.Fatal("expected a list at height 1000")
	}
	if len(list.Masternodes) != 1 {
		t.Fatalf("len(Masternodes) = %d, want 1", len(list.Masternodes))
	}

	gotHeight, ok := e.HeightForBlockHash(blockHash)
	if !ok || gotHeight != 1000 {
		t.Fatalf("HeightForBlockHash = %d, %v; want 1000, true", gotHeight, ok)
	}
	gotHash, ok := e.BlockHashForHeight(1000)
	if !ok || gotHash != blockHash {
		t.Fatalf("BlockHashForHeight mismatch")
	}
}

func TestApplyDiffRequiresKnownBaseList(t *testing.T) {
	network := chaincfg.MainNetParams()
	e := New(network)

	diff := mnlist.Diff{
		BaseBlockHash: hashtypes.Hash{0x99},
		BlockHash:     hashtypes.Hash{0x98},
	}
	err := e.ApplyDiff(diff, 2000, false)
	if err == nil {
		t.Fatal("expected an error applying a diff with an unknown base block")
	}
	var smlErr *llmqerr.SmlError
	if !errors.As(err, &smlErr) || smlErr.Kind != llmqerr.ErrMissingStartMasternodeList {
		t.Fatalf("got error %v, want ErrMissingStartMasternodeList", err)
	}
}

func TestApplyDiffChainsOntoInitializedList(t *testing.T) {
	network := chaincfg.MainNetParams()
	e := New(network)

	first := mnlist.Diff{BaseBlockHash: network.GenesisHash, BlockHash: hashtypes.Hash{0x01}}
	if err := e.InitializeWithDiffToHeight(first, 100); err != nil {
		t.Fatal(err)
	}

	confirmed := hashtypes.Hash{0x02}
	entry := mnentry.Entry{Version: 1, IsValid: true, ConfirmedHash: &confirmed}
	entry.ProRegTxHash = hashtypes.Hash{0xbb}
	second := mnlist.Diff{
		BaseBlockHash:  hashtypes.Hash{0x01},
		BlockHash:      hashtypes.Hash{0x02},
		NewMasternodes: []mnentry.Entry{entry},
	}
	if err := e.ApplyDiff(second, 200, false); err != nil {
		t.Fatal(err)
	}

	list, ok := e.ListAtHeight(200)
	if !ok || len(list.Masternodes) != 1 {
		t.Fatalf("expected the chained list at height 200 to carry 1 masternode, got ok=%v", ok)
	}
}

func TestVerifyMasternodeListQuorumsSkipsWhenWorkListMissing(t *testing.T) {
	network := chaincfg.MainNetParams()
	e := New(network)

	// The quorum's block is the one at height 100, so its work block is
	// height 92, which the engine has never been told about.
	quorumHash := hashtypes.Hash{0x01}
	entry := quorum.Entry{Version: 1, LLMQType: chaincfg.Llmqtype50_60, QuorumHash: quorumHash}
	diff := mnlist.Diff{
		BaseBlockHash: network.GenesisHash,
		BlockHash:     quorumHash,
		NewQuorums:    []quorum.Entry{entry},
	}
	if err := e.InitializeWithDiffToHeight(diff, 100); err != nil {
		t.Fatal(err)
	}

	if err := e.VerifyMasternodeListQuorums(100, nil); err != nil {
		t.Fatal(err)
	}

	list, _ := e.ListAtHeight(100)
	q := list.Quorums[chaincfg.Llmqtype50_60][quorumHash]
	if q == nil || q.Status != quorum.StatusSkipped {
		t.Fatalf("quorum status = %v, want skipped", q)
	}
}
