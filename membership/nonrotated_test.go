// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package membership

import (
	"testing"

	"github.com/dashpay/dashmnle/chaincfg"
	"github.com/dashpay/dashmnle/hashtypes"
	"github.com/dashpay/dashmnle/mnentry"
	"github.com/dashpay/dashmnle/mnlist"
)

func TestNonRotatedMembersExcludesIneligibleEntries(t *testing.T) {
	network := chaincfg.MainNetParams()
	genesis := network.GenesisHash
	list := mnlist.Empty(genesis)

	confirmedA := hashtypes.Hash{0x01}
	confirmedB := hashtypes.Hash{0x02}

	entryA := mnentry.Entry{Version: 1, IsValid: true, ConfirmedHash: &confirmedA}
	entryA.ProRegTxHash = hashtypes.Hash{0xa1}
	entryB := mnentry.Entry{Version: 1, IsValid: true, ConfirmedHash: &confirmedB}
	entryB.ProRegTxHash = hashtypes.Hash{0xa2}
	entryInvalid := mnentry.Entry{Version: 1, IsValid: false, ConfirmedHash: &confirmedA}
	entryInvalid.ProRegTxHash = hashtypes.Hash{0xa3}
	entryNoConfirmed := mnentry.Entry{Version: 1, IsValid: true}
	entryNoConfirmed.ProRegTxHash = hashtypes.Hash{0xa4}

	next, err := list.ApplyDiff(mnlist.Diff{
		BaseBlockHash:  genesis,
		BlockHash:      hashtypes.Hash{0x01, 0x01},
		NewMasternodes: []mnentry.Entry{entryA, entryB, entryInvalid, entryNoConfirmed},
	}, 1)
	if err != nil {
		t.Fatal(err)
	}

	workHeight := network.CoreV20ActivationHeight - 1
	members, err := NonRotatedMembers(next, network, chaincfg.Llmqtype50_60, workHeight, next.BlockHash, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 2 {
		t.Fatalf("len(members) = %d, want 2 (only the two eligible entries)", len(members))
	}
	for _, m := range members {
		if !m.Entry.IsValid || m.Entry.ConfirmedHash == nil {
			t.Fatalf("selected an ineligible entry: %+v", m.Entry)
		}
	}
	if members[0] == members[1] {
		t.Fatal("expected two distinct members")
	}
}

func TestNonRotatedMembersRequiresChainLockPostActivation(t *testing.T) {
	network := chaincfg.MainNetParams()
	list := mnlist.Empty(network.GenesisHash)

	_, err := NonRotatedMembers(list, network, chaincfg.Llmqtype50_60, network.CoreV20ActivationHeight, network.GenesisHash, nil)
	if err == nil {
		t.Fatal("expected an error when Core v20 is active and no chain lock signature is supplied")
	}
}
