// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package modifier

import (
	"testing"

	"github.com/dashpay/dashmnle/bls"
	"github.com/dashpay/dashmnle/chaincfg"
	"github.com/dashpay/dashmnle/hashtypes"
)

func TestResolveRequiresChainLockAfterCoreV20(t *testing.T) {
	network := chaincfg.MainNetParams()
	activeHeight := network.CoreV20ActivationHeight

	_, err := Resolve(network, chaincfg.Llmqtype50_60, activeHeight, hashtypes.Hash{}, nil)
	if err == nil {
		t.Fatal("expected an error resolving the modifier post-activation with no chain lock")
	}

	var sig bls.Signature
	modifier, err := Resolve(network, chaincfg.Llmqtype50_60, activeHeight, hashtypes.Hash{}, &sig)
	if err != nil {
		t.Fatal(err)
	}
	want, err := CoreV20(chaincfg.Llmqtype50_60, activeHeight, sig)
	if err != nil {
		t.Fatal(err)
	}
	if modifier != want {
		t.Fatalf("Resolve produced a different modifier than CoreV20 directly")
	}
}

func TestResolvePreActivationUsesBlockHash(t *testing.T) {
	network := chaincfg.MainNetParams()
	height := network.CoreV20ActivationHeight - 1
	blockHash := hashtypes.Hash{0x01, 0x02}

	modifier, err := Resolve(network, chaincfg.Llmqtype50_60, height, blockHash, nil)
	if err != nil {
		t.Fatal(err)
	}
	want, err := PreCoreV20(chaincfg.Llmqtype50_60, blockHash)
	if err != nil {
		t.Fatal(err)
	}
	if modifier != want {
		t.Fatal("Resolve produced a different modifier than PreCoreV20 directly")
	}
}
