// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import "github.com/dashpay/dashmnle/hashtypes"

// mainNetGenesisHash is Dash mainnet's genesis block hash, the base every
// initializing diff on mainnet must chain from.
var mainNetGenesisHash = hashtypes.BlockHash{
	0x19, 0xd6, 0x68, 0x9c, 0x08, 0x5a, 0xe1, 0x65,
	0x83, 0x1e, 0x93, 0x4f, 0xf7, 0x63, 0xae, 0x46,
	0xa2, 0xa6, 0xc1, 0x72, 0xb3, 0xf1, 0xb6, 0x0a,
	0x8c, 0xe2, 0x6f, 0x00, 0x00, 0x00, 0x00, 0x00,
}

// MainNetParams returns the masternode-list/LLMQ parameters for Dash
// mainnet.
func MainNetParams() *Network {
	return &Network{
		Name:        "mainnet",
		GenesisHash: mainNetGenesisHash,
		// Core v20 (and its CoreV20 quorum-modifier scheme, §4.5)
		// activated on Dash mainnet at height 1,737,792.
		CoreV20ActivationHeight: 1737792,
		LLMQParams: cloneLLMQParams(
			Llmqtype50_60, Llmqtype400_60, Llmqtype400_85,
			Llmqtype100_67, Llmqtype60_75,
		),
		ChainLocksType: Llmqtype400_60,
		ISDLockType:    Llmqtype50_60,
		PlatformType:   Llmqtype100_67,
	}
}
