// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import "github.com/dashpay/dashmnle/hashtypes"

var testNetGenesisHash = hashtypes.BlockHash{
	0xce, 0xd2, 0x94, 0xc7, 0x7b, 0x76, 0xd2, 0x1e,
	0x40, 0x14, 0x8c, 0x6d, 0x90, 0x09, 0x35, 0x3c,
	0x46, 0xe1, 0xdf, 0x18, 0xad, 0x13, 0xa2, 0x03,
	0xcc, 0x85, 0xf0, 0x10, 0x00, 0x00, 0x00, 0x00,
}

// TestNetParams returns the masternode-list/LLMQ parameters for Dash
// testnet.
func TestNetParams() *Network {
	return &Network{
		Name:                    "testnet",
		GenesisHash:             testNetGenesisHash,
		CoreV20ActivationHeight: 905100,
		LLMQParams: cloneLLMQParams(
			Llmqtype50_60, Llmqtype400_60, Llmqtype400_85,
			Llmqtype100_67, Llmqtype60_75, LlmqtypeTestDIP0024,
			LlmqtypeTestInstantSend, LlmqtypeTestnetPlatform,
		),
		ChainLocksType: Llmqtype50_60,
		ISDLockType:    LlmqtypeTestInstantSend,
		PlatformType:   LlmqtypeTestnetPlatform,
	}
}

// DevNetParams returns the masternode-list/LLMQ parameters for a Dash
// devnet. Devnets share testnet's cycle-length/threshold table but use
// the dedicated devnet-only LLMQ types.
func DevNetParams() *Network {
	return &Network{
		Name:                    "devnet",
		GenesisHash:             hashtypes.BlockHash{},
		CoreV20ActivationHeight: 1,
		LLMQParams: cloneLLMQParams(
			LlmqtypeDevnet, LlmqtypeDevnetDIP0024, LlmqtypeDevnetPlatform,
		),
		ChainLocksType: LlmqtypeDevnet,
		ISDLockType:    LlmqtypeDevnet,
		PlatformType:   LlmqtypeDevnetPlatform,
	}
}

// RegTestParams returns the masternode-list/LLMQ parameters for a Dash
// regtest instance, using only the fast test-sized LLMQ type.
func RegTestParams() *Network {
	return &Network{
		Name:                    "regtest",
		GenesisHash:             hashtypes.BlockHash{},
		CoreV20ActivationHeight: 0,
		LLMQParams: cloneLLMQParams(
			LlmqtypeTest, LlmqtypeTestDIP0024, LlmqtypeTestV17,
		),
		ChainLocksType: LlmqtypeTest,
		ISDLockType:    LlmqtypeTest,
		PlatformType:   LlmqtypeTest,
	}
}
