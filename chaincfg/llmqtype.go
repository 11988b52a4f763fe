// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg defines the per-network parameters the masternode list
// and quorum engine needs: the LLMQ type table and the handful of
// network-wide switches (genesis hash, Core v20 activation height, which
// LLMQ type backs ChainLocks/InstantSend/Platform). It follows the
// teacher's four-network Params-table convention (mainnetparams.go,
// testnetparams.go, regnetparams.go, simnetparams.go) adapted from full
// chain parameters to LLMQ parameters.
package chaincfg

import "fmt"

// LLMQType identifies a Long-Living Masternode Quorum configuration. The
// numeric values match Dash Core's wire encoding of the type byte.
type LLMQType uint8

// Documented LLMQ types. Sizes, thresholds and cycle lengths mirror
// Dash's publicly documented LLMQ parameter tables.
const (
	LLMQTypeUnknown             LLMQType = 0
	Llmqtype50_60               LLMQType = 1
	Llmqtype400_60              LLMQType = 2
	Llmqtype400_85              LLMQType = 3
	Llmqtype100_67              LLMQType = 4
	Llmqtype60_75               LLMQType = 5
	Llmqtype25_67               LLMQType = 6
	LlmqtypeTest                LLMQType = 100
	LlmqtypeDevnet              LLMQType = 101
	LlmqtypeTestV17             LLMQType = 102
	LlmqtypeTestDIP0024         LLMQType = 103
	LlmqtypeTestInstantSend     LLMQType = 104
	LlmqtypeDevnetDIP0024       LLMQType = 105
	LlmqtypeTestnetPlatform     LLMQType = 106
	LlmqtypeDevnetPlatform      LLMQType = 107
)

func (t LLMQType) String() string {
	if name, ok := llmqTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("LLMQType(%d)", uint8(t))
}

var llmqTypeNames = map[LLMQType]string{
	LLMQTypeUnknown:         "unknown",
	Llmqtype50_60:           "llmq_50_60",
	Llmqtype400_60:          "llmq_400_60",
	Llmqtype400_85:          "llmq_400_85",
	Llmqtype100_67:          "llmq_100_67",
	Llmqtype60_75:           "llmq_60_75",
	Llmqtype25_67:           "llmq_25_67",
	LlmqtypeTest:            "llmq_test",
	LlmqtypeDevnet:          "llmq_devnet",
	LlmqtypeTestV17:         "llmq_test_v17",
	LlmqtypeTestDIP0024:     "llmq_test_dip0024",
	LlmqtypeTestInstantSend: "llmq_test_instantsend",
	LlmqtypeDevnetDIP0024:   "llmq_devnet_dip0024",
	LlmqtypeTestnetPlatform: "llmq_testnet_platform",
	LlmqtypeDevnetPlatform:  "llmq_devnet_platform",
}

// LLMQParams is the static configuration of one LLMQ type: quorum size,
// signature threshold, how many quorums of the type are kept actively
// signing, and the DKG interval (the rotation cycle length "c" used
// throughout §4.7).
type LLMQParams struct {
	Type                     LLMQType
	Size                     int
	Threshold                int
	SigningActiveQuorumCount int
	DKGInterval              uint32
	Rotating                 bool
}

// QuarterSize is Size/4, the number of members each of the four quarters
// (h-3c, h-2c, h-c, new) contributes to a rotated quorum.
func (p LLMQParams) QuarterSize() int {
	return p.Size / 4
}

// defaultLLMQParams is shared by every network's parameter table; networks
// differ only in which types are active (testnet.go's TestNetParams,
// DevNetParams and RegTestParams select different subsets of this same
// table via cloneLLMQParams).
var defaultLLMQParams = map[LLMQType]LLMQParams{
	Llmqtype50_60: {
		Type: Llmqtype50_60, Size: 50, Threshold: 30,
		SigningActiveQuorumCount: 24, DKGInterval: 24,
	},
	Llmqtype400_60: {
		Type: Llmqtype400_60, Size: 400, Threshold: 240,
		SigningActiveQuorumCount: 4, DKGInterval: 288,
	},
	Llmqtype400_85: {
		Type: Llmqtype400_85, Size: 400, Threshold: 340,
		SigningActiveQuorumCount: 4, DKGInterval: 576,
	},
	Llmqtype100_67: {
		Type: Llmqtype100_67, Size: 100, Threshold: 67,
		SigningActiveQuorumCount: 24, DKGInterval: 24,
	},
	Llmqtype60_75: {
		Type: Llmqtype60_75, Size: 60, Threshold: 45,
		SigningActiveQuorumCount: 32, DKGInterval: 24, Rotating: true,
	},
	Llmqtype25_67: {
		Type: Llmqtype25_67, Size: 25, Threshold: 17,
		SigningActiveQuorumCount: 24, DKGInterval: 24, Rotating: true,
	},
	// The remaining types back testnet/devnet/regtest only, at the
	// small sizes Dash's own test networks use so DKG rounds finish in
	// a handful of blocks instead of hundreds.
	LlmqtypeTest: {
		Type: LlmqtypeTest, Size: 3, Threshold: 2,
		SigningActiveQuorumCount: 2, DKGInterval: 24,
	},
	LlmqtypeDevnet: {
		Type: LlmqtypeDevnet, Size: 12, Threshold: 6,
		SigningActiveQuorumCount: 4, DKGInterval: 24,
	},
	LlmqtypeTestV17: {
		Type: LlmqtypeTestV17, Size: 3, Threshold: 2,
		SigningActiveQuorumCount: 2, DKGInterval: 24,
	},
	LlmqtypeTestDIP0024: {
		Type: LlmqtypeTestDIP0024, Size: 4, Threshold: 2,
		SigningActiveQuorumCount: 2, DKGInterval: 24, Rotating: true,
	},
	LlmqtypeTestInstantSend: {
		Type: LlmqtypeTestInstantSend, Size: 3, Threshold: 2,
		SigningActiveQuorumCount: 2, DKGInterval: 24,
	},
	LlmqtypeDevnetDIP0024: {
		Type: LlmqtypeDevnetDIP0024, Size: 8, Threshold: 4,
		SigningActiveQuorumCount: 4, DKGInterval: 24, Rotating: true,
	},
	LlmqtypeTestnetPlatform: {
		Type: LlmqtypeTestnetPlatform, Size: 3, Threshold: 2,
		SigningActiveQuorumCount: 2, DKGInterval: 24,
	},
	LlmqtypeDevnetPlatform: {
		Type: LlmqtypeDevnetPlatform, Size: 12, Threshold: 6,
		SigningActiveQuorumCount: 4, DKGInterval: 24,
	},
}

// IsRotatingQuorumType reports whether t is reconstructed via the
// quarter-cycle rotation algorithm (§4.7) rather than simple top-N score
// selection (§4.6).
func (t LLMQType) IsRotatingQuorumType(n *Network) bool {
	p, ok := n.LLMQParams[t]
	return ok && p.Rotating
}
