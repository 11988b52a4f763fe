// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import "github.com/dashpay/dashmnle/hashtypes"

// Network groups the parameters the engine needs to interpret a chain's
// masternode list and quorum history: which LLMQ types exist, which ones
// back ChainLocks/InstantSend/Platform, the genesis block hash (the base
// every initializing diff must chain from), and the height at which Core
// v20's quorum-modifier scheme (§4.5) takes effect.
type Network struct {
	Name                    string
	GenesisHash             hashtypes.BlockHash
	CoreV20ActivationHeight uint32
	LLMQParams              map[LLMQType]LLMQParams
	ChainLocksType          LLMQType
	ISDLockType             LLMQType
	PlatformType            LLMQType
}

// IsLLMQType reports whether t is a configured LLMQ type on n.
func (n *Network) IsLLMQType(t LLMQType) bool {
	_, ok := n.LLMQParams[t]
	return ok
}

// IsISDLockType reports whether t is the type used for InstantSend locks
// on n.
func (n *Network) IsISDLockType(t LLMQType) bool {
	return t == n.ISDLockType
}

// ChainLocksLLMQType returns the LLMQ type backing ChainLocks on n.
func (n *Network) ChainLocksLLMQType() LLMQType {
	return n.ChainLocksType
}

// PlatformLLMQType returns the LLMQ type reserved for Platform (high
// performance) masternodes on n.
func (n *Network) PlatformLLMQType() LLMQType {
	return n.PlatformType
}

// IsCoreV20Active reports whether the Core v20 quorum-modifier scheme
// (§4.5) is active at height.
func (n *Network) IsCoreV20Active(height uint32) bool {
	return n.CoreV20ActivationHeight != 0 && height >= n.CoreV20ActivationHeight
}

// Params looks up the static LLMQ parameters for t, reporting false if t
// is not configured on n.
func (n *Network) Params(t LLMQType) (LLMQParams, bool) {
	p, ok := n.LLMQParams[t]
	return p, ok
}

func cloneLLMQParams(types ...LLMQType) map[LLMQType]LLMQParams {
	out := make(map[LLMQType]LLMQParams, len(types))
	for _, t := range types {
		out[t] = defaultLLMQParams[t]
	}
	return out
}
