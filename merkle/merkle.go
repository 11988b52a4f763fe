// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package merkle builds the double-SHA256 binary merkle trees used for the
// masternode-list and quorum-list roots carried in the coinbase special
// payload.
package merkle

import "github.com/dashpay/dashmnle/hashtypes"

// Root computes the merkle root over leaves in the order given. The last
// leaf of any level with an odd number of nodes is duplicated before
// hashing, matching the classic Bitcoin/Dash/Decred merkle tree
// construction. Root returns false as its second value when leaves is
// empty: there is no root to report, not an all-zero one.
func Root(leaves []hashtypes.Hash) (hashtypes.Hash, bool) {
	if len(leaves) == 0 {
		return hashtypes.Hash{}, false
	}

	level := make([]hashtypes.Hash, len(leaves))
	copy(level, leaves)

	for len(level) > 1 {
		if len(level)%2 != 0 {
			level = append(level, level[len(level)-1])
		}
		next := make([]hashtypes.Hash, 0, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			var buf [2 * hashtypes.Size]byte
			copy(buf[:hashtypes.Size], level[i][:])
			copy(buf[hashtypes.Size:], level[i+1][:])
			next = append(next, hashtypes.Sha256Double(buf[:]))
		}
		level = next
	}
	return level[0], true
}
