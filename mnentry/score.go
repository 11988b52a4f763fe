// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnentry

import (
	"github.com/decred/dcrd/math/uint256"

	"github.com/dashpay/dashmnle/hashtypes"
)

// ConfirmedHashHashedWithProRegTx returns sha256(pro_reg_tx_hash ||
// confirmed_hash), the value Score is built from. It reports false when e
// has no confirmed hash, in which case e has no score and must be
// excluded from quorum member selection (§4.3).
func (e *Entry) ConfirmedHashHashedWithProRegTx() (hashtypes.Hash, bool) {
	if e.ConfirmedHash == nil {
		return hashtypes.Hash{}, false
	}
	buf := make([]byte, 0, hashtypes.Size*2)
	buf = append(buf, e.ProRegTxHash[:]...)
	buf = append(buf, e.ConfirmedHash[:]...)
	return hashtypes.Sha256Single(buf), true
}

// ScoreDigest returns the raw (wire-order, not byte-reversed) score
// digest of e under quorumModifier: sha256(
// confirmed_hash_hashed_with_pro_reg_tx || quorum_modifier). It reports
// false when e is ineligible to be scored at all — no confirmed hash, or
// is_valid is false (§4.3, §4.6 step 3).
func (e *Entry) ScoreDigest(quorumModifier hashtypes.Hash) (hashtypes.Hash, bool) {
	if !e.IsValid {
		return hashtypes.Hash{}, false
	}
	confirmedHashed, ok := e.ConfirmedHashHashedWithProRegTx()
	if !ok {
		return hashtypes.Hash{}, false
	}

	buf := make([]byte, 0, hashtypes.Size*2)
	buf = append(buf, confirmedHashed[:]...)
	buf = append(buf, quorumModifier[:]...)
	return hashtypes.Sha256Single(buf), true
}

// Score computes the quorum-member-selection score of e under
// quorumModifier as a 256-bit integer formed from the byte-reversed
// score digest (§4.3, §4.6 step 4's "descending byte-reversed score"
// ranking). It reports false under the same conditions as ScoreDigest.
func (e *Entry) Score(quorumModifier hashtypes.Hash) (uint256.Uint256, bool) {
	digest, ok := e.ScoreDigest(quorumModifier)
	if !ok {
		return uint256.Uint256{}, false
	}
	reversed := hashtypes.Reversed(digest)
	var score uint256.Uint256
	score.SetBytes((*[hashtypes.Size]byte)(&reversed))
	return score, true
}

// CompareScores orders two scores the way ascending-score sorts in this
// module expect: returns -1, 0 or 1 for a<b, a==b, a>b. Member selection
// (§4.6) wants the highest scores first, so callers sort descending by
// this comparator (or ascending and take the tail).
func CompareScores(a, b uint256.Uint256) int {
	return a.Cmp(&b)
}
