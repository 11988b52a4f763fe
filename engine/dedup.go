// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine

import (
	"github.com/decred/dcrd/container/apbf"
)

// commitmentDedupFalsePositiveRate is the false positive rate for the
// optional recently-seen-commitment filter (UseCommitmentDedup). A false
// positive only costs a spurious re-verification of a commitment that
// was actually already seen, never a false Verified verdict, so a
// comparatively loose rate is acceptable.
const commitmentDedupFalsePositiveRate = 0.01

// UseCommitmentDedup enables an age-partitioned bloom filter that
// remembers which rotated quorum commitment hashes e has already
// verified cleanly, sized for maxElements entries. It is off by default
// (a fresh Engine never allocates one).
//
// Multiple peers routinely relay the same QRINFO bundle for a rotation
// cycle that hasn't advanced yet; once enabled, verifyRotationCycle
// skips re-running the BLS aggregate and threshold signature checks for
// a commitment hash it has already seen verify cleanly, trusting the
// earlier verdict instead of redoing the expensive pairing operations.
func (e *Engine) UseCommitmentDedup(maxElements uint32) {
	e.dedupMu.Lock()
	defer e.dedupMu.Unlock()
	e.commitmentDedup = apbf.NewFilter(maxElements, commitmentDedupFalsePositiveRate)
}

// commitmentSeen reports whether commitmentHash has already been
// recorded as verified. Returns false (never skip) when dedup isn't
// enabled.
func (e *Engine) commitmentSeen(commitmentHash []byte) bool {
	e.dedupMu.Lock()
	defer e.dedupMu.Unlock()
	if e.commitmentDedup == nil {
		return false
	}
	return e.commitmentDedup.Contains(commitmentHash)
}

// markCommitmentSeen records commitmentHash as verified, if dedup is
// enabled.
func (e *Engine) markCommitmentSeen(commitmentHash []byte) {
	e.dedupMu.Lock()
	defer e.dedupMu.Unlock()
	if e.commitmentDedup == nil {
		return
	}
	e.commitmentDedup.Add(commitmentHash)
}
