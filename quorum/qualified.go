// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package quorum

import "github.com/dashpay/dashmnle/hashtypes"

// VerificationStatus is the verdict recorded against a qualified quorum
// entry after validation (§3, §4.9).
type VerificationStatus int

const (
	StatusUnknown VerificationStatus = iota
	StatusVerified
	StatusSkipped
	StatusInvalid
)

func (s VerificationStatus) String() string {
	switch s {
	case StatusVerified:
		return "verified"
	case StatusSkipped:
		return "skipped"
	case StatusInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Qualified pairs an Entry with its cached digests and verification
// status (QualifiedQuorumEntry, §3).
type Qualified struct {
	QuorumEntry    Entry
	CommitmentHash hashtypes.CommitmentHash
	EntryHash      hashtypes.Hash
	Status         VerificationStatus
	StatusReason   error
}

// NewQualified wraps entry, computing and caching its commitment and
// entry hashes once at construction, matching
// QualifiedMasternodeListEntry/QualifiedQuorumEntry's "caches are
// created once at entry construction" lifecycle rule (§3).
func NewQualified(entry Entry) (*Qualified, error) {
	commitmentHash, err := entry.CommitmentHash()
	if err != nil {
		return nil, err
	}
	entryHash, err := entry.EntryHash()
	if err != nil {
		return nil, err
	}
	return &Qualified{
		QuorumEntry:    entry,
		CommitmentHash: commitmentHash,
		EntryHash:      entryHash,
		Status:         StatusUnknown,
	}, nil
}

// UpdateStatus records the outcome of a validation pass: nil marks the
// quorum Verified; an error whose kind is skippable (per
// llmqerr.IsSkippable) marks it Skipped with that reason; any other
// error marks it Invalid with that reason.
func (q *Qualified) UpdateStatus(skippable bool, err error) {
	switch {
	case err == nil:
		q.Status = StatusVerified
		q.StatusReason = nil
	case skippable:
		q.Status = StatusSkipped
		q.StatusReason = err
	default:
		q.Status = StatusInvalid
		q.StatusReason = err
	}
}
