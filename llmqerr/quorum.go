// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package llmqerr

import "fmt"

// QuorumKind identifies the class of a QuorumValidationError.
type QuorumKind int

const (
	ErrRequiredBlockNotPresent QuorumKind = iota
	ErrRequiredBlockHeightNotPresent
	ErrVerifyingMasternodeListNotPresent
	ErrRequiredMasternodeListNotPresent
	ErrRequiredChainLockNotPresent
	ErrInsufficientSigners
	ErrInsufficientValidMembers
	ErrMismatchedBitsetLengths
	ErrInvalidQuorumPublicKey
	ErrInvalidBLSPublicKey
	ErrInvalidBLSSignature
	ErrInvalidQuorumSignature
	ErrInvalidFinalSignature
	ErrAllCommitmentAggregatedSignatureNotValid
	ErrThresholdSignatureNotValid
	ErrRequiredSnapshotNotPresent
	ErrRequiredQuorumIndexNotPresent
	ErrExpectedOnlyRotatedQuorums
	ErrQuorumCorruptedCodeExecution
)

var quorumKindStrings = map[QuorumKind]string{
	ErrRequiredBlockNotPresent:                   "required block not present",
	ErrRequiredBlockHeightNotPresent:              "required block height not present",
	ErrVerifyingMasternodeListNotPresent:          "verifying masternode list not present",
	ErrRequiredMasternodeListNotPresent:           "required masternode list not present",
	ErrRequiredChainLockNotPresent:                "required chain lock not present",
	ErrInsufficientSigners:                        "insufficient signers",
	ErrInsufficientValidMembers:                   "insufficient valid members",
	ErrMismatchedBitsetLengths:                    "mismatched bitset lengths",
	ErrInvalidQuorumPublicKey:                     "invalid quorum public key",
	ErrInvalidBLSPublicKey:                        "invalid BLS public key",
	ErrInvalidBLSSignature:                        "invalid BLS signature",
	ErrInvalidQuorumSignature:                     "invalid quorum signature",
	ErrInvalidFinalSignature:                      "invalid final signature",
	ErrAllCommitmentAggregatedSignatureNotValid:   "all commitment aggregated signature not valid",
	ErrThresholdSignatureNotValid:                 "threshold signature not valid",
	ErrRequiredSnapshotNotPresent:                 "required snapshot not present",
	ErrRequiredQuorumIndexNotPresent:               "required quorum index not present",
	ErrExpectedOnlyRotatedQuorums:                 "expected only rotated quorums",
	ErrQuorumCorruptedCodeExecution:               "corrupted code execution",
}

func (k QuorumKind) String() string {
	if s, ok := quorumKindStrings[k]; ok {
		return s
	}
	return "unknown QuorumValidationError"
}

// QuorumValidationError reports a structural or cryptographic failure of
// commitment verification or membership derivation (§7). Skippable
// causes (missing block/list/ChainLock) are reported through this same
// type; the caller decides whether to surface Skipped or Invalid based
// on Kind (see llmqerr.IsSkippable).
type QuorumValidationError struct {
	Kind        QuorumKind
	Description string
	Required    int
	Found       int
}

func (e *QuorumValidationError) Error() string {
	switch e.Kind {
	case ErrInsufficientSigners, ErrInsufficientValidMembers:
		return fmt.Sprintf("%s: required %d, found %d", e.Kind, e.Required, e.Found)
	}
	if e.Description != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Description)
	}
	return e.Kind.String()
}

func (e *QuorumValidationError) Is(target error) bool {
	other, ok := target.(*QuorumValidationError)
	return ok && other.Kind == e.Kind
}

// NewQuorumError builds a QuorumValidationError of the given kind with an
// optional formatted description.
func NewQuorumError(kind QuorumKind, format string, args ...interface{}) *QuorumValidationError {
	return &QuorumValidationError{Kind: kind, Description: fmt.Sprintf(format, args...)}
}

// NewInsufficientError builds the two QuorumValidationError kinds that
// carry a required/found pair.
func NewInsufficientError(kind QuorumKind, required, found int) *QuorumValidationError {
	return &QuorumValidationError{Kind: kind, Required: required, Found: found}
}

// IsSkippable reports whether kind reflects a transient data gap (missing
// block, list or ChainLock) rather than a structural/cryptographic
// failure, per the propagation policy in §7: skippable causes become
// Skipped(reason) rather than Invalid(error) in a quorum's verified
// status.
func IsSkippable(kind QuorumKind) bool {
	switch kind {
	case ErrRequiredBlockNotPresent,
		ErrRequiredBlockHeightNotPresent,
		ErrVerifyingMasternodeListNotPresent,
		ErrRequiredMasternodeListNotPresent,
		ErrRequiredChainLockNotPresent,
		ErrRequiredSnapshotNotPresent:
		return true
	default:
		return false
	}
}
