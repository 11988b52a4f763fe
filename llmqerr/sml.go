// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package llmqerr implements the two structured error taxonomies this
// module reports: SmlError for diff-application failures and
// QuorumValidationError for commitment/membership validation failures.
// Both follow the same shape as the teacher's wire.MessageError /
// blockchain.RuleError: a Kind enum with a String() method plus an outer
// struct that can wrap an underlying cause, so callers can match on kind
// with errors.Is.
package llmqerr

import "fmt"

// SmlKind identifies the class of an SmlError.
type SmlKind int

const (
	ErrBaseBlockNotGenesis SmlKind = iota
	ErrBlockHashLookupFailed
	ErrIncompleteMnListDiff
	ErrMissingStartMasternodeList
	ErrBaseBlockHashMismatch
	ErrCorruptedCodeExecution
	ErrFeatureNotTurnedOn
)

var smlKindStrings = map[SmlKind]string{
	ErrBaseBlockNotGenesis:        "base block is not genesis",
	ErrBlockHashLookupFailed:      "block hash lookup failed",
	ErrIncompleteMnListDiff:       "incomplete masternode list diff",
	ErrMissingStartMasternodeList: "missing start masternode list",
	ErrBaseBlockHashMismatch:      "base block hash mismatch",
	ErrCorruptedCodeExecution:     "corrupted code execution",
	ErrFeatureNotTurnedOn:         "feature not turned on",
}

func (k SmlKind) String() string {
	if s, ok := smlKindStrings[k]; ok {
		return s
	}
	return "unknown SmlError"
}

// SmlError reports a structural failure of masternode list diff
// application (§7).
type SmlError struct {
	Kind        SmlKind
	Description string

	// Expected/Found populate ErrBaseBlockHashMismatch.
	Expected interface{}
	Found    interface{}
}

func (e *SmlError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Description)
	}
	if e.Kind == ErrBaseBlockHashMismatch {
		return fmt.Sprintf("%s: expected %v, found %v", e.Kind, e.Expected, e.Found)
	}
	return e.Kind.String()
}

// Is supports errors.Is(err, &SmlError{Kind: X}) comparisons that ignore
// the payload fields.
func (e *SmlError) Is(target error) bool {
	other, ok := target.(*SmlError)
	return ok && other.Kind == e.Kind
}

// NewSmlError builds an SmlError of the given kind with an optional
// formatted description.
func NewSmlError(kind SmlKind, format string, args ...interface{}) *SmlError {
	return &SmlError{Kind: kind, Description: fmt.Sprintf(format, args...)}
}

// NewBaseBlockHashMismatch builds the one SmlError kind that carries a
// structured payload rather than a free-form description.
func NewBaseBlockHashMismatch(expected, found interface{}) *SmlError {
	return &SmlError{Kind: ErrBaseBlockHashMismatch, Expected: expected, Found: found}
}
