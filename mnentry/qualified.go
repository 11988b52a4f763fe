// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnentry

import "github.com/dashpay/dashmnle/hashtypes"

// Qualified pairs a masternode entry with its cached derived digests
// (QualifiedMasternodeListEntry, §3): the entry hash and the
// confirmed-hash-hashed-with-pro-reg-tx value Score is built from. Both
// are computed once at construction, matching "caches are created once
// at entry construction" (§3 Lifecycles).
type Qualified struct {
	Entry                             Entry
	EntryHash                         hashtypes.Hash
	ConfirmedHashHashedWithProRegTx   hashtypes.Hash
	HasConfirmedHash                  bool
}

// NewQualified wraps entry, computing and caching its entry hash and, if
// present, its confirmed-hash-hashed-with-pro-reg-tx value.
func NewQualified(entry Entry) (*Qualified, error) {
	entryHash, err := entry.EntryHash()
	if err != nil {
		return nil, err
	}
	confirmedHashed, ok := entry.ConfirmedHashHashedWithProRegTx()
	return &Qualified{
		Entry:                           entry,
		EntryHash:                       entryHash,
		ConfirmedHashHashedWithProRegTx: confirmedHashed,
		HasConfirmedHash:                ok,
	}, nil
}
