// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package quorum

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
)

func boolsFromBits(n int, set ...int) []bool {
	out := make([]bool, n)
	for _, i := range set {
		out[i] = true
	}
	return out
}

func TestCommitmentPayloadSizeV1(t *testing.T) {
	payload := CommitmentPayload{
		Version: 0,
		Height:  0,
		Entry: Entry{
			Version:       1,
			LLMQType:      0, // Unknown
			Signers:       boolsFromBits(5, 0, 2, 3),
			ValidMembers:  boolsFromBits(4, 1, 3),
		},
	}

	if got := payload.Size(); got != 317 {
		t.Fatalf("Size() = %d, want 317\n%s", got, spew.Sdump(payload))
	}

	raw, err := payload.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if len(raw) != 317 {
		t.Fatalf("len(Bytes()) = %d, want 317", len(raw))
	}
}

func TestCommitmentPayloadSizeV2WithQuorumIndex(t *testing.T) {
	idx := int16(1)
	payload := CommitmentPayload{
		Version: 0,
		Height:  0,
		Entry: Entry{
			Version:      2,
			LLMQType:     0,
			QuorumIndex:  &idx,
			Signers:      boolsFromBits(7, 0, 2, 3, 6),
			ValidMembers: boolsFromBits(6, 1, 3, 5),
		},
	}

	if got := payload.Size(); got != 319 {
		t.Fatalf("Size() = %d, want 319\n%s", got, spew.Sdump(payload))
	}

	raw, err := payload.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if len(raw) != 319 {
		t.Fatalf("len(Bytes()) = %d, want 319", len(raw))
	}
}

func TestCommitmentHashExcludesSigners(t *testing.T) {
	base := Entry{
		Version:      1,
		LLMQType:     0,
		Signers:      boolsFromBits(5, 0, 1),
		ValidMembers: boolsFromBits(4, 2, 3),
	}
	altSigners := base
	altSigners.Signers = boolsFromBits(5, 2, 3, 4)

	h1, err := base.CommitmentHash()
	if err != nil {
		t.Fatal(err)
	}
	h2, err := altSigners.CommitmentHash()
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Fatalf("commitment hash changed when only signers changed: %x != %x", h1, h2)
	}

	e1, err := base.EntryHash()
	if err != nil {
		t.Fatal(err)
	}
	e2, err := altSigners.EntryHash()
	if err != nil {
		t.Fatal(err)
	}
	if e1 == e2 {
		t.Fatalf("entry hash did not change when signers changed")
	}
}
