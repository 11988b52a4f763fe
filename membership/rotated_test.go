// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package membership

import (
	"testing"

	"github.com/dashpay/dashmnle/hashtypes"
	"github.com/dashpay/dashmnle/mnentry"
)

func qualifiedWithProRegTx(b byte) *mnentry.Qualified {
	var h hashtypes.Hash
	h[0] = b
	e := mnentry.Entry{ProRegTxHash: h}
	q, err := mnentry.NewQualified(e)
	if err != nil {
		panic(err)
	}
	return q
}

func sampleConcat(n int) []*mnentry.Qualified {
	out := make([]*mnentry.Qualified, n)
	for i := 0; i < n; i++ {
		out[i] = qualifiedWithProRegTx(byte(i + 1))
	}
	return out
}

func TestChunkQuartersSplitsEvenly(t *testing.T) {
	concat := sampleConcat(12)
	quarters := chunkQuarters(concat, 3, 4)
	if len(quarters) != 4 {
		t.Fatalf("len(quarters) = %d, want 4", len(quarters))
	}
	for i, q := range quarters {
		if len(q) != 3 {
			t.Fatalf("quarter %d has %d members, want 3", i, len(q))
		}
	}
	if quarters[0][0] != concat[0] || quarters[3][2] != concat[11] {
		t.Fatal("chunk boundaries are not in source order")
	}
}

func TestChunkQuartersPartialTail(t *testing.T) {
	concat := sampleConcat(5)
	quarters := chunkQuarters(concat, 3, 3)
	if len(quarters[0]) != 3 || len(quarters[1]) != 2 || len(quarters[2]) != 0 {
		t.Fatalf("unexpected chunk sizes: %d %d %d", len(quarters[0]), len(quarters[1]), len(quarters[2]))
	}
}

func TestApplySkipExceptUsesSameSubsetForEveryIndex(t *testing.T) {
	concat := sampleConcat(10)
	keep := []uint32{1, 3, 5, 7}
	quarters := applySkipExceptQuarters(concat, 4, 3, keep)
	if len(quarters) != 3 {
		t.Fatalf("len(quarters) = %d, want 3", len(quarters))
	}
	for i := 1; i < len(quarters); i++ {
		if len(quarters[i]) != len(quarters[0]) {
			t.Fatalf("quarter %d has a different size than quarter 0: preserved quirk requires an identical subset", i)
		}
		for j := range quarters[0] {
			if quarters[i][j] != quarters[0][j] {
				t.Fatalf("quarter %d diverges from quarter 0 at position %d: preserved quirk requires an identical subset", i, j)
			}
		}
	}
	if len(quarters[0]) != 4 {
		t.Fatalf("kept subset size = %d, want 4 (one per keep index)", len(quarters[0]))
	}
}

func TestApplySkipFirstCursorPersistsAcrossQuorums(t *testing.T) {
	concat := sampleConcat(20)
	// Skip list [2] means: skip absolute position 2 — one skip total.
	quarters := applySkipFirstQuarters(concat, 5, 3, []uint32{2})

	var allMembers []*mnentry.Qualified
	for _, q := range quarters {
		allMembers = append(allMembers, q...)
	}
	if len(allMembers) != 15 {
		t.Fatalf("total assembled members = %d, want 15 (3 quorums * 5, cursor shared)", len(allMembers))
	}
	if allMembers[0] != concat[0] || allMembers[1] != concat[1] {
		t.Fatalf("expected the first two entries to be concat[0], concat[1] before the skip")
	}
	// concat[2] is skipped; the third retained member should be concat[3].
	if allMembers[2] != concat[3] {
		t.Fatalf("expected the skipped index to be honored exactly once")
	}
	// Quorum 0 consumed concat[0..5] (one skip); a shared cursor makes
	// quorum 1 continue at concat[6] instead of restarting at concat[0].
	if quarters[1][0] != concat[6] {
		t.Fatalf("expected quorum 1 to start at concat[6], where quorum 0's walk stopped")
	}
}

func TestEmptyQuartersForSkipAll(t *testing.T) {
	quarters := emptyQuarters(4)
	if len(quarters) != 4 {
		t.Fatalf("len(quarters) = %d, want 4", len(quarters))
	}
	for _, q := range quarters {
		if len(q) != 0 {
			t.Fatal("expected every SkipAll quarter to be empty")
		}
	}
}
