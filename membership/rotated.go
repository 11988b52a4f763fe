// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package membership

import (
	"fmt"

	"github.com/dashpay/dashmnle/hashtypes"
	"github.com/dashpay/dashmnle/mnentry"
)

// Quarter holds, for each of a rotation cycle's N quorum indices, the
// members a single historical quarter contributes (§4.7).
type Quarter [][]*mnentry.Qualified

// chunkQuarters partitions concat into up to n chunks of quarterSize
// entries each (NoSkipping, §4.7).
func chunkQuarters(concat []*mnentry.Qualified, quarterSize, n int) Quarter {
	out := make(Quarter, n)
	for i := 0; i < n; i++ {
		start := i * quarterSize
		if start >= len(concat) {
			out[i] = nil
			continue
		}
		end := start + quarterSize
		if end > len(concat) {
			end = len(concat)
		}
		out[i] = append([]*mnentry.Qualified{}, concat[start:end]...)
	}
	return out
}

// applySkipExceptQuarters implements SkipExcept: keepList names the only
// indices of concat kept, up to quarterSize of them.
//
// Faithfully-preserved quirk (§4.7 FULL note, DESIGN.md Open Question 3):
// the same kept subset is used for every quorum index in the cycle
// rather than being re-partitioned per index.
func applySkipExceptQuarters(concat []*mnentry.Qualified, quarterSize, n int, keepList []uint32) Quarter {
	keep := make(map[int]bool, len(keepList))
	for _, idx := range keepList {
		keep[int(idx)] = true
	}

	var kept []*mnentry.Qualified
	for i, m := range concat {
		if keep[i] {
			kept = append(kept, m)
		}
	}
	if len(kept) > quarterSize {
		kept = kept[:quarterSize]
	}

	out := make(Quarter, n)
	for i := 0; i < n; i++ {
		out[i] = kept
	}
	return out
}

// applySkipFirstQuarters implements SkipFirst: skipList's entries are a
// running prefix sum of absolute skip positions into concat.
//
// Faithfully-preserved quirk (§4.7 FULL note, DESIGN.md Open Question 4):
// the walk cursor (idx) and skip cursor (skipIdx) are not reset between
// quorum indices; they thread through the whole loop.
func applySkipFirstQuarters(concat []*mnentry.Qualified, quarterSize, n int, skipList []uint32) Quarter {
	absoluteSkips := make(map[int]bool, len(skipList))
	running := 0
	for _, delta := range skipList {
		running += int(delta)
		absoluteSkips[running] = true
	}

	out := make(Quarter, n)
	idx := 0
	for i := 0; i < n; i++ {
		var members []*mnentry.Qualified
		for len(members) < quarterSize && idx < len(concat) {
			if absoluteSkips[idx] {
				idx++
				continue
			}
			members = append(members, concat[idx])
			idx++
		}
		out[i] = members
	}
	return out
}

// emptyQuarters returns n empty member lists (SkipAll, §4.7/§9).
func emptyQuarters(n int) Quarter {
	return make(Quarter, n)
}

// quarterFromSnapshot reconstructs one historical quarter from a
// work-block's ranked (descending by score) masternode list and its
// stored snapshot (§4.7 "Quarter reconstruction").
func quarterFromSnapshot(ranked []scoredMember, snapshot Snapshot, quarterSize, n int) (Quarter, error) {
	var used, unused []*mnentry.Qualified
	for i, m := range ranked {
		if i < len(snapshot.ActiveQuorumMembers) && snapshot.ActiveQuorumMembers[i] {
			used = append(used, m.entry)
		} else {
			unused = append(unused, m.entry)
		}
	}
	concat := append(append([]*mnentry.Qualified{}, unused...), used...)

	switch snapshot.SkipListMode {
	case NoSkipping:
		return chunkQuarters(concat, quarterSize, n), nil
	case SkipExcept:
		return applySkipExceptQuarters(concat, quarterSize, n, snapshot.SkipList), nil
	case SkipFirst:
		return applySkipFirstQuarters(concat, quarterSize, n, snapshot.SkipList), nil
	case SkipAll:
		log.Debugf("rotated quarter reconstruction: snapshot skip_list_mode is SkipAll, emitting %d empty quarters", n)
		return emptyQuarters(n), nil
	default:
		return nil, fmt.Errorf("membership: unknown skip list mode %s", snapshot.SkipListMode)
	}
}

// usageInfo is the bookkeeping the "New" quarter reconstruction needs
// from the three already-computed historical quarters: which
// masternodes were used anywhere in the three quarters (dedup,
// first-seen order) and which were used at each specific quorum index.
type usageInfo struct {
	usedAnywhere []*mnentry.Qualified
	usedAtIndex  []map[hashtypes.Hash]bool
}

func computeUsageInfo(priorQuarters [3]Quarter, n int) usageInfo {
	seen := make(map[hashtypes.Hash]bool)
	var usedAnywhere []*mnentry.Qualified
	usedAtIndex := make([]map[hashtypes.Hash]bool, n)
	for i := range usedAtIndex {
		usedAtIndex[i] = make(map[hashtypes.Hash]bool)
	}

	for _, quarter := range priorQuarters {
		for i := 0; i < n && i < len(quarter); i++ {
			for _, m := range quarter[i] {
				key := hashtypes.Reversed(m.Entry.ProRegTxHash)
				usedAtIndex[i][key] = true
				if !seen[key] {
					seen[key] = true
					usedAnywhere = append(usedAnywhere, m)
				}
			}
		}
	}
	return usageInfo{usedAnywhere: usedAnywhere, usedAtIndex: usedAtIndex}
}

// newQuarter reconstructs the "New" quarter (index 0 of §4.7's four
// quarters) from the masternode list ranked at work_height(0) and the
// three already-reconstructed historical quarters.
func newQuarter(ranked []scoredMember, priorQuarters [3]Quarter, quarterSize, n int) Quarter {
	info := computeUsageInfo(priorQuarters, n)

	usedAnywhere := make(map[hashtypes.Hash]bool, len(info.usedAnywhere))
	for _, m := range info.usedAnywhere {
		usedAnywhere[hashtypes.Reversed(m.Entry.ProRegTxHash)] = true
	}

	var used, unused []*mnentry.Qualified
	for _, m := range ranked {
		key := hashtypes.Reversed(m.entry.Entry.ProRegTxHash)
		if usedAnywhere[key] {
			used = append(used, m.entry)
		} else {
			unused = append(unused, m.entry)
		}
	}
	concat := append(append([]*mnentry.Qualified{}, unused...), used...)

	out := make(Quarter, n)
	if len(concat) == 0 {
		return out
	}

	// idx is declared once, outside the quorum-index loop, and wrapped
	// via modulo rather than reset per index: each quorum index resumes
	// the walk over concat exactly where the previous index left off,
	// mirroring the reference implementation's persistent cursor.
	idx := 0
	for i := 0; i < n; i++ {
		var members []*mnentry.Qualified
		for step := 0; step < len(concat) && len(members) < quarterSize; step++ {
			m := concat[idx]
			key := hashtypes.Reversed(m.Entry.ProRegTxHash)
			if !info.usedAtIndex[i][key] {
				members = append(members, m)
			}
			idx = (idx + 1) % len(concat)
		}
		if len(members) < quarterSize {
			log.Debugf("new quarter reconstruction: index %d only found %d of %d members", i, len(members), quarterSize)
		}
		out[i] = members
	}
	return out
}

// AssembleMembers concatenates, for each quorum index, the four
// quarters in order h-3c, h-2c, h-c, new (§4.7 "Assembling the quorum
// members").
func AssembleMembers(h3c, h2c, hc, newQ Quarter, n int) [][]*mnentry.Qualified {
	out := make([][]*mnentry.Qualified, n)
	for i := 0; i < n; i++ {
		var members []*mnentry.Qualified
		if i < len(h3c) {
			members = append(members, h3c[i]...)
		}
		if i < len(h2c) {
			members = append(members, h2c[i]...)
		}
		if i < len(hc) {
			members = append(members, hc[i]...)
		}
		if i < len(newQ) {
			members = append(members, newQ[i]...)
		}
		out[i] = members
	}
	return out
}
