// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package membership

import (
	"fmt"
	"io"

	"github.com/dashpay/dashmnle/wire"
)

// maxActiveMembersLen and maxSkipListLen bound the two variable-length
// vectors a QuorumSnapshot carries on the wire, guarding decode against
// a hostile or corrupt length prefix. No LLMQ configuration approaches
// either ceiling.
const (
	maxActiveMembersLen = 4096
	maxSkipListLen      = 4096
)

// SkipListMode selects how a QuorumSnapshot's skip_list is interpreted
// when expanding the used/unused partition of a historical quarter into
// per-quorum-index member lists (§3, §4.7).
type SkipListMode int32

const (
	NoSkipping SkipListMode = 0
	SkipFirst  SkipListMode = 1
	SkipExcept SkipListMode = 2
	SkipAll    SkipListMode = 3
)

func (m SkipListMode) String() string {
	switch m {
	case NoSkipping:
		return "no-skipping"
	case SkipFirst:
		return "skip-first"
	case SkipExcept:
		return "skip-except"
	case SkipAll:
		return "skip-all"
	default:
		return fmt.Sprintf("SkipListMode(%d)", int32(m))
	}
}

// Snapshot is a QuorumSnapshot (§3): which of the masternodes active at a
// historical work-block were used in the quorum cycle at that time, and
// how the skip_list should be interpreted.
type Snapshot struct {
	SkipListMode        SkipListMode
	ActiveQuorumMembers []bool
	SkipList            []uint32
}

// BtcDecode decodes r into the receiver: skip_list_mode as a raw 4-byte
// signed integer, active_quorum_members as a compact-size-prefixed
// bitset, then skip_list as a compact-size-prefixed vector of uint32,
// matching the reference implementation's hand-written QuorumSnapshot
// codec.
func (s *Snapshot) BtcDecode(r io.Reader) error {
	var mode int32
	if err := wire.ReadElement(r, &mode); err != nil {
		return err
	}
	s.SkipListMode = SkipListMode(mode)

	activeCount, err := wire.ReadVarInt(r)
	if err != nil {
		return err
	}
	if activeCount > maxActiveMembersLen {
		return fmt.Errorf("membership: active_quorum_members exceeds decode cap")
	}
	s.ActiveQuorumMembers, err = wire.ReadFixedBitset(r, int(activeCount), maxActiveMembersLen)
	if err != nil {
		return err
	}

	skipCount, err := wire.ReadVarInt(r)
	if err != nil {
		return err
	}
	if skipCount > maxSkipListLen {
		return fmt.Errorf("membership: skip_list exceeds decode cap")
	}
	s.SkipList = make([]uint32, skipCount)
	for i := range s.SkipList {
		if err := wire.ReadElement(r, &s.SkipList[i]); err != nil {
			return err
		}
	}
	return nil
}

// BtcEncode encodes the receiver to w using the same field order
// BtcDecode reads.
func (s Snapshot) BtcEncode(w io.Writer) error {
	if err := wire.WriteElement(w, int32(s.SkipListMode)); err != nil {
		return err
	}
	if err := wire.WriteVarInt(w, uint64(len(s.ActiveQuorumMembers))); err != nil {
		return err
	}
	if err := wire.WriteFixedBitset(w, s.ActiveQuorumMembers); err != nil {
		return err
	}
	if err := wire.WriteVarInt(w, uint64(len(s.SkipList))); err != nil {
		return err
	}
	for _, v := range s.SkipList {
		if err := wire.WriteElement(w, v); err != nil {
			return err
		}
	}
	return nil
}
