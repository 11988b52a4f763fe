// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package message

import (
	"bytes"
	"testing"

	"github.com/dashpay/dashmnle/bls"
	"github.com/dashpay/dashmnle/chaincfg"
	"github.com/dashpay/dashmnle/hashtypes"
	"github.com/dashpay/dashmnle/mnentry"
	"github.com/dashpay/dashmnle/quorum"
)

func hashFromByte(b byte) (h hashtypes.Hash) {
	h[0] = b
	h[1] = b ^ 0xaa
	return h
}

// TestGetMnListDiffRoundTrip covers the getmnlistd request codec.
func TestGetMnListDiffRoundTrip(t *testing.T) {
	in := GetMnListDiff{
		BaseBlockHash: hashFromByte(0x01),
		BlockHash:     hashFromByte(0x02),
	}

	var buf bytes.Buffer
	if err := in.BtcEncode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}

	var out GetMnListDiff
	if err := out.BtcDecode(&buf); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: got %+v, want %+v", out, in)
	}
}

// TestMnListDiffRoundTrip covers scenario 3: a synthetic MnListDiff
// carrying a masternode addition, a quorum addition and a deletion of
// each kind encodes, decodes, and re-encodes to the exact same bytes.
func TestMnListDiffRoundTrip(t *testing.T) {
	quorumIndex := int16(1)
	in := MnListDiff{
		Version:           2,
		BaseBlockHash:     hashFromByte(0x10),
		BlockHash:         hashFromByte(0x11),
		TotalTransactions: 3,
		MerkleHashes:      []hashtypes.MerkleRoot{hashFromByte(0x12), hashFromByte(0x13)},
		MerkleFlags:       []byte{0x05, 0xff},
		CoinbaseTx:        []byte{0xde, 0xad, 0xbe, 0xef},
		DeletedMasternodes: []hashtypes.ProTxHash{
			hashFromByte(0x20),
		},
		NewMasternodes: []mnentry.Entry{
			{
				Version:      2,
				ProRegTxHash: hashFromByte(0x21),
				IsValid:      true,
			},
		},
		DeletedQuorums: []DeletedQuorum{
			{LLMQType: chaincfg.Llmqtype50_60, QuorumHash: hashFromByte(0x30)},
		},
		NewQuorums: []quorum.Entry{
			{
				Version:                           2,
				LLMQType:                          chaincfg.Llmqtype60_75,
				QuorumHash:                        hashFromByte(0x31),
				QuorumIndex:                       &quorumIndex,
				Signers:                           []bool{true, false, true},
				ValidMembers:                      []bool{true, true, true},
				QuorumPublicKey:                   bls.PublicKey{0x01},
				QuorumVVecHash:                    hashFromByte(0x32),
				ThresholdSig:                      bls.Signature{0x02},
				AllCommitmentAggregatedSignature: bls.Signature{0x03},
			},
		},
		ChainLockSignatures: []bls.Signature{{0x04}},
	}

	var firstPass bytes.Buffer
	if err := in.BtcEncode(&firstPass); err != nil {
		t.Fatalf("first encode: %v", err)
	}

	var decoded MnListDiff
	if err := decoded.BtcDecode(bytes.NewReader(firstPass.Bytes())); err != nil {
		t.Fatalf("decode: %v", err)
	}

	var secondPass bytes.Buffer
	if err := decoded.BtcEncode(&secondPass); err != nil {
		t.Fatalf("second encode: %v", err)
	}

	if !bytes.Equal(firstPass.Bytes(), secondPass.Bytes()) {
		t.Fatalf("round trip bytes differ: first %x, second %x", firstPass.Bytes(), secondPass.Bytes())
	}

	reduced := decoded.Reduce()
	if reduced.BaseBlockHash != in.BaseBlockHash || reduced.BlockHash != in.BlockHash {
		t.Fatalf("reduce dropped/changed base or block hash")
	}
	if len(reduced.NewMasternodes) != 1 || len(reduced.NewQuorums) != 1 || len(reduced.DeletedQuorums) != 1 {
		t.Fatalf("reduce dropped additions/removals: %+v", reduced)
	}
}
