// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine_test

import (
	"fmt"

	blst "github.com/supranational/blst/bindings/go"

	"github.com/dashpay/dashmnle/bls"
)

// testBasicDST mirrors bls.go's unexported dstBasic: the Basic-scheme
// hash-to-curve domain separation tag every signature produced here is
// signed and verified under, matching bls.VerifyAggregate's fixed-DST
// aggregate check.
const testBasicDST = "BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_NUL_"

// testKeypair is a throwaway BLS12-381 keypair generated for a single
// test run, used to produce genuinely-verifying signatures for the
// quorum-verification scenario tests rather than fabricated bytes.
type testKeypair struct {
	sk *blst.SecretKey
	pk bls.PublicKey
}

// newTestKeypair derives a deterministic keypair from seed, so a given
// test's fixture is reproducible without calling into a random source.
func newTestKeypair(seed byte) testKeypair {
	ikm := make([]byte, 32)
	for i := range ikm {
		ikm[i] = seed
	}
	sk := blst.KeyGen(ikm)
	pkAffine := new(blst.P1Affine).From(sk)

	var pk bls.PublicKey
	copy(pk[:], pkAffine.Compress())
	return testKeypair{sk: sk, pk: pk}
}

// sign produces a Basic-scheme signature by kp over msg.
func (kp testKeypair) sign(msg []byte) bls.Signature {
	sigAffine := new(blst.P2Affine).Sign(kp.sk, msg, []byte(testBasicDST))
	var sig bls.Signature
	copy(sig[:], sigAffine.Compress())
	return sig
}

// aggregateSignatures combines sigs into a single aggregate signature,
// the form bls.VerifyAggregate checks against a signer-key set.
func aggregateSignatures(sigs []bls.Signature) (bls.Signature, error) {
	points := make([]*blst.P2Affine, len(sigs))
	for i, s := range sigs {
		p := new(blst.P2Affine).Uncompress(s[:])
		if p == nil {
			return bls.Signature{}, fmt.Errorf("test fixture: invalid signature at index %d", i)
		}
		points[i] = p
	}

	var agg blst.P2Aggregate
	if !agg.Aggregate(points, true) {
		return bls.Signature{}, fmt.Errorf("test fixture: signature aggregation failed")
	}

	var out bls.Signature
	copy(out[:], agg.ToAffine().Compress())
	return out, nil
}
