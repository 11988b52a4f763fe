// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package membership

import (
	"github.com/decred/dcrd/math/uint256"

	"github.com/dashpay/dashmnle/mnentry"
)

// scoreValue is the 256-bit score type mnentry.Entry.Score produces.
type scoreValue = uint256.Uint256

func compareScores(a, b scoreValue) int {
	return mnentry.CompareScores(a, b)
}
