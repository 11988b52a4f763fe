// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnlist

import (
	"github.com/dashpay/dashmnle/hashtypes"
	"github.com/dashpay/dashmnle/llmqerr"
)

// baseBlockMismatch reports that a diff's declared base block does not
// match the list it is being applied to (§4.4 precondition).
func baseBlockMismatch(have, want hashtypes.BlockHash) error {
	return llmqerr.NewBaseBlockHashMismatch(want, have)
}
