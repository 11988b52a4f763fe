// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnentry

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
)

// PeerAddress returns e's service address in host:port form, for use by a
// caller that wants to connect to or log about this masternode (§4.3
// FULL note).
func (e *Entry) PeerAddress() string {
	return e.ServiceAddress.String()
}

// ShortDescription returns a one-line debug summary of e built with
// fmt.Sprintf. It is spelled out in full (rather than implementing
// fmt.Stringer) so that logging call sites stay explicit; the full
// go-spew dump is DebugDump.
func (e *Entry) ShortDescription() string {
	return fmt.Sprintf("mnentry{pro_reg_tx=%s valid=%t type=%s addr=%s}",
		e.ProRegTxHash, e.IsValid, e.Type, e.PeerAddress())
}

// DebugDump returns a full field-by-field dump of e via go-spew, for use
// in debug-level logging of entries rejected during list diff
// application or quorum validation.
func (e *Entry) DebugDump() string {
	return spew.Sdump(e)
}
