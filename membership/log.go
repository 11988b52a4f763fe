// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package membership

import "github.com/decred/slog"

// log is this package's subsystem logger, disabled by default. A host
// wires in a real backend by calling UseLogger, matching
// the dcrd family's per-package logger convention.
var log = slog.Disabled

// UseLogger sets the subsystem logger used by this package.
func UseLogger(logger slog.Logger) {
	log = logger
}
