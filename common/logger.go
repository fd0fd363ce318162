// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package common

import (
	"github.com/ipfs/go-log"
)

// Logger is the shared logger of the mix-net packages. The level is
// configured externally with log.SetLogLevel("vmn", ...).
var Logger = log.Logger("vmn")
