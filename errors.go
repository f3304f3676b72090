// Copyright (C) 2026, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package lrucache

import "errors"

// ErrInvalidConfiguration is returned by constructors given a capacity, size
// or rate that cannot describe a working cache or limiter.
var ErrInvalidConfiguration = errors.New("invalid configuration")
