// Copyright (c) 2026, the JWJSON authors.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package data

func assert(expr bool, ifFalse func()) {
	if !expr {
		ifFalse()
	}
}
