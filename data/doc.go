// Copyright (c) 2026, the JWJSON authors.
//
// SPDX-License-Identifier: MPL-2.0

// Package data implements a convenient object model for interacting with
// arbitrary JSON documents. The Documents, Objects, and Arrays in this
// library are immutable. This means that updating the structure will
// yield a new copy with the changes made, this is made efficient by
// sharing much of the structure of the new object with the old one. The
// library is based on the central Value type that holds exactly one of
// the JSON variants: Object, Array, string, number, boolean, or null.
// This may be thought of as a restricted form of the go interface{}
// type. A seventh variant carries an error; failed lookups and invalid
// inputs are encoded as Values instead of being raised, so chains of
// accesses stay total and a caller only has to check for failure once
// at the end. The provided Document type allows for complex operations
// based on JSON Pointer (RFC 6901) paths.
package data
