// Copyright (c) 2026, the JWJSON authors.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package data

type stringInterner struct {
	vals map[string]string
}

func (i *stringInterner) Intern(str string) string {
	out, ok := i.vals[str]
	if ok {
		return out
	}
	i.vals[str] = str
	return str
}

func stringInternerNew() *stringInterner {
	return &stringInterner{
		vals: make(map[string]string),
	}
}

type valueInterner struct {
	vals map[interface{}]*Value
}

// Intern deduplicates scalar values during decode. Containers and
// error variants are returned as-is.
func (i *valueInterner) Intern(val *Value) *Value {
	switch val.data.(type) {
	case nil, string, float64, bool:
	default:
		return val
	}
	out, ok := i.vals[val.data]
	if ok {
		return out
	}
	i.vals[val.data] = val
	return val
}

func valueInternerNew() *valueInterner {
	return &valueInterner{
		vals: make(map[interface{}]*Value),
	}
}
