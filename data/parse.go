// Copyright (c) 2026, the JWJSON authors.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package data

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"unicode/utf8"
)

// Parse decodes JSON text into a value. Any single RFC 8259 value is
// accepted at the top level, fragments included, so "true", "42" and
// "\"hi\"" parse just as documents do. Parse is total: text that is
// not valid UTF-8 yields the error variant carrying
// ErrInvalidEncoding, text that is not well-formed JSON, the empty
// input included, yields ErrInvalidJSON with the decoder's diagnosis
// as its cause.
func Parse(text []byte) *Value {
	if !utf8.Valid(text) {
		return errorValue(errInvalidEncoding)
	}
	if !json.Valid(text) {
		return errorValue(invalidJSONError(syntaxCause(text)))
	}
	val := valueNew(nil)
	err := val.unmarshalJSON(text, stringInternerNew(), valueInternerNew())
	if err != nil {
		return errorValue(invalidJSONError(err))
	}
	return val
}

// ParseString is Parse for string input.
func ParseString(text string) *Value {
	return Parse([]byte(text))
}

// syntaxCause reruns the decoder over known-invalid text to recover
// its error value.
func syntaxCause(text []byte) error {
	return json.Unmarshal(text, new(interface{}))
}

func (val *Value) unmarshalJSON(
	msg []byte,
	strs *stringInterner,
	vals *valueInterner,
) error {
	msg = bytes.TrimSpace(msg)
	if len(msg) == 0 {
		return errors.New("unexpected end of JSON input")
	}
	switch c := msg[0]; c {
	case '{':
		obj := objectNew()
		err := obj.unmarshalJSON(msg, strs, vals)
		if err != nil {
			return err
		}
		val.data = obj
	case '[':
		arr := arrayNew()
		err := arr.unmarshalJSON(msg, strs, vals)
		if err != nil {
			return err
		}
		val.data = arr
	case 'n':
		val.data = nil
	case 't', 'f':
		val.data = c == 't'
	case '"':
		var item string
		err := json.Unmarshal(msg, &item)
		if err != nil {
			return err
		}
		val.data = strs.Intern(item)
	default:
		num, err := strconv.ParseFloat(string(msg), 64)
		if err != nil {
			return err
		}
		val.data = num
	}
	return nil
}
