// Copyright (c) 2026, the JWJSON authors.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package data

import (
	"fmt"
	"reflect"
)

// Type identifies the variant held by a Value.
type Type uint8

const (
	// TypeNull is the null variant, it also describes the nil Value.
	TypeNull Type = iota
	// TypeObject is the JSON object variant.
	TypeObject
	// TypeArray is the JSON array variant.
	TypeArray
	// TypeString is the JSON string variant.
	TypeString
	// TypeNumber is the JSON number variant. All numbers are held
	// as 64-bit floats.
	TypeNumber
	// TypeBoolean is the JSON boolean variant.
	TypeBoolean
	// TypeError is the error variant. It is not a JSON type; it
	// carries a failure through chains of accesses.
	TypeError
)

// String returns the name of the variant.
func (t Type) String() string {
	switch t {
	case TypeObject:
		return "object"
	case TypeArray:
		return "array"
	case TypeString:
		return "string"
	case TypeNumber:
		return "number"
	case TypeBoolean:
		return "boolean"
	case TypeError:
		return "error"
	default:
		return "null"
	}
}

// ErrorKind classifies the failure carried by a ValueError.
type ErrorKind uint8

const (
	// ErrMistyped is reported when an access expects one variant
	// and finds another.
	ErrMistyped ErrorKind = iota
	// ErrUnsupportedType is reported when a native go value cannot
	// be represented as any JSON variant.
	ErrUnsupportedType
	// ErrInvalidJSON is reported when text fails to parse as JSON,
	// or a write would produce a structure that cannot be encoded.
	ErrInvalidJSON
	// ErrMissingValue is reported when a key is absent from an
	// object or an index is out of an array's bounds.
	ErrMissingValue
	// ErrInvalidEncoding is reported when input text is not valid
	// UTF-8.
	ErrInvalidEncoding
	// ErrUnderlying wraps an arbitrary lower-level failure.
	ErrUnderlying
)

// String returns the name of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrMistyped:
		return "mistyped"
	case ErrUnsupportedType:
		return "unsupported-type"
	case ErrInvalidJSON:
		return "invalid-json"
	case ErrMissingValue:
		return "missing-value"
	case ErrInvalidEncoding:
		return "invalid-encoding"
	case ErrUnderlying:
		return "underlying"
	default:
		return "unknown"
	}
}

// ValueError is the payload of the error variant. It is carried inside
// the Value union so that failures flow through chained accesses
// without interrupting control flow; no core operation ever raises one.
type ValueError struct {
	kind     ErrorKind
	expected Type
	found    Type
	typeName string
	cause    error
}

// Kind returns the classification of the failure.
func (e *ValueError) Kind() ErrorKind { return e.kind }

// Expected returns the variant an access expected. It is only
// meaningful for ErrMistyped errors.
func (e *ValueError) Expected() Type { return e.expected }

// Found returns the variant an access found. It is only meaningful for
// ErrMistyped errors.
func (e *ValueError) Found() Type { return e.found }

// TypeName returns the go type of a rejected input. It is only
// meaningful for ErrUnsupportedType errors.
func (e *ValueError) TypeName() string { return e.typeName }

// Unwrap returns the lower-level cause, if any.
func (e *ValueError) Unwrap() error { return e.cause }

// Error implements the error interface.
func (e *ValueError) Error() string {
	switch e.kind {
	case ErrMistyped:
		return fmt.Sprintf("mistyped access: expected %v, found %v",
			e.expected, e.found)
	case ErrUnsupportedType:
		return "unsupported type " + e.typeName
	case ErrInvalidJSON:
		if e.cause != nil {
			return "invalid JSON: " + e.cause.Error()
		}
		return "invalid JSON"
	case ErrMissingValue:
		return "missing value"
	case ErrInvalidEncoding:
		return "input is not valid UTF-8"
	case ErrUnderlying:
		if e.cause != nil {
			return "underlying error: " + e.cause.Error()
		}
		return "underlying error"
	default:
		return "unknown error"
	}
}

var (
	errMissingValue    = &ValueError{kind: ErrMissingValue}
	errInvalidEncoding = &ValueError{kind: ErrInvalidEncoding}
)

func mistypedError(expected, found Type) *ValueError {
	return &ValueError{
		kind:     ErrMistyped,
		expected: expected,
		found:    found,
	}
}

func unsupportedTypeError(t reflect.Type) *ValueError {
	return &ValueError{
		kind:     ErrUnsupportedType,
		typeName: t.String(),
	}
}

func invalidJSONError(cause error) *ValueError {
	return &ValueError{
		kind:  ErrInvalidJSON,
		cause: cause,
	}
}

func underlyingError(cause error) *ValueError {
	return &ValueError{
		kind:  ErrUnderlying,
		cause: cause,
	}
}

func errorValue(e *ValueError) *Value {
	return &Value{data: e}
}
