// Copyright (c) 2026, the JWJSON authors.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package data

import (
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		ty   Type
	}{
		{"object", `{"a":1}`, TypeObject},
		{"array", `[1,2,3]`, TypeArray},
		{"string", `"foo"`, TypeString},
		{"number", `42`, TypeNumber},
		{"negative-fraction", `-1.5`, TypeNumber},
		{"exponent", `1e3`, TypeNumber},
		{"true", `true`, TypeBoolean},
		{"false", `false`, TypeBoolean},
		{"null", `null`, TypeNull},
		{"leading-whitespace", "\n\t {}", TypeObject},
		{"nested", `{"a":[{"b":null}]}`, TypeObject},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := ParseString(test.in).Type()
			assert(got == test.ty, func() {
				t.Fatalf("expected %v, got %v\n",
					test.ty, got)
			})
		})
	}
}

func TestParseFragments(t *testing.T) {
	t.Run("true is boolean not number", func(t *testing.T) {
		v := ParseString("true")
		assert(v.IsBoolean() && !v.IsNumber(), func() {
			t.Fatal("true misclassified")
		})
		assert(v.ToBoolean(), func() {
			t.Fatal("wrong boolean payload")
		})
	})
	t.Run("numbers are float64", func(t *testing.T) {
		v := ParseString("3")
		assert(v.ToNumber() == float64(3), func() {
			t.Fatalf("expected 3, got %v\n", v)
		})
	})
}

func TestParseTotality(t *testing.T) {
	t.Run("invalid UTF-8", func(t *testing.T) {
		v := Parse([]byte{'"', 0xff, 0xfe, '"'})
		verr := v.Err().(*ValueError)
		assert(verr.Kind() == ErrInvalidEncoding, func() {
			t.Fatalf("expected ErrInvalidEncoding, got %v\n",
				verr.Kind())
		})
	})
	t.Run("malformed JSON", func(t *testing.T) {
		for _, in := range []string{
			`{"a":`, `[1,2`, `tru`, `"unterminated`, `{,}`,
			`1 2`, `nil`,
		} {
			v := ParseString(in)
			verr, isVErr := v.Err().(*ValueError)
			assert(isVErr && verr.Kind() == ErrInvalidJSON,
				func() {
					t.Fatalf("%q: expected ErrInvalidJSON,"+
						" got %v\n", in, v)
				})
			assert(verr.Unwrap() != nil, func() {
				t.Fatalf("%q: cause missing\n", in)
			})
		}
	})
	t.Run("empty input", func(t *testing.T) {
		v := Parse(nil)
		verr := v.Err().(*ValueError)
		assert(verr.Kind() == ErrInvalidJSON, func() {
			t.Fatalf("expected ErrInvalidJSON, got %v\n",
				verr.Kind())
		})
	})
	t.Run("never panics", func(t *testing.T) {
		defer func() {
			if r := recover(); r != nil {
				t.Fatal("parse panicked:", r)
			}
		}()
		Parse([]byte{0x00, 0x01})
		ParseString(`{{{{`)
	})
}

func TestParseMarshalRoundTrip(t *testing.T) {
	inputs := []string{
		`null`,
		`true`,
		`"foo"`,
		`1.5`,
		`[]`,
		`{}`,
		`[1,"a",null,true]`,
		`{"a":{"b":[1,2,{"c":null}]},"d":"e"}`,
	}
	for _, in := range inputs {
		v := ParseString(in)
		if v.IsError() {
			t.Fatal(v.Err())
		}
		text, err := v.Marshal()
		if err != nil {
			t.Fatal(err)
		}
		got := Parse(text)
		assert(equal(v, got), func() {
			t.Fatalf("%q didn't round trip, got %s\n", in, text)
		})
	}
}

func TestValueUnmarshalJSON(t *testing.T) {
	v := ValueNew(nil)
	err := v.UnmarshalJSON([]byte(`{"a":[1,2]}`))
	if err != nil {
		t.Fatal(err)
	}
	assert(v.At("a", 1).ToNumber() == 2, func() {
		t.Fatal("unmarshal didn't build the value")
	})
	err = v.UnmarshalJSON([]byte(`{`))
	if err == nil {
		t.Fatal("expected an error")
	}
}
