// Copyright (c) 2026, the JWJSON authors.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package data

import (
	"testing"
)

func peopleValue() *Value {
	return ValueNew(map[string]interface{}{
		"people": []interface{}{
			map[string]interface{}{
				"name": "Alice",
				"age":  34,
			},
			map[string]interface{}{
				"name": "Bob",
				"age":  29,
			},
		},
		"active": true,
	})
}

func TestValueAt(t *testing.T) {
	t.Run("chained access", func(t *testing.T) {
		got := peopleValue().At("people", 1, "name")
		assert(got.ToString() == "Bob", func() {
			t.Fatalf("expected Bob, got %v\n", got)
		})
	})
	t.Run("empty path is identity", func(t *testing.T) {
		v := peopleValue()
		assert(equal(v.At(), v), func() {
			t.Fatal("empty path changed the value")
		})
	})
	t.Run("missing key", func(t *testing.T) {
		got := peopleValue().At("nobody")
		verr := got.Err().(*ValueError)
		assert(verr.Kind() == ErrMissingValue, func() {
			t.Fatalf("expected ErrMissingValue, got %v\n",
				verr.Kind())
		})
	})
	t.Run("index out of bounds", func(t *testing.T) {
		got := peopleValue().At("people", 5)
		verr := got.Err().(*ValueError)
		assert(verr.Kind() == ErrMissingValue, func() {
			t.Fatalf("expected ErrMissingValue, got %v\n",
				verr.Kind())
		})
	})
	t.Run("key on array", func(t *testing.T) {
		got := peopleValue().At("people", "name")
		verr := got.Err().(*ValueError)
		assert(verr.Kind() == ErrMistyped, func() {
			t.Fatalf("expected ErrMistyped, got %v\n",
				verr.Kind())
		})
		assert(verr.Expected() == TypeObject &&
			verr.Found() == TypeArray, func() {
			t.Fatalf("expected object/array, got %v/%v\n",
				verr.Expected(), verr.Found())
		})
	})
	t.Run("index on object", func(t *testing.T) {
		got := peopleValue().At(0)
		verr := got.Err().(*ValueError)
		assert(verr.Kind() == ErrMistyped, func() {
			t.Fatalf("expected ErrMistyped, got %v\n",
				verr.Kind())
		})
		assert(verr.Expected() == TypeArray &&
			verr.Found() == TypeObject, func() {
			t.Fatalf("expected array/object, got %v/%v\n",
				verr.Expected(), verr.Found())
		})
	})
	t.Run("index on string", func(t *testing.T) {
		got := peopleValue().At("people", 0, "name", 0)
		verr := got.Err().(*ValueError)
		assert(verr.Kind() == ErrMistyped, func() {
			t.Fatalf("expected ErrMistyped, got %v\n",
				verr.Kind())
		})
		assert(verr.Expected() == TypeArray &&
			verr.Found() == TypeString, func() {
			t.Fatalf("expected array/string, got %v/%v\n",
				verr.Expected(), verr.Found())
		})
	})
	t.Run("key on number root", func(t *testing.T) {
		got := ParseString("42").At("x")
		verr := got.Err().(*ValueError)
		assert(verr.Kind() == ErrMistyped, func() {
			t.Fatalf("expected ErrMistyped, got %v\n",
				verr.Kind())
		})
		assert(verr.Expected() == TypeObject &&
			verr.Found() == TypeNumber, func() {
			t.Fatalf("expected object/number, got %v/%v\n",
				verr.Expected(), verr.Found())
		})
	})
	t.Run("subscript on scalar", func(t *testing.T) {
		got := peopleValue().At("active", "x")
		verr := got.Err().(*ValueError)
		assert(verr.Kind() == ErrMistyped, func() {
			t.Fatalf("expected ErrMistyped, got %v\n",
				verr.Kind())
		})
		assert(verr.Expected() == TypeObject &&
			verr.Found() == TypeBoolean, func() {
			t.Fatalf("expected object/boolean, got %v/%v\n",
				verr.Expected(), verr.Found())
		})
	})
	t.Run("short circuit preserves first failure", func(t *testing.T) {
		got := peopleValue().At("nobody", 3, "deep", "deeper")
		verr := got.Err().(*ValueError)
		assert(verr.Kind() == ErrMissingValue, func() {
			t.Fatalf("expected ErrMissingValue, got %v\n",
				verr.Kind())
		})
	})
	t.Run("invalid segment type", func(t *testing.T) {
		got := peopleValue().At(1.5)
		verr := got.Err().(*ValueError)
		assert(verr.Kind() == ErrUnderlying, func() {
			t.Fatalf("expected ErrUnderlying, got %v\n",
				verr.Kind())
		})
	})
}

func TestValueAtPointer(t *testing.T) {
	t.Run("lookup", func(t *testing.T) {
		got := peopleValue().AtPointer("/people/0/age")
		assert(got.ToNumber() == 34, func() {
			t.Fatalf("expected 34, got %v\n", got)
		})
	})
	t.Run("whole document", func(t *testing.T) {
		v := peopleValue()
		assert(equal(v.AtPointer(""), v), func() {
			t.Fatal("empty pointer changed the value")
		})
	})
	t.Run("escapes", func(t *testing.T) {
		v := ValueNew(map[string]interface{}{
			"a/b": 1,
			"m~n": 2,
		})
		assert(v.AtPointer("/a~1b").ToNumber() == 1, func() {
			t.Fatal("~1 escape didn't resolve")
		})
		assert(v.AtPointer("/m~0n").ToNumber() == 2, func() {
			t.Fatal("~0 escape didn't resolve")
		})
	})
	t.Run("numeric token on object is a key", func(t *testing.T) {
		v := ValueNew(map[string]interface{}{"0": "zero"})
		assert(v.AtPointer("/0").ToString() == "zero", func() {
			t.Fatal("numeric token didn't resolve as a key")
		})
	})
	t.Run("leading zero token is not an index", func(t *testing.T) {
		got := peopleValue().AtPointer("/people/01")
		verr := got.Err().(*ValueError)
		assert(verr.Kind() == ErrMistyped, func() {
			t.Fatalf("expected ErrMistyped, got %v\n",
				verr.Kind())
		})
	})
	t.Run("non-numeric token on array", func(t *testing.T) {
		got := peopleValue().AtPointer("/people/first")
		verr := got.Err().(*ValueError)
		assert(verr.Kind() == ErrMistyped, func() {
			t.Fatalf("expected ErrMistyped, got %v\n",
				verr.Kind())
		})
	})
	t.Run("syntax error", func(t *testing.T) {
		got := peopleValue().AtPointer("people/0")
		verr := got.Err().(*ValueError)
		assert(verr.Kind() == ErrUnderlying, func() {
			t.Fatalf("expected ErrUnderlying, got %v\n",
				verr.Kind())
		})
	})
}

func TestValueSet(t *testing.T) {
	t.Run("replace existing", func(t *testing.T) {
		v := peopleValue()
		v.Set(30, "people", 1, "age")
		assert(v.At("people", 1, "age").ToNumber() == 30, func() {
			t.Fatal("write didn't apply")
		})
	})
	t.Run("set then get inverse", func(t *testing.T) {
		v := peopleValue()
		v.Set("Carol", "people", 0, "name")
		assert(v.At("people", 0, "name").ToString() == "Carol",
			func() {
				t.Fatal("get after set didn't round trip")
			})
	})
	t.Run("insert new object key", func(t *testing.T) {
		v := peopleValue()
		v.Set("x", "people", 0, "email")
		assert(v.At("people", 0, "email").ToString() == "x", func() {
			t.Fatal("insert didn't apply")
		})
	})
	t.Run("array index never grows", func(t *testing.T) {
		v := peopleValue()
		v.Set("z", "people", 2)
		assert(v.At("people").ToArray().Length() == 2, func() {
			t.Fatal("out of bounds write grew the array")
		})
	})
	t.Run("unresolvable prefix is a no-op", func(t *testing.T) {
		v := peopleValue()
		before := v.ToNative()
		v.Set(1, "nobody", "deep")
		after := v.ToNative()
		assert(equal(ValueNew(before), ValueNew(after)), func() {
			t.Fatal("failed write changed the value")
		})
	})
	t.Run("mistyped prefix is a no-op", func(t *testing.T) {
		v := peopleValue()
		v.Set(1, "active", "deep")
		assert(v.At("active").ToBoolean(), func() {
			t.Fatal("failed write changed the value")
		})
	})
	t.Run("empty path overwrites payload", func(t *testing.T) {
		v := peopleValue()
		v.Set("replaced")
		assert(v.ToString() == "replaced", func() {
			t.Fatal("whole payload write didn't apply")
		})
	})
	t.Run("siblings survive a write", func(t *testing.T) {
		v := peopleValue()
		v.Set(30, "people", 1, "age")
		assert(v.At("people", 0, "name").ToString() == "Alice",
			func() {
				t.Fatal("write disturbed a sibling")
			})
		assert(v.At("active").ToBoolean(), func() {
			t.Fatal("write disturbed a sibling")
		})
	})
}

func TestValueDelete(t *testing.T) {
	t.Run("object key", func(t *testing.T) {
		v := peopleValue()
		v.Delete("active")
		got := v.At("active")
		assert(got.IsError(), func() {
			t.Fatal("key survived delete")
		})
	})
	t.Run("array element shifts down", func(t *testing.T) {
		v := peopleValue()
		v.Delete("people", 0)
		assert(v.At("people").ToArray().Length() == 1, func() {
			t.Fatal("element survived delete")
		})
		assert(v.At("people", 0, "name").ToString() == "Bob",
			func() {
				t.Fatal("elements didn't shift down")
			})
	})
	t.Run("unresolvable path is a no-op", func(t *testing.T) {
		v := peopleValue()
		v.Delete("nobody", "deep")
		assert(v.At("active").ToBoolean(), func() {
			t.Fatal("failed delete changed the value")
		})
	})
}

func TestLookupIsolation(t *testing.T) {
	t.Run("write through a lookup result", func(t *testing.T) {
		v := peopleValue()
		got := v.At("people", 0, "name")
		got.SetValue("Mallory")
		assert(got.ToString() == "Mallory", func() {
			t.Fatal("write to the lookup result didn't apply")
		})
		assert(v.At("people", 0, "name").ToString() == "Alice",
			func() {
				t.Fatal("lookup result aliased the tree")
			})
	})
	t.Run("write through a pointer lookup result", func(t *testing.T) {
		v := peopleValue()
		got := v.AtPointer("/people/1/age")
		got.SetValue(99)
		assert(v.AtPointer("/people/1/age").ToNumber() == 29,
			func() {
				t.Fatal("lookup result aliased the tree")
			})
	})
	t.Run("equal parsed scalars stay independent", func(t *testing.T) {
		v := ParseString(`{"a":1,"b":1}`)
		v.At("a").SetValue(2)
		assert(v.At("a").ToNumber() == 1 &&
			v.At("b").ToNumber() == 1, func() {
			t.Fatal("equal leaves aliased each other")
		})
		v.Set(2, "a")
		assert(v.At("a").ToNumber() == 2 &&
			v.At("b").ToNumber() == 1, func() {
			t.Fatal("write to one leaf reached its twin")
		})
	})
	t.Run("equal parsed strings stay independent", func(t *testing.T) {
		v := ParseString(`["x","x"]`)
		v.Set("y", 0)
		assert(v.At(0).ToString() == "y" &&
			v.At(1).ToString() == "x", func() {
			t.Fatal("write to one element reached its twin")
		})
	})
}

func TestValueSetUnrepresentable(t *testing.T) {
	t.Run("Set stores an invalid-json error", func(t *testing.T) {
		v := peopleValue()
		v.Set(make(chan int), "active")
		verr := v.At("active").Err().(*ValueError)
		assert(verr.Kind() == ErrInvalidJSON, func() {
			t.Fatalf("expected ErrInvalidJSON, got %v\n",
				verr.Kind())
		})
	})
	t.Run("SetPointer stores an invalid-json error", func(t *testing.T) {
		v := peopleValue()
		v.SetPointer("/people/0/age", func() {})
		verr := v.AtPointer("/people/0/age").Err().(*ValueError)
		assert(verr.Kind() == ErrInvalidJSON, func() {
			t.Fatalf("expected ErrInvalidJSON, got %v\n",
				verr.Kind())
		})
	})
}

func TestStepNilValue(t *testing.T) {
	var v *Value
	got := v.At("x")
	verr := got.Err().(*ValueError)
	assert(verr.Kind() == ErrMistyped, func() {
		t.Fatalf("expected ErrMistyped, got %v\n", verr.Kind())
	})
	assert(verr.Expected() == TypeObject &&
		verr.Found() == TypeNull, func() {
		t.Fatalf("expected object/null, got %v/%v\n",
			verr.Expected(), verr.Found())
	})
}

func TestParsePath(t *testing.T) {
	t.Run("round trips", func(t *testing.T) {
		for _, ptr := range []string{
			"", "/", "/a", "/a/b", "/a/0/b", "/a~1b", "/m~0n",
			"/a~1b~0c",
		} {
			got := ParsePath(ptr).String()
			assert(got == ptr, func() {
				t.Fatalf("expected %q, got %q\n", ptr, got)
			})
		}
	})
	t.Run("rejects missing leading slash", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("expected a panic")
			}
		}()
		ParsePath("a/b")
	})
	t.Run("rejects truncated escape", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("expected a panic")
			}
		}()
		ParsePath("/a~")
	})
}

func TestPathNew(t *testing.T) {
	t.Run("renders as a pointer", func(t *testing.T) {
		p := PathNew("people", 1, "name")
		assert(p.String() == "/people/1/name", func() {
			t.Fatalf("got %q\n", p.String())
		})
	})
	t.Run("escapes keys", func(t *testing.T) {
		p := PathNew("a/b", "m~n")
		assert(p.String() == "/a~1b/m~0n", func() {
			t.Fatalf("got %q\n", p.String())
		})
	})
	t.Run("rejects other segment types", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("expected a panic")
			}
		}()
		PathNew(1.5)
	})
}

func TestPathEqual(t *testing.T) {
	assert(PathNew("a", 0).Equal(ParsePath("/a/0")), func() {
		t.Fatal("equivalent paths not equal")
	})
	assert(!PathNew("a").Equal(PathNew("b")), func() {
		t.Fatal("different paths equal")
	})
	assert(!PathNew("a").Equal("foo"), func() {
		t.Fatal("path equal to a non-path")
	})
}

func TestPathMarshal(t *testing.T) {
	p := PathNew("people", 1, "name")
	msg, err := p.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(msg) != `"/people/1/name"` {
		t.Fatal(string(msg), "isn't as expected")
	}
	var got Path
	err = got.UnmarshalJSON(msg)
	if err != nil {
		t.Fatal(err)
	}
	assert(got.Equal(p), func() {
		t.Fatal("path didn't round trip")
	})
}
