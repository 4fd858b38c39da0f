// Copyright (c) 2026, the JWJSON authors.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package data

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"

	"jsouthworth.net/go/dyn"
)

// ValueNew turns a native go value into a JSON Value. Construction is
// total; a value that cannot be represented as JSON yields the error
// variant carrying ErrUnsupportedType instead of failing.
func ValueNew(data interface{}) *Value {
	return valueNew(data)
}

func valueNew(data interface{}) *Value {
	if data == nil {
		return &Value{data: nil}
	}
	switch d := data.(type) {
	case *Value:
		return d
	case *ValueError:
	case error:
		data = underlyingError(d)
	case *Object, *Array:
	case map[string]interface{}:
		data = ObjectFrom(d)
	case []interface{}:
		data = ArrayFrom(d)
	case string:
	case bool:
		// The type switch dispatches on the runtime type tag, so
		// a boolean is never mistaken for its numeric encoding.
	case json.Number:
		f, err := d.Float64()
		if err != nil {
			data = invalidJSONError(err)
		} else {
			data = f
		}
	case float64:
	case float32:
		data = float64(d)
	case int:
		data = float64(d)
	case int8:
		data = float64(d)
	case int16:
		data = float64(d)
	case int32:
		data = float64(d)
	case int64:
		data = float64(d)
	case uint:
		data = float64(d)
	case uint8:
		data = float64(d)
	case uint16:
		data = float64(d)
	case uint32:
		data = float64(d)
	case uint64:
		data = float64(d)
	default:
		data = unsupportedTypeError(reflect.TypeOf(data))
	}
	return &Value{
		data: data,
	}
}

// Value is a JSON value. It holds exactly one of *Object, *Array,
// string, float64, bool, nil, or *ValueError. All numeric inputs are
// normalized to float64 when creating a value; integral access is a
// truncating view over the float.
type Value struct {
	data interface{}
}

var valType = reflect.TypeOf((*Value)(nil))
var interfaceType = reflect.TypeOf((*interface{})(nil)).Elem()

// Perform allows one to match the variant of the Value with a behavior
// to perform on that variant without resorting to the assertion
// operations. Think of this as the switch v.(type) { ... } analogue for
// JSON variants. It takes a list of func(v vT) oT functions and applies
// the first match to the value.
//
// If vT above is *Value or interface{} it matches all variants.
func (val *Value) Perform(fns ...interface{}) interface{} {
	if val == nil {
		return nil
	}
	vty := reflect.TypeOf(val.data)
	var action interface{}
	arg := val.data
	for _, fn := range fns {
		if action != nil {
			break
		}
		fnty := reflect.TypeOf(fn)
		if fnty.NumIn() != 1 {
			continue
		}
		inputType := fnty.In(0)
		switch {
		case vty == nil:
			// The null variant has no payload type; it only
			// matches the catchall shapes.
			switch inputType {
			case interfaceType:
				action = fn
			case valType:
				arg = val
				action = fn
			}
		case inputType == valType:
			arg = val
			action = fn
		case vty.AssignableTo(inputType):
			action = fn
		}
	}
	if action == nil {
		return nil
	}
	return dyn.Apply(action, arg)
}

// Type returns the variant held by the value. A nil *Value reports
// TypeNull.
func (val *Value) Type() Type {
	if val == nil {
		return TypeNull
	}
	switch val.data.(type) {
	case *Object:
		return TypeObject
	case *Array:
		return TypeArray
	case string:
		return TypeString
	case float64:
		return TypeNumber
	case bool:
		return TypeBoolean
	case *ValueError:
		return TypeError
	default:
		return TypeNull
	}
}

// AsObject returns the *Object payload and whether the value holds one.
func (val *Value) AsObject() (*Object, bool) {
	if val == nil {
		return nil, false
	}
	o, isObject := val.data.(*Object)
	return o, isObject
}

// IsObject returns if the data stored in the value is an Object.
func (val *Value) IsObject() bool {
	_, isObject := val.AsObject()
	return isObject
}

// ToObject returns an *Object and allows the user to define a
// default. An empty object is returned if no default is defined and
// the value is not an *Object.
func (val *Value) ToObject(defaultVal ...*Object) *Object {
	o, isObject := val.AsObject()
	if isObject {
		return o
	}
	if len(defaultVal) != 0 {
		return defaultVal[0]
	}
	return ObjectNew()
}

// AsArray returns the *Array payload and whether the value holds one.
func (val *Value) AsArray() (*Array, bool) {
	if val == nil {
		return nil, false
	}
	arr, isArray := val.data.(*Array)
	return arr, isArray
}

// IsArray returns if the data stored in the value is an Array.
func (val *Value) IsArray() bool {
	_, isArray := val.AsArray()
	return isArray
}

// ToArray returns an *Array and allows the user to define a
// default. An empty array is returned if no default is defined and the
// value is not an *Array.
func (val *Value) ToArray(defaultVal ...*Array) *Array {
	arr, isArray := val.AsArray()
	if isArray {
		return arr
	}
	if len(defaultVal) != 0 {
		return defaultVal[0]
	}
	return ArrayNew()
}

// AsString returns the string payload and whether the value holds one.
func (val *Value) AsString() (string, bool) {
	if val == nil {
		return "", false
	}
	s, isString := val.data.(string)
	return s, isString
}

// IsString returns if the data stored in the value is a string.
func (val *Value) IsString() bool {
	_, isString := val.AsString()
	return isString
}

// ToString returns a string and allows the user to define a
// default. The value "" is returned if no default is defined and the
// value is not a string.
func (val *Value) ToString(defaultVal ...string) string {
	s, isString := val.AsString()
	if isString {
		return s
	}
	if len(defaultVal) != 0 {
		return defaultVal[0]
	}
	return ""
}

// AsNumber returns the float64 payload and whether the value holds one.
func (val *Value) AsNumber() (float64, bool) {
	if val == nil {
		return 0, false
	}
	f, isNumber := val.data.(float64)
	return f, isNumber
}

// IsNumber returns if the data stored in the value is a number.
func (val *Value) IsNumber() bool {
	_, isNumber := val.AsNumber()
	return isNumber
}

// ToNumber returns a float64 and allows the user to define a
// default. The value 0 is returned if no default is defined and the
// value is not a number.
func (val *Value) ToNumber(defaultVal ...float64) float64 {
	f, isNumber := val.AsNumber()
	if isNumber {
		return f
	}
	if len(defaultVal) != 0 {
		return defaultVal[0]
	}
	return 0
}

// AsInteger returns the number payload truncated toward zero and
// whether the value holds a number. Non-finite numbers report as
// absent. Values beyond the int64 range saturate.
func (val *Value) AsInteger() (int64, bool) {
	f, isNumber := val.AsNumber()
	if !isNumber || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	switch {
	case f >= math.MaxInt64:
		return math.MaxInt64, true
	case f <= math.MinInt64:
		return math.MinInt64, true
	}
	return int64(f), true
}

// ToInteger returns an int64 and allows the user to define a
// default. The value 0 is returned if no default is defined and the
// value is not a number.
func (val *Value) ToInteger(defaultVal ...int64) int64 {
	i, isNumber := val.AsInteger()
	if isNumber {
		return i
	}
	if len(defaultVal) != 0 {
		return defaultVal[0]
	}
	return 0
}

// AsBoolean returns the bool payload and whether the value holds one.
func (val *Value) AsBoolean() (bool, bool) {
	if val == nil {
		return false, false
	}
	b, isBoolean := val.data.(bool)
	return b, isBoolean
}

// IsBoolean returns if the data stored in the value is a bool.
func (val *Value) IsBoolean() bool {
	_, isBoolean := val.AsBoolean()
	return isBoolean
}

// ToBoolean returns a bool and allows the user to define a
// default. The value false is returned if no default is defined and
// the value is not a bool.
func (val *Value) ToBoolean(defaultVal ...bool) bool {
	b, isBoolean := val.AsBoolean()
	if isBoolean {
		return b
	}
	if len(defaultVal) != 0 {
		return defaultVal[0]
	}
	return false
}

// IsNull returns whether the value holds the null variant. A nil
// *Value reports true.
func (val *Value) IsNull() bool {
	return val == nil || val.data == nil
}

// IsError returns whether the value holds the error variant.
func (val *Value) IsError() bool {
	return val.Err() != nil
}

// Err exposes the failure carried by the error variant. It returns nil
// for every other variant; it is the only accessor that surfaces the
// failure detail.
func (val *Value) Err() error {
	if val == nil {
		return nil
	}
	if e, isError := val.data.(*ValueError); isError {
		return e
	}
	return nil
}

// SetValue overwrites the whole payload with a classification of the
// supplied native value. Writing nil yields the null variant; writing
// a value that cannot be represented as JSON yields the error variant
// carrying ErrInvalidJSON. SetValue never fails.
func (val *Value) SetValue(data interface{}) {
	val.data = writeValue(data).data
}

// writeValue classifies a payload for a write. A payload that cannot
// be represented as JSON stores the error variant carrying
// ErrInvalidJSON; the write itself is what makes the tree
// unrepresentable.
func writeValue(data interface{}) *Value {
	new := valueNew(data)
	if e, isError := new.data.(*ValueError); isError &&
		e.Kind() == ErrUnsupportedType {
		return errorValue(invalidJSONError(e))
	}
	return new
}

// ToInterface returns the held data directly as a native interface.
// Container variants are returned as *Object and *Array; use ToNative
// to down-convert the whole tree.
func (val *Value) ToInterface() interface{} {
	if val == nil {
		return nil
	}
	return val.data
}

// ToData returns the held data as a value that can easily be used with
// standard library packages such as text/template.
func (val *Value) ToData() interface{} {
	if val == nil {
		return nil
	}
	switch v := val.data.(type) {
	case interface{ toData() interface{} }:
		return v.toData()
	default:
		return val.data
	}
}

// ToNative converts a value to a go native type. Objects become
// map[string]interface{} and arrays become []interface{}, recursively.
func (val *Value) ToNative() interface{} {
	if val == nil {
		return nil
	}
	switch v := val.data.(type) {
	case interface{ toNative() interface{} }:
		return v.toNative()
	default:
		return val.data
	}
}

// Merge will combine the old value with the new value and return the
// result. Objects merge key-wise and arrays merge index-wise; unlike
// variants are replaced by the new value.
func (val *Value) Merge(new *Value) *Value {
	if val == nil {
		return new
	}
	switch v := val.data.(type) {
	case interface{ merge(*Value) *Value }:
		return v.merge(new)
	default:
		return new
	}
}

func (val *Value) diff(new *Value, path *Path) []EditEntry {
	switch v := val.data.(type) {
	case interface {
		diff(*Value, *Path) []EditEntry
	}:
		return v.diff(new, path)
	default:
		// Leaf values
		if equal(val, new) {
			return nil
		}
		return []EditEntry{
			{Action: EditAssoc, Path: path, Value: new},
		}
	}
}

// Equal provides an implementation of Equality for Value types. Values
// are equal iff their variants match and their payloads are deep
// equal. Error-variant values never equal anything, including another
// error value with the same kind.
func (val *Value) Equal(other interface{}) bool {
	if other == nil {
		return val == nil
	}
	ov, isValue := other.(*Value)
	if !isValue {
		return false
	}
	if val == nil || ov == nil {
		return val == ov
	}
	if val.IsError() || ov.IsError() {
		return false
	}
	return equal(val.data, ov.data)
}

// Compare provides an implementation of Comparison for Value types.
func (val *Value) Compare(other interface{}) int {
	return dyn.Compare(val.data, other.(*Value).data)
}

// String returns a go string representation of the Value.
func (val *Value) String() string {
	if val == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%v", val.data)
}

// Marshal returns the value encoded as JSON text. Object and array
// variants produce documents; scalar variants produce bare RFC 8259
// fragment tokens and null renders as the literal "null". The error
// variant has no textual form, its payload is returned as the error.
func (val *Value) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	err := val.marshalJSON(&buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalIndent is Marshal with two-space indentation for the
// container variants.
func (val *Value) MarshalIndent() ([]byte, error) {
	data, err := val.Marshal()
	if err != nil {
		return nil, err
	}
	switch val.data.(type) {
	case *Object, *Array:
		var buf bytes.Buffer
		err = json.Indent(&buf, data, "", "  ")
		if err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return data, nil
	}
}

func (val *Value) marshalJSON(buf *bytes.Buffer) error {
	if val == nil || val.data == nil {
		buf.WriteString("null")
		return nil
	}
	switch d := val.data.(type) {
	case interface {
		marshalJSON(*bytes.Buffer) error
	}:
		return d.marshalJSON(buf)
	case string:
		enc, err := json.Marshal(d)
		if err != nil {
			return err
		}
		buf.Write(enc)
	case float64:
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return invalidJSONError(fmt.Errorf(
				"cannot encode %v as a JSON number", d))
		}
		buf.WriteString(strconv.FormatFloat(d, 'f', -1, 64))
	case bool:
		buf.WriteString(strconv.FormatBool(d))
	case *ValueError:
		return d
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (val *Value) MarshalJSON() ([]byte, error) {
	return val.Marshal()
}

// UnmarshalJSON implements json.Unmarshaler. The message must be a
// single well-formed JSON value.
func (val *Value) UnmarshalJSON(msg []byte) error {
	strs := stringInternerNew()
	vals := valueInternerNew()
	return val.unmarshalJSON(msg, strs, vals)
}

func equal(v1, v2 interface{}) bool {
	return dyn.Equal(v1, v2)
}
