// Copyright (c) 2026, the JWJSON authors.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package data

import (
	"bytes"
	"encoding/json"
	"reflect"
	"sort"

	"jsouthworth.net/go/immutable/vector"
)

// ArrayNew creates a new array and returns its abstract representation.
func ArrayNew() *Array {
	return arrayNew()
}

func arrayNew() *Array {
	return &Array{
		store: vector.Empty(),
	}
}

// ArrayWith creates an array and initializes it with the provided
// elements.
func ArrayWith(elements ...interface{}) *Array {
	return ArrayNew().with(elements...)
}

// ArrayFrom creates an array and initializes it with the elements from
// the provided slice.
func ArrayFrom(in interface{}) *Array {
	return ArrayNew().from(in)
}

// Array is an RFC 8259 (JSON) array. The arrays are immutable, the
// mutation methods return new structurally shared copies of the
// original array with the changes. This provides cheap copies of the
// array and preserves the original allowing it to be easily shared.
// Element order is significant. Arrays are fixed length with respect
// to index writes: Assoc never grows an array, only Append does.
type Array struct {
	store *vector.Vector
}

// from converts a go slice to an Array.
func (arr *Array) from(ins interface{}) *Array {
	val := reflect.ValueOf(ins)
	vals := make([]*Value, val.Len())
	for i := 0; i < val.Len(); i++ {
		in := val.Index(i).Interface()
		vals[i] = ValueNew(in)
	}
	return &Array{
		store: vector.From(vals),
	}
}

// with returns an Array containing the elements.
func (arr *Array) with(elements ...interface{}) *Array {
	return arr.from(elements)
}

// At returns the value at the index of the array, if the index is out
// of bounds, nil is returned.
func (arr *Array) At(index int) *Value {
	if index >= arr.store.Length() || index < 0 {
		return nil
	}
	return arr.store.At(index).(*Value)
}

// Contains returns whether the index is in the bounds of the array.
func (arr *Array) Contains(index int) bool {
	return index < arr.store.Length() && index >= 0
}

// Find returns the value at the index or nil if it doesn't exist and
// whether the index was in the array.
func (arr *Array) Find(index int) (*Value, bool) {
	if !arr.Contains(index) {
		return nil, false
	}
	v, ok := arr.store.Find(index)
	if !ok {
		return nil, ok
	}
	return v.(*Value), ok
}

// Assoc associates the value with the index in the array. If the index
// is out of bounds the array is returned unchanged; arrays cannot be
// grown by index writes, use Append instead.
func (arr *Array) Assoc(index int, value interface{}) *Array {
	if !arr.Contains(index) {
		return arr
	}
	return &Array{
		store: arr.store.Assoc(index, ValueNew(value)),
	}
}

// Length returns the number of elements in the array.
func (arr *Array) Length() int {
	return arr.store.Length()
}

// Append adds a new value to the end of the array.
func (arr *Array) Append(value interface{}) *Array {
	return &Array{
		store: arr.store.Append(ValueNew(value)),
	}
}

// Delete removes an element at the supplied index from the array. The
// elements after it shift down. Out of bounds indices are ignored.
func (arr *Array) Delete(index int) *Array {
	if !arr.Contains(index) {
		return arr
	}
	return &Array{
		store: arr.store.Delete(index),
	}
}

// Range iterates over the array's elements. Range can take a set of functions
// matched by type. If the function returns a bool this is treated as a
// loop terminataion variable if false the loop will terminate.
//
//	func(int, *Value) iterates over indicies and values.
//	func(int, *Value) bool
//	func(int) iterates over only the indicies
//	func(int) bool
//	func(*Value) iterates over only the values
//	func(*Value) bool
func (arr *Array) Range(fn interface{}) *Array {
	switch f := fn.(type) {
	case func(int, *Value):
	case func(int, *Value) bool:
	case func(*Value):
		fn = func(idx int, val interface{}) bool {
			f(val.(*Value))
			return true
		}
	case func(*Value) bool:
		fn = func(idx int, val interface{}) bool {
			return f(val.(*Value))
		}
	case func(int):
		fn = func(idx int, val interface{}) bool {
			f(idx)
			return true
		}
	case func(int) bool:
		fn = func(idx int, val interface{}) bool {
			return f(idx)
		}
	default:
		panic("invalid range function")
	}
	arr.store.Range(fn)
	return arr
}

// toNative returns a go native []interface{} from the array.
func (arr *Array) toNative() interface{} {
	out := make([]interface{}, arr.Length())
	arr.Range(func(idx int, value *Value) {
		out[idx] = value.ToNative()
	})
	return out
}

// toData returns the contents of the array as a []*Value that
// can be used with things like text/template more easily.
func (arr *Array) toData() interface{} {
	out := make([]*Value, arr.Length())
	arr.Range(func(idx int, value *Value) {
		out[idx] = value
	})
	return out
}

func (arr *Array) copy() *Array {
	return &Array{
		store: arr.store,
	}
}

// merge merges one array with another. The returned array is the
// old array with any existing indicies replaced with counterparts from the
// new array and any new indicies added. Merge is accretive only and will
// not remove non-existant indicies.
func (arr *Array) merge(new *Value) *Value {
	return new.Perform(func(n *Array) *Value {
		out := arr.Transform(func(out *TArray) {
			arr.Range(func(i int, v *Value) {
				if n.Contains(i) {
					out.Assoc(i, v.Merge(n.At(i)))
				}
			})
			n.Range(func(i int, v *Value) {
				if !arr.Contains(i) {
					out.Append(v)
				}
			})
		})
		return ValueNew(out)
	}, func(_ *Value) *Value {
		// Can't merge unlike types; take the new value.
		return new
	}).(*Value)
}

// Equal implements equality for arrays. An array is equal to another
// array if all their values at each index is equal. Equality checks are linear
// with respect to the number of elements.
func (arr *Array) Equal(other interface{}) bool {
	oa, isArray := other.(*Array)
	return isArray &&
		oa.store.Length() == arr.store.Length() &&
		equal(oa.store, arr.store)
}

// String returns a string representation of the Array.
func (arr *Array) String() string {
	var buf bytes.Buffer
	arr.marshalJSON(&buf)
	return buf.String()
}

func (arr *Array) marshalJSON(buf *bytes.Buffer) error {
	buf.WriteByte('[')
	var err error
	arr.Range(func(i int, v *Value) bool {
		err = v.marshalJSON(buf)
		if err != nil {
			return false
		}
		if i < arr.Length()-1 {
			buf.WriteByte(',')
		}
		return true
	})
	if err != nil {
		return err
	}
	buf.WriteByte(']')
	return nil
}

func (arr *Array) unmarshalJSON(
	msg []byte,
	strs *stringInterner,
	vals *valueInterner,
) error {
	var a []json.RawMessage
	err := json.Unmarshal(msg, &a)
	if err != nil {
		return err
	}
	arr.store = arr.store.Transform(
		func(store *vector.TVector) *vector.TVector {
			for _, v := range a {
				if err != nil {
					return store
				}
				val := valueNew(nil)
				err = val.unmarshalJSON(v, strs, vals)
				val = vals.Intern(val)
				store = store.Append(val)
			}
			return store
		})
	return err
}

func (arr *Array) diff(new *Value, path *Path) []EditEntry {
	out := []EditEntry{}
	new.Perform(func(other *Array) {
		shared := arr.Length()
		if other.Length() < shared {
			shared = other.Length()
		}
		for i := 0; i < shared; i++ {
			out = append(out,
				arr.At(i).diff(other.At(i),
					path.addIndex(i))...)
		}
		// Deletions run high to low so earlier entries don't
		// shift the indices of later ones when applied.
		for i := arr.Length() - 1; i >= other.Length(); i-- {
			out = append(out,
				EditEntry{
					Action: EditDelete,
					Path:   path.addIndex(i),
				})
		}
		for i := arr.Length(); i < other.Length(); i++ {
			out = append(out,
				EditEntry{
					Action: EditAssoc,
					Path:   path.addIndex(i),
					Value:  other.At(i),
				})
		}
	}, func(_ *Value) {
		out = []EditEntry{
			{Action: EditAssoc, Path: path, Value: new},
		}
	})
	return out
}

// Transform executes the provided function against a mutable
// transient array to provide a faster, less memory intensive, array
// editing mechanism.
func (arr *Array) Transform(fn func(*TArray)) *Array {
	tarr := &TArray{
		store: arr.store.AsTransient(),
	}
	fn(tarr)
	out := arr.copy()
	out.store = tarr.store.AsPersistent()
	return out
}

// Sort sorts an array returning a new array that is sorted.
// By default sort will use dyn.Compare as the comparison operator,
// this may be overridden using the Compare option.
func (arr *Array) Sort(options ...SortOption) *Array {
	var opts sortOpts
	opts.compare = func(v1, v2 *Value) int {
		return v1.Compare(v2)
	}
	for _, opt := range options {
		opt(&opts)
	}
	out := arr.copy()
	sorter := arraySorter{
		array: out.store.AsTransient(),
		opts:  &opts,
	}
	sort.Sort(&sorter)
	out.store = sorter.array.AsPersistent()
	return out
}

type arraySorter struct {
	array *vector.TVector
	opts  *sortOpts
}

func (s *arraySorter) Len() int {
	return s.array.Length()
}

func (s *arraySorter) Less(i, j int) bool {
	return s.opts.compare(s.array.At(i).(*Value),
		s.array.At(j).(*Value)) < 0
}

func (s *arraySorter) Swap(i, j int) {
	a, b := s.array.At(i), s.array.At(j)
	s.array.Assoc(i, b)
	s.array.Assoc(j, a)
}

type sortOpts struct {
	compare func(v1, v2 *Value) int
}

// SortOption is an option to the Array.Sort function.
type SortOption func(*sortOpts)

// Compare takes a comparison function and returns a sort option.
// A compare function takes two values and returns a trinary state as
// an integer. Less than zero indicates the first was less than the last,
// zero indicates the two values were equal, and greater than zero
// indicates that the first was greater than the last.
func Compare(fn func(a, b *Value) int) SortOption {
	return func(opts *sortOpts) {
		opts.compare = fn
	}
}

// TArray is a transient array that may be used to perform
// transformations on an array in a fast mutable fashion. This can
// only be accessed via the (*Array).Transform method. Care should be
// taken not to share this among threads as its values are mutable.
type TArray struct {
	store *vector.TVector
}

// Assoc associates the value with the index in the array. As with the
// persistent form, out of bounds indices are ignored.
func (arr *TArray) Assoc(i int, v interface{}) *TArray {
	if !arr.Contains(i) {
		return arr
	}
	arr.store = arr.store.Assoc(i, ValueNew(v))
	return arr
}

// Append adds a new value to the end of the array.
func (arr *TArray) Append(value interface{}) *TArray {
	arr.store = arr.store.Append(ValueNew(value))
	return arr
}

// At returns the value at the index of the array, if the index is out
// of bounds, nil is returned.
func (arr *TArray) At(index int) *Value {
	if index >= arr.store.Length() || index < 0 {
		return nil
	}
	return arr.store.At(index).(*Value)
}

// Contains returns whether the index is in the bounds of the array.
func (arr *TArray) Contains(index int) bool {
	return index < arr.store.Length() && index >= 0
}

// Delete removes an element at the supplied index from the array.
func (arr *TArray) Delete(index int) *TArray {
	if !arr.Contains(index) {
		return arr
	}
	arr.store = arr.store.Delete(index)
	return arr
}

// Find returns the value at the index or nil if it doesn't exist and
// whether the index was in the array.
func (arr *TArray) Find(index int) (*Value, bool) {
	if !arr.Contains(index) {
		return nil, false
	}
	v, ok := arr.store.Find(index)
	if !ok {
		return nil, ok
	}
	return v.(*Value), ok
}

// Length returns the number of elements in the array.
func (arr *TArray) Length() int {
	return arr.store.Length()
}

// Range iterates over the array's elements. It accepts the same set of
// functions as (*Array).Range.
func (arr *TArray) Range(fn interface{}) {
	// NOTE: this must be done inline to avoid needing a heap
	// allocation for the generated closure.
	switch f := fn.(type) {
	case func(int, *Value):
	case func(int, *Value) bool:
	case func(*Value):
		fn = func(idx int, val interface{}) bool {
			f(val.(*Value))
			return true
		}
	case func(*Value) bool:
		fn = func(idx int, val interface{}) bool {
			return f(val.(*Value))
		}
	case func(int):
		fn = func(idx int, val interface{}) bool {
			f(idx)
			return true
		}
	case func(int) bool:
		fn = func(idx int, val interface{}) bool {
			return f(idx)
		}
	default:
		panic("invalid range function")
	}
	arr.store.Range(fn)
}
