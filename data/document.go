// Copyright (c) 2026, the JWJSON authors.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package data

import (
	"jsouthworth.net/go/try"
)

// DocumentNew creates a new document rooted at an empty object.
func DocumentNew() *Document {
	return DocumentFromValue(ValueNew(ObjectNew()))
}

// DocumentFromValue creates a document rooted at the supplied value.
func DocumentFromValue(v *Value) *Document {
	if v == nil {
		v = ValueNew(nil)
	}
	return &Document{root: v}
}

// ParseDocument decodes JSON text into a document. Decode failures
// become the document's root, as Parse encodes them, so the result is
// always usable.
func ParseDocument(text []byte) *Document {
	return DocumentFromValue(Parse(text))
}

// Document wraps a value tree and provides whole-tree operations
// addressed by RFC 6901 JSON Pointers instead of single keys.
// Documents are immutable and any mutation operation will return a new
// structurally shared copy of the document with the changes made. This
// allows for cheap copies of the document and for it to be shared
// easily.
type Document struct {
	root *Value
}

// Root returns the document's root Value.
func (doc *Document) Root() *Value {
	return doc.root
}

// Merge merges two documents together by recursively calling Merge on
// the roots.
func (doc *Document) Merge(new *Document) *Document {
	return DocumentFromValue(doc.Root().Merge(new.Root()))
}

// At returns the Value at the JSON Pointer provided. Failures,
// pointer syntax errors included, are returned as error-variant
// values.
func (doc *Document) At(pointer string) *Value {
	return doc.Root().AtPointer(pointer)
}

// Find returns the Value at the JSON Pointer or nil if none, and
// whether the value is in the document.
func (doc *Document) Find(pointer string) (*Value, bool) {
	p, err := try.Apply(ParsePath, pointer)
	if err != nil {
		return nil, false
	}
	return doc.find(p.(*Path))
}

func (doc *Document) find(p *Path) (*Value, bool) {
	return p.Find(doc.Root())
}

// Assoc associates the value provided at the location pointed to by
// the JSON Pointer. Writes that cannot apply, a pointer whose prefix
// does not resolve or whose terminal index is out of bounds, return
// the document unchanged. A terminal object key that does not exist
// yet is inserted.
func (doc *Document) Assoc(pointer string, value interface{}) *Document {
	p, err := try.Apply(ParsePath, pointer)
	if err != nil {
		return doc
	}
	return doc.assoc(p.(*Path), writeValue(value), false)
}

func (doc *Document) assoc(p *Path, v *Value, grow bool) *Document {
	out, ok := p.assoc(doc.Root(), v, grow)
	if !ok {
		return doc
	}
	return DocumentFromValue(out)
}

// Delete removes the location the JSON Pointer addresses from the
// document. Removals that cannot apply return the document unchanged.
func (doc *Document) Delete(pointer string) *Document {
	p, err := try.Apply(ParsePath, pointer)
	if err != nil {
		return doc
	}
	return doc.delete(p.(*Path))
}

func (doc *Document) delete(p *Path) *Document {
	out, ok := p.dissoc(doc.Root())
	if !ok {
		return doc
	}
	return DocumentFromValue(out)
}

// Contains returns whether the JSON Pointer addresses a node in the
// document.
func (doc *Document) Contains(pointer string) bool {
	_, found := doc.Find(pointer)
	return found
}

// Length returns the number of nodes in the document.
func (doc *Document) Length() int {
	var count int
	doc.Range(func(*Value) {
		count++
	})
	return count
}

// Range iterates over the document's nodes. Range can take a set of
// functions matched by type. If the function returns a bool this is
// treated as a loop termination variable, if false the loop will
// terminate.
//
//	func(*Path, *Value) iterates over paths and values.
//	func(*Path, *Value) bool
//	func(string, *Value) iterates over pointers and values.
//	func(string, *Value) bool
//	func(*Path) iterates over only the paths.
//	func(*Path) bool
//	func(string) iterates over only the pointers.
//	func(string) bool
//	func(*Value) iterates over only the values.
//	func(*Value) bool
func (doc *Document) Range(fn interface{}) *Document {
	rangeFn := genDocRangeFunc(fn)
	var recur func(*Path, *Value) bool
	recur = func(path *Path, elem *Value) bool {
		return elem.Perform(func(o *Object) bool {
			cont := rangeFn(path, elem)
			if !cont {
				return false
			}
			o.Range(func(key string, v *Value) bool {
				cont = recur(path.push(key), v)
				return cont
			})
			return cont
		}, func(a *Array) bool {
			cont := rangeFn(path, elem)
			if !cont {
				return false
			}
			a.Range(func(i int, v *Value) bool {
				cont = recur(path.addIndex(i), v)
				return cont
			})
			return cont
		}, func(other *Value) bool {
			return rangeFn(path, other)
		}).(bool)
	}
	path := &Path{}
	doc.Root().Perform(func(o *Object) {
		o.Range(func(key string, v *Value) bool {
			return recur(path.push(key), v)
		})
	}, func(a *Array) {
		a.Range(func(i int, v *Value) bool {
			return recur(path.addIndex(i), v)
		})
	}, func(other *Value) {
		rangeFn(path, other)
	})
	return doc
}

func genDocRangeFunc(fn interface{}) func(path *Path, v *Value) bool {
	switch f := fn.(type) {
	case func(*Path, *Value) bool:
		return f
	case func(*Path, *Value):
		return func(path *Path, value *Value) bool {
			f(path, value)
			return true
		}
	case func(string, *Value) bool:
		return func(path *Path, value *Value) bool {
			return f(path.String(), value)
		}
	case func(string, *Value):
		return func(path *Path, value *Value) bool {
			f(path.String(), value)
			return true
		}
	case func(*Value) bool:
		return func(_ *Path, value *Value) bool {
			return f(value)
		}
	case func(*Value):
		return func(_ *Path, value *Value) bool {
			f(value)
			return true
		}
	case func(*Path) bool:
		return func(path *Path, _ *Value) bool {
			return f(path)
		}
	case func(*Path):
		return func(path *Path, _ *Value) bool {
			f(path)
			return true
		}
	case func(string) bool:
		return func(path *Path, _ *Value) bool {
			return f(path.String())
		}
	case func(string):
		return func(path *Path, _ *Value) bool {
			f(path.String())
			return true
		}
	default:
		panic("invalid range function")
	}
}

// Marshal returns the document encoded as JSON text.
func (doc *Document) Marshal() ([]byte, error) {
	return doc.Root().Marshal()
}

// MarshalIndent returns the document encoded as indented JSON text.
func (doc *Document) MarshalIndent() ([]byte, error) {
	return doc.Root().MarshalIndent()
}

// Equal implements equality for the document. It compares the roots
// for equality.
func (doc *Document) Equal(other interface{}) bool {
	od, isDoc := other.(*Document)
	if !isDoc {
		return false
	}
	return equal(doc.Root(), od.Root())
}

// String returns a string representation of the document.
func (doc *Document) String() string {
	return doc.Root().String()
}

// Diff compares two documents and returns the operations required to
// edit the original to produce the other one.
func (doc *Document) Diff(other *Document) *EditOperation {
	return &EditOperation{
		Actions: doc.Root().diff(other.Root(), &Path{}),
	}
}

// Edit applies an EditOperation to the document. This allows for
// capturing large change sets as a piece of data that can be evaluated
// as document operations and applied to the document.
func (doc *Document) Edit(edit *EditOperation) *Document {
	op := edit.eval()
	return op(doc)
}
