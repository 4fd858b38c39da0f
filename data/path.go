// Copyright (c) 2026, the JWJSON authors.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package data

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"jsouthworth.net/go/try"
)

// PathNew builds a path from a sequence of tagged segments. A string
// segment addresses an object key, an int segment addresses an array
// index. Any other segment type panics; use the tolerant entry points
// on Value and Document if the segments are not statically known.
func PathNew(segments ...interface{}) *Path {
	return pathNew(segments)
}

func pathNew(segments []interface{}) *Path {
	segs := make([]segment, 0, len(segments))
	for _, s := range segments {
		switch v := s.(type) {
		case string:
			segs = append(segs, keySegment(v))
		case int:
			segs = append(segs, indexSegment(v))
		default:
			panic(fmt.Errorf(
				"invalid path segment %v (%T),"+
					" must be a string key or an int index",
				s, s))
		}
	}
	return &Path{segs: segs}
}

// ParsePath parses an RFC 6901 JSON Pointer into a Path.
// It panics on syntax errors.
//
// JSON Pointers match the following grammar:
//
//	json-pointer    = *( "/" reference-token )
//	reference-token = *( unescaped / escaped )
//	unescaped       = %x00-2E / %x30-7D / %x7F-10FFFF
//	                  ; %x2F ('/') and %x7E ('~') are escaped
//	escaped         = "~" ( "0" / "1" )
//	                  ; representing '~' and '/', respectively
//
// A pointer token is resolved against the container it addresses: on
// an object it is a member key, on an array it must be a non-negative
// integer index.
func ParsePath(pointer string) *Path {
	if pointer == "" {
		return &Path{}
	}
	if pointer[0] != '/' {
		panic(errors.New(
			"invalid JSON Pointer: must start with a \"/\""))
	}
	tokens := strings.Split(pointer[1:], "/")
	segs := make([]segment, 0, len(tokens))
	for _, token := range tokens {
		segs = append(segs, tokenSegment(unescapeToken(token)))
	}
	return &Path{segs: segs}
}

func unescapeToken(token string) string {
	if !strings.ContainsRune(token, '~') {
		return token
	}
	if strings.HasSuffix(token, "~") {
		panic(errors.New(
			"invalid JSON Pointer: truncated escape in token " +
				strconv.Quote(token)))
	}
	token = strings.ReplaceAll(token, "~1", "/")
	return strings.ReplaceAll(token, "~0", "~")
}

func escapeToken(token string) string {
	token = strings.ReplaceAll(token, "~", "~0")
	return strings.ReplaceAll(token, "/", "~1")
}

// Path addresses a location in a value tree as a sequence of object
// keys and array indices.
type Path struct {
	segs []segment
}

type segmentKind uint8

const (
	// segKey strictly addresses an object member.
	segKey segmentKind = iota
	// segIndex strictly addresses an array element.
	segIndex
	// segToken is a pointer token; whether it is a key or an
	// index depends on the container it addresses.
	segToken
)

type segment struct {
	kind  segmentKind
	key   string
	index int
}

func keySegment(key string) segment {
	return segment{kind: segKey, key: key}
}

func indexSegment(index int) segment {
	return segment{kind: segIndex, index: index}
}

func tokenSegment(token string) segment {
	// An index token is "0" or a digit run with no leading zero,
	// per the RFC 6901 array-index rule. Anything else can only
	// address an object member.
	index := -1
	if token == "0" || (allDigits(token) && token[0] != '0') {
		if i, err := strconv.Atoi(token); err == nil {
			index = i
		}
	}
	return segment{kind: segToken, key: token, index: index}
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// arrayIndex returns the index this segment addresses in an array and
// whether it can address one at all.
func (s segment) arrayIndex() (int, bool) {
	switch s.kind {
	case segIndex:
		return s.index, true
	case segToken:
		return s.index, s.index >= 0
	default:
		return 0, false
	}
}

// wants reports the variant this segment expects when it cannot be
// resolved against the current one.
func (s segment) wants() Type {
	if _, isIndex := s.arrayIndex(); isIndex {
		return TypeArray
	}
	return TypeObject
}

// step resolves one segment against a value per the subscript
// algorithm. It is total; every failure is encoded as an error-variant
// value, and a value that is already the error variant passes through
// so the remainder of a chain costs nothing. Resolved sub-values are
// returned in fresh wrappers; writing through a lookup result must
// never reach back into the tree it came from, and decoding shares
// equal scalar nodes across locations.
func (s segment) step(val *Value) *Value {
	if val == nil {
		return errorValue(mistypedError(s.wants(), TypeNull))
	}
	if val.IsError() {
		return &Value{data: val.data}
	}
	switch d := val.data.(type) {
	case *Object:
		if s.kind == segIndex {
			return errorValue(
				mistypedError(TypeArray, TypeObject))
		}
		v, ok := d.Find(s.key)
		if !ok {
			return errorValue(errMissingValue)
		}
		return &Value{data: v.data}
	case *Array:
		idx, isIndex := s.arrayIndex()
		if !isIndex {
			return errorValue(
				mistypedError(TypeObject, TypeArray))
		}
		v, ok := d.Find(idx)
		if !ok {
			return errorValue(errMissingValue)
		}
		return &Value{data: v.data}
	default:
		return errorValue(mistypedError(s.wants(), val.Type()))
	}
}

// MatchAgainst returns the value at the location represented by the
// path. Failures are returned as error-variant values.
func (p *Path) MatchAgainst(val *Value) *Value {
	cur := val
	for _, seg := range p.segs {
		cur = seg.step(cur)
	}
	return cur
}

// Find will traverse the tree to find the Value to which the path
// refers, and reports whether it was located.
func (p *Path) Find(val *Value) (*Value, bool) {
	out := p.MatchAgainst(val)
	if out.IsError() && (val == nil || !val.IsError()) {
		return nil, false
	}
	return out, true
}

// assoc produces a copy of val with newVal placed at the path, and
// whether the write applied. A write whose path prefix cannot be
// resolved does not apply; a terminal object key may insert, a
// terminal array index must be in bounds unless grow is set, in which
// case an index equal to the length appends.
func (p *Path) assoc(val, newVal *Value, grow bool) (*Value, bool) {
	return assocSegments(val, p.segs, newVal, grow)
}

func assocSegments(val *Value, segs []segment, newVal *Value, grow bool) (*Value, bool) {
	if len(segs) == 0 {
		return newVal, true
	}
	if val == nil || val.IsError() {
		return val, false
	}
	seg := segs[0]
	switch d := val.data.(type) {
	case *Object:
		if seg.kind == segIndex {
			return val, false
		}
		if len(segs) == 1 {
			return &Value{data: d.Assoc(seg.key, newVal)}, true
		}
		child, ok := d.Find(seg.key)
		if !ok {
			return val, false
		}
		out, ok := assocSegments(child, segs[1:], newVal, grow)
		if !ok {
			return val, false
		}
		return &Value{data: d.Assoc(seg.key, out)}, true
	case *Array:
		idx, isIndex := seg.arrayIndex()
		if !isIndex {
			return val, false
		}
		if len(segs) == 1 {
			if grow && idx == d.Length() {
				return &Value{data: d.Append(newVal)}, true
			}
			if !d.Contains(idx) {
				return val, false
			}
			return &Value{data: d.Assoc(idx, newVal)}, true
		}
		if !d.Contains(idx) {
			return val, false
		}
		out, ok := assocSegments(d.At(idx), segs[1:], newVal, grow)
		if !ok {
			return val, false
		}
		return &Value{data: d.Assoc(idx, out)}, true
	default:
		return val, false
	}
}

// dissoc produces a copy of val with the location at the path removed,
// and whether the removal applied.
func (p *Path) dissoc(val *Value) (*Value, bool) {
	return dissocSegments(val, p.segs)
}

func dissocSegments(val *Value, segs []segment) (*Value, bool) {
	if len(segs) == 0 || val == nil || val.IsError() {
		return val, false
	}
	seg := segs[0]
	switch d := val.data.(type) {
	case *Object:
		if seg.kind == segIndex || !d.Contains(seg.key) {
			return val, false
		}
		if len(segs) == 1 {
			return &Value{data: d.Delete(seg.key)}, true
		}
		out, ok := dissocSegments(d.At(seg.key), segs[1:])
		if !ok {
			return val, false
		}
		return &Value{data: d.Assoc(seg.key, out)}, true
	case *Array:
		idx, isIndex := seg.arrayIndex()
		if !isIndex || !d.Contains(idx) {
			return val, false
		}
		if len(segs) == 1 {
			return &Value{data: d.Delete(idx)}, true
		}
		out, ok := dissocSegments(d.At(idx), segs[1:])
		if !ok {
			return val, false
		}
		return &Value{data: d.Assoc(idx, out)}, true
	default:
		return val, false
	}
}

// push returns a new path with an object key segment appended.
func (p *Path) push(key string) *Path {
	return p.append(keySegment(key))
}

// addIndex returns a new path with an array index segment appended.
func (p *Path) addIndex(index int) *Path {
	return p.append(indexSegment(index))
}

func (p *Path) append(seg segment) *Path {
	segs := make([]segment, len(p.segs), len(p.segs)+1)
	copy(segs, p.segs)
	return &Path{segs: append(segs, seg)}
}

// Length returns the number of segments in the path.
func (p *Path) Length() int {
	return len(p.segs)
}

// String formats the path as an RFC 6901 JSON Pointer. The empty path
// formats as the empty pointer, addressing the whole document.
func (p *Path) String() string {
	var b strings.Builder
	for _, seg := range p.segs {
		b.WriteByte('/')
		if seg.kind == segIndex {
			b.WriteString(strconv.Itoa(seg.index))
			continue
		}
		b.WriteString(escapeToken(seg.key))
	}
	return b.String()
}

// Equal determines if two paths address the same location.
// It implements a common equality interface so other must be
// interface{}.
func (p *Path) Equal(other interface{}) bool {
	op, isPath := other.(*Path)
	return isPath &&
		op.String() == p.String()
}

// MarshalJSON encodes the path as a JSON Pointer string.
func (p *Path) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON parses a JSON Pointer string into the path.
func (p *Path) UnmarshalJSON(msg []byte) (err error) {
	var s string
	err = json.Unmarshal(msg, &s)
	if err != nil {
		return err
	}
	parsed, err := try.Apply(ParsePath, s)
	if err != nil {
		return err
	}
	p.segs = parsed.(*Path).segs
	return nil
}

// At walks the value left to right over the supplied segments and
// returns the addressed sub-value. A string segment looks up an object
// key, an int segment an array index. At is total: absent keys and out
// of bounds indices yield the error variant carrying ErrMissingValue,
// a segment applied to the wrong container yields ErrMistyped, and an
// error-variant value short-circuits the rest of the chain unchanged,
// so the caller only checks for failure once at the end. An empty
// segment list returns the value itself.
func (val *Value) At(segments ...interface{}) *Value {
	out, err := try.Apply(func() *Value {
		return pathNew(segments).MatchAgainst(val)
	})
	if err != nil {
		return errorValue(underlyingError(err))
	}
	return out.(*Value)
}

// AtPointer is At with the path expressed as an RFC 6901 JSON Pointer.
// Pointer syntax errors are encoded as error-variant values.
func (val *Value) AtPointer(pointer string) *Value {
	out, err := try.Apply(func() *Value {
		return ParsePath(pointer).MatchAgainst(val)
	})
	if err != nil {
		return errorValue(underlyingError(err))
	}
	return out.(*Value)
}

// Set writes value at the location addressed by the segments,
// replacing this value's payload with the updated tree. Set never
// fails; a write whose path cannot be fully resolved is silently
// ignored. A key that does not yet exist in an object is inserted, but
// an index outside an array's bounds is not: objects may gain members
// on write, arrays never gain slots. An empty segment list overwrites
// the whole payload, as SetValue does.
func (val *Value) Set(value interface{}, segments ...interface{}) {
	p, err := try.Apply(pathNew, segments)
	if err != nil {
		return
	}
	val.set(p.(*Path), writeValue(value))
}

// SetPointer is Set with the path expressed as an RFC 6901 JSON
// Pointer. Pointer syntax errors make the write a no-op.
func (val *Value) SetPointer(pointer string, value interface{}) {
	p, err := try.Apply(ParsePath, pointer)
	if err != nil {
		return
	}
	val.set(p.(*Path), writeValue(value))
}

func (val *Value) set(p *Path, newVal *Value) {
	out, ok := p.assoc(val, newVal, false)
	if !ok {
		return
	}
	val.data = out.data
}

// Delete removes the location addressed by the segments, replacing
// this value's payload with the updated tree. Like Set it never fails;
// unresolvable paths are silently ignored.
func (val *Value) Delete(segments ...interface{}) {
	p, err := try.Apply(pathNew, segments)
	if err != nil {
		return
	}
	out, ok := p.(*Path).dissoc(val)
	if !ok {
		return
	}
	val.data = out.data
}
