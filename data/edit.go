// Copyright (c) 2026, the JWJSON authors.
//
// SPDX-License-Identifier: MPL-2.0

package data

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	// EditAssoc is the edit action associated with the Assoc operation.
	EditAssoc EditAction = "assoc"
	// EditDelete is the edit action associated with the Delete operation.
	EditDelete EditAction = "delete"
	// EditMerge is the edit action associated with the Merge operation.
	EditMerge EditAction = "merge"
)

// EditAction is an action that can be performed by the edit engine.
type EditAction string

// UnmarshalJSON unmarshals the JSON encoded message into the EditAction.
func (e *EditAction) UnmarshalJSON(msg []byte) error {
	var s string
	err := json.Unmarshal(msg, &s)
	if err != nil {
		return err
	}
	switch s {
	case "assoc":
		*e = EditAssoc
	case "delete":
		*e = EditDelete
	case "merge":
		*e = EditMerge
	default:
		return errors.New("unknown edit-action " + string(msg))
	}
	return nil
}

// MarshalJSON returns the EditAction as JSON encoded data.
func (e EditAction) MarshalJSON() ([]byte, error) {
	switch e {
	case EditAssoc, EditDelete, EditMerge:
		s := e.String()
		return []byte("\"" + s + "\""), nil
	default:
		return nil, fmt.Errorf("unknown edit-action %v", e)
	}
}

// String returns the EditAction as a string.
func (e EditAction) String() string {
	return string(e)
}

// EditEntry contains the action to perform as well as the JSON
// Pointer to perform it at and the value if any to be used.
type EditEntry struct {
	Action EditAction `json:"action"`
	Path   *Path      `json:"path"`
	Value  *Value     `json:"value,omitempty"`
}

func (e *EditEntry) evalAssoc() func(*Document) *Document {
	path, value := e.Path, e.Value
	return func(doc *Document) *Document {
		// Diffs of grown arrays assoc one past the last
		// element, so appends are allowed here.
		return doc.assoc(path, value, true)
	}
}
func (e *EditEntry) evalDelete() func(*Document) *Document {
	path := e.Path
	return func(doc *Document) *Document {
		return doc.delete(path)
	}
}
func (e *EditEntry) evalMerge() func(*Document) *Document {
	path, value := e.Path, e.Value
	return func(doc *Document) *Document {
		val, found := doc.find(path)
		if !found {
			return doc
		}
		val = val.Merge(value)
		return doc.assoc(path, val, true)
	}
}
func (e *EditEntry) eval() func(*Document) *Document {
	switch e.Action {
	case EditAssoc:
		return e.evalAssoc()
	case EditDelete:
		return e.evalDelete()
	case EditMerge:
		return e.evalMerge()
	default:
		panic(fmt.Errorf("unknown edit-action %v", e.Action))
	}
}

// EditOperation holds edit actions and allows them to be encoded as
// JSON data.
type EditOperation struct {
	Actions []EditEntry `json:"actions,omitempty"`
}

// String returns a string representation of the EditOperation.
func (e *EditOperation) String() string {
	data, _ := json.Marshal(e)
	return string(data)
}

func (e *EditOperation) eval() func(*Document) *Document {
	actions := make([]func(*Document) *Document, len(e.Actions))
	for i, action := range e.Actions {
		actions[i] = action.eval()
	}
	return func(doc *Document) *Document {
		for _, action := range actions {
			doc = action(doc)
		}
		return doc
	}
}

// EditOperationNew produces a new EditOperation from the provided
// entries. This allows one to declaratively build an EditOperation.
func EditOperationNew(entries ...EditEntry) *EditOperation {
	return &EditOperation{
		Actions: entries,
	}
}

type editEntryOptions struct {
	value *Value
}

// EditEntryOption is a constructor for the optional parts of an EditEntry.
type EditEntryOption func(*editEntryOptions)

// EditEntryValue produces an EditEntryOption that populates the value
// field of an EditEntry.
func EditEntryValue(val interface{}) EditEntryOption {
	return func(o *editEntryOptions) {
		o.value = writeValue(val)
	}
}

// EditEntryNew constructs a new EditEntry from the provided
// parameters. The path is an RFC 6901 JSON Pointer. The last option
// in wins if they write the same option.
func EditEntryNew(action EditAction, path string, options ...EditEntryOption) EditEntry {
	var opts editEntryOptions
	for _, option := range options {
		option(&opts)
	}
	return EditEntry{
		Action: action,
		Path:   ParsePath(path),
		Value:  opts.value,
	}
}
