// Package reference decodes the JSON reference dump written by Godot's
// GDScript language server into explicit, presence-checked structs.
package reference

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidEntry is wrapped by every error reporting a symbol entry that
// lacks a required key.
var ErrInvalidEntry = errors.New("invalid symbol entry")

// EntryError describes one symbol entry with a missing required key.
type EntryError struct {
	Class string // Owning class name
	Kind  string // "method", "static_function", "member", "signal", "constant"
	Index int    // Position of the entry in its raw list
	Key   string
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("class %q: %s entry %d: missing key %q", e.Class, e.Kind, e.Index, e.Key)
}

func (e *EntryError) Unwrap() error {
	return ErrInvalidEntry
}

// Project holds the optional project fields of a reference file.
type Project struct {
	Name        string
	Description string
	Version     string
}

// File is the decoded content of one reference file.
type File struct {
	Project *Project // nil when the file is a bare class array
	Classes []Class
	Skipped int // Class entries dropped for lacking a name
}

// Argument is a function or signal parameter.
type Argument struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// UnmarshalJSON accepts both the object form and the bare-name string form
// Godot uses for signal arguments.
func (a *Argument) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*a = Argument{Name: name}
		return nil
	}
	type plain Argument
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*a = Argument(p)
	return nil
}

// Signal is a raw signal entry.
type Signal struct {
	Name        string
	Signature   string
	Description string
	Arguments   []Argument
}

// Function is a raw entry from the "methods" or "static_functions" lists.
type Function struct {
	Name        string
	Signature   string
	Description string
	ReturnType  string
	Arguments   []Argument
	RPCMode     int
}

// Member is a raw member variable entry.
type Member struct {
	Name         string
	Signature    string
	Description  string
	DataType     string
	DefaultValue string
	Export       bool
	Setter       string
	Getter       string
}

// Constant is a raw constant entry. Values is set for Dictionary constants
// whose value maps names to integers, which is how enums are exported.
type Constant struct {
	Name        string
	Signature   string
	Description string
	DataType    string
	Value       string
	Values      map[string]int
}

// Class is a raw class entry.
type Class struct {
	Name            string
	Path            string
	Description     string
	ExtendsClass    []string
	Methods         []Function
	StaticFunctions []Function
	Members         []Member
	Signals         []Signal
	Constants       []Constant
	SubClasses      []Class
}

// Decode parses a reference file. The data is either a JSON array of class
// objects or an object with project fields and a "classes" array.
func Decode(data []byte) (*File, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("empty reference data")
	}

	f := &File{}
	var rawClasses []json.RawMessage

	if data[0] == '[' {
		if err := json.Unmarshal(data, &rawClasses); err != nil {
			return nil, fmt.Errorf("decoding class list: %w", err)
		}
	} else {
		var top object
		if err := json.Unmarshal(data, &top); err != nil {
			return nil, fmt.Errorf("decoding reference object: %w", err)
		}
		p := &Project{}
		var errs []error
		errs = append(errs,
			top.optional("name", &p.Name),
			top.optional("description", &p.Description),
			top.optional("version", &p.Version),
			top.optional("classes", &rawClasses),
		)
		if err := errors.Join(errs...); err != nil {
			return nil, err
		}
		if p.Name != "" || p.Description != "" || p.Version != "" {
			f.Project = p
		}
	}

	var errs []error
	for i, raw := range rawClasses {
		var obj object
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("class entry %d: %w", i, err)
		}
		if !obj.has("name") {
			f.Skipped++
			continue
		}
		cls, err := decodeClass(obj)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		f.Classes = append(f.Classes, cls)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return f, nil
}

func decodeClass(obj object) (Class, error) {
	var c Class
	var rawMethods, rawStatics, rawMembers, rawSignals, rawConstants, rawSubs []object

	errs := []error{
		obj.optional("name", &c.Name),
		obj.optional("path", &c.Path),
		obj.optional("description", &c.Description),
		obj.optional("extends_class", &c.ExtendsClass),
		obj.optional("methods", &rawMethods),
		obj.optional("static_functions", &rawStatics),
		obj.optional("members", &rawMembers),
		obj.optional("signals", &rawSignals),
		obj.optional("constants", &rawConstants),
		obj.optional("sub_classes", &rawSubs),
	}
	if err := errors.Join(errs...); err != nil {
		return Class{}, fmt.Errorf("class %q: %w", c.Name, err)
	}

	for i, o := range rawMethods {
		fn, err := decodeFunction(o)
		if err != nil {
			errs = append(errs, wrapEntry(err, c.Name, "method", i))
			continue
		}
		c.Methods = append(c.Methods, fn)
	}
	for i, o := range rawStatics {
		fn, err := decodeFunction(o)
		if err != nil {
			errs = append(errs, wrapEntry(err, c.Name, "static_function", i))
			continue
		}
		c.StaticFunctions = append(c.StaticFunctions, fn)
	}
	for i, o := range rawMembers {
		m, err := decodeMember(o)
		if err != nil {
			errs = append(errs, wrapEntry(err, c.Name, "member", i))
			continue
		}
		c.Members = append(c.Members, m)
	}
	for i, o := range rawSignals {
		s, err := decodeSignal(o)
		if err != nil {
			errs = append(errs, wrapEntry(err, c.Name, "signal", i))
			continue
		}
		c.Signals = append(c.Signals, s)
	}
	for i, o := range rawConstants {
		k, err := decodeConstant(o)
		if err != nil {
			errs = append(errs, wrapEntry(err, c.Name, "constant", i))
			continue
		}
		c.Constants = append(c.Constants, k)
	}
	for _, o := range rawSubs {
		if !o.has("name") {
			continue
		}
		sub, err := decodeClass(o)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		c.SubClasses = append(c.SubClasses, sub)
	}

	if err := errors.Join(errs...); err != nil {
		return Class{}, err
	}
	return c, nil
}

func decodeFunction(o object) (Function, error) {
	var fn Function
	err := errors.Join(
		o.required("name", &fn.Name),
		o.required("signature", &fn.Signature),
		o.required("return_type", &fn.ReturnType),
		o.required("arguments", &fn.Arguments),
		o.optional("description", &fn.Description),
		o.optional("rpc_mode", &fn.RPCMode),
	)
	return fn, err
}

func decodeSignal(o object) (Signal, error) {
	var s Signal
	err := errors.Join(
		o.required("name", &s.Name),
		o.required("signature", &s.Signature),
		o.optional("description", &s.Description),
		o.optional("arguments", &s.Arguments),
	)
	return s, err
}

func decodeMember(o object) (Member, error) {
	var m Member
	err := errors.Join(
		o.required("name", &m.Name),
		o.required("signature", &m.Signature),
		o.required("data_type", &m.DataType),
		o.optional("description", &m.Description),
		o.optional("export", &m.Export),
		o.optional("setter", &m.Setter),
		o.optional("getter", &m.Getter),
	)
	m.DefaultValue = o.text("default_value")
	return m, err
}

func decodeConstant(o object) (Constant, error) {
	var k Constant
	err := errors.Join(
		o.required("name", &k.Name),
		o.required("signature", &k.Signature),
		o.required("data_type", &k.DataType),
		o.optional("description", &k.Description),
	)
	if !o.has("value") {
		err = errors.Join(err, &missingKey{key: "value"})
	}
	k.Value = o.text("value")
	if k.DataType == "Dictionary" {
		var values map[string]int
		if json.Unmarshal(o["value"], &values) == nil {
			k.Values = values
		}
	}
	return k, err
}

// missingKey is an internal marker turned into an EntryError by wrapEntry.
type missingKey struct {
	key string
}

func (m *missingKey) Error() string {
	return fmt.Sprintf("missing key %q", m.key)
}

// wrapEntry converts the missing-key markers in err into EntryErrors.
func wrapEntry(err error, class, kind string, index int) error {
	var out []error
	for _, e := range flatten(err) {
		var mk *missingKey
		if errors.As(e, &mk) {
			out = append(out, &EntryError{Class: class, Kind: kind, Index: index, Key: mk.key})
			continue
		}
		out = append(out, fmt.Errorf("class %q: %s entry %d: %w", class, kind, index, e))
	}
	return errors.Join(out...)
}

func flatten(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, flatten(e)...)
		}
		return out
	}
	return []error{err}
}

// object is a JSON object whose values are decoded lazily, so key presence
// can be checked before decoding.
type object map[string]json.RawMessage

func (o object) has(key string) bool {
	_, ok := o[key]
	return ok
}

func (o object) required(key string, v any) error {
	if !o.has(key) {
		return &missingKey{key: key}
	}
	return o.optional(key, v)
}

func (o object) optional(key string, v any) error {
	raw, ok := o[key]
	if !ok || isNull(raw) {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("key %q: %w", key, err)
	}
	return nil
}

// text returns a scalar value as display text: strings verbatim, null or
// absent as "", anything else as its compact JSON form.
func (o object) text(key string) string {
	raw, ok := o[key]
	if !ok || isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return strings.TrimSpace(string(raw))
	}
	return buf.String()
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}
