package model

import (
	"sort"
	"strings"

	"github.com/phobologic/gddocs/internal/reference"
)

// builtinCallbacks are engine virtual callbacks that are never documented.
var builtinCallbacks = map[string]struct{}{
	"_process":                   {},
	"_physics_process":           {},
	"_input":                     {},
	"_unhandled_input":           {},
	"_gui_input":                 {},
	"_draw":                      {},
	"_get_configuration_warning": {},
	"_ready":                     {},
	"_enter_tree":                {},
	"_exit_tree":                 {},
	"_get":                       {},
	"_get_property_list":         {},
	"_notification":              {},
	"_set":                       {},
	"_to_string":                 {},
	"_clips_input":               {},
	"_get_minimum_size":          {},
	"_make_custom_tooltip":       {},
}

const (
	constructorName = "_init"
	privatePrefix   = "_"
	dictionaryType  = "Dictionary"
	virtualTag      = "virtual"
)

// IsBuiltinCallback reports whether name is an engine callback that is
// excluded from the reference.
func IsBuiltinCallback(name string) bool {
	_, ok := builtinCallbacks[name]
	return ok
}

func isPrivate(name string) bool {
	return strings.HasPrefix(name, privatePrefix)
}

func newSymbol(signature, name, description string) Symbol {
	desc, meta := ExtractMetadata(description)
	return Symbol{
		Signature:   signature,
		Name:        name,
		Description: desc,
		Metadata:    meta,
	}
}

func newArguments(raw []reference.Argument) []Argument {
	if len(raw) == 0 {
		return nil
	}
	args := make([]Argument, len(raw))
	for i, a := range raw {
		args[i] = Argument{Name: a.Name, Type: a.Type}
	}
	return args
}

// NewSignal converts a raw signal entry. Signals are never filtered.
func NewSignal(raw reference.Signal) Signal {
	return Signal{
		Symbol:    newSymbol(raw.Signature, raw.Name, raw.Description),
		Arguments: newArguments(raw.Arguments),
	}
}

// NewFunction converts a raw function entry. isStatic tells whether the entry
// came from the "static_functions" list. It returns false for built-in
// callbacks, argument-less constructors and private functions not tagged
// virtual.
func NewFunction(raw reference.Function, isStatic bool) (Function, bool) {
	if IsBuiltinCallback(raw.Name) {
		return Function{}, false
	}
	if raw.Name == constructorName && len(raw.Arguments) == 0 {
		return Function{}, false
	}

	sym := newSymbol(raw.Signature, raw.Name, raw.Description)
	isVirtual := sym.Metadata.HasTag(virtualTag) && !isStatic
	if isPrivate(raw.Name) && !isVirtual && raw.Name != constructorName {
		return Function{}, false
	}

	kind := Method
	switch {
	case isStatic:
		kind = Static
	case isVirtual:
		kind = Virtual
	}

	sym.Signature = strings.Replace(sym.Signature, "-> null", "-> void", 1)
	return Function{
		Symbol:     sym,
		Kind:       kind,
		ReturnType: strings.Replace(raw.ReturnType, "null", "void", 1),
		Arguments:  newArguments(raw.Arguments),
		RPCMode:    raw.RPCMode,
	}, true
}

// NewMember converts a raw member entry. Private members are always skipped.
func NewMember(raw reference.Member) (Member, bool) {
	if isPrivate(raw.Name) {
		return Member{}, false
	}
	return Member{
		Symbol:       newSymbol(raw.Signature, raw.Name, raw.Description),
		Type:         raw.DataType,
		DefaultValue: raw.DefaultValue,
		Exported:     raw.Export,
		Setter:       raw.Setter,
		Getter:       raw.Getter,
	}, true
}

// NewEnumeration converts a Dictionary constant into an enumeration. Scalar
// and private constants are rejected.
func NewEnumeration(raw reference.Constant) (Enumeration, bool) {
	if raw.DataType != dictionaryType || isPrivate(raw.Name) {
		return Enumeration{}, false
	}
	values := make(map[string]int, len(raw.Values))
	for k, v := range raw.Values {
		values[k] = v
	}
	return Enumeration{
		Symbol: newSymbol(raw.Signature, raw.Name, raw.Description),
		Values: values,
	}, true
}

// NewConstant converts a scalar constant. Dictionary and private constants
// are rejected.
func NewConstant(raw reference.Constant) (Constant, bool) {
	if raw.DataType == dictionaryType || isPrivate(raw.Name) {
		return Constant{}, false
	}
	return Constant{
		Symbol: newSymbol(raw.Signature, raw.Name, raw.Description),
		Type:   raw.DataType,
		Value:  raw.Value,
	}, true
}

func newFunctions(raw []reference.Function, isStatic bool) []Function {
	var out []Function
	for _, entry := range raw {
		if fn, ok := NewFunction(entry, isStatic); ok {
			out = append(out, fn)
		}
	}
	return out
}

func newMembers(raw []reference.Member) []Member {
	var out []Member
	for _, entry := range raw {
		if m, ok := NewMember(entry); ok {
			out = append(out, m)
		}
	}
	return out
}

func newSignals(raw []reference.Signal) []Signal {
	var out []Signal
	for _, entry := range raw {
		out = append(out, NewSignal(entry))
	}
	return out
}

func newEnumerations(raw []reference.Constant) []Enumeration {
	var out []Enumeration
	for _, entry := range raw {
		if e, ok := NewEnumeration(entry); ok {
			out = append(out, e)
		}
	}
	return out
}

func newConstants(raw []reference.Constant) []Constant {
	var out []Constant
	for _, entry := range raw {
		if c, ok := NewConstant(entry); ok {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}
