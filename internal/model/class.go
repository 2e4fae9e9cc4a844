package model

import (
	"github.com/phobologic/gddocs/internal/reference"
)

// Class is the documentation model of one GDScript class.
type Class struct {
	Name        string
	Extends     string // Direct parent, "" when none
	Description string
	Path        string
	Functions   []Function // Methods first, then static functions
	Members     []Member
	Signals     []Signal
	Enums       []Enumeration
	Constants   []Constant
	SubClasses  []*Class
	Metadata    Metadata

	symbols map[string]struct{}
}

// NewClass builds a class from its raw entry.
func NewClass(raw reference.Class) *Class {
	desc, meta := ExtractMetadata(raw.Description)

	var extends string
	if len(raw.ExtendsClass) > 0 {
		extends = raw.ExtendsClass[0]
	}

	c := &Class{
		Name:        raw.Name,
		Extends:     extends,
		Description: desc,
		Path:        raw.Path,
		Functions: append(
			newFunctions(raw.Methods, false),
			newFunctions(raw.StaticFunctions, true)...,
		),
		Members:   newMembers(raw.Members),
		Signals:   newSignals(raw.Signals),
		Enums:     newEnumerations(raw.Constants),
		Constants: newConstants(raw.Constants),
		Metadata:  meta,
	}
	for _, sub := range raw.SubClasses {
		c.SubClasses = append(c.SubClasses, NewClass(sub))
	}

	c.symbols = make(map[string]struct{})
	for _, e := range c.Elements() {
		c.symbols[e.Base().Name] = struct{}{}
	}
	return c
}

// Elements returns the functions, members, signals and enums of the class,
// in that order. These are the symbols cross references can point to.
func (c *Class) Elements() []Element {
	var out []Element
	for _, f := range c.Functions {
		out = append(out, f)
	}
	for _, m := range c.Members {
		out = append(out, m)
	}
	for _, s := range c.Signals {
		out = append(out, s)
	}
	for _, e := range c.Enums {
		out = append(out, e)
	}
	return out
}

// HasSymbol reports whether the class documents a symbol called name.
func (c *Class) HasSymbol(name string) bool {
	_, ok := c.symbols[name]
	return ok
}

// Category returns the category directive of the class description.
func (c *Class) Category() string {
	return c.Metadata.Category
}

// Abstract reports whether the class is tagged abstract.
func (c *Class) Abstract() bool {
	return c.Metadata.HasTag("abstract")
}

// StaticFunctions returns the static functions of the class.
func (c *Class) StaticFunctions() []Function {
	return c.functions(func(f Function) bool { return f.Kind == Static })
}

// InstanceFunctions returns the methods and virtual methods of the class.
func (c *Class) InstanceFunctions() []Function {
	return c.functions(func(f Function) bool { return f.Kind != Static })
}

func (c *Class) functions(keep func(Function) bool) []Function {
	var out []Function
	for _, f := range c.Functions {
		if keep(f) {
			out = append(out, f)
		}
	}
	return out
}
