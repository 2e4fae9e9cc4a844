package model

import (
	"sort"

	"github.com/phobologic/gddocs/internal/graph"
	"github.com/phobologic/gddocs/internal/reference"
)

// Collection is an ordered, immutable set of classes with the lookup tables
// used to resolve cross references and inheritance.
type Collection struct {
	classes   []*Class
	byName    map[string]*Class
	hierarchy *graph.Hierarchy
}

// NameFilter decides which classes are left out of a collection.
type NameFilter interface {
	Excluded(name string) bool
}

// NewCollection builds classes from raw entries, skipping entries without a
// name.
func NewCollection(raw []reference.Class) *Collection {
	var classes []*Class
	for _, entry := range raw {
		if entry.Name == "" {
			continue
		}
		classes = append(classes, NewClass(entry))
	}
	return newCollection(classes)
}

func newCollection(classes []*Class) *Collection {
	c := &Collection{
		classes: classes,
		byName:  make(map[string]*Class, len(classes)),
	}
	edges := make([]graph.Edge, 0, len(classes))
	for _, cls := range classes {
		if _, dup := c.byName[cls.Name]; !dup {
			c.byName[cls.Name] = cls
		}
		edges = append(edges, graph.Edge{Child: cls.Name, Parent: cls.Extends})
	}
	c.hierarchy = graph.NewHierarchy(edges)
	return c
}

// Without returns a new collection lacking the classes filter excludes.
func (c *Collection) Without(filter NameFilter) *Collection {
	var kept []*Class
	for _, cls := range c.classes {
		if !filter.Excluded(cls.Name) {
			kept = append(kept, cls)
		}
	}
	return newCollection(kept)
}

// Classes returns a copy of the class list in input order.
func (c *Collection) Classes() []*Class {
	return append([]*Class(nil), c.classes...)
}

// Len returns the number of classes.
func (c *Collection) Len() int {
	return len(c.classes)
}

// Lookup returns the first class called name.
func (c *Collection) Lookup(name string) (*Class, bool) {
	cls, ok := c.byName[name]
	return cls, ok
}

// HasSymbol reports whether class exists and documents symbol.
func (c *Collection) HasSymbol(class, symbol string) bool {
	cls, ok := c.byName[class]
	return ok && cls.HasSymbol(symbol)
}

// ExtendsChain returns the ancestors of cls, nearest first. Parents missing
// from the collection end the chain. An inheritance cycle truncates the chain
// before the first repeated name.
func (c *Collection) ExtendsChain(cls *Class) []string {
	if cls.Extends == "" || cls.Extends == cls.Name {
		return nil
	}
	if c.byName[cls.Name] != cls {
		// Not indexed under its name, e.g. an inner class or a duplicate.
		chain := []string{cls.Extends}
		for _, name := range c.hierarchy.Ancestors(cls.Extends) {
			if name == cls.Name {
				break
			}
			chain = append(chain, name)
		}
		return chain
	}
	return c.hierarchy.Ancestors(cls.Name)
}

// Cycles returns the inheritance cycles among the classes.
func (c *Collection) Cycles() [][]string {
	return c.hierarchy.Cycles()
}

// GroupByCategory stable-sorts the classes by category and groups equal
// categories. Uncategorized classes form the first group.
func (c *Collection) GroupByCategory() [][]*Class {
	if len(c.classes) == 0 {
		return nil
	}

	sorted := append([]*Class(nil), c.classes...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Category() < sorted[j].Category()
	})

	var groups [][]*Class
	start := 0
	for i := 1; i <= len(sorted); i++ {
		if i == len(sorted) || sorted[i].Category() != sorted[start].Category() {
			groups = append(groups, sorted[start:i:i])
			start = i
		}
	}
	return groups
}
