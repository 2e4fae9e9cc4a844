// Package graph models the class inheritance hierarchy as a directed graph
// and resolves ancestor chains with cycle detection.
package graph

import (
	"sort"

	"github.com/dominikbraun/graph"
)

// Edge declares that Child extends Parent.
type Edge struct {
	Child  string
	Parent string
}

// Hierarchy is an immutable inheritance graph. Every name has at most one
// parent; names that only ever appear as parents are leaves of the walk.
type Hierarchy struct {
	g       graph.Graph[string, string]
	parents map[string]map[string]graph.Edge[string]
}

// NewHierarchy builds a hierarchy from edges. When a child is declared more
// than once, the first declaration wins. Edges with an empty parent only
// register the child.
func NewHierarchy(edges []Edge) *Hierarchy {
	g := graph.New(graph.StringHash, graph.Directed())
	declared := make(map[string]struct{}, len(edges))

	for _, e := range edges {
		addVertex(g, e.Child)
		if _, ok := declared[e.Child]; ok {
			continue
		}
		declared[e.Child] = struct{}{}
		if e.Parent == "" {
			continue
		}
		addVertex(g, e.Parent)
		_ = g.AddEdge(e.Child, e.Parent)
	}

	adj, err := g.AdjacencyMap()
	if err != nil {
		adj = map[string]map[string]graph.Edge[string]{}
	}
	return &Hierarchy{g: g, parents: adj}
}

// addVertex adds name unless it is already present; AddVertex only fails
// with ErrVertexAlreadyExists for the in-memory store.
func addVertex(g graph.Graph[string, string], name string) {
	_ = g.AddVertex(name)
}

// Parent returns the direct parent of name, or "" if it has none.
func (h *Hierarchy) Parent(name string) string {
	for target := range h.parents[name] {
		return target
	}
	return ""
}

// Ancestors returns the parent chain of name, nearest first. The walk stops
// at a name without a parent or at the first name already visited, so an
// inheritance cycle yields a truncated chain instead of looping.
func (h *Hierarchy) Ancestors(name string) []string {
	visited := map[string]struct{}{name: {}}
	var chain []string
	for next := h.Parent(name); next != ""; next = h.Parent(next) {
		if _, seen := visited[next]; seen {
			break
		}
		visited[next] = struct{}{}
		chain = append(chain, next)
	}
	return chain
}

// Cycles returns every inheritance cycle, each sorted by name, ordered by
// their first member.
func (h *Hierarchy) Cycles() [][]string {
	var cycles [][]string

	components, err := graph.StronglyConnectedComponents(h.g)
	if err == nil {
		for _, c := range components {
			if len(c) > 1 {
				cycle := append([]string(nil), c...)
				sort.Strings(cycle)
				cycles = append(cycles, cycle)
			}
		}
	}

	for child, out := range h.parents {
		if _, self := out[child]; self {
			cycles = append(cycles, []string{child})
		}
	}

	sort.Slice(cycles, func(i, j int) bool {
		return cycles[i][0] < cycles[j][0]
	})
	return cycles
}
