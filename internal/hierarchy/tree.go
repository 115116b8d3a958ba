// Package hierarchy builds display trees from flat lists of entities that
// carry an optional parent reference, and flattens them back into
// depth-first order for indented list views. Trees are transient; nothing
// here is persisted.
package hierarchy

import (
	"fmt"
	"sort"
)

// Node wraps an entity with its computed tree position. Path is the ordered
// ancestor-to-self ID list; Level equals len(Path)-1.
type Node[T any] struct {
	Entity   T
	Children []*Node[T]
	Level    int
	Path     []string
}

// CycleError reports a parent-reference loop in the flat input.
type CycleError struct {
	ID string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic hierarchy: entity %q is its own ancestor", e.ID)
}

// Build converts a flat list into sorted root nodes. id and parent extract
// identifiers from an entity; an empty parent makes the entity a root, and a
// parent ID absent from the list also makes it a root rather than failing.
// less orders siblings at every depth. A parent-reference loop returns a
// CycleError instead of recursing forever.
func Build[T any](items []T, id, parent func(T) string, less func(a, b T) bool) ([]*Node[T], error) {
	byID := make(map[string]*Node[T], len(items))
	order := make([]*Node[T], 0, len(items))
	for _, item := range items {
		n := &Node[T]{Entity: item}
		byID[id(item)] = n
		order = append(order, n)
	}

	// Acyclicity check up front: follow parent pointers from every entity
	// with a visited set; revisiting any ID means a loop.
	for _, start := range order {
		visited := make(map[string]bool)
		n := start
		for {
			selfID := id(n.Entity)
			if visited[selfID] {
				return nil, &CycleError{ID: id(start.Entity)}
			}
			visited[selfID] = true

			p, ok := byID[parent(n.Entity)]
			if !ok {
				break // root or dangling parent terminates the chain
			}
			n = p
		}
	}

	var roots []*Node[T]
	for _, n := range order {
		p, ok := byID[parent(n.Entity)]
		if !ok {
			roots = append(roots, n)
			continue
		}
		p.Children = append(p.Children, n)
	}

	for _, root := range roots {
		assign(root, 0, nil, id)
	}
	sortNodes(roots, less)

	return roots, nil
}

// assign walks the attached tree setting Level and Path; the input list may
// name children before their parents, so positions are only known here.
func assign[T any](n *Node[T], level int, ancestors []string, id func(T) string) {
	n.Level = level
	n.Path = append(append(make([]string, 0, len(ancestors)+1), ancestors...), id(n.Entity))
	for _, c := range n.Children {
		assign(c, level+1, n.Path, id)
	}
}

func sortNodes[T any](nodes []*Node[T], less func(a, b T) bool) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return less(nodes[i].Entity, nodes[j].Entity)
	})
	for _, n := range nodes {
		sortNodes(n.Children, less)
	}
}

// Flatten returns the tree in depth-first order as a single list. Level on
// each node drives indentation in flat tree views.
func Flatten[T any](roots []*Node[T]) []*Node[T] {
	var out []*Node[T]
	var walk func(n *Node[T])
	walk = func(n *Node[T]) {
		out = append(out, n)
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, r := range roots {
		walk(r)
	}
	return out
}
