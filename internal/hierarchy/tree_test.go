package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entity struct {
	id     string
	parent string
	name   string
}

func build(t *testing.T, items []entity) []*Node[entity] {
	t.Helper()
	roots, err := Build(items,
		func(e entity) string { return e.id },
		func(e entity) string { return e.parent },
		func(a, b entity) bool { return a.name < b.name })
	require.NoError(t, err)
	return roots
}

func TestBuild_SingleParentChild(t *testing.T) {
	roots := build(t, []entity{
		{id: "A", name: "root"},
		{id: "B", parent: "A", name: "child"},
	})

	require.Len(t, roots, 1)
	root := roots[0]
	assert.Equal(t, "A", root.Entity.id)
	assert.Equal(t, 0, root.Level)
	assert.Equal(t, []string{"A"}, root.Path)

	require.Len(t, root.Children, 1)
	child := root.Children[0]
	assert.Equal(t, "B", child.Entity.id)
	assert.Equal(t, 1, child.Level)
	assert.Equal(t, []string{"A", "B"}, child.Path)
}

func TestBuild_ChildListedBeforeParent(t *testing.T) {
	roots := build(t, []entity{
		{id: "C", parent: "B", name: "grandchild"},
		{id: "B", parent: "A", name: "child"},
		{id: "A", name: "root"},
	})

	require.Len(t, roots, 1)
	require.Len(t, roots[0].Children, 1)
	require.Len(t, roots[0].Children[0].Children, 1)

	deep := roots[0].Children[0].Children[0]
	assert.Equal(t, 2, deep.Level)
	assert.Equal(t, []string{"A", "B", "C"}, deep.Path)
}

func TestBuild_DanglingParentBecomesRoot(t *testing.T) {
	roots := build(t, []entity{
		{id: "A", name: "root"},
		{id: "B", parent: "missing", name: "orphan"},
	})

	require.Len(t, roots, 2)
	for _, r := range roots {
		assert.Equal(t, 0, r.Level)
		assert.Len(t, r.Path, 1)
	}
}

func TestBuild_SortsSiblingsRecursively(t *testing.T) {
	roots := build(t, []entity{
		{id: "r2", name: "zebra"},
		{id: "r1", name: "apple"},
		{id: "c2", parent: "r1", name: "delta"},
		{id: "c1", parent: "r1", name: "alpha"},
	})

	require.Len(t, roots, 2)
	assert.Equal(t, "apple", roots[0].Entity.name)
	assert.Equal(t, "zebra", roots[1].Entity.name)

	require.Len(t, roots[0].Children, 2)
	assert.Equal(t, "alpha", roots[0].Children[0].Entity.name)
	assert.Equal(t, "delta", roots[0].Children[1].Entity.name)
}

func TestBuild_CycleReturnsError(t *testing.T) {
	_, err := Build([]entity{
		{id: "A", parent: "B"},
		{id: "B", parent: "A"},
	},
		func(e entity) string { return e.id },
		func(e entity) string { return e.parent },
		func(a, b entity) bool { return a.name < b.name })

	require.Error(t, err)
	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Contains(t, err.Error(), "cyclic hierarchy")
}

func TestBuild_SelfParentReturnsError(t *testing.T) {
	_, err := Build([]entity{{id: "A", parent: "A"}},
		func(e entity) string { return e.id },
		func(e entity) string { return e.parent },
		func(a, b entity) bool { return a.name < b.name })

	require.Error(t, err)
}

func TestFlatten_PreservesCountAndDepthFirstOrder(t *testing.T) {
	items := []entity{
		{id: "A", name: "a"},
		{id: "B", parent: "A", name: "b"},
		{id: "C", parent: "A", name: "c"},
		{id: "D", parent: "B", name: "d"},
		{id: "E", name: "e"},
	}
	roots := build(t, items)
	flat := Flatten(roots)

	require.Len(t, flat, len(items))

	var ids []string
	for _, n := range flat {
		ids = append(ids, n.Entity.id)
	}
	assert.Equal(t, []string{"A", "B", "D", "C", "E"}, ids)
}

func TestFlatten_LevelMatchesAncestorCount(t *testing.T) {
	items := []entity{
		{id: "A", name: "a"},
		{id: "B", parent: "A", name: "b"},
		{id: "C", parent: "B", name: "c"},
		{id: "D", parent: "C", name: "d"},
	}
	byID := make(map[string]entity, len(items))
	for _, it := range items {
		byID[it.id] = it
	}

	flat := Flatten(build(t, items))
	for _, n := range flat {
		ancestors := 0
		cur := n.Entity
		for cur.parent != "" {
			next, ok := byID[cur.parent]
			if !ok {
				break
			}
			ancestors++
			cur = next
		}
		assert.Equal(t, ancestors, n.Level, "entity %s", n.Entity.id)
		assert.Len(t, n.Path, n.Level+1)
	}
}

func TestBuild_EmptyInput(t *testing.T) {
	roots := build(t, nil)
	assert.Empty(t, roots)
	assert.Empty(t, Flatten(roots))
}
