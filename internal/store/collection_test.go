package store

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   string
	Tags []string
}

func newItems() *Collection[item] {
	return NewCollection(func(i item) string { return i.ID }, func(i item) item {
		i.Tags = slices.Clone(i.Tags)
		return i
	})
}

func TestCollection_OrderAndCopies(t *testing.T) {
	c := newItems()
	c.Replace([]item{{ID: "a", Tags: []string{"x"}}, {ID: "b"}})
	c.Append(item{ID: "c"})

	all := c.All()
	require.Len(t, all, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{all[0].ID, all[1].ID, all[2].ID})

	all[0].Tags[0] = "mutated"
	got, ok := c.Find("a")
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, got.Tags)
}

func TestCollection_SetModifyRemove(t *testing.T) {
	c := newItems()
	c.Replace([]item{{ID: "a"}, {ID: "b"}, {ID: "c"}})

	assert.True(t, c.Set("b", item{ID: "b", Tags: []string{"new"}}))
	assert.False(t, c.Set("zz", item{ID: "zz"}))
	assert.Equal(t, "b", c.All()[1].ID)

	v, ok := c.Modify("c", func(i item) item { i.Tags = append(i.Tags, "m"); return i })
	require.True(t, ok)
	assert.Equal(t, []string{"m"}, v.Tags)

	assert.True(t, c.Remove("a"))
	assert.False(t, c.Remove("a"))
	assert.Equal(t, 2, c.Len())
	assert.False(t, c.Has("a"))
}

func TestGroupBy_Total(t *testing.T) {
	items := []item{{ID: "1", Tags: []string{"todo"}}, {ID: "2", Tags: []string{"done"}}, {ID: "3", Tags: []string{"todo"}}}
	keys := []string{"todo", "review", "done"}
	g := GroupBy(items, keys, func(i item) string { return i.Tags[0] })

	require.Len(t, g, 3)
	assert.Len(t, g["todo"], 2)
	assert.NotNil(t, g["review"])
	assert.Empty(t, g["review"])
	assert.Len(t, g["done"], 1)
}
