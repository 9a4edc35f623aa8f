package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docnav/internal/core/domain"
)

func intPtr(n int) *int { return &n }

func TestBuildNavigation_ItemOrder(t *testing.T) {
	docs := []domain.Document{
		{ID: "patterns/a", Category: "patterns", Title: "Alpha", Order: intPtr(2)},
		{ID: "patterns/b", Category: "patterns", Title: "beta"},
		{ID: "patterns/c", Category: "patterns", Title: "Gamma", Order: intPtr(1)},
		{ID: "patterns/d", Category: "patterns", Title: "Beta"},
	}

	groups, links := BuildNavigation(docs, nil)

	require.Len(t, groups, 1)
	assert.Equal(t, []domain.NavItem{
		{ID: "patterns/c", Title: "Gamma"},
		{ID: "patterns/a", Title: "Alpha"},
		{ID: "patterns/d", Title: "Beta"},
		{ID: "patterns/b", Title: "beta"},
	}, groups[0].Items)

	assert.Equal(t, domain.NavigationLinks{Next: "patterns/a"}, links["patterns/c"])
	assert.Equal(t, domain.NavigationLinks{Previous: "patterns/c", Next: "patterns/d"}, links["patterns/a"])
	assert.Equal(t, domain.NavigationLinks{Previous: "patterns/a", Next: "patterns/b"}, links["patterns/d"])
	assert.Equal(t, domain.NavigationLinks{Previous: "patterns/d"}, links["patterns/b"])
}

func TestBuildNavigation_CategoryOrder(t *testing.T) {
	docs := []domain.Document{
		{ID: "zeta/x", Category: "zeta", Title: "X"},
		{ID: "alpha/y", Category: "alpha", Title: "Y"},
		{ID: "guides/z", Category: "guides", Title: "Z"},
	}

	t.Run("alphabetical by default", func(t *testing.T) {
		groups, _ := BuildNavigation(docs, nil)
		assert.Equal(t, []string{"alpha", "guides", "zeta"}, categories(groups))
	})

	t.Run("configured categories first", func(t *testing.T) {
		groups, _ := BuildNavigation(docs, []string{"guides", "missing", "guides"})
		assert.Equal(t, []string{"guides", "alpha", "zeta"}, categories(groups))
	})
}

func TestBuildNavigation_Empty(t *testing.T) {
	groups, links := BuildNavigation(nil, nil)

	assert.NotNil(t, groups)
	assert.Empty(t, groups)
	assert.Empty(t, links)
}

func TestBuildNavigation_SingleDocument(t *testing.T) {
	_, links := BuildNavigation([]domain.Document{{ID: "a/only", Category: "a", Title: "Only"}}, nil)

	assert.False(t, links["a/only"].HasPrevious())
	assert.False(t, links["a/only"].HasNext())
}

func TestBuildNavigation_Properties(t *testing.T) {
	docs := []domain.Document{
		{ID: "p/1", Category: "p", Title: "One"},
		{ID: "p/2", Category: "p", Title: "Two"},
		{ID: "p/3", Category: "p", Title: "Three", Order: intPtr(0)},
		{ID: "q/1", Category: "q", Title: "One"},
		{ID: "q/2", Category: "q", Title: "One"},
	}
	reversed := make([]domain.Document, len(docs))
	for i := range docs {
		reversed[len(docs)-1-i] = docs[i]
	}

	groups, links := BuildNavigation(docs, nil)
	groupsAgain, linksAgain := BuildNavigation(reversed, nil)

	t.Run("independent of input order", func(t *testing.T) {
		assert.Equal(t, groups, groupsAgain)
		assert.Equal(t, links, linksAgain)
	})

	t.Run("links are mutually consistent", func(t *testing.T) {
		for id, l := range links {
			if l.HasNext() {
				assert.Equal(t, id, links[l.Next].Previous, "next(%s)", id)
			}
			if l.HasPrevious() {
				assert.Equal(t, id, links[l.Previous].Next, "previous(%s)", id)
			}
		}
	})

	t.Run("ends have no outer neighbour", func(t *testing.T) {
		for _, g := range groups {
			first, last := g.Items[0].ID, g.Items[len(g.Items)-1].ID
			assert.False(t, links[first].HasPrevious())
			assert.False(t, links[last].HasNext())
		}
	})

	t.Run("equal titles fall back to identifier", func(t *testing.T) {
		assert.Equal(t, "q/1", groups[1].Items[0].ID)
		assert.Equal(t, "q/2", groups[1].Items[1].ID)
	})
}

func categories(groups []domain.NavigationGroup) []string {
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Category
	}
	return names
}
