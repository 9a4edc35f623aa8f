package services

import (
	"sort"
	"strings"

	"github.com/custodia-labs/docnav/internal/core/domain"
)

// BuildNavigation groups documents by category and links neighbours.
//
// Categories named in categoryOrder come first in that order, the rest
// follow by name. Within a category, documents with an explicit order come
// first (ascending), then by case-folded title, raw title and identifier.
// The result depends only on the inputs, never on map iteration order.
func BuildNavigation(docs []domain.Document, categoryOrder []string) ([]domain.NavigationGroup, map[string]domain.NavigationLinks) {
	byCategory := make(map[string][]*domain.Document)
	for i := range docs {
		doc := &docs[i]
		byCategory[doc.Category] = append(byCategory[doc.Category], doc)
	}

	groups := make([]domain.NavigationGroup, 0, len(byCategory))
	links := make(map[string]domain.NavigationLinks, len(docs))

	for _, category := range orderCategories(byCategory, categoryOrder) {
		members := byCategory[category]
		sort.SliceStable(members, func(i, j int) bool {
			return lessInCategory(members[i], members[j])
		})

		items := make([]domain.NavItem, len(members))
		for i, doc := range members {
			items[i] = domain.NavItem{ID: doc.ID, Title: doc.Title}

			var l domain.NavigationLinks
			if i > 0 {
				l.Previous = members[i-1].ID
			}
			if i < len(members)-1 {
				l.Next = members[i+1].ID
			}
			links[doc.ID] = l
		}

		groups = append(groups, domain.NavigationGroup{Category: category, Items: items})
	}

	return groups, links
}

// orderCategories lists present categories: configured ones first, then by name.
func orderCategories(present map[string][]*domain.Document, configured []string) []string {
	ordered := make([]string, 0, len(present))
	placed := make(map[string]bool, len(present))
	for _, c := range configured {
		if _, ok := present[c]; ok && !placed[c] {
			ordered = append(ordered, c)
			placed[c] = true
		}
	}

	rest := make([]string, 0, len(present)-len(ordered))
	for c := range present {
		if !placed[c] {
			rest = append(rest, c)
		}
	}
	sort.Strings(rest)
	return append(ordered, rest...)
}

func lessInCategory(a, b *domain.Document) bool {
	switch {
	case a.Order != nil && b.Order == nil:
		return true
	case a.Order == nil && b.Order != nil:
		return false
	case a.Order != nil && b.Order != nil && *a.Order != *b.Order:
		return *a.Order < *b.Order
	}

	if fa, fb := strings.ToLower(a.Title), strings.ToLower(b.Title); fa != fb {
		return fa < fb
	}
	if a.Title != b.Title {
		return a.Title < b.Title
	}
	return a.ID < b.ID
}
