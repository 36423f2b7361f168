// Package filter derives the visible subset of a recipe collection from a
// free-text query, required dietary tags and an optional browse category.
package filter

import (
	"fmt"
	"strings"

	"github.com/pageza/recipebox/backend/internal/model"
)

// Category narrows a listing the way the home page tabs do
type Category string

const (
	CategoryAll      Category = ""
	CategoryTrending Category = "trending"
	CategoryQuick    Category = "quick"
	CategoryPopular  Category = "popular"
)

const (
	// QuickMaxMinutes is the longest cooking time still listed as quick
	QuickMaxMinutes = 30
	// PopularMinRating is the lowest rating still listed as popular
	PopularMinRating = 4.0
)

// ParseCategory validates a category name coming from a request
func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case CategoryAll, CategoryTrending, CategoryQuick, CategoryPopular:
		return c, nil
	default:
		return "", fmt.Errorf("unknown category %q", s)
	}
}

// Criteria describes what a listing should contain
type Criteria struct {
	Query    string
	Tags     []string
	Category Category
}

// IsZero reports whether the criteria select everything
func (c Criteria) IsZero() bool {
	return strings.TrimSpace(c.Query) == "" && len(c.Tags) == 0 && c.Category == CategoryAll
}

// Apply returns the recipes matching c, in their original order.
// Zero criteria return recipes unchanged.
func Apply(recipes []model.Recipe, c Criteria) []model.Recipe {
	if c.IsZero() {
		return recipes
	}
	query := strings.ToLower(strings.TrimSpace(c.Query))
	out := make([]model.Recipe, 0, len(recipes))
	for i := range recipes {
		if matches(&recipes[i], query, c.Tags, c.Category) {
			out = append(out, recipes[i])
		}
	}
	return out
}

// Matches reports whether a single recipe satisfies c
func Matches(r *model.Recipe, c Criteria) bool {
	return matches(r, strings.ToLower(strings.TrimSpace(c.Query)), c.Tags, c.Category)
}

func matches(r *model.Recipe, query string, tags []string, cat Category) bool {
	return MatchesQuery(r, query) && HasAllTags(r, tags) && InCategory(r, cat)
}

// MatchesQuery reports whether query is a case-insensitive substring of the
// title, the description or any ingredient. A blank query matches everything.
func MatchesQuery(r *model.Recipe, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(r.Title), q) || strings.Contains(strings.ToLower(r.Description), q) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing), q) {
			return true
		}
	}
	return false
}

// HasAllTags reports whether every tag is in the recipe's dietary set.
// Tags compare case-insensitively; blank tags are ignored.
func HasAllTags(r *model.Recipe, tags []string) bool {
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if !r.HasTag(t) {
			return false
		}
	}
	return true
}

// InCategory reports whether the recipe belongs to cat
func InCategory(r *model.Recipe, cat Category) bool {
	switch cat {
	case CategoryTrending:
		return r.Trending
	case CategoryQuick:
		return r.CookingTime <= QuickMaxMinutes
	case CategoryPopular:
		return r.Rating >= PopularMinRating
	default:
		return true
	}
}

// ParseTags splits a comma separated tag list, dropping blanks and duplicates
func ParseTags(s string) []string {
	var tags []string
	seen := map[string]bool{}
	for _, p := range strings.Split(s, ",") {
		t := strings.ToLower(strings.TrimSpace(p))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
	}
	return tags
}
