package filter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebox/backend/internal/model"
)

func fixtures() []model.Recipe {
	return []model.Recipe{
		{
			ID:          "1",
			Title:       "Classic Margherita Pizza",
			Description: "Traditional Italian pizza with fresh mozzarella, basil, and tomato sauce",
			Ingredients: []string{"2 cups flour", "Fresh mozzarella", "Fresh basil leaves"},
			CookingTime: 30,
			Rating:      4.5,
			Dietary:     []string{"vegetarian"},
			Trending:    true,
		},
		{
			ID:          "2",
			Title:       "Creamy Garlic Pasta",
			Description: "A rich and creamy pasta dish with garlic and parmesan",
			Ingredients: []string{"8 oz pasta", "4 tbsp butter", "Fresh parsley, chopped"},
			CookingTime: 25,
			Rating:      3.8,
			Dietary:     []string{"vegetarian"},
		},
		{
			ID:          "3",
			Title:       "Thai Red Curry",
			Description: "Vegetables simmered in coconut milk",
			Ingredients: []string{"2 tbsp red curry paste", "1 can coconut milk", "Fresh basil leaves"},
			CookingTime: 35,
			Rating:      4.7,
			Dietary:     []string{"vegan", "vegetarian", "gluten-free"},
		},
	}
}

func ids(recipes []model.Recipe) []string {
	out := []string{}
	for _, r := range recipes {
		out = append(out, r.ID)
	}
	return out
}

func TestApplyIdentity(t *testing.T) {
	recipes := fixtures()
	got := Apply(recipes, Criteria{})
	if diff := cmp.Diff(recipes, got); diff != "" {
		t.Fatalf("empty criteria changed the collection (-want +got):\n%s", diff)
	}

	got = Apply(recipes, Criteria{Query: "   "})
	assert.Equal(t, []string{"1", "2", "3"}, ids(got))

	assert.Nil(t, Apply(nil, Criteria{}))
}

func TestApplyQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"title match is case insensitive", "PIZZA", []string{"1"}},
		{"description match", "coconut", []string{"3"}},
		{"ingredient match", "basil", []string{"1", "3"}},
		{"substring inside word", "arm", []string{"2"}},
		{"no match", "sushi", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(fixtures(), Criteria{Query: tt.query})
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApplyTagsAllOf(t *testing.T) {
	recipes := fixtures()

	assert.Equal(t, []string{"1", "2", "3"}, ids(Apply(recipes, Criteria{Tags: []string{"vegetarian"}})))
	assert.Equal(t, []string{"3"}, ids(Apply(recipes, Criteria{Tags: []string{"vegetarian", "vegan"}})))
	assert.Empty(t, Apply(recipes, Criteria{Tags: []string{"vegan", "keto"}}))
}

func TestApplyTagsIgnoreCaseAndPadding(t *testing.T) {
	recipes := fixtures()

	assert.Equal(t, []string{"3"}, ids(Apply(recipes, Criteria{Tags: []string{"Vegan"}})))
	assert.Equal(t, []string{"3"}, ids(Apply(recipes, Criteria{Tags: []string{" GLUTEN-FREE ", "vegan"}})))
	assert.Equal(t, []string{"1", "2", "3"}, ids(Apply(recipes, Criteria{Tags: []string{"VEGETARIAN", ""}})))
	assert.True(t, Matches(&recipes[2], Criteria{Tags: []string{"Vegan"}}))
}

func TestApplyCombinesQueryAndTags(t *testing.T) {
	got := Apply(fixtures(), Criteria{Query: "basil", Tags: []string{"vegan"}})
	assert.Equal(t, []string{"3"}, ids(got))
}

func TestApplyCategories(t *testing.T) {
	recipes := fixtures()

	assert.Equal(t, []string{"1"}, ids(Apply(recipes, Criteria{Category: CategoryTrending})))
	assert.Equal(t, []string{"1", "2"}, ids(Apply(recipes, Criteria{Category: CategoryQuick})))
	assert.Equal(t, []string{"1", "3"}, ids(Apply(recipes, Criteria{Category: CategoryPopular})))
}

func TestApplySoundAndComplete(t *testing.T) {
	recipes := fixtures()
	queries := []string{"", "pizza", "fresh", "milk", "zzz"}
	tagSets := [][]string{nil, {"vegetarian"}, {"vegan"}, {"gluten-free", "vegan"}, {"paleo"}}

	for _, q := range queries {
		for _, tags := range tagSets {
			c := Criteria{Query: q, Tags: tags}
			got := Apply(recipes, c)

			inResult := map[string]bool{}
			for i := range got {
				inResult[got[i].ID] = true
				assert.True(t, MatchesQuery(&got[i], q), "query %q tags %v: %s should match query", q, tags, got[i].ID)
				assert.True(t, HasAllTags(&got[i], tags), "query %q tags %v: %s should carry tags", q, tags, got[i].ID)
			}
			for i := range recipes {
				if Matches(&recipes[i], c) {
					assert.True(t, inResult[recipes[i].ID], "query %q tags %v: %s missing", q, tags, recipes[i].ID)
				}
			}
		}
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	recipes := fixtures()
	before := fixtures()
	_ = Apply(recipes, Criteria{Query: "pasta", Tags: []string{"vegetarian"}})
	if diff := cmp.Diff(before, recipes); diff != "" {
		t.Fatalf("input mutated (-want +got):\n%s", diff)
	}
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" Quick ")
	require.NoError(t, err)
	assert.Equal(t, CategoryQuick, c)

	c, err = ParseCategory("")
	require.NoError(t, err)
	assert.Equal(t, CategoryAll, c)

	_, err = ParseCategory("dessert")
	assert.Error(t, err)
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"vegan", "gluten-free"}, ParseTags("Vegan, gluten-free,,vegan "))
	assert.Nil(t, ParseTags(""))
}
