package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebox/backend/internal/errs"
	"github.com/pageza/recipebox/backend/internal/filter"
	"github.com/pageza/recipebox/backend/internal/gateway"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/store"
	"github.com/pageza/recipebox/backend/internal/types"
)

func validInput() types.RecipeInput {
	return types.RecipeInput{
		Title:        "Lentil Soup",
		Description:  "Hearty and warming",
		Ingredients:  []string{"1 cup lentils", "", "  ", "1 onion"},
		Instructions: model.Instructions{"Chop the onion", "", "Simmer for 30 minutes"},
		CookingTime:  40,
		Servings:     4,
		Difficulty:   model.DifficultyEasy,
		Dietary:      []string{"Vegan", "vegetarian", "vegan"},
	}
}

func ptr[T any](v T) *T { return &v }

func TestListRecipesSeedScenario(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	got, err := f.recipes.ListRecipes(ctx, filter.Criteria{Query: "pizza"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	got, err = f.recipes.ListRecipes(ctx, filter.Criteria{Tags: []string{"vegan"}})
	require.NoError(t, err)
	assert.Empty(t, got)

	all, err := f.recipes.ListRecipes(ctx, filter.Criteria{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCreateRecipe(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	caller := &model.User{ID: "test123", Username: "TestUser"}

	created, err := f.recipes.CreateRecipe(ctx, caller, validInput())
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "test123", created.UserID)
	assert.Equal(t, "TestUser", created.Creator)
	assert.Zero(t, created.Rating)
	assert.Empty(t, created.Reviews)
	assert.Equal(t, store.DefaultImage, created.Image)
	assert.Equal(t, []string{"1 cup lentils", "1 onion"}, created.Ingredients)
	assert.Equal(t, model.Instructions{"Chop the onion", "Simmer for 30 minutes"}, created.Instructions)
	assert.Equal(t, []string{"vegan", "vegetarian"}, created.Dietary)

	got, err := f.recipes.GetRecipe(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)

	all, err := f.recipes.ListRecipes(ctx, filter.Criteria{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, created.ID, all[3].ID, "new recipes are appended")

	vegan, err := f.recipes.ListRecipes(ctx, filter.Criteria{Tags: []string{"vegan"}})
	require.NoError(t, err)
	require.Len(t, vegan, 1)
	assert.Equal(t, created.ID, vegan[0].ID)
}

func TestCreateRecipeAssignsUniqueIDs(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	caller := &model.User{ID: "test123"}

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		r, err := f.recipes.CreateRecipe(ctx, caller, validInput())
		require.NoError(t, err)
		assert.False(t, seen[r.ID], "id %s reused", r.ID)
		seen[r.ID] = true
	}
}

func TestCreateRecipeRequiresCaller(t *testing.T) {
	f := setup(t)
	_, err := f.recipes.CreateRecipe(context.Background(), nil, validInput())
	assert.ErrorIs(t, err, errs.ErrUnauthenticated)
}

func TestCreateRecipeValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	caller := &model.User{ID: "test123"}

	in := types.RecipeInput{
		Title:        "  ",
		Ingredients:  []string{"", " "},
		Instructions: model.SplitSteps("\n\n"),
		CookingTime:  0,
		Servings:     -1,
		Dietary:      []string{"carnivore"},
		Image:        "ftp://example.com/a.png",
	}
	_, err := f.recipes.CreateRecipe(ctx, caller, in)
	require.ErrorIs(t, err, errs.ErrValidation)

	var verr *errs.ValidationError
	require.ErrorAs(t, err, &verr)
	for _, field := range []string{"title", "description", "ingredients", "instructions", "cooking_time", "servings", "difficulty", "dietary", "image"} {
		assert.Contains(t, verr.Fields, field)
	}
	assert.Equal(t, "Title is required", verr.Fields["title"])

	// Nothing reached the store
	all, err := f.recipes.ListRecipes(ctx, filter.Criteria{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCreateRecipeStripsMarkup(t *testing.T) {
	f := setup(t)
	in := validInput()
	in.Title = "<b>Lentil</b> Soup <script>alert(1)</script>"
	in.Ingredients = []string{"Salt & pepper", "<i>1 onion</i>"}

	r, err := f.recipes.CreateRecipe(context.Background(), &model.User{ID: "u"}, in)
	require.NoError(t, err)
	assert.Equal(t, "Lentil Soup", r.Title)
	assert.Equal(t, []string{"Salt & pepper", "1 onion"}, r.Ingredients)
}

func TestSanitizerTextIsStable(t *testing.T) {
	s := service.NewSanitizer()
	inputs := []string{
		"Wrap &lt;script&gt;alert(1)&lt;/script&gt; then serve",
		"&amp;lt;b&amp;gt;bold&amp;lt;/b&amp;gt;",
		"<b>Lentil</b> Soup",
		"Salt & pepper",
		"5 < 6",
		"",
	}
	for _, in := range inputs {
		once := s.Text(in)
		assert.Equal(t, once, s.Text(once), "input %q", in)
		assert.NotContains(t, once, "<script", "input %q", in)
		assert.NotContains(t, once, "<b>", "input %q", in)
	}
	assert.Equal(t, "Salt & pepper", s.Text("Salt & pepper"))
}

func TestUpdateRecipeLeavesUntouchedTextAlone(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	owner := &model.User{ID: "u", Username: "cook"}
	in := validInput()
	in.Description = "Wrap &lt;script&gt;alert(1)&lt;/script&gt; then serve"

	created, err := f.recipes.CreateRecipe(ctx, owner, in)
	require.NoError(t, err)
	assert.NotContains(t, created.Description, "<script")

	updated, err := f.recipes.UpdateRecipe(ctx, owner, created.ID, types.RecipePatch{Title: ptr("Red Lentil Soup")})
	require.NoError(t, err)
	assert.Equal(t, "Red Lentil Soup", updated.Title)
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, created.Ingredients, updated.Ingredients)
	assert.Equal(t, created.Instructions, updated.Instructions)
}

func TestUpdateRecipeSanitizesOnlyPatchedFields(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	stored := store.DefaultRecipes()
	stored[0].Description = "Bake at 250C < 10 min"
	require.NoError(t, gateway.Save(ctx, f.gw, gateway.KeyRecipes, stored))

	updated, err := f.recipes.UpdateRecipe(ctx, &model.User{ID: "user1"}, "1", types.RecipePatch{
		Title:       ptr("<i>Margherita</i>"),
		Ingredients: ptr([]string{"<b>Flour</b>", "Basil"}),
	})
	require.NoError(t, err)
	assert.Equal(t, "Margherita", updated.Title)
	assert.Equal(t, []string{"Flour", "Basil"}, updated.Ingredients)
	assert.Equal(t, "Bake at 250C < 10 min", updated.Description)
}

func TestUpdateRecipe(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	owner := &model.User{ID: "user1", Username: "chef"}

	updated, err := f.recipes.UpdateRecipe(ctx, owner, "1", types.RecipePatch{
		Title:       ptr("Margherita Pizza"),
		CookingTime: ptr(45),
	})
	require.NoError(t, err)

	assert.Equal(t, "1", updated.ID)
	assert.Equal(t, "user1", updated.UserID)
	assert.Equal(t, "Margherita Pizza", updated.Title)
	assert.Equal(t, 45, updated.CookingTime)
	// Fields not in the patch keep their values
	assert.Equal(t, 4, updated.Servings)
	assert.Equal(t, []string{"vegetarian"}, updated.Dietary)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	got, err := f.recipes.GetRecipe(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Margherita Pizza", got.Title)
}

func TestUpdateRecipeOwnershipGating(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	patch := types.RecipePatch{Title: ptr("Hijacked")}

	_, err := f.recipes.UpdateRecipe(ctx, &model.User{ID: "user2"}, "1", patch)
	assert.ErrorIs(t, err, errs.ErrPermissionDenied)

	_, err = f.recipes.UpdateRecipe(ctx, nil, "1", patch)
	assert.ErrorIs(t, err, errs.ErrUnauthenticated)

	_, err = f.recipes.UpdateRecipe(ctx, &model.User{ID: "user1"}, "missing", patch)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	got, err := f.recipes.GetRecipe(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Classic Margherita Pizza", got.Title)
}

func TestUpdateRecipeRevalidates(t *testing.T) {
	f := setup(t)
	_, err := f.recipes.UpdateRecipe(context.Background(), &model.User{ID: "user1"}, "1", types.RecipePatch{
		Servings:    ptr(0),
		Ingredients: ptr([]string{" "}),
	})
	var verr *errs.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "servings")
	assert.Contains(t, verr.Fields, "ingredients")
}

func TestDeleteRecipe(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	err := f.recipes.DeleteRecipe(ctx, &model.User{ID: "user2"}, "1")
	assert.ErrorIs(t, err, errs.ErrPermissionDenied)

	require.NoError(t, f.recipes.DeleteRecipe(ctx, &model.User{ID: "user1"}, "1"))
	_, err = f.recipes.GetRecipe(ctx, "1")
	assert.ErrorIs(t, err, errs.ErrNotFound)

	err = f.recipes.DeleteRecipe(ctx, &model.User{ID: "user1"}, "1")
	assert.ErrorIs(t, err, errs.ErrNotFound)

	all, err := f.recipes.ListRecipes(ctx, filter.Criteria{})
	require.NoError(t, err)
	assert.Equal(t, "2", all[0].ID)
	assert.Equal(t, "3", all[1].ID)
}

func TestDeleteLeavesDanglingFavorite(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	// test@example.com favorites recipes 1 and 2
	require.NoError(t, f.recipes.DeleteRecipe(ctx, &model.User{ID: "user1"}, "1"))

	user, err := f.auth.GetUserByID(ctx, "test123")
	require.NoError(t, err)
	assert.True(t, user.Favorites.Contains("1"), "favorites are not cleaned up on delete")

	favs, err := f.recipes.ListFavorites(ctx, user)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "2", favs[0].ID)

	// The dangling id can still be removed
	user, err = f.auth.ToggleFavorite(ctx, "test123", "1")
	require.NoError(t, err)
	assert.Equal(t, model.FavoriteSet{"2"}, user.Favorites)
}

func TestListByOwner(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	me := &model.User{ID: "me"}

	_, err := f.recipes.CreateRecipe(ctx, me, validInput())
	require.NoError(t, err)

	mine, err := f.recipes.ListByOwner(ctx, "me")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.True(t, strings.HasPrefix(mine[0].Title, "Lentil"))

	none, err := f.recipes.ListByOwner(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}
