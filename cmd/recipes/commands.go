package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pageza/recipebox/backend/internal/errs"
	"github.com/pageza/recipebox/backend/internal/filter"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

// currentUser returns the signed-in user or a "must be logged in" error
func (c *cli) currentUser(ctx context.Context) (*model.User, error) {
	user, err := c.app.Session.Current(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("must be logged in, run 'recipes login' first: %w", errs.ErrUnauthenticated)
	}
	return user, nil
}

func printRecipes(w io.Writer, views []service.RecipeView) {
	if len(views) == 0 {
		fmt.Fprintln(w, "No recipes found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tTIME\tRATING\tDIETARY\t")
	for _, v := range views {
		marks := ""
		if v.IsFavorite {
			marks += "*"
		}
		if v.IsOwner {
			marks += " (yours)"
		}
		r := v.Recipe
		fmt.Fprintf(tw, "%s\t%s%s\t%d min\t%.1f\t%s\t\n",
			r.ID, r.Title, marks, r.CookingTime, r.Rating, strings.Join(r.Dietary, ", "))
	}
	_ = tw.Flush()
}

func printRecipe(w io.Writer, v service.RecipeView) {
	r := v.Recipe
	fmt.Fprintf(w, "%s  [%s]\n", r.Title, r.ID)
	fmt.Fprintln(w, r.Description)
	fmt.Fprintf(w, "\nCooking time: %d min  Servings: %d  Difficulty: %s  Rating: %.1f\n",
		r.CookingTime, r.Servings, r.Difficulty, r.Rating)
	if len(r.Dietary) > 0 {
		fmt.Fprintf(w, "Dietary: %s\n", strings.Join(r.Dietary, ", "))
	}
	if r.Creator != "" {
		fmt.Fprintf(w, "By: %s\n", r.Creator)
	}
	if v.IsFavorite {
		fmt.Fprintln(w, "In your favorites")
	}
	fmt.Fprintln(w, "\nIngredients:")
	for _, ing := range r.Ingredients {
		fmt.Fprintf(w, "  - %s\n", ing)
	}
	fmt.Fprintln(w, "\nInstructions:")
	for i, step := range r.Instructions {
		fmt.Fprintf(w, "  %d. %s\n", i+1, step)
	}
}

func printUser(w io.Writer, u model.User) {
	fmt.Fprintf(w, "%s <%s>\n", u.Username, u.Email)
	if u.Bio != "" {
		fmt.Fprintln(w, u.Bio)
	}
	fmt.Fprintf(w, "Favorites: %d\n", len(u.Favorites))
}

func (c *cli) registerCmd() *cobra.Command {
	var req types.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := c.app.Session.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s!\n", user.Username)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "password, at least 6 characters")
	cmd.Flags().StringVar(&req.Username, "username", "", "display name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func (c *cli) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := c.app.Session.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", user.Username)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := c.app.Session.Current(cmd.Context())
			if err != nil {
				return err
			}
			if user == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
				return nil
			}
			printUser(cmd.OutOrStdout(), *user)
			return nil
		},
	}
}

func (c *cli) profileCmd() *cobra.Command {
	var username, bio, image string
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Update the signed-in user's username, bio or avatar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req types.UpdateProfileRequest
			if cmd.Flags().Changed("username") {
				req.Username = &username
			}
			if cmd.Flags().Changed("bio") {
				req.Bio = &bio
			}
			if cmd.Flags().Changed("image") {
				req.ProfileImage = &image
			}
			user, err := c.app.Session.UpdateProfile(cmd.Context(), req)
			if err != nil {
				return err
			}
			printUser(cmd.OutOrStdout(), user)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "new display name")
	cmd.Flags().StringVar(&bio, "bio", "", "new bio")
	cmd.Flags().StringVar(&image, "image", "", "new profile image URL")
	return cmd
}

func (c *cli) listCmd() *cobra.Command {
	var (
		query    string
		tags     []string
		category string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recipes matching a search and dietary tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := filter.ParseCategory(category)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			user, err := c.app.Session.Current(ctx)
			if err != nil {
				return err
			}
			recipes, err := c.app.Recipes.ListRecipes(ctx, filter.Criteria{
				Query:    query,
				Tags:     filter.ParseTags(strings.Join(tags, ",")),
				Category: cat,
			})
			if err != nil {
				return err
			}
			printRecipes(cmd.OutOrStdout(), service.Views(recipes, user))
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "search title, description and ingredients")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "required dietary tag, repeatable")
	cmd.Flags().StringVarP(&category, "category", "c", "", "trending, quick or popular")
	return cmd
}

func (c *cli) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			user, err := c.app.Session.Current(ctx)
			if err != nil {
				return err
			}
			recipe, err := c.app.Recipes.GetRecipe(ctx, args[0])
			if err != nil {
				return fmt.Errorf("recipe %s: %w", args[0], err)
			}
			printRecipe(cmd.OutOrStdout(), service.View(recipe, user))
			return nil
		},
	}
}

func (c *cli) createCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a recipe from a YAML or JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var in types.RecipeInput
			if err := decodeFile(file, &in); err != nil {
				return err
			}
			ctx := cmd.Context()
			user, err := c.currentUser(ctx)
			if err != nil {
				return err
			}
			recipe, err := c.app.Recipes.CreateRecipe(ctx, user, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created recipe %s: %s\n", recipe.ID, recipe.Title)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "recipe file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (c *cli) editCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Update one of your recipes with the fields in a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch types.RecipePatch
			if err := decodeFile(file, &patch); err != nil {
				return err
			}
			ctx := cmd.Context()
			user, err := c.currentUser(ctx)
			if err != nil {
				return err
			}
			recipe, err := c.app.Recipes.UpdateRecipe(ctx, user, args[0], patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated recipe %s: %s\n", recipe.ID, recipe.Title)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "file with the fields to change")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (c *cli) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete one of your recipes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			user, err := c.currentUser(ctx)
			if err != nil {
				return err
			}
			if err := c.app.Recipes.DeleteRecipe(ctx, user, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted recipe %s\n", args[0])
			return nil
		},
	}
}

func (c *cli) favoriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "favorite ID",
		Short: "Add a recipe to your favorites, or remove it if already there",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := c.app.Session.ToggleFavorite(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if user.Favorites.Contains(args[0]) {
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s to favorites\n", args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from favorites\n", args[0])
			}
			return nil
		},
	}
}

func (c *cli) favoritesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "favorites",
		Short: "List your favorite recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			user, err := c.currentUser(ctx)
			if err != nil {
				return err
			}
			recipes, err := c.app.Recipes.ListFavorites(ctx, *user)
			if err != nil {
				return err
			}
			printRecipes(cmd.OutOrStdout(), service.Views(recipes, user))
			return nil
		},
	}
}

func (c *cli) mineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List the recipes you created",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			user, err := c.currentUser(ctx)
			if err != nil {
				return err
			}
			recipes, err := c.app.Recipes.ListByOwner(ctx, user.ID)
			if err != nil {
				return err
			}
			printRecipes(cmd.OutOrStdout(), service.Views(recipes, user))
			return nil
		},
	}
}

func (c *cli) seedCmd() *cobra.Command {
	var reset bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the sample recipes and demo accounts",
		Long: `Loads the sample recipes and the demo accounts test@example.com (password123)
and demo@example.com (demo123) if the store is empty. With --reset every recipe
and account is replaced by the samples and the current user is signed out.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if reset {
				if err := c.app.Reset(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Store reset to sample data")
				return nil
			}
			// Reading seeds missing collections
			recipes, err := c.app.Recipes.ListRecipes(ctx, filter.Criteria{})
			if err != nil {
				return err
			}
			if _, err := c.app.Auth.GetUserByID(ctx, "test123"); err != nil && !errors.Is(err, errs.ErrNotFound) {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Store has %d recipes\n", len(recipes))
			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "replace all data with the samples")
	return cmd
}
