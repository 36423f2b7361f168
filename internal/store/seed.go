package store

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/pageza/recipebox/backend/internal/model"
)

// DefaultImage is used for recipes created without a photo.
const DefaultImage = "https://images.unsplash.com/photo-1495195134817-aeb325a55b65?ixlib=rb-4.0.3&auto=format&fit=crop&w=1200&q=80"

// DefaultAvatar is the profile image given to newly registered users.
const DefaultAvatar = "https://i.pravatar.cc/150?img=3"

// DefaultBio is the bio given to newly registered users.
const DefaultBio = "New recipe enthusiast"

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultRecipes is the collection a fresh store starts with
func DefaultRecipes() []model.Recipe {
	return []model.Recipe{
		{
			ID:          "1",
			Title:       "Classic Margherita Pizza",
			Description: "Traditional Italian pizza with fresh mozzarella, basil, and tomato sauce",
			Ingredients: []string{
				"2 cups flour",
				"1 cup warm water",
				"Fresh mozzarella",
				"Fresh basil leaves",
				"Tomato sauce",
				"Olive oil",
				"Salt",
				"Active dry yeast",
			},
			Instructions: model.Instructions{
				"Mix flour, yeast, and salt in a bowl",
				"Add warm water and olive oil, knead into dough",
				"Let rise for 1 hour",
				"Roll out dough and add toppings",
				"Bake at 450°F for 12-15 minutes",
			},
			Image:       "https://images.unsplash.com/photo-1604382354936-07c5d9983bd3?ixlib=rb-4.0.3&auto=format&fit=crop&w=1200&q=80",
			CookingTime: 30,
			Servings:    4,
			Difficulty:  model.DifficultyMedium,
			Dietary:     []string{"vegetarian"},
			Rating:      4.5,
			Reviews:     []model.Review{},
			UserID:      "user1",
			Trending:    true,
			CreatedAt:   mustTime("2024-03-15T10:00:00Z"),
			UpdatedAt:   mustTime("2024-03-15T10:00:00Z"),
		},
		{
			ID:          "2",
			Title:       "Creamy Garlic Pasta",
			Description: "A rich and creamy pasta dish with garlic and parmesan",
			Ingredients: []string{
				"8 oz pasta",
				"4 tbsp butter",
				"4 cloves garlic, minced",
				"2 cups heavy cream",
				"1 cup grated parmesan",
				"Salt and pepper to taste",
				"Fresh parsley, chopped",
			},
			Instructions: model.Instructions{
				"Cook pasta according to package directions. Drain and set aside.",
				"In a large skillet, melt butter over medium heat.",
				"Add minced garlic and sauté for 1-2 minutes until fragrant.",
				"Pour in heavy cream and bring to a simmer.",
				"Reduce heat and stir in parmesan cheese until melted and smooth.",
				"Add the cooked pasta to the sauce and toss to coat evenly.",
				"Season with salt and pepper to taste.",
				"Garnish with chopped parsley before serving.",
			},
			Image:       "https://images.unsplash.com/photo-1621996346565-e3dbc646d9a9?ixlib=rb-1.2.1&auto=format&fit=crop&w=800&q=80",
			CookingTime: 25,
			Servings:    4,
			Difficulty:  model.DifficultyEasy,
			Dietary:     []string{"vegetarian"},
			Rating:      4.8,
			Reviews:     []model.Review{},
			UserID:      "user2",
			CreatedAt:   mustTime("2024-03-14T15:30:00Z"),
			UpdatedAt:   mustTime("2024-03-14T15:30:00Z"),
		},
		{
			ID:          "3",
			Title:       "Classic Beef Burger",
			Description: "Juicy homemade beef burger with all the fixings",
			Ingredients: []string{
				"1 lb ground beef",
				"1 egg",
				"1/4 cup breadcrumbs",
				"1 tsp salt",
				"1/2 tsp black pepper",
				"1/2 tsp garlic powder",
				"4 burger buns",
				"Lettuce, tomato, onion for serving",
				"Cheese slices",
				"Ketchup and mustard",
			},
			Instructions: model.Instructions{
				"In a large bowl, mix ground beef, egg, breadcrumbs, salt, pepper, and garlic powder.",
				"Form into 4 equal-sized patties, making a slight indentation in the center of each.",
				"Heat a grill or skillet over medium-high heat.",
				"Cook patties for 4-5 minutes per side for medium doneness.",
				"Add cheese slices on top during the last minute of cooking.",
				"Toast burger buns lightly on the grill or in a toaster.",
				"Assemble burgers with lettuce, tomato, onion, and condiments.",
				"Serve immediately.",
			},
			Image:       "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?ixlib=rb-1.2.1&auto=format&fit=crop&w=800&q=80",
			CookingTime: 20,
			Servings:    4,
			Difficulty:  model.DifficultyEasy,
			Dietary:     []string{},
			Rating:      4.9,
			Reviews:     []model.Review{},
			UserID:      "user3",
			Trending:    true,
			CreatedAt:   mustTime("2024-03-13T12:00:00Z"),
			UpdatedAt:   mustTime("2024-03-13T12:00:00Z"),
		},
	}
}

type demoAccount struct {
	password string
	user     model.User
}

func demoAccounts() []demoAccount {
	created := mustTime("2024-03-01T09:00:00Z")
	return []demoAccount{
		{
			password: "password123",
			user: model.User{
				ID:           "test123",
				Email:        "test@example.com",
				Username:     "TestUser",
				Favorites:    model.FavoriteSet{"1", "2"},
				ProfileImage: "https://i.pravatar.cc/150?img=1",
				Bio:          "I love cooking and trying new recipes!",
				CreatedAt:    created,
			},
		},
		{
			password: "demo123",
			user: model.User{
				ID:           "demo123",
				Email:        "demo@example.com",
				Username:     "DemoUser",
				Favorites:    model.FavoriteSet{"3"},
				ProfileImage: "https://i.pravatar.cc/150?img=2",
				Bio:          "Food enthusiast and recipe collector",
				CreatedAt:    created,
			},
		},
	}
}

// DefaultAccounts returns the demo accounts hashed at the given bcrypt cost.
// Costs outside bcrypt's range fall back to bcrypt.DefaultCost.
func DefaultAccounts(cost int) func() Accounts {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return func() Accounts {
		out := Accounts{}
		for _, d := range demoAccounts() {
			hash, err := bcrypt.GenerateFromPassword([]byte(d.password), cost)
			if err != nil {
				panic(err)
			}
			out[d.user.Email] = model.Account{PasswordHash: string(hash), User: d.user}
		}
		return out
	}
}
