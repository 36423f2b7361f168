package service

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/pageza/recipebox/backend/internal/errs"
	"github.com/pageza/recipebox/backend/internal/model"
)

// MinPasswordLength is the shortest password accepted at registration
const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// normalizeRecipe trims text fields, drops blank ingredient and instruction rows
// and lowercases dietary tags without duplicates.
func normalizeRecipe(r *model.Recipe) {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Image = strings.TrimSpace(r.Image)
	r.Ingredients = stripBlank(r.Ingredients)
	r.Instructions = model.Instructions(stripBlank(r.Instructions))
	r.Difficulty = model.Difficulty(strings.ToLower(strings.TrimSpace(string(r.Difficulty))))

	tags := []string{}
	seen := map[string]bool{}
	for _, t := range r.Dietary {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
	}
	r.Dietary = tags
}

func stripBlank(values []string) []string {
	out := []string{}
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// ValidateRecipe checks a normalized recipe and reports every failing field
func ValidateRecipe(r *model.Recipe) error {
	v := errs.NewValidationError()

	if r.Title == "" {
		v.Add("title", "Title is required")
	}
	if r.Description == "" {
		v.Add("description", "Description is required")
	}
	if len(r.Ingredients) == 0 {
		v.Add("ingredients", "At least one ingredient is required")
	}
	if len(r.Instructions) == 0 {
		v.Add("instructions", "At least one instruction is required")
	}
	if r.CookingTime <= 0 {
		v.Add("cooking_time", "Cooking time must be greater than 0")
	}
	if r.Servings <= 0 {
		v.Add("servings", "Number of servings must be greater than 0")
	}
	if r.Difficulty == "" {
		v.Add("difficulty", "Difficulty level is required")
	} else if !r.Difficulty.Valid() {
		v.Add("difficulty", "Difficulty must be easy, medium or hard")
	}
	for _, t := range r.Dietary {
		if !model.IsDietaryTag(t) {
			v.Add("dietary", fmt.Sprintf("Unknown dietary tag %q", t))
		}
	}
	if r.Image != "" && !isWebURL(r.Image) {
		v.Add("image", "Image must be an http or https URL")
	}
	if r.Rating < 0 || r.Rating > 5 {
		v.Add("rating", "Rating must be between 0 and 5")
	}

	return v.OrNil()
}

func isWebURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func validateRegistration(email, password, username string) error {
	v := errs.NewValidationError()
	if !emailPattern.MatchString(email) {
		v.Add("email", "Invalid email address")
	}
	if len(password) < MinPasswordLength {
		v.Add("password", fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
	}
	if username == "" {
		v.Add("username", "Username is required")
	}
	return v.OrNil()
}
