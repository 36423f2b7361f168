package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Difficulty is the effort level a recipe is tagged with
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known difficulty levels
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// DietaryTags is the fixed vocabulary recipes can be classified with.
var DietaryTags = []string{
	"vegan",
	"vegetarian",
	"gluten-free",
	"dairy-free",
	"nut-free",
	"low-carb",
	"keto",
	"paleo",
}

// IsDietaryTag reports whether tag belongs to the dietary vocabulary
func IsDietaryTag(tag string) bool {
	for _, t := range DietaryTags {
		if t == tag {
			return true
		}
	}
	return false
}

// Instructions holds the ordered preparation steps of a recipe.
// It decodes from either a list of steps or a single free-text block;
// a text block is split into one step per non-blank line.
type Instructions []string

// UnmarshalJSON implements json.Unmarshaler
func (in *Instructions) UnmarshalJSON(data []byte) error {
	var steps []string
	if err := json.Unmarshal(data, &steps); err == nil {
		*in = steps
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("instructions must be a list of steps or a text block: %w", err)
	}
	*in = SplitSteps(text)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (in *Instructions) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var steps []string
		if err := value.Decode(&steps); err != nil {
			return err
		}
		*in = steps
	case yaml.ScalarNode:
		*in = SplitSteps(value.Value)
	default:
		return fmt.Errorf("instructions must be a list of steps or a text block")
	}
	return nil
}

// Text joins the steps back into a single block
func (in Instructions) Text() string {
	return strings.Join(in, "\n")
}

// SplitSteps turns a free-text block into steps, one per non-blank line.
func SplitSteps(text string) Instructions {
	var steps Instructions
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			steps = append(steps, line)
		}
	}
	return steps
}

// Review is a rating left on a recipe
type Review struct {
	UserID    string    `json:"user_id"`
	Rating    float64   `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// Recipe is a shareable cooking entry with ingredients, steps and metadata.
// ID and UserID never change once assigned.
type Recipe struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Ingredients  []string     `json:"ingredients"`
	Instructions Instructions `json:"instructions"`
	Image        string       `json:"image"`
	CookingTime  int          `json:"cooking_time"`
	Servings     int          `json:"servings"`
	Difficulty   Difficulty   `json:"difficulty"`
	Dietary      []string     `json:"dietary"`
	Rating       float64      `json:"rating"`
	Reviews      []Review     `json:"reviews"`
	UserID       string       `json:"user_id"`
	Creator      string       `json:"creator,omitempty"`
	Trending     bool         `json:"trending"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// HasTag reports whether the recipe carries the dietary tag
func (r *Recipe) HasTag(tag string) bool {
	for _, t := range r.Dietary {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can't alias store-owned slices.
func (r Recipe) Clone() Recipe {
	c := r
	c.Ingredients = append([]string(nil), r.Ingredients...)
	c.Instructions = append(Instructions(nil), r.Instructions...)
	c.Dietary = append([]string(nil), r.Dietary...)
	c.Reviews = append([]Review(nil), r.Reviews...)
	return c
}
