package service

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/types"
)

// Sanitizer strips markup from user supplied recipe text. Fields stay plain text:
// tags are removed and entities decoded again afterwards.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// maxSanitizePasses bounds how many layers of escaped markup Text peels off
const maxSanitizePasses = 8

// NewSanitizer creates a sanitizer with bluemonday's strict policy
func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

func (s *Sanitizer) pass(v string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(v)))
}

// Text sanitizes a single value. Decoding entities can surface markup that was
// escaped in the input, so passes repeat until the value stops changing; the
// result is a fixed point and Text(Text(v)) == Text(v).
func (s *Sanitizer) Text(v string) string {
	if v == "" {
		return v
	}
	cur := s.pass(v)
	for i := 1; i < maxSanitizePasses; i++ {
		next := s.pass(cur)
		if next == cur {
			return cur
		}
		cur = next
	}
	// Still unstable: keep the escaped form so nothing decodes into markup
	return strings.TrimSpace(s.policy.Sanitize(cur))
}

func (s *Sanitizer) list(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = s.Text(v)
	}
	return out
}

// Recipe sanitizes every free-text field of r in place
func (s *Sanitizer) Recipe(r *model.Recipe) {
	r.Title = s.Text(r.Title)
	r.Description = s.Text(r.Description)
	r.Ingredients = s.list(r.Ingredients)
	if r.Instructions != nil {
		r.Instructions = model.Instructions(s.list(r.Instructions))
	}
}

// Patch sanitizes the free-text fields set in p. Fields the patch leaves nil
// are not touched, so stored text only changes when a caller supplies it.
func (s *Sanitizer) Patch(p types.RecipePatch) types.RecipePatch {
	if p.Title != nil {
		v := s.Text(*p.Title)
		p.Title = &v
	}
	if p.Description != nil {
		v := s.Text(*p.Description)
		p.Description = &v
	}
	if p.Ingredients != nil {
		v := s.list(*p.Ingredients)
		p.Ingredients = &v
	}
	if p.Instructions != nil {
		v := model.Instructions(s.list(*p.Instructions))
		p.Instructions = &v
	}
	return p
}
