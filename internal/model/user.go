package model

import (
	"strings"
	"time"
)

// FavoriteSet is an ordered set of recipe ids. It never holds duplicates.
type FavoriteSet []string

// Contains reports whether id is in the set
func (f FavoriteSet) Contains(id string) bool {
	for _, v := range f {
		if v == id {
			return true
		}
	}
	return false
}

// With returns a copy of the set with id appended if absent
func (f FavoriteSet) With(id string) FavoriteSet {
	out := append(FavoriteSet{}, f...)
	if !f.Contains(id) {
		out = append(out, id)
	}
	return out
}

// Without returns a copy of the set with id removed
func (f FavoriteSet) Without(id string) FavoriteSet {
	out := FavoriteSet{}
	for _, v := range f {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// User is an application account as exposed to callers; it never carries the password.
type User struct {
	ID           string      `json:"id"`
	Email        string      `json:"email"`
	Username     string      `json:"username"`
	Favorites    FavoriteSet `json:"favorites"`
	Bio          string      `json:"bio"`
	ProfileImage string      `json:"profile_image"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Clone returns a copy with its own favorites slice
func (u User) Clone() User {
	c := u
	c.Favorites = append(FavoriteSet{}, u.Favorites...)
	return c
}

// Account is the persisted record of a user keyed by email in the user store.
type Account struct {
	PasswordHash string `json:"password_hash"`
	User         User   `json:"user"`
}

// NormalizeEmail is the canonical form emails are keyed and compared by
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
