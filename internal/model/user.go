package model

import (
	"strings"
	"unicode/utf8"
)

// User is the identity handed in by the authentication collaborator.
// It is display-only.
type User struct {
	Name  string `json:"name" yaml:"name" toml:"name"`
	Email string `json:"email" yaml:"email" toml:"email"`
}

// Initial returns the upper-cased first letter of the name, or "U"
func (u User) Initial() string {
	name := strings.TrimSpace(u.Name)
	if name == "" {
		return "U"
	}
	r, _ := utf8.DecodeRuneInString(name)
	return strings.ToUpper(string(r))
}
