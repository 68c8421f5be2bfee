package model

import "strings"

// UncategorizedName is shown for tasks whose category no longer exists
const UncategorizedName = "Uncategorized"

// DefaultColor is used for new categories and for dangling references
const DefaultColor = "#4A6FA5"

// Category groups tasks under a name and color
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CategoryInput is the candidate record for a new category
type CategoryInput struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CategoryPatch renames or recolors a category; nil fields are unchanged
type CategoryPatch struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

// Input returns the category's current values as an input record
func (c Category) Input() CategoryInput {
	return CategoryInput{Name: c.Name, Color: c.Color}
}

// Apply merges the patch over in
func (p CategoryPatch) Apply(in CategoryInput) CategoryInput {
	if p.Name != nil {
		in.Name = *p.Name
	}
	if p.Color != nil {
		in.Color = *p.Color
	}
	return in
}

// ColorOption is one entry of the suggested palette
type ColorOption struct {
	Value string
	Label string
}

// Palette is the set of colors offered by the category form.
// Other non-empty colors are accepted as well.
var Palette = []ColorOption{
	{Value: "#4A6FA5", Label: "Blue"},
	{Value: "#47B881", Label: "Green"},
	{Value: "#E74C3C", Label: "Red"},
	{Value: "#F5B041", Label: "Yellow"},
	{Value: "#8E44AD", Label: "Purple"},
}

// ColorByLabel resolves a palette label ("red") or passes a color value through
func ColorByLabel(s string) string {
	for _, c := range Palette {
		if strings.EqualFold(c.Label, s) {
			return c.Value
		}
	}
	return s
}

// NextColor returns the palette entry after color, wrapping around
func NextColor(color string) string {
	for i, c := range Palette {
		if strings.EqualFold(c.Value, color) {
			return Palette[(i+1)%len(Palette)].Value
		}
	}
	return Palette[0].Value
}
