package core

import "strings"

const (
	Food     Category = "Food"
	Travel   Category = "Travel"
	Bills    Category = "Bills"
	Shopping Category = "Shopping"
	Other    Category = "Other"
)

// Category is the fixed classification applied to expense descriptions.
type Category string

// Categories lists every category, Other last.
var Categories = []Category{Food, Travel, Bills, Shopping, Other}

// ParseCategory matches a category name case-insensitively.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, true
		}
	}
	return "", false
}

func (c Category) String() string {
	return string(c)
}
