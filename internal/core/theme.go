package core

import "strings"

const DefaultTheme Theme = "default"

// Theme selects one of the fixed colour schemes.
type Theme string

// Themes is the closed set of accepted themes.
var Themes = []Theme{
	DefaultTheme, "dark", "nebula", "cosmic", "crimson",
	"midnight", "emerald", "sunset", "rose", "slate",
}

// NormalizeTheme maps unknown or empty names to DefaultTheme.
func NormalizeTheme(s string) Theme {
	if t, ok := ParseTheme(s); ok {
		return t
	}
	return DefaultTheme
}

func ParseTheme(s string) (Theme, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range Themes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

func (t Theme) String() string {
	return string(t)
}
