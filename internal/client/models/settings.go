package models

import "strings"

// Settings keys.
const (
	KeyToken                    = "token"
	KeyLink                     = "link"
	KeyLanguage                 = "language"
	KeyTheme                    = "theme"
	KeyHasSeenLanguageSelection = "hasSeenLanguageSelection"
	KeyAttributionID            = "attributionId"
)

// Theme is the colour scheme preference.
type Theme string

const (
	ThemeSystem Theme = "system"
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
)

var Themes = []Theme{ThemeSystem, ThemeLight, ThemeDark}

// ParseTheme returns ThemeSystem for unknown values.
func ParseTheme(s string) Theme {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case ThemeLight, ThemeDark:
		return t
	default:
		return ThemeSystem
	}
}
