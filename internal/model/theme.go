package model

import (
	"errors"
	"strings"
)

const DefaultThemeKey = "default"

// Theme is a named palette. Only the number of custom themes matters to
// analytics; the colors are consumed by the views.
type Theme struct {
	Name   string            `json:"name" yaml:"name"`
	Colors map[string]string `json:"colors" yaml:"colors"`
}

func (t Theme) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("model: theme name is required")
	}
	return nil
}

func (t Theme) Clone() Theme {
	out := Theme{Name: t.Name, Colors: make(map[string]string, len(t.Colors))}
	for k, v := range t.Colors {
		out.Colors[k] = v
	}
	return out
}

// Primary returns the theme's --primary color, if set.
func (t Theme) Primary() string {
	return t.Colors["--primary"]
}

// PresetThemes are always available and never count as custom themes.
var PresetThemes = map[string]Theme{
	"default": {Name: "Default Blue", Colors: map[string]string{
		"--primary": "#4361ee", "--secondary": "#3f37c9", "--background": "#ffffff",
		"--card-bg": "#f1f7fe", "--text": "#333333", "--border": "#dee2e6",
	}},
	"cute": {Name: "Cute Pink", Colors: map[string]string{
		"--primary": "#f72585", "--secondary": "#b5179e", "--background": "#fff0f3",
		"--card-bg": "#ffffff", "--text": "#571030", "--border": "#fbc4d1",
	}},
	"fierce": {Name: "Fierce Red", Colors: map[string]string{
		"--primary": "#d00000", "--secondary": "#9d0208", "--background": "#03071e",
		"--card-bg": "#14213d", "--text": "#ffffff", "--border": "#370617",
	}},
	"dark": {Name: "Dark Mode", Colors: map[string]string{
		"--primary": "#4361ee", "--secondary": "#3f37c9", "--background": "#121826",
		"--card-bg": "#1a2438", "--text": "#e0e0e0", "--border": "#2d3748",
	}},
}

// ResolveTheme looks key up in the presets, then in custom themes. It falls
// back to the default preset.
func ResolveTheme(key string, custom map[string]Theme) Theme {
	if t, ok := PresetThemes[key]; ok {
		return t
	}
	if t, ok := custom[key]; ok {
		return t
	}
	return PresetThemes[DefaultThemeKey]
}
