// Package highlight turns source file text into styled-range
// decompositions for the source pane, memoizing the result per file
// content within one rendering session.
package highlight

import (
	"fmt"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// Theme enumerates the supported color themes. A Theme is resolved to
// a concrete chroma style table once at configuration time and passed
// by reference into the render path.
type Theme int

const (
	ThemeSolarizedDark Theme = iota
	ThemeMonokai
	ThemeGitHub
	ThemeDracula
)

var themeNames = map[Theme]string{
	ThemeSolarizedDark: "solarized-dark",
	ThemeMonokai:       "monokai",
	ThemeGitHub:        "github",
	ThemeDracula:       "dracula",
}

func (t Theme) String() string {
	if name, ok := themeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseTheme resolves a config string to a Theme.
func ParseTheme(name string) (Theme, error) {
	for t, n := range themeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown theme %q (supported: %v)", name, ThemeNames())
}

// ThemeNames lists the supported theme names in declaration order.
func ThemeNames() []string {
	names := make([]string, 0, len(themeNames))
	for t := ThemeSolarizedDark; t <= ThemeDracula; t++ {
		names = append(names, themeNames[t])
	}
	return names
}

// Style resolves the theme to its chroma style table.
func (t Theme) Style() *chroma.Style {
	s := styles.Get(t.String())
	if s == nil {
		return styles.Fallback
	}
	return s
}

// BackgroundColor returns the theme's background color as a CSS hex
// string, or empty if the theme defines none.
func (t Theme) BackgroundColor() string {
	bg := t.Style().Get(chroma.Background).Background
	if !bg.IsSet() {
		return ""
	}
	return bg.String()
}
