package ui

import (
	"os"
	"sort"
	"sync"
)

// ThemeEnv names the environment variable selecting a theme.
const ThemeEnv = "FASTMATH_THEME"

// Theme maps each output role to an ANSI escape sequence. An empty sequence
// prints nothing, so NoColorTheme is simply the zero value with a name.
type Theme struct {
	Name string

	Primary   string // strategy names, values being queried
	Secondary string // timings and hints
	Success   string // answers, agreement
	Warning   string // durations, cancellations
	Error     string // failures, mismatches
	Info      string // counts
	Bold      string
	Underline string
	Reset     string

	// Codes holds the same roles as 256-color codes for the dashboard.
	Codes Palette
}

// Palette holds 256-color codes ("39", "245", ...) by role. An empty code
// keeps the terminal default.
type Palette struct {
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Info      string
}

// fg256 returns the escape sequence for a 256-color foreground.
func fg256(code string) string { return "\033[38;5;" + code + "m" }

// palette builds a theme with the shared bold, underline and reset codes.
func palette(name, primary, secondary, success, warning, failure, info string) Theme {
	return Theme{
		Name:      name,
		Primary:   fg256(primary),
		Secondary: fg256(secondary),
		Success:   fg256(success),
		Warning:   fg256(warning),
		Error:     fg256(failure),
		Info:      fg256(info),
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
		Codes:     Palette{primary, secondary, success, warning, failure, info},
	}
}

var (
	// DarkTheme suits dark terminal backgrounds.
	DarkTheme = palette("dark", "39", "245", "82", "220", "196", "141")
	// LightTheme suits light terminal backgrounds.
	LightTheme = palette("light", "27", "240", "28", "130", "124", "54")
	// NoColorTheme disables every escape sequence.
	NoColorTheme = Theme{Name: "none"}

	themes = map[string]Theme{
		DarkTheme.Name:    DarkTheme,
		LightTheme.Name:   LightTheme,
		NoColorTheme.Name: NoColorTheme,
	}

	themeMutex   sync.RWMutex
	currentTheme = DarkTheme
)

// ThemeNames lists the names SetTheme accepts.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetCurrentTheme returns the active theme. Safe for concurrent use.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme installs t as the active theme. Tests use it to restore
// the previous theme.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme activates the theme called name; unknown names select DarkTheme.
func SetTheme(name string) {
	SetCurrentTheme(themeByName(name))
}

func themeByName(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return DarkTheme
}

// InitTheme selects the theme of a run. noColor (the -no-color flag) wins,
// then the presence of NO_COLOR (https://no-color.org/), then ThemeEnv.
func InitTheme(noColor bool) {
	_, noColorEnv := os.LookupEnv("NO_COLOR")
	switch {
	case noColor, noColorEnv:
		SetCurrentTheme(NoColorTheme)
	default:
		SetCurrentTheme(themeByName(os.Getenv(ThemeEnv)))
	}
}
