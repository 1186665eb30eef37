package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme defines colors and styles for the UI chrome. Page bodies on the home
// screen take their background from the backdrop instead.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Header, footer and cards
	SurfaceAlt string // Secondary surfaces

	// Selection colors
	SelectionBg   string
	SelectionText string

	// Border colors
	Border      string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// Badge colors keyed by carousel display mode and list status.
	BadgeColors map[string]string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Background: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Background)),

		Surface: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)),

		badgeColors: t.BadgeColors,
		background:  t.Background,
		muted:       t.Muted,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Background lipgloss.Style
	Surface    lipgloss.Style

	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	Header   lipgloss.Style
	Footer   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style
	Card     lipgloss.Style

	badgeColors map[string]string
	background  string
	muted       string
}

// BadgeStyle returns a pill style for the given badge key.
func (s Styles) BadgeStyle(key string) lipgloss.Style {
	color := s.badgeColors[key]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// OnBackdrop returns text styles readable on the given page background.
func (s Styles) OnBackdrop(bg colorful.Color) Styles {
	fg := "#181818"
	muted := "#5c5c5c"
	if l, _, _ := bg.Lab(); l < 0.55 {
		fg = "#fffdfa"
		muted = "#b8b4ad"
	}
	hex := lipgloss.Color(bg.Clamped().Hex())
	out := s
	out.Background = s.Background.Background(hex)
	out.Text = lipgloss.NewStyle().Foreground(lipgloss.Color(fg)).Background(hex)
	out.MutedText = lipgloss.NewStyle().Foreground(lipgloss.Color(muted)).Background(hex)
	out.FaintText = out.MutedText.Faint(true)
	out.AccentText = s.AccentText.Background(hex)
	out.DangerText = s.DangerText.Background(hex)
	out.Card = s.Card.BorderForeground(lipgloss.Color(muted)).BorderBackground(hex)
	return out
}

// Theme definitions

var themes = map[string]Theme{
	"Paper": paperTheme(),
	"Ink":   inkTheme(),
	"Slate": slateTheme(),
}

var themeOrder = []string{"Paper", "Ink", "Slate"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return paperTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func paperTheme() Theme {
	// Matches the site's warm off-white sections.
	return Theme{
		Name: "Paper",

		Background: "#fffdfa",
		Surface:    "#f3efe8",
		SurfaceAlt: "#e8e2d8",

		SelectionBg:   "#181818",
		SelectionText: "#fffdfa",

		Border:      "#c9c2b6",
		BorderFocus: "#d9480f",

		Text:    "#181818",
		Muted:   "#5c5c5c",
		Faint:   "#8a857d",
		Accent:  "#d9480f",
		Success: "#2f9e44",
		Warning: "#e67700",
		Danger:  "#c92a2a",
		Info:    "#1971c2",

		BadgeColors: map[string]string{
			"bounce":     "#1971c2",
			"static-row": "#5c5c5c",
			"sliding":    "#d9480f",
			"loading":    "#e67700",
			"exhausted":  "#2f9e44",
			"errored":    "#c92a2a",
			"offline":    "#c92a2a",
		},
	}
}

func inkTheme() Theme {
	// The site's dark games section, used for the chrome.
	return Theme{
		Name: "Ink",

		Background: "#181818",
		Surface:    "#232323",
		SurfaceAlt: "#2e2e2e",

		SelectionBg:   "#fffdfa",
		SelectionText: "#181818",

		Border:      "#3d3d3d",
		BorderFocus: "#ff922b",

		Text:    "#fffdfa",
		Muted:   "#b8b4ad",
		Faint:   "#7a766f",
		Accent:  "#ff922b",
		Success: "#69db7c",
		Warning: "#ffd43b",
		Danger:  "#ff6b6b",
		Info:    "#74c0fc",

		BadgeColors: map[string]string{
			"bounce":     "#74c0fc",
			"static-row": "#b8b4ad",
			"sliding":    "#ff922b",
			"loading":    "#ffd43b",
			"exhausted":  "#69db7c",
			"errored":    "#ff6b6b",
			"offline":    "#ff6b6b",
		},
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		SurfaceAlt: "#1e293b", // slate-800

		SelectionBg:   "#0284c7", // sky-600
		SelectionText: "#f8fafc", // slate-50

		Border:      "#334155", // slate-700
		BorderFocus: "#38bdf8", // sky-400

		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8", // sky-400
		Success: "#22c55e", // green-500
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500
		Info:    "#06b6d4", // cyan-500

		BadgeColors: map[string]string{
			"bounce":     "#06b6d4",
			"static-row": "#64748b",
			"sliding":    "#38bdf8",
			"loading":    "#f59e0b",
			"exhausted":  "#22c55e",
			"errored":    "#dc2626",
			"offline":    "#dc2626",
		},
	}
}
