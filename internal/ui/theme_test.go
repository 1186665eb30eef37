package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	if names[0] != "Paper" || names[1] != "Ink" || names[2] != "Slate" {
		t.Fatalf("ThemeNames() = %v, want [Paper Ink Slate]", names)
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Paper"); got != "Ink" {
		t.Fatalf("NextTheme(Paper) = %q, want Ink", got)
	}
	if got := NextTheme("Slate"); got != "Paper" {
		t.Fatalf("NextTheme(Slate) = %q, want Paper", got)
	}
	if got := NextTheme("Unknown"); got != "Paper" {
		t.Fatalf("NextTheme(Unknown) = %q, want Paper", got)
	}
}

func TestGetTheme(t *testing.T) {
	for _, name := range ThemeNames() {
		if got := GetTheme(name).Name; got != name {
			t.Fatalf("GetTheme(%s).Name = %q", name, got)
		}
	}
	if got := GetTheme("Unknown").Name; got != "Paper" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Paper (fallback)", got)
	}
}

func TestThemesDefineEveryBadge(t *testing.T) {
	keys := []string{"bounce", "static-row", "sliding", "loading", "exhausted", "errored", "offline"}
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, key := range keys {
			if th.BadgeColors[key] == "" {
				t.Fatalf("theme %s has no %q badge", name, key)
			}
		}
	}
}

func TestOnBackdropPicksReadableText(t *testing.T) {
	styles := GetTheme("Paper").Styles()

	light, _ := colorful.Hex("#fffdfa")
	if got := styles.OnBackdrop(light).Text.GetForeground(); got != lipgloss.Color("#181818") {
		t.Fatalf("foreground on light = %v, want #181818", got)
	}
	dark, _ := colorful.Hex("#181818")
	if got := styles.OnBackdrop(dark).Text.GetForeground(); got != lipgloss.Color("#fffdfa") {
		t.Fatalf("foreground on dark = %v, want #fffdfa", got)
	}
}
