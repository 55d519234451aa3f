package ui

import (
	"testing"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	want := []string{"Nightfox", "Kanagawa", "Slate"}
	if len(names) != len(want) {
		t.Fatalf("ThemeNames() returned %d names, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("ThemeNames() = %v, want %v", names, want)
		}
	}

	names[0] = "mutated"
	if ThemeNames()[0] != "Nightfox" {
		t.Fatal("ThemeNames exposes the internal slice")
	}
}

func TestNextTheme(t *testing.T) {
	cases := map[string]string{
		"Nightfox": "Kanagawa",
		"Kanagawa": "Slate",
		"Slate":    "Nightfox",
		"Unknown":  "Nightfox",
	}
	for current, want := range cases {
		if got := NextTheme(current); got != want {
			t.Fatalf("NextTheme(%s) = %q, want %q", current, got, want)
		}
	}
}

func TestGetTheme(t *testing.T) {
	for _, name := range ThemeNames() {
		if got := GetTheme(name).Name; got != name {
			t.Fatalf("GetTheme(%s).Name = %q", name, got)
		}
	}
	if got := GetTheme("Dracula").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(unknown).Name = %q, want Nightfox (fallback)", got)
	}
}

func TestThemesDefineEveryColor(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		colors := map[string]string{
			"Background":    th.Background,
			"Surface":       th.Surface,
			"SurfaceAlt":    th.SurfaceAlt,
			"SelectionBg":   th.SelectionBg,
			"SelectionText": th.SelectionText,
			"BorderMuted":   th.BorderMuted,
			"BorderFocus":   th.BorderFocus,
			"Text":          th.Text,
			"Muted":         th.Muted,
			"Faint":         th.Faint,
			"Accent":        th.Accent,
			"Success":       th.Success,
			"Warning":       th.Warning,
			"Danger":        th.Danger,
		}
		for field, value := range colors {
			if len(value) != 7 || value[0] != '#' {
				t.Errorf("%s.%s = %q, want #rrggbb", name, field, value)
			}
		}
	}
}

func TestTruncateMiddle(t *testing.T) {
	if got := truncateMiddle("  ", 10); got != "" {
		t.Fatalf("truncateMiddle blank = %q, want empty", got)
	}
	if got := truncateMiddle("abcd", 2); got != "ab" {
		t.Fatalf("truncateMiddle limit<=3 = %q, want ab", got)
	}
	got := truncateMiddle("http://interpreter.example:8787", 12)
	if len([]rune(got)) != 12 {
		t.Fatalf("got %q (%d runes), want 12", got, len([]rune(got)))
	}
	if got[:5] != "http:" {
		t.Fatalf("prefix lost: %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate short = %q", got)
	}
	if got := truncate("a longer sentence", 8); got != "a lon..." {
		t.Fatalf("truncate = %q, want %q", got, "a lon...")
	}
}
