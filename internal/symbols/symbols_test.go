package symbols

import (
	"strings"
	"testing"
)

func mustBuiltin(t *testing.T) *Catalog {
	t.Helper()
	c, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin returned error: %v", err)
	}
	return c
}

func orishas(matches []Symbol) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Orisha
	}
	return out
}

func TestBuiltin_Loads(t *testing.T) {
	c := mustBuiltin(t)
	if c.Len() != 11 {
		t.Fatalf("Len = %d, want 11", c.Len())
	}
}

func TestMatch(t *testing.T) {
	c := mustBuiltin(t)

	cases := []struct {
		name  string
		dream string
		want  []string
	}{
		{"none", "I was reading a book", nil},
		{"case insensitive", "A RIVER ran through my house", []string{"Oshun"}},
		{"catalog order", "a snake by the river", []string{"Oshun", "Ancient serpent wisdom"}},
		{"shared keyword", "a great fire", []string{"Shango", "Sun/Agba"}},
		{"substring", "it was sunday", []string{"Sun/Agba"}},
		{"multi word keyword", "a night animal watched me", []string{"Night guardians"}},
		{"one entry per symbol", "water, stream and lagoon", []string{"Oshun"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := orishas(c.Match(tc.dream))
			if strings.Join(got, "|") != strings.Join(tc.want, "|") {
				t.Fatalf("Match(%q) = %v, want %v", tc.dream, got, tc.want)
			}
		})
	}
}

func TestCompose_NoMatchesUsesDefault(t *testing.T) {
	if got := Compose(nil); got != DefaultMessage {
		t.Fatalf("Compose(nil) = %q, want default message", got)
	}
}

func TestCompose_Lines(t *testing.T) {
	c := mustBuiltin(t)
	text, matches := c.Interpret("falling from the sky")
	if len(matches) != 2 {
		t.Fatalf("matches = %v, want 2", orishas(matches))
	}

	lines := strings.Split(text, "\n")
	if len(lines) != 2*len(matches)+2 {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), 2*len(matches)+2, text)
	}
	if lines[0] != openingLine || lines[len(lines)-1] != closingLine {
		t.Fatalf("opening/closing lines wrong:\n%s", text)
	}
	want := "It resonates with Ori (inner head) — representing uncertainty, surrender, recalibration."
	if lines[1] != want {
		t.Fatalf("line 1 = %q, want %q", lines[1], want)
	}
	if lines[2] != matches[0].Symbolism {
		t.Fatalf("line 2 = %q, want symbolism", lines[2])
	}
}

func TestParse_Validation(t *testing.T) {
	if _, err := Parse([]byte("[[symbol]]\nkeywords = [\"x\"]\n")); err == nil {
		t.Fatalf("Parse without orisha returned nil error")
	}
	if _, err := Parse([]byte("[[symbol]]\norisha = \"Oya\"\nkeywords = [\" \"]\n")); err == nil {
		t.Fatalf("Parse without keywords returned nil error")
	}
	if _, err := Parse([]byte("[[symbol")); err == nil {
		t.Fatalf("Parse of malformed TOML returned nil error")
	}

	c, err := Parse([]byte("[[symbol]]\norisha = \"Oya\"\nkeywords = [\"  STORM \"]\n"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got := orishas(c.Match("a storm")); len(got) != 1 {
		t.Fatalf("normalised keyword did not match: %v", got)
	}
}

func TestNilCatalog(t *testing.T) {
	var c *Catalog
	if c.Len() != 0 || c.Match("river") != nil {
		t.Fatalf("nil catalog should match nothing")
	}
}
