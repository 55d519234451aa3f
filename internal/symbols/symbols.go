package symbols

import (
	_ "embed"
	"fmt"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

//go:embed catalog.toml
var builtinCatalog []byte

// Text used around matched symbols.
const (
	DefaultMessage = "Your dream speaks through subtle currents of destiny (ori) and ancestral " +
		"presence. Even without a clear symbol, it invites you to balance action and " +
		"reflection, honor your inner guidance, and stay attentive to signs from " +
		"your lineage."

	openingLine = "In Yoruba spirituality, your dream opens a portal of guidance."
	closingLine = "Together, these signs suggest you are being nudged to align your ori with " +
		"purpose, heed the counsel of ancestors, and act with confident balance."
)

// Symbol is one recognisable dream image.
type Symbol struct {
	Keywords  []string `toml:"keywords"`
	Orisha    string   `toml:"orisha"`
	Meaning   string   `toml:"meaning"`
	Symbolism string   `toml:"symbolism"`
}

// Catalog is an ordered set of symbols.
type Catalog struct {
	symbols []Symbol
}

// Builtin parses the embedded catalog.
func Builtin() (*Catalog, error) {
	return Parse(builtinCatalog)
}

// Parse reads a TOML catalog made of [[symbol]] tables. Keywords are
// lowercased and trimmed; symbols without keywords or orisha are rejected.
func Parse(data []byte) (*Catalog, error) {
	var raw struct {
		Symbols []Symbol `toml:"symbol"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	out := make([]Symbol, 0, len(raw.Symbols))
	for i, sym := range raw.Symbols {
		sym.Orisha = strings.TrimSpace(sym.Orisha)
		if sym.Orisha == "" {
			return nil, fmt.Errorf("symbol %d: orisha is empty", i)
		}
		var keywords []string
		for _, kw := range sym.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				keywords = append(keywords, kw)
			}
		}
		if len(keywords) == 0 {
			return nil, fmt.Errorf("symbol %d (%s): no keywords", i, sym.Orisha)
		}
		sym.Keywords = keywords
		out = append(out, sym)
	}
	return &Catalog{symbols: out}, nil
}

// Len returns the number of symbols.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.symbols)
}

// Match returns every symbol with a keyword occurring anywhere in dream,
// ignoring case, in catalog order. Keywords match as substrings, so "sun"
// also matches "sunday".
func (c *Catalog) Match(dream string) []Symbol {
	if c == nil {
		return nil
	}
	lowered := strings.ToLower(dream)
	var matches []Symbol
	for _, sym := range c.symbols {
		for _, kw := range sym.Keywords {
			if strings.Contains(lowered, kw) {
				matches = append(matches, sym)
				break
			}
		}
	}
	return matches
}

// Compose turns matches into the interpretation text. No matches yields
// DefaultMessage.
func Compose(matches []Symbol) string {
	if len(matches) == 0 {
		return DefaultMessage
	}
	lines := make([]string, 0, 2*len(matches)+2)
	lines = append(lines, openingLine)
	for _, m := range matches {
		lines = append(lines, fmt.Sprintf("It resonates with %s — representing %s.", m.Orisha, m.Meaning))
		lines = append(lines, m.Symbolism)
	}
	lines = append(lines, closingLine)
	return strings.Join(lines, "\n")
}

// Interpret matches and composes in one step.
func (c *Catalog) Interpret(dream string) (string, []Symbol) {
	matches := c.Match(dream)
	return Compose(matches), matches
}
