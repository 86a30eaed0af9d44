// Package club resolves free-text club names from heterogeneous
// sources into a canonical comparison key. Every cross-source equality
// check in the engine goes through this package; nothing else is
// allowed to compare club names directly.
package club

import (
	"strings"

	"github.com/premtable/matchday/internal/domain/team"
)

// suffixTokens are dropped wherever they appear as standalone words.
// They carry no identity: "Arsenal FC" and "Arsenal" are the same club.
var suffixTokens = map[string]bool{
	"fc":          true,
	"afc":         true,
	"cf":          true,
	"sc":          true,
	"ac":          true,
	"club":        true,
	"association": true,
	"football":    true,
	"sporting":    true,
}

// aliases maps normalized short or historical spellings to the
// normalized canonical key. Normalization alone cannot know that
// "Spurs" means Tottenham Hotspur; this table is the only place such
// ambiguity is resolved by fiat.
var aliases = map[string]string{
	"spurs":         "tottenhamhotspur",
	"tottenham":     "tottenhamhotspur",
	"manutd":        "manchesterunited",
	"manunited":     "manchesterunited",
	"mancity":       "manchestercity",
	"nottmforest":   "nottinghamforest",
	"forest":        "nottinghamforest",
	"wolves":        "wolverhamptonwanderers",
	"westham":       "westhamunited",
	"newcastle":     "newcastleunited",
	"brighton":      "brightonandhovealbion",
	"leeds":         "leedsunited",
	"leicester":     "leicestercity",
	"sheffieldutd":  "sheffieldunited",
	"westbrom":      "westbromwichalbion",
	"wba":           "westbromwichalbion",
	"luton":         "lutontown",
	"ipswich":       "ipswichtown",
	"villa":         "astonvilla",
	"palace":        "crystalpalace",
	"saints":        "southampton",
}

// Normalize produces the comparison key for a raw name: lower-case,
// ampersands spelled out, suffix tokens removed, everything outside
// [a-z0-9] stripped.
func Normalize(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))
	lowered = strings.ReplaceAll(lowered, "&", " and ")

	var b strings.Builder
	b.Grow(len(lowered))
	for _, word := range strings.Fields(lowered) {
		cleaned := stripNonAlnum(word)
		if cleaned == "" || suffixTokens[cleaned] {
			continue
		}
		b.WriteString(cleaned)
	}
	return b.String()
}

// Resolve maps a raw name to its canonical key, routing through the
// alias table when the normalized form is a known short spelling.
func Resolve(name string) string {
	key := Normalize(name)
	if target, ok := aliases[key]; ok {
		return target
	}
	return key
}

// Match reports whether two raw names denote the same club.
func Match(a, b string) bool {
	return Resolve(a) == Resolve(b)
}

// Find returns the first team whose name, short name, or resolved key
// matches the query. Absence is an expected outcome, not an error;
// callers fall back to the raw name.
func Find(teams []team.Team, name string) (team.Team, bool) {
	want := Resolve(name)
	for _, t := range teams {
		if t.Name == name || (t.Short != "" && t.Short == name) {
			return t, true
		}
		if Resolve(t.Name) == want {
			return t, true
		}
		if t.Short != "" && Resolve(t.Short) == want {
			return t, true
		}
	}
	return team.Team{}, false
}

func stripNonAlnum(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
