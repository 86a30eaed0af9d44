package club

import (
	"testing"

	"github.com/premtable/matchday/internal/domain/team"
)

func TestResolve_Idempotent(t *testing.T) {
	t.Parallel()

	names := []string{
		"Arsenal FC",
		"Nott'm Forest",
		"Spurs",
		"Brighton & Hove Albion",
		"Man Utd",
		"Wolves",
		"",
		"1. FC Köln",
	}
	for _, name := range names {
		once := Resolve(name)
		if twice := Resolve(once); twice != once {
			t.Fatalf("Resolve not idempotent for %q: %q -> %q", name, once, twice)
		}
	}
}

func TestMatch_KnownAliases(t *testing.T) {
	t.Parallel()

	cases := []struct {
		a, b string
		want bool
	}{
		{"Nott'm Forest", "Nottingham Forest", true},
		{"Man Utd", "Manchester United", true},
		{"Man City", "Manchester City", true},
		{"Spurs", "Tottenham Hotspur", true},
		{"Wolves", "Wolverhampton Wanderers", true},
		{"Brighton", "Brighton & Hove Albion", true},
		{"Arsenal", "Arsenal FC", true},
		{"AFC Bournemouth", "Bournemouth", true},
		{"Everton", "Liverpool", false},
		// Not in the alias table: must be a clean false, not a crash.
		{"The Toffees", "Everton", false},
	}

	for _, tc := range cases {
		if got := Match(tc.a, tc.b); got != tc.want {
			t.Fatalf("Match(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestNormalize_StripsSuffixesAndPunctuation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"Arsenal FC", "arsenal"},
		{"AFC Bournemouth", "bournemouth"},
		{"Brighton & Hove Albion", "brightonandhovealbion"},
		{"Nott'm Forest", "nottmforest"},
		{"  West Ham United  ", "westhamunited"},
		{"Sporting Club de Portugal", "deportugal"},
	}

	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFind_MatchesByNameShortAndKey(t *testing.T) {
	t.Parallel()

	teams := []team.Team{
		{Name: "Tottenham Hotspur", Short: "Spurs"},
		{Name: "Manchester United", Short: "Man Utd"},
		{Name: "Nottingham Forest"},
	}

	if got, ok := Find(teams, "Spurs"); !ok || got.Name != "Tottenham Hotspur" {
		t.Fatalf("Find by short name failed: ok=%v got=%+v", ok, got)
	}
	if got, ok := Find(teams, "Nott'm Forest"); !ok || got.Name != "Nottingham Forest" {
		t.Fatalf("Find by resolved key failed: ok=%v got=%+v", ok, got)
	}
	if got, ok := Find(teams, "Manchester United"); !ok || got.Name != "Manchester United" {
		t.Fatalf("Find by exact name failed: ok=%v got=%+v", ok, got)
	}

	// Absence is an expected outcome, not an error.
	if _, ok := Find(teams, "Real Madrid"); ok {
		t.Fatalf("Find returned a match for an unknown club")
	}
	if _, ok := Find(nil, "Arsenal"); ok {
		t.Fatalf("Find on empty collection must report not found")
	}
}
