package team

import "testing"

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"TOR":  "TOR",
		" tor": "TOR",
		"L.A":  "LAK",
		"N.J":  "NJD",
		"S.J":  "SJS",
		"T.B":  "TBL",
		"PHX":  "ARI",
		"UTA":  "UTA",
		"":     "",
	}
	for input, want := range cases {
		if got := Normalize(input); got != want {
			t.Fatalf("normalize %q: got=%q want=%q", input, got, want)
		}
	}
}

func TestResolver_UsesNormalize(t *testing.T) {
	t.Parallel()

	if got := NewResolver().Resolve("t.b"); got != "TBL" {
		t.Fatalf("unexpected resolved code: %q", got)
	}
}
