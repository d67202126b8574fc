package similarity

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"The Matrix", "the matrix"},
		{"  Spider-Man:  No Way Home! ", "spiderman no way home"},
		{"寄生虫", "寄生虫"},
		{"Ｐａｒａｓｉｔｅ", "parasite"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestScoreIdentity(t *testing.T) {
	for _, s := range []string{"The Matrix", "寄生虫", "", "a", "Blade Runner 2049"} {
		if got := Score(s, s); got != 1.0 {
			t.Fatalf("Score(%q, %q) = %v, want 1.0", s, s, got)
		}
	}
}

func TestScoreIdenticalAfterNormalization(t *testing.T) {
	if got := Score("The Matrix", "the.matrix"); got != 1.0 {
		t.Fatalf("Score = %v, want 1.0", got)
	}
	if got := Score("", "   "); got != 1.0 {
		t.Fatalf("Score of empty forms = %v, want 1.0", got)
	}
}

func TestScoreSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"The Matrix", "The Matrix Reloaded"},
		{"寄生虫", "寄生兽"},
		{"Inception", "Interstellar"},
		{"abc", ""},
	}
	for _, p := range pairs {
		if ab, ba := Score(p[0], p[1]), Score(p[1], p[0]); ab != ba {
			t.Fatalf("Score(%q,%q)=%v but Score(%q,%q)=%v", p[0], p[1], ab, p[1], p[0], ba)
		}
	}
}

func TestScoreBounds(t *testing.T) {
	pairs := [][2]string{
		{"The Matrix", "completely different title"},
		{"a", "zzzzzzzzzzzz"},
		{"寄生虫", "Parasite"},
		{"", "something"},
	}
	for _, p := range pairs {
		got := Score(p[0], p[1])
		if got < 0 || got > 1 {
			t.Fatalf("Score(%q,%q) = %v outside [0,1]", p[0], p[1], got)
		}
	}
}

func TestScoreCloseTitles(t *testing.T) {
	if got := Score("The Matrix", "The Matrixx"); got <= 0.8 {
		t.Fatalf("near-identical titles scored %v, want > 0.8", got)
	}
	if got := Score("The Matrix", "Gone with the Wind"); got >= 0.8 {
		t.Fatalf("unrelated titles scored %v, want < 0.8", got)
	}
}
