package textutil

import "testing"

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain", "Calculus", "Calculus"},
		{"spaces", "All of Statistics", "All_of_Statistics"},
		{"slash", "Analysis I/II", "Analysis_I_II"},
		{"punctuation", "Probability: Theory, and \"Examples\"", "Probability_Theory_and_Examples"},
		{"parens and brackets", "Algebra (2nd Ed.) [Draft]", "Algebra_2nd_Ed_Draft"},
		{"trademark glyphs", "MATLAB® Primer™", "MATLAB_Primer"},
		{"tabs and newlines", "A\tB\nC", "A_B_C"},
		{"surrounding whitespace", "  Linear Algebra  ", "Linear_Algebra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFileName(tt.input); got != tt.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeFileNameDeterministic(t *testing.T) {
	input := "Brownian Motion, Martingales, and Stochastic Calculus"
	first := SanitizeFileName(input)
	for i := 0; i < 5; i++ {
		if got := SanitizeFileName(input); got != first {
			t.Fatalf("SanitizeFileName not stable: %q then %q", first, got)
		}
	}
}

func TestIDToken(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"10.1007/978-3-030-12345-6", "10-1007-978-3-030-12345-6"},
		{"plain", "plain"},
		{" 10.1007/abc ", "10-1007-abc"},
	}

	for _, tt := range tests {
		if got := IDToken(tt.input); got != tt.want {
			t.Errorf("IDToken(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
