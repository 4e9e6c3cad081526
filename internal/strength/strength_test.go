package strength

import "testing"

func TestScoreVectors(t *testing.T) {
	tests := []struct {
		candidate string
		score     int
	}{
		{"weakpassword", 2},
		{"StrongPassword123", 4},
		{"StrongPassword123!", 5},
		{"abc", 1},
		{"ABC", 1},
		{"!!!", 1},
		{"Ab1!", 4},
		{"motdepasseé", 3},
		{"😀😀😀😀", 2},
		{"😀😀😀", 1},
	}
	for _, tt := range tests {
		if got := Score(tt.candidate); got != tt.score {
			t.Errorf("Score(%q) = %d, want %d", tt.candidate, got, tt.score)
		}
	}
}

func TestTierTable(t *testing.T) {
	tests := []struct {
		score      int
		percentage int
		name       string
		label      string
	}{
		{0, 20, "very weak", "Très faible"},
		{1, 20, "very weak", "Très faible"},
		{2, 40, "weak", "Faible"},
		{3, 60, "medium", "Moyen"},
		{4, 80, "strong", "Fort"},
		{5, 100, "very strong", "Très fort"},
	}
	for _, tt := range tests {
		tier := TierOf(tt.score)
		if tier.Percentage() != tt.percentage || tier.String() != tt.name || tier.Label() != tt.label {
			t.Errorf("TierOf(%d) = %d/%s/%s, want %d/%s/%s", tt.score,
				tier.Percentage(), tier, tier.Label(), tt.percentage, tt.name, tt.label)
		}
	}
}

func TestEvaluateSuppressed(t *testing.T) {
	for _, candidate := range []string{"", "   ", "\t\n"} {
		res := Evaluate(candidate)
		if res.Show || res.Score != 0 || res.Percentage != 0 || res.Label != "" {
			t.Fatalf("Evaluate(%q) should be hidden, got %+v", candidate, res)
		}
	}
}

func TestEvaluate(t *testing.T) {
	res := Evaluate("StrongPassword123!")
	if !res.Show || res.Score != 5 || res.Percentage != 100 || res.Tier != VeryStrong || res.Class != "strength-very-strong" {
		t.Fatalf("unexpected result %+v", res)
	}
	res = Evaluate("weakpassword")
	if res.Tier != Weak || res.Percentage != 40 {
		t.Fatalf("unexpected result %+v", res)
	}
}
