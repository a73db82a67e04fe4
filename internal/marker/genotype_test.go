package marker

import "testing"

func TestSplitGenotypeToken(t *testing.T) {
	cases := []struct {
		raw     string
		wantA   string
		wantB   string
		wantOK  bool
	}{
		{"12 14", "12", "14", true},
		{"12/14", "12", "14", true},
		{"(12 14)", "12", "14", true},
		{"0 0", "", "", true},
		{"-  -", "", "", true},
		{"A1/B2", "A1", "B2", true},
		{"   ", "", "", true},
		{"12 14 16", "", "", false},
		{"12", "1", "2", true},
		{"A1B2", "A1", "B2", true},
	}
	for _, c := range cases {
		a, b, ok := splitGenotypeToken(c.raw)
		if ok != c.wantOK {
			t.Errorf("splitGenotypeToken(%q) ok = %v, want %v", c.raw, ok, c.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if a != c.wantA || b != c.wantB {
			t.Errorf("splitGenotypeToken(%q) = (%q,%q), want (%q,%q)", c.raw, a, b, c.wantA, c.wantB)
		}
	}
}

func TestSplitUndividedToken(t *testing.T) {
	cases := []struct {
		tok    string
		wantA  string
		wantB  string
		wantOK bool
	}{
		{"12", "1", "2", true},
		{"A1B2", "A1", "B2", true},
		{"AB", "A", "B", true},
		{"1A2B", "1A", "2B", true},
		{"1234", "", "", false},
		{"", "", "", false},
		{"1", "", "", false},
	}
	for _, c := range cases {
		a, b, ok := splitUndividedToken(c.tok)
		if ok != c.wantOK {
			t.Errorf("splitUndividedToken(%q) ok = %v, want %v", c.tok, ok, c.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if a != c.wantA || b != c.wantB {
			t.Errorf("splitUndividedToken(%q) = (%q,%q), want (%q,%q)", c.tok, a, b, c.wantA, c.wantB)
		}
	}
}

func TestIsNumericSymbol(t *testing.T) {
	if !isNumericSymbol("142") {
		t.Error("expected \"142\" to be numeric")
	}
	if isNumericSymbol("A1") {
		t.Error("expected \"A1\" to not be numeric")
	}
	if isNumericSymbol("") {
		t.Error("expected empty string to not be numeric")
	}
}
