// Package marker implements the marker-data ingester and allele
// interner from spec.md §4.8: fixed-width genotype parsing, X-linked
// sex/ploidy checks, allele interning with frequency estimation, and
// MZ-twin genotype consistency.
package marker

import (
	"strings"
	"unicode"
)

// splitGenotypeToken extracts the two allele symbols from a raw
// fixed-width genotype field, per spec.md §4.8:
//   - parentheses are treated as spaces
//   - a '/' or interior whitespace indicates an explicit divided form
//     "A/B"
//   - an undivided token packs both alleles back to back and is split by
//     the base-character-plus-suffix rule (see splitUndividedToken)
//   - "0" and "-" normalize to the empty allele
func splitGenotypeToken(raw string) (a, b string, ok bool) {
	cleaned := strings.NewReplacer("(", " ", ")", " ").Replace(raw)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return "", "", true
	}

	var parts []string
	if strings.ContainsRune(cleaned, '/') {
		parts = strings.SplitN(cleaned, "/", 2)
	} else if strings.ContainsAny(strings.TrimSpace(cleaned), " \t") {
		parts = strings.Fields(cleaned)
		if len(parts) > 2 {
			return "", "", false
		}
	} else {
		a, b, splitOK := splitUndividedToken(cleaned)
		if !splitOK {
			return "", "", false
		}
		parts = []string{a, b}
	}

	for i, p := range parts {
		parts[i] = normalizeAllele(strings.TrimSpace(p))
	}
	switch len(parts) {
	case 1:
		return parts[0], "", true
	case 2:
		return parts[0], parts[1], true
	default:
		return "", "", false
	}
}

// normalizeAllele maps the empty-allele sentinels "0" and "-" to "".
func normalizeAllele(tok string) string {
	if tok == "0" || tok == "-" {
		return ""
	}
	return tok
}

// splitUndividedToken splits a packed, undivided genotype token into its
// two allele sub-tokens, per the base-character-plus-suffix rule in the
// original PEDSYS `getAlleles()`: the token's first character fixes the
// mode (numeric if a digit, alphabetic if a letter), and each allele
// consists of one character of that primary kind followed by a run of
// characters of the other kind (digits/primes trailing an alpha base, or
// alpha/primes trailing a numeric base). Consuming two such alleles must
// exhaust the token exactly, e.g. "12" -> "1","2" and "A1B2" -> "A1","B2".
func splitUndividedToken(tok string) (a, b string, ok bool) {
	runes := []rune(tok)
	if len(runes) == 0 {
		return "", "", false
	}

	isDigit := func(r rune) bool { return unicode.IsDigit(r) }
	isAlpha := func(r rune) bool { return unicode.IsLetter(r) }

	numeric := isDigit(runes[0])
	if !numeric && !isAlpha(runes[0]) {
		return "", "", false
	}
	primary, suffix := isDigit, func(r rune) bool { return isAlpha(r) || r == '\'' }
	if !numeric {
		primary, suffix = isAlpha, func(r rune) bool { return isDigit(r) || r == '\'' }
	}

	consume := func(i int) (string, int, bool) {
		if i >= len(runes) || !primary(runes[i]) {
			return "", i, false
		}
		start := i
		i++
		for i < len(runes) && suffix(runes[i]) {
			i++
		}
		return string(runes[start:i]), i, true
	}

	allele0, pos, ok0 := consume(0)
	if !ok0 {
		return "", "", false
	}
	allele1, pos, ok1 := consume(pos)
	if !ok1 || pos != len(runes) {
		return "", "", false
	}
	return allele0, allele1, true
}

// isNumericSymbol reports whether symbol is an integer literal, per the
// Locus.AllNumeric rule in spec.md §3/§4.8.
func isNumericSymbol(symbol string) bool {
	if symbol == "" {
		return false
	}
	for _, r := range symbol {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
