package kinship

import "math/big"

// Dyadic is an exact rational constrained, by construction, to a
// power-of-two denominator: every value in the kinship recurrence starts
// at 0 or 1 and is only ever halved, summed, or multiplied by another
// Dyadic, so the denominator's prime factors never leave {2}. This gives
// the "φ(i,j)·2^k is an integer for some small k" property from
// spec.md §8 for free, instead of needing to verify it against floats.
//
// No third-party exact-rational library appears anywhere in the
// retrieval pack, so this wraps the standard library's math/big.Rat
// (see DESIGN.md).
type Dyadic struct {
	r *big.Rat
}

// Zero is the additive identity.
func Zero() Dyadic { return Dyadic{r: new(big.Rat)} }

// One is the multiplicative identity.
func One() Dyadic { return Dyadic{r: big.NewRat(1, 1)} }

// IsZero reports whether d is exactly zero.
func (d Dyadic) IsZero() bool {
	return d.r == nil || d.r.Sign() == 0
}

// GreaterThanOne reports whether d > 1 (used for the inbreeding flag).
func (d Dyadic) GreaterThanOne() bool {
	return d.r != nil && d.r.Cmp(big.NewRat(1, 1)) > 0
}

// Add returns a+b.
func Add(a, b Dyadic) Dyadic {
	out := new(big.Rat)
	out.Add(ratOf(a), ratOf(b))
	return Dyadic{r: out}
}

// Half returns a/2.
func Half(a Dyadic) Dyadic {
	out := new(big.Rat)
	out.Mul(ratOf(a), big.NewRat(1, 2))
	return Dyadic{r: out}
}

// Mul returns a*b.
func Mul(a, b Dyadic) Dyadic {
	out := new(big.Rat)
	out.Mul(ratOf(a), ratOf(b))
	return Dyadic{r: out}
}

// Quarter returns a/4, used directly by the delta7 formula.
func Quarter(a Dyadic) Dyadic {
	out := new(big.Rat)
	out.Mul(ratOf(a), big.NewRat(1, 4))
	return Dyadic{r: out}
}

// Float64 converts d to a float64 for export/formatting.
func (d Dyadic) Float64() float64 {
	if d.r == nil {
		return 0
	}
	f, _ := d.r.Float64()
	return f
}

func ratOf(d Dyadic) *big.Rat {
	if d.r == nil {
		return new(big.Rat)
	}
	return d.r
}
