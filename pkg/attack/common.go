package attack

import (
	"fmt"
	"math/big"

	"github.com/taurusgroup/rsa-attacks/internal/params"
	"github.com/taurusgroup/rsa-attacks/pkg/math/arith"
)

// inversion records which ciphertext has a negative Bézout coefficient, and
// must therefore be inverted before exponentiation.
type inversion uint8

const (
	invertFirst inversion = iota
	invertSecond
)

func (i inversion) String() string {
	if i == invertFirst {
		return "c₁"
	}
	return "c₂"
}

// chooseInversion returns which of c₁, c₂ must be inverted given the
// coefficients of s₁⋅e₁ + s₂⋅e₂ = 1.
func chooseInversion(s1, s2 *big.Int) (inversion, error) {
	switch {
	case s1.Sign() < 0 && s2.Sign() >= 0:
		return invertFirst, nil
	case s2.Sign() < 0 && s1.Sign() >= 0:
		return invertSecond, nil
	default:
		return 0, fmt.Errorf("%w: Bézout coefficients %s and %s do not have exactly one negative", ErrInvalidInput, s1, s2)
	}
}

// RecoverCommonModulus runs the common modulus attack on c₁ = m^e₁ and
// c₂ = m^e₂ (mod n), the first two samples. Additional samples are ignored,
// but must share the modulus.
//
// With s₁⋅e₁ + s₂⋅e₂ = 1, m = c₁^s₁ ⋅ c₂^s₂ (mod n). Exactly one of the
// coefficients is negative, and the matching ciphertext is inverted mod n.
//
// It fails with ErrInvalidInput for fewer than two samples or differing moduli,
// ErrNotCoprime when gcd(e₁, e₂) ≠ 1, and ErrNoInverse when the ciphertext to
// invert shares a factor with n.
func RecoverCommonModulus(samples []CipherSample) (*Plaintext, error) {
	if err := checkSamples(samples, params.CommonModulusSamples); err != nil {
		return nil, fmt.Errorf("common modulus: %w", err)
	}

	n := samples[0].n
	for i, s := range samples {
		if s.n.Cmp(n) != 0 {
			return nil, fmt.Errorf("common modulus: %w: modulus of sample %d differs from the first", ErrInvalidInput, i)
		}
	}

	first, second := samples[0], samples[1]
	if !arith.IsCoprime(first.e, second.e) {
		return nil, fmt.Errorf("common modulus: %w: gcd(%s, %s) ≠ 1", ErrNotCoprime, first.e, second.e)
	}
	_, s1, s2 := arith.Bezout(first.e, second.e)

	inv, err := chooseInversion(s1, s2)
	if err != nil {
		return nil, fmt.Errorf("common modulus: %w", err)
	}

	mod, err := arith.NewModulus(n)
	if err != nil {
		return nil, fmt.Errorf("common modulus: %w: %v", ErrInvalidInput, err)
	}

	bases := [2]*big.Int{first.c, second.c}
	exps := [2]*big.Int{s1, s2}
	cInv, err := arith.ModularInverse(bases[inv], n)
	if err != nil {
		return nil, fmt.Errorf("common modulus: invert %s: %w", inv, err)
	}
	bases[inv] = cInv
	exps[inv] = new(big.Int).Neg(exps[inv])

	m := mod.Mul(mod.Exp(bases[0], exps[0]), mod.Exp(bases[1], exps[1]))
	return NewPlaintext(m), nil
}
