package attack

import (
	"fmt"
	"math/big"

	"github.com/taurusgroup/rsa-attacks/internal/params"
	"github.com/taurusgroup/rsa-attacks/pkg/math/arith"
)

// RecoverCRT runs the broadcast attack on samples cᵢ = mᵉ (mod nᵢ) sharing one exponent e.
//
// The residues are combined into C ≡ cᵢ (mod nᵢ) modulo N = ∏ nᵢ. When mᵉ < N,
// which holds as soon as there are at least e samples, C = mᵉ exactly and m is
// its integer e-th root.
//
// It fails with ErrInvalidInput for fewer than two samples or differing
// exponents, ErrNoInverse when two moduli share a factor, and ErrRootNotExact
// when C is not an e-th power.
func RecoverCRT(samples []CipherSample) (*Plaintext, error) {
	if err := checkSamples(samples, params.MinSamples); err != nil {
		return nil, fmt.Errorf("crt: %w", err)
	}

	e := samples[0].e
	moduli := make([]*big.Int, 0, len(samples))
	residues := make([]*big.Int, 0, len(samples))
	for i, s := range samples {
		if s.e.Cmp(e) != 0 {
			return nil, fmt.Errorf("crt: %w: exponent of sample %d is %s, want %s", ErrInvalidInput, i, s.e, e)
		}
		moduli = append(moduli, s.n)
		residues = append(residues, s.c)
	}

	C, _, err := arith.CRT(residues, moduli)
	if err != nil {
		return nil, fmt.Errorf("crt: %w", err)
	}

	m, err := root(C, e)
	if err != nil {
		return nil, fmt.Errorf("crt: %w", err)
	}
	return NewPlaintext(m), nil
}

// root returns the exact e-th root of C.
func root(C, e *big.Int) (*big.Int, error) {
	// 0 and 1 are their own roots for every exponent.
	if C.Cmp(one) <= 0 {
		return new(big.Int).Set(C), nil
	}
	// Any root ⩾ 2 raised to such an exponent could not be held in memory.
	if e.BitLen() > 31 {
		return nil, fmt.Errorf("%w: exponent %s is too large", ErrRootNotExact, e)
	}
	return arith.ExactRoot(C, int(e.Int64()))
}
