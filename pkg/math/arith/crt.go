package arith

import (
	"errors"
	"fmt"
	"math/big"
)

// CRT solves the system x ≡ residues[i] (mod moduli[i]) and returns the unique
// solution x ∈ [0, N) together with N = ∏ moduli[i].
//
// The moduli are expected to be pairwise coprime. When two of them share a
// factor the recomposition needs an inverse that does not exist, and CRT
// returns an error wrapping ErrNoInverse.
func CRT(residues, moduli []*big.Int) (x, N *big.Int, err error) {
	if len(residues) != len(moduli) {
		return nil, nil, fmt.Errorf("arith.CRT: %d residues for %d moduli", len(residues), len(moduli))
	}
	if len(moduli) == 0 {
		return nil, nil, errors.New("arith.CRT: empty system")
	}
	for i, n := range moduli {
		if n.Cmp(one) <= 0 {
			return nil, nil, fmt.Errorf("arith.CRT: modulus %d is not greater than 1", i)
		}
	}

	// Garner recomposition: after step i, x ≡ residues[j] (mod moduli[j]) for j ⩽ i
	// and N = moduli[0]⋯moduli[i].
	x = new(big.Int).Mod(residues[0], moduli[0])
	N = new(big.Int).Set(moduli[0])
	t := new(big.Int)
	for i := 1; i < len(moduli); i++ {
		nInv, err := ModularInverse(N, moduli[i])
		if err != nil {
			return nil, nil, fmt.Errorf("arith.CRT: modulus %d: %w", i, err)
		}
		// t = (rᵢ - x)⋅N⁻¹ (mod nᵢ)
		t.Sub(residues[i], x)
		t.Mul(t, nInv)
		t.Mod(t, moduli[i])
		// x = x + N⋅t
		x.Add(x, t.Mul(t, N))
		N.Mul(N, moduli[i])
	}
	return x, N, nil
}
