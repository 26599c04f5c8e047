package arith

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	one = big.NewInt(1)

	// ErrNoInverse is returned when an element has no inverse modulo m,
	// that is gcd(a, m) ≠ 1.
	ErrNoInverse = errors.New("arith: no modular inverse")

	// ErrRootNotExact is returned when an integer is not a perfect k-th power.
	ErrRootNotExact = errors.New("arith: root is not exact")
)

// IsCoprime returns true if gcd(a,b) = 1.
func IsCoprime(a, b *big.Int) bool {
	var gcd big.Int
	return gcd.GCD(nil, nil, a, b).Cmp(one) == 0
}

// Bezout runs the extended Euclidean algorithm on a, b ⩾ 0 and returns
// g = gcd(a,b) together with both coefficients x, y such that
// a⋅x + b⋅y = g.
func Bezout(a, b *big.Int) (g, x, y *big.Int) {
	oldR, r := new(big.Int).Set(a), new(big.Int).Set(b)
	oldS, s := big.NewInt(1), big.NewInt(0)
	oldT, t := big.NewInt(0), big.NewInt(1)

	q, tmp := new(big.Int), new(big.Int)
	for r.Sign() != 0 {
		q.Quo(oldR, r)
		// (oldR, r) = (r, oldR - q⋅r), and likewise for s and t
		oldR, r = r, oldR.Sub(oldR, tmp.Mul(q, r))
		oldS, s = s, oldS.Sub(oldS, tmp.Mul(q, s))
		oldT, t = t, oldT.Sub(oldT, tmp.Mul(q, t))
	}
	return oldR, oldS, oldT
}

// ModularInverse returns a⁻¹ (mod m).
//
// It fails with ErrNoInverse when gcd(a, m) ≠ 1 or m ⩽ 1, and never panics.
func ModularInverse(a, m *big.Int) (*big.Int, error) {
	if m.Cmp(one) <= 0 {
		return nil, fmt.Errorf("%w: modulus %s is not greater than 1", ErrNoInverse, m)
	}
	aReduced := new(big.Int).Mod(a, m)
	inv := new(big.Int).ModInverse(aReduced, m)
	if inv == nil {
		return nil, fmt.Errorf("%w: gcd(%s, %s) ≠ 1", ErrNoInverse, a, m)
	}
	return inv, nil
}
