package arith

import (
	"fmt"
	"math/big"

	"github.com/cronokirby/saferith"
)

// Modulus wraps a saferith.Modulus so that modular arithmetic over public
// RSA moduli can be done with *big.Int inputs and outputs.
//
// saferith works in Montgomery form, which requires an odd modulus. RSA moduli
// always are, but for an even n the wrapper falls back to math/big.
type Modulus struct {
	// represents modulus n, nil when n is even
	*saferith.Modulus
	n *big.Int
}

// NewModulus creates a Modulus for n > 1. The value of n is copied.
func NewModulus(n *big.Int) (*Modulus, error) {
	if n == nil || n.Cmp(one) <= 0 {
		return nil, fmt.Errorf("arith: modulus %v is not greater than 1", n)
	}
	m := &Modulus{n: new(big.Int).Set(n)}
	if n.Bit(0) == 1 {
		m.Modulus = saferith.ModulusFromNat(new(saferith.Nat).SetBig(n, n.BitLen()))
	}
	return m, nil
}

// Big returns n as a *big.Int.
func (m *Modulus) Big() *big.Int {
	return new(big.Int).Set(m.n)
}

// nat converts x to a saferith.Nat reduced mod n.
func (m *Modulus) nat(x *big.Int) *saferith.Nat {
	reduced := new(big.Int).Mod(x, m.n)
	return new(saferith.Nat).SetBig(reduced, m.n.BitLen())
}

// Exp returns xᵉ (mod n) for e ⩾ 0.
//
// Negative exponents must be handled by the caller, by inverting x first.
func (m *Modulus) Exp(x, e *big.Int) *big.Int {
	if e.Sign() < 0 {
		panic("arith.Modulus.Exp: negative exponent")
	}
	if e.Sign() == 0 {
		return big.NewInt(1)
	}
	if m.Modulus == nil {
		return new(big.Int).Exp(new(big.Int).Mod(x, m.n), e, m.n)
	}
	eNat := new(saferith.Nat).SetBig(e, e.BitLen())
	return new(saferith.Nat).Exp(m.nat(x), eNat, m.Modulus).Big()
}

// Mul returns x⋅y (mod n).
func (m *Modulus) Mul(x, y *big.Int) *big.Int {
	if m.Modulus == nil {
		z := new(big.Int).Mul(x, y)
		return z.Mod(z, m.n)
	}
	return new(saferith.Nat).ModMul(m.nat(x), m.nat(y), m.Modulus).Big()
}
