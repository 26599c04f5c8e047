package test

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

// Sample is a raw (n, e, c) triple with c = mᵉ (mod n).
type Sample struct {
	N, E, C *big.Int
}

var one = big.NewInt(1)

// Encrypt returns mᵉ (mod n), without padding.
func Encrypt(m, e, n *big.Int) *big.Int {
	return new(big.Int).Exp(m, e, n)
}

// Modulus returns the product of two distinct random primes of bits/2 bits each.
func Modulus(rand io.Reader, bits int) (*big.Int, error) {
	if bits < 16 {
		return nil, fmt.Errorf("test.Modulus: %d bits is too small", bits)
	}
	for {
		p, err := randPrime(rand, bits/2)
		if err != nil {
			return nil, err
		}
		q, err := randPrime(rand, bits-bits/2)
		if err != nil {
			return nil, err
		}
		if p.Cmp(q) != 0 {
			return p.Mul(p, q), nil
		}
	}
}

func randPrime(r io.Reader, bits int) (*big.Int, error) {
	if r == nil {
		r = rand.Reader
	}
	return rand.Prime(r, bits)
}

// Broadcast encrypts m under the same exponent e for k pairwise coprime moduli of the given size.
func Broadcast(rand io.Reader, m *big.Int, e int64, k, bits int) ([]Sample, error) {
	eBig := big.NewInt(e)
	samples := make([]Sample, 0, k)
	var gcd big.Int
NextModulus:
	for len(samples) < k {
		n, err := Modulus(rand, bits)
		if err != nil {
			return nil, err
		}
		if m.Cmp(n) >= 0 {
			return nil, errors.New("test.Broadcast: message does not fit in the modulus")
		}
		for _, s := range samples {
			if gcd.GCD(nil, nil, s.N, n).Cmp(one) != 0 {
				continue NextModulus
			}
		}
		samples = append(samples, Sample{N: n, E: eBig, C: Encrypt(m, eBig, n)})
	}
	return samples, nil
}

// CommonModulus encrypts m under both exponents with a single modulus of the given size.
func CommonModulus(rand io.Reader, m *big.Int, e1, e2 int64, bits int) ([]Sample, error) {
	n, err := Modulus(rand, bits)
	if err != nil {
		return nil, err
	}
	if m.Cmp(n) >= 0 {
		return nil, errors.New("test.CommonModulus: message does not fit in the modulus")
	}
	return CommonModulusWith(m, n, e1, e2), nil
}

// CommonModulusWith encrypts m under both exponents with the given modulus.
func CommonModulusWith(m, n *big.Int, e1, e2 int64) []Sample {
	samples := make([]Sample, 0, 2)
	for _, e := range []int64{e1, e2} {
		eBig := big.NewInt(e)
		samples = append(samples, Sample{N: new(big.Int).Set(n), E: eBig, C: Encrypt(m, eBig, n)})
	}
	return samples
}

// Message returns the big-endian integer encoding of s.
func Message(s string) *big.Int {
	return new(big.Int).SetBytes([]byte(s))
}
