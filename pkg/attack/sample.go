package attack

import (
	"fmt"
	"math/big"

	"github.com/taurusgroup/rsa-attacks/internal/params"
)

var (
	one         = big.NewInt(1)
	minExponent = big.NewInt(params.MinExponent)
)

// CipherSample is a single RSA ciphertext c = mᵉ (mod n) together with the
// public key (n, e) it was produced with.
//
// A CipherSample is immutable, all accessors return copies.
type CipherSample struct {
	n, e, c *big.Int
}

// NewCipherSample validates and copies the given values.
//
// It requires n > 1, e ⩾ 3 and 0 ⩽ c < n, and returns an error wrapping
// ErrInvalidInput otherwise.
func NewCipherSample(n, e, c *big.Int) (CipherSample, error) {
	if n == nil || e == nil || c == nil {
		return CipherSample{}, fmt.Errorf("%w: sample has a missing value", ErrInvalidInput)
	}
	if n.Cmp(one) <= 0 {
		return CipherSample{}, fmt.Errorf("%w: modulus %s is not greater than 1", ErrInvalidInput, n)
	}
	if e.Cmp(minExponent) < 0 {
		return CipherSample{}, fmt.Errorf("%w: exponent %s is less than %d", ErrInvalidInput, e, params.MinExponent)
	}
	if c.Sign() < 0 || c.Cmp(n) >= 0 {
		return CipherSample{}, fmt.Errorf("%w: ciphertext %s is not in [0, %s)", ErrInvalidInput, c, n)
	}
	return CipherSample{
		n: new(big.Int).Set(n),
		e: new(big.Int).Set(e),
		c: new(big.Int).Set(c),
	}, nil
}

// Modulus returns n.
func (s CipherSample) Modulus() *big.Int { return new(big.Int).Set(s.n) }

// Exponent returns e.
func (s CipherSample) Exponent() *big.Int { return new(big.Int).Set(s.e) }

// Ciphertext returns c.
func (s CipherSample) Ciphertext() *big.Int { return new(big.Int).Set(s.c) }

// isZero reports whether s was built without NewCipherSample.
func (s CipherSample) isZero() bool {
	return s.n == nil || s.e == nil || s.c == nil
}

// checkSamples verifies that there are enough samples, and that all of them
// were properly constructed.
func checkSamples(samples []CipherSample, min int) error {
	if len(samples) < min {
		return fmt.Errorf("%w: got %d samples, need at least %d", ErrInvalidInput, len(samples), min)
	}
	for i, s := range samples {
		if s.isZero() {
			return fmt.Errorf("%w: sample %d is empty", ErrInvalidInput, i)
		}
	}
	return nil
}
