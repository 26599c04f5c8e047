package attack

import (
	"errors"

	"github.com/taurusgroup/rsa-attacks/pkg/math/arith"
)

var (
	// ErrInvalidInput is returned when the samples do not have the shape an
	// attack requires: too few of them, mismatched exponents or moduli, or
	// values outside their domain.
	ErrInvalidInput = errors.New("attack: invalid input")

	// ErrNotCoprime is returned by the common modulus attack when gcd(e₁, e₂) ≠ 1.
	// No plaintext can be recovered in that case.
	ErrNotCoprime = errors.New("attack: exponents are not coprime")

	// ErrRootNotExact is returned by the CRT attack when the recombined
	// ciphertext is not a perfect e-th power, typically because fewer than e
	// samples were given.
	ErrRootNotExact = arith.ErrRootNotExact

	// ErrNoInverse is returned when an element needed by a recovery has no
	// modular inverse.
	ErrNoInverse = arith.ErrNoInverse

	// ErrNotDecodable is returned when the bytes of a recovered message are not
	// valid UTF-8 text. The numeric message is still valid.
	ErrNotDecodable = errors.New("attack: plaintext is not valid text")
)
