package cli

import (
	"fmt"
	"math/big"

	"github.com/taurusgroup/rsa-attacks/internal/params"
	"github.com/taurusgroup/rsa-attacks/pkg/attack"
)

// Input is what the user supplied, either through flags or a request file,
// before any validation.
type Input struct {
	Attack      string     `json:"attack,omitempty" cbor:"attack,omitempty"`
	Moduli      []*big.Int `json:"moduli" cbor:"moduli"`
	Exponents   []*big.Int `json:"exponents" cbor:"exponents"`
	Ciphertexts []*big.Int `json:"ciphertexts" cbor:"ciphertexts"`
}

// Config is the validated form of an Input. All three lists have the same
// length, a single modulus or exponent having been repeated for every ciphertext.
//
// A Config is built once by NewConfig and never modified afterwards.
type Config struct {
	// Kind is KindUnknown when the attack still has to be selected.
	Kind        attack.Kind
	Moduli      []*big.Int
	Exponents   []*big.Int
	Ciphertexts []*big.Int
}

// NewConfig validates in and broadcasts a single modulus or exponent to the
// number of ciphertexts. Errors wrap attack.ErrInvalidInput.
func NewConfig(in Input) (*Config, error) {
	if len(in.Moduli) == 0 || len(in.Exponents) == 0 || len(in.Ciphertexts) < params.MinSamples {
		return nil, fmt.Errorf("%w: provide at least one modulus, one exponent and %d ciphertexts",
			attack.ErrInvalidInput, params.MinSamples)
	}

	for name, xs := range map[string][]*big.Int{
		"modulus":    in.Moduli,
		"exponent":   in.Exponents,
		"ciphertext": in.Ciphertexts,
	} {
		for i, x := range xs {
			if x == nil {
				return nil, fmt.Errorf("%w: %s %d is missing", attack.ErrInvalidInput, name, i)
			}
		}
	}

	kind := attack.KindUnknown
	if in.Attack != "" {
		var err error
		if kind, err = attack.ParseKind(in.Attack); err != nil {
			return nil, err
		}
	}

	count := len(in.Ciphertexts)
	moduli := broadcast(in.Moduli, count)
	exponents := broadcast(in.Exponents, count)
	if len(moduli) != count || len(exponents) != count {
		return nil, fmt.Errorf("%w: got %d moduli, %d exponents and %d ciphertexts, the counts must match",
			attack.ErrInvalidInput, len(in.Moduli), len(in.Exponents), count)
	}

	return &Config{
		Kind:        kind,
		Moduli:      moduli,
		Exponents:   exponents,
		Ciphertexts: copyInts(in.Ciphertexts),
	}, nil
}

// broadcast repeats a single value count times, and copies longer lists as is.
func broadcast(xs []*big.Int, count int) []*big.Int {
	if len(xs) != 1 {
		return copyInts(xs)
	}
	out := make([]*big.Int, count)
	for i := range out {
		out[i] = new(big.Int).Set(xs[0])
	}
	return out
}

func copyInts(xs []*big.Int) []*big.Int {
	out := make([]*big.Int, len(xs))
	for i, x := range xs {
		out[i] = new(big.Int).Set(x)
	}
	return out
}

// Samples builds one CipherSample per ciphertext.
func (c *Config) Samples() ([]attack.CipherSample, error) {
	samples := make([]attack.CipherSample, 0, len(c.Ciphertexts))
	for i := range c.Ciphertexts {
		s, err := attack.NewCipherSample(c.Moduli[i], c.Exponents[i], c.Ciphertexts[i])
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		samples = append(samples, s)
	}
	return samples, nil
}

// Request builds the attack request for the given kind.
func (c *Config) Request(kind attack.Kind) (*attack.Request, error) {
	samples, err := c.Samples()
	if err != nil {
		return nil, err
	}
	return attack.NewRequest(kind, samples)
}
