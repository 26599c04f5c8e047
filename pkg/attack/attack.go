package attack

import (
	"fmt"

	"github.com/taurusgroup/rsa-attacks/pkg/math/arith"
)

// Result is the outcome of a successful Run.
type Result struct {
	Kind      Kind
	Plaintext *Plaintext
	// Verified is true when re-encrypting the plaintext under every sample's
	// key reproduces every ciphertext.
	Verified bool
	// Digest is the fingerprint of the Request this result was computed from.
	Digest []byte
}

// Run applies the attack selected by req to its samples, and verifies the recovered plaintext.
func Run(req *Request) (*Result, error) {
	var (
		p   *Plaintext
		err error
	)
	switch req.kind {
	case KindCRT:
		p, err = RecoverCRT(req.samples)
	case KindCommonModulus:
		p, err = RecoverCommonModulus(req.samples)
	default:
		return nil, fmt.Errorf("%w: attack kind %s", ErrInvalidInput, req.kind)
	}
	if err != nil {
		return nil, err
	}
	return &Result{
		Kind:      req.kind,
		Plaintext: p,
		Verified:  Verify(p, req.samples),
		Digest:    req.Digest(),
	}, nil
}

// Verify returns true if mᵉ (mod n) = c holds for every sample.
func Verify(p *Plaintext, samples []CipherSample) bool {
	if len(samples) == 0 {
		return false
	}
	for _, s := range samples {
		if s.isZero() {
			return false
		}
		mod, err := arith.NewModulus(s.n)
		if err != nil {
			return false
		}
		if mod.Exp(p.Message, s.e).Cmp(s.c) != 0 {
			return false
		}
	}
	return true
}
