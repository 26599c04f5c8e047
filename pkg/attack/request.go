package attack

import (
	"fmt"
	"math/big"

	"github.com/taurusgroup/rsa-attacks/internal/hash"
	"github.com/taurusgroup/rsa-attacks/internal/params"
)

// Request is an ordered list of samples together with the attack to run on them.
type Request struct {
	kind    Kind
	samples []CipherSample
}

// NewRequest validates that kind is a known attack and that at least two
// samples are given. The samples slice is copied.
func NewRequest(kind Kind, samples []CipherSample) (*Request, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: attack kind %s", ErrInvalidInput, kind)
	}
	if err := checkSamples(samples, params.MinSamples); err != nil {
		return nil, err
	}
	return &Request{
		kind:    kind,
		samples: append([]CipherSample(nil), samples...),
	}, nil
}

// Kind returns the selected attack.
func (r *Request) Kind() Kind { return r.kind }

// Samples returns a copy of the samples.
func (r *Request) Samples() []CipherSample {
	return append([]CipherSample(nil), r.samples...)
}

// Digest returns a fingerprint of the request, identifying it in logs and results.
func (r *Request) Digest() []byte {
	moduli := make([]*big.Int, 0, len(r.samples))
	exponents := make([]*big.Int, 0, len(r.samples))
	ciphertexts := make([]*big.Int, 0, len(r.samples))
	for _, s := range r.samples {
		moduli = append(moduli, s.n)
		exponents = append(exponents, s.e)
		ciphertexts = append(ciphertexts, s.c)
	}
	h := hash.New("rsa-attacks/request")
	if err := h.WriteAny(r.kind.String(), moduli, exponents, ciphertexts); err != nil {
		panic(fmt.Sprintf("attack.Request.Digest: %v", err))
	}
	return h.Sum()
}
