package attack

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/fxamacker/cbor/v2"
)

type sampleMarshal struct {
	N, E, C *big.Int
}

type requestMarshal struct {
	Kind    Kind
	Samples []sampleMarshal
}

type resultMarshal struct {
	Kind     Kind
	Message  *big.Int
	Verified bool
	Digest   []byte
	Request  cbor.RawMessage `cbor:",omitempty"`
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (r *Request) MarshalBinary() ([]byte, error) {
	ss := make([]sampleMarshal, 0, len(r.samples))
	for _, s := range r.samples {
		ss = append(ss, sampleMarshal{N: s.n, E: s.e, C: s.c})
	}
	return cbor.Marshal(&requestMarshal{
		Kind:    r.kind,
		Samples: ss,
	})
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
//
// The decoded samples go through the same validation as NewRequest.
func (r *Request) UnmarshalBinary(data []byte) error {
	var rm requestMarshal
	if err := cbor.Unmarshal(data, &rm); err != nil {
		return fmt.Errorf("request: %w", err)
	}
	samples := make([]CipherSample, 0, len(rm.Samples))
	for i, sm := range rm.Samples {
		s, err := NewCipherSample(sm.N, sm.E, sm.C)
		if err != nil {
			return fmt.Errorf("request: sample %d: %w", i, err)
		}
		samples = append(samples, s)
	}
	req, err := NewRequest(rm.Kind, samples)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	*r = *req
	return nil
}

// Marshal encodes the result, along with the request it was computed from.
func (res *Result) Marshal(req *Request) ([]byte, error) {
	if res.Plaintext == nil {
		return nil, errors.New("result: missing plaintext")
	}
	var reqData []byte
	if req != nil {
		var err error
		if reqData, err = req.MarshalBinary(); err != nil {
			return nil, fmt.Errorf("result: %w", err)
		}
	}
	return cbor.Marshal(&resultMarshal{
		Kind:     res.Kind,
		Message:  res.Plaintext.Message,
		Verified: res.Verified,
		Digest:   res.Digest,
		Request:  reqData,
	})
}

// UnmarshalResult decodes data produced by Result.Marshal.
// The request is nil if none was encoded.
func UnmarshalResult(data []byte) (*Result, *Request, error) {
	var rm resultMarshal
	if err := cbor.Unmarshal(data, &rm); err != nil {
		return nil, nil, fmt.Errorf("result: %w", err)
	}
	if rm.Message == nil || rm.Message.Sign() < 0 {
		return nil, nil, errors.New("result: invalid message")
	}
	if !rm.Kind.Valid() {
		return nil, nil, fmt.Errorf("result: invalid attack kind %s", rm.Kind)
	}
	res := &Result{
		Kind:      rm.Kind,
		Plaintext: NewPlaintext(rm.Message),
		Verified:  rm.Verified,
		Digest:    rm.Digest,
	}
	if len(rm.Request) == 0 {
		return res, nil, nil
	}
	req := new(Request)
	if err := req.UnmarshalBinary(rm.Request); err != nil {
		return nil, nil, fmt.Errorf("result: %w", err)
	}
	return res, req, nil
}
