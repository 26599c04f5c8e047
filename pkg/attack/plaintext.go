package attack

import (
	"fmt"
	"math/big"
	"unicode/utf8"
)

// Plaintext is a recovered message m, as an integer and as bytes.
type Plaintext struct {
	// Message is the recovered integer m.
	Message *big.Int
	// Bytes is the minimal big-endian encoding of Message.
	Bytes []byte
}

// NewPlaintext copies m and computes its byte encoding.
func NewPlaintext(m *big.Int) *Plaintext {
	return &Plaintext{
		Message: new(big.Int).Set(m),
		Bytes:   Decode(m),
	}
}

// Text returns Bytes as a string, or ErrNotDecodable if they are not valid UTF-8.
func (p *Plaintext) Text() (string, error) {
	if !utf8.Valid(p.Bytes) {
		return "", fmt.Errorf("%w: %d bytes of invalid UTF-8", ErrNotDecodable, len(p.Bytes))
	}
	return string(p.Bytes), nil
}

// Decode returns the minimal big-endian encoding of m ⩾ 0.
// Zero is encoded as a single zero byte.
func Decode(m *big.Int) []byte {
	if m.Sign() == 0 {
		return []byte{0}
	}
	return m.Bytes()
}

// Encode interprets b as a big-endian unsigned integer.
// Leading zero bytes do not change the result.
func Encode(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}
