package hash

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/big"

	"github.com/taurusgroup/rsa-attacks/internal/params"
	"github.com/zeebo/blake3"
)

const DigestLengthBytes = params.DigestBytes

// Hash fingerprints attack requests.
//
// Internally, this is a wrapper around a blake3.Hasher. Every value is written
// with its own domain, so that a list of moduli can never collide with the same
// integers given as ciphertexts.
type Hash struct {
	h *blake3.Hasher
}

// New creates a Hash whose state is initialized with the given domain.
func New(domain string) *Hash {
	hash := &Hash{h: blake3.New()}
	_ = writeWithDomain(hash.h, "init", []byte(domain))
	return hash
}

// Digest returns a reader for the current output of the function.
func (hash *Hash) Digest() io.Reader {
	return hash.h.Digest()
}

// Sum returns a slice of length DigestLengthBytes resulting from the current hash state.
func (hash *Hash) Sum() []byte {
	out := make([]byte, DigestLengthBytes)
	if _, err := io.ReadFull(hash.Digest(), out); err != nil {
		panic(fmt.Sprintf("hash.Sum: internal hash failure: %v", err))
	}
	return out
}

// WriteAny takes many different data types and writes them to the hash state.
//
// Currently supported types:
//
//   - []byte
//   - string
//   - *big.Int
//   - []*big.Int
//
// Each value is written under the domain of its type.
func (hash *Hash) WriteAny(data ...interface{}) error {
	var err error
	for _, d := range data {
		switch t := d.(type) {
		case []byte:
			err = writeWithDomain(hash.h, "[]byte", t)
			if err != nil {
				return fmt.Errorf("hash.Hash: write []byte: %w", err)
			}
		case string:
			err = writeWithDomain(hash.h, "string", []byte(t))
			if err != nil {
				return fmt.Errorf("hash.Hash: write string: %w", err)
			}
		case *big.Int:
			if err = writeBigInt(hash.h, t); err != nil {
				return err
			}
		case []*big.Int:
			for _, x := range t {
				if err = writeBigInt(hash.h, x); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("hash.Hash: unsupported type %T", d)
		}
	}
	return nil
}

// writeBigInt writes the sign and the minimal big-endian magnitude of x.
func writeBigInt(w io.Writer, x *big.Int) error {
	if x == nil {
		return fmt.Errorf("hash.Hash: write *big.Int: nil")
	}
	sign := byte(0)
	if x.Sign() < 0 {
		sign = 1
	}
	err := writeWithDomain(w, "big.Int", append([]byte{sign}, x.Bytes()...))
	if err != nil {
		return fmt.Errorf("hash.Hash: write *big.Int: %w", err)
	}
	return nil
}

// writeWithDomain writes len(domain) ‖ domain ‖ len(data) ‖ data, with
// lengths as 8 byte big-endian integers.
func writeWithDomain(w io.Writer, domain string, data []byte) error {
	var length [8]byte
	binary.BigEndian.PutUint64(length[:], uint64(len(domain)))
	if _, err := w.Write(length[:]); err != nil {
		return err
	}
	if _, err := io.WriteString(w, domain); err != nil {
		return err
	}
	binary.BigEndian.PutUint64(length[:], uint64(len(data)))
	if _, err := w.Write(length[:]); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}
