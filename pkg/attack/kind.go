package attack

import (
	"fmt"
	"strings"
)

// Kind selects which recovery is applied to a Request.
type Kind uint8

const (
	// KindUnknown is the zero Kind, and is never valid in a Request.
	KindUnknown Kind = iota
	// KindCRT is the broadcast attack: one exponent, many moduli.
	KindCRT
	// KindCommonModulus is the common modulus attack: one modulus, two coprime exponents.
	KindCommonModulus
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindCRT:
		return "crt"
	case KindCommonModulus:
		return "common-modulus"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// Valid returns true if k is one of the defined attacks.
func (k Kind) Valid() bool {
	return k == KindCRT || k == KindCommonModulus
}

// ParseKind accepts the names returned by Kind.String, as well as the short
// forms "common" and the menu choices "1" and "2".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "crt", "1":
		return KindCRT, nil
	case "common-modulus", "common", "2":
		return KindCommonModulus, nil
	default:
		return KindUnknown, fmt.Errorf("%w: unknown attack %q", ErrInvalidInput, s)
	}
}
