package cli

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
)

// IntList is a flag.Value collecting arbitrary precision integers. It can be
// repeated, and each occurrence may hold a comma or space separated list.
type IntList []*big.Int

// String implements flag.Value.
func (l *IntList) String() string {
	if l == nil {
		return ""
	}
	parts := make([]string, len(*l))
	for i, x := range *l {
		parts[i] = x.String()
	}
	return strings.Join(parts, ",")
}

// Set implements flag.Value.
func (l *IntList) Set(s string) error {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return fmt.Errorf("empty integer list %q", s)
	}
	for _, f := range fields {
		x, err := ParseInt(f)
		if err != nil {
			return err
		}
		*l = append(*l, x)
	}
	return nil
}

// ParseInt parses a decimal integer, or a hexadecimal one with a 0x prefix.
func ParseInt(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	x, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", s)
	}
	return x, nil
}

// jsonInts decodes a JSON array whose elements are either numbers or strings
// accepted by ParseInt. Numbers are never converted to float64.
type jsonInts []*big.Int

func (l *jsonInts) UnmarshalJSON(data []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	out := make(jsonInts, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			// not a string, so a bare number
			s = string(item)
		}
		x, err := ParseInt(s)
		if err != nil {
			return err
		}
		out = append(out, x)
	}
	*l = out
	return nil
}
