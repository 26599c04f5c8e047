package cli

import (
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/taurusgroup/rsa-attacks/pkg/attack"
)

// PrintConfig shows the validated inputs, after broadcasting.
func PrintConfig(w io.Writer, c *Config) {
	fmt.Fprintln(w, "RSA Moduli:", formatInts(c.Moduli))
	fmt.Fprintln(w, "Public Exponents:", formatInts(c.Exponents))
	fmt.Fprintln(w, "Ciphertexts:", formatInts(c.Ciphertexts))
	fmt.Fprintln(w)
}

func formatInts(xs []*big.Int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = x.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// PrintResult shows the recovered message. A text decoding failure is reported
// after the numeric message, which is always printed.
func PrintResult(w io.Writer, res *attack.Result) {
	p := res.Plaintext
	fmt.Fprintf(w, "[+] %s attack succeeded\n", res.Kind)
	fmt.Fprintf(w, "    Message: %s\n", p.Message)
	if text, err := p.Text(); err != nil {
		fmt.Fprintf(w, "    Plaintext: could not decode as text (%v)\n", err)
		fmt.Fprintf(w, "    Bytes: %x\n", p.Bytes)
	} else {
		fmt.Fprintf(w, "    Plaintext: %s\n", text)
	}
	if res.Verified {
		fmt.Fprintln(w, "    ✓ Verified against every ciphertext")
	} else {
		fmt.Fprintln(w, "    ✗ Re-encryption does not match every ciphertext")
	}
	if len(res.Digest) > 0 {
		fmt.Fprintf(w, "    Request: %s\n", hex.EncodeToString(res.Digest))
	}
}
