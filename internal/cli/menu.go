package cli

import (
	"bufio"
	"fmt"
	"io"

	"github.com/taurusgroup/rsa-attacks/pkg/attack"
)

// Prompt asks the user to choose an attack, and reads the answer from r.
func Prompt(r io.Reader, w io.Writer) (attack.Kind, error) {
	fmt.Fprintln(w, "Choose attack type:")
	fmt.Fprintln(w, "[1] Chinese Remainder Theorem Attack")
	fmt.Fprintln(w, "[2] Common Modulus Attack")
	fmt.Fprintln(w)
	fmt.Fprint(w, "-Enter your choice: ")

	input := bufio.NewScanner(r)
	if !input.Scan() {
		if err := input.Err(); err != nil {
			return attack.KindUnknown, err
		}
		return attack.KindUnknown, fmt.Errorf("%w: no attack selected", attack.ErrInvalidInput)
	}
	fmt.Fprintln(w)

	kind, err := attack.ParseKind(input.Text())
	if err != nil {
		return attack.KindUnknown, fmt.Errorf("%w: invalid choice %q, choose either 1 for CRT or 2 for Common Modulus",
			attack.ErrInvalidInput, input.Text())
	}
	return kind, nil
}
