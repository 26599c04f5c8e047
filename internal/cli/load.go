package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/taurusgroup/rsa-attacks/pkg/attack"
)

type jsonInput struct {
	Attack      string   `json:"attack"`
	Moduli      jsonInts `json:"moduli"`
	Exponents   jsonInts `json:"exponents"`
	Ciphertexts jsonInts `json:"ciphertexts"`
}

// ReadInput loads an Input from a JSON or CBOR file, depending on its extension.
//
// Expected JSON format, integers may be numbers or strings:
//
//	{"attack": "crt", "moduli": [...], "exponents": [3], "ciphertexts": [...]}
func ReadInput(path string) (Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Input{}, fmt.Errorf("failed to read file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return decodeJSON(data)
	case ".cbor":
		return decodeCBOR(data)
	default:
		return Input{}, fmt.Errorf("%s: unknown request format, want .json or .cbor", path)
	}
}

func decodeJSON(data []byte) (Input, error) {
	var in jsonInput
	if err := json.Unmarshal(data, &in); err != nil {
		return Input{}, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return Input{
		Attack:      in.Attack,
		Moduli:      in.Moduli,
		Exponents:   in.Exponents,
		Ciphertexts: in.Ciphertexts,
	}, nil
}

func decodeCBOR(data []byte) (Input, error) {
	var in Input
	if err := cbor.Unmarshal(data, &in); err != nil {
		return Input{}, fmt.Errorf("failed to parse CBOR: %w", err)
	}
	return in, nil
}

// WriteResult stores res, together with the request it was computed from, as CBOR.
func WriteResult(path string, res *attack.Result, req *attack.Request) error {
	data, err := res.Marshal(req)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// ReadResult loads a result written by WriteResult.
func ReadResult(path string) (*attack.Result, *attack.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file: %w", err)
	}
	return attack.UnmarshalResult(data)
}
