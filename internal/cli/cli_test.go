package cli

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/rsa-attacks/internal/test"
)

func run(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	status := Main(args, strings.NewReader(stdin), &stdout, &stderr)
	return status, stdout.String(), stderr.String()
}

// exampleArgs returns the flags for m = 12345 broadcast with e = 3.
func exampleArgs() []string {
	m, e := big.NewInt(12345), big.NewInt(3)
	var ns, cs []string
	for _, n := range []int64{1000000007, 1000000009, 1000000021} {
		nBig := big.NewInt(n)
		ns = append(ns, nBig.String())
		cs = append(cs, test.Encrypt(m, e, nBig).String())
	}
	return []string{"-n", strings.Join(ns, ","), "-e", "3", "-c", strings.Join(cs, ",")}
}

func TestMain_CRT(t *testing.T) {
	status, out, _ := run(t, "", append(exampleArgs(), "-attack", "crt")...)
	assert.Equal(t, exitOK, status)
	assert.Contains(t, out, "Public Exponents: [3, 3, 3]")
	assert.Contains(t, out, "Message: 12345")
	assert.Contains(t, out, "Verified")
}

func TestMain_Interactive(t *testing.T) {
	status, out, _ := run(t, "1\n", exampleArgs()...)
	assert.Equal(t, exitOK, status)
	assert.Contains(t, out, "Choose attack type")
	assert.Contains(t, out, "Message: 12345")

	status, out, stderr := run(t, "9\n", exampleArgs()...)
	assert.Equal(t, exitOK, status)
	assert.NotContains(t, out, "Message:")
	assert.Contains(t, stderr, "invalid choice")
}

func TestMain_CommonModulus(t *testing.T) {
	m := test.Message("secret")
	raw, err := test.CommonModulus(rand.Reader, m, 17, 65537, 256)
	require.NoError(t, err)

	status, out, _ := run(t, "2\n",
		"-n", raw[0].N.String(),
		"-e", "17,65537",
		"-c", raw[0].C.String(), "-c", raw[1].C.String())
	assert.Equal(t, exitOK, status)
	assert.Contains(t, out, "Message: "+m.String())
	assert.Contains(t, out, "Plaintext: secret")
}

func TestMain_NotDecodable(t *testing.T) {
	m := new(big.Int).SetBytes([]byte{0xff, 0xfe, 0x41})
	raw, err := test.CommonModulus(rand.Reader, m, 3, 5, 128)
	require.NoError(t, err)

	status, out, _ := run(t, "",
		"-attack", "common",
		"-n", raw[0].N.String(),
		"-e", "3,5",
		"-c", raw[0].C.String()+","+raw[1].C.String())
	assert.Equal(t, exitOK, status)
	assert.Contains(t, out, "Message: "+m.String())
	assert.Contains(t, out, "could not decode")
	assert.Contains(t, out, "fffe41")
}

func TestMain_NotCoprime(t *testing.T) {
	status, out, stderr := run(t, "", "-attack", "common", "-n", "1000000007", "-e", "4,6", "-c", "2,3")
	assert.Equal(t, exitNotCoprime, status)
	assert.NotContains(t, out, "Message:")
	assert.Contains(t, stderr, "not coprime")
}

func TestMain_InvalidInput(t *testing.T) {
	// a single ciphertext is reported, not fatal
	status, _, stderr := run(t, "", "-attack", "crt", "-n", "1000000007", "-e", "3", "-c", "2")
	assert.Equal(t, exitOK, status)
	assert.Contains(t, stderr, "invalid input")

	// differing exponents for CRT
	status, _, stderr = run(t, "", "-attack", "crt", "-n", "1000000007,1000000009", "-e", "3,5", "-c", "2,3")
	assert.Equal(t, exitOK, status)
	assert.Contains(t, stderr, "invalid input")

	// root is not exact
	status, out, stderr := run(t, "", "-attack", "crt", "-n", "1000000007,1000000009", "-e", "3", "-c", "2,3")
	assert.Equal(t, exitOK, status)
	assert.NotContains(t, out, "Message:")
	assert.Contains(t, stderr, "root is not exact")
}

func TestMain_Usage(t *testing.T) {
	status, _, _ := run(t, "")
	assert.Equal(t, exitUsage, status)

	status, _, _ = run(t, "", "-n", "x")
	assert.Equal(t, exitUsage, status)

	status, _, _ = run(t, "", "-in", "a.json", "-n", "3")
	assert.Equal(t, exitUsage, status)

	// space separated values end the flag list
	status, _, stderr := run(t, "", "-n", "1000000007", "-e", "3", "-c", "1", "2")
	assert.Equal(t, exitUsage, status)
	assert.Contains(t, stderr, "-c 1,2")
}

func TestMain_MissingValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "null.cbor")
	data, err := cbor.Marshal(Input{
		Moduli:      []*big.Int{nil},
		Exponents:   []*big.Int{big.NewInt(3)},
		Ciphertexts: []*big.Int{big.NewInt(1), big.NewInt(2)},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	in, err := ReadInput(path)
	require.NoError(t, err)
	require.Len(t, in.Moduli, 1)
	assert.Nil(t, in.Moduli[0])

	var status int
	var stderr string
	assert.NotPanics(t, func() { status, _, stderr = run(t, "", "-attack", "crt", "-in", path) })
	assert.Equal(t, exitOK, status)
	assert.Contains(t, stderr, "modulus 0 is missing")

	// the other requests of a batch still complete
	good := filepath.Join(dir, "good.json")
	writeJSON(t, good, map[string]interface{}{
		"attack":      "crt",
		"moduli":      []int64{1000000007, 1000000009, 1000000021},
		"exponents":   []int{3},
		"ciphertexts": strings.Split(exampleArgs()[5], ","),
	})
	var out string
	assert.NotPanics(t, func() { status, out, _ = run(t, "", path, good) })
	assert.Equal(t, exitOK, status)
	assert.Contains(t, out, "modulus 0 is missing")
	assert.Contains(t, out, "Message: 12345")
}

func TestMain_OutAndShow(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "result.cbor")

	status, _, _ := run(t, "", append(exampleArgs(), "-attack", "crt", "-out", out)...)
	require.Equal(t, exitOK, status)

	res, req, err := ReadResult(out)
	require.NoError(t, err)
	require.NotNil(t, req)
	assert.Equal(t, int64(12345), res.Plaintext.Message.Int64())
	assert.Len(t, req.Samples(), 3)

	status, shown, _ := run(t, "", "-show", out)
	assert.Equal(t, exitOK, status)
	assert.Contains(t, shown, "Message: 12345")
}

func writeJSON(t *testing.T, path string, v interface{}) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))
}

func TestMain_Batch(t *testing.T) {
	dir := t.TempDir()

	m := test.Message("batch")
	broadcast, err := test.Broadcast(rand.Reader, m, 3, 3, 128)
	require.NoError(t, err)
	var ns, cs []string
	for _, s := range broadcast {
		ns = append(ns, s.N.String())
		cs = append(cs, s.C.String())
	}
	crtPath := filepath.Join(dir, "crt.json")
	writeJSON(t, crtPath, map[string]interface{}{
		"attack":      "crt",
		"moduli":      ns,
		"exponents":   []int{3},
		"ciphertexts": cs,
	})

	common, err := test.CommonModulus(rand.Reader, m, 3, 7, 256)
	require.NoError(t, err)
	commonPath := filepath.Join(dir, "common.cbor")
	data, err := cbor.Marshal(Input{
		Attack:      "common",
		Moduli:      []*big.Int{common[0].N},
		Exponents:   []*big.Int{common[0].E, common[1].E},
		Ciphertexts: []*big.Int{common[0].C, common[1].C},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(commonPath, data, 0o600))

	badPath := filepath.Join(dir, "bad.json")
	writeJSON(t, badPath, map[string]interface{}{
		"attack":      "common",
		"moduli":      []string{common[0].N.String()},
		"exponents":   []int{4, 6},
		"ciphertexts": []string{"2", "3"},
	})

	status, out, _ := run(t, "", crtPath, commonPath)
	assert.Equal(t, exitOK, status)
	assert.Equal(t, 2, strings.Count(out, "Message: "+m.String()))
	assert.Less(t, strings.Index(out, crtPath), strings.Index(out, commonPath), "results are printed in order")

	status, out, _ = run(t, "", crtPath, badPath)
	assert.Equal(t, exitNotCoprime, status)
	assert.Contains(t, out, "not coprime")

	missing := filepath.Join(dir, "missing.json")
	status, out, _ = run(t, "", missing)
	assert.Equal(t, exitOK, status)
	assert.Contains(t, out, "failed to read file")
}

func TestReadInput(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "req.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"moduli": ["0x8f"], "exponents": [3], "ciphertexts": [1, "2"]}`), 0o600))
	in, err := ReadInput(path)
	require.NoError(t, err)
	assert.Equal(t, int64(143), in.Moduli[0].Int64())
	assert.Equal(t, "", in.Attack)
	assert.Len(t, in.Ciphertexts, 2)

	path = filepath.Join(dir, "req.txt")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))
	_, err = ReadInput(path)
	assert.Error(t, err)

	path = filepath.Join(dir, "broken.cbor")
	require.NoError(t, os.WriteFile(path, []byte{0xff}, 0o600))
	_, err = ReadInput(path)
	assert.Error(t, err)
}
