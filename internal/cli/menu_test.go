package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/rsa-attacks/pkg/attack"
)

func TestPrompt(t *testing.T) {
	var out bytes.Buffer
	kind, err := Prompt(strings.NewReader("1\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, attack.KindCRT, kind)
	assert.Contains(t, out.String(), "[1] Chinese Remainder Theorem Attack")

	kind, err = Prompt(strings.NewReader(" 2 \n"), &out)
	require.NoError(t, err)
	assert.Equal(t, attack.KindCommonModulus, kind)

	_, err = Prompt(strings.NewReader("3\n"), &out)
	assert.True(t, errors.Is(err, attack.ErrInvalidInput))

	_, err = Prompt(strings.NewReader(""), &out)
	assert.True(t, errors.Is(err, attack.ErrInvalidInput))
}
