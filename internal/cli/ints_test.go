package cli

import (
	"encoding/json"
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntList(t *testing.T) {
	var l IntList
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Var(&l, "c", "")
	require.NoError(t, fs.Parse([]string{"-c", "1,2", "-c", "0x10", "-c", "340282366920938463463374607431768211457"}))
	assert.Equal(t, "1,2,16,340282366920938463463374607431768211457", l.String())

	assert.Error(t, fs.Parse([]string{"-c", "abc"}))
	assert.Error(t, fs.Parse([]string{"-c", ","}))
}

func TestJSONInts(t *testing.T) {
	var l jsonInts
	require.NoError(t, json.Unmarshal([]byte(`[3, "5", "0xff", 123456789012345678901234567890]`), &l))
	require.Len(t, l, 4)
	assert.Equal(t, int64(3), l[0].Int64())
	assert.Equal(t, int64(5), l[1].Int64())
	assert.Equal(t, int64(255), l[2].Int64())
	assert.Equal(t, "123456789012345678901234567890", l[3].String())

	assert.Error(t, json.Unmarshal([]byte(`[1.5]`), &l))
	assert.Error(t, json.Unmarshal([]byte(`{"a": 1}`), &l))
}
