package numval_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyrexapp/tyrex_client/internal/numval"
)

func decode(t *testing.T, raw string) numval.Value {
	t.Helper()
	var v numval.Value
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestUnmarshal_SupportedShapes(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want float64
	}{
		{"number", `123.45`, 123.45},
		{"integer", `42`, 42},
		{"negative", `-7.5`, -7.5},
		{"numeric string", `"123.45"`, 123.45},
		{"string with suffix", `"12.5 BTC"`, 12.5},
		{"decimal wrapper", `{"$numberDecimal": "123.456"}`, 123.456},
		{"decimal wrapper negative", `{"$numberDecimal": "-0.001"}`, -0.001},
		{"exponent", `1e5`, 100000},
		{"null", `null`, 0},
		{"garbage string", `"not a number"`, 0},
		{"empty string", `""`, 0},
		{"empty wrapper", `{}`, 0},
		{"wrapper with garbage", `{"$numberDecimal": "abc"}`, 0},
		{"boolean", `true`, 0},
		{"array", `[1,2]`, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := decode(t, tc.raw)
			assert.InDelta(t, tc.want, v.Float64(), 1e-9)
		})
	}
}

func TestUnmarshal_InsideStruct(t *testing.T) {
	var payload struct {
		WalletUsd numval.Value `json:"walletUsd"`
		Sats      numval.Value `json:"sats"`
	}
	raw := `{"walletUsd": {"$numberDecimal": "123.456"}, "sats": "100000000"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))

	assert.Equal(t, 123.456, payload.WalletUsd.Float64())
	assert.Equal(t, int64(100000000), payload.Sats.Int64())
}

func TestCoercion_Idempotent(t *testing.T) {
	inputs := []string{`123.45`, `"99"`, `{"$numberDecimal":"0.5"}`, `null`, `"junk"`}
	for _, raw := range inputs {
		v := decode(t, raw)

		// Re-encode and decode again; the value must be a fixed point.
		out, err := json.Marshal(v)
		require.NoError(t, err)
		again := decode(t, string(out))

		assert.True(t, v.Decimal().Equal(again.Decimal()), "raw=%s", raw)
	}
}

func TestParse_NumericPrefix(t *testing.T) {
	assert.Equal(t, 12.5, numval.Parse("12.5abc").Float64())
	assert.Equal(t, -3.0, numval.Parse("-3.").Float64())
	assert.Equal(t, 0.0, numval.Parse(".").Float64())
	assert.Equal(t, 0.0, numval.Parse("--5").Float64())
}
