package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalNumber_Decode(t *testing.T) {
	var body struct {
		Temperature OptionalNumber `json:"temperature"`
		Pressure    OptionalNumber `json:"pressure"`
		GasLevel    OptionalNumber `json:"gasLevel"`
		Missing     OptionalNumber `json:"missing"`
		Blank       OptionalNumber `json:"blank"`
	}
	err := json.Unmarshal([]byte(`{"temperature": 22.5, "pressure": "110", "gasLevel": null, "blank": ""}`), &body)
	require.NoError(t, err)

	temp, err := body.Temperature.Float()
	require.NoError(t, err)
	require.NotNil(t, temp)
	assert.Equal(t, 22.5, *temp)

	pressure, err := body.Pressure.Float()
	require.NoError(t, err)
	assert.Equal(t, 110.0, *pressure)

	for _, n := range []OptionalNumber{body.GasLevel, body.Missing, body.Blank} {
		assert.False(t, n.IsSet())
		v, err := n.Float()
		assert.NoError(t, err)
		assert.Nil(t, v)
	}
}

func TestOptionalNumber_Invalid(t *testing.T) {
	for _, raw := range []string{`"abc"`, `"NaN"`, `"Inf"`, `true`, `"12..5"`} {
		var n OptionalNumber
		require.NoError(t, json.Unmarshal([]byte(raw), &n), raw)
		_, err := n.Float()
		assert.Error(t, err, raw)
	}
}

func TestOptionalNumber_DecimalComma(t *testing.T) {
	v, err := NewOptionalNumber("23,5").Float()
	require.NoError(t, err)
	assert.Equal(t, 23.5, *v)
}
