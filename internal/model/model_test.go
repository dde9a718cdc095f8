package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyUnmarshal(t *testing.T) {
	var payload struct {
		Total Money `json:"total_price"`
	}

	cases := []struct {
		in   string
		want float64
	}{
		{`{"total_price": 12.3}`, 12.3},
		{`{"total_price": "10.50"}`, 10.5},
		{`{"total_price": "5"}`, 5},
		{`{"total_price": ""}`, 0},
		{`{"total_price": "abc"}`, 0},
		{`{"total_price": null}`, 0},
		{`{}`, 0},
	}
	for _, tc := range cases {
		payload.Total = 0
		require.NoError(t, json.Unmarshal([]byte(tc.in), &payload), tc.in)
		assert.Equal(t, tc.want, payload.Total.Float64(), tc.in)
	}
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "5511987654321", NormalizePhone("+55 (11) 98765-4321"))
	assert.Equal(t, "11987654321", NormalizePhone("11 98765 4321"))
	assert.Equal(t, "", NormalizePhone("sem telefone"))
	assert.Equal(t, "", NormalizePhone(""))
}

func TestStringListRoundTrip(t *testing.T) {
	list := StringList{"1x pizza margherita", "2x coca-cola"}
	v, err := list.Value()
	require.NoError(t, err)

	var out StringList
	require.NoError(t, out.Scan(v))
	assert.Equal(t, list, out)

	var empty StringList
	v, err = empty.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	require.NoError(t, out.Scan(nil))
	assert.Nil(t, out)
}
