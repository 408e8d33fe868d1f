package http

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexFloat(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    float64
		wantErr bool
	}{
		{"number", `{"Price": 19.99}`, 19.99, false},
		{"quoted number", `{"Price": "19.99"}`, 19.99, false},
		{"quoted integer", `{"Price": "20"}`, 20, false},
		{"garbage", `{"Price": "cheap"}`, 0, true},
		{"null", `{"Price": null}`, 0, true},
		{"empty string", `{"Price": ""}`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body struct {
				Price FlexFloat `json:"Price"`
			}
			err := json.Unmarshal([]byte(tt.payload), &body)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, float64(body.Price))
		})
	}
}

func TestFlexInt(t *testing.T) {
	var body struct {
		Stock FlexInt `json:"Stock"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"Stock": "42"}`), &body))
	assert.Equal(t, 42, int(body.Stock))

	require.Error(t, json.Unmarshal([]byte(`{"Stock": "4.5"}`), &body))
	require.Error(t, json.Unmarshal([]byte(`{"Stock": "many"}`), &body))
}

func TestFlexUint(t *testing.T) {
	var body struct {
		ID FlexUint `json:"ID"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"ID": 7}`), &body))
	assert.Equal(t, uint(7), uint(body.ID))

	require.NoError(t, json.Unmarshal([]byte(`{"ID": "7"}`), &body))
	assert.Equal(t, uint(7), uint(body.ID))

	require.Error(t, json.Unmarshal([]byte(`{"ID": -7}`), &body))
}

func TestChildOpPayloadDecoding(t *testing.T) {
	payload := `[
		{"_action": "create", "Key": "Color", "Value": "Red"},
		{"_action": "delete", "ID": "7"},
		{"Key": "Material", "Value": "Steel"}
	]`

	var ops []attributeOpPayload
	require.NoError(t, json.Unmarshal([]byte(payload), &ops))
	require.Len(t, ops, 3)

	assert.Equal(t, "create", ops[0].Action)
	assert.Equal(t, "Color", ops[0].Key)

	assert.Equal(t, "delete", ops[1].Action)
	assert.Equal(t, uint(7), uint(ops[1].ID))

	// Untagged op: action left empty for the command layer to default
	assert.Equal(t, "", ops[2].Action)
	assert.Equal(t, "Material", ops[2].Key)
}
