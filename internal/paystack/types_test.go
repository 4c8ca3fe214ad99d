package paystack

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChargeMetadataUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"string invoice id", `{"invoice_id": "inv_1"}`, "inv_1"},
		{"numeric invoice id", `{"invoice_id": 42}`, "42"},
		{"string encoded object", `"{\"invoice_id\": \"inv_2\"}"`, "inv_2"},
		{"null metadata", `null`, ""},
		{"empty string", `""`, ""},
		{"missing invoice id", `{"custom_fields": []}`, ""},
		{"null invoice id", `{"invoice_id": null}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m ChargeMetadata
			require.NoError(t, json.Unmarshal([]byte(tt.input), &m))
			assert.Equal(t, tt.expected, m.InvoiceID)
		})
	}
}

func TestResultOk(t *testing.T) {
	assert.True(t, (&Result{Status: true}).Ok())
	assert.False(t, (&Result{Status: false}).Ok())
	assert.False(t, (&Result{Status: true, Error: "boom"}).Ok())

	var nilResult *Result
	assert.False(t, nilResult.Ok())
}
