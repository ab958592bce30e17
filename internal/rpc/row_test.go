package rpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCamelCase(t *testing.T) {
	cases := map[string]string{
		"trip_id":           "tripId",
		"payment_reference": "paymentReference",
		"stage":             "stage",
		"file_size_bytes":   "fileSizeBytes",
	}
	for in, want := range cases {
		assert.Equal(t, want, CamelCase(in))
	}
}

func TestFirstNormalizesColumns(t *testing.T) {
	row := First([]Row{{
		"trip_id":     "T1",
		"stage":       "confirmed",
		"trip_amount": 42000.0,
	}})
	require.NotNil(t, row)
	assert.Equal(t, "T1", row["tripId"])
	assert.Equal(t, "confirmed", row["stage"])
	assert.Equal(t, 42000.0, row["tripAmount"])
}

func TestFirstObjectAndSingleElementArrayAgree(t *testing.T) {
	payload := map[string]any{"trip_id": "T1", "vehicle_id": "V1"}

	asObject := First([]Row{{"result": payload}})
	asArray := First([]Row{{"result": []any{map[string]any{"trip_id": "T1", "vehicle_id": "V1"}}}})

	assert.Equal(t, asObject, asArray)
	assert.Equal(t, "T1", asObject["tripId"])
	assert.Equal(t, "V1", asObject["vehicleId"])
}

func TestFirstEmpty(t *testing.T) {
	assert.Nil(t, First(nil))
	assert.Nil(t, First([]Row{}))
}

func TestNormalizeNested(t *testing.T) {
	row := Normalize(map[string]any{
		"payment_request": map[string]any{"request_id": "P1"},
		"line_items":      []any{map[string]any{"item_code": "FUEL"}},
	})
	nested, ok := row["paymentRequest"].(Row)
	require.True(t, ok)
	assert.Equal(t, "P1", nested["requestId"])
	items, ok := row["lineItems"].([]any)
	require.True(t, ok)
	assert.Equal(t, "FUEL", items[0].(Row)["itemCode"])
}
