package report

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestExtractDecimal(t *testing.T) {
	tests := []struct {
		name  string
		row   map[string]interface{}
		field string
		want  decimal.Decimal
	}{
		{
			name:  "empty field name",
			row:   map[string]interface{}{"score": 1},
			field: "",
			want:  decimal.Zero,
		},
		{
			name:  "missing field",
			row:   map[string]interface{}{"score": 1},
			field: "missing",
			want:  decimal.Zero,
		},
		{
			name:  "json number",
			row:   map[string]interface{}{"score": json.Number("8.75")},
			field: "score",
			want:  decimal.RequireFromString("8.75"),
		},
		{
			name:  "invalid json number returns zero",
			row:   map[string]interface{}{"score": json.Number("1e")},
			field: "score",
			want:  decimal.Zero,
		},
		{
			name:  "float64",
			row:   map[string]interface{}{"score": 12.5},
			field: "score",
			want:  decimal.RequireFromString("12.5"),
		},
		{
			name:  "int",
			row:   map[string]interface{}{"score": 7},
			field: "score",
			want:  decimal.NewFromInt(7),
		},
		{
			name:  "int64",
			row:   map[string]interface{}{"score": int64(9)},
			field: "score",
			want:  decimal.NewFromInt(9),
		},
		{
			name:  "valid decimal string",
			row:   map[string]interface{}{"score": "42.125"},
			field: "score",
			want:  decimal.RequireFromString("42.125"),
		},
		{
			name:  "null score returns zero",
			row:   map[string]interface{}{"score": nil},
			field: "score",
			want:  decimal.Zero,
		},
		{
			name:  "unsupported type returns zero",
			row:   map[string]interface{}{"score": true},
			field: "score",
			want:  decimal.Zero,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractDecimal(tc.row, tc.field)
			require.True(t, tc.want.Equal(got), "want=%s got=%s", tc.want.String(), got.String())
		})
	}
}
