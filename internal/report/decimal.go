package report

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ExtractDecimal pulls a numeric value from an aggregate row by field name.
// Returns decimal.Zero if the field is missing, empty, or not a recognized numeric type.
// Rows are decoded with UseNumber, so json.Number is the common path and keeps
// the LRS's digits exactly.
func ExtractDecimal(row map[string]interface{}, field string) decimal.Decimal {
	if field == "" {
		return decimal.Zero
	}
	v, ok := row[field]
	if !ok {
		return decimal.Zero
	}
	switch val := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(val.String())
		if err == nil {
			return d
		}
	case float64:
		return decimal.NewFromFloat(val)
	case int:
		return decimal.NewFromInt(int64(val))
	case int64:
		return decimal.NewFromInt(val)
	case string:
		d, err := decimal.NewFromString(val)
		if err == nil {
			return d
		}
	}
	return decimal.Zero
}
