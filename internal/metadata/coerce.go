package metadata

import (
	"salestrack/internal/core/types"
)

// LookupIDSuffix is appended to a lookup column's internal name to form the
// field that carries the referenced item id.
const LookupIDSuffix = "LookupId"

// CoerceFields projects raw list-item fields onto the list's declared columns.
// Undeclared fields are dropped, except Title. Values are converted by column
// type: currency to an exact decimal string, number to float64, boolean to
// bool. Lookups are returned under <name>LookupId. Values that do not convert
// are returned as-is.
func CoerceFields(def ListDef, fields map[string]any) map[string]any {
	out := make(map[string]any, len(def.Columns)+1)
	if title, ok := fields[DefaultLookupColumn]; ok {
		out[DefaultLookupColumn] = title
	}

	for _, col := range def.Columns {
		if col.Type == ColumnLookup {
			key := col.Name + LookupIDSuffix
			if v, ok := fields[key]; ok && v != nil {
				out[key] = v
			}
			continue
		}

		raw, ok := fields[col.Name]
		if !ok || raw == nil {
			continue
		}
		out[col.Name] = coerceValue(col.Type, raw)
	}
	return out
}

func coerceValue(t ColumnType, raw any) any {
	switch t {
	case ColumnCurrency:
		if m, err := types.MoneyFromValue(raw); err == nil {
			return m.String()
		}
	case ColumnNumber:
		if f, err := types.FloatFromValue(raw); err == nil {
			return f
		}
	case ColumnBoolean:
		if b, err := types.BoolFromValue(raw); err == nil {
			return b
		}
	}
	return raw
}
