package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceFields(t *testing.T) {
	def := ListDef{
		DisplayName: "Opportunity",
		Columns: []ColumnDef{
			{Name: "tss_customer", Type: ColumnLookup, LookupList: "Customer"},
			{Name: "tss_stage", Type: ColumnChoice, Choices: []string{"Lead"}},
			{Name: "tss_amount", Type: ColumnCurrency},
			{Name: "tss_probability", Type: ColumnNumber},
			{Name: "tss_active", Type: ColumnBoolean},
			{Name: "tss_notes", Type: ColumnNote},
		},
	}
	raw := map[string]any{
		"Title":                "Ekofisk P&A",
		"tss_customerLookupId": "12",
		"tss_stage":            "Lead",
		"tss_amount":           1250000.75,
		"tss_probability":      "40",
		"tss_active":           true,
		"@odata.etag":          "\"abc,1\"",
		"ContentType":          "Item",
	}

	got := CoerceFields(def, raw)

	assert.Equal(t, map[string]any{
		"Title":                "Ekofisk P&A",
		"tss_customerLookupId": "12",
		"tss_stage":            "Lead",
		"tss_amount":           "1250000.75",
		"tss_probability":      40.0,
		"tss_active":           true,
	}, got)
}

func TestCoerceFields_UnconvertibleKeptAsIs(t *testing.T) {
	def := ListDef{DisplayName: "X", Columns: []ColumnDef{{Name: "tss_amount", Type: ColumnCurrency}}}

	got := CoerceFields(def, map[string]any{"tss_amount": "n/a"})
	assert.Equal(t, "n/a", got["tss_amount"])
}
