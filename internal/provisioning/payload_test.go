package provisioning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salestrack/internal/core/apperror"
	"salestrack/internal/infrastructure/graph"
	"salestrack/internal/metadata"
)

func TestBuildColumn(t *testing.T) {
	ids := NameToID{"Country": "list-country"}

	tests := []struct {
		name string
		def  metadata.ColumnDef
		want graph.ColumnDefinition
	}{
		{
			name: "text with max length",
			def:  metadata.ColumnDef{Name: "tss_code", DisplayName: "Code", Type: metadata.ColumnText, MaxLength: 20, Required: true, Indexed: true},
			want: graph.ColumnDefinition{Name: "tss_code", DisplayName: "Code", Required: true, Indexed: true, Text: &graph.TextColumn{MaxLength: 20}},
		},
		{
			name: "note is multi-line text",
			def:  metadata.ColumnDef{Name: "tss_notes", Type: metadata.ColumnNote},
			want: graph.ColumnDefinition{Name: "tss_notes", DisplayName: "tss_notes", Text: &graph.TextColumn{AllowMultipleLines: true, LinesForEditing: 6, TextType: "plain"}},
		},
		{
			name: "number",
			def:  metadata.ColumnDef{Name: "tss_probability", Type: metadata.ColumnNumber},
			want: graph.ColumnDefinition{Name: "tss_probability", DisplayName: "tss_probability", Number: &graph.NumberColumn{}},
		},
		{
			name: "boolean",
			def:  metadata.ColumnDef{Name: "tss_active", Type: metadata.ColumnBoolean},
			want: graph.ColumnDefinition{Name: "tss_active", DisplayName: "tss_active", Boolean: &graph.BooleanColumn{}},
		},
		{
			name: "currency",
			def:  metadata.ColumnDef{Name: "tss_amount", Type: metadata.ColumnCurrency},
			want: graph.ColumnDefinition{Name: "tss_amount", DisplayName: "tss_amount", Currency: &graph.CurrencyColumn{Locale: "en-US"}},
		},
		{
			name: "choice is a closed drop-down",
			def:  metadata.ColumnDef{Name: "tss_stage", Type: metadata.ColumnChoice, Choices: []string{"Lead", "Won"}},
			want: graph.ColumnDefinition{Name: "tss_stage", DisplayName: "tss_stage", Choice: &graph.ChoiceColumn{Choices: []string{"Lead", "Won"}, DisplayAs: "dropDownMenu"}},
		},
		{
			name: "lookup resolves target id",
			def:  metadata.ColumnDef{Name: "tss_country", Type: metadata.ColumnLookup, LookupList: "Country"},
			want: graph.ColumnDefinition{Name: "tss_country", DisplayName: "tss_country", Lookup: &graph.LookupColumn{ListID: "list-country", ColumnName: "Title"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildColumn("Basin", tt.def, ids)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, string(tt.def.Type), got.Kind())
		})
	}
}

func TestBuildColumn_UnresolvedLookup(t *testing.T) {
	def := metadata.ColumnDef{Name: "tss_customer", Type: metadata.ColumnLookup, LookupList: "Customer", LookupColumn: "Title"}

	_, err := BuildColumn("Contact", def, NameToID{})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnresolvedLookup, appErr.Code)
	assert.Equal(t, "Customer", appErr.Details["lookup_list"])
}

func TestBuildColumn_UnknownType(t *testing.T) {
	_, err := BuildColumn("Basin", metadata.ColumnDef{Name: "x", Type: "geo"}, NameToID{})
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}
