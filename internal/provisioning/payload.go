package provisioning

import (
	"fmt"

	"salestrack/internal/core/apperror"
	"salestrack/internal/infrastructure/graph"
	"salestrack/internal/metadata"
)

const (
	noteLinesForEditing = 6
	currencyLocale      = "en-US"
	choiceDisplayAs     = "dropDownMenu"
)

// BuildColumn converts a declared column into a Graph column payload.
// Lookup targets are resolved through ids; a target that is not there yet
// is an ordering defect and yields UNRESOLVED_LOOKUP.
func BuildColumn(list string, def metadata.ColumnDef, ids NameToID) (graph.ColumnDefinition, error) {
	col := graph.ColumnDefinition{
		Name:        def.Name,
		DisplayName: def.DisplayName,
		Required:    def.Required,
		Indexed:     def.Indexed,
	}
	if col.DisplayName == "" {
		col.DisplayName = def.Name
	}

	switch def.Type {
	case metadata.ColumnText:
		col.Text = &graph.TextColumn{MaxLength: def.MaxLength}
	case metadata.ColumnNote:
		col.Text = &graph.TextColumn{
			AllowMultipleLines: true,
			LinesForEditing:    noteLinesForEditing,
			TextType:           "plain",
		}
	case metadata.ColumnNumber:
		col.Number = &graph.NumberColumn{}
	case metadata.ColumnBoolean:
		col.Boolean = &graph.BooleanColumn{}
	case metadata.ColumnCurrency:
		col.Currency = &graph.CurrencyColumn{Locale: currencyLocale}
	case metadata.ColumnChoice:
		col.Choice = &graph.ChoiceColumn{
			Choices:   append([]string(nil), def.Choices...),
			DisplayAs: choiceDisplayAs,
		}
	case metadata.ColumnLookup:
		listID, ok := ids[def.LookupList]
		if !ok {
			return graph.ColumnDefinition{}, apperror.NewUnresolvedLookup(list, def.Name, def.LookupList)
		}
		columnName := def.LookupColumn
		if columnName == "" {
			columnName = metadata.DefaultLookupColumn
		}
		col.Lookup = &graph.LookupColumn{ListID: listID, ColumnName: columnName}
	default:
		return graph.ColumnDefinition{}, apperror.NewValidation(fmt.Sprintf("column %s.%s: unknown type %q", list, def.Name, def.Type))
	}
	return col, nil
}
