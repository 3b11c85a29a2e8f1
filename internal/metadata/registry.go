// Package metadata holds the declarative schema of the SharePoint lists backing the CRM.
package metadata

import (
	"fmt"

	"salestrack/internal/core/apperror"
)

// ColumnType defines the data type of a list column.
type ColumnType string

const (
	ColumnText     ColumnType = "text"     // single line, optional max length
	ColumnNote     ColumnType = "note"     // multi-line text
	ColumnNumber   ColumnType = "number"
	ColumnBoolean  ColumnType = "boolean"
	ColumnChoice   ColumnType = "choice"   // single selection from Choices
	ColumnCurrency ColumnType = "currency"
	ColumnLookup   ColumnType = "lookup"   // reference to another list
)

// DefaultLookupColumn is shown for a lookup when LookupColumn is not declared.
const DefaultLookupColumn = "Title"

// MaxTextLength is the SharePoint limit for single line text columns.
const MaxTextLength = 255

// IsValid reports whether t is a supported column type.
func (t ColumnType) IsValid() bool {
	switch t {
	case ColumnText, ColumnNote, ColumnNumber, ColumnBoolean, ColumnChoice, ColumnCurrency, ColumnLookup:
		return true
	}
	return false
}

// ListDef describes one remote list.
type ListDef struct {
	DisplayName string      `json:"displayName"`
	Description string      `json:"description,omitempty"`
	Columns     []ColumnDef `json:"columns"`
}

// ColumnDef describes one column of a list.
// Name is the internal field key and never changes once the column exists.
type ColumnDef struct {
	Name         string     `json:"name"`
	DisplayName  string     `json:"displayName"`
	Type         ColumnType `json:"type"`
	Required     bool       `json:"required,omitempty"`
	Indexed      bool       `json:"indexed,omitempty"`
	MaxLength    int        `json:"maxLength,omitempty"`    // text only
	Choices      []string   `json:"choices,omitempty"`      // choice only
	LookupList   string     `json:"lookupList,omitempty"`   // lookup only, target list DisplayName
	LookupColumn string     `json:"lookupColumn,omitempty"` // lookup only
}

// Column returns the column with the given internal name.
func (d ListDef) Column(name string) (ColumnDef, bool) {
	for _, c := range d.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnDef{}, false
}

// Lookups returns the lookup columns of the list in declaration order.
func (d ListDef) Lookups() []ColumnDef {
	var out []ColumnDef
	for _, c := range d.Columns {
		if c.Type == ColumnLookup {
			out = append(out, c)
		}
	}
	return out
}

func (d ListDef) clone() ListDef {
	cols := make([]ColumnDef, len(d.Columns))
	for i, c := range d.Columns {
		c.Choices = append([]string(nil), c.Choices...)
		cols[i] = c
	}
	d.Columns = cols
	return d
}

// Registry stores list definitions in declaration order.
// Declaration order is the provisioning order.
type Registry struct {
	lists []ListDef
	index map[string]int
}

func NewRegistry() *Registry {
	return &Registry{
		index: make(map[string]int),
	}
}

// Register validates def and appends it.
func (r *Registry) Register(def ListDef) error {
	if def.DisplayName == "" {
		return apperror.NewValidation("list display name is required")
	}
	if _, exists := r.index[def.DisplayName]; exists {
		return apperror.NewValidation(fmt.Sprintf("list %s is already registered", def.DisplayName)).
			WithDetail("list", def.DisplayName)
	}

	def = def.clone()
	seen := make(map[string]struct{}, len(def.Columns))
	for i := range def.Columns {
		col := &def.Columns[i]
		if _, dup := seen[col.Name]; dup {
			return columnError(def.DisplayName, col.Name, "duplicate internal name")
		}
		seen[col.Name] = struct{}{}

		if err := validateColumn(def.DisplayName, col); err != nil {
			return err
		}
		if col.Type == ColumnLookup && col.LookupColumn == "" {
			col.LookupColumn = DefaultLookupColumn
		}
	}

	r.index[def.DisplayName] = len(r.lists)
	r.lists = append(r.lists, def)
	return nil
}

// MustRegister registers defs and panics on the first malformed one.
// Definitions are static data, so a failure here is a defect in the source.
func (r *Registry) MustRegister(defs ...ListDef) {
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			panic(err)
		}
	}
}

func (r *Registry) Get(name string) (ListDef, bool) {
	i, ok := r.index[name]
	if !ok {
		return ListDef{}, false
	}
	return r.lists[i].clone(), true
}

// List returns all definitions in declaration order.
func (r *Registry) List() []ListDef {
	list := make([]ListDef, len(r.lists))
	for i, def := range r.lists {
		list[i] = def.clone()
	}
	return list
}

func (r *Registry) Len() int {
	return len(r.lists)
}

func validateColumn(list string, col *ColumnDef) error {
	if col.Name == "" {
		return columnError(list, col.Name, "internal name is required")
	}
	if !col.Type.IsValid() {
		return columnError(list, col.Name, fmt.Sprintf("unknown type %q", col.Type))
	}
	if col.MaxLength != 0 && col.Type != ColumnText {
		return columnError(list, col.Name, "maxLength applies to text columns only")
	}
	if col.MaxLength < 0 || col.MaxLength > MaxTextLength {
		return columnError(list, col.Name, fmt.Sprintf("maxLength must be between 1 and %d", MaxTextLength))
	}
	if len(col.Choices) > 0 && col.Type != ColumnChoice {
		return columnError(list, col.Name, "choices apply to choice columns only")
	}
	if (col.LookupList != "" || col.LookupColumn != "") && col.Type != ColumnLookup {
		return columnError(list, col.Name, "lookup target applies to lookup columns only")
	}

	switch col.Type {
	case ColumnChoice:
		if len(col.Choices) == 0 {
			return columnError(list, col.Name, "choice column needs at least one choice")
		}
		uniq := make(map[string]struct{}, len(col.Choices))
		for _, c := range col.Choices {
			if _, dup := uniq[c]; dup {
				return columnError(list, col.Name, fmt.Sprintf("duplicate choice %q", c))
			}
			uniq[c] = struct{}{}
		}
	case ColumnLookup:
		if col.LookupList == "" {
			return columnError(list, col.Name, "lookup column needs a target list")
		}
	}
	return nil
}

func columnError(list, column, reason string) error {
	return apperror.NewValidation(fmt.Sprintf("column %s.%s: %s", list, column, reason)).
		WithDetail("list", list).
		WithDetail("column", column)
}
