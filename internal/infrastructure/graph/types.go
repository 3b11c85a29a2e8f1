package graph

import (
	"fmt"
	"time"
)

// Site is a SharePoint site as returned by Graph.
type Site struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName,omitempty"`
	WebURL      string `json:"webUrl,omitempty"`
}

// List is a SharePoint list.
type List struct {
	ID          string    `json:"id,omitempty"`
	DisplayName string    `json:"displayName"`
	Description string    `json:"description,omitempty"`
	WebURL      string    `json:"webUrl,omitempty"`
	List        *ListInfo `json:"list,omitempty"`
}

// ListInfo carries the list template on creation.
type ListInfo struct {
	Template string `json:"template,omitempty"`
}

// ColumnDefinition is a list column. Exactly one type facet is set.
type ColumnDefinition struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
	Indexed     bool   `json:"indexed"`

	Text     *TextColumn     `json:"text,omitempty"`
	Number   *NumberColumn   `json:"number,omitempty"`
	Boolean  *BooleanColumn  `json:"boolean,omitempty"`
	Currency *CurrencyColumn `json:"currency,omitempty"`
	Choice   *ChoiceColumn   `json:"choice,omitempty"`
	Lookup   *LookupColumn   `json:"lookup,omitempty"`
}

type TextColumn struct {
	AllowMultipleLines bool   `json:"allowMultipleLines"`
	MaxLength          int    `json:"maxLength,omitempty"`
	LinesForEditing    int    `json:"linesForEditing,omitempty"`
	TextType           string `json:"textType,omitempty"`
}

type NumberColumn struct {
	DecimalPlaces string `json:"decimalPlaces,omitempty"`
	DisplayAs     string `json:"displayAs,omitempty"`
}

type BooleanColumn struct{}

type CurrencyColumn struct {
	Locale string `json:"locale,omitempty"`
}

type ChoiceColumn struct {
	AllowTextEntry bool     `json:"allowTextEntry"`
	Choices        []string `json:"choices"`
	DisplayAs      string   `json:"displayAs,omitempty"`
}

type LookupColumn struct {
	ListID              string `json:"listId"`
	ColumnName          string `json:"columnName"`
	AllowMultipleValues bool   `json:"allowMultipleValues"`
}

// Kind names the column's type facet: text, note, number, boolean, currency,
// choice or lookup. Columns of other SharePoint types return "".
func (c ColumnDefinition) Kind() string {
	switch {
	case c.Text != nil && c.Text.AllowMultipleLines:
		return "note"
	case c.Text != nil:
		return "text"
	case c.Number != nil:
		return "number"
	case c.Boolean != nil:
		return "boolean"
	case c.Currency != nil:
		return "currency"
	case c.Choice != nil:
		return "choice"
	case c.Lookup != nil:
		return "lookup"
	}
	return ""
}

// ListItem is one row of a list with its column values.
type ListItem struct {
	ID                   string         `json:"id"`
	WebURL               string         `json:"webUrl,omitempty"`
	CreatedDateTime      time.Time      `json:"createdDateTime"`
	LastModifiedDateTime time.Time      `json:"lastModifiedDateTime"`
	Fields               map[string]any `json:"fields"`
}

// page is one page of a Graph collection response.
type page[T any] struct {
	Value    []T    `json:"value"`
	NextLink string `json:"@odata.nextLink,omitempty"`
}

// RemoteError is a non-2xx Graph response.
type RemoteError struct {
	Status  int
	Method  string
	Path    string
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("graph %s %s: %d %s: %s", e.Method, e.Path, e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("graph %s %s: %d", e.Method, e.Path, e.Status)
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
