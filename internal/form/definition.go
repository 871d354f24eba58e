// internal/form/definition.go
//
// Admin-panel form definitions generated from collection schemas.
//
// Context
// -------
// The admin panel renders one generated form per collection.  Rather than
// hand-maintaining field lists, it asks the store for the collection's
// schema and turns it into an ordered Definition here: one Field per
// declared column, widget kind chosen from the primitive type, required
// flag and default carried through.  The panel itself (an external
// collaborator) only consumes the JSON shape.
//
// Notes
// -----
// • Fields are ordered required-first, then alphabetically, so generated
//   forms are stable across runs despite Go's map iteration order.
// • System fields never appear; they are store-assigned.
package form

import (
	"sort"

	"github.com/yanizio/voyago/internal/schema"
)

// Widget names the input control the admin panel should render.
type Widget string

const (
	Text     Widget = "text"
	NumberIn Widget = "number"
	Checkbox Widget = "checkbox"
	DatePick Widget = "date"
	ListEdit Widget = "list"
)

// Field describes one form input.
type Field struct {
	Name     string `json:"name"`
	Widget   Widget `json:"widget"`
	Required bool   `json:"required"`
	Default  any    `json:"default,omitempty"`
}

// Definition is the generated form for one collection.
type Definition struct {
	Collection string  `json:"collection"`
	Fields     []Field `json:"fields"`
}

// FromSchema builds the Definition for a collection.
func FromSchema(collection string, sch schema.Schema) Definition {
	required := make(map[string]bool, len(sch.Required))
	for _, f := range sch.Required {
		required[f] = true
	}

	fields := make([]Field, 0, len(sch.Types))
	for name, ft := range sch.Types {
		fields = append(fields, Field{
			Name:     name,
			Widget:   widgetFor(ft),
			Required: required[name],
			Default:  sch.Defaults[name],
		})
	}
	sort.Slice(fields, func(i, j int) bool {
		if fields[i].Required != fields[j].Required {
			return fields[i].Required
		}
		return fields[i].Name < fields[j].Name
	})

	return Definition{Collection: collection, Fields: fields}
}

func widgetFor(ft schema.FieldType) Widget {
	switch ft {
	case schema.Number:
		return NumberIn
	case schema.Boolean:
		return Checkbox
	case schema.Date:
		return DatePick
	case schema.Array:
		return ListEdit
	default:
		return Text
	}
}
