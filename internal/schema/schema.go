// internal/schema/schema.go
//
// Declarative collection schemas.
//
// Context
// -------
// Every store collection is governed by one Schema: the list of fields a
// caller must supply on insert, a field → primitive-type map used by the
// admin panel's form generator, and per-field default values merged under
// the caller's payload.  Schemas are plain data; the store consults them
// generically, so adding a collection is a one-entry change in
// collections.go.
//
// Notes
// -----
// • A required field passes only when its merged value is "truthy": absent,
//   nil, "", false, numeric zero, and empty slices or maps all fail.
// • Oxford commas, two spaces after periods.
package schema

import "reflect"

// FieldType names the primitive shape of one field.  It is advisory; the
// store validates presence, not type.
type FieldType string

const (
	String  FieldType = "string"
	Number  FieldType = "number"
	Boolean FieldType = "boolean"
	Date    FieldType = "date"
	Array   FieldType = "array"
)

// Schema describes one collection.
type Schema struct {
	Required []string
	Types    map[string]FieldType
	Defaults map[string]any
}

// Registry maps collection names to their schemas.  Construct once at boot
// via Default() and inject it into the store; there is no package-level
// singleton.
type Registry struct {
	schemas map[string]Schema
}

// NewRegistry builds a Registry from an explicit table.  Callers normally
// want Default().
func NewRegistry(schemas map[string]Schema) *Registry {
	return &Registry{schemas: schemas}
}

// Lookup returns the schema for a collection, and whether it is declared.
func (r *Registry) Lookup(collection string) (Schema, bool) {
	s, ok := r.schemas[collection]
	return s, ok
}

// Collections returns the declared collection names.  Order is undefined.
func (r *Registry) Collections() []string {
	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	return names
}

// MissingRequired walks the schema's required list against a merged record
// and returns every field that is absent or empty.  A nil return means the
// record passes.
func (s Schema) MissingRequired(rec map[string]any) []string {
	var missing []string
	for _, field := range s.Required {
		v, ok := rec[field]
		if !ok || isEmpty(v) {
			missing = append(missing, field)
		}
	}
	return missing
}

// isEmpty reports whether v counts as "not supplied" for required-field
// purposes.  The rule intentionally treats false and numeric zero as empty
// so a required price of 0 is rejected the same way a blank title is.
func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case int:
		return t == 0
	case int64:
		return t == 0
	case float64:
		return t == 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
