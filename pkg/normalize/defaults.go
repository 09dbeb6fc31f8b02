package normalize

import (
	"sort"

	"github.com/goliatone/go-acfjson/pkg/fieldtree"
)

// Default is a single key and the value inserted when the key is absent.
type Default struct {
	Key   string
	Value any
}

// Table is an ordered list of defaults. Order decides where new keys land in
// the rewritten document.
type Table []Default

// Keys returns the table keys in order.
func (t Table) Keys() []string {
	out := make([]string, len(t))
	for i, d := range t {
		out[i] = d.Key
	}
	return out
}

// Clone deep copies the table values.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	for i, d := range t {
		out[i] = Default{Key: d.Key, Value: fieldtree.CloneValue(d.Value)}
	}
	return out
}

// Apply inserts every absent key and returns how many were inserted.
func (t Table) Apply(field *fieldtree.Object) int {
	added := 0
	for _, d := range t {
		if field.SetDefault(d.Key, d.Value) {
			added++
		}
	}
	return added
}

func commonDefaults() Table {
	return Table{
		{"aria-label", ""},
		{"class", ""},
		{"id", ""},
		{"instructions", ""},
		{"required", 0},
		{"conditional_logic", 0},
		{"wrapper", fieldtree.ObjectOf("width", "", "class", "", "id", "")},
	}
}

func selectDefaults() Table {
	return Table{
		{"multiple", 0},
		{"allow_null", 0},
		{"ui", 0},
		{"ajax", 0},
		{"return_format", "value"},
		{"placeholder", ""},
		{"create_options", 0},
		{"save_options", 0},
	}
}

func typeDefaults() map[string]Table {
	return map[string]Table{
		"text": {
			{"default_value", ""},
			{"placeholder", ""},
			{"prepend", ""},
			{"append", ""},
			{"maxlength", ""},
			{"readonly", 0},
		},
		"textarea": {
			{"default_value", ""},
			{"placeholder", ""},
			{"maxlength", ""},
			{"rows", ""},
			{"new_lines", ""},
		},
		"number": {
			{"default_value", ""},
			{"placeholder", ""},
			{"prepend", ""},
			{"append", ""},
			{"min", ""},
			{"max", ""},
			{"step", ""},
			{"readonly", 0},
		},
		"url": {
			{"default_value", ""},
			{"placeholder", ""},
		},
		"true_false": {
			{"default_value", 0},
			{"message", ""},
			{"ui", 0},
			{"ui_on_text", ""},
			{"ui_off_text", ""},
		},
		"select": selectDefaults(),
		"color_picker": {
			{"default_value", ""},
			{"enable_opacity", 0},
			{"return_format", "string"},
		},
		"wysiwyg": {
			{"default_value", ""},
			{"tabs", "all"},
			{"toolbar", "full"},
			{"media_upload", 1},
			{"delay", 0},
		},
		"image": {
			{"return_format", "url"},
			{"preview_size", "medium"},
			{"library", "all"},
			{"min_width", 0},
			{"min_height", 0},
			{"min_size", 0},
			{"max_width", 0},
			{"max_height", 0},
			{"max_size", 0},
			{"mime_types", ""},
		},
		"repeater": {
			{"collapsed", ""},
			{"min", 0},
			{"max", 0},
			{"layout", "table"},
			{"button_label", ""},
		},
		"tab": {
			{"placement", "top"},
			{"endpoint", 0},
		},
	}
}

// SelectDefaults returns the eight keys written on select fields.
func SelectDefaults() Table {
	return selectDefaults()
}

// RequiredSelectKeys is the set whose absence triggers the minimal select fill.
func RequiredSelectKeys() []string {
	return []string{"multiple", "allow_null", "ui", "ajax", "return_format"}
}

// Tables bundles the common defaults applied to every field with the per-type
// tables.
type Tables struct {
	Common Table
	Types  map[string]Table
}

// DefaultTables returns a fresh copy of the built-in tables.
func DefaultTables() Tables {
	return Tables{Common: commonDefaults(), Types: typeDefaults()}
}

// With returns a copy of t where fieldType maps to table, replacing any
// built-in entry.
func (t Tables) With(fieldType string, table Table) Tables {
	out := Tables{Common: t.Common.Clone(), Types: make(map[string]Table, len(t.Types)+1)}
	for name, existing := range t.Types {
		out.Types[name] = existing.Clone()
	}
	out.Types[fieldType] = table.Clone()
	return out
}

// Lookup returns the table registered for fieldType.
func (t Tables) Lookup(fieldType string) (Table, bool) {
	table, ok := t.Types[fieldType]
	return table, ok
}

// KnownTypes lists the types with a table, sorted.
func (t Tables) KnownTypes() []string {
	out := make([]string, 0, len(t.Types))
	for name := range t.Types {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
