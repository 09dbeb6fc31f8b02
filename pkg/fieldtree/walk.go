package fieldtree

import "strings"

const (
	SubFieldsKey = "sub_fields"
	LayoutsKey   = "layouts"
	NameKey      = "name"
	TypeKey      = "type"

	// UnnamedSegment stands in for fields without a name in paths.
	UnnamedSegment = "unnamed"
)

// Node is a single visited field.
type Node struct {
	Field *Object
	// Path is the slash-joined chain of names from the root to this field.
	Path  string
	Depth int
}

// Type returns the field's type tag and whether it is a present string.
func (n Node) Type() (string, bool) {
	return n.Field.String(TypeKey)
}

// Visitor is invoked once per field, parents before children.
type Visitor func(Node)

// TraverseOptions tunes which child collections are followed.
type TraverseOptions struct {
	// SkipLayouts stops the walk from descending into layouts[].sub_fields.
	SkipLayouts bool
}

// Traverse walks fields depth-first, pre-order, following both sub_fields and
// layouts[].sub_fields.
func Traverse(fields []*Object, visit Visitor) {
	TraverseWith(fields, TraverseOptions{}, visit)
}

// TraverseWith walks fields with explicit options.
func TraverseWith(fields []*Object, opts TraverseOptions, visit Visitor) {
	if visit == nil {
		return
	}
	walk(fields, "", 0, opts, visit)
}

func walk(fields []*Object, prefix string, depth int, opts TraverseOptions, visit Visitor) {
	for _, field := range fields {
		path := JoinPath(prefix, FieldName(field))
		visit(Node{Field: field, Path: path, Depth: depth})

		if field.Has(SubFieldsKey) {
			walk(field.Objects(SubFieldsKey), path, depth+1, opts, visit)
		}
		if opts.SkipLayouts || !field.Has(LayoutsKey) {
			continue
		}
		// Layouts add no path segment of their own.
		for _, layout := range Layouts(field) {
			walk(layout.Objects(SubFieldsKey), path, depth+1, opts, visit)
		}
	}
}

// Layouts returns a field's layouts. Both the array form and the keyed object
// form ACF exports are accepted; the latter is read in key order.
func Layouts(field *Object) []*Object {
	value, ok := field.Get(LayoutsKey)
	if !ok {
		return nil
	}
	if keyed, ok := value.(*Object); ok {
		var out []*Object
		for _, key := range keyed.keys {
			if layout, ok := keyed.values[key].(*Object); ok && layout != nil {
				out = append(out, layout)
			}
		}
		return out
	}
	return objectsOf(value)
}

// FieldName returns the path segment for a field: its name, or "unnamed" when
// the key is absent. Non-string names are rendered with Display, so null
// becomes None and true becomes True.
func FieldName(field *Object) string {
	value, ok := field.Get(NameKey)
	if !ok {
		return UnnamedSegment
	}
	return Display(value)
}

// JoinPath appends segment to prefix with a slash separator.
func JoinPath(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return strings.Join([]string{prefix, segment}, "/")
}
