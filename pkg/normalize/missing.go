package normalize

import "github.com/goliatone/go-acfjson/pkg/fieldtree"

// MultipleKey is the select property both detection methods look for.
const MultipleKey = "multiple"

// MissingMultiple returns, in visit order, the paths of select fields lacking
// a "multiple" key. Layout children are only inspected when followLayouts is
// set.
func MissingMultiple(fields []*fieldtree.Object, followLayouts bool) []string {
	var missing []string
	opts := fieldtree.TraverseOptions{SkipLayouts: !followLayouts}
	fieldtree.TraverseWith(fields, opts, func(node fieldtree.Node) {
		if !isSelect(node.Field) {
			return
		}
		if !node.Field.Has(MultipleKey) {
			missing = append(missing, node.Path)
		}
	})
	return missing
}

func isSelect(field *fieldtree.Object) bool {
	fieldType, ok := field.String(fieldtree.TypeKey)
	return ok && fieldType == "select"
}
