package normalize

import (
	"sort"

	"github.com/goliatone/go-acfjson/pkg/fieldtree"
)

// TypeKey identifies a field type in the inventory. Missing covers fields
// with no "type" key or a null one.
type TypeKey struct {
	Name    string
	Missing bool
}

func (k TypeKey) String() string {
	if k.Missing {
		return "None"
	}
	return k.Name
}

// Inventory records, per field type, every key ever seen on a field of that
// type.
type Inventory struct {
	order []TypeKey
	keys  map[TypeKey]map[string]struct{}
}

// NewInventory returns an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{keys: make(map[TypeKey]map[string]struct{})}
}

// BuildInventory walks fields, including layouts, and collects their keys.
func BuildInventory(fields []*fieldtree.Object) *Inventory {
	inv := NewInventory()
	fieldtree.Traverse(fields, inv.Visit)
	return inv
}

// Visit records a single node. It can be passed directly to Traverse.
func (inv *Inventory) Visit(node fieldtree.Node) {
	key := typeKeyOf(node.Field)
	set, ok := inv.keys[key]
	if !ok {
		set = make(map[string]struct{})
		inv.keys[key] = set
		inv.order = append(inv.order, key)
	}
	for _, k := range node.Field.Keys() {
		set[k] = struct{}{}
	}
}

// Merge folds other into inv, keeping first-seen type order.
func (inv *Inventory) Merge(other *Inventory) {
	if other == nil {
		return
	}
	for _, key := range other.order {
		set, ok := inv.keys[key]
		if !ok {
			set = make(map[string]struct{})
			inv.keys[key] = set
			inv.order = append(inv.order, key)
		}
		for k := range other.keys[key] {
			set[k] = struct{}{}
		}
	}
}

// Types returns the types in the order they were first seen.
func (inv *Inventory) Types() []TypeKey {
	return append([]TypeKey(nil), inv.order...)
}

// Keys returns the sorted key names seen for fieldType.
func (inv *Inventory) Keys(fieldType TypeKey) []string {
	set := inv.keys[fieldType]
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Len reports how many distinct types were seen.
func (inv *Inventory) Len() int {
	return len(inv.order)
}

func typeKeyOf(field *fieldtree.Object) TypeKey {
	value, ok := field.Get(fieldtree.TypeKey)
	if !ok || value == nil {
		return TypeKey{Missing: true}
	}
	return TypeKey{Name: fieldtree.Display(value)}
}
