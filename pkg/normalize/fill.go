package normalize

import (
	"fmt"

	"github.com/goliatone/go-acfjson/pkg/fieldtree"
)

// Trigger decides when the minimal select fill fires for a field.
type Trigger string

const (
	// TriggerRequired fires when any of RequiredSelectKeys is absent.
	TriggerRequired Trigger = "required"
	// TriggerMultiple fires only when "multiple" is absent.
	TriggerMultiple Trigger = "multiple"
)

// WriteMode decides how the select defaults are written once triggered.
type WriteMode string

const (
	// WriteMissing sets each default only when its key is absent.
	WriteMissing WriteMode = "missing"
	// WriteAll writes all eight defaults, replacing present values.
	WriteAll WriteMode = "all"
)

// ParseTrigger validates a trigger name; empty selects TriggerRequired.
func ParseTrigger(raw string) (Trigger, error) {
	switch Trigger(raw) {
	case "":
		return TriggerRequired, nil
	case TriggerRequired, TriggerMultiple:
		return Trigger(raw), nil
	}
	return "", fmt.Errorf("normalize: unknown select trigger %q (want %q or %q)", raw, TriggerRequired, TriggerMultiple)
}

// ParseWriteMode validates a write mode name; empty selects WriteMissing.
func ParseWriteMode(raw string) (WriteMode, error) {
	switch WriteMode(raw) {
	case "":
		return WriteMissing, nil
	case WriteMissing, WriteAll:
		return WriteMode(raw), nil
	}
	return "", fmt.Errorf("normalize: unknown select write mode %q (want %q or %q)", raw, WriteMissing, WriteAll)
}

// SelectFillOptions configures FillSelect.
type SelectFillOptions struct {
	Trigger       Trigger
	Write         WriteMode
	FollowLayouts bool
}

// FillSelect applies the minimal select fill and returns the number of select
// fields it touched. Each field counts once.
func FillSelect(fields []*fieldtree.Object, opts SelectFillOptions) int {
	defaults := selectDefaults()
	triggerKeys := RequiredSelectKeys()
	if opts.Trigger == TriggerMultiple {
		triggerKeys = []string{MultipleKey}
	}

	fixed := 0
	walk := fieldtree.TraverseOptions{SkipLayouts: !opts.FollowLayouts}
	fieldtree.TraverseWith(fields, walk, func(node fieldtree.Node) {
		if !isSelect(node.Field) || !lacksAny(node.Field, triggerKeys) {
			return
		}
		if opts.Write == WriteAll {
			for _, d := range defaults {
				node.Field.Set(d.Key, fieldtree.CloneValue(d.Value))
			}
		} else {
			defaults.Apply(node.Field)
		}
		fixed++
	})
	return fixed
}

// FillSelectLayouts sets every absent select default independently, follows
// layouts, and counts each select field that gained at least one key.
func FillSelectLayouts(fields []*fieldtree.Object) int {
	defaults := selectDefaults()
	fixed := 0
	fieldtree.Traverse(fields, func(node fieldtree.Node) {
		if !isSelect(node.Field) {
			return
		}
		if defaults.Apply(node.Field) > 0 {
			fixed++
		}
	})
	return fixed
}

// Exhaustive fills the common defaults on every field and the per-type table
// on fields whose type has one.
type Exhaustive struct {
	tables Tables
}

// NewExhaustive builds the exhaustive filler over tables.
func NewExhaustive(tables Tables) *Exhaustive {
	return &Exhaustive{tables: tables}
}

// Fill walks fields, including layouts, and returns the number of keys
// inserted.
func (e *Exhaustive) Fill(fields []*fieldtree.Object) int {
	added := 0
	fieldtree.Traverse(fields, func(node fieldtree.Node) {
		added += e.tables.Common.Apply(node.Field)
		fieldType, ok := node.Field.String(fieldtree.TypeKey)
		if !ok {
			return
		}
		if table, ok := e.tables.Lookup(fieldType); ok {
			added += table.Apply(node.Field)
		}
	})
	return added
}

// FillExhaustive runs the exhaustive fill with the built-in tables.
func FillExhaustive(fields []*fieldtree.Object) int {
	return NewExhaustive(DefaultTables()).Fill(fields)
}

func lacksAny(field *fieldtree.Object, keys []string) bool {
	for _, key := range keys {
		if !field.Has(key) {
			return true
		}
	}
	return false
}
