// Package fieldtree models ACF style field group documents: an ordered JSON
// object whose "fields" entry holds a tree of field records nested through
// "sub_fields" and "layouts[].sub_fields". Documents round-trip through Parse
// and Encode without disturbing keys the tool does not know about.
package fieldtree
