// Package normalize holds the policies run over a field tree: the type
// inventory, structural detection of select fields missing "multiple", and the
// three default-fill variants (minimal select, layouts-aware select and the
// exhaustive type-dispatched fill).
package normalize
