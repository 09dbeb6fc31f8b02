package runner

import (
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-acfjson/internal/loader"
	"github.com/goliatone/go-acfjson/pkg/fieldtree"
	"github.com/goliatone/go-acfjson/pkg/normalize"
)

// reporter prints the human-readable lines of a run. Directory runs name the
// file on every line; single document runs do not.
type reporter struct {
	w         io.Writer
	directory bool
	err       error
}

func newReporter(w io.Writer, mode loader.Mode) *reporter {
	return &reporter{w: w, directory: mode == loader.ModeDirectory}
}

func (r *reporter) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format+"\n", args...)
}

func (r *reporter) skipped(result DocumentResult) {
	if r.directory {
		r.printf("Skipping %s due to load error.", result.Name())
	}
}

func (r *reporter) missing(result DocumentResult) {
	if r.directory {
		if len(result.Missing) > 0 {
			r.printf("Fields missing 'multiple' in %s: %s", result.Name(), pyList(result.Missing))
		}
		return
	}
	r.printf("Fields missing 'multiple': %s", pyList(result.Missing))
}

func (r *reporter) findings(result DocumentResult) {
	for _, f := range result.Findings {
		if r.directory {
			r.printf("MISSING 'multiple' in %s at line %d for field %s", result.Name(), f.Line, f.Name)
			continue
		}
		r.printf("MISSING 'multiple' at line %d for field %s", f.Line, f.Name)
	}
}

func (r *reporter) nothingFixed(task Task) {
	if r.directory {
		return
	}
	r.printf("No %s needed fixing.", task.unit())
}

func (r *reporter) fixed(result DocumentResult, unit string) {
	if r.directory {
		r.printf("Fixed %d %s in %s.", result.Fixed, unit, result.Name())
		return
	}
	r.printf("Fixed %d %s.", result.Fixed, unit)
}

func (r *reporter) dryRun(result DocumentResult, unit string) {
	r.printf("Would fix %d %s in %s.", result.Fixed, unit, result.Name())
}

func (r *reporter) declined(result DocumentResult) {
	r.printf("Skipped writing %s.", result.Name())
}

func (r *reporter) writeFailed(result DocumentResult) {
	r.printf("Failed to write %s: %v", result.Name(), result.Err)
}

func (r *reporter) inventory(inv *normalize.Inventory) {
	for _, key := range inv.Types() {
		r.printf("Type: %s", key)
		r.printf("  Props: %s", pyList(inv.Keys(key)))
	}
}

// pyList renders names as a bracketed list of quoted names.
func pyList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fieldtree.QuoteName(item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
