package runner

import (
	"github.com/goliatone/go-acfjson/internal/loader"
	"github.com/goliatone/go-acfjson/pkg/normalize"
	"github.com/goliatone/go-acfjson/pkg/scan"
	"github.com/goliatone/go-acfjson/pkg/source"
)

// Status is the outcome of processing one document.
type Status string

const (
	// StatusClean means nothing was found or changed.
	StatusClean Status = "clean"
	// StatusReported means a read-only task produced findings.
	StatusReported Status = "reported"
	// StatusWritten means fixes were applied and the document was rewritten.
	StatusWritten Status = "written"
	// StatusDryRun means fixes were computed but not written.
	StatusDryRun Status = "dry-run"
	// StatusDeclined means the operator refused the write.
	StatusDeclined Status = "declined"
	// StatusSkipped means the document could not be loaded or parsed.
	StatusSkipped Status = "skipped"
	// StatusFailed means the rewrite failed.
	StatusFailed Status = "failed"
)

// DocumentResult records what happened to one document.
type DocumentResult struct {
	Source source.Source
	Status Status
	// Fixed counts fields (select fills) or keys (exhaustive fill).
	Fixed     int
	Missing   []string
	Findings  []scan.Finding
	Inventory *normalize.Inventory
	Err       error
}

// Name is the document's base file name.
func (r DocumentResult) Name() string {
	return source.Name(r.Source)
}

// Report collects the results of a run.
type Report struct {
	Task      Task
	Mode      loader.Mode
	Documents []DocumentResult
	// Inventory merges every document's inventory for TaskInventory.
	Inventory *normalize.Inventory
}

// Fixed sums fixes across documents, whether written or not.
func (r Report) Fixed() int {
	total := 0
	for _, doc := range r.Documents {
		total += doc.Fixed
	}
	return total
}

// Findings counts missing paths and scan findings across documents.
func (r Report) Findings() int {
	total := 0
	for _, doc := range r.Documents {
		total += len(doc.Missing) + len(doc.Findings)
	}
	return total
}

// Count returns how many documents ended with status.
func (r Report) Count(status Status) int {
	n := 0
	for _, doc := range r.Documents {
		if doc.Status == status {
			n++
		}
	}
	return n
}
