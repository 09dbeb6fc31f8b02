package runner

import (
	"fmt"

	"github.com/goliatone/go-acfjson/internal/loader"
	"github.com/goliatone/go-acfjson/pkg/normalize"
	"github.com/goliatone/go-acfjson/pkg/scan"
)

// Task selects what a run does with each document.
type Task string

const (
	// TaskInventory records every key seen per field type.
	TaskInventory Task = "inventory"
	// TaskCheck lists select fields missing "multiple" by walking the tree.
	TaskCheck Task = "check"
	// TaskScan lists select fields missing "multiple" with the line heuristic.
	TaskScan Task = "scan"
	// TaskFixSelect applies the minimal select fill.
	TaskFixSelect Task = "fix-select"
	// TaskFixSelectLayouts applies the layouts-aware select fill.
	TaskFixSelectLayouts Task = "fix-select-layouts"
	// TaskFixExhaustive applies the exhaustive type-dispatched fill.
	TaskFixExhaustive Task = "fix-exhaustive"
)

// Mutates reports whether the task can rewrite documents.
func (t Task) Mutates() bool {
	switch t {
	case TaskFixSelect, TaskFixSelectLayouts, TaskFixExhaustive:
		return true
	}
	return false
}

func (t Task) unit() string {
	if t == TaskFixExhaustive {
		return "properties"
	}
	return "select fields"
}

// ParseTask validates a task name.
func ParseTask(raw string) (Task, error) {
	task := Task(raw)
	switch task {
	case TaskInventory, TaskCheck, TaskScan, TaskFixSelect, TaskFixSelectLayouts, TaskFixExhaustive:
		return task, nil
	}
	return "", fmt.Errorf("runner: unknown task %q", raw)
}

// Request describes a single run.
type Request struct {
	Locator loader.Locator
	Task    Task

	// Select configures TaskFixSelect.
	Select normalize.SelectFillOptions
	// CheckLayouts makes TaskCheck descend into layouts.
	CheckLayouts bool
	// Window configures TaskScan. Unset bounds come from scan.DocumentWindow
	// for a single document and scan.DirectoryWindow for a directory.
	Window scan.Bounds

	// DryRun reports fixes without writing.
	DryRun bool
	// Confirm asks the prompt driver before every write.
	Confirm bool
}
