// Package scan implements the line-window heuristic for select fields missing
// "multiple". It works on raw lines, never parses JSON, and can both miss
// fields and misattribute names; normalize.MissingMultiple is the structural
// alternative.
package scan

import "strings"

const (
	selectMarker   = `"type": "select"`
	nameMarker     = `"name":`
	multipleMarker = `"multiple":`

	// UnknownName is reported when no name line falls inside the window.
	UnknownName = "unknown"
)

// Window bounds the lines inspected around a select marker.
type Window struct {
	LookBack  int
	LookAhead int
}

var (
	// DocumentWindow is used when a single document is scanned.
	DocumentWindow = Window{LookBack: 10, LookAhead: 30}
	// DirectoryWindow is used when a whole directory is scanned.
	DirectoryWindow = Window{LookBack: 10, LookAhead: 100}
)

// Bounds overrides the window bounds that are set and leaves the others to
// a preset.
type Bounds struct {
	LookBack  *int
	LookAhead *int
}

// IsZero reports whether no bound is set.
func (b Bounds) IsZero() bool {
	return b.LookBack == nil && b.LookAhead == nil
}

// Apply returns preset with the set bounds replaced.
func (b Bounds) Apply(preset Window) Window {
	if b.LookBack != nil {
		preset.LookBack = *b.LookBack
	}
	if b.LookAhead != nil {
		preset.LookAhead = *b.LookAhead
	}
	return preset
}

// Finding is a select marker with no "multiple" line in its window.
type Finding struct {
	// Line is 1-based.
	Line int
	// Name is the trimmed text of the last name line seen before the window
	// scan stopped, or UnknownName.
	Name string
}

// Scanner applies a fixed window to every select marker.
type Scanner struct {
	window Window
}

// New returns a Scanner. Negative bounds are clamped to zero.
func New(window Window) *Scanner {
	if window.LookBack < 0 {
		window.LookBack = 0
	}
	if window.LookAhead < 0 {
		window.LookAhead = 0
	}
	return &Scanner{window: window}
}

// Window returns the configured bounds.
func (s *Scanner) Window() Window {
	return s.window
}

// Scan reports every select marker whose window holds no multiple line. The
// window runs from LookBack lines before the marker up to, but excluding,
// LookAhead lines after it.
func (s *Scanner) Scan(lines []string) []Finding {
	var findings []Finding
	for i, line := range lines {
		if !strings.Contains(line, selectMarker) {
			continue
		}

		start := max(0, i-s.window.LookBack)
		end := min(len(lines), i+s.window.LookAhead)

		name := UnknownName
		found := false
		for j := start; j < end; j++ {
			if strings.Contains(lines[j], nameMarker) {
				name = strings.TrimSpace(lines[j])
			}
			if strings.Contains(lines[j], multipleMarker) {
				found = true
				break
			}
		}
		if !found {
			findings = append(findings, Finding{Line: i + 1, Name: name})
		}
	}
	return findings
}
