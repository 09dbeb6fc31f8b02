package source

import "errors"

// Document wraps the raw payload of a field group file and its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document wrapper while validating the inputs. An
// empty payload is accepted; parsing decides whether it is usable.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("source: source is required")
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Lines splits the payload into lines, keeping line terminators, the same way
// a line-oriented reader would see the file.
func (d Document) Lines() []string {
	if len(d.raw) == 0 {
		return nil
	}
	var (
		lines []string
		start int
	)
	for i, b := range d.raw {
		if b == '\n' {
			lines = append(lines, string(d.raw[start:i+1]))
			start = i + 1
		}
	}
	if start < len(d.raw) {
		lines = append(lines, string(d.raw[start:]))
	}
	return lines
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}
