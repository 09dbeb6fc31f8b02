package fieldtree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/goliatone/go-acfjson/pkg/source"
)

// FieldsKey is the top-level entry holding the root field sequence.
const FieldsKey = "fields"

// ParseError reports a document that could not be decoded into a field group.
type ParseError struct {
	Location string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("fieldtree: parse %s: %v", e.Location, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Document is a parsed field group: an ordered root object whose "fields"
// entry holds the root field sequence. Every other key is carried verbatim.
type Document struct {
	source source.Source
	root   *Object
}

// Parse decodes raw into a Document. Any decoding failure, including a top
// level that is not an object, is returned as *ParseError.
func Parse(src source.Source, raw []byte) (*Document, error) {
	location := ""
	if src != nil {
		location = src.Location()
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, &ParseError{Location: location, Err: errors.New("document is empty")}
	}

	root := NewObject()
	if err := root.UnmarshalJSON(raw); err != nil {
		return nil, &ParseError{Location: location, Err: err}
	}
	return &Document{source: src, root: root}, nil
}

// ParseDocument parses a loaded source document.
func ParseDocument(doc source.Document) (*Document, error) {
	return Parse(doc.Source(), doc.Raw())
}

// NewDocument wraps an existing root object.
func NewDocument(src source.Source, root *Object) *Document {
	if root == nil {
		root = NewObject()
	}
	return &Document{source: src, root: root}
}

// Source returns where the document was read from.
func (d *Document) Source() source.Source {
	return d.source
}

// Root exposes the top-level object.
func (d *Document) Root() *Object {
	return d.root
}

// Fields returns the root field records. A missing or malformed "fields"
// entry yields an empty sequence.
func (d *Document) Fields() []*Object {
	if d == nil {
		return nil
	}
	return d.root.Objects(FieldsKey)
}

// EncodeOptions controls document serialisation.
type EncodeOptions struct {
	// Indent defaults to four spaces.
	Indent string
	// ASCII escapes every non-ASCII character as \uXXXX.
	ASCII bool
}

// DefaultEncodeOptions matches the layout of the files the tool rewrites:
// four space indentation with non-ASCII characters escaped.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{Indent: "    ", ASCII: true}
}

// Encode serialises the whole document. No trailing newline is written.
func (d *Document) Encode(opts EncodeOptions) ([]byte, error) {
	return Marshal(d.root, opts)
}

// Marshal serialises value with indentation, keeping object key order.
func Marshal(value any, opts EncodeOptions) ([]byte, error) {
	var compact bytes.Buffer
	if err := writeValue(&compact, value); err != nil {
		return nil, err
	}

	indent := opts.Indent
	if indent == "" {
		indent = "    "
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", indent); err != nil {
		return nil, fmt.Errorf("fieldtree: indent: %w", err)
	}
	if !opts.ASCII {
		return out.Bytes(), nil
	}
	return escapeNonASCII(out.Bytes()), nil
}

// escapeNonASCII rewrites runes outside printable ASCII. JSON structure is
// pure ASCII so every such rune sits inside a string literal.
func escapeNonASCII(data []byte) []byte {
	if isPlainASCII(data) {
		return data
	}
	var b strings.Builder
	b.Grow(len(data) + len(data)/4)
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		data = data[size:]
		switch {
		case r < utf8.RuneSelf && r != 0x7f:
			b.WriteRune(r)
		case r > 0xffff:
			hi, lo := utf16.EncodeRune(r)
			fmt.Fprintf(&b, `\u%04x\u%04x`, hi, lo)
		default:
			fmt.Fprintf(&b, `\u%04x`, r)
		}
	}
	return []byte(b.String())
}

func isPlainASCII(data []byte) bool {
	for _, c := range data {
		if c >= utf8.RuneSelf || c == 0x7f {
			return false
		}
	}
	return true
}
