package fieldtree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Object is a JSON object that remembers the order in which keys were first
// seen. Values are one of: nil, bool, string, json.Number, *Object or []any
// holding the same set recursively. Values inserted by callers may also be any
// type encoding/json can marshal.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// ObjectOf builds an Object from alternating key/value pairs, mostly for
// tests and default tables. It panics on an odd argument count or a non
// string key.
func ObjectOf(pairs ...any) *Object {
	if len(pairs)%2 != 0 {
		panic("fieldtree: ObjectOf requires key/value pairs")
	}
	obj := NewObject()
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("fieldtree: ObjectOf key %v is not a string", pairs[i]))
		}
		obj.Set(key, pairs[i+1])
	}
	return obj
}

// Len reports the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return append([]string(nil), o.keys...)
}

// Has reports whether key is present, regardless of its value.
func (o *Object) Has(key string) bool {
	if o == nil {
		return false
	}
	_, ok := o.values[key]
	return ok
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	value, ok := o.values[key]
	return value, ok
}

// String returns the value under key when it is a JSON string.
func (o *Object) String(key string) (string, bool) {
	value, ok := o.Get(key)
	if !ok {
		return "", false
	}
	str, ok := value.(string)
	return str, ok
}

// Set stores value under key. Existing keys keep their position.
func (o *Object) Set(key string, value any) {
	if o.values == nil {
		o.values = make(map[string]any)
	}
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// SetDefault stores value under key only when key is absent and reports
// whether it did. The stored value is a deep copy so defaults never alias.
func (o *Object) SetDefault(key string, value any) bool {
	if o.Has(key) {
		return false
	}
	o.Set(key, CloneValue(value))
	return true
}

// Objects returns the object entries of the array stored under key. Missing
// keys, non-array values and non-object entries yield nothing.
func (o *Object) Objects(key string) []*Object {
	value, ok := o.Get(key)
	if !ok {
		return nil
	}
	return objectsOf(value)
}

// Clone returns a deep copy of the object.
func (o *Object) Clone() *Object {
	if o == nil {
		return nil
	}
	out := &Object{
		keys:   append([]string(nil), o.keys...),
		values: make(map[string]any, len(o.values)),
	}
	for key, value := range o.values {
		out.values[key] = CloneValue(value)
	}
	return out
}

// CloneValue deep copies objects and arrays; scalars are returned as-is.
func CloneValue(value any) any {
	switch typed := value.(type) {
	case *Object:
		return typed.Clone()
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = CloneValue(item)
		}
		return out
	default:
		return value
	}
}

func objectsOf(value any) []*Object {
	list, ok := value.([]any)
	if !ok {
		return nil
	}
	out := make([]*Object, 0, len(list))
	for _, item := range list {
		if obj, ok := item.(*Object); ok && obj != nil {
			out = append(out, obj)
		}
	}
	return out
}

// MarshalJSON writes the object compactly, keys in insertion order and HTML
// characters left unescaped.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeValue(&buf, o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, preserving key order. Numbers are kept
// as json.Number so they round-trip verbatim.
func (o *Object) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	value, err := decodeValue(dec)
	if err != nil {
		return err
	}
	if err := ensureEOF(dec); err != nil {
		return err
	}
	obj, ok := value.(*Object)
	if !ok {
		return ErrNotObject
	}
	*o = *obj
	return nil
}

// ErrNotObject is returned when a payload's top level is not a JSON object.
var ErrNotObject = errors.New("fieldtree: document is not a JSON object")

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch delim := tok.(type) {
	case json.Delim:
		switch delim {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("fieldtree: unexpected delimiter %q", delim)
		}
	default:
		return tok, nil
	}
}

func decodeObject(dec *json.Decoder) (*Object, error) {
	obj := NewObject()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("fieldtree: object key %v is not a string", tok)
		}
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		// Duplicate keys keep the first position and the last value.
		obj.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	out := []any{}
	for dec.More() {
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		out = append(out, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}

func ensureEOF(dec *json.Decoder) error {
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			return errors.New("fieldtree: unexpected data after top-level value")
		}
		return err
	}
	return nil
}

func writeValue(buf *bytes.Buffer, value any) error {
	switch typed := value.(type) {
	case nil:
		buf.WriteString("null")
	case *Object:
		if typed == nil {
			buf.WriteString("null")
			return nil
		}
		buf.WriteByte('{')
		for i, key := range typed.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeString(buf, key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeValue(buf, typed.values[key]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case []any:
		buf.WriteByte('[')
		for i, item := range typed {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case string:
		return writeString(buf, typed)
	case json.Number:
		buf.WriteString(typed.String())
	default:
		payload, err := json.Marshal(typed)
		if err != nil {
			return fmt.Errorf("fieldtree: encode %T: %w", typed, err)
		}
		buf.Write(payload)
	}
	return nil
}

func writeString(buf *bytes.Buffer, value string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return err
	}
	buf.WriteString(strings.TrimSuffix(tmp.String(), "\n"))
	return nil
}
