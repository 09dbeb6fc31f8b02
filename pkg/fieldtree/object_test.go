package fieldtree_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-acfjson/pkg/fieldtree"
	"github.com/goliatone/go-acfjson/pkg/source"
)

func TestParse_PreservesKeyOrderAndValues(t *testing.T) {
	raw := []byte(`{"title":"Offers","fields":[{"type":"select","name":"country","choices":{"us":"United States","ca":"Canada"},"price":1.50}],"location":[[{"param":"post_type"}]],"active":true,"menu_order":0}`)

	doc, err := fieldtree.Parse(source.FromFile("group.json"), raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if diff := cmp.Diff([]string{"title", "fields", "location", "active", "menu_order"}, doc.Root().Keys()); diff != "" {
		t.Fatalf("root keys mismatch (-want +got):\n%s", diff)
	}

	out, err := doc.Encode(fieldtree.DefaultEncodeOptions())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	want := `{
    "title": "Offers",
    "fields": [
        {
            "type": "select",
            "name": "country",
            "choices": {
                "us": "United States",
                "ca": "Canada"
            },
            "price": 1.50
        }
    ],
    "location": [
        [
            {
                "param": "post_type"
            }
        ]
    ],
    "active": true,
    "menu_order": 0
}`
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("encoded document mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode_EscapesNonASCIIButNotHTML(t *testing.T) {
	doc, err := fieldtree.Parse(source.FromFile("g.json"), []byte(`{"label":"Café <b>&</b> 😀","empty":{},"list":[]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	out, err := doc.Encode(fieldtree.DefaultEncodeOptions())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `{
    "label": "Caf\u00e9 <b>&</b> \ud83d\ude00",
    "empty": {},
    "list": []
}`
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("encoded document mismatch (-want +got):\n%s", diff)
	}

	utf8Out, err := doc.Encode(fieldtree.EncodeOptions{Indent: "  "})
	if err != nil {
		t.Fatalf("encode utf8: %v", err)
	}
	wantUTF8 := "{\n  \"label\": \"Café <b>&</b> 😀\",\n  \"empty\": {},\n  \"list\": []\n}"
	if diff := cmp.Diff(wantUTF8, string(utf8Out)); diff != "" {
		t.Fatalf("utf8 document mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_DuplicateKeysKeepFirstPosition(t *testing.T) {
	doc, err := fieldtree.Parse(source.FromFile("g.json"), []byte(`{"a":1,"b":2,"a":3}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, doc.Root().Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	value, _ := doc.Root().Get("a")
	if value != json.Number("3") {
		t.Fatalf("expected last value to win, got %#v", value)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"malformed": `{"fields": [`,
		"empty":     "   ",
		"array":     `[1, 2]`,
		"trailing":  `{"a": 1} {"b": 2}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := fieldtree.Parse(source.FromFile("broken.json"), []byte(raw))
			var parseErr *fieldtree.ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected ParseError, got %v", err)
			}
			if parseErr.Location != "broken.json" {
				t.Fatalf("unexpected location %q", parseErr.Location)
			}
		})
	}

	_, err := fieldtree.Parse(source.FromFile("a.json"), []byte(`"text"`))
	if !errors.Is(err, fieldtree.ErrNotObject) {
		t.Fatalf("expected ErrNotObject, got %v", err)
	}
}

func TestDocument_FieldsMissingOrMalformed(t *testing.T) {
	for _, raw := range []string{`{"title":"x"}`, `{"fields":"nope"}`, `{"fields":[1,"a",null]}`} {
		doc, err := fieldtree.Parse(source.FromFile("g.json"), []byte(raw))
		if err != nil {
			t.Fatalf("parse %s: %v", raw, err)
		}
		if got := len(doc.Fields()); got != 0 {
			t.Fatalf("expected no fields for %s, got %d", raw, got)
		}
	}
}

func TestObject_SetDefaultClonesValue(t *testing.T) {
	wrapper := fieldtree.ObjectOf("width", "", "class", "", "id", "")
	first := fieldtree.NewObject()
	second := fieldtree.NewObject()

	if !first.SetDefault("wrapper", wrapper) || !second.SetDefault("wrapper", wrapper) {
		t.Fatalf("expected defaults to be inserted")
	}
	if first.SetDefault("wrapper", "other") {
		t.Fatalf("existing key must not be replaced")
	}

	value, _ := first.Get("wrapper")
	value.(*fieldtree.Object).Set("width", "50")

	if got, _ := wrapper.String("width"); got != "" {
		t.Fatalf("default table mutated through field: %q", got)
	}
	other, _ := second.Get("wrapper")
	if got, _ := other.(*fieldtree.Object).String("width"); got != "" {
		t.Fatalf("defaults shared between fields: %q", got)
	}
}

func TestObject_SetKeepsPosition(t *testing.T) {
	obj := fieldtree.ObjectOf("a", 1, "b", 2)
	obj.Set("a", 10)
	obj.Set("c", 3)

	out, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"a":10,"b":2,"c":3}` {
		t.Fatalf("unexpected encoding %s", out)
	}
}
