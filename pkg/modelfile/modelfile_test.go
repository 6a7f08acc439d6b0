package modelfile

import (
	"strings"
	"testing"

	"github.com/goliatone/go-remoteobjects/pkg/schema"
)

const catalogYAML = `
types:
  - name: Title
    content_types: [text/xml, application/xml]
    fields:
      - name: title
        kind: basic
      - name: released
        kind: datetime
      - name: synopsis
        kind: html
      - name: kind
        kind: constant
        value: title
  - name: Catalog
    content_types: [text/xml, application/xml]
    entries: results
    fields:
      - name: results
        kind: list
        elem:
          kind: object
          target: Title
      - name: total
        kind: basic
        api_name: number_of_results
  - name: SpecialCatalog
    extends: Catalog
    fields:
      - name: total
        kind: basic
`

func TestLoadDeclaresTypesInOrder(t *testing.T) {
	reg := schema.NewRegistry()
	types, err := Load(strings.NewReader(catalogYAML), WithRegistry(reg))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(types) != 3 {
		t.Fatalf("expected 3 types, got %d", len(types))
	}

	title := types[0]
	fields := title.Fields()
	wantOrder := []string{"title", "released", "synopsis", "kind"}
	for n, name := range wantOrder {
		if fields[n].Name() != name {
			t.Fatalf("field %d: got %q, want %q", n, fields[n].Name(), name)
		}
	}

	catalog := types[1]
	if catalog.EntriesField() != "results" {
		t.Fatalf("entries: got %q", catalog.EntriesField())
	}
	total, _ := catalog.Field("total")
	if total.APIName() != "number_of_results" {
		t.Fatalf("api name: got %q", total.APIName())
	}

	special := types[2]
	if _, ok := special.Field("results"); !ok {
		t.Fatal("extends did not inherit results")
	}
}

func TestLoadedTypesDecode(t *testing.T) {
	reg := schema.NewRegistry()
	types, err := Load(strings.NewReader(catalogYAML), WithRegistry(reg))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	catalog := types[1]

	inst := catalog.FromMap(map[string]any{
		"results": []any{
			map[string]any{"title": "Sunrise", "released": "1927-09-23T00:00:00Z"},
		},
		"number_of_results": 1,
	})
	results, err := inst.Get("results")
	if err != nil {
		t.Fatalf("get results: %v", err)
	}
	first := results.([]any)[0].(*schema.Instance)
	if got, _ := first.Get("title"); got != "Sunrise" {
		t.Fatalf("nested decode: got %v", got)
	}
	if got, _ := first.Get("kind"); got != "title" {
		t.Fatalf("constant: got %v", got)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := map[string]string{
		"empty":          `types: []`,
		"unknown kind":   "types:\n  - name: X\n    fields:\n      - name: f\n        kind: wat\n",
		"object missing": "types:\n  - name: X\n    fields:\n      - name: f\n        kind: object\n",
		"list missing":   "types:\n  - name: X\n    fields:\n      - name: f\n        kind: list\n",
		"bad extends":    "types:\n  - name: X\n    extends: Nope\n    fields: []\n",
	}
	for label, doc := range cases {
		if _, err := Load(strings.NewReader(doc), WithRegistry(schema.NewRegistry())); err == nil {
			t.Fatalf("%s: expected an error", label)
		}
	}
}
