package openapi

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-remoteobjects/pkg/schema"
)

const petstoreDoc = `{
  "openapi": "3.0.0",
  "info": {"title": "petstore", "version": "1.0.0"},
  "paths": {},
  "components": {
    "schemas": {
      "Pet": {
        "type": "object",
        "properties": {
          "name": {"type": "string"},
          "bornAt": {"type": "string", "format": "date-time"},
          "status": {"type": "string", "default": "available"},
          "owner": {"$ref": "#/components/schemas/Owner"}
        }
      },
      "Owner": {
        "type": "object",
        "properties": {
          "name": {"type": "string"},
          "pets": {"type": "array", "items": {"$ref": "#/components/schemas/Pet"}}
        }
      }
    }
  }
}`

func TestImportTypes(t *testing.T) {
	reg := schema.NewRegistry()
	types, err := ImportTypes(context.Background(), []byte(petstoreDoc), WithRegistry(reg))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(types) != 2 {
		t.Fatalf("expected 2 types, got %d", len(types))
	}
	// Sorted component order.
	if types[0].Name() != "Owner" || types[1].Name() != "Pet" {
		t.Fatalf("unexpected type order: %s, %s", types[0].Name(), types[1].Name())
	}

	pet, ok := reg.Lookup("Pet")
	if !ok {
		t.Fatal("Pet not registered")
	}
	bornAt, ok := pet.Field("bornAt")
	if !ok || bornAt.Kind() != schema.KindDatetime {
		t.Fatalf("bornAt should be a datetime field, got %v", bornAt)
	}
	status, _ := pet.Field("status")
	if status == nil || status.Kind() != schema.KindBasic {
		t.Fatal("status should be a basic field")
	}
	owner, _ := pet.Field("owner")
	if owner == nil || owner.Kind() != schema.KindObject {
		t.Fatal("owner should be an object reference")
	}

	ownerType, _ := reg.Lookup("Owner")
	pets, _ := ownerType.Field("pets")
	if pets == nil || pets.Kind() != schema.KindList {
		t.Fatal("pets should be a list field")
	}
}

// Mutual references decode regardless of which schema came first in the
// document, because resolution happens through the registry at decode time.
func TestImportedReferencesResolve(t *testing.T) {
	reg := schema.NewRegistry()
	if _, err := ImportTypes(context.Background(), []byte(petstoreDoc), WithRegistry(reg)); err != nil {
		t.Fatalf("import: %v", err)
	}

	owner, _ := reg.Lookup("Owner")
	inst := owner.FromMap(map[string]any{
		"name": "fred",
		"pets": []any{
			map[string]any{
				"name":   "rex",
				"bornAt": "2020-06-01T10:30:00Z",
				"owner":  map[string]any{"name": "fred"},
			},
		},
	})

	pets, err := inst.Get("pets")
	if err != nil {
		t.Fatalf("get pets: %v", err)
	}
	rex := pets.([]any)[0].(*schema.Instance)
	if rex.Type().Name() != "Pet" {
		t.Fatalf("pet decoded as %q", rex.Type().Name())
	}
	born, err := rex.Get("bornAt")
	if err != nil {
		t.Fatalf("get bornAt: %v", err)
	}
	want := time.Date(2020, 6, 1, 10, 30, 0, 0, time.UTC)
	if !born.(time.Time).Equal(want) {
		t.Fatalf("bornAt: got %v", born)
	}

	// Schema default applies when the payload omits the key.
	bare := func() *schema.Instance {
		pet, _ := reg.Lookup("Pet")
		return pet.FromMap(map[string]any{"name": "rex"})
	}()
	status, _ := bare.Get("status")
	if status != "available" {
		t.Fatalf("default from schema: got %v", status)
	}
}

func TestImportRejectsEmptyDocuments(t *testing.T) {
	if _, err := ImportTypes(context.Background(), nil); err == nil {
		t.Fatal("empty payload should fail")
	}
	noSchemas := `{"openapi": "3.0.0", "info": {"title": "x", "version": "1"}, "paths": {}}`
	if _, err := ImportTypes(context.Background(), []byte(noSchemas)); err == nil {
		t.Fatal("document without component schemas should fail")
	}
}
