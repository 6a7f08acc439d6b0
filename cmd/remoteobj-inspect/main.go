// Command remoteobj-inspect prints the modeled-type tables a document
// declares, either an OpenAPI document or a YAML modelfile. Useful for
// checking what the binding layer will actually see before wiring a client.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-remoteobjects/pkg/modelfile"
	"github.com/goliatone/go-remoteobjects/pkg/openapi"
	"github.com/goliatone/go-remoteobjects/pkg/schema"
)

func main() {
	source := flag.String("source", "", "path to an OpenAPI document or YAML modelfile")
	format := flag.String("format", "openapi", "source format (openapi, modelfile)")
	flag.Parse()

	if *source == "" {
		log.Fatal("flag -source is required")
	}

	raw, err := os.ReadFile(*source)
	if err != nil {
		log.Fatalf("read %s: %v", *source, err)
	}

	reg := schema.NewRegistry()
	var types []*schema.Type
	switch *format {
	case "openapi":
		types, err = openapi.ImportTypes(context.Background(), raw, openapi.WithRegistry(reg))
	case "modelfile":
		types, err = modelfile.Load(strings.NewReader(string(raw)), modelfile.WithRegistry(reg))
	default:
		log.Fatalf("unknown format %q", *format)
	}
	if err != nil {
		log.Fatalf("import types: %v", err)
	}

	for _, t := range types {
		fmt.Printf("%s (accepts %s)\n", t.Name(), strings.Join(t.ContentTypes(), ", "))
		for _, f := range t.Fields() {
			line := fmt.Sprintf("  %-20s %s", f.Name(), f.Kind())
			if f.APIName() != f.Name() {
				line += fmt.Sprintf("  wire=%s", f.APIName())
			}
			fmt.Println(line)
		}
		if entries := t.EntriesField(); entries != "" {
			fmt.Printf("  entries: %s\n", entries)
		}
		fmt.Println()
	}
}
