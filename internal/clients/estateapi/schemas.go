package estateapi

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemasFS embed.FS

const (
	schemaProperty    = "property.json"
	schemaCatalog     = "catalog.json"
	schemaCurrentUser = "current_user.json"
)

var compiledSchemas = mustCompileSchemas()

func mustCompileSchemas() map[string]*jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7

	entries, err := fs.ReadDir(schemasFS, "schemas")
	if err != nil {
		panic("estateapi: read schemas: " + err.Error())
	}

	// сначала все ресурсы, чтобы работали $ref между схемами
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := schemasFS.ReadFile(path.Join("schemas", e.Name()))
		if err != nil {
			panic("estateapi: read schema " + e.Name() + ": " + err.Error())
		}
		if err := compiler.AddResource(e.Name(), bytes.NewReader(data)); err != nil {
			panic("estateapi: add schema " + e.Name() + ": " + err.Error())
		}
		names = append(names, e.Name())
	}

	out := make(map[string]*jsonschema.Schema, len(names))
	for _, name := range names {
		schema, err := compiler.Compile(name)
		if err != nil {
			panic("estateapi: compile schema " + name + ": " + err.Error())
		}
		out[name] = schema
	}

	return out
}

// decodeValidated checks body against the named schema and decodes it into dst.
func decodeValidated(schemaName string, body []byte, dst interface{}) error {
	schema, ok := compiledSchemas[schemaName]
	if !ok {
		return fmt.Errorf("unknown schema %q", schemaName)
	}

	var raw interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if err := schema.Validate(raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return nil
}
