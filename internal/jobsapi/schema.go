package jobsapi

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const schemaBaseURL = "https://schemas.job-market-dashboard.local/"

var (
	searchSchema    = mustCompileSchema("search.json")
	lookupSchema    = mustCompileSchema("lookup.json")
	skillsSchema    = mustCompileSchema("skills.json")
	aggregateSchema = mustCompileSchema("aggregate.json")
)

func mustCompileSchema(name string) *jsonschema.Schema {
	raw, err := fs.ReadFile(schemaFS, path.Join("schemas", name))
	if err != nil {
		panic(fmt.Sprintf("read schema %s: %v", name, err))
	}
	compiler := jsonschema.NewCompiler()
	url := schemaBaseURL + name
	if err := compiler.AddResource(url, bytes.NewReader(raw)); err != nil {
		panic(fmt.Sprintf("add schema %s: %v", name, err))
	}
	schema, err := compiler.Compile(url)
	if err != nil {
		panic(fmt.Sprintf("compile schema %s: %v", name, err))
	}
	return schema
}

// validateBody checks a response body against the endpoint schema.
func validateBody(schema *jsonschema.Schema, body []byte) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("body is not valid JSON: %w", err)
	}
	if dec.More() {
		return fmt.Errorf("body has trailing data")
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
