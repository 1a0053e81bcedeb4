package validation

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

const schemaBaseURL = "https://esgsync.local/schemas/"

// compileSchemas compiles every embedded section schema, keyed by section name.
func compileSchemas() (map[string]*jsonschema.Schema, error) {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return nil, fmt.Errorf("reading embedded schemas: %w", err)
	}

	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		data, readErr := schemaFS.ReadFile(path.Join("schemas", e.Name()))
		if readErr != nil {
			return nil, fmt.Errorf("reading schema %s: %w", e.Name(), readErr)
		}
		if addErr := c.AddResource(schemaBaseURL+e.Name(), bytes.NewReader(data)); addErr != nil {
			return nil, fmt.Errorf("schema %s load failed: %w", e.Name(), addErr)
		}
		names = append(names, e.Name())
	}

	out := make(map[string]*jsonschema.Schema, len(names))
	for _, name := range names {
		compiled, compileErr := c.Compile(schemaBaseURL + name)
		if compileErr != nil {
			return nil, fmt.Errorf("schema %s compile failed: %w", name, compileErr)
		}
		out[strings.TrimSuffix(name, ".schema.json")] = compiled
	}
	return out, nil
}

// checkSchema validates one section value against its schema and records
// each leaf failure under the section's field path.
func checkSchema(r *Result, schema *jsonschema.Schema, section string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		r.addError(section, "contains a value that is not a finite number")
		return
	}
	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err = dec.Decode(&doc); err != nil {
		r.addError(section, "could not be read: %v", err)
		return
	}

	err = schema.Validate(doc)
	if err == nil {
		return
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		r.addError(section, "%v", err)
		return
	}
	for _, leaf := range leaves(ve) {
		r.addError(fieldPath(section, leaf.InstanceLocation), "%s", leaf.Message)
	}
}

// leaves flattens a validation error tree to its most specific causes.
func leaves(ve *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*jsonschema.ValidationError{ve}
	}
	var out []*jsonschema.ValidationError
	for _, c := range ve.Causes {
		out = append(out, leaves(c)...)
	}
	return out
}

// fieldPath turns a JSON pointer such as /scope1Rows/0/quantity into
// ghg.scope1Rows[0].quantity.
func fieldPath(section, pointer string) string {
	var sb strings.Builder
	sb.WriteString(section)
	for _, tok := range strings.Split(strings.TrimPrefix(pointer, "/"), "/") {
		if tok == "" {
			continue
		}
		tok = strings.NewReplacer("~1", "/", "~0", "~").Replace(tok)
		if isIndex(tok) {
			sb.WriteString("[" + tok + "]")
			continue
		}
		sb.WriteString("." + tok)
	}
	return sb.String()
}

func isIndex(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}

func jsonObject(s string) bool {
	var m map[string]json.RawMessage
	return json.Unmarshal([]byte(s), &m) == nil
}
