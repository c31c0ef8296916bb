package cli

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/hammerkit/fgdiff/internal/fgd"
)

//go:embed schema_input.json
var inputSchemaJSON string

var (
	inputSchemaOnce sync.Once
	inputSchema     *jsonschema.Schema
	inputSchemaErr  error
)

func compiledInputSchema() (*jsonschema.Schema, error) {
	inputSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("schema_input.json", strings.NewReader(inputSchemaJSON)); err != nil {
			inputSchemaErr = fmt.Errorf("add input schema resource: %w", err)
			return
		}
		inputSchema, inputSchemaErr = compiler.Compile("schema_input.json")
	})
	return inputSchema, inputSchemaErr
}

// LoadSchema loads one schema file. The format is chosen by extension:
// .fgd is parsed as FGD source, .json is validated against the embedded
// input schema and decoded directly into the object model. Load failures
// are fail-fast: a partial schema is never returned.
func LoadSchema(path string) (*fgd.Schema, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".fgd":
		return fgd.ParseFile(path)
	case ".json":
		return loadJSONSchema(path)
	default:
		return nil, fmt.Errorf("unsupported schema file %s: want .fgd or .json", path)
	}
}

func loadJSONSchema(path string) (*fgd.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	sch, err := compiledInputSchema()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(raw); err != nil {
		return nil, fmt.Errorf("%s does not match the input schema: %w", path, err)
	}

	var schema fgd.Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &schema, nil
}
