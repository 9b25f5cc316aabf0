package persist

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed snapshot.schema.json
var schemaJSON []byte

const schemaURL = "https://github.com/td0m/todoboard/snapshot.schema.json"

var snapshotSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		panic(err)
	}
	return compiler.MustCompile(schemaURL)
}

// ErrInvalidSnapshot wraps every schema violation found in stored data.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

func checkSchema(bs []byte) error {
	var doc interface{}
	if err := json.Unmarshal(bs, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	err := snapshotSchema.Validate(doc)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	return fmt.Errorf("%w: %s", ErrInvalidSnapshot, strings.Join(collectSchemaErrors(ve), "; "))
}

// collectSchemaErrors flattens the leaves of a validation error tree.
func collectSchemaErrors(err *jsonschema.ValidationError) []string {
	if len(err.Causes) == 0 {
		loc := err.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		return []string{loc + ": " + err.Message}
	}
	var out []string
	for _, cause := range err.Causes {
		out = append(out, collectSchemaErrors(cause)...)
	}
	return out
}
