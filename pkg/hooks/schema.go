package hooks

import (
	"bytes"
	"embed"
	"fmt"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

const workspaceManifestSchema = "workspace-manifest"

var (
	compileOnce    sync.Once
	manifestSchema *jsonschema.Schema
	compileErr     error
)

func schemaURL(name string) string {
	return fmt.Sprintf("mem://schemas/%s.schema.json", name)
}

func workspaceSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		data, err := schemaFS.ReadFile(fmt.Sprintf("schemas/%s.schema.json", workspaceManifestSchema))
		if err != nil {
			compileErr = fmt.Errorf("read schema %s: %w", workspaceManifestSchema, err)
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			compileErr = fmt.Errorf("decode schema %s: %w", workspaceManifestSchema, err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL(workspaceManifestSchema), doc); err != nil {
			compileErr = fmt.Errorf("register schema %s: %w", workspaceManifestSchema, err)
			return
		}
		manifestSchema, compileErr = c.Compile(schemaURL(workspaceManifestSchema))
	})
	return manifestSchema, compileErr
}

// ValidateWorkspaceManifest checks a serialized package.json against the
// embedded manifest schema.
func ValidateWorkspaceManifest(data []byte) error {
	schema, err := workspaceSchema()
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode manifest: %w", err)
	}
	return schema.Validate(inst)
}
