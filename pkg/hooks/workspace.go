package hooks

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
)

// WorkspaceManifestName is written at the top of the target
const WorkspaceManifestName = "package.json"

// WorkspaceGlobs are the package locations of a monorepo
var WorkspaceGlobs = []string{"apps/*", "packages/*", "services/*"}

// WorkspaceManifest is the root package.json of a monorepo. Field order is
// the serialized key order.
type WorkspaceManifest struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Description     string            `json:"description"`
	Private         bool              `json:"private"`
	Workspaces      []string          `json:"workspaces"`
	Scripts         WorkspaceScripts  `json:"scripts"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// WorkspaceScripts are the convenience task aliases
type WorkspaceScripts struct {
	DevAll      string `json:"dev:all"`
	DevBackend  string `json:"dev:backend"`
	DevFrontend string `json:"dev:frontend"`
	BuildAll    string `json:"build:all"`
	TestAll     string `json:"test:all"`
}

// NewWorkspaceManifest builds the manifest for a project
func NewWorkspaceManifest(projectName, description string) WorkspaceManifest {
	return WorkspaceManifest{
		Name:        projectName,
		Version:     "1.0.0",
		Description: description,
		Private:     true,
		Workspaces:  append([]string(nil), WorkspaceGlobs...),
		Scripts: WorkspaceScripts{
			DevAll:      `concurrently "npm run dev:backend" "npm run dev:frontend"`,
			DevBackend:  "npm run dev --workspace=api-gateway",
			DevFrontend: "npm run dev --workspace=" + projectName + "-frontend",
			BuildAll:    "npm run build --workspaces",
			TestAll:     "npm run test --workspaces",
		},
		DevDependencies: map[string]string{
			"concurrently": "^8.2.2",
		},
	}
}

// Marshal serializes the manifest with 2-space indentation, no HTML
// escaping and a trailing newline.
func (m WorkspaceManifest) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Workspace writes the monorepo root package.json
func Workspace(ctx context.Context, hc HookContext) ([]string, error) {
	name, ok := hc.Vars.Lookup("PROJECT_NAME")
	if !ok || name.String() == "" {
		return nil, hookError(WorkspaceHook, "PROJECT_NAME is required")
	}
	description := hc.Vars.Get("PROJECT_DESCRIPTION").String()

	data, err := NewWorkspaceManifest(name.String(), description).Marshal()
	if err != nil {
		return nil, hookError(WorkspaceHook, "encode manifest: %v", err)
	}
	if err := ValidateWorkspaceManifest(data); err != nil {
		return nil, hookError(WorkspaceHook, "generated manifest is invalid: %v", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(hc.TargetDir, WorkspaceManifestName)
	if err := hc.FS.WriteFile(path, data, 0644); err != nil {
		return nil, hookError(WorkspaceHook, "write %s: %v", path, err)
	}

	hc.Logger.Info().Str("path", path).Msg("Generated workspace manifest")
	return []string{path}, nil
}
