package project

import (
	"testing"

	"github.com/arthur-debert/fastgen/pkg/config"
	"github.com/arthur-debert/fastgen/pkg/errors"
	"github.com/arthur-debert/fastgen/pkg/testutil"
	"github.com/arthur-debert/fastgen/pkg/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDefaults = config.Defaults{
	FrontendPort:    5173,
	BackendPort:     3000,
	Database:        "postgresql",
	ServiceBasePort: 3001,
	GatewayPort:     3000,
}

func validConfig() *Config {
	c := &Config{
		ProjectName:  "shop",
		Architecture: Microservices,
		ProjectType:  BackendOnly,
		BackendType:  BackendBasic,
		Template:     "with-docker",
		Services:     []string{"user", "order"},
	}
	c.ApplyDefaults(testDefaults)
	return c
}

func TestValidateProjectName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"simple", "my-app", true},
		{"scoped chars", "my.app_2", true},
		{"empty", "", false},
		{"too long", string(make([]byte, 215)), false},
		{"uppercase", "MyApp", false},
		{"special", "my!app", false},
		{"leading dot", ".app", false},
		{"leading underscore", "_app", false},
		{"space", "my app", false},
		{"separator", "a/b", false},
		{"reserved", "node_modules", false},
		{"reserved npm", "npm", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProjectName(tt.input)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
		})
	}
}

func TestValidatePort(t *testing.T) {
	assert.NoError(t, ValidatePort(3000))
	assert.NoError(t, ValidatePort(1024))
	assert.NoError(t, ValidatePort(65535))
	assert.Error(t, ValidatePort(0))
	assert.Error(t, ValidatePort(80))
	assert.Error(t, ValidatePort(70000))
}

func TestSanitizePackageName(t *testing.T) {
	tests := map[string]string{
		"My App":       "my-app",
		"--weird__":    "weird",
		"a..b":         "a-b",
		"Already-Fine": "already-fine",
		"café":         "caf",
	}
	for in, want := range tests {
		assert.Equal(t, want, SanitizePackageName(in), in)
	}
}

func TestTemplatePath(t *testing.T) {
	c := validConfig()
	assert.Equal(t, "microservices/backend-only/with-docker/basic", c.TemplatePath())

	c = &Config{
		Architecture: Monolith,
		ProjectType:  BackendOnly,
		Template:     "basic",
		BackendType:  BackendWithDatabase,
		Database:     "mysql",
	}
	assert.Equal(t, "monolith/backend-only/basic/with-database/mysql", c.TemplatePath())

	c.BackendType = BackendBasic
	assert.Equal(t, "monolith/backend-only/basic/basic", c.TemplatePath(), "database only applies to with-database")
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"bad name", func(c *Config) { c.ProjectName = "Bad" }},
		{"bad architecture", func(c *Config) { c.Architecture = "serverless" }},
		{"bad project type", func(c *Config) { c.ProjectType = "frontend-only" }},
		{"bad backend", func(c *Config) { c.BackendType = "with-cache" }},
		{"bad template", func(c *Config) { c.Template = "../x" }},
		{"privileged port", func(c *Config) { c.BackendPort = 80 }},
		{"no services", func(c *Config) { c.Services = nil }},
		{"duplicate services", func(c *Config) { c.Services = []string{"a", "a"} }},
		{"bad service", func(c *Config) { c.Services = []string{"User Service"} }},
		{"service ports overflow", func(c *Config) { c.ServiceBasePort = 65535 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
		})
	}
}

func TestVariables(t *testing.T) {
	c := validConfig()
	c.Author = "Ada"
	c.Extra = values.Variables{
		"PROJECT_NAME": values.String("hijack"),
		"LICENSE":      values.String("MIT"),
	}

	vars := c.Variables()

	assert.Equal(t, "shop", vars["PROJECT_NAME"].String(), "extras never override built-ins")
	assert.Equal(t, "MIT", vars["LICENSE"].String())
	assert.Equal(t, "shop", vars["PACKAGE_NAME"].String())
	assert.Equal(t, "with-docker", vars["TEMPLATE"].String())
	assert.Equal(t, "3000", vars["BACKEND_PORT"].String())
	assert.Equal(t, "5173", vars["FRONTEND_PORT"].String())
	assert.Equal(t, "postgresql", vars["DATABASE"].String())
	assert.Equal(t, "user, order", vars["SERVICES"].String())
	assert.Equal(t, "3001", vars["SERVICE_BASE_PORT"].String())
	assert.Equal(t, "Ada", vars["AUTHOR"].String())
	assert.True(t, vars["IS_MICROSERVICES"].Truthy())
	assert.False(t, vars["IS_FULLSTACK"].Truthy())
	assert.False(t, vars["HAS_DATABASE"].Truthy())

	_, ok := vars.Lookup("PROJECT_DESCRIPTION")
	assert.False(t, ok)
}

func TestApplyDefaults_Database(t *testing.T) {
	c := &Config{BackendType: BackendWithDatabase}
	c.ApplyDefaults(testDefaults)
	assert.Equal(t, "postgresql", c.Database)

	c = &Config{BackendType: BackendBasic}
	c.ApplyDefaults(testDefaults)
	assert.Equal(t, "", c.Database)
	assert.Equal(t, 3000, c.BackendPort)
}

func TestChoices(t *testing.T) {
	assert.Equal(t, []string{"monolith", "microservices"}, Values(ArchitectureChoices))
	assert.Equal(t, []string{"backend-only", "fullstack"}, Values(ProjectTypeChoices(Microservices)))
	assert.Contains(t, Values(TemplateChoices(Microservices, BackendOnly)), "with-docker")
	assert.Contains(t, Values(TemplateChoices(Monolith, Fullstack)), "react-monorepo")
	assert.Empty(t, TemplateChoices("serverless", BackendOnly))
}

func TestLoadVarsFile(t *testing.T) {
	fsys := testutil.NewTestFS()
	testutil.WriteTree(t, fsys, "/vars", map[string]string{
		"extra.toml": "LICENSE = \"MIT\"\nYEAR = 2024\nFEATURES = [\"auth\", \"cache\"]\n",
		"extra.yaml": "LICENSE: MIT\nROUTES:\n  - path: /users\n  - path: /orders\n",
		"extra.json": `{"LICENSE": "MIT", "RATIO": 0.5, "ENABLED": true}`,
		"extra.ini":  "LICENSE=MIT",
		"bad.json":   `{"LICENSE": `,
	})

	vars, err := LoadVarsFile(fsys, "/vars/extra.toml")
	require.NoError(t, err)
	assert.Equal(t, "MIT", vars["LICENSE"].String())
	assert.Equal(t, "2024", vars["YEAR"].String())
	assert.Equal(t, "auth, cache", vars["FEATURES"].String())

	vars, err = LoadVarsFile(fsys, "/vars/extra.yaml")
	require.NoError(t, err)
	require.Len(t, vars["ROUTES"].Items(), 2)
	path, ok := vars["ROUTES"].Items()[1].Field("path")
	assert.True(t, ok)
	assert.Equal(t, "/orders", path.String())

	vars, err = LoadVarsFile(fsys, "/vars/extra.json")
	require.NoError(t, err)
	assert.Equal(t, "0.5", vars["RATIO"].String())
	assert.Equal(t, values.KindBool, vars["ENABLED"].Kind())

	_, err = LoadVarsFile(fsys, "/vars/extra.ini")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = LoadVarsFile(fsys, "/vars/bad.json")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = LoadVarsFile(fsys, "/vars/missing.toml")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestParseAssignments(t *testing.T) {
	vars, err := ParseAssignments([]string{"NAME=demo", "SERVICES=user, order", "FLAG=true", "EMPTY="})
	require.NoError(t, err)

	assert.Equal(t, "demo", vars["NAME"].String())
	assert.Equal(t, []values.Value{values.String("user"), values.String("order")}, vars["SERVICES"].Items())
	assert.Equal(t, values.KindBool, vars["FLAG"].Kind())
	assert.Equal(t, values.KindScalar, vars["EMPTY"].Kind())

	_, err = ParseAssignments([]string{"novalue"})
	assert.Error(t, err)
}
