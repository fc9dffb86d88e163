package walker

import (
	"testing"

	"github.com/arthur-debert/fastgen/pkg/rules"
	"github.com/arthur-debert/fastgen/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTemplates(t *testing.T) {
	fsys := testutil.NewTestFS()
	testutil.WriteTree(t, fsys, "/tpl", map[string]string{
		"monolith/backend-only/basic/basic/package.json":                 "{}",
		"monolith/backend-only/basic/basic/src/index.ts":                 "x",
		"monolith/backend-only/basic/with-database/postgresql/README.md": "db",
		"microservices/backend-only/with-docker/basic/README.md":         "d",
		"microservices/backend-only/with-docker/basic/node_modules/x.js": "dep",
		"monolith/fullstack/react-monorepo/basic/apps/web/index.html":    "w",
		"monolith/fullstack/react-monorepo/basic/_gitignore":             "n",
		"README.md":                                                      "top level files are not templates",
	})

	got, err := ListTemplates(fsys, "/tpl", rules.Default().ExcludedDirs())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"microservices/backend-only/with-docker/basic",
		"monolith/backend-only/basic/basic",
		"monolith/backend-only/basic/with-database/postgresql",
		"monolith/fullstack/react-monorepo/basic",
	}, got)
}

func TestListTemplates_MissingRoot(t *testing.T) {
	_, err := ListTemplates(testutil.NewTestFS(), "/nope", nil)
	assert.Error(t, err)
}
