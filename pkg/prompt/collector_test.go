package prompt

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/fastgen/pkg/config"
	"github.com/arthur-debert/fastgen/pkg/errors"
	"github.com/arthur-debert/fastgen/pkg/project"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ Asker = TerminalAsker{}
	_ Asker = (*scriptedAsker)(nil)
)

// scriptedAsker answers from queues and records the labels it saw
type scriptedAsker struct {
	selects  []string
	texts    []string
	confirms []bool
	asked    []string
}

func (s *scriptedAsker) Select(label string, options []string, def string) (string, error) {
	s.asked = append(s.asked, label)
	if len(s.selects) == 0 {
		return "", stderrors.New("no scripted select")
	}
	want := s.selects[0]
	s.selects = s.selects[1:]
	for _, opt := range options {
		if len(opt) >= len(want) && opt[:len(want)] == want {
			return opt, nil
		}
	}
	return want, nil
}

func (s *scriptedAsker) Text(label, def string) (string, error) {
	s.asked = append(s.asked, label)
	if len(s.texts) == 0 {
		return def, nil
	}
	answer := s.texts[0]
	s.texts = s.texts[1:]
	return answer, nil
}

func (s *scriptedAsker) Confirm(label string, def bool) (bool, error) {
	s.asked = append(s.asked, label)
	if len(s.confirms) == 0 {
		return def, nil
	}
	answer := s.confirms[0]
	s.confirms = s.confirms[1:]
	return answer, nil
}

var defaults = config.Defaults{FrontendPort: 5173, BackendPort: 3000, Database: "postgresql", ServiceBasePort: 3001, GatewayPort: 3000}

func TestCollect_Microservices(t *testing.T) {
	asker := &scriptedAsker{
		selects:  []string{"Microservices", "Backend Only", "Basic", "With Docker"},
		texts:    []string{"shop", "", "user, order ,billing"},
		confirms: []bool{false},
	}

	cfg := &project.Config{}
	require.NoError(t, NewCollector(asker, defaults).Collect(cfg))

	assert.Equal(t, "shop", cfg.ProjectName)
	assert.Equal(t, project.Microservices, cfg.Architecture)
	assert.Equal(t, project.BackendOnly, cfg.ProjectType)
	assert.Equal(t, project.BackendBasic, cfg.BackendType)
	assert.Equal(t, "with-docker", cfg.Template)
	assert.Equal(t, 3000, cfg.BackendPort, "empty answer takes the default")
	assert.Equal(t, 0, cfg.FrontendPort, "not asked for backend-only")
	assert.Equal(t, []string{"user", "order", "billing"}, cfg.Services)
	assert.False(t, cfg.InstallDeps)
}

func TestCollect_FullstackWithDatabase(t *testing.T) {
	asker := &scriptedAsker{
		selects: []string{"Monolith", "Full-stack", "With Database", "Vue monorepo", "MySQL"},
		texts:   []string{"web", "4000", "4173"},
	}

	cfg := &project.Config{}
	require.NoError(t, NewCollector(asker, defaults).Collect(cfg))

	assert.Equal(t, "monolith/fullstack/vue-monorepo/with-database/mysql", cfg.TemplatePath())
	assert.Equal(t, 4000, cfg.BackendPort)
	assert.Equal(t, 4173, cfg.FrontendPort)
	assert.Empty(t, cfg.Services)
	assert.True(t, cfg.InstallDeps)
}

func TestCollect_OnlyAsksMissing(t *testing.T) {
	asker := &scriptedAsker{}
	cfg := &project.Config{
		ProjectName:  "api",
		Architecture: project.Monolith,
		ProjectType:  project.BackendOnly,
		BackendType:  project.BackendBasic,
		Template:     "basic",
		BackendPort:  3000,
	}

	c := NewCollector(asker, defaults)
	c.AskInstall = false
	require.NoError(t, c.Collect(cfg))
	assert.Empty(t, asker.asked)
}

func TestCollect_RetriesInvalidAnswers(t *testing.T) {
	asker := &scriptedAsker{texts: []string{"Bad Name", "node_modules", "good-name"}}
	cfg := &project.Config{
		Architecture: project.Monolith, ProjectType: project.BackendOnly,
		BackendType: project.BackendBasic, Template: "basic", BackendPort: 3000,
	}

	c := NewCollector(asker, defaults)
	c.AskInstall = false
	require.NoError(t, c.Collect(cfg))
	assert.Equal(t, "good-name", cfg.ProjectName)

	asker = &scriptedAsker{texts: []string{"80", "abc", "22"}}
	cfg = &project.Config{
		ProjectName: "x", Architecture: project.Monolith, ProjectType: project.BackendOnly,
		BackendType: project.BackendBasic, Template: "basic",
	}
	err := NewCollector(asker, defaults).Collect(cfg)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestCollect_LogsInvalidAnswers(t *testing.T) {
	var buf bytes.Buffer
	orig := log.Logger
	t.Cleanup(func() { log.Logger = orig })
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	asker := &scriptedAsker{texts: []string{"Bad Name", "ok-name"}}
	cfg := &project.Config{
		Architecture: project.Monolith, ProjectType: project.BackendOnly,
		BackendType: project.BackendBasic, Template: "basic", BackendPort: 3000,
	}
	c := NewCollector(asker, defaults)
	c.AskInstall = false
	require.NoError(t, c.Collect(cfg))

	assert.Contains(t, buf.String(), `"component":"prompt"`)
	assert.Contains(t, buf.String(), `"answer":"Bad Name"`)
	assert.Contains(t, buf.String(), "Invalid answer")
}

func TestCollect_Aborted(t *testing.T) {
	cfg := &project.Config{ProjectName: "x"}
	err := NewCollector(&scriptedAsker{}, defaults).Collect(cfg)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCancelled))
}

func TestConfirmErase(t *testing.T) {
	asker := &scriptedAsker{confirms: []bool{true}}
	ok, err := NewCollector(asker, defaults).ConfirmErase("/tmp/x")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, asker.asked[0], "/tmp/x already exists")

	ok, err = NewCollector(&scriptedAsker{}, defaults).ConfirmErase("/tmp/x")
	require.NoError(t, err)
	assert.False(t, ok, "defaults to no")
}
