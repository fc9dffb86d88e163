package render

import (
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/fastgen/pkg/errors"
	"github.com/arthur-debert/fastgen/pkg/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	vars := values.Variables{
		"PROJECT_NAME": values.String("demo"),
		"PORT":         values.Int(3000),
		"flag":         values.Bool(true),
		"off":          values.Bool(false),
		"empty":        values.String(""),
		"items":        values.Strings("a", "b", "c"),
		"none":         values.List(),
		"SERVICES":     values.Strings("user", "order"),
		"routes": values.List(
			values.Map(map[string]values.Value{"path": values.String("/users"), "name": values.String("users")}),
			values.Map(map[string]values.Value{"path": values.String("/orders")}),
		),
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "no tags here", "no tags here"},
		{"simple", "Hello {{PROJECT_NAME}}", "Hello demo"},
		{"number", "port={{PORT}}", "port=3000"},
		{"sequence joins", "[{{SERVICES}}]", "[user, order]"},
		{"unknown kept", "Hi {{UNKNOWN}}!", "Hi {{UNKNOWN}}!"},
		{"spaces are not tags", "{{ PROJECT_NAME }}", "{{ PROJECT_NAME }}"},
		{"triple brace", "{{{PROJECT_NAME}}}", "{demo}"},
		{"lone braces", "a {{ b }} c {{", "a {{ b }} c {{"},

		{"section true", "{{#flag}}X{{/flag}}", "X"},
		{"section false", "{{#off}}X{{/off}}", ""},
		{"section absent", "{{#missing}}X{{/missing}}", ""},
		{"section empty string is truthy", "{{#empty}}X{{/empty}}", "X"},
		{"section empty sequence", "{{#none}}X{{/none}}", ""},
		{"inverted true", "{{^flag}}X{{/flag}}", ""},
		{"inverted false", "{{^off}}X{{/off}}", "X"},
		{"inverted absent", "{{^missing}}X{{/missing}}", "X"},
		{"inverted empty sequence", "{{^none}}X{{/none}}", "X"},
		{"section body substitutes", "{{#flag}}name={{PROJECT_NAME}}{{/flag}}", "name=demo"},

		{"each scalars", "{{#each items}}{{.}}{{/each}}", "abc"},
		{"each empty", "{{#each none}}{{.}}{{/each}}", ""},
		{"each absent", "x{{#each missing}}{{.}}{{/each}}y", "xy"},
		{"each over scalar deletes block", "x{{#each PROJECT_NAME}}{{.}}{{/each}}y", "xy"},
		{"each with separator", "{{#each SERVICES}}- {{.}}\n{{/each}}", "- user\n- order\n"},
		{"each mapping keys", "{{#each routes}}{{path}};{{/each}}", "/users;/orders;"},
		{"each missing key kept", "{{#each routes}}{{name}};{{/each}}", "users;{{name}};"},
		{"each falls back to outer scope", "{{#each items}}{{PROJECT_NAME}}{{/each}}", "demodemodemo"},
		{"each whitespace before name", "{{#each\titems}}{{.}}{{/each}}", "abc"},
		{"dot outside each", "{{.}}", "{{.}}"},

		{"nested same name", "{{#flag}}a{{#flag}}b{{/flag}}c{{/flag}}", "abc"},
		{"nested each", "{{#each SERVICES}}{{#each items}}{{.}}{{/each}}|{{/each}}", "abc|abc|"},
		{"section inside each", "{{#each items}}{{#flag}}{{.}}{{/flag}}{{/each}}", "abc"},
		{"unmatched close is literal", "a{{/flag}}b", "a{{/flag}}b"},
		{"wrong close inside block", "{{#flag}}a{{/off}}b{{/flag}}", "a{{/off}}b"},
		{"unclosed block", "{{#flag}}a {{PROJECT_NAME}}", "{{#flag}}a demo"},
		{"each without name is a section", "{{#each}}X{{/each}}", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.input, vars)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_ComplementOfSections(t *testing.T) {
	for _, v := range []values.Value{values.Bool(true), values.Bool(false), values.Absent(), values.List(), values.String("")} {
		vars := values.Variables{"flag": v}
		pos, err := Render("{{#flag}}X{{/flag}}", vars)
		require.NoError(t, err)
		neg, err := Render("{{^flag}}X{{/flag}}", vars)
		require.NoError(t, err)
		assert.Equal(t, "X", pos+neg, "exactly one form renders for %v", v.Kind())
	}
}

func TestExecute_Unresolved(t *testing.T) {
	tpl := Parse("{{B}} {{A}} {{B}} {{KNOWN}} {{#each items}}{{missing}}{{/each}}")
	out, err := tpl.Execute(values.Variables{
		"KNOWN": values.String("k"),
		"items": values.Strings("x"),
	})
	require.NoError(t, err)

	assert.Equal(t, "{{B}} {{A}} {{B}} k {{missing}}", out.Text)
	assert.Equal(t, []string{"A", "B", "missing"}, out.Unresolved)
}

func TestExecute_NestedSequenceElement(t *testing.T) {
	vars := values.Variables{
		"matrix": values.List(values.Strings("a"), values.Strings("b")),
	}

	_, err := Render("{{#each matrix}}{{.}}{{/each}}", vars)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateStructure))
}

func TestRender_ResolvableLeavesNoTags(t *testing.T) {
	vars := values.Variables{
		"A": values.String("alpha"),
		"B": values.Int(2),
		"C": values.Strings("x", "y"),
	}
	inputs := []string{
		"{{A}}{{B}}{{C}}",
		"prefix {{A}} middle {{B}} suffix",
		"{{A}}\n{{A}}\n{{C}}\n",
	}

	for _, in := range inputs {
		got, err := Render(in, vars)
		require.NoError(t, err)
		assert.False(t, ContainsPlaceholders(got), "output %q", got)
		assert.NotContains(t, got, "{{")
	}
}

func TestRender_IdentityWithoutPlaceholders(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"func main() { fmt.Println(\"{\") }",
		"{ {x} } {{ spaced }} {{-dash}}",
		strings.Repeat("{", 5),
	}
	vars := values.Variables{"x": values.String("nope")}

	for _, in := range inputs {
		assert.False(t, ContainsPlaceholders(in))
		got, err := Render(in, vars)
		require.NoError(t, err)
		assert.Equal(t, in, got)

		again, err := Render(got, vars)
		require.NoError(t, err)
		assert.Equal(t, got, again)
	}
}

func TestContainsPlaceholders(t *testing.T) {
	assert.True(t, ContainsPlaceholders("{{A}}"))
	assert.True(t, ContainsPlaceholders("x {{/A}}"))
	assert.True(t, ContainsPlaceholders("{{.}}"))
	assert.False(t, ContainsPlaceholders("{{ A }}"))
	assert.False(t, ContainsPlaceholders("no braces"))
}

func TestLex_RoundTrip(t *testing.T) {
	inputs := []string{
		"Hello {{NAME}} {{#a}}x{{/a}}{{^b}}y{{/b}}{{#each c}}{{.}}{{/each}}",
		"{{{{NAME}}}}",
		"{{#each }}",
	}
	for _, in := range inputs {
		var b strings.Builder
		for _, tok := range lex(in) {
			b.WriteString(tok.raw)
		}
		assert.Equal(t, in, b.String())
	}
}

func TestLex_LongBraceRunsStayLinear(t *testing.T) {
	for _, input := range []string{
		strings.Repeat("{", 1<<20),
		strings.Repeat("{", 1<<20) + "}}",
		strings.Repeat("{{x", 1<<18) + "}}",
	} {
		start := time.Now()
		tokens := lex(input)
		elapsed := time.Since(start)

		var raw strings.Builder
		for _, tok := range tokens {
			raw.WriteString(tok.raw)
		}
		assert.Equal(t, input, raw.String())
		assert.Less(t, elapsed, 3*time.Second, "lexing %d bytes", len(input))
	}

	tokens := lex(strings.Repeat("{", 1000) + "{{NAME}}")
	require.Len(t, tokens, 2)
	assert.Equal(t, tokenVar, tokens[1].kind)
	assert.Equal(t, "NAME", tokens[1].name)
}
