package render

import (
	"sort"
	"strings"

	"github.com/arthur-debert/fastgen/pkg/errors"
	"github.com/arthur-debert/fastgen/pkg/values"
)

// Output is the result of executing a template
type Output struct {
	Text string
	// Unresolved lists the names left verbatim, sorted and de-duplicated
	Unresolved []string
}

type state struct {
	vars       values.Variables
	out        strings.Builder
	scopes     []values.Value
	unresolved map[string]struct{}
}

// lookup resolves name against the each elements from innermost outwards,
// then against the variables.
func (s *state) lookup(name string) (values.Value, bool) {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if v, ok := s.scopes[i].Field(name); ok && !v.IsAbsent() {
			return v, true
		}
	}
	return s.vars.Lookup(name)
}

func (s *state) evalAll(nodes []node) error {
	for _, n := range nodes {
		if err := n.eval(s); err != nil {
			return err
		}
	}
	return nil
}

func (n *textNode) eval(s *state) error {
	s.out.WriteString(n.text)
	return nil
}

func (n *varNode) eval(s *state) error {
	v, ok := s.lookup(n.name)
	if !ok {
		s.out.WriteString(n.raw)
		s.unresolved[n.name] = struct{}{}
		return nil
	}
	s.out.WriteString(v.String())
	return nil
}

func (n *dotNode) eval(s *state) error {
	if len(s.scopes) == 0 {
		s.out.WriteString(n.raw)
		return nil
	}
	s.out.WriteString(s.scopes[len(s.scopes)-1].String())
	return nil
}

func (n *sectionNode) eval(s *state) error {
	v, _ := s.lookup(n.name)
	if v.Truthy() == n.inverted {
		return nil
	}
	return s.evalAll(n.body)
}

func (n *eachNode) eval(s *state) error {
	v, _ := s.lookup(n.name)
	if v.Kind() != values.KindSequence {
		return nil
	}
	for i, item := range v.Items() {
		if item.Kind() == values.KindSequence {
			return errors.Newf(errors.ErrTemplateStructure,
				"each %q: element %d is a sequence", n.name, i).
				WithDetail("name", n.name).
				WithDetail("index", i)
		}
		s.scopes = append(s.scopes, item)
		err := s.evalAll(n.body)
		s.scopes = s.scopes[:len(s.scopes)-1]
		if err != nil {
			return err
		}
	}
	return nil
}

// Execute renders the template against vars
func (t *Template) Execute(vars values.Variables) (Output, error) {
	s := &state{
		vars:       vars,
		unresolved: make(map[string]struct{}),
	}
	if err := s.evalAll(t.nodes); err != nil {
		return Output{}, err
	}

	names := make([]string, 0, len(s.unresolved))
	for name := range s.unresolved {
		names = append(names, name)
	}
	sort.Strings(names)

	return Output{Text: s.out.String(), Unresolved: names}, nil
}

// Render parses and executes content in one step
func Render(content string, vars values.Variables) (string, error) {
	out, err := Parse(content).Execute(vars)
	if err != nil {
		return "", err
	}
	return out.Text, nil
}
