package render

type node interface {
	eval(s *state) error
}

type textNode struct {
	text string
}

type varNode struct {
	name string
	raw  string
}

type dotNode struct {
	raw string
}

type sectionNode struct {
	name     string
	inverted bool
	body     []node
}

type eachNode struct {
	name string
	body []node
}

// frame is a block that has been opened but not yet closed
type frame struct {
	open  token
	nodes []node
}

func (f *frame) closes(tok token) bool {
	switch f.open.kind {
	case tokenEach:
		return tok.name == "each"
	case tokenSection, tokenInverted:
		return tok.name == f.open.name
	}
	return false
}

func (f *frame) node() node {
	if f.open.kind == tokenEach {
		return &eachNode{name: f.open.name, body: f.nodes}
	}
	return &sectionNode{
		name:     f.open.name,
		inverted: f.open.kind == tokenInverted,
		body:     f.nodes,
	}
}

// Template is parsed template content
type Template struct {
	nodes []node
}

// Parse builds a template from content. It never fails: a close tag that
// does not match the innermost open block is kept as text, and blocks left
// open at the end of input are emitted as their opening tag followed by
// their body.
func Parse(content string) *Template {
	root := &frame{}
	stack := []*frame{root}
	top := func() *frame { return stack[len(stack)-1] }

	for _, tok := range lex(content) {
		switch tok.kind {
		case tokenText:
			top().nodes = append(top().nodes, &textNode{text: tok.raw})
		case tokenVar:
			top().nodes = append(top().nodes, &varNode{name: tok.name, raw: tok.raw})
		case tokenDot:
			top().nodes = append(top().nodes, &dotNode{raw: tok.raw})
		case tokenSection, tokenInverted, tokenEach:
			stack = append(stack, &frame{open: tok})
		case tokenClose:
			if len(stack) > 1 && top().closes(tok) {
				done := top()
				stack = stack[:len(stack)-1]
				top().nodes = append(top().nodes, done.node())
				continue
			}
			top().nodes = append(top().nodes, &textNode{text: tok.raw})
		}
	}

	for len(stack) > 1 {
		open := top()
		stack = stack[:len(stack)-1]
		parent := top()
		parent.nodes = append(parent.nodes, &textNode{text: open.open.raw})
		parent.nodes = append(parent.nodes, open.nodes...)
	}

	return &Template{nodes: mergeText(root.nodes)}
}

// mergeText joins adjacent text nodes
func mergeText(nodes []node) []node {
	out := make([]node, 0, len(nodes))
	for _, n := range nodes {
		if t, ok := n.(*textNode); ok && len(out) > 0 {
			if prev, ok := out[len(out)-1].(*textNode); ok {
				out[len(out)-1] = &textNode{text: prev.text + t.text}
				continue
			}
		}
		out = append(out, n)
	}
	return out
}
