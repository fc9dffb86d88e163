package render

import (
	"regexp"
	"strings"
)

type tokenKind int

const (
	tokenText tokenKind = iota
	tokenVar
	tokenDot
	tokenSection
	tokenInverted
	tokenEach
	tokenClose
)

type token struct {
	kind tokenKind
	name string
	// raw is the exact source text of the token
	raw string
}

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// Order matters: "{{#each x}}" must be tried before the plain section form.
var tagPatterns = []struct {
	kind tokenKind
	re   *regexp.Regexp
}{
	{tokenEach, regexp.MustCompile(`^\{\{#each\s+(\w+)\}\}`)},
	{tokenSection, regexp.MustCompile(`^\{\{#(\w+)\}\}`)},
	{tokenInverted, regexp.MustCompile(`^\{\{\^(\w+)\}\}`)},
	{tokenClose, regexp.MustCompile(`^\{\{/(\w+)\}\}`)},
	{tokenDot, regexp.MustCompile(`^\{\{\.\}\}`)},
	{tokenVar, regexp.MustCompile(`^\{\{(\w+)\}\}`)},
}

// lex splits content into text and tag tokens. Concatenating the raw text
// of every token reproduces content exactly.
func lex(content string) []token {
	var tokens []token
	var text strings.Builder

	flush := func() {
		if text.Len() > 0 {
			tokens = append(tokens, token{kind: tokenText, raw: text.String()})
			text.Reset()
		}
	}

	// nextClose is the offset of the first "}}" at or after pos, -1 when
	// there is none left. It is only searched for again once pos passes it.
	nextClose := -2
	pos := 0
	for pos < len(content) {
		idx := strings.Index(content[pos:], openDelim)
		if idx < 0 {
			text.WriteString(content[pos:])
			break
		}
		text.WriteString(content[pos : pos+idx])
		pos += idx

		if nextClose != -1 && nextClose < pos {
			nextClose = -1
			if i := strings.Index(content[pos:], closeDelim); i >= 0 {
				nextClose = pos + i
			}
		}

		tok, ok := matchTag(content[pos:], nextClose >= 0)
		if !ok {
			// not a tag: keep one brace and rescan from the next byte
			text.WriteByte(content[pos])
			pos++
			continue
		}
		flush()
		tokens = append(tokens, tok)
		pos += len(tok.raw)
	}
	flush()
	return tokens
}

func matchTag(s string, closed bool) (token, bool) {
	if !closed {
		return token{}, false
	}
	for _, p := range tagPatterns {
		m := p.re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		tok := token{kind: p.kind, raw: m[0]}
		if len(m) > 1 {
			tok.name = m[1]
		}
		return tok, true
	}
	return token{}, false
}

// ContainsPlaceholders reports whether text still contains any tag syntax
func ContainsPlaceholders(text string) bool {
	if !strings.Contains(text, openDelim) {
		return false
	}
	for _, tok := range lex(text) {
		if tok.kind != tokenText {
			return true
		}
	}
	return false
}
