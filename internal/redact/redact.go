package redact

import (
	"fmt"
	"regexp"
	"strings"
)

type compiledRule struct {
	name  string
	re    *regexp.Regexp
	group int
}

// Redactor scrubs secrets from text. A disabled Redactor returns its input
// untouched. The zero value is not usable; call New or NewWithRules.
type Redactor struct {
	enabled bool
	keys    []compiledRule
	tokens  []compiledRule
}

var defaultRules = mustCompile(DefaultKeyRules, DefaultTokenRules)

// New returns a Redactor over the default rule tables.
func New(enabled bool) *Redactor {
	return &Redactor{enabled: enabled, keys: defaultRules.keys, tokens: defaultRules.tokens}
}

// NewWithRules compiles custom rule tables.
func NewWithRules(enabled bool, keys []KeyRule, tokens []TokenRule) (*Redactor, error) {
	r, err := compile(keys, tokens)
	if err != nil {
		return nil, err
	}
	r.enabled = enabled
	return r, nil
}

// Enabled reports whether redaction is switched on.
func (r *Redactor) Enabled() bool {
	return r.enabled
}

// Redact returns text with secrets replaced by Marker, and the number of
// replacements made. Key/value assignments are handled before token shapes.
func (r *Redactor) Redact(text string) (string, int) {
	if !r.enabled || text == "" {
		return text, 0
	}
	hits := 0
	for _, rule := range r.keys {
		var n int
		text, n = replace(rule, text)
		hits += n
	}
	for _, rule := range r.tokens {
		var n int
		text, n = replace(rule, text)
		hits += n
	}
	return text, hits
}

// keyExpr builds the line-oriented assignment pattern for one key name. The
// value group starts at the first non-blank character after "=" and ends at
// the last non-blank character of the line.
func keyExpr(fragment string) string {
	return `(?im)^([ \t]*(?:export[ \t]+)?(?:[a-z0-9_.-]*[_.-])?(?:` + fragment +
		`)[ \t]*=[ \t]*)([^=\s](?:[^\r\n]*\S)?)`
}

// replace substitutes the rule's group (or whole match) with Marker. A span
// that already reads Marker is left alone and not counted.
func replace(rule compiledRule, text string) (string, int) {
	matches := rule.re.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, 0
	}
	var b strings.Builder
	b.Grow(len(text))
	last, hits := 0, 0
	for _, m := range matches {
		start, end := m[2*rule.group], m[2*rule.group+1]
		if start < 0 || text[start:end] == Marker {
			continue
		}
		b.WriteString(text[last:start])
		b.WriteString(Marker)
		last = end
		hits++
	}
	if hits == 0 {
		return text, 0
	}
	b.WriteString(text[last:])
	return b.String(), hits
}

func compile(keys []KeyRule, tokens []TokenRule) (*Redactor, error) {
	r := &Redactor{}
	for _, k := range keys {
		re, err := regexp.Compile(keyExpr(k.Pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid key rule %q: %w", k.Name, err)
		}
		r.keys = append(r.keys, compiledRule{name: k.Name, re: re, group: 2})
	}
	for _, t := range tokens {
		re, err := regexp.Compile(t.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid token rule %q: %w", t.Name, err)
		}
		if t.Group > re.NumSubexp() {
			return nil, fmt.Errorf("token rule %q: group %d out of range", t.Name, t.Group)
		}
		r.tokens = append(r.tokens, compiledRule{name: t.Name, re: re, group: t.Group})
	}
	return r, nil
}

func mustCompile(keys []KeyRule, tokens []TokenRule) *Redactor {
	r, err := compile(keys, tokens)
	if err != nil {
		panic(err)
	}
	return r
}
