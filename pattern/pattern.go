// Package pattern matches request paths against swagger path templates such
// as "/pets/{pet_id}".
package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

// placeholderPattern finds `{name}` placeholders in a path template.
var placeholderPattern = regexp.MustCompile(`\{([a-z_]+)\}`)

// Pattern is a compiled path template. It is immutable and safe for
// concurrent use.
type Pattern struct {
	template string

	// nil for literal templates
	regexp *regexp.Regexp

	// placeholder names in the order they appear in the template
	names []string
}

// Compile compiles a path template.
//
// A template containing both `{` and `}` is a variable template: every
// `{name}` placeholder (name made of lowercase letters and underscores)
// matches one or more word characters, and the rest of the template matches
// literally. Any other template only matches a path byte-for-byte.
func Compile(template string) (*Pattern, error) {
	p := &Pattern{template: template}
	if !isVariable(template) {
		return p, nil
	}

	var expr strings.Builder
	expr.WriteString(`\A`)

	last := 0
	for _, loc := range placeholderPattern.FindAllStringSubmatchIndex(template, -1) {
		expr.WriteString(regexp.QuoteMeta(template[last:loc[0]]))
		expr.WriteString(`(\w+)`)
		p.names = append(p.names, template[loc[2]:loc[3]])
		last = loc[1]
	}
	expr.WriteString(regexp.QuoteMeta(template[last:]))
	expr.WriteString(`\z`)

	re, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, fmt.Errorf("error compiling path template %s: %w", template, err)
	}
	p.regexp = re
	return p, nil
}

// Matches reports whether path matches template. It compiles the template on
// every call; routers should hold on to compiled patterns instead.
func Matches(path, template string) bool {
	p, err := Compile(template)
	if err != nil {
		return false
	}
	return p.Match(path)
}

// Match reports whether path matches the template.
func (p *Pattern) Match(path string) bool {
	if p.regexp == nil {
		return path == p.template
	}
	return p.regexp.MatchString(path)
}

// Value extracts the value of the named placeholder from path. It returns
// false when the template has no such placeholder or path doesn't match.
func (p *Pattern) Value(path, name string) (string, bool) {
	if p.regexp == nil {
		return "", false
	}

	index := -1
	for i, placeholder := range p.names {
		if placeholder == name {
			index = i
			break
		}
	}
	if index < 0 {
		return "", false
	}

	matches := p.regexp.FindStringSubmatch(path)
	if matches == nil {
		return "", false
	}
	return matches[index+1], true
}

// Names returns the placeholder names of the template in order.
func (p *Pattern) Names() []string {
	return append([]string(nil), p.names...)
}

// Template returns the template the pattern was compiled from.
func (p *Pattern) Template() string {
	return p.template
}

// String returns the expression used for matching, or the template itself for
// literal templates.
func (p *Pattern) String() string {
	if p.regexp == nil {
		return p.template
	}
	return p.regexp.String()
}

func isVariable(template string) bool {
	return strings.Contains(template, "{") && strings.Contains(template, "}")
}
