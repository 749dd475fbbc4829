// Package parser tokenizes message templates and binds call-site arguments
// to their placeholders.
//
// A template is literal text interspersed with placeholders of the form
// {Name} or {@Name}, where Name is one or more ASCII letters, digits or
// underscores. Anything else between braces is literal text; there is no
// escaping and no nesting.
//
//	tmpl, err := parser.Parse("User {UserId} bought {@Order}")
//	props := tmpl.Bind([]any{42, order})
//	msg := tmpl.Render(props)
package parser

import (
	"errors"
)

// ErrInvalidTemplate is returned when a template is empty.
var ErrInvalidTemplate = errors.New("message template is required")

// Parse tokenizes template. It fails only when template is empty.
func Parse(template string) (*MessageTemplate, error) {
	if template == "" {
		return nil, ErrInvalidTemplate
	}
	return &MessageTemplate{
		Raw:    template,
		Tokens: tokenize(template),
	}, nil
}

// MustParse is like Parse but panics on error. Use it for package-level
// templates known to be valid.
func MustParse(template string) *MessageTemplate {
	tmpl, err := Parse(template)
	if err != nil {
		panic(err)
	}
	return tmpl
}

// tokenize splits template into text and property tokens. The scan state is
// local so concurrent calls never interfere.
func tokenize(template string) []MessageTemplateToken {
	var tokens []MessageTemplateToken
	textStart := 0

	for i := 0; i < len(template); i++ {
		if template[i] != '{' {
			continue
		}

		end, ok := matchPlaceholder(template, i)
		if !ok {
			continue
		}

		if i > textStart {
			tokens = append(tokens, &TextToken{Text: template[textStart:i]})
		}
		tokens = append(tokens, newPropertyToken(template[i:end]))

		textStart = end
		i = end - 1
	}

	if textStart < len(template) {
		tokens = append(tokens, &TextToken{Text: template[textStart:]})
	}
	return tokens
}

// matchPlaceholder reports whether a placeholder starts at the '{' at
// position start and returns the index just past its closing '}'.
func matchPlaceholder(template string, start int) (int, bool) {
	i := start + 1
	if i < len(template) && template[i] == '@' {
		i++
	}

	nameStart := i
	for i < len(template) && isWordChar(template[i]) {
		i++
	}

	if i == nameStart || i >= len(template) || template[i] != '}' {
		return 0, false
	}
	return i + 1, true
}

func newPropertyToken(raw string) *PropertyToken {
	name := raw[1 : len(raw)-1]
	destructure := false
	if name[0] == '@' {
		destructure = true
		name = name[1:]
	}
	return &PropertyToken{
		PropertyName: name,
		Destructure:  destructure,
		Raw:          raw,
	}
}

func isWordChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// ExtractPropertyNames returns the distinct placeholder names of template in
// order of first appearance.
func ExtractPropertyNames(template string) []string {
	tmpl, err := Parse(template)
	if err != nil {
		return []string{}
	}
	return tmpl.PropertyNames()
}
