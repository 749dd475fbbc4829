package parser

import "github.com/willibrandon/msgtmpl/internal/capture"

// MessageTemplateToken is a single token of a parsed message template.
type MessageTemplateToken interface {
	// Render returns the token's text given the bound properties.
	Render(properties map[string]any) string
}

// TextToken represents literal text in a message template.
type TextToken struct {
	Text string
}

// Render returns the literal text.
func (t *TextToken) Render(map[string]any) string {
	return t.Text
}

// PropertyToken represents a {Name} or {@Name} placeholder.
type PropertyToken struct {
	// PropertyName is the identifier between the braces, without the '@'.
	PropertyName string

	// Destructure is true when the placeholder was written as {@Name}.
	Destructure bool

	// Raw is the placeholder exactly as written, braces included. It is
	// emitted unchanged when no value is bound.
	Raw string
}

// Render returns the text of the bound value, or Raw when the property is
// not bound.
func (p *PropertyToken) Render(properties map[string]any) string {
	if value, ok := properties[p.PropertyName]; ok {
		return capture.ToText(value)
	}
	return p.Raw
}
