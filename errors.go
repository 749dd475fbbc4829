package msgtmpl

import (
	"errors"
	"maps"
)

// TemplatedError is an error whose message is a rendered message template.
// The raw template identifies the kind of failure independently of the
// argument values, and the bound properties carry those values for error
// reporters.
type TemplatedError struct {
	message    string
	template   string
	properties map[string]any
	cause      error
}

// NewError renders template with args and returns it as an error.
//
// The first bound argument that is itself an error becomes the cause and is
// returned by Unwrap. If template is empty or formatting fails the error
// message is template unchanged.
//
//	err := msgtmpl.NewError("No data found for id {id}", id)
func NewError(template string, args ...any) *TemplatedError {
	e := &TemplatedError{
		message:  template,
		template: template,
	}

	res, err := Process(template, args...)
	if err == nil {
		e.message = res.RenderedMessage
		e.properties = res.BoundProperties
	}

	for _, arg := range args {
		if cause, ok := arg.(error); ok {
			e.cause = cause
			break
		}
	}
	return e
}

// Error returns the rendered message.
func (e *TemplatedError) Error() string {
	return e.message
}

// MessageTemplate returns the raw template the error was created from.
func (e *TemplatedError) MessageTemplate() string {
	return e.template
}

// Properties returns a copy of the bound properties.
func (e *TemplatedError) Properties() map[string]any {
	return maps.Clone(e.properties)
}

// Unwrap returns the first error argument, if any.
func (e *TemplatedError) Unwrap() error {
	return e.cause
}

// MessageTemplateOf returns the raw template of the first TemplatedError in
// err's chain.
func MessageTemplateOf(err error) (string, bool) {
	var te *TemplatedError
	if errors.As(err, &te) {
		return te.template, true
	}
	return "", false
}
