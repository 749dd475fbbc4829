// Package core provides the fundamental interfaces and types for msgtmpl.
package core

// Formattable is implemented by date-like values that have a canonical display
// text. Such values are captured by reference even by plain {Name} placeholders
// and render as the text returned by DisplayText.
type Formattable interface {
	// DisplayText returns the display form, ISO-8601 for dates.
	DisplayText() string
}

// Structured marks a type as a composite value. Composite values bound to a
// {@Name} placeholder are captured by reference and render as truncated JSON;
// bound to {Name} they are captured as their default string conversion.
//
// Structs, maps, slices, arrays and pointers to them are composite without
// implementing this interface. Structured lets scalar-backed types such as
// named strings opt in.
type Structured interface {
	// StructuredValue is a marker method.
	StructuredValue()
}
