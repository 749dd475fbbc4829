// Package formatters serializes log events for machine consumers.
package formatters

import (
	"encoding/json"

	"github.com/willibrandon/msgtmpl/core"
	"github.com/willibrandon/msgtmpl/internal/capture"
	"github.com/willibrandon/msgtmpl/selflog"
)

// CLEFTimestampFormat is the timestamp layout used in the @t field.
const CLEFTimestampFormat = "2006-01-02T15:04:05.0000000Z"

// FormatCLEF renders event as one line of Compact Log Event Format JSON.
//
// Reserved fields are @t, @mt (the raw template), @m (the rendered message),
// @l, @i (the event id) and @x (the exception). Properties follow under
// their own names; tags are written as a "tags" object unless a property
// already uses that name. A property value that cannot be encoded is
// written as a placeholder string so one bad value never loses the event.
func FormatCLEF(event *core.LogEvent) ([]byte, error) {
	clef := make(map[string]any, len(event.Properties)+6)

	for name, value := range event.Properties {
		if len(name) > 0 && name[0] == '@' {
			name = "@" + name
		}
		clef[name] = encodeValue(name, value)
	}
	if len(event.Tags) > 0 {
		if _, exists := clef["tags"]; !exists {
			clef["tags"] = event.Tags
		}
	}

	clef["@t"] = event.Timestamp.UTC().Format(CLEFTimestampFormat)
	clef["@mt"] = event.MessageTemplate
	clef["@m"] = event.RenderedMessage
	if event.Level != core.InformationLevel {
		clef["@l"] = event.Level.String()
	}
	if event.ID != "" {
		clef["@i"] = event.ID
	}
	if event.Exception != nil {
		clef["@x"] = event.Exception.Error()
	}

	return json.Marshal(clef)
}

func encodeValue(name string, value any) json.RawMessage {
	data, err := marshalSafely(value)
	if err != nil {
		if selflog.IsEnabled() {
			selflog.Printf("[clef] property %s of type %T not serializable: %v", name, value, err)
		}
		data, _ = json.Marshal(capture.Unserializable)
	}
	return data
}

func marshalSafely(value any) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &json.MarshalerError{Err: errPanic{r}}
		}
	}()
	if value == capture.Absent {
		return []byte("null"), nil
	}
	return json.Marshal(value)
}

type errPanic struct{ value any }

func (e errPanic) Error() string {
	return "panic: " + capture.ToText(e.value)
}
