package msgtmpl

import (
	"context"
	"maps"
)

type logContextKey struct{}

// logContextValue is never mutated after it is stored in a context.
type logContextValue struct {
	properties map[string]any
	tags       map[string]string
}

func fromContext(ctx context.Context) *logContextValue {
	if ctx == nil {
		return nil
	}
	v, _ := ctx.Value(logContextKey{}).(*logContextValue)
	return v
}

func (v *logContextValue) clone() *logContextValue {
	if v == nil {
		return &logContextValue{
			properties: map[string]any{},
			tags:       map[string]string{},
		}
	}
	return &logContextValue{
		properties: maps.Clone(v.properties),
		tags:       maps.Clone(v.tags),
	}
}

// PushProperty returns a context carrying name=value in addition to the
// properties already pushed. Loggers obtained through WithContext add these
// properties to every event unless the logger or the template binds the
// same name.
func PushProperty(ctx context.Context, name string, value any) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	next := fromContext(ctx).clone()
	next.properties[name] = value
	return context.WithValue(ctx, logContextKey{}, next)
}

// PushTags returns a context carrying tags merged over the tags already
// pushed. Use it at the start of a request or job so every event logged for
// it is tagged the same way.
//
//	ctx = msgtmpl.PushTags(ctx, map[string]string{"functionName": "sync-orders"})
//	logger.WithContext(ctx).Info("Fetched {count} orders", n)
func PushTags(ctx context.Context, tags map[string]string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	next := fromContext(ctx).clone()
	maps.Copy(next.tags, tags)
	return context.WithValue(ctx, logContextKey{}, next)
}

// TagsFromContext returns a copy of the tags pushed onto ctx.
func TagsFromContext(ctx context.Context) map[string]string {
	if v := fromContext(ctx); v != nil {
		return maps.Clone(v.tags)
	}
	return nil
}

// PropertiesFromContext returns a copy of the properties pushed onto ctx.
func PropertiesFromContext(ctx context.Context) map[string]any {
	if v := fromContext(ctx); v != nil {
		return maps.Clone(v.properties)
	}
	return nil
}
