// Package logdata holds the read-only log-record model the test kit asserts on,
// together with decoders from OTLP pdata, OTLP JSON Lines and the OTel Go log SDK.
package logdata

import (
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/sdk/instrumentation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/trace"
)

// LogData is a single log record together with the resource and instrumentation scope that produced it.
// It is treated as immutable once built.
type LogData struct {
	Resource             *resource.Resource
	InstrumentationScope instrumentation.Scope
	EpochNanos           int64
	SpanContext          trace.SpanContext
	Severity             log.Severity
	SeverityText         string
	EventName            string
	Body                 string
	Attributes           attribute.Set
}

// Name returns the event name.
//
// Deprecated: use the EventName field.
func (ld LogData) Name() string {
	return ld.EventName
}

// Timestamp returns EpochNanos as a time.Time in UTC.
func (ld LogData) Timestamp() time.Time {
	return time.Unix(0, ld.EpochNanos).UTC()
}

// ResourceAttributes returns the resource attributes as a raw map, or an empty map if there is no resource.
func (ld LogData) ResourceAttributes() map[string]any {
	if ld.Resource == nil {
		return map[string]any{}
	}

	return AsRaw(ld.Resource.Set())
}

// AsRaw converts an attribute set into a map keyed by attribute name, holding the plain Go values.
func AsRaw(set *attribute.Set) map[string]any {
	raw := make(map[string]any, set.Len())

	iter := set.Iter()
	for iter.Next() {
		kv := iter.Attribute()
		raw[string(kv.Key)] = kv.Value.AsInterface()
	}

	return raw
}

// ResourceEqual reports whether both resources carry the same attributes and schema URL. Nil is the empty resource.
func ResourceEqual(a, b *resource.Resource) bool {
	if a == nil {
		a = resource.Empty()
	}

	if b == nil {
		b = resource.Empty()
	}

	return a.Equal(b) && a.SchemaURL() == b.SchemaURL()
}

// ScopeEqual reports whether both scopes share name, version and schema URL.
func ScopeEqual(a, b instrumentation.Scope) bool {
	return a.Name == b.Name && a.Version == b.Version && a.SchemaURL == b.SchemaURL
}
