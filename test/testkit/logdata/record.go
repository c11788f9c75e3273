package logdata

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/trace"
)

// FromRecord converts a record handed to an SDK exporter. The record must not be retained by the caller,
// so everything is copied. Records carry no trace state and no event name.
func FromRecord(rec *sdklog.Record) LogData {
	ts := rec.Timestamp()
	if ts.IsZero() {
		ts = rec.ObservedTimestamp()
	}

	attrs := make([]attribute.KeyValue, 0, rec.AttributesLen())
	rec.WalkAttributes(func(kv log.KeyValue) bool {
		if attr, ok := logValueToAttribute(kv.Key, kv.Value); ok {
			attrs = append(attrs, attr)
		}

		return true
	})

	var epochNanos int64
	if !ts.IsZero() {
		epochNanos = ts.UnixNano()
	}

	return LogData{
		Resource:             recordResource(rec),
		InstrumentationScope: rec.InstrumentationScope(),
		EpochNanos:           epochNanos,
		SpanContext: trace.NewSpanContext(trace.SpanContextConfig{
			TraceID:    rec.TraceID(),
			SpanID:     rec.SpanID(),
			TraceFlags: rec.TraceFlags(),
		}),
		Severity:     rec.Severity(),
		SeverityText: rec.SeverityText(),
		Body:         logValueString(rec.Body()),
		Attributes:   attribute.NewSet(attrs...),
	}
}

func recordResource(rec *sdklog.Record) *resource.Resource {
	res := rec.Resource()
	return &res
}

func logValueString(v log.Value) string {
	if v.Kind() == log.KindString {
		return v.AsString()
	}

	if v.Kind() == log.KindEmpty {
		return ""
	}

	return v.String()
}

func logValueToAttribute(k string, v log.Value) (attribute.KeyValue, bool) {
	key := attribute.Key(k)

	switch v.Kind() {
	case log.KindString:
		return key.String(v.AsString()), true
	case log.KindBool:
		return key.Bool(v.AsBool()), true
	case log.KindInt64:
		return key.Int64(v.AsInt64()), true
	case log.KindFloat64:
		return key.Float64(v.AsFloat64()), true
	case log.KindSlice:
		elems := v.AsSlice()
		values := make([]any, 0, len(elems))

		for _, elem := range elems {
			switch elem.Kind() {
			case log.KindString:
				values = append(values, elem.AsString())
			case log.KindBool:
				values = append(values, elem.AsBool())
			case log.KindInt64:
				values = append(values, elem.AsInt64())
			case log.KindFloat64:
				values = append(values, elem.AsFloat64())
			default:
				return key.String(v.String()), true
			}
		}

		if kv := Attr(k, values); kv.Valid() {
			return kv, true
		}

		return key.String(v.String()), true
	case log.KindEmpty:
		return attribute.KeyValue{}, false
	default:
		return key.String(v.String()), true
	}
}
