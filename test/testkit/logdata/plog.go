package logdata

import (
	"go.opentelemetry.io/collector/pdata/pcommon"
	"go.opentelemetry.io/collector/pdata/plog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/sdk/instrumentation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/trace"
)

// EventNameAttribute carries the event name in pdata versions that lack a dedicated field.
const EventNameAttribute = "event.name"

// FromLogs flattens all log records of ld, in resource, scope, record order.
func FromLogs(ld plog.Logs) []LogData {
	var logData []LogData

	for i := range ld.ResourceLogs().Len() {
		resourceLogs := ld.ResourceLogs().At(i)
		res := resource.NewWithAttributes(resourceLogs.SchemaUrl(), toAttributes(resourceLogs.Resource().Attributes())...)

		for j := range resourceLogs.ScopeLogs().Len() {
			scopeLogs := resourceLogs.ScopeLogs().At(j)
			scope := instrumentation.Scope{
				Name:      scopeLogs.Scope().Name(),
				Version:   scopeLogs.Scope().Version(),
				SchemaURL: scopeLogs.SchemaUrl(),
			}

			for k := range scopeLogs.LogRecords().Len() {
				logData = append(logData, fromLogRecord(res, scope, scopeLogs.LogRecords().At(k)))
			}
		}
	}

	return logData
}

// FromLogRecord converts a single pdata log record.
// A zero timestamp falls back to the observed timestamp.
func FromLogRecord(res pcommon.Resource, scope pcommon.InstrumentationScope, lr plog.LogRecord) LogData {
	return fromLogRecord(
		resource.NewSchemaless(toAttributes(res.Attributes())...),
		instrumentation.Scope{Name: scope.Name(), Version: scope.Version()},
		lr,
	)
}

func fromLogRecord(res *resource.Resource, scope instrumentation.Scope, lr plog.LogRecord) LogData {
	ts := lr.Timestamp()
	if ts == 0 {
		ts = lr.ObservedTimestamp()
	}

	var (
		attrs     []attribute.KeyValue
		eventName string
	)

	lr.Attributes().Range(func(k string, v pcommon.Value) bool {
		if k == EventNameAttribute && v.Type() == pcommon.ValueTypeStr {
			eventName = v.Str()
			return true
		}

		if kv, ok := toAttribute(k, v); ok {
			attrs = append(attrs, kv)
		}

		return true
	})

	return LogData{
		Resource:             res,
		InstrumentationScope: scope,
		EpochNanos:           int64(ts), //nolint:gosec // pdata timestamps fit into int64 until 2262
		SpanContext: trace.NewSpanContext(trace.SpanContextConfig{
			TraceID:    trace.TraceID(lr.TraceID()),
			SpanID:     trace.SpanID(lr.SpanID()),
			TraceFlags: trace.TraceFlags(byte(lr.Flags())),
		}),
		Severity:     log.Severity(lr.SeverityNumber()),
		SeverityText: lr.SeverityText(),
		EventName:    eventName,
		Body:         lr.Body().AsString(),
		Attributes:   attribute.NewSet(attrs...),
	}
}

// ToLogs encodes log data as pdata, grouping records that share resource and scope.
// The trace state has no pdata representation and is dropped.
func ToLogs(logData ...LogData) plog.Logs {
	ld := plog.NewLogs()

	type group struct {
		res   *resource.Resource
		scope instrumentation.Scope
		sl    plog.ScopeLogs
	}

	var groups []group

	for _, data := range logData {
		var (
			target plog.LogRecordSlice
			found  bool
		)

		for _, g := range groups {
			if ResourceEqual(g.res, data.Resource) && ScopeEqual(g.scope, data.InstrumentationScope) {
				target, found = g.sl.LogRecords(), true
				break
			}
		}

		if !found {
			rl := ld.ResourceLogs().AppendEmpty()
			if data.Resource != nil {
				rl.SetSchemaUrl(data.Resource.SchemaURL())
				putAttributes(rl.Resource().Attributes(), data.Resource.Set())
			}

			sl := rl.ScopeLogs().AppendEmpty()
			sl.SetSchemaUrl(data.InstrumentationScope.SchemaURL)
			sl.Scope().SetName(data.InstrumentationScope.Name)
			sl.Scope().SetVersion(data.InstrumentationScope.Version)

			groups = append(groups, group{res: data.Resource, scope: data.InstrumentationScope, sl: sl})
			target = sl.LogRecords()
		}

		putLogRecord(target.AppendEmpty(), data)
	}

	return ld
}

func putLogRecord(lr plog.LogRecord, data LogData) {
	lr.SetTimestamp(pcommon.Timestamp(data.EpochNanos)) //nolint:gosec // negative epochs are not representable in OTLP
	lr.SetTraceID(pcommon.TraceID(data.SpanContext.TraceID()))
	lr.SetSpanID(pcommon.SpanID(data.SpanContext.SpanID()))
	lr.SetFlags(plog.LogRecordFlags(data.SpanContext.TraceFlags()))
	lr.SetSeverityNumber(plog.SeverityNumber(data.Severity))
	lr.SetSeverityText(data.SeverityText)
	lr.Body().SetStr(data.Body)

	putAttributes(lr.Attributes(), &data.Attributes)

	if data.EventName != "" {
		lr.Attributes().PutStr(EventNameAttribute, data.EventName)
	}
}

func toAttributes(m pcommon.Map) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, m.Len())

	m.Range(func(k string, v pcommon.Value) bool {
		if kv, ok := toAttribute(k, v); ok {
			attrs = append(attrs, kv)
		}

		return true
	})

	return attrs
}

// toAttribute maps a pdata value onto the attribute model. Maps, bytes and mixed slices have no attribute
// counterpart and are kept as their string rendering. Empty values are skipped.
func toAttribute(k string, v pcommon.Value) (attribute.KeyValue, bool) {
	key := attribute.Key(k)

	switch v.Type() {
	case pcommon.ValueTypeStr:
		return key.String(v.Str()), true
	case pcommon.ValueTypeBool:
		return key.Bool(v.Bool()), true
	case pcommon.ValueTypeInt:
		return key.Int64(v.Int()), true
	case pcommon.ValueTypeDouble:
		return key.Float64(v.Double()), true
	case pcommon.ValueTypeSlice:
		return sliceToAttribute(key, v.Slice()), true
	case pcommon.ValueTypeEmpty:
		return attribute.KeyValue{}, false
	default:
		return key.String(v.AsString()), true
	}
}

// sliceToAttribute keeps homogeneous slices typed. An empty slice carries no element type and becomes an empty
// STRINGSLICE.
func sliceToAttribute(key attribute.Key, s pcommon.Slice) attribute.KeyValue {
	values := make([]any, 0, s.Len())

	for i := range s.Len() {
		elem := s.At(i)
		switch elem.Type() {
		case pcommon.ValueTypeStr:
			values = append(values, elem.Str())
		case pcommon.ValueTypeBool:
			values = append(values, elem.Bool())
		case pcommon.ValueTypeInt:
			values = append(values, elem.Int())
		case pcommon.ValueTypeDouble:
			values = append(values, elem.Double())
		default:
			return key.String(sliceString(s))
		}
	}

	kv := Attr(string(key), values)
	if !kv.Valid() {
		return key.String(sliceString(s))
	}

	return kv
}

func sliceString(s pcommon.Slice) string {
	raw := pcommon.NewValueEmpty()
	s.CopyTo(raw.SetEmptySlice())

	return raw.AsString()
}

func putAttributes(m pcommon.Map, set *attribute.Set) {
	iter := set.Iter()
	for iter.Next() {
		kv := iter.Attribute()
		k := string(kv.Key)

		switch kv.Value.Type() {
		case attribute.BOOL:
			m.PutBool(k, kv.Value.AsBool())
		case attribute.INT64:
			m.PutInt(k, kv.Value.AsInt64())
		case attribute.FLOAT64:
			m.PutDouble(k, kv.Value.AsFloat64())
		case attribute.STRING:
			m.PutStr(k, kv.Value.AsString())
		case attribute.BOOLSLICE:
			s := m.PutEmptySlice(k)
			for _, b := range kv.Value.AsBoolSlice() {
				s.AppendEmpty().SetBool(b)
			}
		case attribute.INT64SLICE:
			s := m.PutEmptySlice(k)
			for _, n := range kv.Value.AsInt64Slice() {
				s.AppendEmpty().SetInt(n)
			}
		case attribute.FLOAT64SLICE:
			s := m.PutEmptySlice(k)
			for _, f := range kv.Value.AsFloat64Slice() {
				s.AppendEmpty().SetDouble(f)
			}
		case attribute.STRINGSLICE:
			s := m.PutEmptySlice(k)
			for _, str := range kv.Value.AsStringSlice() {
				s.AppendEmpty().SetStr(str)
			}
		}
	}
}
