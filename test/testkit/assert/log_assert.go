package assert

import (
	"fmt"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/sdk/instrumentation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/trace"

	"github.com/kyma-project/telemetry-testkit/test/testkit/logdata"
)

type LogAssert struct {
	t      TestingT
	actual logdata.LogData
}

// That starts an assertion chain on a single log record.
func That(t TestingT, actual logdata.LogData) *LogAssert {
	return &LogAssert{t: t, actual: actual}
}

func (a *LogAssert) HasResource(expected *resource.Resource) *LogAssert {
	helper(a.t)

	if !logdata.ResourceEqual(expected, a.actual.Resource) {
		failMismatch(a.t, "resource", describeResource(expected), describeResource(a.actual.Resource),
			attributesDiff(resourceSet(expected), resourceSet(a.actual.Resource)))
	}

	return a
}

func (a *LogAssert) HasInstrumentationScope(expected instrumentation.Scope) *LogAssert {
	helper(a.t)

	if !logdata.ScopeEqual(expected, a.actual.InstrumentationScope) {
		failMismatch(a.t, "instrumentation scope", describeScope(expected), describeScope(a.actual.InstrumentationScope))
	}

	return a
}

func (a *LogAssert) HasEpochNanos(expected int64) *LogAssert {
	helper(a.t)
	require.Equal(a.t, expected, a.actual.EpochNanos, "unexpected epoch nanos")

	return a
}

func (a *LogAssert) HasTimestamp(expected time.Time) *LogAssert {
	helper(a.t)

	if expected.UnixNano() != a.actual.EpochNanos {
		failMismatch(a.t, "timestamp", expected.UTC().Format(time.RFC3339Nano), a.actual.Timestamp().Format(time.RFC3339Nano))
	}

	return a
}

func (a *LogAssert) HasSpanContext(expected trace.SpanContext) *LogAssert {
	helper(a.t)

	if !expected.Equal(a.actual.SpanContext) {
		failMismatch(a.t, "span context", describeSpanContext(expected), describeSpanContext(a.actual.SpanContext))
	}

	return a
}

// HasTraceID compares the lower-case hex encoding of the trace ID.
func (a *LogAssert) HasTraceID(expected string) *LogAssert {
	helper(a.t)
	require.Equal(a.t, expected, a.actual.SpanContext.TraceID().String(), "unexpected trace ID")

	return a
}

// HasSpanID compares the lower-case hex encoding of the span ID.
func (a *LogAssert) HasSpanID(expected string) *LogAssert {
	helper(a.t)
	require.Equal(a.t, expected, a.actual.SpanContext.SpanID().String(), "unexpected span ID")

	return a
}

func (a *LogAssert) HasSeverity(expected log.Severity) *LogAssert {
	helper(a.t)

	if expected != a.actual.Severity {
		failMismatch(a.t, "severity", describeSeverity(expected), describeSeverity(a.actual.Severity))
	}

	return a
}

func (a *LogAssert) HasSeverityText(expected string) *LogAssert {
	helper(a.t)
	require.Equal(a.t, expected, a.actual.SeverityText, "unexpected severity text")

	return a
}

func (a *LogAssert) HasEventName(expected string) *LogAssert {
	helper(a.t)
	require.Equal(a.t, expected, a.actual.EventName, "unexpected event name")

	return a
}

// HasName compares the event name.
//
// Deprecated: use HasEventName.
func (a *LogAssert) HasName(expected string) *LogAssert {
	helper(a.t)
	return a.HasEventName(expected)
}

func (a *LogAssert) HasBody(expected string) *LogAssert {
	helper(a.t)
	require.Equal(a.t, expected, a.actual.Body, "unexpected body")

	return a
}

// HasAttributes requires the record attributes to equal expected: same keys, types and values, nothing more.
func (a *LogAssert) HasAttributes(expected attribute.Set) *LogAssert {
	helper(a.t)
	requireAttributesEqual(a.t, &expected, &a.actual.Attributes)

	return a
}

// HasAttributeEntries is HasAttributes for a set built from entries, usually created with logdata.Attr.
func (a *LogAssert) HasAttributeEntries(entries ...attribute.KeyValue) *LogAssert {
	helper(a.t)
	requireValidEntries(a.t, entries)

	expected := attribute.NewSet(entries...)
	requireAttributesEqual(a.t, &expected, &a.actual.Attributes)

	return a
}

// HasAttributesSatisfying hands the record attributes to fn. Failures reported by fn fail this chain.
func (a *LogAssert) HasAttributesSatisfying(fn func(t TestingT, attrs attribute.Set)) *LogAssert {
	helper(a.t)
	fn(a.t, a.actual.Attributes)

	return a
}

func requireAttributesEqual(t TestingT, expected, actual *attribute.Set) {
	helper(t)

	if !expected.Equals(actual) {
		failMismatch(t, "attributes", describeAttributes(expected), describeAttributes(actual), attributesDiff(expected, actual))
	}
}

func resourceSet(res *resource.Resource) *attribute.Set {
	if res == nil {
		return attribute.EmptySet()
	}

	return res.Set()
}

func describeResource(res *resource.Resource) string {
	if res == nil {
		res = resource.Empty()
	}

	desc := describeAttributes(res.Set())
	if res.SchemaURL() != "" {
		desc += fmt.Sprintf(" schema_url=%s", res.SchemaURL())
	}

	return desc
}

func describeScope(scope instrumentation.Scope) string {
	return fmt.Sprintf("{name=%q version=%q schema_url=%q}", scope.Name, scope.Version, scope.SchemaURL)
}

func describeSpanContext(sc trace.SpanContext) string {
	return fmt.Sprintf("{trace_id=%s span_id=%s flags=%s state=%q}",
		sc.TraceID(), sc.SpanID(), sc.TraceFlags(), sc.TraceState().String())
}

func describeSeverity(severity log.Severity) string {
	return fmt.Sprintf("%s(%d)", logdata.SeverityName(severity), int(severity))
}
