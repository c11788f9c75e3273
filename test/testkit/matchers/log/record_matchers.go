package log

import (
	"fmt"
	"time"

	"github.com/onsi/gomega"
	"github.com/onsi/gomega/types"
	otellog "go.opentelemetry.io/otel/log"

	"github.com/kyma-project/telemetry-testkit/test/testkit/logdata"
)

// HaveResourceAttributes extracts resource attributes from LogData and applies the matcher to them.
func HaveResourceAttributes(matcher types.GomegaMatcher) types.GomegaMatcher {
	return gomega.WithTransform(func(ld logdata.LogData) map[string]any {
		return ld.ResourceAttributes()
	}, matcher)
}

// HaveScopeName extracts scope name from LogData and applies the matcher to it.
func HaveScopeName(matcher types.GomegaMatcher) types.GomegaMatcher {
	return gomega.WithTransform(func(ld logdata.LogData) string {
		return ld.InstrumentationScope.Name
	}, matcher)
}

// HaveScopeVersion extracts scope version from LogData and applies the matcher to it.
func HaveScopeVersion(matcher types.GomegaMatcher) types.GomegaMatcher {
	return gomega.WithTransform(func(ld logdata.LogData) string {
		return ld.InstrumentationScope.Version
	}, matcher)
}

func HaveEpochNanos(matcher types.GomegaMatcher) types.GomegaMatcher {
	return gomega.WithTransform(func(ld logdata.LogData) int64 { return ld.EpochNanos }, matcher)
}

func HaveTimestamp(matcher types.GomegaMatcher) types.GomegaMatcher {
	return gomega.WithTransform(func(ld logdata.LogData) time.Time { return ld.Timestamp() }, matcher)
}

func HaveTraceID(matcher types.GomegaMatcher) types.GomegaMatcher {
	return gomega.WithTransform(func(ld logdata.LogData) string { return ld.SpanContext.TraceID().String() }, matcher)
}

func HaveSpanID(matcher types.GomegaMatcher) types.GomegaMatcher {
	return gomega.WithTransform(func(ld logdata.LogData) string { return ld.SpanContext.SpanID().String() }, matcher)
}

func HaveSeverity(matcher types.GomegaMatcher) types.GomegaMatcher {
	return gomega.WithTransform(func(ld logdata.LogData) otellog.Severity { return ld.Severity }, matcher)
}

func HaveSeverityText(matcher types.GomegaMatcher) types.GomegaMatcher {
	return gomega.WithTransform(func(ld logdata.LogData) string { return ld.SeverityText }, matcher)
}

func HaveEventName(matcher types.GomegaMatcher) types.GomegaMatcher {
	return gomega.WithTransform(func(ld logdata.LogData) string { return ld.EventName }, matcher)
}

func HaveBody(matcher types.GomegaMatcher) types.GomegaMatcher {
	return gomega.WithTransform(func(ld logdata.LogData) string { return ld.Body }, matcher)
}

// HaveAttributes extracts log record attributes from LogData as plain Go values and applies the matcher to them.
func HaveAttributes(matcher types.GomegaMatcher) types.GomegaMatcher {
	return gomega.WithTransform(func(ld logdata.LogData) map[string]any {
		return logdata.AsRaw(&ld.Attributes)
	}, matcher)
}

// HaveAttribute succeeds if the record has the attribute built by logdata.Attr(key, values...),
// so HaveAttribute("temperature", 30) matches an INT64 attribute regardless of the Go integer width used here.
func HaveAttribute(key string, values ...any) types.GomegaMatcher {
	expected := logdata.Attr(key, values...)

	return gomega.WithTransform(func(ld logdata.LogData) (map[string]any, error) {
		if !expected.Valid() {
			return nil, fmt.Errorf("HaveAttribute has no attribute representation for %q: %v", key, values)
		}

		return logdata.AsRaw(&ld.Attributes), nil
	}, gomega.HaveKeyWithValue(key, expected.Value.AsInterface()))
}
