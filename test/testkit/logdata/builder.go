package logdata

import (
	"math"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/sdk/instrumentation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/trace"
)

type Builder struct {
	ld LogData
}

// NewBuilder starts a LogData for the given resource and scope. A nil resource is replaced by the empty resource.
func NewBuilder(res *resource.Resource, scope instrumentation.Scope) *Builder {
	if res == nil {
		res = resource.Empty()
	}

	return &Builder{
		ld: LogData{
			Resource:             res,
			InstrumentationScope: scope,
			Attributes:           *attribute.EmptySet(),
		},
	}
}

// SetEpoch sets the event time given as a count of unit since the Unix epoch.
// Results beyond the int64 nanosecond range saturate at math.MaxInt64 or math.MinInt64.
func (b *Builder) SetEpoch(value int64, unit time.Duration) *Builder {
	b.ld.EpochNanos = saturatingMul(value, int64(unit))
	return b
}

func saturatingMul(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}

	product := a * b
	if product/b == a && !(a == -1 && b == math.MinInt64) && !(b == -1 && a == math.MinInt64) {
		return product
	}

	if (a < 0) != (b < 0) {
		return math.MinInt64
	}

	return math.MaxInt64
}

func (b *Builder) SetTimestamp(ts time.Time) *Builder {
	b.ld.EpochNanos = ts.UnixNano()
	return b
}

func (b *Builder) SetSpanContext(sc trace.SpanContext) *Builder {
	b.ld.SpanContext = sc
	return b
}

func (b *Builder) SetSeverity(severity log.Severity) *Builder {
	b.ld.Severity = severity
	return b
}

func (b *Builder) SetSeverityText(text string) *Builder {
	b.ld.SeverityText = text
	return b
}

func (b *Builder) SetEventName(name string) *Builder {
	b.ld.EventName = name
	return b
}

// SetName sets the event name.
//
// Deprecated: use SetEventName.
func (b *Builder) SetName(name string) *Builder {
	return b.SetEventName(name)
}

func (b *Builder) SetBody(body string) *Builder {
	b.ld.Body = body
	return b
}

func (b *Builder) SetAttributes(attrs attribute.Set) *Builder {
	b.ld.Attributes = attrs
	return b
}

func (b *Builder) Build() LogData {
	return b.ld
}
