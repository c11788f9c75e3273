package inmemory

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.opentelemetry.io/otel/attribute"
	otellog "go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/trace"

	"github.com/kyma-project/telemetry-testkit/test/testkit/assert"
	kitlog "github.com/kyma-project/telemetry-testkit/test/testkit/matchers/log"
	"github.com/kyma-project/telemetry-testkit/test/testkit/periodic"
)

var testResource = resource.NewSchemaless(attribute.String("service.name", "sample-app"))

func emit(ctx context.Context, provider *sdklog.LoggerProvider, body string) {
	logger := provider.Logger("io.kyma-project.telemetry/sample", otellog.WithInstrumentationVersion("1.0.0"))

	var rec otellog.Record
	rec.SetSeverity(otellog.SeverityWarn)
	rec.SetSeverityText("warning")
	rec.SetBody(otellog.StringValue(body))
	rec.AddAttributes(otellog.String("bear", "mya"), otellog.Int("temperature", 30))

	logger.Emit(ctx, rec)
}

func spanContext() trace.SpanContext {
	traceID, err := trace.TraceIDFromHex("00000000000000010000000000000002")
	Expect(err).NotTo(HaveOccurred())
	spanID, err := trace.SpanIDFromHex("0000000000000003")
	Expect(err).NotTo(HaveOccurred())

	return trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})
}

var _ = Describe("Exporter", func() {
	var (
		ctx      context.Context
		exporter *Exporter
	)

	BeforeEach(func() {
		ctx = context.Background()
		exporter = NewExporter()
	})

	Context("with a simple processor", func() {
		var provider *sdklog.LoggerProvider

		BeforeEach(func() {
			provider = sdklog.NewLoggerProvider(
				sdklog.WithResource(testResource),
				sdklog.WithProcessor(sdklog.NewSimpleProcessor(exporter)),
			)
		})

		It("should capture emitted records as log data", func() {
			emit(trace.ContextWithSpanContext(ctx, spanContext()), provider, "message")

			logData := exporter.LogData()
			Expect(logData).To(HaveLen(1))

			assert.That(GinkgoT(), logData[0]).
				HasResource(testResource).
				HasSpanContext(spanContext()).
				HasSeverity(otellog.SeverityWarn).
				HasSeverityText("warning").
				HasBody("message").
				HasAttributesSatisfying(func(t assert.TestingT, attrs attribute.Set) {
					assert.Attributes(t, attrs).
						HasSize(2).
						ContainsEntry("bear", "mya").
						ContainsEntry("temperature", 30)
				})

			Expect(logData[0]).To(SatisfyAll(
				kitlog.HaveScopeName(Equal("io.kyma-project.telemetry/sample")),
				kitlog.HaveScopeVersion(Equal("1.0.0")),
			))
		})

		It("should forget records on reset", func() {
			emit(ctx, provider, "message")
			exporter.Reset()
			Expect(exporter.LogData()).To(BeEmpty())

			emit(ctx, provider, "after reset")
			Expect(exporter.LogData()).To(ConsistOf(kitlog.HaveBody(Equal("after reset"))))
		})

		It("should reject exports after shutdown", func() {
			emit(ctx, provider, "message")
			Expect(provider.Shutdown(ctx)).To(Succeed())
			Expect(exporter.LogData()).To(BeEmpty())

			var rec sdklog.Record
			Expect(exporter.Export(ctx, []sdklog.Record{rec})).To(MatchError(ErrShutdown))
		})
	})

	Context("with a batch processor", func() {
		It("should eventually capture emitted records", func() {
			provider := sdklog.NewLoggerProvider(
				sdklog.WithResource(testResource),
				sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter, sdklog.WithExportInterval(periodic.Interval))),
			)
			DeferCleanup(func() {
				Expect(provider.Shutdown(context.Background())).To(Succeed())
			})

			for _, body := range []string{"first", "second", "third"} {
				emit(ctx, provider, body)
			}

			Eventually(exporter.LogData, periodic.TelemetryPollTimeout, periodic.Interval).Should(ConsistOf(
				kitlog.HaveBody(Equal("first")),
				kitlog.HaveBody(Equal("second")),
				kitlog.HaveBody(Equal("third")),
			))
		})
	})

	It("should not capture records emitted after shutdown", func() {
		provider := sdklog.NewLoggerProvider(
			sdklog.WithResource(testResource),
			sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter, sdklog.WithExportInterval(periodic.Interval))),
		)

		emit(ctx, provider, "before")
		Expect(provider.Shutdown(ctx)).To(Succeed())

		emit(ctx, provider, "after")
		Consistently(exporter.LogData, periodic.NegativeCheckTimeout, periodic.Interval).Should(BeEmpty())
	})

	It("should honor a cancelled context", func() {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		Expect(exporter.Export(cancelled, []sdklog.Record{{}})).To(MatchError(context.Canceled))
		Expect(exporter.LogData()).To(BeEmpty())
	})

	It("should keep attributes of directly exported records", func() {
		var rec sdklog.Record
		rec.SetObservedTimestamp(time.Unix(0, 42))

		Expect(exporter.Export(ctx, []sdklog.Record{rec})).To(Succeed())
		Expect(exporter.LogData()).To(ConsistOf(SatisfyAll(
			kitlog.HaveEpochNanos(Equal(int64(42))),
			kitlog.HaveResourceAttributes(BeEmpty()),
			kitlog.HaveAttributes(BeEmpty()),
		)))
	})

	It("should keep slice attributes typed", func() {
		provider := sdklog.NewLoggerProvider(
			sdklog.WithResource(testResource),
			sdklog.WithProcessor(sdklog.NewSimpleProcessor(exporter)),
		)

		var rec otellog.Record
		rec.SetBody(otellog.StringValue("raw"))
		rec.AddAttributes(
			otellog.Slice("colors", otellog.StringValue("red"), otellog.StringValue("blue")),
			otellog.Slice("scores", otellog.Int64Value(0), otellog.Int64Value(1)),
		)
		provider.Logger("io.kyma-project.telemetry/sample").Emit(ctx, rec)

		Expect(exporter.LogData()).To(ConsistOf(SatisfyAll(
			kitlog.HaveBody(Equal("raw")),
			kitlog.HaveAttribute("colors", "red", "blue"),
			kitlog.HaveAttribute("scores", []int32{0, 1}),
		)))
	})
})
