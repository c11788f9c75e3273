package log

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.opentelemetry.io/otel/attribute"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/sdk/instrumentation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/trace"

	"github.com/kyma-project/telemetry-testkit/test/testkit/assert"
	"github.com/kyma-project/telemetry-testkit/test/testkit/logdata"
)

var (
	testResource = resource.NewSchemaless(
		attribute.String("k8s.pod.ip", "10.42.1.76"),
		attribute.String("k8s.deployment.name", "backend"),
		attribute.String("k8s.namespace.name", "default"),
	)
	testScope = instrumentation.Scope{Name: "io.kyma-project.telemetry/sample", Version: "1.2.3"}
)

func testSpanContext() trace.SpanContext {
	traceID, err := trace.TraceIDFromHex("00000000000000010000000000000002")
	Expect(err).NotTo(HaveOccurred())
	spanID, err := trace.SpanIDFromHex("0000000000000003")
	Expect(err).NotTo(HaveOccurred())

	return trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})
}

func testLogData() logdata.LogData {
	return logdata.NewBuilder(testResource, testScope).
		SetEpoch(100, 1).
		SetSpanContext(testSpanContext()).
		SetSeverity(otellog.SeverityInfo).
		SetSeverityText("info").
		SetEventName("name").
		SetBody("Test first log body").
		SetAttributes(attribute.NewSet(
			logdata.Attr("bear", "mya"),
			logdata.Attr("temperature", 30),
			logdata.Attr("colors", "red", "blue"),
		)).
		Build()
}

func mustMarshalJSONL(logData ...logdata.LogData) []byte {
	data, err := logdata.MarshalJSONL(logData...)
	Expect(err).NotTo(HaveOccurred())

	return data
}

var _ = Describe("WithLogData", func() {
	It("should apply matcher to valid log data", func() {
		Expect(mustMarshalJSONL()).Should(WithLogData(BeEmpty()))
	})

	It("should succeed when given empty byte slice", func() {
		Expect([]byte{}).Should(WithLogData(BeEmpty()))
	})

	It("should return error for nil input", func() {
		success, err := WithLogData(BeEmpty()).Match(nil)
		Expect(err).Should(HaveOccurred())
		Expect(success).Should(BeFalse())
	})

	It("should return error for invalid input type", func() {
		success, err := WithLogData(BeEmpty()).Match(struct{}{})
		Expect(err).Should(HaveOccurred())
		Expect(success).Should(BeFalse())
	})

	It("should return error for invalid input", func() {
		success, err := WithLogData(BeEmpty()).Match([]byte{1, 2, 3})
		Expect(err).Should(HaveOccurred())
		Expect(success).Should(BeFalse())
	})

	It("should flatten all records", func() {
		second := logdata.NewBuilder(nil, instrumentation.Scope{Name: "other"}).SetBody("Test second log body").Build()

		Expect(mustMarshalJSONL(testLogData(), second)).Should(ConsistOfLogData(
			HaveBody(Equal("Test first log body")),
			HaveBody(Equal("Test second log body")),
		))
		Expect(mustMarshalJSONL(testLogData(), second)).Should(ConsistOfNumberOfLogs(2))
	})
})

var _ = Describe("Record matchers", func() {
	It("should match every field", func() {
		Expect(mustMarshalJSONL(testLogData())).Should(ContainLogData(SatisfyAll(
			HaveResourceAttributes(HaveKeyWithValue("k8s.deployment.name", "backend")),
			HaveScopeName(Equal("io.kyma-project.telemetry/sample")),
			HaveScopeVersion(Equal("1.2.3")),
			HaveEpochNanos(Equal(int64(100))),
			HaveTimestamp(BeTemporally("==", testLogData().Timestamp())),
			HaveTraceID(Equal("00000000000000010000000000000002")),
			HaveSpanID(Equal("0000000000000003")),
			HaveSeverity(Equal(otellog.SeverityInfo)),
			HaveSeverityText(Equal("info")),
			HaveEventName(Equal("name")),
			HaveBody(ContainSubstring("first")),
			HaveAttributes(HaveLen(3)),
		)))
	})

	It("should not match a different body", func() {
		Expect(testLogData()).ShouldNot(HaveBody(Equal("bar")))
	})
})

var _ = Describe("HaveAttribute", func() {
	It("should match regardless of integer width", func() {
		Expect(testLogData()).Should(HaveAttribute("temperature", 30))
		Expect(testLogData()).Should(HaveAttribute("temperature", int64(30)))
		Expect(testLogData()).Should(HaveAttribute("colors", "red", "blue"))
	})

	It("should not match a missing key", func() {
		Expect(testLogData()).ShouldNot(HaveAttribute("cat", "bark"))
	})

	It("should return error for unsupported values", func() {
		success, err := HaveAttribute("cat", struct{}{}).Match(testLogData())
		Expect(err).Should(HaveOccurred())
		Expect(success).Should(BeFalse())
	})
})

var _ = Describe("PassAssertions", func() {
	It("should succeed if the assertion chain passes", func() {
		Expect(mustMarshalJSONL(testLogData())).Should(ContainLogData(PassAssertions(func(t assert.TestingT, ld logdata.LogData) {
			assert.That(t, ld).
				HasResource(testResource).
				HasInstrumentationScope(testScope).
				HasSeverity(otellog.SeverityInfo).
				HasAttributesSatisfying(func(t assert.TestingT, attrs attribute.Set) {
					assert.Attributes(t, attrs).ContainsEntry("temperature", 30)
				})
		})))
	})

	It("should report the assertion failure", func() {
		matcher := PassAssertions(func(t assert.TestingT, ld logdata.LogData) {
			assert.That(t, ld).HasBody("bar")
		})

		success, err := matcher.Match(testLogData())
		Expect(err).ShouldNot(HaveOccurred())
		Expect(success).Should(BeFalse())
		Expect(matcher.FailureMessage(testLogData())).Should(ContainSubstring("unexpected body"))
	})

	It("should return error for invalid input type", func() {
		success, err := PassAssertions(func(assert.TestingT, logdata.LogData) {}).Match("log")
		Expect(err).Should(HaveOccurred())
		Expect(success).Should(BeFalse())
	})
})
