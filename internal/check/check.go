// Package check evaluates expectations against decoded log records.
package check

import (
	"maps"
	"slices"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.uber.org/multierr"

	"github.com/kyma-project/telemetry-testkit/internal/config"
	"github.com/kyma-project/telemetry-testkit/internal/errortypes"
	"github.com/kyma-project/telemetry-testkit/test/testkit/assert"
	"github.com/kyma-project/telemetry-testkit/test/testkit/logdata"
)

type Result struct {
	Name     string
	Matched  int
	Required int
	// Failures are the assertion messages of the first record that did not match.
	Failures []string
}

func (r Result) Met() bool {
	return r.Matched >= r.Required
}

// Select keeps the records whose resource attributes carry every selector value.
// Values are compared in their string rendering, so 8080 selects both "8080" and INT64 8080.
func Select(records []logdata.LogData, selectors map[string]string) []logdata.LogData {
	if len(selectors) == 0 {
		return records
	}

	var selected []logdata.LogData

	for _, ld := range records {
		if matchesSelectors(ld.Resource, selectors) {
			selected = append(selected, ld)
		}
	}

	return selected
}

func matchesSelectors(res *resource.Resource, selectors map[string]string) bool {
	if res == nil {
		return false
	}

	set := res.Set()
	for key, want := range selectors {
		value, ok := set.Value(attribute.Key(key))
		if !ok || value.Emit() != want {
			return false
		}
	}

	return true
}

// Verify evaluates each expectation against all records. The returned error combines an
// errortypes.UnmetExpectationError per unmet expectation.
func Verify(records []logdata.LogData, expectations []config.Expectation) ([]Result, error) {
	var (
		results []Result
		errs    error
	)

	for _, exp := range expectations {
		result := evaluate(records, exp)
		results = append(results, result)

		if !result.Met() {
			errs = multierr.Append(errs, &errortypes.UnmetExpectationError{
				Name:     result.Name,
				Matched:  result.Matched,
				Required: result.Required,
				Failures: result.Failures,
			})
		}
	}

	return results, errs
}

func evaluate(records []logdata.LogData, exp config.Expectation) Result {
	result := Result{Name: exp.Name, Required: exp.RequiredCount()}
	assertion := Assertion(exp)

	for _, ld := range records {
		failures := assert.Collect(func(t assert.TestingT) {
			assertion(t, ld)
		})

		if len(failures) == 0 {
			result.Matched++
			continue
		}

		if result.Failures == nil {
			result.Failures = failures
		}
	}

	return result
}

// Assertion turns an expectation into an assertion chain over a single record.
func Assertion(exp config.Expectation) func(t assert.TestingT, ld logdata.LogData) {
	return func(t assert.TestingT, ld logdata.LogData) {
		if len(exp.Resource) > 0 {
			res := ld.Resource
			if res == nil {
				res = resource.Empty()
			}

			resourceAttrs := assert.Attributes(t, *res.Set())
			for _, key := range slices.Sorted(maps.Keys(exp.Resource)) {
				resourceAttrs.ContainsEntry(key, exp.Resource[key])
			}
		}

		if exp.Scope != nil {
			if exp.Scope.Name != nil {
				require.Equal(t, *exp.Scope.Name, ld.InstrumentationScope.Name, "unexpected scope name")
			}

			if exp.Scope.Version != nil {
				require.Equal(t, *exp.Scope.Version, ld.InstrumentationScope.Version, "unexpected scope version")
			}
		}

		logAssert := assert.That(t, ld)

		if exp.Severity != nil {
			logAssert.HasSeverity(exp.Severity.Severity)
		}

		if exp.SeverityText != nil {
			logAssert.HasSeverityText(*exp.SeverityText)
		}

		if exp.EventName != nil {
			logAssert.HasEventName(*exp.EventName)
		}

		if exp.Body != nil {
			logAssert.HasBody(*exp.Body)
		}

		if exp.TraceID != nil {
			logAssert.HasTraceID(*exp.TraceID)
		}

		if exp.SpanID != nil {
			logAssert.HasSpanID(*exp.SpanID)
		}

		if exp.Attributes == nil {
			return
		}

		keys := slices.Sorted(maps.Keys(exp.Attributes))

		if exp.ExactAttributes {
			entries := make([]attribute.KeyValue, 0, len(keys))
			for _, key := range keys {
				entries = append(entries, logdata.Attr(key, exp.Attributes[key]))
			}

			logAssert.HasAttributeEntries(entries...)

			return
		}

		logAssert.HasAttributesSatisfying(func(t assert.TestingT, attrs attribute.Set) {
			attrsAssert := assert.Attributes(t, attrs)
			for _, key := range keys {
				attrsAssert.ContainsEntry(key, exp.Attributes[key])
			}
		})
	}
}
