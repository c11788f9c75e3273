package log

import (
	"fmt"
	"strings"

	"github.com/onsi/gomega/format"
	"github.com/onsi/gomega/types"

	"github.com/kyma-project/telemetry-testkit/test/testkit/assert"
	"github.com/kyma-project/telemetry-testkit/test/testkit/logdata"
)

type passAssertionsMatcher struct {
	fn       func(t assert.TestingT, ld logdata.LogData)
	failures []string
}

// PassAssertions bridges the fluent assertions into gomega. It succeeds if fn reports no failure for the record,
// which lets ContainElement pick the record that satisfies a whole assert.That chain.
func PassAssertions(fn func(t assert.TestingT, ld logdata.LogData)) types.GomegaMatcher {
	return &passAssertionsMatcher{fn: fn}
}

func (m *passAssertionsMatcher) Match(actual any) (bool, error) {
	ld, ok := actual.(logdata.LogData)
	if !ok {
		return false, fmt.Errorf("PassAssertions matcher expects a logdata.LogData, got %T", actual)
	}

	m.failures = assert.Collect(func(t assert.TestingT) {
		m.fn(t, ld)
	})

	return len(m.failures) == 0, nil
}

func (m *passAssertionsMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("Expected\n%s\nto pass assertions, but:\n%s", format.Object(actual, 1), strings.Join(m.failures, "\n"))
}

func (m *passAssertionsMatcher) NegatedFailureMessage(actual any) string {
	return fmt.Sprintf("Expected\n%s\nto fail assertions", format.Object(actual, 1))
}
