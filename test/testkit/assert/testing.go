// Package assert provides fluent assertions over log data. Every method either returns the receiver for chaining
// or reports the mismatch to the TestingT and stops the chain with FailNow.
package assert

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kyma-project/telemetry-testkit/test/testkit/logdata"
)

// TestingT is the part of testing.TB the assertions report to. *testing.T and GinkgoT() satisfy it.
type TestingT interface {
	Errorf(format string, args ...any)
	FailNow()
}

type tHelper interface {
	Helper()
}

var errChainAborted = errors.New("assertion chain aborted")

type collector struct {
	failures []string
}

func (c *collector) Helper() {}

func (c *collector) Errorf(format string, args ...any) {
	c.failures = append(c.failures, fmt.Sprintf(format, args...))
}

func (c *collector) FailNow() {
	panic(errChainAborted)
}

// Collect runs fn against a TestingT that records failures instead of failing a test, and returns them.
// FailNow ends fn early, so at most one failure is recorded per aborted chain.
func Collect(fn func(t TestingT)) (failures []string) {
	c := &collector{}

	defer func() {
		if r := recover(); r != nil {
			if err, ok := r.(error); !ok || !errors.Is(err, errChainAborted) {
				panic(r)
			}
		}

		failures = c.failures
	}()

	fn(c)

	return c.failures
}

func helper(t TestingT) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
}

func failMismatch(t TestingT, field string, expected, actual string, details ...string) {
	helper(t)

	msg := fmt.Sprintf("unexpected %s\nexpected: %s\nactual  : %s", field, expected, actual)
	for _, d := range details {
		if d != "" {
			msg += "\n" + d
		}
	}

	require.Fail(t, msg)
}

func attributesDiff(expected, actual *attribute.Set) string {
	diff := cmp.Diff(logdata.AsRaw(expected), logdata.AsRaw(actual))
	if diff == "" {
		return ""
	}

	return "diff (-expected +actual):\n" + diff
}

// describeAttributes renders a set as {key=value, ...} in key order, showing the value type of each entry.
func describeAttributes(set *attribute.Set) string {
	parts := make([]string, 0, set.Len())

	iter := set.Iter()
	for iter.Next() {
		kv := iter.Attribute()
		parts = append(parts, describeKeyValue(kv))
	}

	sort.Strings(parts)

	return "{" + strings.Join(parts, ", ") + "}"
}

func describeKeyValue(kv attribute.KeyValue) string {
	return fmt.Sprintf("%s=%s(%s)", kv.Key, kv.Value.Type(), describeValue(kv.Value))
}

func describeValue(v attribute.Value) string {
	switch v.Type() {
	case attribute.STRING:
		return strconv.Quote(v.AsString())
	case attribute.BOOLSLICE, attribute.INT64SLICE, attribute.FLOAT64SLICE, attribute.STRINGSLICE:
		encoded, err := json.Marshal(v.AsInterface())
		if err != nil {
			return fmt.Sprint(v.AsInterface())
		}

		return string(encoded)
	default:
		return v.Emit()
	}
}
