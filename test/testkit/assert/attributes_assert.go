package assert

import (
	"fmt"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kyma-project/telemetry-testkit/test/testkit/logdata"
)

type AttributesAssert struct {
	t      TestingT
	actual attribute.Set
}

// Attributes starts an assertion chain on an attribute set, typically inside LogAssert.HasAttributesSatisfying.
func Attributes(t TestingT, actual attribute.Set) *AttributesAssert {
	return &AttributesAssert{t: t, actual: actual}
}

func (a *AttributesAssert) HasSize(expected int) *AttributesAssert {
	helper(a.t)
	require.Equal(a.t, expected, a.actual.Len(), "unexpected number of attributes in %s", describeAttributes(&a.actual))

	return a
}

func (a *AttributesAssert) IsEmpty() *AttributesAssert {
	helper(a.t)

	if a.actual.Len() != 0 {
		require.Fail(a.t, fmt.Sprintf("expected no attributes, got %s", describeAttributes(&a.actual)))
	}

	return a
}

func (a *AttributesAssert) ContainsKey(key string) *AttributesAssert {
	helper(a.t)

	if !a.actual.HasValue(attribute.Key(key)) {
		require.Fail(a.t, fmt.Sprintf("expected attribute key %q in %s", key, describeAttributes(&a.actual)))
	}

	return a
}

// ContainsKeyOfType is the typed form of ContainsKey: the key must be present with a value of the given type.
func (a *AttributesAssert) ContainsKeyOfType(key string, typ attribute.Type) *AttributesAssert {
	helper(a.t)

	value, ok := a.actual.Value(attribute.Key(key))
	if !ok || value.Type() != typ {
		require.Fail(a.t, fmt.Sprintf("expected attribute key %q of type %s in %s", key, typ, describeAttributes(&a.actual)))
	}

	return a
}

func (a *AttributesAssert) DoesNotContainKey(key string) *AttributesAssert {
	helper(a.t)

	if value, ok := a.actual.Value(attribute.Key(key)); ok {
		require.Fail(a.t, fmt.Sprintf("expected no attribute key %q, found %s", key,
			describeKeyValue(attribute.KeyValue{Key: attribute.Key(key), Value: value})))
	}

	return a
}

// ContainsEntry builds the expected entry with logdata.Attr, so integer and float widths do not matter.
func (a *AttributesAssert) ContainsEntry(key string, values ...any) *AttributesAssert {
	helper(a.t)
	return a.ContainsKeyValue(logdata.Attr(key, values...))
}

// ContainsKeyValue requires an entry with the same key, type and value as expected.
func (a *AttributesAssert) ContainsKeyValue(expected attribute.KeyValue) *AttributesAssert {
	helper(a.t)
	requireValidEntries(a.t, []attribute.KeyValue{expected})

	actual, ok := a.actual.Value(expected.Key)
	if !ok {
		require.Fail(a.t, fmt.Sprintf("expected attribute %s in %s", describeKeyValue(expected), describeAttributes(&a.actual)))
		return a
	}

	if actual != expected.Value {
		failMismatch(a.t, fmt.Sprintf("value of attribute %q", expected.Key),
			describeKeyValue(expected), describeKeyValue(attribute.KeyValue{Key: expected.Key, Value: actual}))
	}

	return a
}

// HasEntrySatisfying requires key to be present and hands its value to fn.
func (a *AttributesAssert) HasEntrySatisfying(key string, fn func(t TestingT, value attribute.Value)) *AttributesAssert {
	helper(a.t)

	value, ok := a.actual.Value(attribute.Key(key))
	if !ok {
		require.Fail(a.t, fmt.Sprintf("expected attribute key %q in %s", key, describeAttributes(&a.actual)))
		return a
	}

	fn(a.t, value)

	return a
}

// ContainsOnly requires the set to consist of exactly the given entries.
func (a *AttributesAssert) ContainsOnly(entries ...attribute.KeyValue) *AttributesAssert {
	helper(a.t)
	requireValidEntries(a.t, entries)

	expected := attribute.NewSet(entries...)
	if expected.Len() != len(entries) {
		require.Fail(a.t, fmt.Sprintf("expected entries contain duplicate keys: %s", describeAttributes(&expected)))
		return a
	}

	requireAttributesEqual(a.t, &expected, &a.actual)

	return a
}

func requireValidEntries(t TestingT, entries []attribute.KeyValue) {
	helper(t)

	for _, kv := range entries {
		if !kv.Valid() {
			require.Fail(t, fmt.Sprintf("unsupported expected value for attribute key %q", kv.Key))
			return
		}
	}
}
