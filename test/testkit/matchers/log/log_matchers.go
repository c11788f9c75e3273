package log

import (
	"fmt"

	"github.com/onsi/gomega"
	"github.com/onsi/gomega/types"

	"github.com/kyma-project/telemetry-testkit/test/testkit/logdata"
)

// WithLogData decodes OTLP JSON Lines into flattened log data and applies the matcher to the resulting slice.
func WithLogData(matcher types.GomegaMatcher) types.GomegaMatcher {
	return gomega.WithTransform(func(jsonlLogs []byte) ([]logdata.LogData, error) {
		if jsonlLogs == nil {
			return nil, fmt.Errorf("WithLogData requires a valid OTLP JSON document: got nil")
		}

		logData, err := logdata.UnmarshalJSONL(jsonlLogs)
		if err != nil {
			return nil, fmt.Errorf("WithLogData requires a valid OTLP JSON document: %w", err)
		}

		return logData, nil
	}, matcher)
}

// ContainLogData is an alias for WithLogData(gomega.ContainElement()).
func ContainLogData(matcher types.GomegaMatcher) types.GomegaMatcher {
	return WithLogData(gomega.ContainElement(matcher))
}

// ConsistOfLogData is an alias for WithLogData(gomega.ConsistOf()).
func ConsistOfLogData(matchers ...any) types.GomegaMatcher {
	return WithLogData(gomega.ConsistOf(matchers...))
}

// ConsistOfNumberOfLogs succeeds if the JSONL document holds the expected number of log records.
func ConsistOfNumberOfLogs(count int) types.GomegaMatcher {
	return WithLogData(gomega.HaveLen(count))
}
