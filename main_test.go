package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/sdk/instrumentation"
	"go.opentelemetry.io/otel/sdk/resource"

	"github.com/kyma-project/telemetry-testkit/test/testkit/logdata"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func writeLogs(t *testing.T) string {
	t.Helper()

	scope := instrumentation.Scope{Name: "io.kyma-project.telemetry/sample"}
	data, err := logdata.MarshalJSONL(
		logdata.NewBuilder(resource.NewSchemaless(attribute.String("service.name", "sample-app")), scope).
			SetEpoch(1, time.Second).
			SetSeverity(log.SeverityInfo).
			SetBody("started").
			SetAttributes(attribute.NewSet(attribute.Int("port", 8080))).
			Build(),
		logdata.NewBuilder(resource.NewSchemaless(attribute.String("service.name", "other-app")), scope).
			SetEpoch(2, time.Second).
			SetSeverity(log.SeverityError).
			SetBody("crashed").
			Build(),
	)
	require.NoError(t, err)

	return writeFile(t, "logs.jsonl", data)
}

func TestRun(t *testing.T) {
	logs := writeLogs(t)
	started := writeFile(t, "started.yaml", []byte(`
expectations:
  - name: startup
    severity: INFO
    body: started
    attributes:
      port: 8080
`))
	crashed := writeFile(t, "crashed.yaml", []byte(`
expectations:
  - name: crash
    severity: ERROR
    body: crashed
`))
	invalidExpectations := writeFile(t, "invalid.yaml", []byte("expectations:\n  - severity: LOUD\n"))
	invalidLogs := writeFile(t, "invalid.jsonl", []byte("{not json}\n"))

	tests := []struct {
		name     string
		args     []string
		exitCode int
	}{
		{
			name:     "expectation met",
			args:     []string{"--file", logs, "--expectations", started},
			exitCode: exitOK,
		},
		{
			name:     "expectation met with selector",
			args:     []string{"-f", logs, "-e", crashed, "--select", "service.name=other-app"},
			exitCode: exitOK,
		},
		{
			name:     "selector excludes matching record",
			args:     []string{"-f", logs, "-e", crashed, "--select", "service.name=sample-app"},
			exitCode: exitUnmet,
		},
		{
			name:     "min count not reached",
			args:     []string{"-f", logs, "-e", writeFile(t, "twice.yaml", []byte("expectations:\n  - body: started\n    minCount: 2\n"))},
			exitCode: exitUnmet,
		},
		{
			name:     "missing flags",
			args:     nil,
			exitCode: exitUsage,
		},
		{
			name:     "unknown flag",
			args:     []string{"--colour", "red"},
			exitCode: exitUsage,
		},
		{
			name:     "invalid selector",
			args:     []string{"-f", logs, "-e", started, "--select", "service.name"},
			exitCode: exitUsage,
		},
		{
			name:     "invalid log level",
			args:     []string{"-f", logs, "-e", started, "--log-level", "loud"},
			exitCode: exitUsage,
		},
		{
			name:     "missing input file",
			args:     []string{"-f", filepath.Join(t.TempDir(), "missing.jsonl"), "-e", started},
			exitCode: exitUsage,
		},
		{
			name:     "invalid input file",
			args:     []string{"-f", invalidLogs, "-e", started},
			exitCode: exitUsage,
		},
		{
			name:     "invalid expectations",
			args:     []string{"-f", logs, "-e", invalidExpectations},
			exitCode: exitUsage,
		},
		{
			name:     "help",
			args:     []string{"--help"},
			exitCode: exitOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			require.Equal(t, tt.exitCode, run(tt.args, &stdout, &stderr))
		})
	}
}

func TestRunPrintsVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer

	require.Equal(t, exitOK, run([]string{"--version"}, &stdout, &stderr))
	require.Contains(t, stdout.String(), "logcheck ")
	require.Contains(t, stdout.String(), "go_version=")
	require.Empty(t, stderr.String())
}
