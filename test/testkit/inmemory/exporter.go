// Package inmemory provides an OTel log SDK exporter that keeps exported records as log data for assertions.
package inmemory

import (
	"context"
	"errors"
	"sync"

	sdklog "go.opentelemetry.io/otel/sdk/log"

	"github.com/kyma-project/telemetry-testkit/test/testkit/logdata"
)

var ErrShutdown = errors.New("exporter is shut down")

var _ sdklog.Exporter = (*Exporter)(nil)

type Exporter struct {
	mu       sync.Mutex
	logData  []logdata.LogData
	shutdown bool
}

func NewExporter() *Exporter {
	return &Exporter{}
}

// Export converts and stores the records. Records are only valid during the call, so they are copied right away.
func (e *Exporter) Export(ctx context.Context, records []sdklog.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.shutdown {
		return ErrShutdown
	}

	for i := range records {
		e.logData = append(e.logData, logdata.FromRecord(&records[i]))
	}

	return nil
}

func (e *Exporter) ForceFlush(ctx context.Context) error {
	return ctx.Err()
}

// Shutdown drops the stored log data and rejects further exports.
func (e *Exporter) Shutdown(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.shutdown = true
	e.logData = nil

	return ctx.Err()
}

// LogData returns a copy of everything exported so far, in export order.
func (e *Exporter) LogData() []logdata.LogData {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]logdata.LogData, len(e.logData))
	copy(out, e.logData)

	return out
}

func (e *Exporter) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.logData = nil
}
