// Package periodic holds the polling settings for Eventually and Consistently checks on exported telemetry.
package periodic

import (
	"time"
)

const (
	// Interval is also the export interval of batch processors in tests, so one poll usually observes one export.
	Interval = time.Millisecond * 100

	NegativeCheckTimeout = time.Second * 2
	TelemetryPollTimeout = time.Second * 5
)
