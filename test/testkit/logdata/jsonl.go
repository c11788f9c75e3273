package logdata

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"go.opentelemetry.io/collector/pdata/plog"
)

// UnmarshalJSONL reads OTLP JSON Lines, as written by the collector file exporter, and flattens every line into log data.
func UnmarshalJSONL(data []byte) ([]LogData, error) {
	lds, err := UnmarshalLogs(data)
	if err != nil {
		return nil, err
	}

	var logData []LogData
	for _, ld := range lds {
		logData = append(logData, FromLogs(ld)...)
	}

	return logData, nil
}

// UnmarshalLogs reads and unmarshals pdata logs from a JSONL-encoded byte slice (every line is a JSON document encoding pdata).
func UnmarshalLogs(data []byte) ([]plog.Logs, error) {
	var (
		allLogs     []plog.Logs
		unmarshaler plog.JSONUnmarshaler
	)

	// bufio.Reader instead of bufio.Scanner to handle very long lines gracefully
	reader := bufio.NewReader(bytes.NewReader(data))

	for {
		line, readerErr := reader.ReadBytes('\n')
		if readerErr != nil && readerErr != io.EOF {
			return nil, fmt.Errorf("failed to read line: %w", readerErr)
		}

		if len(bytes.TrimSpace(line)) > 0 {
			ld, err := unmarshaler.UnmarshalLogs(line)
			if err != nil {
				return nil, handleUnmarshalError(err, line, len(data))
			}

			allLogs = append(allLogs, ld)
		}

		// check the io.EOF error after checking the line since both can be returned simultaneously
		if readerErr == io.EOF {
			break
		}
	}

	return allLogs, nil
}

// MarshalJSONL is the inverse of UnmarshalJSONL: one line per resource and scope group.
func MarshalJSONL(logData ...LogData) ([]byte, error) {
	var marshaler plog.JSONMarshaler

	buf := bytes.NewBuffer([]byte{})

	ld := ToLogs(logData...)
	for i := range ld.ResourceLogs().Len() {
		single := plog.NewLogs()
		ld.ResourceLogs().At(i).CopyTo(single.ResourceLogs().AppendEmpty())

		line, err := marshaler.MarshalLogs(single)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal logs: %w", err)
		}

		buf.Write(line)
		buf.WriteByte('\n')
	}

	return buf.Bytes(), nil
}

func handleUnmarshalError(err error, line []byte, dataSize int) error {
	size := len(line)

	const maxPreviewSize = 100

	lastElems := line
	if size > maxPreviewSize {
		lastElems = line[size-maxPreviewSize:]
	}

	return fmt.Errorf("failed to unmarshal logs: %w, body size: %d, last 100 elems: %q", err, dataSize, string(lastElems))
}
