package logdata

import (
	"fmt"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/log"
)

var severityNames = map[log.Severity]string{
	log.SeverityUndefined: "UNDEFINED",
	log.SeverityTrace1:    "TRACE",
	log.SeverityTrace2:    "TRACE2",
	log.SeverityTrace3:    "TRACE3",
	log.SeverityTrace4:    "TRACE4",
	log.SeverityDebug1:    "DEBUG",
	log.SeverityDebug2:    "DEBUG2",
	log.SeverityDebug3:    "DEBUG3",
	log.SeverityDebug4:    "DEBUG4",
	log.SeverityInfo1:     "INFO",
	log.SeverityInfo2:     "INFO2",
	log.SeverityInfo3:     "INFO3",
	log.SeverityInfo4:     "INFO4",
	log.SeverityWarn1:     "WARN",
	log.SeverityWarn2:     "WARN2",
	log.SeverityWarn3:     "WARN3",
	log.SeverityWarn4:     "WARN4",
	log.SeverityError1:    "ERROR",
	log.SeverityError2:    "ERROR2",
	log.SeverityError3:    "ERROR3",
	log.SeverityError4:    "ERROR4",
	log.SeverityFatal1:    "FATAL",
	log.SeverityFatal2:    "FATAL2",
	log.SeverityFatal3:    "FATAL3",
	log.SeverityFatal4:    "FATAL4",
}

var severityAliases = map[string]log.Severity{
	"TRACE1":  log.SeverityTrace1,
	"DEBUG1":  log.SeverityDebug1,
	"INFO1":   log.SeverityInfo1,
	"WARN1":   log.SeverityWarn1,
	"WARNING": log.SeverityWarn1,
	"ERROR1":  log.SeverityError1,
	"FATAL1":  log.SeverityFatal1,
}

// SeverityName returns the short upper-case name of a severity, e.g. INFO or WARN3.
func SeverityName(severity log.Severity) string {
	if name, ok := severityNames[severity]; ok {
		return name
	}

	return fmt.Sprintf("SEVERITY(%d)", int(severity))
}

// ParseSeverity accepts a severity name (case-insensitive) or its number in the range 0-24.
func ParseSeverity(s string) (log.Severity, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "" {
		return log.SeverityUndefined, fmt.Errorf("empty severity")
	}

	if number, err := strconv.Atoi(name); err == nil {
		severity := log.Severity(number)
		if _, known := severityNames[severity]; !known {
			return log.SeverityUndefined, fmt.Errorf("severity number %d out of range", number)
		}

		return severity, nil
	}

	if severity, ok := severityAliases[name]; ok {
		return severity, nil
	}

	for severity, known := range severityNames {
		if known == name {
			return severity, nil
		}
	}

	return log.SeverityUndefined, fmt.Errorf("unknown severity %q", s)
}
