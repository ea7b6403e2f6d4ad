package diag

import (
	"fmt"
	"strings"
)

// Severity orders diagnostics from informational to fatal for the file.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError // blocks code generation
)

var severityNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// AtLeast reports whether s is min or more severe.
func (s Severity) AtLeast(min Severity) bool {
	return s >= min
}

// ParseSeverity accepts the String form in any case.
func ParseSeverity(s string) (Severity, error) {
	for i, name := range severityNames {
		if strings.EqualFold(s, name) {
			return Severity(i), nil
		}
	}
	return SevInfo, fmt.Errorf("unknown severity %q (expected info|warning|error)", s)
}
