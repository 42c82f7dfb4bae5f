package util

import (
	"io"
	"regexp"
	"strings"

	"gopkg.in/birkirb/loggers.v1/log"
)

var (
	upperCasePattern = regexp.MustCompile("([A-Z].+?)")
	underscoreLetter = regexp.MustCompile("(_[a-z])")
)

// DescriptorToIdentifier converts a camel cased descriptor, such as a
// schema entity, into the snake cased database identifier.
func DescriptorToIdentifier(descriptor string) string {
	return strings.ToLower(upperCasePattern.ReplaceAllString(descriptor, "_${1}"))
}

// IdentifierToDescriptor converts a snake cased database identifier into
// the camel cased record key.
func IdentifierToDescriptor(identifier string) string {
	return underscoreLetter.ReplaceAllStringFunc(identifier, func(s string) string {
		return strings.ToUpper(strings.TrimPrefix(s, "_"))
	})
}

// LoggingRowsCloser is a helper method which wraps row closing
// with a logging statement, if an error occurs.
func LoggingRowsCloser(rows io.Closer, usage string) {
	if err := rows.Close(); err != nil {
		log.WithFields(
			"error", err,
			"usage", usage,
		).Error("Failed to explicitly close rows")
	}
}
