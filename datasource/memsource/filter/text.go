package filter

import (
	"regexp"
	"strings"

	"gopkg.in/birkirb/loggers.v1/log"

	"github.com/tableaux-project/gridquery/datasource"
)

const (
	wildcard       = "%"
	metaCharacters = `.*+?^${}()|[]\`
)

// Text matches free text. A pattern containing "%" is a wildcard pattern, a
// pattern containing other regular expression characters is a regular
// expression, and anything else is a list of keywords that all have to be
// contained. Matching is case insensitive throughout.
type Text struct{}

func (filter Text) Prepare(filterValue datasource.FilterValue) Predicate {
	pattern, isText := filterValue.(datasource.TextFilter)
	if !isText || inactive(filterValue) {
		return matchAll
	}

	matcher := NewTextMatcher(string(pattern))

	return func(value interface{}, defined bool) bool {
		if !defined {
			return false
		}

		return matcher(datasource.FormatValue(value))
	}
}

// NewTextMatcher compiles a text pattern into a matching function. A pattern
// which fails to compile as a regular expression is matched as keywords.
func NewTextMatcher(pattern string) func(string) bool {
	if expression := compilePattern(pattern); expression != nil {
		return expression.MatchString
	}

	keywords := strings.Fields(strings.ToLower(pattern))

	return func(text string) bool {
		return containsAll(strings.ToLower(text), keywords)
	}
}

func compilePattern(pattern string) *regexp.Regexp {
	var source string

	switch {
	case strings.Contains(pattern, wildcard):
		parts := strings.Split(pattern, wildcard)
		for i, part := range parts {
			parts[i] = regexp.QuoteMeta(part)
		}

		source = strings.Join(parts, ".*")
	case strings.ContainsAny(pattern, metaCharacters):
		source = pattern
	default:
		return nil
	}

	expression, err := regexp.Compile("(?i)" + source)
	if err != nil {
		log.WithFields(
			"pattern", pattern,
			"error", err,
		).Debug("Pattern is no valid regular expression - matching keywords instead")

		return nil
	}

	return expression
}

func containsAll(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if !strings.Contains(text, keyword) {
			return false
		}
	}

	return true
}
