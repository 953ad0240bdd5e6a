// Package redact removes sensitive information from strings before they are
// logged or returned in error responses. Remote model payloads and error
// messages may echo credentials, e-mail addresses or file paths from the
// input text.
package redact

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// Constants for redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
)

// DefaultPayloadLimit is the number of runes Payload keeps by default.
const DefaultPayloadLimit = 512

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

var (
	// Google API keys, including the Gemini key passed in request URLs
	googleKeyRegex = regexp.MustCompile(`AIza[0-9A-Za-z_\-]{35}`)
	// key=value style credentials
	apiKeyRegex = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|key|access|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`)
	bearerRegex   = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.~+/]+=*`)
	// JWT token pattern - matches the standard three-part base64url-encoded JWT token format
	jwtTokenRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)
	emailRegex    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// File paths and stack traces only show up in error messages.
	unixPathRegex   = regexp.MustCompile(`(/[\w.-]+){2,}`)
	winPathRegex    = regexp.MustCompile(`[A-Za-z]:\\[^\\]+(\\[^\\]+)+`)
	stackTraceRegex = regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`)

	// Order matters: JWTs and Google keys are matched before the generic key=value rule.
	credentialRules = []rule{
		{googleKeyRegex, RedactedKeyPlaceholder},
		{jwtTokenRegex, "[REDACTED_JWT]"},
		{bearerRegex, "Bearer " + RedactedCredentialPlaceholder},
		{passwordRegex, RedactedCredentialPlaceholder},
		{apiKeyRegex, RedactedKeyPlaceholder},
		{emailRegex, RedactedEmailPlaceholder},
	}

	errorRules = append(append([]rule{}, credentialRules...),
		rule{stackTraceRegex, "[STACK_TRACE_REDACTED]"},
		rule{unixPathRegex, RedactedPathPlaceholder},
		rule{winPathRegex, RedactedPathPlaceholder},
	)
)

func apply(input string, rules []rule) string {
	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// String redacts credentials, e-mail addresses, file paths and stack traces.
func String(input string) string {
	if input == "" {
		return input
	}
	return apply(input, errorRules)
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}

// Payload redacts credentials and e-mail addresses from free text such as a
// remote model response, then truncates it to at most limit runes. A limit
// of zero or less uses DefaultPayloadLimit.
func Payload(input string, limit int) string {
	if limit <= 0 {
		limit = DefaultPayloadLimit
	}

	result := apply(input, credentialRules)

	total := utf8.RuneCountInString(result)
	if total <= limit {
		return result
	}

	runes := []rune(result)
	return fmt.Sprintf("%s...[%d more chars]", string(runes[:limit]), total-limit)
}
