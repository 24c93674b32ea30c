package llm

import "errors"

var (
	// ErrUnavailable indicates the provider could not be reached or refused the call.
	ErrUnavailable = errors.New("llm provider unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the response could not be parsed into the
	// expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrMissingAPIKey is returned when a hosted provider is selected without a key.
	ErrMissingAPIKey = errors.New("llm api key not configured")

	ErrUnknownProvider = errors.New("unknown llm provider")
)
