package utils

import (
	"log/slog"
	"os"
	"regexp"
)

// MaskSensitiveData masks credentials and other sensitive information in strings.
// Recognition providers embed keys in URLs and signed headers; this keeps them
// out of error messages and logs.
func MaskSensitiveData(s string) string {
	if s == "" {
		return s
	}

	// Mask API keys in URL query parameters (e.g. ?key=xxx or &key=xxx)
	keyPattern := regexp.MustCompile(`([?&])(api[_\-]?[kK]ey|key)=([^&\s"]+)`)
	s = keyPattern.ReplaceAllString(s, `${1}${2}=***MASKED***`)

	// Mask Bearer tokens in Authorization headers
	bearerPattern := regexp.MustCompile(`Bearer\s+([A-Za-z0-9_\-\.]+)`)
	s = bearerPattern.ReplaceAllString(s, `Bearer ***MASKED***`)

	// Mask AWS SigV4 access key ids and session tokens
	awsCredPattern := regexp.MustCompile(`Credential=([A-Z0-9]+)`)
	s = awsCredPattern.ReplaceAllString(s, `Credential=***MASKED***`)
	awsTokenPattern := regexp.MustCompile(`X-Amz-Security-Token[:=]\s*([^\s&"]+)`)
	s = awsTokenPattern.ReplaceAllString(s, `X-Amz-Security-Token: ***MASKED***`)

	// Mask x-api-key headers
	xApiKeyPattern := regexp.MustCompile(`x-api-key:\s*([^\s]+)`)
	s = xApiKeyPattern.ReplaceAllString(s, `x-api-key: ***MASKED***`)

	return s
}

// MaskSensitiveError wraps an error and masks sensitive data when the error is converted to string
func MaskSensitiveError(err error) error {
	if err == nil {
		return nil
	}
	return &maskedError{err: err}
}

type maskedError struct {
	err error
}

func (e *maskedError) Error() string {
	return MaskSensitiveData(e.err.Error())
}

func (e *maskedError) Unwrap() error {
	return e.err
}

func ExitOnError(msg string, err error) {
	slog.Error(msg, "err", MaskSensitiveError(err))
	os.Exit(1)
}
