package domain

import (
	"fmt"
)

// ErrorCode classifies a configuration problem.
type ErrorCode string

const (
	// ErrCodeCycle reports a parent/child reference cycle.
	ErrCodeCycle ErrorCode = "cycle"
	// ErrCodeRemoteLocalRef reports a remote document referencing a local file.
	ErrCodeRemoteLocalRef ErrorCode = "remote_local_reference"
	// ErrCodeMalformed reports a document that could not be read or decoded.
	ErrCodeMalformed ErrorCode = "malformed"
	// ErrCodeWrongType reports a key holding a value of the wrong type.
	ErrCodeWrongType ErrorCode = "wrong_type"
	// ErrCodeUnknownKey reports a key the configuration does not recognize.
	ErrCodeUnknownKey ErrorCode = "unknown_key"
	// ErrCodeUnknownRule reports a rule identifier missing from the registry.
	ErrCodeUnknownRule ErrorCode = "unknown_rule"
	// ErrCodeInvalidParams reports rule parameters the rule rejected.
	ErrCodeInvalidParams ErrorCode = "invalid_params"
)

// ConfigError is a recoverable configuration problem.
type ConfigError struct {
	Code  ErrorCode
	Path  string
	Key   string
	Cause error
}

func (e *ConfigError) Error() string {
	msg := string(e.Code)
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, msg)
	}

	if e.Key != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Key)
	}

	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}

	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Fatal reports whether the error forces the default configuration.
func (e *ConfigError) Fatal() bool {
	switch e.Code {
	case ErrCodeCycle, ErrCodeRemoteLocalRef, ErrCodeMalformed, ErrCodeWrongType:
		return true
	default:
		return false
	}
}

func configErr(code ErrorCode, path, key string, cause error) *ConfigError {
	return &ConfigError{Code: code, Path: path, Key: key, Cause: cause}
}
