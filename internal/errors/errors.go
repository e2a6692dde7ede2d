// Package errors provides custom error types for ixview.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrMissingContent    = errors.New("message has no content")
	ErrMissingType       = errors.New("content has no type")
	ErrMissingField      = errors.New("content is missing a required field")
	ErrInvalidTranscript = errors.New("invalid transcript format")
	ErrInvalidConfig     = errors.New("invalid configuration")
)

// PayloadError reports a content payload that lacks a field its view requires.
type PayloadError struct {
	Type  string
	Field string
}

func (e *PayloadError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("content is missing required field %q", e.Field)
	}
	return fmt.Sprintf("%s content is missing required field %q", e.Type, e.Field)
}

// Is allows comparison with sentinel errors
func (e *PayloadError) Is(target error) bool {
	if target == ErrMissingField {
		return true
	}
	_, ok := target.(*PayloadError)
	return ok
}

// NewPayloadError creates a new PayloadError
func NewPayloadError(contentType, field string) *PayloadError {
	return &PayloadError{Type: contentType, Field: field}
}

// ParseError represents a transcript parsing error
type ParseError struct {
	Message string
	Path    string
	Line    int
}

func (e *ParseError) Error() string {
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	case e.Path != "":
		return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("parse error: line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

// Is allows comparison with sentinel errors
func (e *ParseError) Is(target error) bool {
	if target == ErrInvalidTranscript {
		return true
	}
	_, ok := target.(*ParseError)
	return ok
}

// NewParseError creates a new ParseError
func NewParseError(message, path string, line int) *ParseError {
	return &ParseError{Message: message, Path: path, Line: line}
}

// ConfigError represents an invalid configuration value
type ConfigError struct {
	Key   string
	Value string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid value %q for %s", e.Value, e.Key)
}

// Is allows comparison with sentinel errors
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// NewConfigError creates a new ConfigError
func NewConfigError(key, value string) *ConfigError {
	return &ConfigError{Key: key, Value: value}
}

// IsPayloadError reports whether err is or wraps a PayloadError.
func IsPayloadError(err error) bool {
	var pe *PayloadError
	return errors.As(err, &pe)
}

// IsParseError reports whether err is or wraps a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsConfigError reports whether err is or wraps a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// IsMissingData reports whether err describes content the dispatcher could
// not render because data was absent.
func IsMissingData(err error) bool {
	return errors.Is(err, ErrMissingContent) ||
		errors.Is(err, ErrMissingType) ||
		errors.Is(err, ErrMissingField)
}

// GetContentType extracts the content type from a PayloadError, or "".
func GetContentType(err error) string {
	var pe *PayloadError
	if errors.As(err, &pe) {
		return pe.Type
	}
	return ""
}

// GetField extracts the missing field name from a PayloadError, or "".
func GetField(err error) string {
	var pe *PayloadError
	if errors.As(err, &pe) {
		return pe.Field
	}
	return ""
}

// GetPath extracts the file path from a ParseError, or "".
func GetPath(err error) string {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Path
	}
	return ""
}
