package config

import "fmt"

// LoadError reports an environment override file that exists but could not be
// read or parsed. A missing override file is not an error.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load environment override file %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// MissingError reports an absent settings file. It gets its own type (and
// exit code) because it is by far the most common user mistake.
type MissingError struct {
	Path string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("settings file %s not found — did you delete it? Run packlane from the project root.", e.Path)
}

// ParseError reports a settings file that exists but is not valid JSON.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("settings file %s is not valid JSON: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError reports a configuration value of the wrong type, naming the
// offending field.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value for configuration field %q: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
