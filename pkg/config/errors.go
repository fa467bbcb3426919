package config

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the configuration file does not exist.
	ErrNotFound = errors.New("config file not found")
	// ErrParse is returned when the configuration file is not valid JSON or YAML.
	ErrParse = errors.New("config file could not be parsed")
	// ErrInvalid is returned when the decoded configuration fails structural validation.
	ErrInvalid = errors.New("invalid configuration structure")
)

// Error reports a configuration failure for a specific file.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
