package config

import (
	"errors"
	"fmt"
	"maps"
	"strings"
)

// Global holds the settings of a logcheck run.
type Global struct {
	inputFile        string
	expectationsFile string
	selectors        map[string]string
	version          string
}

type Option func(*Global)

func WithInputFile(path string) Option {
	return func(g *Global) {
		g.inputFile = path
	}
}

func WithExpectationsFile(path string) Option {
	return func(g *Global) {
		g.expectationsFile = path
	}
}

// WithSelectors restricts the run to records whose resource attributes carry all given values.
func WithSelectors(selectors map[string]string) Option {
	return func(g *Global) {
		g.selectors = maps.Clone(selectors)
	}
}

func WithVersion(version string) Option {
	return func(g *Global) {
		g.version = version
	}
}

func NewGlobal(opts ...Option) Global {
	g := Global{}
	for _, opt := range opts {
		opt(&g)
	}

	return g
}

// InputFile returns the path of the OTLP JSON Lines file written by the file exporter.
func (g *Global) InputFile() string {
	return g.inputFile
}

func (g *Global) ExpectationsFile() string {
	return g.expectationsFile
}

func (g *Global) Selectors() map[string]string {
	return maps.Clone(g.selectors)
}

// Version returns the version of logcheck.
func (g *Global) Version() string {
	return g.version
}

const (
	errMsgEmptyPath     = "path must not be empty"
	errMsgEmptySelector = "selector key must not be empty"
)

type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Message)
}

func IsValidationError(err error) bool {
	var errValidation *ValidationError
	return errors.As(err, &errValidation)
}

// Validate reports the first invalid setting.
func (g *Global) Validate() error {
	if strings.TrimSpace(g.inputFile) == "" {
		return &ValidationError{Field: "file", Value: g.inputFile, Message: errMsgEmptyPath}
	}

	if strings.TrimSpace(g.expectationsFile) == "" {
		return &ValidationError{Field: "expectations", Value: g.expectationsFile, Message: errMsgEmptyPath}
	}

	for key := range g.selectors {
		if strings.TrimSpace(key) == "" {
			return &ValidationError{Field: "select", Value: key, Message: errMsgEmptySelector}
		}
	}

	return nil
}
