package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel/log"
	"gopkg.in/yaml.v3"

	"github.com/kyma-project/telemetry-testkit/test/testkit/logdata"
)

const defaultMinCount = 1

// Expectations is the root of an expectation file.
type Expectations struct {
	Expectations []Expectation `yaml:"expectations"`
}

// Expectation describes log records that must be present. Fields left out are not checked.
type Expectation struct {
	Name     string `yaml:"name"`
	MinCount *int   `yaml:"minCount,omitempty"`

	Resource        map[string]any `yaml:"resource,omitempty"`
	Scope           *Scope         `yaml:"scope,omitempty"`
	Severity        *Severity      `yaml:"severity,omitempty"`
	SeverityText    *string        `yaml:"severityText,omitempty"`
	EventName       *string        `yaml:"eventName,omitempty"`
	Body            *string        `yaml:"body,omitempty"`
	TraceID         *string        `yaml:"traceId,omitempty"`
	SpanID          *string        `yaml:"spanId,omitempty"`
	Attributes      map[string]any `yaml:"attributes,omitempty"`
	ExactAttributes bool           `yaml:"exactAttributes,omitempty"`
}

type Scope struct {
	Name    *string `yaml:"name,omitempty"`
	Version *string `yaml:"version,omitempty"`
}

// Severity accepts a severity name like WARN or its number like 13.
type Severity struct {
	log.Severity
}

func (s *Severity) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: severity must be a scalar", node.Line)
	}

	severity, err := logdata.ParseSeverity(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}

	s.Severity = severity

	return nil
}

func (s Severity) MarshalYAML() (any, error) {
	return logdata.SeverityName(s.Severity), nil
}

// RequiredCount returns how many records must satisfy the expectation.
func (e Expectation) RequiredCount() int {
	if e.MinCount == nil {
		return defaultMinCount
	}

	return *e.MinCount
}

// LoadExpectations reads and validates an expectation file.
func LoadExpectations(path string) ([]Expectation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read expectations: %w", err)
	}

	return ParseExpectations(data)
}

// ParseExpectations decodes YAML expectations. Unknown fields are rejected.
// Expectations without a name are named after their position.
func ParseExpectations(data []byte) ([]Expectation, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var file Expectations
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("no expectations defined")
		}

		return nil, fmt.Errorf("failed to decode expectations: %w", err)
	}

	if len(file.Expectations) == 0 {
		return nil, errors.New("no expectations defined")
	}

	for i := range file.Expectations {
		exp := &file.Expectations[i]
		if exp.Name == "" {
			exp.Name = fmt.Sprintf("expectation-%d", i+1)
		}

		if err := exp.validate(); err != nil {
			return nil, fmt.Errorf("expectation %q: %w", exp.Name, err)
		}
	}

	return file.Expectations, nil
}

func (e Expectation) validate() error {
	if e.MinCount != nil && *e.MinCount < 1 {
		return fmt.Errorf("minCount must be at least 1, got %d", *e.MinCount)
	}

	for key, value := range e.Resource {
		if !logdata.Attr(key, value).Valid() {
			return fmt.Errorf("unsupported value for resource attribute %q", key)
		}
	}

	for key, value := range e.Attributes {
		if !logdata.Attr(key, value).Valid() {
			return fmt.Errorf("unsupported value for attribute %q", key)
		}
	}

	if e.ExactAttributes && e.Attributes == nil {
		return errors.New("exactAttributes requires attributes")
	}

	return nil
}
