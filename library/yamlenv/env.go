// Package yamlenv provides yaml values that can be overridden from the environment.
//
// A value is written either as a plain scalar or as a mapping:
//
//	port:
//	  value: 8080
//	  env: HTTP_PORT
//
// When the named variable is set, its content replaces the yaml value.
package yamlenv

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Env[T any] struct {
	Value T
	Name  string
}

type envNode[T any] struct {
	Value T      `yaml:"value"`
	Env   string `yaml:"env"`
}

func (e *Env[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		var n envNode[T]
		if err := node.Decode(&n); err != nil {
			return err
		}
		e.Value = n.Value
		e.Name = n.Env
	} else if err := node.Decode(&e.Value); err != nil {
		return err
	}

	return e.lookup()
}

func (e *Env[T]) lookup() error {
	if e.Name == "" {
		return nil
	}

	raw, ok := os.LookupEnv(e.Name)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}

	if s, isString := any(&e.Value).(*string); isString {
		*s = raw
		return nil
	}

	var v T
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		return fmt.Errorf("env %s: %w", e.Name, err)
	}
	e.Value = v

	return nil
}

// Get returns the value, or the zero value for a nil Env.
func (e *Env[T]) Get() T {
	if e == nil {
		var zero T
		return zero
	}

	return e.Value
}

// New builds an Env holding v, mostly useful for defaults and tests.
func New[T any](v T) *Env[T] {
	return &Env[T]{Value: v}
}
