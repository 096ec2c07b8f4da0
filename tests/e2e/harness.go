package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Scenario is a named sequence of steps sharing one context.
type Scenario struct {
	Name  string
	Steps []Step
}

// Step is one named action within a scenario.
type Step struct {
	Name string
	Fn   func(ctx *Context) error
}

// Context carries per-scenario state: a throwaway root directory and a
// string key/value store for passing values between steps.
type Context struct {
	root   string
	values map[string]string
}

// Run executes the scenario's steps in order, stopping at the first
// failure. The scenario's temp directory is removed afterwards.
func (s *Scenario) Run() error {
	root, err := os.MkdirTemp("", "agsess-e2e-")
	if err != nil {
		return fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(root)

	ctx := &Context{root: root, values: map[string]string{}}
	for _, step := range s.Steps {
		if err := step.Fn(ctx); err != nil {
			return fmt.Errorf("step %q: %w", step.Name, err)
		}
	}
	return nil
}

// NewDir creates a subdirectory under the scenario root and returns its path.
func (c *Context) NewDir(name string) string {
	dir := filepath.Join(c.root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		panic(err)
	}
	return dir
}

// Set stores a value for later steps.
func (c *Context) Set(key, value string) { c.values[key] = value }

// Get returns a value stored by an earlier step.
func (c *Context) Get(key string) string { return c.values[key] }

func assertEqual[T comparable](got, want T, msg string) error {
	if got != want {
		return fmt.Errorf("%s: got %v, want %v", msg, got, want)
	}
	return nil
}

func assertContains(haystack, needle, msg string) error {
	if !strings.Contains(haystack, needle) {
		return fmt.Errorf("%s: %q not found in %q", msg, needle, haystack)
	}
	return nil
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
