package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a config validation error scoped to one
// field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the configuration for required fields and sane
// values. All problems are reported at once.
func Validate(c *Config) error {
	var errs []string

	if err := validateWatcher(c.Watcher); err != nil {
		errs = append(errs, err.Error())
	}

	for i, r := range c.Rules {
		if err := validateRule(i, r); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

func validateWatcher(w WatcherConfig) error {
	if w.WatchPath == "" {
		return ValidationError{Field: "watcher.watch_path", Message: "watch path is required"}
	}

	if w.IntervalMillis <= 0 {
		return ValidationError{
			Field:   "watcher.interval_millis",
			Message: fmt.Sprintf("poll interval must be positive, got %d", w.IntervalMillis),
		}
	}

	if w.MaxDepth != nil && *w.MaxDepth < 0 {
		return ValidationError{
			Field:   "watcher.max_depth",
			Message: fmt.Sprintf("max depth cannot be negative, got %d", *w.MaxDepth),
		}
	}

	return nil
}

func validateRule(index int, r Rule) error {
	if len(r.Patterns) == 0 {
		return ValidationError{
			Field:   fmt.Sprintf("rules[%d].patterns", index),
			Message: "at least one pattern is required",
		}
	}

	for j, p := range r.Patterns {
		if p == "" {
			return ValidationError{
				Field:   fmt.Sprintf("rules[%d].patterns[%d]", index, j),
				Message: "pattern cannot be empty",
			}
		}
	}

	if r.Destination == "" {
		return ValidationError{
			Field:   fmt.Sprintf("rules[%d].destination", index),
			Message: "destination is required",
		}
	}

	return nil
}
