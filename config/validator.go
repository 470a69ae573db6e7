package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/drake/gridsource/internal/logging"
	"github.com/drake/gridsource/ui/tui/style"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "ui.max_visible")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Validate checks every field and returns all failures.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	if c.UI.MaxVisible < 0 {
		errs = append(errs, ValidationError{"ui.max_visible", c.UI.MaxVisible, "must not be negative"})
	}
	if !slices.Contains(style.Themes, c.UI.Theme) {
		errs = append(errs, ValidationError{"ui.theme", c.UI.Theme, "must be one of " + strings.Join(style.Themes, ", ")})
	}
	if c.UI.PoolSize <= 0 {
		errs = append(errs, ValidationError{"ui.pool_size", c.UI.PoolSize, "must be positive"})
	}
	if c.Paging.PageSize <= 0 {
		errs = append(errs, ValidationError{"paging.page_size", c.Paging.PageSize, "must be positive"})
	}
	if !slices.Contains(logging.ValidLevels(), strings.ToUpper(c.Logging.Level)) {
		errs = append(errs, ValidationError{"logging.level", c.Logging.Level, "must be one of " + strings.Join(logging.ValidLevels(), ", ")})
	}
	if c.Source.Script != "" && c.Source.Manifest != "" {
		errs = append(errs, ValidationError{"source", c.Source.Script + ", " + c.Source.Manifest, "set either script or manifest, not both"})
	}

	return errs
}
