package model

import "fmt"

// ConfigError reports a construction-time value that cannot produce a valid engine.
// It is returned before any grid is allocated.
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

func validateDimensions(width, height int) error {
	if width <= 0 {
		return &ConfigError{Field: "width", Msg: fmt.Sprintf("must be positive, got %d", width)}
	}
	if height <= 0 {
		return &ConfigError{Field: "height", Msg: fmt.Sprintf("must be positive, got %d", height)}
	}
	return nil
}

func validatePercent(percentAlive int) error {
	if percentAlive < 0 || percentAlive > 100 {
		return &ConfigError{Field: "percent_alive", Msg: fmt.Sprintf("must be within [0,100], got %d", percentAlive)}
	}
	return nil
}
