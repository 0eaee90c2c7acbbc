package domain

import "fmt"

// ConfigurationError indicates the catalog source is missing, unreadable, or
// violates catalog invariants. It is fatal at load time: a service that
// cannot load its catalog must not start.
type ConfigurationError struct {
	Source string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog configuration error (%s): %v", e.Source, e.Err)
	}
	return fmt.Sprintf("catalog configuration error (%s)", e.Source)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// NotFoundError indicates a requested layout id is not in the loaded catalog.
// Recoverable by the caller; the engine performs no fallback itself.
type NotFoundError struct {
	LayoutID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("layout %q not found", e.LayoutID)
}

// InvalidArgumentError indicates a request the engine refuses outright,
// such as a non-positive top_n or a bundle value of an unrepresentable shape.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: %s", e.Reason)
}
