package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrExternalTool  = errors.New("external tool error")
	ErrAutomation    = errors.New("automation error")
	ErrBusy          = errors.New("automation busy")
)

// Kind groups failures the way status messages present them.
type Kind string

const (
	KindInput      Kind = "input"
	KindResource   Kind = "resource"
	KindAutomation Kind = "automation"
	KindBusy       Kind = "busy"
	KindUnknown    Kind = "unknown"
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrAutomation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Classify maps an error to the failure kind used for user-facing status text.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrBusy):
		return KindBusy
	case errors.Is(err, ErrValidation):
		return KindInput
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrConfiguration), errors.Is(err, ErrExternalTool):
		return KindResource
	case errors.Is(err, ErrAutomation):
		return KindAutomation
	default:
		return KindUnknown
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
