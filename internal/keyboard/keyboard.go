package keyboard

import (
	"fmt"
	"runtime"
)

// Key names understood by every backend.
const (
	KeyBackspace = "backspace"
	KeyEnter     = "enter"
	KeyEscape    = "esc"
	KeyTab       = "tab"
)

// Keyboard taps keys and types text into the focused window.
type Keyboard interface {
	// Tap presses key while holding modifiers.
	Tap(key string, modifiers ...string) error
	Type(text string) error
}

// Modifier returns the platform's primary shortcut modifier.
func Modifier(goos string) string {
	if goos == "darwin" {
		return "cmd"
	}
	return "ctrl"
}

// PrimaryModifier is Modifier for the running platform.
func PrimaryModifier() string {
	return Modifier(runtime.GOOS)
}

// Press taps key the given number of times, stopping at the first failure.
func Press(kb Keyboard, key string, times int) error {
	for i := 0; i < times; i++ {
		if err := kb.Tap(key); err != nil {
			return fmt.Errorf("press %s (%d/%d): %w", key, i+1, times, err)
		}
	}
	return nil
}
