package keyboard

import (
	"fmt"

	"github.com/go-vgo/robotgo"
)

// Robot drives the real keyboard through robotgo.
type Robot struct{}

// NewRobot returns the robotgo backend.
func NewRobot() Robot {
	return Robot{}
}

func (Robot) Tap(key string, modifiers ...string) error {
	args := make([]any, 0, len(modifiers))
	for _, m := range modifiers {
		args = append(args, m)
	}
	if err := robotgo.KeyTap(key, args...); err != nil {
		return fmt.Errorf("key tap %s: %w", key, err)
	}
	return nil
}

func (Robot) Type(text string) error {
	robotgo.TypeStr(text)
	return nil
}
