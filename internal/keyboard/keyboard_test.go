package keyboard

import (
	"errors"
	"testing"
)

type countingKeyboard struct {
	taps   int
	failAt int
}

func (c *countingKeyboard) Tap(string, ...string) error {
	c.taps++
	if c.failAt > 0 && c.taps == c.failAt {
		return errors.New("stuck key")
	}
	return nil
}

func (c *countingKeyboard) Type(string) error { return nil }

func TestModifier(t *testing.T) {
	if Modifier("darwin") != "cmd" {
		t.Fatal("expected cmd on darwin")
	}
	for _, goos := range []string{"linux", "windows", "freebsd"} {
		if Modifier(goos) != "ctrl" {
			t.Fatalf("expected ctrl on %s", goos)
		}
	}
}

func TestPress(t *testing.T) {
	kb := &countingKeyboard{}
	if err := Press(kb, KeyBackspace, 20); err != nil {
		t.Fatalf("Press: %v", err)
	}
	if kb.taps != 20 {
		t.Fatalf("expected 20 taps, got %d", kb.taps)
	}

	kb = &countingKeyboard{failAt: 3}
	if err := Press(kb, KeyBackspace, 20); err == nil {
		t.Fatal("expected failure")
	}
	if kb.taps != 3 {
		t.Fatalf("expected press to stop at first failure, got %d taps", kb.taps)
	}
}
