// Package keyboard sends synthetic keystrokes to the focused window.
package keyboard
