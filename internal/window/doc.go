// Package window finds the browser window created by a launch and prepares it
// for keyboard automation.
//
// Window introspection goes through the Lister capability. X11 desktops use
// the wmctrl backend and Windows and macOS use the robotgo Desktop backend.
// Elsewhere the Noop backend degrades locating to a placeholder handle, and
// keystrokes go to whatever window has focus.
package window
