// Package clipboard reads the focused browser tab's address through the
// system clipboard and composes helper texts onto it.
//
// The clipboard is a single process-external slot. Nothing here locks it, so
// concurrent clipboard users race with these helpers.
package clipboard
