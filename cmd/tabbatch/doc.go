// Package main hosts the tabbatch CLI entrypoint and command graph.
//
// The Cobra-based command tree reads SKU lists from arguments, files or
// stdin and hands them to the workflow orchestrator: classify previews the
// routing, open and public launch browser windows, search drives the in-page
// find sequence, and shell keeps one session open so searches can run in the
// background while new lists are entered. Status lines go to stdout; logs go
// to stderr.
//
// Keep this package lean: new behaviour belongs in the internal packages and
// is surfaced here through dedicated commands or flags.
package main
