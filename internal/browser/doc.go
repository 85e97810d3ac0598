// Package browser resolves a Chrome-compatible executable and starts it with a
// new window holding one tab per URL.
//
// The launch is fire-and-forget: the child is detached from the caller, its
// output is discarded, and the process is never waited on by callers.
package browser
