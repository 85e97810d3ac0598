// Package services holds the plumbing shared by the workflow operations and
// the automation backends.
//
// Context helpers stamp run ids, operation names and batch positions for
// logging. Error markers combined through Wrap let callers tell bad input,
// missing tools, busy automation and desktop failures apart with errors.Is.
// SleepWithContext is the cancellable pause used by every timed step, and the
// Sleeper type lets tests replace it.
package services
