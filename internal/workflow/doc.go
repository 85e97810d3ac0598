// Package workflow ties classification, browser launches and the search driver
// into the three user-triggered operations.
//
// OpenDirect opens edit pages for pairs whose SPU is not excluded. StartSearch
// runs the search driver over the excluded pairs in batches on a background
// goroutine and returns a Job to wait on. OpenPublic opens storefront pages for
// raw SKUs without consulting the mapping table.
//
// A search holds the automation Guard for its whole run. Direct and public
// opens take it only around the browser launch, so a new window never steals
// focus from a search that is typing. Progress is published through a
// StatusFunc, the single human-readable status line of the tool.
package workflow
