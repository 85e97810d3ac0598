// Package search runs the per-tab find sequence over a batch of freshly opened
// edit pages.
//
// The driver opens one browser window per batch, waits a heuristic load time
// derived from the tab count, then for every tab opens the find bar, replaces
// its contents with the SKU, submits, closes the bar and moves to the next tab.
// Page state is never inspected; a tab counts as searched when its keystrokes
// were delivered.
package search
