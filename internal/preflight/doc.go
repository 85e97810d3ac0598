// Package preflight provides readiness checks for the files, directories and
// desktop programs tabbatch depends on.
//
// The CLI "tabbatch status" command renders these results. Failing checks
// never block an operation; they explain why one would degrade.
package preflight
