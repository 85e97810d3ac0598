// Package textutil provides the small text helpers shared by the lookup
// loader and the identifier classifier.
//
// The primary use cases are:
//   - Folding full-width digits typed through an IME into ASCII
//   - Checking that an identifier is made of digits only
//   - Picking the first field of a pasted spreadsheet row
package textutil
