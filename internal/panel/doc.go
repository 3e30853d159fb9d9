// Package panel serves the browser UI for the rig calculator.
//
// The HTML, script and stylesheet under web/ are embedded into the binary
// with go:embed. Handler serves them with single-page fallback: unknown
// paths return index.html. A directory on disk can replace the embedded
// assets during UI development.
package panel
