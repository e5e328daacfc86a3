// Package helper provides arrange-phase helpers and test doubles shared by
// the package-level test suites.
package helper
