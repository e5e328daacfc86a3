// Package addbook implements the Add Book use case.
package addbook
