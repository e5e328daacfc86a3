// Package addauthor implements the Add Author use case.
package addauthor
