// Package auditandrepair implements the availability audit.
//
// The audit re-derives every book's available counter from the loans table,
// which is the source of truth when the two disagree. It is safe to run at
// any time and idempotent on a consistent catalog.
package auditandrepair
