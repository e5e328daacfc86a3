// Package core contains the pure domain logic of the library:
// the inventory counter on Book, the Loan state machine, and the
// Member/Author entities with their deletion rules.
//
// Everything in this package is free of I/O and side effects. Functions
// take value types and return new values plus explicit errors; persistence
// and coordination live in the feature packages and the entity store.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would
// be called the 'domain' layer.
package core
