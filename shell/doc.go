// Package shell contains the I/O-adjacent glue between the pure core and
// the entity store: bounded retry for optimistic-concurrency conflicts and
// the explicit conversion functions between core value types and store
// records. Keeping the conversions here keeps reflection-free, reviewable
// mapping out of the core.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would
// be called the 'application' or 'shell' layer.
package shell
