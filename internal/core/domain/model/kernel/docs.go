// Package kernel holds the value objects shared by every aggregate of the ordering
// domain: UUID identifiers, Money amounts and postal Address snapshots.
//
// All kernel types are immutable values and safe to copy and share between goroutines.
package kernel
