// Package order contains the Order aggregate, its line items, the status
// transition table and the domain events an order records.
package order
