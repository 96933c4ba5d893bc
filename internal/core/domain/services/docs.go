// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the ordering system. It implements
// workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - InventoryReconciler: keeps order lines and product stock in step, reserving
//     stock when lines are placed and restoring it when lines, orders or whole
//     cancellations give it back
//
// Either every product involved is updated or none is; callers run the reconciler
// inside one unit of work and persist the touched products afterwards.
package services
