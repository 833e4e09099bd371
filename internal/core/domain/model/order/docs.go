// Package order provides the Order aggregate and the status policy that
// decides whether an order may still be modified or cancelled.
//
// The package includes:
//   - Order: the aggregate root holding items, the exact decimal total and
//     the cancellation record
//   - Status: the closed lifecycle enum with CanModify / CanCancel and the
//     transitions used by the modification workflow
//   - LineItem / Items: validated product lines sharing a single currency
//
// Key business rules:
//   - shipped, delivered and cancelled orders are locked
//   - an order with a pending modification is ModificationRequested until
//     the request is reviewed
//   - after an approved items change the total equals the sum of
//     unitPrice × quantity exactly
package order
