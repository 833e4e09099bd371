// Package modification provides the ModificationRequest aggregate: a
// client's request to change the items of an order or to cancel it, and the
// single administrator review that resolves it.
//
// Requests are append-only audit records. Status moves from Pending to
// Approved or Rejected exactly once; every later review attempt is a
// ConflictError.
package modification
