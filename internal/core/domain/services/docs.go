// Package services holds domain services: behaviour that spans more than one
// aggregate and therefore belongs to neither.
//
// ModificationApplier carries a reviewed modification request over to its
// order: an approved items change replaces the order's items and total, an
// approved cancel request cancels the order on behalf of the requester, and
// a rejection returns the order to pending untouched.
package services
