// Package kernel holds the primitives shared by every aggregate of the order
// workflow: UUID identifiers and the caller Identity (user id plus role) that
// authorization rules are evaluated against.
//
// Both are immutable value objects whose zero value is invalid; construct them
// with NewUUID / UUIDFromString and NewIdentity.
package kernel
