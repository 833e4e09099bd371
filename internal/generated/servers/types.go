// Package servers holds the wire types and the echo routing of the order
// workflow API. It mirrors the OpenAPI document served by the HTTP adapter:
// one type per schema, one ServerInterface method per operation.
package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for ModificationType.
const (
	ModificationTypeItems  ModificationType = "items"
	ModificationTypeCancel ModificationType = "cancel"
)

// Defines values for ModificationStatus.
const (
	ModificationStatusPending  ModificationStatus = "pending"
	ModificationStatusApproved ModificationStatus = "approved"
	ModificationStatusRejected ModificationStatus = "rejected"
)

// Defines values for ReviewDecision.
const (
	ReviewDecisionApproved ReviewDecision = "approved"
	ReviewDecisionRejected ReviewDecision = "rejected"
)

// Defines values for OrderStatus.
const (
	OrderStatusPending               OrderStatus = "pending"
	OrderStatusConfirmed             OrderStatus = "confirmed"
	OrderStatusProcessing            OrderStatus = "processing"
	OrderStatusShipped               OrderStatus = "shipped"
	OrderStatusDelivered             OrderStatus = "delivered"
	OrderStatusCancelled             OrderStatus = "cancelled"
	OrderStatusModificationRequested OrderStatus = "modification_requested"
)

// CancelOrderRequest defines model for CancelOrderRequest.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// Error defines model for Error.
type Error struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	MessageKey string `json:"messageKey"`
	Reason     string `json:"reason"`
}

// LineItem defines model for LineItem. UnitPrice is a decimal string.
type LineItem struct {
	Currency  string  `json:"currency"`
	ProductId string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Sku       *string `json:"sku,omitempty"`
	UnitPrice string  `json:"unitPrice"`
}

// ModificationRequest defines model for ModificationRequest.
type ModificationRequest struct {
	AdminResponse    *string             `json:"adminResponse,omitempty"`
	CreatedAt        time.Time           `json:"createdAt"`
	Id               openapi_types.UUID  `json:"id"`
	ModificationType ModificationType    `json:"modificationType"`
	NewItems         *[]LineItem         `json:"newItems,omitempty"`
	NewTotalAmount   *string             `json:"newTotalAmount,omitempty"`
	OrderId          openapi_types.UUID  `json:"orderId"`
	Reason           string              `json:"reason"`
	RequestedBy      openapi_types.UUID  `json:"requestedBy"`
	ReviewedAt       *time.Time          `json:"reviewedAt,omitempty"`
	ReviewedBy       *openapi_types.UUID `json:"reviewedBy,omitempty"`
	Status           ModificationStatus  `json:"status"`
}

// ModificationStatus defines model for ModificationStatus.
type ModificationStatus string

// ModificationType defines model for ModificationType.
type ModificationType string

// ModifyOrderRequest defines model for ModifyOrderRequest.
type ModifyOrderRequest struct {
	ModificationType ModificationType `json:"modificationType"`
	NewItems         *[]LineItem      `json:"newItems,omitempty"`
	Reason           string           `json:"reason"`
}

// Order defines model for Order.
type Order struct {
	CancellationReason *string             `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time          `json:"cancelledAt,omitempty"`
	CancelledBy        *openapi_types.UUID `json:"cancelledBy,omitempty"`
	ClientId           openapi_types.UUID  `json:"clientId"`
	Id                 openapi_types.UUID  `json:"id"`
	Items              []LineItem          `json:"items"`
	LtaId              *openapi_types.UUID `json:"ltaId,omitempty"`
	Status             OrderStatus         `json:"status"`
	TotalAmount        string              `json:"totalAmount"`
}

// OrderStatus defines model for OrderStatus.
type OrderStatus string

// ReviewDecision defines model for ReviewDecision.
type ReviewDecision string

// ReviewModificationRequest defines model for ReviewModificationRequest.
type ReviewModificationRequest struct {
	AdminResponse *string        `json:"adminResponse,omitempty"`
	Status        ReviewDecision `json:"status"`
}

// ListModificationsParams defines parameters for ListModifications.
type ListModificationsParams struct {
	Status *ModificationStatus `form:"status,omitempty" json:"status,omitempty"`
}

// RequestOrderModificationJSONRequestBody defines body for RequestOrderModification for application/json ContentType.
type RequestOrderModificationJSONRequestBody = ModifyOrderRequest

// CancelOrderJSONRequestBody defines body for CancelOrder for application/json ContentType.
type CancelOrderJSONRequestBody = CancelOrderRequest

// ReviewModificationJSONRequestBody defines body for ReviewModification for application/json ContentType.
type ReviewModificationJSONRequestBody = ReviewModificationRequest
