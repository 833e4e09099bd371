package http

import (
	"fmt"

	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/modification"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/generated/servers"
	"orderflow/internal/pkg/errs"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// toDomainItems returns nil for an absent or empty list and leaves the
// list-level rules to the command.
func toDomainItems(in *[]servers.LineItem) (order.Items, error) {
	if in == nil || len(*in) == 0 {
		return nil, nil
	}
	items := make(order.Items, 0, len(*in))
	for idx, raw := range *in {
		price, err := decimal.NewFromString(raw.UnitPrice)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("newItems[%d].unitPrice", idx), err)
		}
		sku := ""
		if raw.Sku != nil {
			sku = *raw.Sku
		}
		item, err := order.NewLineItem(raw.ProductId, sku, price, raw.Quantity, raw.Currency)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("newItems[%d]", idx), err)
		}
		items = append(items, item)
	}
	return items, nil
}

func toLineItems(items order.Items) []servers.LineItem {
	out := make([]servers.LineItem, len(items))
	for i, item := range items {
		out[i] = servers.LineItem{
			ProductId: item.ProductID(),
			UnitPrice: item.UnitPrice().String(),
			Quantity:  item.Quantity(),
			Currency:  item.Currency(),
		}
		if sku := item.SKU(); sku != "" {
			out[i].Sku = &sku
		}
	}
	return out
}

func optionalLineItems(items order.Items) *[]servers.LineItem {
	if len(items) == 0 {
		return nil
	}
	out := toLineItems(items)
	return &out
}

func optionalUUID(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	raw := id.Raw()
	return &raw
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalAmount(amount *decimal.Decimal) *string {
	if amount == nil {
		return nil
	}
	s := amount.String()
	return &s
}

func toModificationRequest(r *modification.Request) servers.ModificationRequest {
	return servers.ModificationRequest{
		Id:               r.ID().Raw(),
		OrderId:          r.OrderID().Raw(),
		RequestedBy:      r.RequestedBy().Raw(),
		ModificationType: servers.ModificationType(r.Type().String()),
		NewItems:         optionalLineItems(r.NewItems()),
		NewTotalAmount:   optionalAmount(r.NewTotalAmount()),
		Reason:           r.Reason(),
		Status:           servers.ModificationStatus(r.Status().String()),
		AdminResponse:    optionalString(r.AdminResponse()),
		ReviewedBy:       optionalUUID(r.ReviewedBy()),
		ReviewedAt:       r.ReviewedAt(),
		CreatedAt:        r.CreatedAt(),
	}
}

func toModificationRequestViews(views []queries.ModificationView) []servers.ModificationRequest {
	out := make([]servers.ModificationRequest, len(views))
	for i, v := range views {
		out[i] = servers.ModificationRequest{
			Id:               v.ID.Raw(),
			OrderId:          v.OrderID.Raw(),
			RequestedBy:      v.RequestedBy.Raw(),
			ModificationType: servers.ModificationType(v.Type.String()),
			NewItems:         optionalLineItems(v.NewItems),
			NewTotalAmount:   optionalAmount(v.NewTotalAmount),
			Reason:           v.Reason,
			Status:           servers.ModificationStatus(v.Status.String()),
			AdminResponse:    optionalString(v.AdminResponse),
			ReviewedBy:       optionalUUID(v.ReviewedBy),
			ReviewedAt:       v.ReviewedAt,
			CreatedAt:        v.CreatedAt,
		}
	}
	return out
}

func toOrder(o *order.Order) servers.Order {
	out := servers.Order{
		Id:          o.ID().Raw(),
		ClientId:    o.ClientID().Raw(),
		LtaId:       optionalUUID(o.LTAID()),
		Items:       toLineItems(o.Items()),
		TotalAmount: o.TotalAmount().String(),
		Status:      servers.OrderStatus(o.Status().String()),
	}
	if c := o.Cancellation(); c != nil {
		reason, at, by := c.Reason(), c.At(), c.By().Raw()
		out.CancellationReason = &reason
		out.CancelledAt = &at
		out.CancelledBy = &by
	}
	return out
}
