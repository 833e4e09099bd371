// Package lineitems is the storage schema of an order's line items. Orders
// and modification requests both keep their items as one versioned jsonb
// document:
//
//	{"version": 1, "items": [{"productId": "...", "sku": "...", "unitPrice": "12.50", "quantity": 2, "currency": "USD"}]}
//
// Prices are serialized as decimal strings so no precision is lost in transit.
package lineitems

import (
	"encoding/json"
	"fmt"

	"orderflow/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// CurrentVersion is the only document version this build reads and writes.
const CurrentVersion = 1

type Item struct {
	ProductID string          `json:"productId"`
	SKU       string          `json:"sku,omitempty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	Currency  string          `json:"currency"`
}

type Document struct {
	Version int    `json:"version"`
	Items   []Item `json:"items"`
}

// UnmarshalJSON refuses documents written by an unknown schema version.
func (d *Document) UnmarshalJSON(data []byte) error {
	type raw Document
	var decoded raw
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	if decoded.Version != CurrentVersion {
		return fmt.Errorf("line items document version %d is not supported", decoded.Version)
	}
	*d = Document(decoded)
	return nil
}

// Column is the gorm column type holding a Document as jsonb.
type Column = datatypes.JSONType[Document]

// FromDomain encodes items. A nil list encodes as an empty document.
func FromDomain(items order.Items) Column {
	doc := Document{
		Version: CurrentVersion,
		Items:   make([]Item, 0, len(items)),
	}
	for _, it := range items {
		doc.Items = append(doc.Items, Item{
			ProductID: it.ProductID(),
			SKU:       it.SKU(),
			UnitPrice: it.UnitPrice(),
			Quantity:  it.Quantity(),
			Currency:  it.Currency(),
		})
	}
	return datatypes.NewJSONType(doc)
}

// ToDomain decodes items as stored, without the input rules applied to new
// requests. An empty document yields nil.
func ToDomain(col Column) (order.Items, error) {
	doc := col.Data()
	if len(doc.Items) == 0 {
		return nil, nil
	}

	items := make([]order.LineItem, 0, len(doc.Items))
	for i, it := range doc.Items {
		item, err := order.RestoreLineItem(it.ProductID, it.SKU, it.UnitPrice, it.Quantity, it.Currency)
		if err != nil {
			return nil, fmt.Errorf("line item %d: %w", i, err)
		}
		items = append(items, item)
	}
	return order.RestoreItems(items...)
}
