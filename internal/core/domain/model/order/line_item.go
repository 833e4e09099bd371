package order

import (
	"errors"
	"fmt"
	"strings"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// Limits applied to request input only; RestoreLineItem does not enforce them.
const (
	maxQuantity      = 100_000
	maxProductIDSize = 128
)

var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is one product line of an order or of a requested replacement
// item list. Prices are exact decimals in the item's currency.
type LineItem struct {
	productID string
	sku       string
	unitPrice decimal.Decimal
	quantity  int
	currency  string
	guard     guard.ConstructorGuard
}

// NewLineItem validates every field; sku may be empty.
func NewLineItem(productID, sku string, unitPrice decimal.Decimal, quantity int, currency string) (LineItem, error) {
	item := LineItem{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		item.setProductID(productID),
		item.setUnitPrice(unitPrice),
		item.setQuantity(quantity),
		item.setCurrency(currency),
	); err != nil {
		return LineItem{}, err
	}
	item.sku = strings.TrimSpace(sku)
	return item, nil
}

// RestoreLineItem rebuilds a stored item exactly as it was written. Orders
// are placed by an external flow, so only the basic shape is checked: a
// product, a non-negative price and a positive quantity. Text fields are
// kept verbatim and neither the quantity cap nor the currency code format
// applies.
func RestoreLineItem(productID, sku string, unitPrice decimal.Decimal, quantity int, currency string) (LineItem, error) {
	var errList []error
	if strings.TrimSpace(productID) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("productId"))
	}
	if unitPrice.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%s is negative", unitPrice.String())))
	}
	if quantity < 1 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not positive", quantity)))
	}
	if err := errors.Join(errList...); err != nil {
		return LineItem{}, err
	}

	return LineItem{
		productID: productID,
		sku:       sku,
		unitPrice: unitPrice,
		quantity:  quantity,
		currency:  currency,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (i LineItem) ProductID() string          { return i.productID }
func (i LineItem) SKU() string                { return i.sku }
func (i LineItem) UnitPrice() decimal.Decimal { return i.unitPrice }
func (i LineItem) Quantity() int              { return i.quantity }
func (i LineItem) Currency() string           { return i.currency }

// Subtotal is unitPrice × quantity, exact.
func (i LineItem) Subtotal() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}

func (i LineItem) Validate() error {
	return i.guard.Validate(ErrLineItemIsNotConstructed)
}

func (i *LineItem) setProductID(productID string) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return errs.NewValueIsRequiredError("productId")
	}
	if len(productID) > maxProductIDSize {
		return errs.NewValueIsOutOfRangeError("productId length", len(productID), 1, maxProductIDSize)
	}
	i.productID = productID
	return nil
}

func (i *LineItem) setUnitPrice(unitPrice decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%s is negative", unitPrice.String()))
	}
	i.unitPrice = unitPrice
	return nil
}

func (i *LineItem) setQuantity(quantity int) error {
	if quantity < 1 || quantity > maxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxQuantity)
	}
	i.quantity = quantity
	return nil
}

func (i *LineItem) setCurrency(currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 || strings.IndexFunc(currency, func(r rune) bool { return r < 'A' || r > 'Z' }) >= 0 {
		return errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("%q is not an ISO 4217 code", currency))
	}
	i.currency = currency
	return nil
}

// Items is an ordered, non-empty list of line items sharing one currency.
type Items []LineItem

// NewItems checks list-level rules; every element must come from NewLineItem.
func NewItems(items ...LineItem) (Items, error) {
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}
	currency := ""
	for idx, item := range items {
		if err := item.Validate(); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", idx), err)
		}
		if currency == "" {
			currency = item.Currency()
			continue
		}
		if item.Currency() != currency {
			return nil, errs.NewValueIsInvalidErrorWithCause("items",
				fmt.Errorf("mixed currencies %s and %s", currency, item.Currency()))
		}
	}
	out := make(Items, len(items))
	copy(out, items)
	return out, nil
}

// RestoreItems wraps stored items without the list-level rules of NewItems.
// Every element must still come from a constructor.
func RestoreItems(items ...LineItem) (Items, error) {
	for idx, item := range items {
		if err := item.Validate(); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", idx), err)
		}
	}
	out := make(Items, len(items))
	copy(out, items)
	return out, nil
}

// Total sums the subtotals exactly.
func (it Items) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range it {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Currency of the list, empty for an empty list.
func (it Items) Currency() string {
	if len(it) == 0 {
		return ""
	}
	return it[0].Currency()
}

// Clone returns a copy so callers cannot mutate aggregate state.
func (it Items) Clone() Items {
	if it == nil {
		return nil
	}
	out := make(Items, len(it))
	copy(out, it)
	return out
}
