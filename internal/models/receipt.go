package models

import "github.com/shopspring/decimal"

// ReceiptExtraction is the structured result returned by the receipt
// extraction service. It is untrusted input.
type ReceiptExtraction struct {
	Receipt ReceiptHeader
	Items   []ReceiptItem
}

// ReceiptHeader carries the receipt-level fields.
type ReceiptHeader struct {
	StoreName string
	Total     decimal.Decimal
	Payer     string
	Date      string // as printed on the receipt; not parsed
}

// ReceiptItem is one line item and the members sharing it.
type ReceiptItem struct {
	Name       string
	Amount     decimal.Decimal
	SharedWith []string
}

// Empty reports whether the extractor returned nothing usable.
func (r *ReceiptExtraction) Empty() bool {
	return r.Receipt.StoreName == "" && r.Receipt.Total.IsZero() && len(r.Items) == 0
}

// ValidateItems checks that the receipt can be confirmed as an expense:
// at least one item, each with a positive cent amount and at least one sharer.
func ValidateItems(items []ReceiptItem) error {
	if len(items) == 0 {
		return &ValidationError{Field: "items", Reason: "receipt has no items"}
	}
	for i, item := range items {
		if !item.Amount.IsPositive() {
			return &ValidationError{Field: "items", Reason: "item " + quote(item.Name) + " must have a positive amount", Index: i}
		}
		if !HasCents(item.Amount) {
			return &ValidationError{Field: "items", Reason: "item " + quote(item.Name) + " has more than 2 decimal places", Index: i}
		}
		if len(item.SharedWith) == 0 {
			return &ValidationError{Field: "items", Reason: "item " + quote(item.Name) + " must be shared with at least one member", Index: i}
		}
	}
	return nil
}
