package cart

import "github.com/shopspring/decimal"

// Line is one cart entry: a denormalized product snapshot captured at add
// time plus the desired quantity. It is never refreshed from the catalog;
// callers re-validate price and stock before checkout.
type Line struct {
	ProductID           string `json:"productId"`
	Name                string `json:"name"`
	UnitPriceCents      int64  `json:"unitPriceCents"`
	CompareAtPriceCents *int64 `json:"compareAtPriceCents,omitempty"`
	ImageURL            string `json:"imageUrl,omitempty"`
	Category            string `json:"category,omitempty"`
	AvailableForSale    bool   `json:"availableForSale"`
	Quantity            int    `json:"quantity"`
}

// ItemSnapshot is the product snapshot a caller hands to AddItem.
type ItemSnapshot struct {
	ProductID           string
	Name                string
	UnitPriceCents      int64
	CompareAtPriceCents *int64
	ImageURL            string
	Category            string
	AvailableForSale    bool
}

// ViewDTO is the derived read model handed back after every fetch/mutation.
type ViewDTO struct {
	Items          []Line          `json:"items"`
	ItemCount      int             `json:"itemCount"`
	SubtotalCents  int64           `json:"subtotalCents"`
	SubtotalAmount decimal.Decimal `json:"subtotalAmount"`
}
