package wishlist

// Entry is one saved-for-later product reference: the same denormalized
// snapshot shape the cart carries, minus quantity.
type Entry struct {
	ProductID           string `json:"productId"`
	Name                string `json:"name"`
	UnitPriceCents      int64  `json:"unitPriceCents"`
	CompareAtPriceCents *int64 `json:"compareAtPriceCents,omitempty"`
	ImageURL            string `json:"imageUrl,omitempty"`
	Category            string `json:"category,omitempty"`
	AvailableForSale    bool   `json:"availableForSale"`
}

// ViewDTO is the read model returned after every fetch/mutation.
type ViewDTO struct {
	Items []Entry `json:"items"`
	Count int     `json:"count"`
}
