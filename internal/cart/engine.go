package cart

import "encoding/json"

// Lines is the in-memory cart state. All mutations return the updated slice;
// the zero value is an empty cart. At most one line exists per product id.
type Lines []Line

// Add appends a quantity-1 line for the snapshot, or increments the quantity
// of the existing line for the same product id.
func (l Lines) Add(snap ItemSnapshot) Lines {
	for i := range l {
		if l[i].ProductID == snap.ProductID {
			l[i].Quantity++
			return l
		}
	}
	return append(l, Line{
		ProductID:           snap.ProductID,
		Name:                snap.Name,
		UnitPriceCents:      snap.UnitPriceCents,
		CompareAtPriceCents: snap.CompareAtPriceCents,
		ImageURL:            snap.ImageURL,
		Category:            snap.Category,
		AvailableForSale:    snap.AvailableForSale,
		Quantity:            1,
	})
}

// UpdateQuantity sets the line's quantity. Quantities below 1 and unknown
// product ids are silent no-ops; removal goes through Remove.
func (l Lines) UpdateQuantity(productID string, quantity int) Lines {
	if quantity < 1 {
		return l
	}
	for i := range l {
		if l[i].ProductID == productID {
			l[i].Quantity = quantity
			return l
		}
	}
	return l
}

// Remove deletes the line for the product id if present.
func (l Lines) Remove(productID string) Lines {
	for i := range l {
		if l[i].ProductID == productID {
			return append(l[:i], l[i+1:]...)
		}
	}
	return l
}

// ItemCount sums quantities across all lines.
func (l Lines) ItemCount() int {
	count := 0
	for i := range l {
		count += l[i].Quantity
	}
	return count
}

// SubtotalCents sums unit price times quantity across all lines.
func (l Lines) SubtotalCents() int64 {
	var total int64
	for i := range l {
		total += l[i].UnitPriceCents * int64(l[i].Quantity)
	}
	return total
}

func encodeLines(l Lines) ([]byte, error) {
	if l == nil {
		l = Lines{}
	}
	return json.Marshal(l)
}

// decodeLines parses a persisted snapshot. Any malformed payload, including
// lines missing a product id or carrying a quantity below 1, is reported as
// an error so the caller can discard the whole snapshot.
func decodeLines(payload []byte) (Lines, error) {
	var lines Lines
	if err := json.Unmarshal(payload, &lines); err != nil {
		return nil, err
	}
	for i := range lines {
		if lines[i].ProductID == "" {
			return nil, errMissingProductID
		}
		if lines[i].Quantity < 1 {
			return nil, errInvalidQuantity
		}
	}
	return lines, nil
}
