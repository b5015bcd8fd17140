package wishlist

import "encoding/json"

// Entries is the in-memory wishlist state. Each product id appears at most
// once; a duplicate add is a silent no-op, unlike the cart, which increments.
// That asymmetry is deliberate: the wishlist answers "is it saved", the cart
// answers "how many do you want".
type Entries []Entry

// Add appends the snapshot unless an entry for the product id already exists.
func (e Entries) Add(entry Entry) Entries {
	if e.Contains(entry.ProductID) {
		return e
	}
	return append(e, entry)
}

// Remove deletes the entry for the product id if present.
func (e Entries) Remove(productID string) Entries {
	for i := range e {
		if e[i].ProductID == productID {
			return append(e[:i], e[i+1:]...)
		}
	}
	return e
}

// Contains reports membership. Linear scan; wishlists stay in the tens of
// entries.
func (e Entries) Contains(productID string) bool {
	for i := range e {
		if e[i].ProductID == productID {
			return true
		}
	}
	return false
}

func encodeEntries(e Entries) ([]byte, error) {
	if e == nil {
		e = Entries{}
	}
	return json.Marshal(e)
}

// decodeEntries parses a persisted snapshot, rejecting malformed payloads so
// the caller can discard them wholesale.
func decodeEntries(payload []byte) (Entries, error) {
	var entries Entries
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].ProductID == "" {
			return nil, errMissingProductID
		}
	}
	return entries, nil
}
