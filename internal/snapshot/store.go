package snapshot

import (
	"context"
	"strings"
)

// Store is the durable key-value surface cart and wishlist snapshots are
// written through to. Implementations are stateless between calls; concurrent
// writers to the same key resolve last-write-wins with no merge.
type Store interface {
	// Read returns the payload stored at key, reporting found=false when the
	// key has never been written.
	Read(ctx context.Context, key string) (payload []byte, found bool, err error)
	// Write overwrites the payload stored at key.
	Write(ctx context.Context, key string, payload []byte) error
	// Ping verifies the backing storage is reachable.
	Ping(ctx context.Context) error
}

const (
	cartPrefix     = "cart"
	wishlistPrefix = "wishlist"
)

// CartKey returns the namespaced snapshot key for a shopper's cart.
func CartKey(namespace, sessionID string) string {
	return buildKey(namespace, cartPrefix, sessionID)
}

// WishlistKey returns the namespaced snapshot key for a shopper's wishlist.
func WishlistKey(namespace, sessionID string) string {
	return buildKey(namespace, wishlistPrefix, sessionID)
}

func buildKey(parts ...string) string {
	clean := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		clean = append(clean, part)
	}
	return strings.Join(clean, ":")
}
