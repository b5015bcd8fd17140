package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/afuwah/electronics-backend/api/middleware"
	"github.com/afuwah/electronics-backend/api/responses"
	"github.com/afuwah/electronics-backend/api/validators"
	wishlistsvc "github.com/afuwah/electronics-backend/internal/wishlist"
	pkgerrors "github.com/afuwah/electronics-backend/pkg/errors"
	"github.com/afuwah/electronics-backend/pkg/logger"
)

// WishlistFetch returns the session's current wishlist view.
func WishlistFetch(svc wishlistsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		view, err := svc.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// WishlistAddItem saves a product snapshot to the session's wishlist.
// Unlike the cart, adding a product already on the list is a no-op.
func WishlistAddItem(svc wishlistsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		var payload addWishlistItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		view, err := svc.AddItem(r.Context(), sessionID, payload.toEntry())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// WishlistRemoveItem drops one entry from the session's wishlist.
func WishlistRemoveItem(svc wishlistsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		productID := chi.URLParam(r, "productID")
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		view, err := svc.RemoveItem(r.Context(), sessionID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// WishlistClear empties the session's wishlist and persists the empty
// snapshot.
func WishlistClear(svc wishlistsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		view, err := svc.Clear(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// WishlistContains reports whether one product is on the session's
// wishlist, for toggling heart icons without shipping the whole list.
func WishlistContains(svc wishlistsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		productID := chi.URLParam(r, "productID")
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		saved, err := svc.Contains(r.Context(), sessionID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, containsResponse{ProductID: productID, Saved: saved})
	}
}

type addWishlistItemRequest struct {
	ProductID           string `json:"productId" validate:"required"`
	Name                string `json:"name" validate:"required"`
	UnitPriceCents      int64  `json:"unitPriceCents" validate:"min=0"`
	CompareAtPriceCents *int64 `json:"compareAtPriceCents"`
	ImageURL            string `json:"imageUrl"`
	Category            string `json:"category"`
	AvailableForSale    bool   `json:"availableForSale"`
}

func (r addWishlistItemRequest) toEntry() wishlistsvc.Entry {
	return wishlistsvc.Entry{
		ProductID:           r.ProductID,
		Name:                r.Name,
		UnitPriceCents:      r.UnitPriceCents,
		CompareAtPriceCents: r.CompareAtPriceCents,
		ImageURL:            r.ImageURL,
		Category:            r.Category,
		AvailableForSale:    r.AvailableForSale,
	}
}

type containsResponse struct {
	ProductID string `json:"productId"`
	Saved     bool   `json:"saved"`
}
