package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/afuwah/electronics-backend/api/middleware"
	"github.com/afuwah/electronics-backend/api/responses"
	"github.com/afuwah/electronics-backend/api/validators"
	cartsvc "github.com/afuwah/electronics-backend/internal/cart"
	pkgerrors "github.com/afuwah/electronics-backend/pkg/errors"
	"github.com/afuwah/electronics-backend/pkg/logger"
)

// CartFetch returns the session's current cart view.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
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

// CartAddItem adds a product snapshot to the session's cart. Adding a
// product that is already in the cart increments its quantity.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		view, err := svc.AddItem(r.Context(), sessionID, payload.toSnapshot())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// CartUpdateQuantity sets the quantity for one cart line.
func CartUpdateQuantity(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		productID := chi.URLParam(r, "productID")
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		var payload updateCartQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		view, err := svc.UpdateQuantity(r.Context(), sessionID, productID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// CartRemoveItem drops one line from the session's cart.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
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

// CartClear empties the session's cart and persists the empty snapshot.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
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

type addCartItemRequest struct {
	ProductID           string `json:"productId" validate:"required"`
	Name                string `json:"name" validate:"required"`
	UnitPriceCents      int64  `json:"unitPriceCents" validate:"min=0"`
	CompareAtPriceCents *int64 `json:"compareAtPriceCents"`
	ImageURL            string `json:"imageUrl"`
	Category            string `json:"category"`
	AvailableForSale    bool   `json:"availableForSale"`
}

func (r addCartItemRequest) toSnapshot() cartsvc.ItemSnapshot {
	return cartsvc.ItemSnapshot{
		ProductID:           r.ProductID,
		Name:                r.Name,
		UnitPriceCents:      r.UnitPriceCents,
		CompareAtPriceCents: r.CompareAtPriceCents,
		ImageURL:            r.ImageURL,
		Category:            r.Category,
		AvailableForSale:    r.AvailableForSale,
	}
}

// Quantities below 1 pass through unvalidated: the cart treats them as a
// silent no-op and returns the unchanged view.
type updateCartQuantityRequest struct {
	Quantity int `json:"quantity"`
}
