package wishlist

import (
	"context"
	"errors"
	"time"

	"github.com/afuwah/electronics-backend/internal/snapshot"
	pkgerrors "github.com/afuwah/electronics-backend/pkg/errors"
	"github.com/afuwah/electronics-backend/pkg/logger"
	"github.com/afuwah/electronics-backend/pkg/metrics"
)

const metricsStore = "wishlist"

var errMissingProductID = errors.New("wishlist entry missing product id")

// ServiceParams groups dependencies for the wishlist service.
type ServiceParams struct {
	Snapshots snapshot.Store
	Namespace string
	Logger    *logger.Logger
	Metrics   *metrics.StorefrontMetrics
}

// Service exposes the shopper-facing wishlist operations, with the same
// rehydrate / mutate / write-through contract as the cart service.
type Service interface {
	Get(ctx context.Context, sessionID string) (ViewDTO, error)
	AddItem(ctx context.Context, sessionID string, entry Entry) (ViewDTO, error)
	RemoveItem(ctx context.Context, sessionID, productID string) (ViewDTO, error)
	Clear(ctx context.Context, sessionID string) (ViewDTO, error)
	Contains(ctx context.Context, sessionID, productID string) (bool, error)
}

type service struct {
	snapshots snapshot.Store
	namespace string
	logg      *logger.Logger
	metrics   *metrics.StorefrontMetrics
}

// NewService builds a wishlist service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Snapshots == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "snapshot store is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &service{
		snapshots: params.Snapshots,
		namespace: params.Namespace,
		logg:      params.Logger,
		metrics:   params.Metrics,
	}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (ViewDTO, error) {
	if sessionID == "" {
		return ViewDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return newView(s.load(ctx, sessionID)), nil
}

func (s *service) AddItem(ctx context.Context, sessionID string, entry Entry) (ViewDTO, error) {
	if sessionID == "" {
		return ViewDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if entry.ProductID == "" {
		return ViewDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	entries := s.load(ctx, sessionID).Add(entry)
	s.metrics.IncMutation(metricsStore, "add_item")
	s.persist(ctx, sessionID, entries)
	return newView(entries), nil
}

func (s *service) RemoveItem(ctx context.Context, sessionID, productID string) (ViewDTO, error) {
	if sessionID == "" {
		return ViewDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if productID == "" {
		return ViewDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	entries := s.load(ctx, sessionID).Remove(productID)
	s.metrics.IncMutation(metricsStore, "remove_item")
	s.persist(ctx, sessionID, entries)
	return newView(entries), nil
}

func (s *service) Clear(ctx context.Context, sessionID string) (ViewDTO, error) {
	if sessionID == "" {
		return ViewDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	entries := Entries{}
	s.metrics.IncMutation(metricsStore, "clear")
	s.persist(ctx, sessionID, entries)
	return newView(entries), nil
}

func (s *service) Contains(ctx context.Context, sessionID, productID string) (bool, error) {
	if sessionID == "" {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if productID == "" {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	return s.load(ctx, sessionID).Contains(productID), nil
}

func (s *service) load(ctx context.Context, sessionID string) Entries {
	key := snapshot.WishlistKey(s.namespace, sessionID)
	payload, found, err := s.snapshots.Read(ctx, key)
	if err != nil {
		s.logg.Warn(s.logg.WithSnapshotKey(ctx, key), "wishlist snapshot read failed, starting empty")
		return Entries{}
	}
	if !found {
		return Entries{}
	}
	entries, err := decodeEntries(payload)
	if err != nil {
		s.metrics.IncCorruptRead(metricsStore)
		s.logg.Warn(s.logg.WithSnapshotKey(ctx, key), "discarding corrupt wishlist snapshot")
		return Entries{}
	}
	return entries
}

func (s *service) persist(ctx context.Context, sessionID string, entries Entries) {
	key := snapshot.WishlistKey(s.namespace, sessionID)
	payload, err := encodeEntries(entries)
	if err != nil {
		s.metrics.IncPersistFailure(metricsStore)
		s.logg.Error(s.logg.WithSnapshotKey(ctx, key), "encode wishlist snapshot", err)
		return
	}

	start := time.Now()
	if err := s.snapshots.Write(ctx, key, payload); err != nil {
		s.metrics.IncPersistFailure(metricsStore)
		s.logg.Error(s.logg.WithSnapshotKey(ctx, key), "persist wishlist snapshot", err)
		return
	}
	s.metrics.ObservePersistDuration(metricsStore, time.Since(start))
}

func newView(entries Entries) ViewDTO {
	items := entries
	if items == nil {
		items = Entries{}
	}
	return ViewDTO{Items: items, Count: len(entries)}
}
