package cart

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/afuwah/electronics-backend/internal/snapshot"
	pkgerrors "github.com/afuwah/electronics-backend/pkg/errors"
	"github.com/afuwah/electronics-backend/pkg/logger"
	"github.com/afuwah/electronics-backend/pkg/metrics"
)

const metricsStore = "cart"

var (
	errMissingProductID = errors.New("cart line missing product id")
	errInvalidQuantity  = errors.New("cart line quantity below 1")
)

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	Snapshots snapshot.Store
	Namespace string
	Logger    *logger.Logger
	Metrics   *metrics.StorefrontMetrics
}

// Service exposes the shopper-facing cart operations. Every mutation
// rehydrates the session's snapshot, applies the change in memory, and
// writes the full list back through to durable storage. Persistence failures
// are logged and counted but never fail the mutation: the returned view
// always reflects the applied change.
type Service interface {
	Get(ctx context.Context, sessionID string) (ViewDTO, error)
	AddItem(ctx context.Context, sessionID string, snap ItemSnapshot) (ViewDTO, error)
	UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (ViewDTO, error)
	RemoveItem(ctx context.Context, sessionID, productID string) (ViewDTO, error)
	Clear(ctx context.Context, sessionID string) (ViewDTO, error)
}

type service struct {
	snapshots snapshot.Store
	namespace string
	logg      *logger.Logger
	metrics   *metrics.StorefrontMetrics
}

// NewService builds a cart service with the required dependencies.
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

func (s *service) AddItem(ctx context.Context, sessionID string, snap ItemSnapshot) (ViewDTO, error) {
	if sessionID == "" {
		return ViewDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if snap.ProductID == "" {
		return ViewDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	lines := s.load(ctx, sessionID).Add(snap)
	s.metrics.IncMutation(metricsStore, "add_item")
	s.persist(ctx, sessionID, lines)
	return newView(lines), nil
}

func (s *service) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (ViewDTO, error) {
	if sessionID == "" {
		return ViewDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if productID == "" {
		return ViewDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	lines := s.load(ctx, sessionID).UpdateQuantity(productID, quantity)
	s.metrics.IncMutation(metricsStore, "update_quantity")
	s.persist(ctx, sessionID, lines)
	return newView(lines), nil
}

func (s *service) RemoveItem(ctx context.Context, sessionID, productID string) (ViewDTO, error) {
	if sessionID == "" {
		return ViewDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if productID == "" {
		return ViewDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	lines := s.load(ctx, sessionID).Remove(productID)
	s.metrics.IncMutation(metricsStore, "remove_item")
	s.persist(ctx, sessionID, lines)
	return newView(lines), nil
}

func (s *service) Clear(ctx context.Context, sessionID string) (ViewDTO, error) {
	if sessionID == "" {
		return ViewDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	lines := Lines{}
	s.metrics.IncMutation(metricsStore, "clear")
	s.persist(ctx, sessionID, lines)
	return newView(lines), nil
}

// load rehydrates the session's cart. Missing, unreadable, and corrupt
// snapshots all rehydrate as an empty cart; nothing here may fail a request.
func (s *service) load(ctx context.Context, sessionID string) Lines {
	key := snapshot.CartKey(s.namespace, sessionID)
	payload, found, err := s.snapshots.Read(ctx, key)
	if err != nil {
		s.logg.Warn(s.logg.WithSnapshotKey(ctx, key), "cart snapshot read failed, starting empty")
		return Lines{}
	}
	if !found {
		return Lines{}
	}
	lines, err := decodeLines(payload)
	if err != nil {
		s.metrics.IncCorruptRead(metricsStore)
		s.logg.Warn(s.logg.WithSnapshotKey(ctx, key), "discarding corrupt cart snapshot")
		return Lines{}
	}
	return lines
}

// persist writes the full list through to durable storage. Failures are
// swallowed: in-memory state already reflects the mutation and the shopper's
// action must not fail because persistence did.
func (s *service) persist(ctx context.Context, sessionID string, lines Lines) {
	key := snapshot.CartKey(s.namespace, sessionID)
	payload, err := encodeLines(lines)
	if err != nil {
		s.metrics.IncPersistFailure(metricsStore)
		s.logg.Error(s.logg.WithSnapshotKey(ctx, key), "encode cart snapshot", err)
		return
	}

	start := time.Now()
	if err := s.snapshots.Write(ctx, key, payload); err != nil {
		s.metrics.IncPersistFailure(metricsStore)
		s.logg.Error(s.logg.WithSnapshotKey(ctx, key), "persist cart snapshot", err)
		return
	}
	s.metrics.ObservePersistDuration(metricsStore, time.Since(start))
}

func newView(lines Lines) ViewDTO {
	items := lines
	if items == nil {
		items = Lines{}
	}
	subtotalCents := lines.SubtotalCents()
	return ViewDTO{
		Items:          items,
		ItemCount:      lines.ItemCount(),
		SubtotalCents:  subtotalCents,
		SubtotalAmount: decimal.NewFromInt(subtotalCents).Shift(-2),
	}
}
