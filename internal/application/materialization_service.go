package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/wms-platform/yard-service/internal/domain"
	"github.com/wms-platform/yard-service/pkg/logging"
	"github.com/wms-platform/yard-service/pkg/metrics"
)

// Skip reasons; a skipped line is expected, not a failure
const (
	skipReasonNotProcessed   = "not_processed"
	skipReasonMissingBarcode = "missing_barcode"
)

// Failure reasons for metrics
const (
	failureReasonOrderNotFound  = "order_not_found"
	failureReasonPalletNotFound = "pallet_not_found"
	failureReasonMissingAccount = "missing_account"
	failureReasonLineNotFound   = "line_not_found"
	failureReasonWriteFailed    = "write_failed"
)

// MaterializationService turns processed pallet lines into trackable
// inventory records. Idempotent by pallet-line id: redelivery of the same
// event updates records in place instead of duplicating them.
type MaterializationService struct {
	receiving domain.ReceivingRepository
	inventory domain.InventoryRepository
	uow       domain.UnitOfWork
	publisher domain.EventPublisher
	metrics   *metrics.Metrics
	logger    *logging.Logger
}

// NewMaterializationService creates a new MaterializationService
func NewMaterializationService(
	receiving domain.ReceivingRepository,
	inventory domain.InventoryRepository,
	uow domain.UnitOfWork,
	publisher domain.EventPublisher,
	m *metrics.Metrics,
	logger *logging.Logger,
) *MaterializationService {
	return &MaterializationService{
		receiving: receiving,
		inventory: inventory,
		uow:       uow,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
	}
}

// IsFatalMaterializationError reports whether the error indicates an event
// published inconsistently with committed state. Fatal errors are logged
// and never retried; everything else is retriable via redelivery.
func IsFatalMaterializationError(err error) bool {
	return errors.Is(err, domain.ErrReceivingOrderNotFound) ||
		errors.Is(err, domain.ErrPalletNotFound) ||
		errors.Is(err, domain.ErrMissingAccount)
}

// HandlePalletReceived materializes inventory for every eligible line on
// the pallet, commits them as one unit of work, then requests putaway for
// the pallet unless it is flagged cross-dock.
func (s *MaterializationService) HandlePalletReceived(ctx context.Context, event *domain.PalletReceivedEvent) error {
	order, pallet, err := s.loadPallet(ctx, event.PalletID)
	if err != nil {
		return err
	}

	eligible := pallet.MaterializableLines()
	for _, line := range pallet.Lines {
		if !line.IsMaterializable() {
			s.recordSkip(line, event.PalletID)
		}
	}

	var created, updated int
	err = s.uow.Execute(ctx, func(txCtx context.Context) error {
		for _, line := range eligible {
			wasCreated, err := s.materializeLine(txCtx, line, pallet.PalletID, event.LocationID, order.AccountID)
			if err != nil {
				return err
			}
			if wasCreated {
				created++
			} else {
				updated++
			}
		}
		return nil
	})
	if err != nil {
		s.metrics.RecordMaterializationFailure(failureReasonWriteFailed)
		return fmt.Errorf("materialize pallet %s: %w", event.PalletID, err)
	}

	for i := 0; i < created; i++ {
		s.metrics.RecordPalletLineMaterialized("created")
	}
	for i := 0; i < updated; i++ {
		s.metrics.RecordPalletLineMaterialized("updated")
	}

	now := event.OccurredAt()
	materialized := &domain.InventoryMaterializedEvent{
		PalletID:     pallet.PalletID,
		LocationID:   event.LocationID,
		CreatedCount: created,
		UpdatedCount: updated,
		SkippedCount: len(pallet.Lines) - len(eligible),
		OccurredAt_:  now,
	}
	s.publishEvents(ctx, []domain.DomainEvent{materialized})

	// Exactly one putaway trigger per pallet, never for cross-dock freight
	if !pallet.CrossDock && len(eligible) > 0 {
		putaway := &domain.PutawayRequestedEvent{
			PalletID:    pallet.PalletID,
			LocationID:  event.LocationID,
			LineCount:   len(eligible),
			RequestedAt: now,
		}
		s.publishEvents(ctx, []domain.DomainEvent{putaway})
		s.metrics.RecordPutawayTriggered()
	}

	s.logger.Info("Materialized pallet",
		"palletId", pallet.PalletID,
		"created", created,
		"updated", updated,
		"skipped", len(pallet.Lines)-len(eligible),
		"crossDock", pallet.CrossDock,
	)

	return nil
}

// HandleMaterialReceived re-materializes a single pallet line, the
// re-measure path after the pallet-level event already fired. No putaway
// trigger is issued here.
func (s *MaterializationService) HandleMaterialReceived(ctx context.Context, event *domain.MaterialReceivedEvent) error {
	order, pallet, err := s.loadPallet(ctx, event.PalletID)
	if err != nil {
		return err
	}

	line := pallet.FindLine(event.PalletLineID)
	if line == nil {
		s.metrics.RecordMaterializationFailure(failureReasonLineNotFound)
		s.logger.Error("Pallet line referenced by event does not exist",
			"palletId", event.PalletID,
			"palletLineId", event.PalletLineID,
		)
		return domain.ErrPalletNotFound
	}

	if !line.IsMaterializable() {
		s.recordSkip(*line, event.PalletID)
		return nil
	}

	err = s.uow.Execute(ctx, func(txCtx context.Context) error {
		_, err := s.materializeLine(txCtx, *line, pallet.PalletID, event.LocationID, order.AccountID)
		return err
	})
	if err != nil {
		s.metrics.RecordMaterializationFailure(failureReasonWriteFailed)
		return fmt.Errorf("materialize line %s: %w", event.PalletLineID, err)
	}

	s.logger.Info("Materialized pallet line",
		"palletId", event.PalletID,
		"palletLineId", event.PalletLineID,
	)

	return nil
}

// GetPalletInventory retrieves the inventory records materialized for a pallet
func (s *MaterializationService) GetPalletInventory(ctx context.Context, palletID string) ([]*domain.MaterialInventory, error) {
	return s.inventory.FindByPalletID(ctx, palletID)
}

// loadPallet resolves the receiving aggregate and pallet for an event and
// verifies the owning account. All failures here are fatal for the event.
func (s *MaterializationService) loadPallet(ctx context.Context, palletID string) (*domain.ReceivingOrder, *domain.Pallet, error) {
	order, err := s.receiving.FindByPalletID(ctx, palletID)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		s.metrics.RecordMaterializationFailure(failureReasonOrderNotFound)
		s.logger.Error("Pallet-received event references an unknown receiving order",
			"palletId", palletID,
		)
		return nil, nil, domain.ErrReceivingOrderNotFound
	}

	pallet := order.FindPallet(palletID)
	if pallet == nil {
		s.metrics.RecordMaterializationFailure(failureReasonPalletNotFound)
		s.logger.Error("Receiving order does not contain the pallet",
			"orderId", order.OrderID,
			"palletId", palletID,
		)
		return nil, nil, domain.ErrPalletNotFound
	}

	if !order.HasAccount() {
		s.metrics.RecordMaterializationFailure(failureReasonMissingAccount)
		s.logger.Error("Receiving order has no billing account",
			"orderId", order.OrderID,
			"palletId", palletID,
		)
		return nil, nil, domain.ErrMissingAccount
	}

	return order, pallet, nil
}

// materializeLine creates or refreshes the inventory record keyed by the
// pallet-line id. Returns true when a new record was created.
func (s *MaterializationService) materializeLine(ctx context.Context, line domain.PalletLine, palletID, locationID, accountID string) (bool, error) {
	existing, err := s.inventory.FindByPalletLineID(ctx, line.PalletLineID)
	if err != nil {
		return false, err
	}

	if existing != nil {
		existing.ApplyRemeasure(line.Quantity, line.Weight, line.BatchNumber, line.ExpiryDate)
		return false, s.inventory.Save(ctx, existing)
	}

	inventory, err := domain.NewMaterialInventory(
		fmt.Sprintf("INV-%s", uuid.New().String()),
		line,
		palletID,
		locationID,
		accountID,
	)
	if err != nil {
		return false, err
	}

	return true, s.inventory.Save(ctx, inventory)
}

func (s *MaterializationService) recordSkip(line domain.PalletLine, palletID string) {
	reason := skipReasonNotProcessed
	if line.Status == domain.PalletLineStatusProcessed {
		reason = skipReasonMissingBarcode
	}
	s.metrics.RecordPalletLineSkipped(reason)
	s.logger.Info("Skipped pallet line",
		"palletId", palletID,
		"palletLineId", line.PalletLineID,
		"reason", reason,
	)
}

func (s *MaterializationService) publishEvents(ctx context.Context, events []domain.DomainEvent) {
	if err := s.publisher.PublishAll(ctx, events); err != nil {
		s.logger.WithError(err).Error("Failed to publish domain events")
	}
}
