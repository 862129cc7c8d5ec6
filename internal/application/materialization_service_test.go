package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wms-platform/yard-service/internal/domain"
)

type materializationFixture struct {
	service   *MaterializationService
	receiving *fakeReceivingRepo
	inventory *fakeInventoryRepo
	publisher *fakePublisher
}

func newMaterializationFixture(t *testing.T) *materializationFixture {
	t.Helper()
	f := &materializationFixture{
		receiving: &fakeReceivingRepo{},
		inventory: &fakeInventoryRepo{},
		publisher: &fakePublisher{},
	}
	f.service = NewMaterializationService(f.receiving, f.inventory, &fakeUnitOfWork{}, f.publisher, testMetrics(), testLogger())
	return f
}

func (f *materializationFixture) addOrder(order *domain.ReceivingOrder) {
	if f.receiving.orders == nil {
		f.receiving.orders = make(map[string]*domain.ReceivingOrder)
	}
	f.receiving.orders[order.OrderID] = order
}

func processedLine(palletLineID, materialID string, quantity float64) domain.PalletLine {
	return domain.PalletLine{
		PalletLineID: palletLineID,
		MaterialID:   materialID,
		Quantity:     quantity,
		Weight:       quantity * 2.5,
		BatchNumber:  "BATCH-01",
		Barcode:      "BC-" + palletLineID,
		Status:       domain.PalletLineStatusProcessed,
	}
}

func orderWithPallet(accountID string, pallet domain.Pallet) *domain.ReceivingOrder {
	return &domain.ReceivingOrder{
		OrderID:    "RCV-001",
		SupplierID: "SUP-01",
		AccountID:  accountID,
		Pallets:    []domain.Pallet{pallet},
	}
}

func palletReceived(palletID string) *domain.PalletReceivedEvent {
	return &domain.PalletReceivedEvent{
		PalletID:         palletID,
		ReceivingOrderID: "RCV-001",
		LocationID:       "A-01-01-R",
		ReceivedBy:       "dock1",
		ReceivedAt:       time.Now().UTC(),
	}
}

// TestHandlePalletReceived tests full materialization of a pallet
func TestHandlePalletReceived(t *testing.T) {
	f := newMaterializationFixture(t)
	ctx := context.Background()

	f.addOrder(orderWithPallet("ACC-01", domain.Pallet{
		PalletID: "PLT-001",
		Lines: []domain.PalletLine{
			processedLine("PL-001", "MAT-001", 10),
			processedLine("PL-002", "MAT-002", 4),
		},
	}))

	require.NoError(t, f.service.HandlePalletReceived(ctx, palletReceived("PLT-001")))

	assert.Len(t, f.inventory.records, 2)

	record := f.inventory.records["PL-001"]
	require.NotNil(t, record)
	assert.Equal(t, "MAT-001", record.MaterialID)
	assert.Equal(t, "A-01-01-R", record.LocationID)
	assert.Equal(t, "PLT-001", record.PalletID)
	assert.Equal(t, "ACC-01", record.AccountID)
	assert.Equal(t, 10.0, record.Quantity)

	require.Len(t, f.publisher.events, 2)
	materialized, ok := f.publisher.events[0].(*domain.InventoryMaterializedEvent)
	require.True(t, ok)
	assert.Equal(t, 2, materialized.CreatedCount)
	assert.Equal(t, 0, materialized.UpdatedCount)
	assert.Equal(t, 0, materialized.SkippedCount)

	putaway, ok := f.publisher.events[1].(*domain.PutawayRequestedEvent)
	require.True(t, ok)
	assert.Equal(t, "PLT-001", putaway.PalletID)
	assert.Equal(t, 2, putaway.LineCount)
}

// TestHandlePalletReceivedIdempotent tests that redelivering the same event
// never produces duplicate inventory records
func TestHandlePalletReceivedIdempotent(t *testing.T) {
	f := newMaterializationFixture(t)
	ctx := context.Background()

	pallet := domain.Pallet{
		PalletID: "PLT-001",
		Lines:    []domain.PalletLine{processedLine("PL-001", "MAT-001", 10)},
	}
	f.addOrder(orderWithPallet("ACC-01", pallet))

	require.NoError(t, f.service.HandlePalletReceived(ctx, palletReceived("PLT-001")))
	require.Len(t, f.inventory.records, 1)

	// re-measure before the redelivery
	order := f.receiving.orders["RCV-001"]
	order.Pallets[0].Lines[0].Quantity = 8
	order.Pallets[0].Lines[0].Weight = 20

	require.NoError(t, f.service.HandlePalletReceived(ctx, palletReceived("PLT-001")))

	assert.Len(t, f.inventory.records, 1)
	record := f.inventory.records["PL-001"]
	assert.Equal(t, 8.0, record.Quantity)
	assert.Equal(t, 20.0, record.Weight)

	// second delivery reports an update, not a create
	materialized, ok := f.publisher.events[2].(*domain.InventoryMaterializedEvent)
	require.True(t, ok)
	assert.Equal(t, 0, materialized.CreatedCount)
	assert.Equal(t, 1, materialized.UpdatedCount)
}

// TestHandlePalletReceivedSkipsIneligibleLines tests skip vs failure
func TestHandlePalletReceivedSkipsIneligibleLines(t *testing.T) {
	f := newMaterializationFixture(t)
	ctx := context.Background()

	pending := processedLine("PL-002", "MAT-002", 4)
	pending.Status = domain.PalletLineStatusPending
	noBarcode := processedLine("PL-003", "MAT-003", 6)
	noBarcode.Barcode = ""

	f.addOrder(orderWithPallet("ACC-01", domain.Pallet{
		PalletID: "PLT-001",
		Lines:    []domain.PalletLine{processedLine("PL-001", "MAT-001", 10), pending, noBarcode},
	}))

	require.NoError(t, f.service.HandlePalletReceived(ctx, palletReceived("PLT-001")))

	assert.Len(t, f.inventory.records, 1)
	assert.NotNil(t, f.inventory.records["PL-001"])

	materialized, ok := f.publisher.events[0].(*domain.InventoryMaterializedEvent)
	require.True(t, ok)
	assert.Equal(t, 1, materialized.CreatedCount)
	assert.Equal(t, 2, materialized.SkippedCount)
}

// TestPutawayTriggers tests the cross-dock suppression rule
func TestPutawayTriggers(t *testing.T) {
	tests := []struct {
		name          string
		crossDock     bool
		lines         []domain.PalletLine
		expectPutaway bool
	}{
		{
			name:          "standard pallet triggers putaway",
			lines:         []domain.PalletLine{processedLine("PL-001", "MAT-001", 10)},
			expectPutaway: true,
		},
		{
			name:          "cross-dock pallet never triggers putaway",
			crossDock:     true,
			lines:         []domain.PalletLine{processedLine("PL-001", "MAT-001", 10)},
			expectPutaway: false,
		},
		{
			name: "pallet with no eligible lines triggers nothing",
			lines: func() []domain.PalletLine {
				line := processedLine("PL-001", "MAT-001", 10)
				line.Status = domain.PalletLineStatusPending
				return []domain.PalletLine{line}
			}(),
			expectPutaway: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMaterializationFixture(t)
			f.addOrder(orderWithPallet("ACC-01", domain.Pallet{
				PalletID:  "PLT-001",
				CrossDock: tt.crossDock,
				Lines:     tt.lines,
			}))

			require.NoError(t, f.service.HandlePalletReceived(context.Background(), palletReceived("PLT-001")))

			putawayCount := 0
			for _, eventType := range f.publisher.eventTypes() {
				if eventType == "yard.putaway.requested" {
					putawayCount++
				}
			}
			if tt.expectPutaway {
				assert.Equal(t, 1, putawayCount)
			} else {
				assert.Zero(t, putawayCount)
			}
		})
	}
}

// TestHandlePalletReceivedFatalErrors tests the fatal failure paths
func TestHandlePalletReceivedFatalErrors(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(f *materializationFixture)
		expectError error
	}{
		{
			name:        "unknown pallet",
			setup:       func(f *materializationFixture) {},
			expectError: domain.ErrReceivingOrderNotFound,
		},
		{
			name: "order without billing account",
			setup: func(f *materializationFixture) {
				f.addOrder(orderWithPallet("", domain.Pallet{
					PalletID: "PLT-001",
					Lines:    []domain.PalletLine{processedLine("PL-001", "MAT-001", 10)},
				}))
			},
			expectError: domain.ErrMissingAccount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMaterializationFixture(t)
			tt.setup(f)

			err := f.service.HandlePalletReceived(context.Background(), palletReceived("PLT-001"))

			assert.ErrorIs(t, err, tt.expectError)
			assert.True(t, IsFatalMaterializationError(err))
			assert.Empty(t, f.inventory.records)
			assert.Empty(t, f.publisher.events)
		})
	}
}

// TestHandlePalletReceivedWriteFailureIsRetriable tests that storage errors
// are not classified fatal
func TestHandlePalletReceivedWriteFailureIsRetriable(t *testing.T) {
	f := newMaterializationFixture(t)
	f.inventory.saveErr = errors.New("connection reset")

	f.addOrder(orderWithPallet("ACC-01", domain.Pallet{
		PalletID: "PLT-001",
		Lines:    []domain.PalletLine{processedLine("PL-001", "MAT-001", 10)},
	}))

	err := f.service.HandlePalletReceived(context.Background(), palletReceived("PLT-001"))

	require.Error(t, err)
	assert.False(t, IsFatalMaterializationError(err))
	assert.Empty(t, f.publisher.events)
}

// TestHandleMaterialReceived tests the single-line re-measure path
func TestHandleMaterialReceived(t *testing.T) {
	f := newMaterializationFixture(t)
	ctx := context.Background()

	f.addOrder(orderWithPallet("ACC-01", domain.Pallet{
		PalletID: "PLT-001",
		Lines:    []domain.PalletLine{processedLine("PL-001", "MAT-001", 10)},
	}))

	event := &domain.MaterialReceivedEvent{
		PalletID:     "PLT-001",
		PalletLineID: "PL-001",
		LocationID:   "A-01-01-R",
		ReceivedAt:   time.Now().UTC(),
	}

	require.NoError(t, f.service.HandleMaterialReceived(ctx, event))
	require.Len(t, f.inventory.records, 1)

	// re-measure updates in place
	f.receiving.orders["RCV-001"].Pallets[0].Lines[0].Quantity = 7
	require.NoError(t, f.service.HandleMaterialReceived(ctx, event))

	assert.Len(t, f.inventory.records, 1)
	assert.Equal(t, 7.0, f.inventory.records["PL-001"].Quantity)

	// no putaway from the single-line path
	for _, eventType := range f.publisher.eventTypes() {
		assert.NotEqual(t, "yard.putaway.requested", eventType)
	}
}

// TestHandleMaterialReceivedUnknownLine tests the wrong-line failure path
func TestHandleMaterialReceivedUnknownLine(t *testing.T) {
	f := newMaterializationFixture(t)

	f.addOrder(orderWithPallet("ACC-01", domain.Pallet{
		PalletID: "PLT-001",
		Lines:    []domain.PalletLine{processedLine("PL-001", "MAT-001", 10)},
	}))

	err := f.service.HandleMaterialReceived(context.Background(), &domain.MaterialReceivedEvent{
		PalletID:     "PLT-001",
		PalletLineID: "PL-999",
		LocationID:   "A-01-01-R",
		ReceivedAt:   time.Now().UTC(),
	})

	assert.ErrorIs(t, err, domain.ErrPalletNotFound)
	assert.Empty(t, f.inventory.records)
}

// TestHandleMaterialReceivedSkipsIneligibleLine tests that an ineligible
// line is bypassed without error
func TestHandleMaterialReceivedSkipsIneligibleLine(t *testing.T) {
	f := newMaterializationFixture(t)

	line := processedLine("PL-001", "MAT-001", 10)
	line.Status = domain.PalletLineStatusPending
	f.addOrder(orderWithPallet("ACC-01", domain.Pallet{PalletID: "PLT-001", Lines: []domain.PalletLine{line}}))

	err := f.service.HandleMaterialReceived(context.Background(), &domain.MaterialReceivedEvent{
		PalletID:     "PLT-001",
		PalletLineID: "PL-001",
		LocationID:   "A-01-01-R",
		ReceivedAt:   time.Now().UTC(),
	})

	require.NoError(t, err)
	assert.Empty(t, f.inventory.records)
}

// TestGetPalletInventory tests the query path
func TestGetPalletInventory(t *testing.T) {
	f := newMaterializationFixture(t)
	ctx := context.Background()

	f.addOrder(orderWithPallet("ACC-01", domain.Pallet{
		PalletID: "PLT-001",
		Lines: []domain.PalletLine{
			processedLine("PL-001", "MAT-001", 10),
			processedLine("PL-002", "MAT-002", 4),
		},
	}))
	require.NoError(t, f.service.HandlePalletReceived(ctx, palletReceived("PLT-001")))

	records, err := f.service.GetPalletInventory(ctx, "PLT-001")
	require.NoError(t, err)
	assert.Len(t, records, 2)

	empty, err := f.service.GetPalletInventory(ctx, "PLT-999")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
