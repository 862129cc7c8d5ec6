package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPalletLineIsMaterializable tests eligibility rules
func TestPalletLineIsMaterializable(t *testing.T) {
	tests := []struct {
		name     string
		line     PalletLine
		eligible bool
	}{
		{
			name:     "processed with barcode",
			line:     PalletLine{PalletLineID: "PL-1", Status: PalletLineStatusProcessed, Barcode: "LPN-001"},
			eligible: true,
		},
		{
			name:     "pending with barcode",
			line:     PalletLine{PalletLineID: "PL-2", Status: PalletLineStatusPending, Barcode: "LPN-002"},
			eligible: false,
		},
		{
			name:     "processed without barcode",
			line:     PalletLine{PalletLineID: "PL-3", Status: PalletLineStatusProcessed},
			eligible: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.eligible, tt.line.IsMaterializable())
		})
	}
}

// TestPalletMaterializableLines tests line filtering
func TestPalletMaterializableLines(t *testing.T) {
	pallet := Pallet{
		PalletID: "PLT-001",
		Lines: []PalletLine{
			{PalletLineID: "PL-1", Status: PalletLineStatusProcessed, Barcode: "LPN-001"},
			{PalletLineID: "PL-2", Status: PalletLineStatusPending, Barcode: "LPN-002"},
			{PalletLineID: "PL-3", Status: PalletLineStatusProcessed, Barcode: "LPN-003"},
		},
	}

	eligible := pallet.MaterializableLines()
	require.Len(t, eligible, 2)
	assert.Equal(t, "PL-1", eligible[0].PalletLineID)
	assert.Equal(t, "PL-3", eligible[1].PalletLineID)
}

// TestReceivingOrderFindPallet tests pallet lookup
func TestReceivingOrderFindPallet(t *testing.T) {
	order := ReceivingOrder{
		OrderID:   "RCV-001",
		AccountID: "ACC-01",
		Pallets: []Pallet{
			{PalletID: "PLT-001"},
			{PalletID: "PLT-002", CrossDock: true},
		},
	}

	pallet := order.FindPallet("PLT-002")
	require.NotNil(t, pallet)
	assert.True(t, pallet.CrossDock)

	assert.Nil(t, order.FindPallet("PLT-999"))
	assert.True(t, order.HasAccount())
}

// TestNewMaterialInventory tests materialization from a pallet line
func TestNewMaterialInventory(t *testing.T) {
	expiry := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	line := PalletLine{
		PalletLineID: "PL-1",
		MaterialID:   "MAT-X",
		Quantity:     40,
		Weight:       812.5,
		BatchNumber:  "B-100",
		ExpiryDate:   &expiry,
		Barcode:      "LPN-001",
		Status:       PalletLineStatusProcessed,
	}

	inventory, err := NewMaterialInventory("INV-001", line, "PLT-001", "A-01-02-B1", "ACC-01")

	require.NoError(t, err)
	assert.Equal(t, "MAT-X", inventory.MaterialID)
	assert.Equal(t, "PL-1", inventory.PalletLineID)
	assert.Equal(t, "LPN-001", inventory.Barcode)
	assert.Equal(t, 40.0, inventory.Quantity)
	assert.Equal(t, "ACC-01", inventory.AccountID)
	assert.Equal(t, &expiry, inventory.ExpiryDate)
}

// TestNewMaterialInventoryValidation tests required fields
func TestNewMaterialInventoryValidation(t *testing.T) {
	base := PalletLine{
		PalletLineID: "PL-1",
		MaterialID:   "MAT-X",
		Barcode:      "LPN-001",
		Status:       PalletLineStatusProcessed,
	}

	tests := []struct {
		name        string
		mutate      func(l *PalletLine) PalletLine
		accountID   string
		expectError error
	}{
		{
			name:        "missing material",
			mutate:      func(l *PalletLine) PalletLine { l.MaterialID = ""; return *l },
			accountID:   "ACC-01",
			expectError: ErrMissingMaterial,
		},
		{
			name:        "missing pallet line id",
			mutate:      func(l *PalletLine) PalletLine { l.PalletLineID = ""; return *l },
			accountID:   "ACC-01",
			expectError: ErrMissingPalletLine,
		},
		{
			name:        "missing barcode",
			mutate:      func(l *PalletLine) PalletLine { l.Barcode = ""; return *l },
			accountID:   "ACC-01",
			expectError: ErrMissingBarcode,
		},
		{
			name:        "missing account",
			mutate:      func(l *PalletLine) PalletLine { return *l },
			accountID:   "",
			expectError: ErrMissingAccount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := base
			line = tt.mutate(&line)
			_, err := NewMaterialInventory("INV-001", line, "PLT-001", "A-01-02-B1", tt.accountID)
			assert.ErrorIs(t, err, tt.expectError)
		})
	}
}

// TestApplyRemeasure tests in-place refresh
func TestApplyRemeasure(t *testing.T) {
	line := PalletLine{
		PalletLineID: "PL-1",
		MaterialID:   "MAT-X",
		Quantity:     40,
		Weight:       812.5,
		Barcode:      "LPN-001",
		Status:       PalletLineStatusProcessed,
	}
	inventory, err := NewMaterialInventory("INV-001", line, "PLT-001", "A-01-02-B1", "ACC-01")
	require.NoError(t, err)

	expiry := time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC)
	inventory.ApplyRemeasure(38, 798.0, "B-200", &expiry)

	assert.Equal(t, 38.0, inventory.Quantity)
	assert.Equal(t, 798.0, inventory.Weight)
	assert.Equal(t, "B-200", inventory.BatchNumber)
	assert.Equal(t, &expiry, inventory.ExpiryDate)
}
