package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaterialInventory errors
var (
	ErrMissingMaterial   = errors.New("inventory record requires a material")
	ErrMissingPalletLine = errors.New("inventory record requires a pallet line")
	ErrMissingBarcode    = errors.New("inventory record requires a barcode")
)

// MaterialInventory is a trackable inventory record materialized from a
// processed pallet line. At most one record exists per pallet line; the
// pallet-line id is the idempotency key.
type MaterialInventory struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	InventoryID  string             `bson:"inventoryId" json:"inventoryId"`
	MaterialID   string             `bson:"materialId" json:"materialId"`
	LocationID   string             `bson:"locationId" json:"locationId"`
	PalletID     string             `bson:"palletId" json:"palletId"`
	PalletLineID string             `bson:"palletLineId" json:"palletLineId"`
	Quantity     float64            `bson:"quantity" json:"quantity"`
	Weight       float64            `bson:"weight" json:"weight"`
	BatchNumber  string             `bson:"batchNumber,omitempty" json:"batchNumber,omitempty"`
	ExpiryDate   *time.Time         `bson:"expiryDate,omitempty" json:"expiryDate,omitempty"`
	AccountID    string             `bson:"accountId" json:"accountId"`
	Barcode      string             `bson:"barcode" json:"barcode"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewMaterialInventory materializes an inventory record from a pallet line.
// The line's barcode becomes the inventory barcode; no independent barcode
// generation happens at this stage.
func NewMaterialInventory(
	inventoryID string,
	line PalletLine,
	palletID string,
	locationID string,
	accountID string,
) (*MaterialInventory, error) {
	if line.MaterialID == "" {
		return nil, ErrMissingMaterial
	}
	if line.PalletLineID == "" {
		return nil, ErrMissingPalletLine
	}
	if line.Barcode == "" {
		return nil, ErrMissingBarcode
	}
	if accountID == "" {
		return nil, ErrMissingAccount
	}

	now := time.Now().UTC()
	return &MaterialInventory{
		ID:           primitive.NewObjectID(),
		InventoryID:  inventoryID,
		MaterialID:   line.MaterialID,
		LocationID:   locationID,
		PalletID:     palletID,
		PalletLineID: line.PalletLineID,
		Quantity:     line.Quantity,
		Weight:       line.Weight,
		BatchNumber:  line.BatchNumber,
		ExpiryDate:   line.ExpiryDate,
		AccountID:    accountID,
		Barcode:      line.Barcode,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// ApplyRemeasure refreshes quantity, weight, batch and expiry in place.
// Redelivery of the same pallet-received event lands here instead of
// creating a duplicate record.
func (m *MaterialInventory) ApplyRemeasure(quantity, weight float64, batchNumber string, expiryDate *time.Time) {
	m.Quantity = quantity
	m.Weight = weight
	m.BatchNumber = batchNumber
	m.ExpiryDate = expiryDate
	m.UpdatedAt = time.Now().UTC()
}
