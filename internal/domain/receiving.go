package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PalletLineStatus represents the processing state of a pallet line
type PalletLineStatus string

const (
	PalletLineStatusPending   PalletLineStatus = "pending"
	PalletLineStatusProcessed PalletLineStatus = "processed"
)

// PalletLine is one material entry within a physical pallet, the unit of
// inventory materialization
type PalletLine struct {
	PalletLineID string           `bson:"palletLineId" json:"palletLineId"`
	MaterialID   string           `bson:"materialId" json:"materialId"`
	Quantity     float64          `bson:"quantity" json:"quantity"`
	Weight       float64          `bson:"weight" json:"weight"`
	BatchNumber  string           `bson:"batchNumber,omitempty" json:"batchNumber,omitempty"`
	ExpiryDate   *time.Time       `bson:"expiryDate,omitempty" json:"expiryDate,omitempty"`
	Barcode      string           `bson:"barcode,omitempty" json:"barcode,omitempty"`
	Status       PalletLineStatus `bson:"status" json:"status"`
}

// IsMaterializable returns true when the line is processed and carries a
// barcode. Lines failing either condition are bypassed, not failed; a
// separate operator action completes them later.
func (l *PalletLine) IsMaterializable() bool {
	return l.Status == PalletLineStatusProcessed && l.Barcode != ""
}

// Pallet groups lines received together. Cross-dock pallets bypass
// standard putaway.
type Pallet struct {
	PalletID  string       `bson:"palletId" json:"palletId"`
	CrossDock bool         `bson:"crossDock" json:"crossDock"`
	Lines     []PalletLine `bson:"lines" json:"lines"`
}

// MaterializableLines returns the lines eligible for materialization
func (p *Pallet) MaterializableLines() []PalletLine {
	eligible := make([]PalletLine, 0, len(p.Lines))
	for _, line := range p.Lines {
		if line.IsMaterializable() {
			eligible = append(eligible, line)
		}
	}
	return eligible
}

// FindLine returns the pallet line with the given id, or nil
func (p *Pallet) FindLine(palletLineID string) *PalletLine {
	for i := range p.Lines {
		if p.Lines[i].PalletLineID == palletLineID {
			return &p.Lines[i]
		}
	}
	return nil
}

// ReceivingOrder is the receiving aggregate consumed by the materialization
// pipeline; it is owned and written by the receiving workflow, read-only here
type ReceivingOrder struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID       string             `bson:"orderId" json:"orderId"`
	AppointmentID string             `bson:"appointmentId,omitempty" json:"appointmentId,omitempty"`
	SupplierID    string             `bson:"supplierId" json:"supplierId"`
	AccountID     string             `bson:"accountId,omitempty" json:"accountId,omitempty"`
	Pallets       []Pallet           `bson:"pallets" json:"pallets"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// FindPallet returns the pallet with the given id, or nil
func (r *ReceivingOrder) FindPallet(palletID string) *Pallet {
	for i := range r.Pallets {
		if r.Pallets[i].PalletID == palletID {
			return &r.Pallets[i]
		}
	}
	return nil
}

// HasAccount reports whether the order carries a billing account. A missing
// account at materialization time is a configuration error, not a per-line
// skip.
func (r *ReceivingOrder) HasAccount() bool {
	return r.AccountID != ""
}
