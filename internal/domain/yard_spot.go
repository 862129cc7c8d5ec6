package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SpotStatus represents the occupancy state of a yard spot
type SpotStatus string

const (
	SpotStatusAvailable SpotStatus = "available"
	SpotStatusOccupied  SpotStatus = "occupied"
	SpotStatusReserved  SpotStatus = "reserved"
)

// IsValid checks if the status is valid
func (s SpotStatus) IsValid() bool {
	switch s {
	case SpotStatusAvailable, SpotStatusOccupied, SpotStatusReserved:
		return true
	default:
		return false
	}
}

// YardSpot is a physical parking location trucks wait in before dock
// assignment
type YardSpot struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SpotID       string             `bson:"spotId" json:"spotId"`
	WarehouseID  string             `bson:"warehouseId" json:"warehouseId"`
	Status       SpotStatus         `bson:"status" json:"status"`
	TruckID      string             `bson:"truckId,omitempty" json:"truckId,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
	DomainEvents []DomainEvent      `bson:"-" json:"-"`
}

// NewYardSpot creates a new YardSpot entity
func NewYardSpot(spotID, warehouseID string) *YardSpot {
	now := time.Now().UTC()
	return &YardSpot{
		ID:           primitive.NewObjectID(),
		SpotID:       spotID,
		WarehouseID:  warehouseID,
		Status:       SpotStatusAvailable,
		CreatedAt:    now,
		UpdatedAt:    now,
		DomainEvents: make([]DomainEvent, 0),
	}
}

// Occupy binds a truck to the spot. Only legal from available.
func (s *YardSpot) Occupy(truckID string) error {
	if s.Status != SpotStatusAvailable {
		return ErrSpotUnavailable
	}

	s.Status = SpotStatusOccupied
	s.TruckID = truckID
	s.UpdatedAt = time.Now().UTC()

	return nil
}

// Reserve holds the spot for an expected truck. Only legal from available.
func (s *YardSpot) Reserve(truckID string) error {
	if s.Status != SpotStatusAvailable {
		return ErrSpotUnavailable
	}

	s.Status = SpotStatusReserved
	s.TruckID = truckID
	s.UpdatedAt = time.Now().UTC()

	return nil
}

// Vacate always returns the spot to available regardless of prior state.
// The unconditional reset is the recovery path for inconsistent spots.
func (s *YardSpot) Vacate() {
	s.Status = SpotStatusAvailable
	s.TruckID = ""
	s.UpdatedAt = time.Now().UTC()
}

// GetDomainEvents returns all domain events
func (s *YardSpot) GetDomainEvents() []DomainEvent {
	return s.DomainEvents
}

// ClearDomainEvents clears all domain events
func (s *YardSpot) ClearDomainEvents() {
	s.DomainEvents = make([]DomainEvent, 0)
}
