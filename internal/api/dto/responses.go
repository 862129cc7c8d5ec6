package dto

import "time"

// AppointmentResponse represents the response for an appointment
type AppointmentResponse struct {
	ID            string    `json:"id"`
	AppointmentID string    `json:"appointmentId"`
	DockID        string    `json:"dockId"`
	TruckID       string    `json:"truckId,omitempty"`
	SupplierID    string    `json:"supplierId"`
	AccountID     string    `json:"accountId"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	Type          string    `json:"type"`
	Status        string    `json:"status"`
	ManifestID    string    `json:"manifestId,omitempty"`
	CreatedBy     string    `json:"createdBy"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// AppointmentListResponse represents a list of appointments for a dock
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// SlotAvailabilityResponse represents a slot availability check result
type SlotAvailabilityResponse struct {
	DockID    string    `json:"dockId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Available bool      `json:"available"`
}

// ManifestLineResponse represents one manifest line
type ManifestLineResponse struct {
	MaterialID       string  `json:"materialId"`
	Description      string  `json:"description,omitempty"`
	ExpectedQuantity float64 `json:"expectedQuantity"`
}

// ManifestResponse represents the response for a cargo manifest
type ManifestResponse struct {
	ID            string                 `json:"id"`
	ManifestID    string                 `json:"manifestId"`
	AppointmentID string                 `json:"appointmentId"`
	Lines         []ManifestLineResponse `json:"lines"`
	CreatedBy     string                 `json:"createdBy"`
	CreatedAt     time.Time              `json:"createdAt"`
}

// CheckInResponse represents the result of a truck check-in
type CheckInResponse struct {
	TruckID string `json:"truckId"`
	SpotID  string `json:"spotId"`
	Status  string `json:"status"`
}

// SpotResponse represents the response for a yard spot
type SpotResponse struct {
	ID          string    `json:"id"`
	SpotID      string    `json:"spotId"`
	WarehouseID string    `json:"warehouseId"`
	Status      string    `json:"status"`
	TruckID     string    `json:"truckId,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SpotListResponse represents a list of yard spots
type SpotListResponse struct {
	Spots []SpotResponse `json:"spots"`
	Total int            `json:"total"`
}

// DockResponse represents the response for a dock
type DockResponse struct {
	ID                   string    `json:"id"`
	DockID               string    `json:"dockId"`
	WarehouseID          string    `json:"warehouseId"`
	CurrentAppointmentID string    `json:"currentAppointmentId,omitempty"`
	Occupied             bool      `json:"occupied"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// InventoryResponse represents one materialized inventory record
type InventoryResponse struct {
	ID           string     `json:"id"`
	InventoryID  string     `json:"inventoryId"`
	MaterialID   string     `json:"materialId"`
	LocationID   string     `json:"locationId"`
	PalletID     string     `json:"palletId"`
	PalletLineID string     `json:"palletLineId"`
	Quantity     float64    `json:"quantity"`
	Weight       float64    `json:"weight"`
	BatchNumber  string     `json:"batchNumber,omitempty"`
	ExpiryDate   *time.Time `json:"expiryDate,omitempty"`
	AccountID    string     `json:"accountId"`
	Barcode      string     `json:"barcode"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// InventoryListResponse represents the inventory materialized for a pallet
type InventoryListResponse struct {
	Records []InventoryResponse `json:"records"`
	Total   int                 `json:"total"`
}
