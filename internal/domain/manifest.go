package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ManifestLine is one expected material entry on a cargo manifest
type ManifestLine struct {
	MaterialID       string  `bson:"materialId" json:"materialId"`
	Description      string  `bson:"description,omitempty" json:"description,omitempty"`
	ExpectedQuantity float64 `bson:"expectedQuantity" json:"expectedQuantity"`
}

// CargoManifest declares the expected contents of an inbound shipment,
// one-to-one with an appointment. Immutable after creation; amendment
// flows go through a new manifest.
type CargoManifest struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ManifestID    string             `bson:"manifestId" json:"manifestId"`
	AppointmentID string             `bson:"appointmentId" json:"appointmentId"`
	Lines         []ManifestLine     `bson:"lines" json:"lines"`
	CreatedBy     string             `bson:"createdBy" json:"createdBy"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// NewCargoManifest creates a manifest from declared lines. Duplicate
// materials are collapsed to the first occurrence; later duplicates are
// returned so the caller can log them.
func NewCargoManifest(manifestID, appointmentID string, lines []ManifestLine, actorID string) (*CargoManifest, []ManifestLine, error) {
	if len(lines) == 0 {
		return nil, nil, ErrNoManifestLines
	}

	seen := make(map[string]bool, len(lines))
	deduped := make([]ManifestLine, 0, len(lines))
	var duplicates []ManifestLine

	for _, line := range lines {
		if seen[line.MaterialID] {
			duplicates = append(duplicates, line)
			continue
		}
		seen[line.MaterialID] = true
		deduped = append(deduped, line)
	}

	manifest := &CargoManifest{
		ID:            primitive.NewObjectID(),
		ManifestID:    manifestID,
		AppointmentID: appointmentID,
		Lines:         deduped,
		CreatedBy:     actorID,
		CreatedAt:     time.Now().UTC(),
	}

	return manifest, duplicates, nil
}

// LineFor returns the manifest line for a material, or nil
func (m *CargoManifest) LineFor(materialID string) *ManifestLine {
	for i := range m.Lines {
		if m.Lines[i].MaterialID == materialID {
			return &m.Lines[i]
		}
	}
	return nil
}

// TotalExpectedQuantity returns the sum of expected quantities across lines
func (m *CargoManifest) TotalExpectedQuantity() float64 {
	total := 0.0
	for _, line := range m.Lines {
		total += line.ExpectedQuantity
	}
	return total
}
