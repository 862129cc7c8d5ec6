package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewCargoManifestDeduplication tests first-occurrence-wins dedup
func TestNewCargoManifestDeduplication(t *testing.T) {
	lines := []ManifestLine{
		{MaterialID: "MAT-X", ExpectedQuantity: 5},
		{MaterialID: "MAT-X", ExpectedQuantity: 3},
		{MaterialID: "MAT-Y", ExpectedQuantity: 2},
	}

	manifest, duplicates, err := NewCargoManifest("MAN-001", "APT-001", lines, "clerk1")

	require.NoError(t, err)
	require.Len(t, manifest.Lines, 2)
	assert.Equal(t, "MAT-X", manifest.Lines[0].MaterialID)
	assert.Equal(t, 5.0, manifest.Lines[0].ExpectedQuantity)
	assert.Equal(t, "MAT-Y", manifest.Lines[1].MaterialID)
	assert.Equal(t, 2.0, manifest.Lines[1].ExpectedQuantity)

	require.Len(t, duplicates, 1)
	assert.Equal(t, 3.0, duplicates[0].ExpectedQuantity)
}

// TestNewCargoManifestEmpty tests the at-least-one-line invariant
func TestNewCargoManifestEmpty(t *testing.T) {
	_, _, err := NewCargoManifest("MAN-001", "APT-001", nil, "clerk1")
	assert.ErrorIs(t, err, ErrNoManifestLines)
}

// TestManifestLineFor tests material lookup
func TestManifestLineFor(t *testing.T) {
	lines := []ManifestLine{
		{MaterialID: "MAT-X", ExpectedQuantity: 5},
		{MaterialID: "MAT-Y", ExpectedQuantity: 2},
	}
	manifest, _, err := NewCargoManifest("MAN-001", "APT-001", lines, "clerk1")
	require.NoError(t, err)

	line := manifest.LineFor("MAT-Y")
	require.NotNil(t, line)
	assert.Equal(t, 2.0, line.ExpectedQuantity)

	assert.Nil(t, manifest.LineFor("MAT-Z"))
	assert.Equal(t, 7.0, manifest.TotalExpectedQuantity())
}
