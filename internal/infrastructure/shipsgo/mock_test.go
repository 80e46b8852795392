package shipsgo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipdesk/backend/internal/domain/tracking"
)

func TestSyntheticResult(t *testing.T) {
	t.Run("echoes container identifier", func(t *testing.T) {
		id, err := tracking.NewContainerIdentifier("MSCU1234567")
		require.NoError(t, err)

		result := SyntheticResult(id)
		assert.True(t, result.Success)
		assert.Equal(t, "MSCU1234567", result.ContainerNumber)
		assert.NotEmpty(t, result.ShippingLine)
		assert.NotEmpty(t, result.Milestones)
		assert.NotNil(t, result.Position)
	})

	t.Run("echoes bl identifier", func(t *testing.T) {
		id, err := tracking.NewBillOfLadingIdentifier("MAEU-12345678")
		require.NoError(t, err)

		result := SyntheticResult(id)
		assert.Equal(t, "MAEU-12345678", result.BLNumber)
	})

	t.Run("echoes booking identifier", func(t *testing.T) {
		id, err := tracking.NewBookingIdentifier("BKG-001")
		require.NoError(t, err)

		result := SyntheticResult(id)
		assert.Equal(t, "BKG-001", result.BookingNumber)
	})

	t.Run("deterministic per identifier", func(t *testing.T) {
		id, err := tracking.NewContainerIdentifier("MSCU1234567")
		require.NoError(t, err)

		a := SyntheticResult(id)
		b := SyntheticResult(id)
		assert.Equal(t, a.ShippingLine, b.ShippingLine)
		assert.Equal(t, a.VesselName, b.VesselName)
		assert.Equal(t, a.Position.Latitude, b.Position.Latitude)
	})
}

func TestMockProvider_Track(t *testing.T) {
	id, err := tracking.NewContainerIdentifier("MSCU1234567")
	require.NoError(t, err)

	result, err := NewMockProvider().Track(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "MSCU1234567", result.ContainerNumber)
}
