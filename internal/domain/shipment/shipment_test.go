package shipment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipdesk/backend/internal/domain/tracking"
)

func TestNewShipment(t *testing.T) {
	t.Run("creates shipment in pending status", func(t *testing.T) {
		s, err := NewShipment("ship-001", "Acme Freight")
		require.NoError(t, err)

		assert.Equal(t, "SHIP-001", s.Reference)
		assert.Equal(t, "Acme Freight", s.ClientName)
		assert.Equal(t, StatusPending, s.Status)
		assert.NotEqual(t, s.ID.String(), "00000000-0000-0000-0000-000000000000")
	})

	t.Run("rejects empty reference", func(t *testing.T) {
		_, err := NewShipment("", "Acme Freight")
		assert.Error(t, err)
	})

	t.Run("rejects reference with invalid characters", func(t *testing.T) {
		_, err := NewShipment("SHIP 001!", "Acme Freight")
		assert.Error(t, err)
	})

	t.Run("rejects empty client name", func(t *testing.T) {
		_, err := NewShipment("SHIP-001", "  ")
		assert.Error(t, err)
	})
}

func TestShipment_Identifiers(t *testing.T) {
	t.Run("accepts valid container number", func(t *testing.T) {
		s, err := NewShipment("SHIP-001", "Acme Freight")
		require.NoError(t, err)

		require.NoError(t, s.SetContainerNumber("mscu1234567"))
		assert.Equal(t, "MSCU1234567", s.ContainerNumber)
	})

	t.Run("rejects malformed container number", func(t *testing.T) {
		s, err := NewShipment("SHIP-001", "Acme Freight")
		require.NoError(t, err)

		err = s.SetContainerNumber("NOT-A-CONTAINER")
		require.Error(t, err)
		domainErr, ok := tracking.AsError(err)
		require.True(t, ok)
		assert.Equal(t, tracking.ErrCodeValidation, domainErr.Code)
	})

	t.Run("accepts bl and booking numbers", func(t *testing.T) {
		s, err := NewShipment("SHIP-001", "Acme Freight")
		require.NoError(t, err)

		require.NoError(t, s.SetBLNumber("MAEU-12345678"))
		require.NoError(t, s.SetBookingNumber("BKG-001"))
		assert.Equal(t, "MAEU-12345678", s.BLNumber)
		assert.Equal(t, "BKG-001", s.BookingNumber)
	})
}

func TestShipment_BestIdentifier(t *testing.T) {
	newShipment := func(t *testing.T) *Shipment {
		s, err := NewShipment("SHIP-001", "Acme Freight")
		require.NoError(t, err)
		return s
	}

	t.Run("container number wins over bl and booking", func(t *testing.T) {
		s := newShipment(t)
		require.NoError(t, s.SetContainerNumber("MSCU1234567"))
		require.NoError(t, s.SetBLNumber("MAEU-12345678"))
		require.NoError(t, s.SetBookingNumber("BKG-001"))

		id, err := s.BestIdentifier()
		require.NoError(t, err)
		assert.Equal(t, tracking.IdentifierKindContainer, id.Kind)
		assert.Equal(t, "MSCU1234567", id.Value)
	})

	t.Run("bl number wins over booking", func(t *testing.T) {
		s := newShipment(t)
		require.NoError(t, s.SetBLNumber("MAEU-12345678"))
		require.NoError(t, s.SetBookingNumber("BKG-001"))

		id, err := s.BestIdentifier()
		require.NoError(t, err)
		assert.Equal(t, tracking.IdentifierKindBillOfLading, id.Kind)
	})

	t.Run("falls back to booking number", func(t *testing.T) {
		s := newShipment(t)
		require.NoError(t, s.SetBookingNumber("BKG-001"))

		id, err := s.BestIdentifier()
		require.NoError(t, err)
		assert.Equal(t, tracking.IdentifierKindBooking, id.Kind)
	})

	t.Run("errors when no identifier is set", func(t *testing.T) {
		s := newShipment(t)
		_, err := s.BestIdentifier()
		assert.Error(t, err)
	})
}

func TestShipment_ChangeStatus(t *testing.T) {
	t.Run("transitions through valid statuses", func(t *testing.T) {
		s, err := NewShipment("SHIP-001", "Acme Freight")
		require.NoError(t, err)

		require.NoError(t, s.ChangeStatus(StatusInTransit))
		require.NoError(t, s.ChangeStatus(StatusDelivered))
		assert.Equal(t, StatusDelivered, s.Status)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		s, err := NewShipment("SHIP-001", "Acme Freight")
		require.NoError(t, err)

		assert.Error(t, s.ChangeStatus(Status("teleported")))
	})

	t.Run("cancelled shipments are terminal", func(t *testing.T) {
		s, err := NewShipment("SHIP-001", "Acme Freight")
		require.NoError(t, err)

		require.NoError(t, s.ChangeStatus(StatusCancelled))
		assert.Error(t, s.ChangeStatus(StatusInTransit))
	})
}

func TestShipment_SetDeclaredValue(t *testing.T) {
	s, err := NewShipment("SHIP-001", "Acme Freight")
	require.NoError(t, err)

	require.NoError(t, s.SetDeclaredValue(decimal.NewFromInt(42000)))
	assert.True(t, s.DeclaredValue.Equal(decimal.NewFromInt(42000)))

	assert.Error(t, s.SetDeclaredValue(decimal.NewFromInt(-1)))
}
