package tracking

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shipdesk/backend/internal/domain/tracking"
)

// fakeProvider records calls and returns a canned result or error
type fakeProvider struct {
	calls  atomic.Int64
	result *tracking.Result
	err    error
}

func (f *fakeProvider) Track(_ context.Context, id tracking.Identifier) (*tracking.Result, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &tracking.Result{Success: true, ContainerNumber: id.Value}, nil
}

func newService(provider, fallback tracking.Provider) *Service {
	return NewService(provider, fallback, zap.NewNop(), Options{
		Configured:       true,
		RateLimitCeiling: 100,
		ProviderBaseURL:  "https://api.shipsgo.com/v2",
	})
}

func TestService_TrackByContainer(t *testing.T) {
	t.Run("returns provider result for valid container", func(t *testing.T) {
		provider := &fakeProvider{}
		svc := newService(provider, nil)

		result, err := svc.TrackByContainer(context.Background(), "MSCU1234567")
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "MSCU1234567", result.ContainerNumber)
		assert.Equal(t, int64(1), provider.calls.Load())
	})

	t.Run("malformed container never reaches the provider", func(t *testing.T) {
		provider := &fakeProvider{}
		svc := newService(provider, nil)

		_, err := svc.TrackByContainer(context.Background(), "NOT-A-CONTAINER")
		require.Error(t, err)
		te, ok := tracking.AsError(err)
		require.True(t, ok)
		assert.Equal(t, tracking.ErrCodeValidation, te.Code)
		assert.Equal(t, int64(0), provider.calls.Load())
	})

	t.Run("concurrent requests for the same identifier each hit the provider", func(t *testing.T) {
		provider := &fakeProvider{}
		svc := newService(provider, nil)

		var wg sync.WaitGroup
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.TrackByContainer(context.Background(), "MSCU1234567")
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		assert.Equal(t, int64(2), provider.calls.Load())
	})
}

func TestService_Track(t *testing.T) {
	svc := newService(&fakeProvider{}, nil)

	t.Run("routes container number", func(t *testing.T) {
		result, err := svc.Track(context.Background(), TrackRequest{ContainerNumber: "MSCU1234567"})
		require.NoError(t, err)
		assert.Equal(t, "MSCU1234567", result.ContainerNumber)
	})

	t.Run("routes bl number", func(t *testing.T) {
		_, err := svc.Track(context.Background(), TrackRequest{BLNumber: "MAEU-12345678"})
		assert.NoError(t, err)
	})

	t.Run("routes booking number", func(t *testing.T) {
		_, err := svc.Track(context.Background(), TrackRequest{BookingNumber: "BKG-001"})
		assert.NoError(t, err)
	})

	t.Run("rejects empty request", func(t *testing.T) {
		_, err := svc.Track(context.Background(), TrackRequest{})
		te, ok := tracking.AsError(err)
		require.True(t, ok)
		assert.Equal(t, tracking.ErrCodeValidation, te.Code)
	})

	t.Run("rejects request with two identifiers", func(t *testing.T) {
		_, err := svc.Track(context.Background(), TrackRequest{
			ContainerNumber: "MSCU1234567",
			BLNumber:        "MAEU-12345678",
		})
		te, ok := tracking.AsError(err)
		require.True(t, ok)
		assert.Equal(t, tracking.ErrCodeValidation, te.Code)
	})
}

func TestService_Fallback(t *testing.T) {
	t.Run("provider error is masked when fallback is wired", func(t *testing.T) {
		provider := &fakeProvider{err: tracking.NewProviderAuthError("invalid token")}
		fallback := &fakeProvider{result: &tracking.Result{Success: true, ShippingLine: "SYNTHETIC"}}
		svc := newService(provider, fallback)

		result, err := svc.TrackByContainer(context.Background(), "MSCU1234567")
		require.NoError(t, err)
		assert.Equal(t, "SYNTHETIC", result.ShippingLine)
		assert.Equal(t, int64(1), provider.calls.Load())
		assert.Equal(t, int64(1), fallback.calls.Load())
	})

	t.Run("provider error surfaces when fallback is not wired", func(t *testing.T) {
		provider := &fakeProvider{err: tracking.NewProviderAuthError("invalid token")}
		svc := newService(provider, nil)

		_, err := svc.TrackByContainer(context.Background(), "MSCU1234567")
		te, ok := tracking.AsError(err)
		require.True(t, ok)
		assert.Equal(t, tracking.ErrCodeProviderAuth, te.Code)
	})

	t.Run("not found error carries the identifier", func(t *testing.T) {
		provider := &fakeProvider{err: tracking.NewProviderNotFoundError("no shipment found", "MSCU1234567")}
		svc := newService(provider, nil)

		_, err := svc.TrackByContainer(context.Background(), "MSCU1234567")
		te, ok := tracking.AsError(err)
		require.True(t, ok)
		assert.Equal(t, tracking.ErrCodeProviderNotFound, te.Code)
		assert.Equal(t, "MSCU1234567", te.Identifier)
	})

	t.Run("validation errors are never masked", func(t *testing.T) {
		provider := &fakeProvider{}
		fallback := &fakeProvider{}
		svc := newService(provider, fallback)

		_, err := svc.TrackByContainer(context.Background(), "bad")
		require.Error(t, err)
		assert.Equal(t, int64(0), provider.calls.Load())
		assert.Equal(t, int64(0), fallback.calls.Load())
	})
}

func TestService_GetVesselPosition(t *testing.T) {
	t.Run("returns position from provider result", func(t *testing.T) {
		provider := &fakeProvider{result: &tracking.Result{
			Success:  true,
			Position: &tracking.GeoPosition{Latitude: 51.9, Longitude: 4.4},
		}}
		svc := newService(provider, nil)

		pos, err := svc.GetVesselPosition(context.Background(), "244123456")
		require.NoError(t, err)
		require.NotNil(t, pos)
		assert.InDelta(t, 51.9, pos.Latitude, 0.001)
	})

	t.Run("returns nil position when provider has none", func(t *testing.T) {
		provider := &fakeProvider{result: &tracking.Result{Success: true}}
		svc := newService(provider, nil)

		pos, err := svc.GetVesselPosition(context.Background(), "244123456")
		require.NoError(t, err)
		assert.Nil(t, pos)
	})

	t.Run("rejects malformed mmsi", func(t *testing.T) {
		provider := &fakeProvider{}
		svc := newService(provider, nil)

		_, err := svc.GetVesselPosition(context.Background(), "12AB")
		require.Error(t, err)
		assert.Equal(t, int64(0), provider.calls.Load())
	})
}

func TestService_GetHealth(t *testing.T) {
	t.Run("reports wiring without the key", func(t *testing.T) {
		svc := NewService(&fakeProvider{}, &fakeProvider{}, zap.NewNop(), Options{
			Configured:       true,
			MockMode:         false,
			RateLimitCeiling: 100,
			ProviderBaseURL:  "https://api.shipsgo.com/v2",
		})

		health := svc.GetHealth(context.Background())
		assert.Equal(t, "ok", health.Status)
		assert.True(t, health.Configured)
		assert.False(t, health.MockMode)
		assert.True(t, health.FallbackToMock)
		assert.Equal(t, 100, health.RateLimitCeiling)
		assert.Equal(t, "https://api.shipsgo.com/v2", health.ProviderBaseURL)
	})

	t.Run("mock mode is visible", func(t *testing.T) {
		svc := NewService(&fakeProvider{}, nil, zap.NewNop(), Options{MockMode: true})

		health := svc.GetHealth(context.Background())
		assert.True(t, health.MockMode)
		assert.False(t, health.Configured)
		assert.False(t, health.FallbackToMock)
	})
}
