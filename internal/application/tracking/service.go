package tracking

import (
	"context"

	"go.uber.org/zap"

	"github.com/shipdesk/backend/internal/domain/tracking"
)

// Options carries the gateway's wiring facts reported by GetHealth
type Options struct {
	Configured       bool
	MockMode         bool
	RateLimitCeiling int
	ProviderBaseURL  string
}

// Service is the tracking gateway. It validates identifiers, delegates to
// the configured provider and optionally masks provider failures with a
// synthetic fallback result.
type Service struct {
	provider tracking.Provider
	fallback tracking.Provider
	logger   *zap.Logger
	opts     Options
}

// NewService creates a tracking gateway. fallback may be nil, in which case
// provider failures are returned to the caller unmasked.
func NewService(provider, fallback tracking.Provider, logger *zap.Logger, opts Options) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		provider: provider,
		fallback: fallback,
		logger:   logger,
		opts:     opts,
	}
}

// TrackByContainer tracks a shipment by container number
func (s *Service) TrackByContainer(ctx context.Context, number string) (*tracking.Result, error) {
	id, err := tracking.NewContainerIdentifier(number)
	if err != nil {
		return nil, err
	}
	return s.track(ctx, id)
}

// TrackByBillOfLading tracks a shipment by bill of lading number
func (s *Service) TrackByBillOfLading(ctx context.Context, number string) (*tracking.Result, error) {
	id, err := tracking.NewBillOfLadingIdentifier(number)
	if err != nil {
		return nil, err
	}
	return s.track(ctx, id)
}

// TrackByBooking tracks a shipment by booking number
func (s *Service) TrackByBooking(ctx context.Context, number string) (*tracking.Result, error) {
	id, err := tracking.NewBookingIdentifier(number)
	if err != nil {
		return nil, err
	}
	return s.track(ctx, id)
}

// Track resolves a combined request carrying exactly one identifier field
func (s *Service) Track(ctx context.Context, req TrackRequest) (*tracking.Result, error) {
	set := 0
	if req.ContainerNumber != "" {
		set++
	}
	if req.BLNumber != "" {
		set++
	}
	if req.BookingNumber != "" {
		set++
	}
	if set != 1 {
		return nil, tracking.NewValidationError("exactly one of container_number, bl_number or booking_number must be provided")
	}

	switch {
	case req.ContainerNumber != "":
		return s.TrackByContainer(ctx, req.ContainerNumber)
	case req.BLNumber != "":
		return s.TrackByBillOfLading(ctx, req.BLNumber)
	default:
		return s.TrackByBooking(ctx, req.BookingNumber)
	}
}

// TrackByIdentifier tracks with an already validated identifier
func (s *Service) TrackByIdentifier(ctx context.Context, id tracking.Identifier) (*tracking.Result, error) {
	return s.track(ctx, id)
}

// GetVesselPosition returns the current position of a vessel by MMSI.
// A nil position with nil error means the provider knows the vessel but has
// no live position for it.
func (s *Service) GetVesselPosition(ctx context.Context, mmsi string) (*tracking.GeoPosition, error) {
	id, err := tracking.NewMMSIIdentifier(mmsi)
	if err != nil {
		return nil, err
	}
	result, err := s.track(ctx, id)
	if err != nil {
		return nil, err
	}
	return result.Position, nil
}

// GetHealth reports the gateway's provider wiring
func (s *Service) GetHealth(_ context.Context) *HealthReport {
	return &HealthReport{
		Status:           "ok",
		Configured:       s.opts.Configured,
		MockMode:         s.opts.MockMode,
		FallbackToMock:   s.fallback != nil,
		RateLimitCeiling: s.opts.RateLimitCeiling,
		ProviderBaseURL:  s.opts.ProviderBaseURL,
	}
}

func (s *Service) track(ctx context.Context, id tracking.Identifier) (*tracking.Result, error) {
	result, err := s.provider.Track(ctx, id)
	if err == nil {
		s.logger.Debug("tracking resolved",
			zap.String("identifier", id.String()),
			zap.Bool("success", result.Success),
		)
		return result, nil
	}

	te, ok := tracking.AsError(err)
	if ok && te.IsProviderError() && s.fallback != nil {
		s.logger.Warn("provider failed, serving synthetic result",
			zap.String("identifier", id.String()),
			zap.String("code", te.Code),
			zap.Error(err),
		)
		return s.fallback.Track(ctx, id)
	}

	s.logger.Warn("tracking failed",
		zap.String("identifier", id.String()),
		zap.Error(err),
	)
	return nil, err
}
