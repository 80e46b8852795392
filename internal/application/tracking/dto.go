package tracking

// TrackRequest is the combined tracking request body. Exactly one of the
// identifier fields must be set.
type TrackRequest struct {
	ContainerNumber string `json:"container_number"`
	BLNumber        string `json:"bl_number"`
	BookingNumber   string `json:"booking_number"`
}

// HealthReport describes the gateway's provider wiring. It never carries
// the API key itself, only whether one is configured.
type HealthReport struct {
	Status           string `json:"status"`
	Configured       bool   `json:"configured"`
	MockMode         bool   `json:"mockMode"`
	FallbackToMock   bool   `json:"fallbackToMock"`
	RateLimitCeiling int    `json:"rateLimitCeiling"`
	ProviderBaseURL  string `json:"providerBaseUrl"`
}
