package shipsgo

import "errors"

// API flavors the upstream exposes. The v2 flavor is a single enriched GET;
// the legacy flavor is the asynchronous two-phase POST/GET flow.
const (
	// FlavorV2 selects the single-call v2 REST pattern
	FlavorV2 = "v2"
	// FlavorLegacy selects the two-phase POST/GET legacy pattern
	FlavorLegacy = "legacy"
)

const (
	// V2BaseURL is the production v2 API endpoint
	V2BaseURL = "https://api.shipsgo.com/v2"
	// LegacyBaseURL is the production legacy (v1.2) API endpoint
	LegacyBaseURL = "https://shipsgo.com/api/v1.2"

	// defaultTimeoutSeconds bounds each upstream call; a call exceeding it is
	// treated as a transient provider failure
	defaultTimeoutSeconds = 15
)

// Errors for ShipsGo configuration
var (
	ErrConfigMissingAPIKey = errors.New("shipsgo: api key is required")
	ErrConfigUnknownFlavor = errors.New("shipsgo: unknown api flavor")
)

// Config holds the ShipsGo provider credentials and call-pattern selection.
// It is constructed once at process start and passed into the adapter; the
// adapter never mutates it.
type Config struct {
	// APIKey is the ShipsGo user token (v2 header / legacy authCode)
	APIKey string
	// V2BaseURL overrides the production v2 endpoint (tests, proxies)
	V2BaseURL string
	// LegacyBaseURL overrides the production legacy endpoint
	LegacyBaseURL string
	// Flavor selects which call pattern the adapter uses
	Flavor string
	// TimeoutSeconds is the per-call HTTP timeout
	TimeoutSeconds int
}

// NewConfig creates a ShipsGo configuration with production defaults
func NewConfig(apiKey string) *Config {
	return &Config{
		APIKey:         apiKey,
		V2BaseURL:      V2BaseURL,
		LegacyBaseURL:  LegacyBaseURL,
		Flavor:         FlavorV2,
		TimeoutSeconds: defaultTimeoutSeconds,
	}
}

// Validate checks required fields and fills defaults for optional ones
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrConfigMissingAPIKey
	}
	if c.Flavor == "" {
		c.Flavor = FlavorV2
	}
	if c.Flavor != FlavorV2 && c.Flavor != FlavorLegacy {
		return ErrConfigUnknownFlavor
	}
	if c.V2BaseURL == "" {
		c.V2BaseURL = V2BaseURL
	}
	if c.LegacyBaseURL == "" {
		c.LegacyBaseURL = LegacyBaseURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = defaultTimeoutSeconds
	}
	return nil
}

// BaseURL returns the endpoint for the configured flavor
func (c *Config) BaseURL() string {
	if c.Flavor == FlavorLegacy {
		return c.LegacyBaseURL
	}
	return c.V2BaseURL
}
