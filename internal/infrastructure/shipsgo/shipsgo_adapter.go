package shipsgo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shipdesk/backend/internal/domain/tracking"
)

// maxResponseSize is the maximum allowed response size from the ShipsGo API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// legacyShippingLine is sent in the registration POST when the caller does
// not know the carrier; the provider auto-detects from the container prefix
const legacyShippingLine = "OTHERS"

// Adapter is the ShipsGo tracking provider client. It speaks both upstream
// wire formats; Config.Flavor selects which one a Track call uses. The
// adapter performs no retries and holds no state between calls.
type Adapter struct {
	config     *Config
	httpClient *http.Client
}

// NewAdapter creates a ShipsGo adapter with the given configuration
func NewAdapter(config *Config) (*Adapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Adapter{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// Track fetches tracking data for the identifier through the configured call
// pattern and returns the canonical result or a typed tracking error
func (a *Adapter) Track(ctx context.Context, id tracking.Identifier) (*tracking.Result, error) {
	if a.config.Flavor == FlavorLegacy {
		return a.trackLegacy(ctx, id)
	}
	return a.trackV2(ctx, id)
}

// ---------------------------------------------------------------------------
// V2 single-call pattern
// ---------------------------------------------------------------------------

// trackV2 performs the single enriched GET of the v2 API
func (a *Adapter) trackV2(ctx context.Context, id tracking.Identifier) (*tracking.Result, error) {
	u, err := url.Parse(a.config.V2BaseURL + "/track")
	if err != nil {
		return nil, tracking.NewProviderAPIError(fmt.Sprintf("shipsgo: invalid v2 base url: %v", err))
	}

	q := u.Query()
	q.Set(v2QueryKey(id.Kind), id.Value)
	q.Set("include_map", "true")
	q.Set("include_route", "true")
	q.Set("include_milestones", "true")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, tracking.NewProviderAPIError(fmt.Sprintf("shipsgo: failed to create request: %v", err))
	}
	req.Header.Set("X-Shipsgo-User-Token", a.config.APIKey)
	req.Header.Set("Accept", "application/json")

	body, terr := a.do(req, id)
	if terr != nil {
		return nil, terr
	}

	// The v2 payload carries its own outcome flag; a 200 with success=false
	// still means the provider could not track the identifier
	if msg, failed := v2Failure(body); failed {
		return nil, tracking.NewProviderNotFoundError(msg, id.Value)
	}

	result, err := NormalizeV2(body)
	if err != nil {
		return nil, tracking.NewProviderAPIError(err.Error())
	}
	return result, nil
}

// v2QueryKey maps the identifier kind to the v2 query parameter name. MMSI
// lookups reuse the container key: the provider accepts the MMSI as a
// generic tracking key there.
func v2QueryKey(kind tracking.IdentifierKind) string {
	switch kind {
	case tracking.IdentifierKindBillOfLading:
		return "bl_number"
	case tracking.IdentifierKindBooking:
		return "booking_number"
	default:
		return "container_number"
	}
}

// v2Failure reports whether a decodable v2 body carries success=false, and
// the message it carries
func v2Failure(body []byte) (string, bool) {
	unwrapped, err := unwrapArray(body)
	if err != nil {
		return "", false
	}
	var probe struct {
		Success *bool  `json:"success"`
		Message string `json:"message"`
	}
	if json.Unmarshal(unwrapped, &probe) != nil || probe.Success == nil || *probe.Success {
		return "", false
	}
	msg := probe.Message
	if msg == "" {
		msg = "shipsgo: no tracking data for identifier"
	}
	return msg, true
}

// ---------------------------------------------------------------------------
// Legacy two-phase pattern
// ---------------------------------------------------------------------------

// trackLegacy performs the asynchronous legacy flow: a registration POST that
// yields a request id, then a GET with that id for the actual payload. The
// GET cannot be issued before the POST's response is known, so the two calls
// are inherently sequential.
func (a *Adapter) trackLegacy(ctx context.Context, id tracking.Identifier) (*tracking.Result, error) {
	requestID, terr := a.legacyRegister(ctx, id)
	if terr != nil {
		return nil, terr
	}

	body, terr := a.legacyFetch(ctx, id, requestID)
	if terr != nil {
		return nil, terr
	}

	result, err := NormalizeLegacy(body)
	if err != nil {
		return nil, tracking.NewProviderAPIError(err.Error())
	}
	return result, nil
}

// legacyRegister POSTs the tracking registration and returns the request id.
// When the provider omits the id, the original identifier is reused.
func (a *Adapter) legacyRegister(ctx context.Context, id tracking.Identifier) (string, *tracking.Error) {
	form := url.Values{}
	form.Set("authCode", a.config.APIKey)
	form.Set("containerNumber", id.Value)
	form.Set("shippingLine", legacyShippingLine)

	endpoint := a.config.LegacyBaseURL + "/ContainerService/PostContainerInfo"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", tracking.NewProviderAPIError(fmt.Sprintf("shipsgo: failed to create request: %v", err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, terr := a.do(req, id)
	if terr != nil {
		return "", terr
	}

	if rid := parseLegacyRequestID(body); rid != "" {
		return rid, nil
	}
	return id.Value, nil
}

// legacyFetch GETs the tracking payload registered under requestID
func (a *Adapter) legacyFetch(ctx context.Context, id tracking.Identifier, requestID string) ([]byte, *tracking.Error) {
	u, err := url.Parse(a.config.LegacyBaseURL + "/ContainerService/GetContainerInfo/")
	if err != nil {
		return nil, tracking.NewProviderAPIError(fmt.Sprintf("shipsgo: invalid legacy base url: %v", err))
	}

	q := u.Query()
	q.Set("authCode", a.config.APIKey)
	q.Set("requestId", requestID)
	q.Set("mapPoint", "true")
	q.Set("co2", "true")
	q.Set("containerType", "true")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, tracking.NewProviderAPIError(fmt.Sprintf("shipsgo: failed to create request: %v", err))
	}
	req.Header.Set("Accept", "application/json")

	return a.do(req, id)
}

// parseLegacyRequestID extracts the request id from a registration response.
// The provider has been seen returning a JSON object, a quoted string, and a
// bare numeric string.
func parseLegacyRequestID(body []byte) string {
	var resp LegacyPostResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.RequestID != "" {
		return resp.RequestID
	}
	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return strings.TrimSpace(s)
	}
	trimmed := strings.TrimSpace(string(bytes.Trim(bytes.TrimSpace(body), `"`)))
	if trimmed != "" && !strings.ContainsAny(trimmed, "{}[] ") {
		return trimmed
	}
	return ""
}

// ---------------------------------------------------------------------------
// Shared transport
// ---------------------------------------------------------------------------

// do executes the request and classifies any failure into the typed tracking
// error taxonomy
func (a *Adapter) do(req *http.Request, id tracking.Identifier) ([]byte, *tracking.Error) {
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, tracking.NewProviderAPIError(fmt.Sprintf("shipsgo: request failed: %v", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, tracking.NewProviderAPIError(fmt.Sprintf("shipsgo: failed to read response: %v", err))
	}

	if resp.StatusCode >= 400 {
		return nil, classifyStatus(resp.StatusCode, id)
	}
	return body, nil
}

// classifyStatus maps an upstream HTTP failure status to the typed taxonomy
func classifyStatus(status int, id tracking.Identifier) *tracking.Error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return tracking.NewProviderAuthError(fmt.Sprintf("shipsgo: authentication rejected (HTTP %d)", status))
	case http.StatusTooManyRequests:
		return tracking.NewProviderRateLimitError("shipsgo: provider rate limit exceeded (HTTP 429)")
	case http.StatusNotFound:
		return tracking.NewProviderNotFoundError(fmt.Sprintf("shipsgo: no tracking data for %s", id.Value), id.Value)
	default:
		return tracking.NewProviderAPIError(fmt.Sprintf("shipsgo: upstream failure (HTTP %d)", status))
	}
}

// Ensure Adapter implements the Provider interface
var _ tracking.Provider = (*Adapter)(nil)
