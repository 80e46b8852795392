package shipsgo

import (
	"strconv"
	"strings"
	"time"
)

// ---------------------------------------------------------------------------
// V2 API Response Types
// ---------------------------------------------------------------------------

// V2TrackResponse is the body of a v2 GET /track call: nested camelCase JSON
// already containing milestones and a live map URL
type V2TrackResponse struct {
	// Success is the payload's own outcome flag; absent means success
	Success *bool `json:"success,omitempty"`
	Message string `json:"message,omitempty"`

	ContainerNumber string `json:"containerNumber"`
	BLNumber        string `json:"blNumber,omitempty"`
	BookingNumber   string `json:"bookingNumber,omitempty"`
	ShippingLine    string `json:"shippingLine,omitempty"`

	Vessel *V2Vessel `json:"vessel,omitempty"`
	Route  *V2Route  `json:"route,omitempty"`

	Departure *V2Schedule `json:"departure,omitempty"`
	Arrival   *V2Schedule `json:"arrival,omitempty"`

	Status     string `json:"status,omitempty"`
	StatusCode *int   `json:"statusCode,omitempty"`

	Milestones      []V2Milestone `json:"milestones,omitempty"`
	CurrentPosition *V2Position   `json:"currentPosition,omitempty"`

	ContainerType string   `json:"containerType,omitempty"`
	TEU           *int     `json:"teu,omitempty"`
	TransitTime   string   `json:"transitTime,omitempty"`
	CO2Emissions  *float64 `json:"co2Emissions,omitempty"`
	LiveMapURL    string   `json:"liveMapUrl,omitempty"`
}

// V2Vessel carries vessel identification
type V2Vessel struct {
	Name   string `json:"name,omitempty"`
	IMO    string `json:"imo,omitempty"`
	Voyage string `json:"voyage,omitempty"`
}

// V2Route carries origin/destination port information
type V2Route struct {
	Origin      *V2Port `json:"origin,omitempty"`
	Destination *V2Port `json:"destination,omitempty"`
}

// V2Port is a port reference
type V2Port struct {
	Port    string `json:"port,omitempty"`
	Country string `json:"country,omitempty"`
}

// V2Schedule carries an estimated and an actual timestamp
type V2Schedule struct {
	Estimated string `json:"estimated,omitempty"`
	Actual    string `json:"actual,omitempty"`
}

// V2Milestone is a tracked event in the v2 shape
type V2Milestone struct {
	Event       string `json:"event"`
	Location    string `json:"location,omitempty"`
	Date        string `json:"date,omitempty"`
	Status      string `json:"status,omitempty"`
	Description string `json:"description,omitempty"`
}

// V2Position is the vessel's current position fix
type V2Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp string  `json:"timestamp,omitempty"`
}

// ---------------------------------------------------------------------------
// Legacy (v1.2) API Response Types
// ---------------------------------------------------------------------------

// legacyNotSupported is the literal the legacy API uses for absent values
const legacyNotSupported = "not supported"

// LegacyPostResponse is the body of the registration POST in the two-phase
// flow. The provider sometimes responds with a bare request id string
// instead; the adapter handles that before decoding.
type LegacyPostResponse struct {
	RequestID string `json:"requestId,omitempty"`
	Message   string `json:"message,omitempty"`
}

// LegacyContainerInfo is one entry of the legacy GetContainerInfo payload:
// PascalCase/abbreviated fields, optional fields omitted rather than nulled
type LegacyContainerInfo struct {
	ContainerNumber string `json:"ContainerNumber"`
	ReferenceNo     string `json:"ReferenceNo,omitempty"`
	BLReferenceNo   string `json:"BLReferenceNo,omitempty"`
	BookingNumber   string `json:"BookingNumber,omitempty"`
	ShippingLine    string `json:"ShippingLine,omitempty"`

	ContainerType string `json:"ContainerType,omitempty"`
	ContainerTEU  string `json:"ContainerTEU,omitempty"`

	FromCountry string `json:"FromCountry,omitempty"`
	Pol         string `json:"Pol,omitempty"`
	ToCountry   string `json:"ToCountry,omitempty"`
	Pod         string `json:"Pod,omitempty"`

	LoadingDate   *LegacyDate `json:"LoadingDate,omitempty"`
	DepartureDate *LegacyDate `json:"DepartureDate,omitempty"`
	ArrivalDate   *LegacyDate `json:"ArrivalDate,omitempty"`
	DischargeDate *LegacyDate `json:"DischargeDate,omitempty"`

	Vessel       string `json:"Vessel,omitempty"`
	VesselIMO    string `json:"VesselIMO,omitempty"`
	VesselVoyage string `json:"VesselVoyage,omitempty"`

	// Coordinates are floats when known and the literal string
	// "Not Supported" when the vessel has no AIS fix
	VesselLatitude  any `json:"VesselLatitude,omitempty"`
	VesselLongitude any `json:"VesselLongitude,omitempty"`

	Status   string `json:"Status,omitempty"`
	StatusID *int   `json:"StatusId,omitempty"`

	TSPorts []LegacyTSPort `json:"TSPorts,omitempty"`

	FormatedTransitTime string   `json:"FormatedTransitTime,omitempty"`
	EmissionCO2         *float64 `json:"EmissionCo2,omitempty"`
	LiveMapURL          string   `json:"LiveMapUrl,omitempty"`
}

// LegacyDate wraps a date value with its actual/estimated marker
type LegacyDate struct {
	Date     string `json:"Date,omitempty"`
	IsActual bool   `json:"IsActual,omitempty"`
}

// LegacyTSPort is a transshipment port entry; the normalizer flattens these
// into the milestone list
type LegacyTSPort struct {
	Port          string      `json:"Port,omitempty"`
	Country       string      `json:"Country,omitempty"`
	ArrivalDate   *LegacyDate `json:"ArrivalDate,omitempty"`
	DepartureDate *LegacyDate `json:"DepartureDate,omitempty"`
	Vessel        string      `json:"Vessel,omitempty"`
	VesselVoyage  string      `json:"VesselVoyage,omitempty"`
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// parseCoordinate converts a legacy coordinate value to a float. The legacy
// API sends a float, a numeric string, or the literal "Not Supported"; the
// latter (and anything unparseable) means absent, never zero.
func parseCoordinate(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case string:
		if strings.EqualFold(strings.TrimSpace(x), legacyNotSupported) {
			return 0, false
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// timeLayouts are the timestamp formats the upstream has been observed to use
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006 15:04:05",
}

// parseTime parses an upstream timestamp; nil when empty or unparseable
// (timestamps are optional everywhere in the canonical schema)
func parseTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
