package shipsgo

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/shipdesk/backend/internal/domain/tracking"
)

// shippingLines used to vary synthetic results deterministically
var mockShippingLines = []string{"MAERSK", "MSC", "CMA CGM", "HAPAG-LLOYD", "ONE", "EVERGREEN"}

// MockProvider fabricates schema-valid tracking results so the service and
// its consumers can be exercised without live ShipsGo credentials. Results
// are deterministic per identifier.
type MockProvider struct{}

// NewMockProvider creates a mock provider
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// Track returns a synthetic result echoing the identifier
func (p *MockProvider) Track(_ context.Context, id tracking.Identifier) (*tracking.Result, error) {
	return SyntheticResult(id), nil
}

// SyntheticResult builds a deterministic, clearly fabricated tracking result
// for the given identifier. The identifying field echoes the input so callers
// can correlate, and the vessel/line are hash-picked so different identifiers
// look different in a UI.
func SyntheticResult(id tracking.Identifier) *tracking.Result {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id.Value))
	v := h.Sum32()

	now := time.Now().UTC()
	departed := now.AddDate(0, 0, -14)
	eta := now.AddDate(0, 0, 7)
	line := mockShippingLines[int(v)%len(mockShippingLines)]
	co2 := 1.2 + float64(v%100)/100
	teu := 1 + int(v%2)

	result := &tracking.Result{
		Success:            true,
		ShippingLine:       line,
		VesselName:         "MOCK VESSEL " + string(rune('A'+v%26)),
		VesselIMO:          "9000000",
		Voyage:             "001E",
		OriginPort:         "SHANGHAI",
		OriginCountry:      "CN",
		DestinationPort:    "ROTTERDAM",
		DestinationCountry: "NL",
		ActualDeparture:    &departed,
		EstimatedArrival:   &eta,
		StatusLabel:        "SAILING",
		ContainerType:      "40HC",
		TEU:                &teu,
		TransitTime:        "21 days",
		CO2Emissions:       &co2,
		Position: &tracking.GeoPosition{
			Latitude:  10.0 + float64(v%60),
			Longitude: -20.0 + float64(v%120),
			Timestamp: &now,
		},
		Milestones: []tracking.Milestone{
			{Event: "Empty pickup", Location: "SHANGHAI", Date: departed.AddDate(0, 0, -3).Format("2006-01-02"), Status: tracking.MilestoneStatusCompleted},
			{Event: "Departure", Location: "SHANGHAI", Date: departed.Format("2006-01-02"), Status: tracking.MilestoneStatusCompleted},
			{Event: "Ocean transit", Location: "", Date: now.Format("2006-01-02"), Status: tracking.MilestoneStatusInProgress},
			{Event: "Arrival", Location: "ROTTERDAM", Date: eta.Format("2006-01-02"), Status: tracking.MilestoneStatusPending},
		},
	}

	switch id.Kind {
	case tracking.IdentifierKindBillOfLading:
		result.BLNumber = id.Value
		result.ContainerNumber = "MOCK" + id.Value[len(id.Value)-min(7, len(id.Value)):]
	case tracking.IdentifierKindBooking:
		result.BookingNumber = id.Value
		result.ContainerNumber = "MOCK0000001"
	default:
		result.ContainerNumber = id.Value
	}

	return result
}

// Ensure MockProvider implements the Provider interface
var _ tracking.Provider = (*MockProvider)(nil)
