package shipsgo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shipdesk/backend/internal/domain/tracking"
)

// ErrUnparseablePayload indicates the upstream body was not an object or an
// array of objects at all. The gateway treats this the same as a 5xx.
var ErrUnparseablePayload = errors.New("shipsgo: unparseable upstream payload")

// NormalizeV2 maps a v2-shaped payload into the canonical result. Pure: no
// I/O, never fails on missing optional fields, fails only when the payload is
// structurally unparseable. Tolerates a single result wrapped in an array.
func NormalizeV2(payload []byte) (*tracking.Result, error) {
	body, err := unwrapArray(payload)
	if err != nil {
		return nil, err
	}

	var resp V2TrackResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseablePayload, err)
	}

	result := &tracking.Result{
		Success:         resp.Success == nil || *resp.Success,
		ContainerNumber: resp.ContainerNumber,
		BLNumber:        resp.BLNumber,
		BookingNumber:   resp.BookingNumber,
		ShippingLine:    resp.ShippingLine,
		StatusLabel:     resp.Status,
		StatusCode:      resp.StatusCode,
		ContainerType:   resp.ContainerType,
		TEU:             resp.TEU,
		TransitTime:     resp.TransitTime,
		CO2Emissions:    resp.CO2Emissions,
		LiveMapURL:      resp.LiveMapURL,
		Milestones:      make([]tracking.Milestone, 0, len(resp.Milestones)),
	}

	if resp.Vessel != nil {
		result.VesselName = resp.Vessel.Name
		result.VesselIMO = resp.Vessel.IMO
		result.Voyage = resp.Vessel.Voyage
	}
	if resp.Route != nil {
		if resp.Route.Origin != nil {
			result.OriginPort = resp.Route.Origin.Port
			result.OriginCountry = resp.Route.Origin.Country
		}
		if resp.Route.Destination != nil {
			result.DestinationPort = resp.Route.Destination.Port
			result.DestinationCountry = resp.Route.Destination.Country
		}
	}
	if resp.Departure != nil {
		result.EstimatedDeparture = parseTime(resp.Departure.Estimated)
		result.ActualDeparture = parseTime(resp.Departure.Actual)
	}
	if resp.Arrival != nil {
		result.EstimatedArrival = parseTime(resp.Arrival.Estimated)
		result.ActualArrival = parseTime(resp.Arrival.Actual)
	}

	// Milestone order is preserved as received; upstream sends chronological
	for _, m := range resp.Milestones {
		result.Milestones = append(result.Milestones, tracking.Milestone{
			Event:       m.Event,
			Location:    m.Location,
			Date:        m.Date,
			Status:      tracking.ParseMilestoneStatus(m.Status),
			Description: m.Description,
		})
	}

	if resp.CurrentPosition != nil {
		result.Position = &tracking.GeoPosition{
			Latitude:  resp.CurrentPosition.Latitude,
			Longitude: resp.CurrentPosition.Longitude,
			Timestamp: parseTime(resp.CurrentPosition.Timestamp),
		}
	}

	return result, nil
}

// NormalizeLegacy maps a legacy (v1.2) PascalCase payload into the canonical
// result. Every optional field is guarded by an explicit absence check
// because the legacy API omits fields rather than nulling them; the literal
// "Not Supported" in coordinate fields means absent, not zero. Transshipment
// ports are flattened into the milestone list. Tolerates a single result
// wrapped in an array.
func NormalizeLegacy(payload []byte) (*tracking.Result, error) {
	body, err := unwrapArray(payload)
	if err != nil {
		return nil, err
	}

	var info LegacyContainerInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseablePayload, err)
	}

	result := &tracking.Result{
		Success:         true,
		ContainerNumber: info.ContainerNumber,
		BLNumber:        info.BLReferenceNo,
		BookingNumber:   info.BookingNumber,
		ShippingLine:    info.ShippingLine,
		VesselName:      info.Vessel,
		VesselIMO:       info.VesselIMO,
		Voyage:          info.VesselVoyage,
		OriginPort:      info.Pol,
		OriginCountry:   info.FromCountry,
		DestinationPort: info.Pod,
		DestinationCountry: info.ToCountry,
		StatusLabel:     info.Status,
		StatusCode:      info.StatusID,
		ContainerType:   info.ContainerType,
		TransitTime:     info.FormatedTransitTime,
		CO2Emissions:    info.EmissionCO2,
		LiveMapURL:      info.LiveMapURL,
		Milestones:      make([]tracking.Milestone, 0, 2+len(info.TSPorts)),
	}

	if teu, ok := parseTEU(info.ContainerTEU); ok {
		result.TEU = &teu
	}

	if info.DepartureDate != nil {
		if info.DepartureDate.IsActual {
			result.ActualDeparture = parseTime(info.DepartureDate.Date)
		} else {
			result.EstimatedDeparture = parseTime(info.DepartureDate.Date)
		}
	}
	if info.ArrivalDate != nil {
		if info.ArrivalDate.IsActual {
			result.ActualArrival = parseTime(info.ArrivalDate.Date)
		} else {
			result.EstimatedArrival = parseTime(info.ArrivalDate.Date)
		}
	}

	// Departure/transshipment/arrival events become the milestone list. The
	// legacy API has no per-event status, so completion is inferred from the
	// date markers.
	if info.DepartureDate != nil && info.DepartureDate.Date != "" {
		result.Milestones = append(result.Milestones, tracking.Milestone{
			Event:    "Departure",
			Location: info.Pol,
			Date:     info.DepartureDate.Date,
			Status:   legacyMilestoneStatus(info.DepartureDate),
		})
	}
	for _, ts := range info.TSPorts {
		m := tracking.Milestone{
			Event:    "Transshipment",
			Location: ts.Port,
			Status:   tracking.MilestoneStatusPending,
		}
		if ts.ArrivalDate != nil {
			m.Date = ts.ArrivalDate.Date
			m.Status = legacyMilestoneStatus(ts.ArrivalDate)
		}
		if ts.Vessel != "" {
			m.Description = "Vessel " + ts.Vessel
		}
		result.Milestones = append(result.Milestones, m)
	}
	if info.ArrivalDate != nil && info.ArrivalDate.Date != "" {
		result.Milestones = append(result.Milestones, tracking.Milestone{
			Event:    "Arrival",
			Location: info.Pod,
			Date:     info.ArrivalDate.Date,
			Status:   legacyMilestoneStatus(info.ArrivalDate),
		})
	}

	lat, latOK := parseCoordinate(info.VesselLatitude)
	lng, lngOK := parseCoordinate(info.VesselLongitude)
	if latOK && lngOK {
		result.Position = &tracking.GeoPosition{Latitude: lat, Longitude: lng}
	}

	return result, nil
}

// legacyMilestoneStatus infers a normalized status from a legacy date marker
func legacyMilestoneStatus(d *LegacyDate) tracking.MilestoneStatus {
	if d.IsActual {
		return tracking.MilestoneStatusCompleted
	}
	return tracking.MilestoneStatusPending
}

// parseTEU converts the legacy string TEU field to an int
func parseTEU(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0, false
	}
	return n, true
}

// unwrapArray returns the first element when the upstream wraps a single
// result in an array, the payload unchanged when it is an object, and
// ErrUnparseablePayload for anything else
func unwrapArray(payload []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, ErrUnparseablePayload
	}
	switch trimmed[0] {
	case '{':
		return trimmed, nil
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(trimmed, &elems); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnparseablePayload, err)
		}
		if len(elems) == 0 {
			return nil, fmt.Errorf("%w: empty array", ErrUnparseablePayload)
		}
		return elems[0], nil
	default:
		return nil, ErrUnparseablePayload
	}
}
