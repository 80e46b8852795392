package tracking

import (
	"strings"
	"time"
)

// MilestoneStatus is the normalized progress state of a milestone. Upstream
// providers report the same state in several spellings ("In Progress",
// "in_progress"); normalizers map them to this enum once so consumers never
// repeat tolerant string comparisons.
type MilestoneStatus string

const (
	// MilestoneStatusCompleted marks a milestone that has already happened
	MilestoneStatusCompleted MilestoneStatus = "completed"
	// MilestoneStatusInProgress marks the milestone currently underway
	MilestoneStatusInProgress MilestoneStatus = "in_progress"
	// MilestoneStatusPending marks a milestone not yet reached
	MilestoneStatusPending MilestoneStatus = "pending"
)

// ParseMilestoneStatus maps an upstream status string to the normalized enum.
// Matching is case-insensitive and tolerates underscore/space variants.
// Unknown values default to pending.
func ParseMilestoneStatus(raw string) MilestoneStatus {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, " ", "_")
	switch s {
	case "completed", "complete", "done":
		return MilestoneStatusCompleted
	case "in_progress", "inprogress", "current":
		return MilestoneStatusInProgress
	default:
		return MilestoneStatusPending
	}
}

// Milestone is a discrete tracked event in a shipment's journey. Milestones
// keep the chronological order received from upstream; the gateway does not
// re-sort them.
type Milestone struct {
	Event       string          `json:"event"`
	Location    string          `json:"location,omitempty"`
	Date        string          `json:"date,omitempty"`
	Status      MilestoneStatus `json:"status"`
	Description string          `json:"description,omitempty"`
}

// GeoPosition is a vessel position fix
type GeoPosition struct {
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// Result is the canonical tracking output every upstream payload shape is
// normalized into
type Result struct {
	Success bool `json:"success"`

	ContainerNumber string `json:"container_number"`
	BLNumber        string `json:"bl_number,omitempty"`
	BookingNumber   string `json:"booking_number,omitempty"`
	ShippingLine    string `json:"shipping_line,omitempty"`

	VesselName string `json:"vessel_name,omitempty"`
	VesselIMO  string `json:"vessel_imo,omitempty"`
	Voyage     string `json:"voyage,omitempty"`

	OriginPort         string `json:"origin_port,omitempty"`
	OriginCountry      string `json:"origin_country,omitempty"`
	DestinationPort    string `json:"destination_port,omitempty"`
	DestinationCountry string `json:"destination_country,omitempty"`

	EstimatedDeparture *time.Time `json:"estimated_departure,omitempty"`
	ActualDeparture    *time.Time `json:"actual_departure,omitempty"`
	EstimatedArrival   *time.Time `json:"estimated_arrival,omitempty"`
	ActualArrival      *time.Time `json:"actual_arrival,omitempty"`

	StatusLabel string `json:"status_label,omitempty"`
	StatusCode  *int   `json:"status_code,omitempty"`

	Milestones []Milestone  `json:"milestones"`
	Position   *GeoPosition `json:"position,omitempty"`

	ContainerType string   `json:"container_type,omitempty"`
	TEU           *int     `json:"teu,omitempty"`
	TransitTime   string   `json:"transit_time,omitempty"`
	CO2Emissions  *float64 `json:"co2_emissions,omitempty"`
	LiveMapURL    string   `json:"live_map_url,omitempty"`
}
