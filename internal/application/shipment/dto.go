package shipment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shipdesk/backend/internal/domain/shipment"
)

// CreateShipmentRequest is the request to create a shipment
type CreateShipmentRequest struct {
	Reference       string           `json:"reference" binding:"required"`
	ClientName      string           `json:"client_name" binding:"required"`
	ContainerNumber string           `json:"container_number"`
	BLNumber        string           `json:"bl_number"`
	BookingNumber   string           `json:"booking_number"`
	ShippingLine    string           `json:"shipping_line"`
	Origin          string           `json:"origin"`
	Destination     string           `json:"destination"`
	DeclaredValue   *decimal.Decimal `json:"declared_value"`
	Notes           string           `json:"notes"`
}

// UpdateShipmentRequest is the request to update a shipment's details
type UpdateShipmentRequest struct {
	ContainerNumber *string          `json:"container_number"`
	BLNumber        *string          `json:"bl_number"`
	BookingNumber   *string          `json:"booking_number"`
	ShippingLine    *string          `json:"shipping_line"`
	Origin          *string          `json:"origin"`
	Destination     *string          `json:"destination"`
	DeclaredValue   *decimal.Decimal `json:"declared_value"`
	Notes           *string          `json:"notes"`
}

// UpdateShipmentStatusRequest is the request to change a shipment's status
type UpdateShipmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListShipmentsQuery carries list filtering and pagination parameters
type ListShipmentsQuery struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Search   string `form:"search"`
	Status   string `form:"status"`
}

// ShipmentResponse is the API representation of a shipment
type ShipmentResponse struct {
	ID              string          `json:"id"`
	Reference       string          `json:"reference"`
	ClientName      string          `json:"client_name"`
	ContainerNumber string          `json:"container_number,omitempty"`
	BLNumber        string          `json:"bl_number,omitempty"`
	BookingNumber   string          `json:"booking_number,omitempty"`
	ShippingLine    string          `json:"shipping_line,omitempty"`
	Origin          string          `json:"origin,omitempty"`
	Destination     string          `json:"destination,omitempty"`
	DeclaredValue   decimal.Decimal `json:"declared_value"`
	Status          string          `json:"status"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// toShipmentResponse converts a domain shipment to its API representation
func toShipmentResponse(s *shipment.Shipment) *ShipmentResponse {
	return &ShipmentResponse{
		ID:              s.ID.String(),
		Reference:       s.Reference,
		ClientName:      s.ClientName,
		ContainerNumber: s.ContainerNumber,
		BLNumber:        s.BLNumber,
		BookingNumber:   s.BookingNumber,
		ShippingLine:    s.ShippingLine,
		Origin:          s.Origin,
		Destination:     s.Destination,
		DeclaredValue:   s.DeclaredValue,
		Status:          string(s.Status),
		Notes:           s.Notes,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}
