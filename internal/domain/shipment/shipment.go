package shipment

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shipdesk/backend/internal/domain/shared"
	"github.com/shipdesk/backend/internal/domain/tracking"
)

// Status represents the lifecycle state of a shipment
type Status string

const (
	StatusPending   Status = "pending"
	StatusInTransit Status = "in_transit"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// ValidStatus reports whether s is a known shipment status
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusInTransit, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Shipment is a back-office record of a cargo movement. It carries the
// transport identifiers used to query live tracking for the shipment.
type Shipment struct {
	shared.BaseEntity
	Reference       string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	ClientName      string          `gorm:"type:varchar(100);not null"`
	ContainerNumber string          `gorm:"type:varchar(20)"`
	BLNumber        string          `gorm:"type:varchar(30)"`
	BookingNumber   string          `gorm:"type:varchar(30)"`
	ShippingLine    string          `gorm:"type:varchar(100)"`
	Origin          string          `gorm:"type:varchar(100)"`
	Destination     string          `gorm:"type:varchar(100)"`
	DeclaredValue   decimal.Decimal `gorm:"type:decimal(15,2)"`
	Status          Status          `gorm:"type:varchar(20);not null;default:'pending'"`
	Notes           string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Shipment) TableName() string {
	return "shipments"
}

// NewShipment creates a new shipment in pending status
func NewShipment(reference, clientName string) (*Shipment, error) {
	if err := validateReference(reference); err != nil {
		return nil, err
	}
	if strings.TrimSpace(clientName) == "" {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client name cannot be empty")
	}

	return &Shipment{
		BaseEntity: shared.NewBaseEntity(),
		Reference:  strings.ToUpper(strings.TrimSpace(reference)),
		ClientName: strings.TrimSpace(clientName),
		Status:     StatusPending,
	}, nil
}

// SetContainerNumber validates and assigns the container number
func (s *Shipment) SetContainerNumber(number string) error {
	id, err := tracking.NewContainerIdentifier(number)
	if err != nil {
		return err
	}
	s.ContainerNumber = id.Value
	s.touch()
	return nil
}

// SetBLNumber validates and assigns the bill of lading number
func (s *Shipment) SetBLNumber(number string) error {
	id, err := tracking.NewBillOfLadingIdentifier(number)
	if err != nil {
		return err
	}
	s.BLNumber = id.Value
	s.touch()
	return nil
}

// SetBookingNumber validates and assigns the booking number
func (s *Shipment) SetBookingNumber(number string) error {
	id, err := tracking.NewBookingIdentifier(number)
	if err != nil {
		return err
	}
	s.BookingNumber = id.Value
	s.touch()
	return nil
}

// UpdateDetails updates the shipment's descriptive fields
func (s *Shipment) UpdateDetails(shippingLine, origin, destination, notes string) {
	s.ShippingLine = shippingLine
	s.Origin = origin
	s.Destination = destination
	s.Notes = notes
	s.touch()
}

// SetDeclaredValue assigns the declared cargo value
func (s *Shipment) SetDeclaredValue(value decimal.Decimal) error {
	if value.IsNegative() {
		return shared.NewDomainError("INVALID_VALUE", "Declared value cannot be negative")
	}
	s.DeclaredValue = value
	s.touch()
	return nil
}

// ChangeStatus transitions the shipment to a new status
func (s *Shipment) ChangeStatus(status Status) error {
	if !ValidStatus(status) {
		return shared.NewDomainError("INVALID_STATUS", "Unknown shipment status")
	}
	if s.Status == StatusCancelled && status != StatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cancelled shipments cannot change status")
	}
	s.Status = status
	s.touch()
	return nil
}

// BestIdentifier resolves the identifier to use for live tracking.
// Container number wins over bill of lading, which wins over booking.
func (s *Shipment) BestIdentifier() (tracking.Identifier, error) {
	switch {
	case s.ContainerNumber != "":
		return tracking.NewContainerIdentifier(s.ContainerNumber)
	case s.BLNumber != "":
		return tracking.NewBillOfLadingIdentifier(s.BLNumber)
	case s.BookingNumber != "":
		return tracking.NewBookingIdentifier(s.BookingNumber)
	}
	return tracking.Identifier{}, shared.NewDomainError("NO_IDENTIFIER", "Shipment has no trackable identifier")
}

func (s *Shipment) touch() {
	s.UpdatedAt = time.Now()
}

func validateReference(reference string) error {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return shared.NewDomainError("INVALID_REFERENCE", "Shipment reference cannot be empty")
	}
	if len(reference) > 50 {
		return shared.NewDomainError("INVALID_REFERENCE", "Shipment reference cannot exceed 50 characters")
	}
	for _, r := range reference {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_REFERENCE", "Shipment reference can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}
