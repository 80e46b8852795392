package models

import (
	"github.com/shopspring/decimal"

	"github.com/shipdesk/backend/internal/domain/shipment"
)

// ShipmentModel is the persistence model for shipments
type ShipmentModel struct {
	BaseModel
	Reference       string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	ClientName      string          `gorm:"type:varchar(100);not null"`
	ContainerNumber string          `gorm:"type:varchar(20);index"`
	BLNumber        string          `gorm:"type:varchar(30);index"`
	BookingNumber   string          `gorm:"type:varchar(30);index"`
	ShippingLine    string          `gorm:"type:varchar(100)"`
	Origin          string          `gorm:"type:varchar(100)"`
	Destination     string          `gorm:"type:varchar(100)"`
	DeclaredValue   decimal.Decimal `gorm:"type:decimal(15,2)"`
	Status          string          `gorm:"type:varchar(20);not null;default:'pending';index"`
	Notes           string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ShipmentModel) TableName() string {
	return "shipments"
}

// ToDomain converts the persistence model to a domain shipment
func (m *ShipmentModel) ToDomain() *shipment.Shipment {
	return &shipment.Shipment{
		BaseEntity:      m.BaseModel.ToDomain(),
		Reference:       m.Reference,
		ClientName:      m.ClientName,
		ContainerNumber: m.ContainerNumber,
		BLNumber:        m.BLNumber,
		BookingNumber:   m.BookingNumber,
		ShippingLine:    m.ShippingLine,
		Origin:          m.Origin,
		Destination:     m.Destination,
		DeclaredValue:   m.DeclaredValue,
		Status:          shipment.Status(m.Status),
		Notes:           m.Notes,
	}
}

// ShipmentModelFromDomain converts a domain shipment to its persistence model
func ShipmentModelFromDomain(s *shipment.Shipment) *ShipmentModel {
	m := &ShipmentModel{
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
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}
