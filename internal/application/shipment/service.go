package shipment

import (
	"context"

	"github.com/google/uuid"

	"github.com/shipdesk/backend/internal/domain/shared"
	"github.com/shipdesk/backend/internal/domain/shipment"
	"github.com/shipdesk/backend/internal/domain/tracking"
)

// Service handles shipment business operations
type Service struct {
	repo shipment.Repository
}

// NewService creates a new shipment Service
func NewService(repo shipment.Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new shipment
func (s *Service) Create(ctx context.Context, req CreateShipmentRequest) (*ShipmentResponse, error) {
	exists, err := s.repo.ExistsByReference(ctx, req.Reference)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Shipment with this reference already exists")
	}

	sh, err := shipment.NewShipment(req.Reference, req.ClientName)
	if err != nil {
		return nil, err
	}

	if req.ContainerNumber != "" {
		if err := sh.SetContainerNumber(req.ContainerNumber); err != nil {
			return nil, err
		}
	}
	if req.BLNumber != "" {
		if err := sh.SetBLNumber(req.BLNumber); err != nil {
			return nil, err
		}
	}
	if req.BookingNumber != "" {
		if err := sh.SetBookingNumber(req.BookingNumber); err != nil {
			return nil, err
		}
	}
	if req.ShippingLine != "" || req.Origin != "" || req.Destination != "" || req.Notes != "" {
		sh.UpdateDetails(req.ShippingLine, req.Origin, req.Destination, req.Notes)
	}
	if req.DeclaredValue != nil {
		if err := sh.SetDeclaredValue(*req.DeclaredValue); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, sh); err != nil {
		return nil, err
	}
	return toShipmentResponse(sh), nil
}

// GetByID returns a shipment by its ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*ShipmentResponse, error) {
	sh, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toShipmentResponse(sh), nil
}

// List returns a paginated list of shipments
func (s *Service) List(ctx context.Context, query ListShipmentsQuery) (*shared.Paginated[ShipmentResponse], error) {
	filter := shared.DefaultFilter()
	if query.Page > 0 {
		filter.Page = query.Page
	}
	if query.PageSize > 0 && query.PageSize <= 100 {
		filter.PageSize = query.PageSize
	}
	filter.Search = query.Search
	if query.Status != "" {
		filter.Filters["status"] = query.Status
	}

	shipments, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ShipmentResponse, len(shipments))
	for i := range shipments {
		items[i] = *toShipmentResponse(&shipments[i])
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update updates a shipment's details
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateShipmentRequest) (*ShipmentResponse, error) {
	sh, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ContainerNumber != nil {
		if *req.ContainerNumber == "" {
			sh.ContainerNumber = ""
		} else if err := sh.SetContainerNumber(*req.ContainerNumber); err != nil {
			return nil, err
		}
	}
	if req.BLNumber != nil {
		if *req.BLNumber == "" {
			sh.BLNumber = ""
		} else if err := sh.SetBLNumber(*req.BLNumber); err != nil {
			return nil, err
		}
	}
	if req.BookingNumber != nil {
		if *req.BookingNumber == "" {
			sh.BookingNumber = ""
		} else if err := sh.SetBookingNumber(*req.BookingNumber); err != nil {
			return nil, err
		}
	}

	shippingLine := sh.ShippingLine
	origin := sh.Origin
	destination := sh.Destination
	notes := sh.Notes
	if req.ShippingLine != nil {
		shippingLine = *req.ShippingLine
	}
	if req.Origin != nil {
		origin = *req.Origin
	}
	if req.Destination != nil {
		destination = *req.Destination
	}
	if req.Notes != nil {
		notes = *req.Notes
	}
	sh.UpdateDetails(shippingLine, origin, destination, notes)

	if req.DeclaredValue != nil {
		if err := sh.SetDeclaredValue(*req.DeclaredValue); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, sh); err != nil {
		return nil, err
	}
	return toShipmentResponse(sh), nil
}

// UpdateStatus changes a shipment's status
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateShipmentStatusRequest) (*ShipmentResponse, error) {
	sh, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sh.ChangeStatus(shipment.Status(req.Status)); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, sh); err != nil {
		return nil, err
	}
	return toShipmentResponse(sh), nil
}

// Delete deletes a shipment
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// ResolveTrackingIdentifier returns the identifier to use when tracking the
// shipment live. Container number wins over bill of lading over booking.
func (s *Service) ResolveTrackingIdentifier(ctx context.Context, id uuid.UUID) (tracking.Identifier, error) {
	sh, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return tracking.Identifier{}, err
	}
	return sh.BestIdentifier()
}
