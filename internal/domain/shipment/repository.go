package shipment

import (
	"context"

	"github.com/google/uuid"

	"github.com/shipdesk/backend/internal/domain/shared"
)

// Repository defines the interface for shipment persistence
type Repository interface {
	// FindByID finds a shipment by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Shipment, error)

	// FindByReference finds a shipment by its unique reference
	FindByReference(ctx context.Context, reference string) (*Shipment, error)

	// FindAll finds all shipments matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Shipment, error)

	// Save creates or updates a shipment
	Save(ctx context.Context, shipment *Shipment) error

	// Delete deletes a shipment
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts shipments matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByReference checks if a shipment with the given reference exists
	ExistsByReference(ctx context.Context, reference string) (bool, error)
}
