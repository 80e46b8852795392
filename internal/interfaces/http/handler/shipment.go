package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appshipment "github.com/shipdesk/backend/internal/application/shipment"
	apptracking "github.com/shipdesk/backend/internal/application/tracking"
	"github.com/shipdesk/backend/internal/interfaces/http/dto"
)

// ShipmentHandler exposes shipment CRUD and the shipment tracking lookup
type ShipmentHandler struct {
	BaseHandler
	shipments *appshipment.Service
	tracking  *apptracking.Service
}

// NewShipmentHandler creates a new ShipmentHandler
func NewShipmentHandler(shipments *appshipment.Service, tracking *apptracking.Service) *ShipmentHandler {
	return &ShipmentHandler{
		shipments: shipments,
		tracking:  tracking,
	}
}

// Create creates a new shipment
func (h *ShipmentHandler) Create(c *gin.Context) {
	var req appshipment.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, dto.GetHTTPStatus(dto.ErrCodeInvalidJSON), dto.ErrCodeInvalidJSON, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.shipments.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns a single shipment by ID
func (h *ShipmentHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	resp, err := h.shipments.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns shipments with pagination and optional filtering
func (h *ShipmentHandler) List(c *gin.Context) {
	var query appshipment.ListShipmentsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	page, err := h.shipments.List(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update updates a shipment's mutable fields
func (h *ShipmentHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req appshipment.UpdateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, dto.GetHTTPStatus(dto.ErrCodeInvalidJSON), dto.ErrCodeInvalidJSON, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.shipments.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateStatus changes a shipment's status
func (h *ShipmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req appshipment.UpdateShipmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, dto.GetHTTPStatus(dto.ErrCodeInvalidJSON), dto.ErrCodeInvalidJSON, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.shipments.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a shipment
func (h *ShipmentHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.shipments.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Track resolves the shipment's best tracking identifier and queries the
// tracking gateway with it
func (h *ShipmentHandler) Track(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	identifier, err := h.shipments.ResolveTrackingIdentifier(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.tracking.TrackByIdentifier(c.Request.Context(), identifier)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

func (h *ShipmentHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid shipment ID format")
		return uuid.Nil, false
	}
	return id, true
}
