package handler

import (
	"github.com/gin-gonic/gin"

	apptracking "github.com/shipdesk/backend/internal/application/tracking"
	"github.com/shipdesk/backend/internal/interfaces/http/dto"
)

// TrackingHandler exposes the tracking gateway over HTTP
type TrackingHandler struct {
	BaseHandler
	service *apptracking.Service
}

// NewTrackingHandler creates a new TrackingHandler
func NewTrackingHandler(service *apptracking.Service) *TrackingHandler {
	return &TrackingHandler{service: service}
}

// TrackByContainer returns the tracking result for a container number
func (h *TrackingHandler) TrackByContainer(c *gin.Context) {
	result, err := h.service.TrackByContainer(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// TrackByBillOfLading returns the tracking result for a bill of lading number
func (h *TrackingHandler) TrackByBillOfLading(c *gin.Context) {
	result, err := h.service.TrackByBillOfLading(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// TrackByBooking returns the tracking result for a booking number
func (h *TrackingHandler) TrackByBooking(c *gin.Context) {
	result, err := h.service.TrackByBooking(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Track is the combined tracking endpoint. The body must set exactly one of
// container_number, bl_number or booking_number.
func (h *TrackingHandler) Track(c *gin.Context) {
	var req apptracking.TrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, dto.GetHTTPStatus(dto.ErrCodeInvalidJSON), dto.ErrCodeInvalidJSON, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.service.Track(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GetVesselPosition returns the current position of a vessel by MMSI. A
// vessel without position data yields a success response with null data.
func (h *TrackingHandler) GetVesselPosition(c *gin.Context) {
	position, err := h.service.GetVesselPosition(c.Request.Context(), c.Param("mmsi"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, position)
}

// GetHealth reports the gateway's provider wiring without exposing the key
func (h *TrackingHandler) GetHealth(c *gin.Context) {
	h.Success(c, h.service.GetHealth(c.Request.Context()))
}
