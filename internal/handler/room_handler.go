package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/formaplan/formaplan-api/internal/models"
	"github.com/formaplan/formaplan-api/internal/service"
	appErrors "github.com/formaplan/formaplan-api/pkg/errors"
	"github.com/formaplan/formaplan-api/pkg/response"
)

type roomService interface {
	List(ctx context.Context, filter models.RoomFilter) ([]models.Room, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Room, error)
	Create(ctx context.Context, req service.CreateRoomRequest) (*models.Room, error)
	Update(ctx context.Context, id string, req service.UpdateRoomRequest) (*models.Room, error)
	Delete(ctx context.Context, id string) error
}

// RoomHandler exposes room management endpoints.
type RoomHandler struct {
	service roomService
}

// NewRoomHandler builds a new handler.
func NewRoomHandler(service roomService) *RoomHandler {
	return &RoomHandler{service: service}
}

// List godoc
// @Summary List rooms
// @Tags Rooms
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /salles [get]
func (h *RoomHandler) List(c *gin.Context) {
	page, size := paginationFromQuery(c)
	rooms, pagination, err := h.service.List(c.Request.Context(), models.RoomFilter{Page: page, PageSize: size})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rooms, pagination)
}

// Get godoc
// @Summary Get a room by ID
// @Tags Rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Envelope
// @Router /salles/{id} [get]
func (h *RoomHandler) Get(c *gin.Context) {
	room, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, room, nil)
}

// Create godoc
// @Summary Create a room
// @Tags Rooms
// @Accept json
// @Produce json
// @Param payload body service.CreateRoomRequest true "Room payload"
// @Success 201 {object} response.Envelope
// @Router /salles [post]
func (h *RoomHandler) Create(c *gin.Context) {
	var req service.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid room payload"))
		return
	}
	room, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, room)
}

// Update godoc
// @Summary Update a room
// @Tags Rooms
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param payload body service.UpdateRoomRequest true "Room payload"
// @Success 200 {object} response.Envelope
// @Router /salles/{id} [put]
func (h *RoomHandler) Update(c *gin.Context) {
	var req service.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid room payload"))
		return
	}
	room, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, room, nil)
}

// Delete godoc
// @Summary Delete a room
// @Tags Rooms
// @Param id path string true "Room ID"
// @Success 204
// @Router /salles/{id} [delete]
func (h *RoomHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
