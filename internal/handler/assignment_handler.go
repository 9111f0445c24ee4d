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

type assignmentService interface {
	List(ctx context.Context) ([]models.AssignmentDetail, error)
	Create(ctx context.Context, req service.CreateAssignmentRequest) (*models.Assignment, error)
}

// AssignmentHandler exposes assignment endpoints.
type AssignmentHandler struct {
	service assignmentService
}

// NewAssignmentHandler builds a new handler.
func NewAssignmentHandler(service assignmentService) *AssignmentHandler {
	return &AssignmentHandler{service: service}
}

// List godoc
// @Summary List assignments with training and room details
// @Tags Assignments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /affectations [get]
func (h *AssignmentHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Create godoc
// @Summary Book a room for a training on a date
// @Tags Assignments
// @Accept json
// @Produce json
// @Param payload body service.CreateAssignmentRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Router /affectations [post]
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req service.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assignment payload"))
		return
	}
	assignment, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assignment)
}
