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

type trainingService interface {
	List(ctx context.Context, filter models.TrainingFilter) ([]models.Training, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Training, error)
	Create(ctx context.Context, req service.CreateTrainingRequest) (*models.Training, error)
	Update(ctx context.Context, id string, req service.UpdateTrainingRequest) (*models.Training, error)
	Delete(ctx context.Context, id string) error
}

// TrainingHandler exposes training management endpoints.
type TrainingHandler struct {
	service trainingService
}

// NewTrainingHandler builds a new handler.
func NewTrainingHandler(service trainingService) *TrainingHandler {
	return &TrainingHandler{service: service}
}

// List godoc
// @Summary List trainings
// @Tags Trainings
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /formations [get]
func (h *TrainingHandler) List(c *gin.Context) {
	page, size := paginationFromQuery(c)
	trainings, pagination, err := h.service.List(c.Request.Context(), models.TrainingFilter{Page: page, PageSize: size})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, trainings, pagination)
}

// Get godoc
// @Summary Get a training by ID
// @Tags Trainings
// @Produce json
// @Param id path string true "Training ID"
// @Success 200 {object} response.Envelope
// @Router /formations/{id} [get]
func (h *TrainingHandler) Get(c *gin.Context) {
	training, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, training, nil)
}

// Create godoc
// @Summary Create a training
// @Tags Trainings
// @Accept json
// @Produce json
// @Param payload body service.CreateTrainingRequest true "Training payload"
// @Success 201 {object} response.Envelope
// @Router /formations [post]
func (h *TrainingHandler) Create(c *gin.Context) {
	var req service.CreateTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid training payload"))
		return
	}
	training, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, training)
}

// Update godoc
// @Summary Update a training
// @Tags Trainings
// @Accept json
// @Produce json
// @Param id path string true "Training ID"
// @Param payload body service.UpdateTrainingRequest true "Training payload"
// @Success 200 {object} response.Envelope
// @Router /formations/{id} [put]
func (h *TrainingHandler) Update(c *gin.Context) {
	var req service.UpdateTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid training payload"))
		return
	}
	training, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, training, nil)
}

// Delete godoc
// @Summary Delete a training and its assignments
// @Tags Trainings
// @Param id path string true "Training ID"
// @Success 204
// @Router /formations/{id} [delete]
func (h *TrainingHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
