package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/formaplan/formaplan-api/internal/models"
	"github.com/formaplan/formaplan-api/pkg/response"
)

type optimizerService interface {
	Optimize(ctx context.Context) ([]models.Proposal, error)
}

// OptimizerHandler exposes the assignment proposal endpoint.
type OptimizerHandler struct {
	service optimizerService
}

// NewOptimizerHandler builds a new handler.
func NewOptimizerHandler(service optimizerService) *OptimizerHandler {
	return &OptimizerHandler{service: service}
}

// Run godoc
// @Summary Propose rooms for unassigned trainings
// @Description Runs the placement engine over every training without an
// @Description assignment and returns proposals without persisting anything.
// @Tags Optimizer
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /optimisation [post]
func (h *OptimizerHandler) Run(c *gin.Context) {
	proposals, err := h.service.Optimize(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, proposals, nil, map[string]interface{}{
		"proposal_count": len(proposals),
	})
}
