package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/formaplan/formaplan-api/internal/service"
	appErrors "github.com/formaplan/formaplan-api/pkg/errors"
	"github.com/formaplan/formaplan-api/pkg/export"
	"github.com/formaplan/formaplan-api/pkg/response"
)

type planningService interface {
	Calendar(ctx context.Context, from, to string) (*service.PlanningView, error)
	ExportDataset(ctx context.Context, from, to string) (export.Dataset, string, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// PlanningHandler serves calendar views and file exports.
type PlanningHandler struct {
	service planningService
	csv     csvRenderer
	pdf     pdfRenderer
}

// NewPlanningHandler builds a new handler.
func NewPlanningHandler(service planningService, csv csvRenderer, pdf pdfRenderer) *PlanningHandler {
	return &PlanningHandler{service: service, csv: csv, pdf: pdf}
}

// Calendar godoc
// @Summary Assignments grouped by date
// @Tags Planning
// @Produce json
// @Param from query string false "Window start (YYYY-MM-DD), defaults to current month"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /planning [get]
func (h *PlanningHandler) Calendar(c *gin.Context) {
	view, err := h.service.Calendar(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Export godoc
// @Summary Export the planning window as CSV or PDF
// @Tags Planning
// @Produce application/octet-stream
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Router /planning/export [get]
func (h *PlanningHandler) Export(c *gin.Context) {
	dataset, title, err := h.service.ExportDataset(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		response.Error(c, err)
		return
	}

	format := c.DefaultQuery("format", "csv")
	switch format {
	case "csv":
		payload, err := h.csv.Render(dataset)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export"))
			return
		}
		c.Header("Content-Disposition", `attachment; filename="planning.csv"`)
		c.Data(http.StatusOK, "text/csv", payload)
	case "pdf":
		payload, err := h.pdf.Render(dataset, title)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export"))
			return
		}
		c.Header("Content-Disposition", `attachment; filename="planning.pdf"`)
		c.Data(http.StatusOK, "application/pdf", payload)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format)))
	}
}
