package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formaplan/formaplan-api/internal/models"
	"github.com/formaplan/formaplan-api/internal/service"
	appErrors "github.com/formaplan/formaplan-api/pkg/errors"
)

type assignmentServiceMock struct {
	items      []models.AssignmentDetail
	listErr    error
	createResp *models.Assignment
	createErr  error
	lastReq    service.CreateAssignmentRequest
}

func (m *assignmentServiceMock) List(ctx context.Context) ([]models.AssignmentDetail, error) {
	return m.items, m.listErr
}

func (m *assignmentServiceMock) Create(ctx context.Context, req service.CreateAssignmentRequest) (*models.Assignment, error) {
	m.lastReq = req
	return m.createResp, m.createErr
}

func TestAssignmentHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &assignmentServiceMock{
		items: []models.AssignmentDetail{{ID: "a1", TrainingName: "Go", RoomName: "Salle A"}},
	}
	handler := NewAssignmentHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/affectations", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Salle A")
}

func TestAssignmentHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &assignmentServiceMock{
		createResp: &models.Assignment{ID: "a1", TrainingID: "t1", RoomID: "r1", Date: "2026-09-08"},
	}
	handler := NewAssignmentHandler(mockSvc)

	payload, _ := json.Marshal(service.CreateAssignmentRequest{TrainingID: "t1", RoomID: "r1", Date: "2026-09-08"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/affectations", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "t1", mockSvc.lastReq.TrainingID)
}

func TestAssignmentHandlerCreateValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &assignmentServiceMock{
		createErr: appErrors.Clone(appErrors.ErrValidation, "date is outside the training period"),
	}
	handler := NewAssignmentHandler(mockSvc)

	payload, _ := json.Marshal(service.CreateAssignmentRequest{TrainingID: "t1", RoomID: "r1", Date: "2027-01-01"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/affectations", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
