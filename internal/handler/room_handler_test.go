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

type roomServiceMock struct {
	listResp   []models.Room
	pagination *models.Pagination
	listErr    error
	getResp    *models.Room
	getErr     error
	createResp *models.Room
	createErr  error
	deleteErr  error
	lastFilter models.RoomFilter
	deletedID  string
}

func (m *roomServiceMock) List(ctx context.Context, filter models.RoomFilter) ([]models.Room, *models.Pagination, error) {
	m.lastFilter = filter
	return m.listResp, m.pagination, m.listErr
}

func (m *roomServiceMock) Get(ctx context.Context, id string) (*models.Room, error) {
	return m.getResp, m.getErr
}

func (m *roomServiceMock) Create(ctx context.Context, req service.CreateRoomRequest) (*models.Room, error) {
	return m.createResp, m.createErr
}

func (m *roomServiceMock) Update(ctx context.Context, id string, req service.UpdateRoomRequest) (*models.Room, error) {
	return m.getResp, m.getErr
}

func (m *roomServiceMock) Delete(ctx context.Context, id string) error {
	m.deletedID = id
	return m.deleteErr
}

func TestRoomHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &roomServiceMock{
		listResp:   []models.Room{{ID: "r1", Name: "Salle A"}},
		pagination: &models.Pagination{Page: 2, PageSize: 10, TotalCount: 25},
	}
	handler := NewRoomHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/salles?page=2&page_size=10", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, mockSvc.lastFilter.Page)
	assert.Equal(t, 10, mockSvc.lastFilter.PageSize)
}

func TestRoomHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &roomServiceMock{createResp: &models.Room{ID: "r1", Name: "Salle A", Capacity: 20}}
	handler := NewRoomHandler(mockSvc)

	payload, _ := json.Marshal(service.CreateRoomRequest{Name: "Salle A", Capacity: 20})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/salles", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestRoomHandlerCreateInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewRoomHandler(&roomServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/salles", bytes.NewBufferString(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRoomHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &roomServiceMock{getErr: appErrors.Clone(appErrors.ErrNotFound, "room not found")}
	handler := NewRoomHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/salles/missing", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Get(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRoomHandlerDeleteConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &roomServiceMock{deleteErr: appErrors.Clone(appErrors.ErrPreconditionFailed, "room is referenced by assignments")}
	handler := NewRoomHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/salles/r1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "r1"}}

	handler.Delete(c)
	require.Equal(t, http.StatusPreconditionFailed, w.Code)
	assert.Equal(t, "r1", mockSvc.deletedID)
}

func TestRoomHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &roomServiceMock{}
	handler := NewRoomHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/salles/r1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "r1"}}

	handler.Delete(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, w.Code)
}
