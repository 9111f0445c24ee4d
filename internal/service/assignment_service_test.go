package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/formaplan/formaplan-api/internal/models"
	appErrors "github.com/formaplan/formaplan-api/pkg/errors"
)

type assignmentRepoStub struct {
	items     []models.AssignmentDetail
	listErr   error
	createErr error
	exists    bool
	existsErr error
	created   []*models.Assignment
}

func (s *assignmentRepoStub) ListDetailed(ctx context.Context) ([]models.AssignmentDetail, error) {
	return s.items, s.listErr
}

func (s *assignmentRepoStub) Create(ctx context.Context, assignment *models.Assignment) error {
	if s.createErr != nil {
		return s.createErr
	}
	assignment.ID = "assignment-new"
	s.created = append(s.created, assignment)
	return nil
}

func (s *assignmentRepoStub) ExistsForRoomOnDate(ctx context.Context, roomID, date string) (bool, error) {
	return s.exists, s.existsErr
}

type trainingReaderStub struct {
	trainings map[string]*models.Training
}

func (s trainingReaderStub) FindByID(ctx context.Context, id string) (*models.Training, error) {
	if training, ok := s.trainings[id]; ok {
		return training, nil
	}
	return nil, sql.ErrNoRows
}

type roomReaderStub struct {
	rooms map[string]*models.Room
}

func (s roomReaderStub) FindByID(ctx context.Context, id string) (*models.Room, error) {
	if room, ok := s.rooms[id]; ok {
		return room, nil
	}
	return nil, sql.ErrNoRows
}

func newAssignmentService(repo *assignmentRepoStub, cache *invalidatorStub) *AssignmentService {
	trainings := trainingReaderStub{trainings: map[string]*models.Training{
		"t1": {ID: "t1", Name: "Go", Headcount: 10, StartDate: "2026-09-07", EndDate: "2026-09-11"},
	}}
	rooms := roomReaderStub{rooms: map[string]*models.Room{
		"r1": {ID: "r1", Name: "Salle A", Capacity: 20},
	}}
	var invalidator planningInvalidator
	if cache != nil {
		invalidator = cache
	}
	return NewAssignmentService(repo, trainings, rooms, invalidator, nil, zap.NewNop())
}

func TestAssignmentServiceCreate(t *testing.T) {
	repo := &assignmentRepoStub{}
	cache := &invalidatorStub{}
	svc := newAssignmentService(repo, cache)

	assignment, err := svc.Create(context.Background(), CreateAssignmentRequest{
		TrainingID: "t1", RoomID: "r1", Date: "2026-09-08",
	})
	require.NoError(t, err)
	assert.Equal(t, "assignment-new", assignment.ID)
	assert.Equal(t, "2026-09-08", assignment.Date)
	assert.Len(t, cache.patterns, 1)
}

func TestAssignmentServiceCreateTrainingNotFound(t *testing.T) {
	svc := newAssignmentService(&assignmentRepoStub{}, nil)

	_, err := svc.Create(context.Background(), CreateAssignmentRequest{
		TrainingID: "missing", RoomID: "r1", Date: "2026-09-08",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestAssignmentServiceCreateRoomNotFound(t *testing.T) {
	svc := newAssignmentService(&assignmentRepoStub{}, nil)

	_, err := svc.Create(context.Background(), CreateAssignmentRequest{
		TrainingID: "t1", RoomID: "missing", Date: "2026-09-08",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestAssignmentServiceCreateDateOutsideTraining(t *testing.T) {
	svc := newAssignmentService(&assignmentRepoStub{}, nil)

	_, err := svc.Create(context.Background(), CreateAssignmentRequest{
		TrainingID: "t1", RoomID: "r1", Date: "2026-09-21",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAssignmentServiceCreateBadDate(t *testing.T) {
	svc := newAssignmentService(&assignmentRepoStub{}, nil)

	_, err := svc.Create(context.Background(), CreateAssignmentRequest{
		TrainingID: "t1", RoomID: "r1", Date: "08/09/2026",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAssignmentServiceCreateAllowsDoubleBooking(t *testing.T) {
	// The store does not enforce (date, room) uniqueness; only the
	// optimizer keeps its own suggestions conflict-free.
	repo := &assignmentRepoStub{exists: true}
	svc := newAssignmentService(repo, nil)

	assignment, err := svc.Create(context.Background(), CreateAssignmentRequest{
		TrainingID: "t1", RoomID: "r1", Date: "2026-09-08",
	})
	require.NoError(t, err)
	assert.NotNil(t, assignment)
	assert.Len(t, repo.created, 1)
}

func TestAssignmentServiceList(t *testing.T) {
	repo := &assignmentRepoStub{items: []models.AssignmentDetail{
		{ID: "a1", Date: "2026-09-07"},
		{ID: "a2", Date: "2026-09-08"},
	}}
	svc := newAssignmentService(repo, nil)

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
