package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/formaplan/formaplan-api/internal/models"
	"github.com/formaplan/formaplan-api/pkg/config"
)

type roomSourceStub struct {
	rooms []models.Room
	err   error
}

func (s roomSourceStub) ListAll(ctx context.Context) ([]models.Room, error) {
	return s.rooms, s.err
}

type trainingSourceStub struct {
	trainings []models.Training
	err       error
}

func (s trainingSourceStub) ListAll(ctx context.Context) ([]models.Training, error) {
	return s.trainings, s.err
}

type assignmentSourceStub struct {
	items []models.AssignmentDetail
	err   error
}

func (s assignmentSourceStub) ListDetailed(ctx context.Context) ([]models.AssignmentDetail, error) {
	return s.items, s.err
}

type runRecorderStub struct {
	runs      int
	proposals int
}

func (s *runRecorderStub) ObserveOptimizerRun(duration time.Duration, proposals int) {
	s.runs++
	s.proposals = proposals
}

func strPtr(s string) *string { return &s }

func newOptimizer(rooms []models.Room, trainings []models.Training, assignments []models.AssignmentDetail, cfg config.OptimizerConfig) *OptimizerService {
	return NewOptimizerService(
		roomSourceStub{rooms: rooms},
		trainingSourceStub{trainings: trainings},
		assignmentSourceStub{items: assignments},
		nil,
		zap.NewNop(),
		cfg,
	)
}

// 2026-09-07 is a Monday.
func TestOptimizerSingleDayProposal(t *testing.T) {
	rooms := []models.Room{{ID: "r1", Name: "Salle A", Capacity: 20}}
	trainings := []models.Training{{ID: "t1", Name: "Go", Headcount: 16, StartDate: "2026-09-07", EndDate: "2026-09-07"}}

	svc := newOptimizer(rooms, trainings, nil, config.OptimizerConfig{})
	proposals, err := svc.Optimize(context.Background())
	require.NoError(t, err)
	require.Len(t, proposals, 1)
	assert.Equal(t, "t1", proposals[0].TrainingID)
	assert.Equal(t, "r1", proposals[0].RoomID)
	assert.Equal(t, "2026-09-07", proposals[0].Date)
	assert.Equal(t, 80, proposals[0].FillRatio)
}

func TestOptimizerPrefersTightestFit(t *testing.T) {
	rooms := []models.Room{
		{ID: "big", Name: "Salle B", Capacity: 30},
		{ID: "small", Name: "Salle S", Capacity: 12},
	}
	trainings := []models.Training{{ID: "t1", Name: "Go", Headcount: 10, StartDate: "2026-09-07", EndDate: "2026-09-07"}}

	svc := newOptimizer(rooms, trainings, nil, config.OptimizerConfig{})
	proposals, err := svc.Optimize(context.Background())
	require.NoError(t, err)
	require.Len(t, proposals, 1)
	assert.Equal(t, "small", proposals[0].RoomID)
}

func TestOptimizerNoProposalWhenNothingFits(t *testing.T) {
	rooms := []models.Room{
		{ID: "r1", Name: "Salle A", Capacity: 20},
		{ID: "r2", Name: "Salle B", Capacity: 30},
	}
	trainings := []models.Training{{ID: "t1", Name: "Conf", Headcount: 50, StartDate: "2026-09-07", EndDate: "2026-09-07"}}

	svc := newOptimizer(rooms, trainings, nil, config.OptimizerConfig{})
	proposals, err := svc.Optimize(context.Background())
	require.NoError(t, err)
	assert.Empty(t, proposals)
}

func TestOptimizerSkipsWeekends(t *testing.T) {
	rooms := []models.Room{{ID: "r1", Name: "Salle A", Capacity: 20}}
	// Saturday through Sunday only.
	trainings := []models.Training{{ID: "t1", Name: "Weekend", Headcount: 5, StartDate: "2026-09-05", EndDate: "2026-09-06"}}

	svc := newOptimizer(rooms, trainings, nil, config.OptimizerConfig{})
	proposals, err := svc.Optimize(context.Background())
	require.NoError(t, err)
	assert.Empty(t, proposals)
}

func TestOptimizerFullWeekYieldsFiveProposals(t *testing.T) {
	rooms := []models.Room{{ID: "r1", Name: "Salle A", Capacity: 20}}
	// Monday through Sunday: five business days.
	trainings := []models.Training{{ID: "t1", Name: "Go", Headcount: 10, StartDate: "2026-09-07", EndDate: "2026-09-13"}}

	svc := newOptimizer(rooms, trainings, nil, config.OptimizerConfig{})
	proposals, err := svc.Optimize(context.Background())
	require.NoError(t, err)
	require.Len(t, proposals, 5)
	dates := make([]string, 0, len(proposals))
	for _, p := range proposals {
		dates = append(dates, p.Date)
	}
	assert.Equal(t, []string{"2026-09-07", "2026-09-08", "2026-09-09", "2026-09-10", "2026-09-11"}, dates)
}

func TestOptimizerPrefersEquipmentMatch(t *testing.T) {
	rooms := []models.Room{
		{ID: "tight", Name: "Salle T", Capacity: 12},
		{ID: "equipped", Name: "Salle E", Capacity: 30, Equipments: strPtr("projecteur, tableau blanc")},
	}
	trainings := []models.Training{{ID: "t1", Name: "Go", Headcount: 10, StartDate: "2026-09-07", EndDate: "2026-09-07", Needs: strPtr("projecteur")}}

	svc := newOptimizer(rooms, trainings, nil, config.OptimizerConfig{})
	proposals, err := svc.Optimize(context.Background())
	require.NoError(t, err)
	require.Len(t, proposals, 1)
	assert.Equal(t, "equipped", proposals[0].RoomID)
}

func TestOptimizerEquipmentSubstringMatch(t *testing.T) {
	rooms := []models.Room{
		{ID: "r1", Name: "Salle A", Capacity: 20, Equipments: strPtr("projecteur,wifi,tableau")},
		{ID: "r2", Name: "Salle B", Capacity: 15},
	}
	trainings := []models.Training{{ID: "t1", Name: "Go", Headcount: 10, StartDate: "2026-09-07", EndDate: "2026-09-07", Needs: strPtr("wifi")}}

	svc := newOptimizer(rooms, trainings, nil, config.OptimizerConfig{})
	proposals, err := svc.Optimize(context.Background())
	require.NoError(t, err)
	require.Len(t, proposals, 1)
	assert.Equal(t, "r1", proposals[0].RoomID)
}

func TestOptimizerNoDoubleBookingWithinRun(t *testing.T) {
	rooms := []models.Room{{ID: "r1", Name: "Salle A", Capacity: 20}}
	trainings := []models.Training{
		{ID: "t1", Name: "First", Headcount: 10, StartDate: "2026-09-07", EndDate: "2026-09-07"},
		{ID: "t2", Name: "Second", Headcount: 10, StartDate: "2026-09-07", EndDate: "2026-09-07"},
	}

	svc := newOptimizer(rooms, trainings, nil, config.OptimizerConfig{})
	proposals, err := svc.Optimize(context.Background())
	require.NoError(t, err)
	require.Len(t, proposals, 1)
	assert.Equal(t, "t1", proposals[0].TrainingID)
}

func TestOptimizerRespectsExistingOccupancy(t *testing.T) {
	rooms := []models.Room{
		{ID: "r1", Name: "Salle A", Capacity: 12},
		{ID: "r2", Name: "Salle B", Capacity: 20},
	}
	trainings := []models.Training{{ID: "t1", Name: "Go", Headcount: 10, StartDate: "2026-09-07", EndDate: "2026-09-07"}}
	assignments := []models.AssignmentDetail{
		{ID: "a1", TrainingID: "other", RoomID: "r1", Date: "2026-09-07"},
	}

	svc := newOptimizer(rooms, trainings, assignments, config.OptimizerConfig{})
	proposals, err := svc.Optimize(context.Background())
	require.NoError(t, err)
	require.Len(t, proposals, 1)
	assert.Equal(t, "r2", proposals[0].RoomID)
}

func TestOptimizerSkipsTrainingsWithAssignments(t *testing.T) {
	rooms := []models.Room{{ID: "r1", Name: "Salle A", Capacity: 20}}
	trainings := []models.Training{{ID: "t1", Name: "Go", Headcount: 10, StartDate: "2026-09-07", EndDate: "2026-09-11"}}
	assignments := []models.AssignmentDetail{
		{ID: "a1", TrainingID: "t1", RoomID: "r1", Date: "2026-09-07"},
	}

	svc := newOptimizer(rooms, trainings, assignments, config.OptimizerConfig{})
	proposals, err := svc.Optimize(context.Background())
	require.NoError(t, err)
	assert.Empty(t, proposals)
}

func TestOptimizerDeterministicAcrossRuns(t *testing.T) {
	rooms := []models.Room{
		{ID: "r1", Name: "Salle A", Capacity: 15},
		{ID: "r2", Name: "Salle B", Capacity: 15},
		{ID: "r3", Name: "Salle C", Capacity: 25},
	}
	trainings := []models.Training{
		{ID: "t1", Name: "Go", Headcount: 12, StartDate: "2026-09-07", EndDate: "2026-09-09"},
		{ID: "t2", Name: "Rust", Headcount: 14, StartDate: "2026-09-08", EndDate: "2026-09-10"},
	}

	svc := newOptimizer(rooms, trainings, nil, config.OptimizerConfig{})
	first, err := svc.Optimize(context.Background())
	require.NoError(t, err)
	second, err := svc.Optimize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestOptimizerFillRatioRounding(t *testing.T) {
	rooms := []models.Room{{ID: "r1", Name: "Salle A", Capacity: 20}}
	trainings := []models.Training{{ID: "t1", Name: "Go", Headcount: 18, StartDate: "2026-09-07", EndDate: "2026-09-07"}}

	svc := newOptimizer(rooms, trainings, nil, config.OptimizerConfig{})
	proposals, err := svc.Optimize(context.Background())
	require.NoError(t, err)
	require.Len(t, proposals, 1)
	assert.Equal(t, 90, proposals[0].FillRatio)
}

func TestOptimizerEquipmentFallbackStrictFilter(t *testing.T) {
	rooms := []models.Room{
		{ID: "tight", Name: "Salle T", Capacity: 12},
		{ID: "equipped", Name: "Salle E", Capacity: 30, Equipments: strPtr("projecteur")},
	}
	trainings := []models.Training{{ID: "t1", Name: "Go", Headcount: 10, StartDate: "2026-09-07", EndDate: "2026-09-07", Needs: strPtr("projecteur")}}

	svc := newOptimizer(rooms, trainings, nil, config.OptimizerConfig{EquipmentFallback: true})
	proposals, err := svc.Optimize(context.Background())
	require.NoError(t, err)
	require.Len(t, proposals, 1)
	assert.Equal(t, "equipped", proposals[0].RoomID)
}

func TestOptimizerEquipmentFallbackToAllRooms(t *testing.T) {
	rooms := []models.Room{{ID: "r1", Name: "Salle A", Capacity: 20}}
	trainings := []models.Training{{ID: "t1", Name: "Go", Headcount: 10, StartDate: "2026-09-07", EndDate: "2026-09-07", Needs: strPtr("visioconference")}}

	svc := newOptimizer(rooms, trainings, nil, config.OptimizerConfig{EquipmentFallback: true})
	proposals, err := svc.Optimize(context.Background())
	require.NoError(t, err)
	require.Len(t, proposals, 1)
	assert.Equal(t, "r1", proposals[0].RoomID)
}

func TestOptimizerSkipsTrainingWithBadDates(t *testing.T) {
	rooms := []models.Room{{ID: "r1", Name: "Salle A", Capacity: 20}}
	trainings := []models.Training{
		{ID: "bad", Name: "Broken", Headcount: 10, StartDate: "07/09/2026", EndDate: "2026-09-07"},
		{ID: "good", Name: "Go", Headcount: 10, StartDate: "2026-09-07", EndDate: "2026-09-07"},
	}

	svc := newOptimizer(rooms, trainings, nil, config.OptimizerConfig{})
	proposals, err := svc.Optimize(context.Background())
	require.NoError(t, err)
	require.Len(t, proposals, 1)
	assert.Equal(t, "good", proposals[0].TrainingID)
}

func TestOptimizerRecordsRunMetrics(t *testing.T) {
	recorder := &runRecorderStub{}
	svc := NewOptimizerService(
		roomSourceStub{rooms: []models.Room{{ID: "r1", Name: "Salle A", Capacity: 20}}},
		trainingSourceStub{trainings: []models.Training{{ID: "t1", Name: "Go", Headcount: 10, StartDate: "2026-09-07", EndDate: "2026-09-08"}}},
		assignmentSourceStub{},
		recorder,
		zap.NewNop(),
		config.OptimizerConfig{},
	)

	proposals, err := svc.Optimize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, recorder.runs)
	assert.Equal(t, len(proposals), recorder.proposals)
}

func TestOptimizerPropagatesSnapshotErrors(t *testing.T) {
	svc := NewOptimizerService(
		roomSourceStub{err: errors.New("db down")},
		trainingSourceStub{},
		assignmentSourceStub{},
		nil,
		zap.NewNop(),
		config.OptimizerConfig{},
	)

	_, err := svc.Optimize(context.Background())
	require.Error(t, err)
}

func TestBusinessDaysSkipsWeekend(t *testing.T) {
	days, err := businessDays("2026-09-04", "2026-09-08")
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-09-04", "2026-09-07", "2026-09-08"}, days)
}

func TestBusinessDaysRejectsBadInput(t *testing.T) {
	_, err := businessDays("not-a-date", "2026-09-08")
	require.Error(t, err)
}
