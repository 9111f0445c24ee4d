package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/formaplan/formaplan-api/internal/models"
	"github.com/formaplan/formaplan-api/pkg/config"
	appErrors "github.com/formaplan/formaplan-api/pkg/errors"
)

const dateLayout = "2006-01-02"

type optimizerRoomSource interface {
	ListAll(ctx context.Context) ([]models.Room, error)
}

type optimizerTrainingSource interface {
	ListAll(ctx context.Context) ([]models.Training, error)
}

type optimizerAssignmentSource interface {
	ListDetailed(ctx context.Context) ([]models.AssignmentDetail, error)
}

type optimizerRunRecorder interface {
	ObserveOptimizerRun(duration time.Duration, proposals int)
}

// OptimizerService proposes room/date pairings for unassigned trainings.
//
// A run works on a read-only snapshot of rooms, trainings and assignments.
// Occupancy is tracked in a run-scoped index: accepting a proposal marks its
// (date, room) pair occupied so the rest of the run cannot double-book it.
// Two concurrent runs share nothing and may therefore suggest the same pair;
// callers arbitrate by persisting whichever proposal they accept first.
type OptimizerService struct {
	rooms       optimizerRoomSource
	trainings   optimizerTrainingSource
	assignments optimizerAssignmentSource
	metrics     optimizerRunRecorder
	logger      *zap.Logger
	cfg         config.OptimizerConfig
}

// NewOptimizerService wires the optimizer's data sources.
func NewOptimizerService(
	rooms optimizerRoomSource,
	trainings optimizerTrainingSource,
	assignments optimizerAssignmentSource,
	metrics optimizerRunRecorder,
	logger *zap.Logger,
	cfg config.OptimizerConfig,
) *OptimizerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OptimizerService{
		rooms:       rooms,
		trainings:   trainings,
		assignments: assignments,
		metrics:     metrics,
		logger:      logger,
		cfg:         cfg,
	}
}

// Optimize produces proposals for every training that has no assignment yet.
//
// A training with any existing assignment is skipped for the whole run.
// Proposals follow training read order (start date ascending) and, within a
// training, ascending business day. Nothing is persisted; the caller submits
// accepted proposals through the assignment service.
func (s *OptimizerService) Optimize(ctx context.Context) ([]models.Proposal, error) {
	start := time.Now()

	trainings, err := s.trainings.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load trainings")
	}
	rooms, err := s.rooms.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
	}
	assignments, err := s.assignments.ListDetailed(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignments")
	}

	occupancy := buildOccupancyIndex(assignments)
	assigned := make(map[string]struct{}, len(assignments))
	for _, a := range assignments {
		assigned[a.TrainingID] = struct{}{}
	}

	proposals := make([]models.Proposal, 0)
	for _, training := range trainings {
		if _, ok := assigned[training.ID]; ok {
			continue
		}
		outcome := s.evaluateTraining(training, rooms, occupancy)
		if outcome.err != nil {
			s.logger.Warn("training skipped during optimization",
				zap.String("training_id", training.ID),
				zap.String("training_name", training.Name),
				zap.Error(outcome.err),
			)
			continue
		}
		proposals = append(proposals, outcome.proposals...)
	}

	if s.metrics != nil {
		s.metrics.ObserveOptimizerRun(time.Since(start), len(proposals))
	}
	return proposals, nil
}

// trainingOutcome is the per-item result of evaluating one training; a
// failed outcome is logged and dropped without aborting the run.
type trainingOutcome struct {
	proposals []models.Proposal
	err       error
}

func (s *OptimizerService) evaluateTraining(training models.Training, rooms []models.Room, occupancy occupancyIndex) trainingOutcome {
	days, err := businessDays(training.StartDate, training.EndDate)
	if err != nil {
		return trainingOutcome{err: fmt.Errorf("enumerate business days: %w", err)}
	}

	var proposals []models.Proposal
	for _, day := range days {
		room, ok := s.pickRoom(training, rooms, occupancy, day)
		if !ok {
			continue
		}
		proposals = append(proposals, models.Proposal{
			TrainingID:   training.ID,
			TrainingName: training.Name,
			RoomID:       room.ID,
			RoomName:     room.Name,
			Date:         day,
			Headcount:    training.Headcount,
			Capacity:     room.Capacity,
			FillRatio:    fillRatio(training.Headcount, room.Capacity),
		})
		occupancy.occupy(day, room.ID)
	}
	return trainingOutcome{proposals: proposals}
}

// pickRoom ranks the rooms still free on the given date and returns the top
// candidate, but only when it can actually hold the training: the infeasible
// branch of the ranking orders fallbacks, it never produces a proposal.
func (s *OptimizerService) pickRoom(training models.Training, rooms []models.Room, occupancy occupancyIndex, date string) (models.Room, bool) {
	available := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		if occupancy.occupied(date, room.ID) {
			continue
		}
		available = append(available, room)
	}
	if len(available) == 0 {
		return models.Room{}, false
	}

	candidates := available
	if s.cfg.EquipmentFallback && training.NeedsEquipment() {
		matching := make([]models.Room, 0, len(available))
		for _, room := range available {
			if room.HasEquipment(*training.Needs) {
				matching = append(matching, room)
			}
		}
		if len(matching) > 0 {
			candidates = matching
		}
	}

	ranked := rankCandidates(training, candidates)
	top := ranked[0]
	if top.Capacity < training.Headcount {
		return models.Room{}, false
	}
	return top, true
}

// rankCandidates orders rooms by the strict tiering: equipment fit first
// (only when the training states a need), then capacity feasibility, then
// minimal wasted seats among feasible rooms and largest capacity among
// infeasible ones.
func rankCandidates(training models.Training, rooms []models.Room) []models.Room {
	ranked := make([]models.Room, len(rooms))
	copy(ranked, rooms)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]

		if training.NeedsEquipment() {
			aFits := a.HasEquipment(*training.Needs)
			bFits := b.HasEquipment(*training.Needs)
			if aFits != bFits {
				return aFits
			}
		}

		aFeasible := a.Capacity >= training.Headcount
		bFeasible := b.Capacity >= training.Headcount
		if aFeasible != bFeasible {
			return aFeasible
		}
		if aFeasible {
			return a.Capacity-training.Headcount < b.Capacity-training.Headcount
		}
		return a.Capacity > b.Capacity
	})

	return ranked
}

// occupancyIndex maps an ISO date to the set of rooms committed on it.
type occupancyIndex map[string]map[string]struct{}

func buildOccupancyIndex(assignments []models.AssignmentDetail) occupancyIndex {
	index := make(occupancyIndex)
	for _, a := range assignments {
		index.occupy(a.Date, a.RoomID)
	}
	return index
}

func (idx occupancyIndex) occupied(date, roomID string) bool {
	rooms, ok := idx[date]
	if !ok {
		return false
	}
	_, taken := rooms[roomID]
	return taken
}

func (idx occupancyIndex) occupy(date, roomID string) {
	rooms, ok := idx[date]
	if !ok {
		rooms = make(map[string]struct{})
		idx[date] = rooms
	}
	rooms[roomID] = struct{}{}
}

// businessDays enumerates the inclusive [start, end] range as ISO dates,
// skipping Saturdays and Sundays.
func businessDays(start, end string) ([]string, error) {
	from, err := time.Parse(dateLayout, start)
	if err != nil {
		return nil, fmt.Errorf("parse start date %q: %w", start, err)
	}
	to, err := time.Parse(dateLayout, end)
	if err != nil {
		return nil, fmt.Errorf("parse end date %q: %w", end, err)
	}

	var days []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		days = append(days, d.Format(dateLayout))
	}
	return days, nil
}

func fillRatio(headcount, capacity int) int {
	if capacity <= 0 {
		return 0
	}
	return int(math.Round(float64(headcount) / float64(capacity) * 100))
}
