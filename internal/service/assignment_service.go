package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/formaplan/formaplan-api/internal/models"
	appErrors "github.com/formaplan/formaplan-api/pkg/errors"
)

type assignmentRepository interface {
	ListDetailed(ctx context.Context) ([]models.AssignmentDetail, error)
	Create(ctx context.Context, assignment *models.Assignment) error
	ExistsForRoomOnDate(ctx context.Context, roomID, date string) (bool, error)
}

type assignmentTrainingReader interface {
	FindByID(ctx context.Context, id string) (*models.Training, error)
}

type assignmentRoomReader interface {
	FindByID(ctx context.Context, id string) (*models.Room, error)
}

// CreateAssignmentRequest books a room for a training on one date. It is
// also the acceptance path for optimizer proposals.
type CreateAssignmentRequest struct {
	TrainingID string `json:"training_id" validate:"required"`
	RoomID     string `json:"room_id" validate:"required"`
	Date       string `json:"date" validate:"required"`
}

// AssignmentService orchestrates assignment workflows.
type AssignmentService struct {
	repo      assignmentRepository
	trainings assignmentTrainingReader
	rooms     assignmentRoomReader
	cache     planningInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssignmentService creates a new assignment service instance.
func NewAssignmentService(
	repo assignmentRepository,
	trainings assignmentTrainingReader,
	rooms assignmentRoomReader,
	cache planningInvalidator,
	validate *validator.Validate,
	logger *zap.Logger,
) *AssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{
		repo:      repo,
		trainings: trainings,
		rooms:     rooms,
		cache:     cache,
		validator: validate,
		logger:    logger,
	}
}

// List returns every assignment denormalized with training and room fields,
// ordered by date ascending.
func (s *AssignmentService) List(ctx context.Context) ([]models.AssignmentDetail, error) {
	items, err := s.repo.ListDetailed(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}
	return items, nil
}

// Create persists an assignment after checking the referenced training and
// room exist and the date falls inside the training's window. The store
// permits several assignments on the same (date, room); only the optimizer
// guarantees conflict-free suggestions, so a double booking is logged.
func (s *AssignmentService) Create(ctx context.Context, req CreateAssignmentRequest) (*models.Assignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must be a YYYY-MM-DD date")
	}

	training, err := s.trainings.FindByID(ctx, req.TrainingID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "training not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load training")
	}
	room, err := s.rooms.FindByID(ctx, req.RoomID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}

	start, _ := time.Parse(dateLayout, training.StartDate)
	end, _ := time.Parse(dateLayout, training.EndDate)
	if date.Before(start) || date.After(end) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date is outside the training period")
	}

	booked, err := s.repo.ExistsForRoomOnDate(ctx, room.ID, req.Date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check room availability")
	}
	if booked {
		s.logger.Warn("room double-booked",
			zap.String("room_id", room.ID),
			zap.String("date", req.Date),
			zap.String("training_id", training.ID),
		)
	}

	assignment := &models.Assignment{
		TrainingID: training.ID,
		RoomID:     room.ID,
		Date:       req.Date,
	}
	if err := s.repo.Create(ctx, assignment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assignment")
	}

	s.invalidatePlanning(ctx)
	return assignment, nil
}

func (s *AssignmentService) invalidatePlanning(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, planningCachePattern); err != nil {
		s.logger.Warn("failed to invalidate planning cache", zap.Error(err))
	}
}
