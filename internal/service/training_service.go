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

type trainingRepository interface {
	List(ctx context.Context, filter models.TrainingFilter) ([]models.Training, int, error)
	FindByID(ctx context.Context, id string) (*models.Training, error)
	Create(ctx context.Context, training *models.Training) error
	Update(ctx context.Context, training *models.Training) error
	DeleteCascade(ctx context.Context, id string) error
}

// CreateTrainingRequest describes payload for creating trainings.
type CreateTrainingRequest struct {
	Name      string  `json:"name" validate:"required"`
	Headcount int     `json:"headcount" validate:"required,gte=1"`
	StartDate string  `json:"start_date" validate:"required"`
	EndDate   string  `json:"end_date" validate:"required"`
	Needs     *string `json:"needs"`
}

// UpdateTrainingRequest updates mutable fields on a training.
type UpdateTrainingRequest struct {
	Name      string  `json:"name" validate:"required"`
	Headcount int     `json:"headcount" validate:"required,gte=1"`
	StartDate string  `json:"start_date" validate:"required"`
	EndDate   string  `json:"end_date" validate:"required"`
	Needs     *string `json:"needs"`
}

// TrainingService orchestrates training workflows.
type TrainingService struct {
	repo      trainingRepository
	cache     planningInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTrainingService creates a new training service instance.
func NewTrainingService(repo trainingRepository, cache planningInvalidator, validate *validator.Validate, logger *zap.Logger) *TrainingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrainingService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns paginated trainings ordered by start date.
func (s *TrainingService) List(ctx context.Context, filter models.TrainingFilter) ([]models.Training, *models.Pagination, error) {
	trainings, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list trainings")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 50
	}

	pagination := &models.Pagination{
		Page:       page,
		PageSize:   size,
		TotalCount: total,
	}
	return trainings, pagination, nil
}

// Get returns a training by ID.
func (s *TrainingService) Get(ctx context.Context, id string) (*models.Training, error) {
	training, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "training not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load training")
	}
	return training, nil
}

// Create adds a new training after validating its date range.
func (s *TrainingService) Create(ctx context.Context, req CreateTrainingRequest) (*models.Training, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid training payload")
	}
	if err := validateDateRange(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	training := &models.Training{
		Name:      req.Name,
		Headcount: req.Headcount,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Needs:     req.Needs,
	}

	if err := s.repo.Create(ctx, training); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create training")
	}

	s.invalidatePlanning(ctx)
	return training, nil
}

// Update modifies a training record.
func (s *TrainingService) Update(ctx context.Context, id string, req UpdateTrainingRequest) (*models.Training, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid training payload")
	}
	if err := validateDateRange(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	training, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "training not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load training")
	}

	training.Name = req.Name
	training.Headcount = req.Headcount
	training.StartDate = req.StartDate
	training.EndDate = req.EndDate
	training.Needs = req.Needs

	if err := s.repo.Update(ctx, training); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update training")
	}

	s.invalidatePlanning(ctx)
	return training, nil
}

// Delete removes a training and cascades to its assignments atomically.
func (s *TrainingService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "training not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load training")
	}

	if err := s.repo.DeleteCascade(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete training")
	}

	s.invalidatePlanning(ctx)
	return nil
}

func (s *TrainingService) invalidatePlanning(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, planningCachePattern); err != nil {
		s.logger.Warn("failed to invalidate planning cache", zap.Error(err))
	}
}

// validateDateRange checks both bounds parse as ISO dates and are ordered.
func validateDateRange(start, end string) error {
	from, err := time.Parse(dateLayout, start)
	if err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "start_date must be a YYYY-MM-DD date")
	}
	to, err := time.Parse(dateLayout, end)
	if err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "end_date must be a YYYY-MM-DD date")
	}
	if from.After(to) {
		return appErrors.Clone(appErrors.ErrValidation, "start_date must not be after end_date")
	}
	return nil
}
