package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/formaplan/formaplan-api/internal/models"
	appErrors "github.com/formaplan/formaplan-api/pkg/errors"
)

type roomRepository interface {
	List(ctx context.Context, filter models.RoomFilter) ([]models.Room, int, error)
	FindByID(ctx context.Context, id string) (*models.Room, error)
	Create(ctx context.Context, room *models.Room) error
	Update(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id string) error
	CountAssignments(ctx context.Context, id string) (int, error)
}

// planningInvalidator drops cached planning views after a mutation.
type planningInvalidator interface {
	DeleteByPattern(ctx context.Context, pattern string) error
}

const planningCachePattern = "planning:*"

// CreateRoomRequest describes payload for creating rooms.
type CreateRoomRequest struct {
	Name       string  `json:"name" validate:"required"`
	Capacity   int     `json:"capacity" validate:"required,gte=1"`
	Equipments *string `json:"equipments"`
}

// UpdateRoomRequest updates mutable fields on a room.
type UpdateRoomRequest struct {
	Name       string  `json:"name" validate:"required"`
	Capacity   int     `json:"capacity" validate:"required,gte=1"`
	Equipments *string `json:"equipments"`
}

// RoomService orchestrates room workflows.
type RoomService struct {
	repo      roomRepository
	cache     planningInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRoomService creates a new room service instance.
func NewRoomService(repo roomRepository, cache planningInvalidator, validate *validator.Validate, logger *zap.Logger) *RoomService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoomService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns paginated rooms ordered by name.
func (s *RoomService) List(ctx context.Context, filter models.RoomFilter) ([]models.Room, *models.Pagination, error) {
	rooms, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rooms")
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
	return rooms, pagination, nil
}

// Get returns a room by ID.
func (s *RoomService) Get(ctx context.Context, id string) (*models.Room, error) {
	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}
	return room, nil
}

// Create adds a new room.
func (s *RoomService) Create(ctx context.Context, req CreateRoomRequest) (*models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid room payload")
	}

	room := &models.Room{
		Name:       req.Name,
		Capacity:   req.Capacity,
		Equipments: req.Equipments,
	}

	if err := s.repo.Create(ctx, room); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create room")
	}

	s.invalidatePlanning(ctx)
	return room, nil
}

// Update modifies a room record.
func (s *RoomService) Update(ctx context.Context, id string, req UpdateRoomRequest) (*models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid room payload")
	}

	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}

	room.Name = req.Name
	room.Capacity = req.Capacity
	room.Equipments = req.Equipments

	if err := s.repo.Update(ctx, room); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update room")
	}

	s.invalidatePlanning(ctx)
	return room, nil
}

// Delete removes a room unless assignments still reference it.
func (s *RoomService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}

	count, err := s.repo.CountAssignments(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check room usage")
	}
	if count > 0 {
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "room is referenced by assignments")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete room")
	}

	s.invalidatePlanning(ctx)
	return nil
}

func (s *RoomService) invalidatePlanning(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, planningCachePattern); err != nil {
		s.logger.Warn("failed to invalidate planning cache", zap.Error(err))
	}
}
