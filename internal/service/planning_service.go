package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/formaplan/formaplan-api/internal/models"
	"github.com/formaplan/formaplan-api/pkg/config"
	appErrors "github.com/formaplan/formaplan-api/pkg/errors"
	"github.com/formaplan/formaplan-api/pkg/export"
)

type planningAssignmentSource interface {
	ListDetailedBetween(ctx context.Context, from, to string) ([]models.AssignmentDetail, error)
}

type planningCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

type cacheOperationRecorder interface {
	RecordCacheOperation(hit bool, duration time.Duration)
}

// PlanningDay groups the assignments booked on one date.
type PlanningDay struct {
	Date        string                    `json:"date"`
	Assignments []models.AssignmentDetail `json:"assignments"`
}

// PlanningView is the calendar payload for a date window.
type PlanningView struct {
	From             string        `json:"from"`
	To               string        `json:"to"`
	Days             []PlanningDay `json:"days"`
	TotalAssignments int           `json:"total_assignments"`
}

// PlanningService serves cached calendar views and exports of assignments.
type PlanningService struct {
	assignments planningAssignmentSource
	cache       planningCache
	metrics     cacheOperationRecorder
	logger      *zap.Logger
	cfg         config.PlanningConfig
}

// NewPlanningService wires the planning view dependencies.
func NewPlanningService(
	assignments planningAssignmentSource,
	cache planningCache,
	metrics cacheOperationRecorder,
	logger *zap.Logger,
	cfg config.PlanningConfig,
) *PlanningService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanningService{
		assignments: assignments,
		cache:       cache,
		metrics:     metrics,
		logger:      logger,
		cfg:         cfg,
	}
}

// Calendar returns assignments grouped by date for the requested window.
// Empty bounds default to the current month.
func (s *PlanningService) Calendar(ctx context.Context, from, to string) (*PlanningView, error) {
	from, to, err := s.resolveWindow(from, to)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("planning:calendar:%s:%s", from, to)
	if s.cfg.CacheEnabled && s.cache != nil {
		started := time.Now()
		var cached PlanningView
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			if s.metrics != nil {
				s.metrics.RecordCacheOperation(true, time.Since(started))
			}
			return &cached, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("planning cache read failed", zap.Error(err))
		}
		if s.metrics != nil {
			s.metrics.RecordCacheOperation(false, time.Since(started))
		}
	}

	items, err := s.assignments.ListDetailedBetween(ctx, from, to)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load planning assignments")
	}

	view := &PlanningView{From: from, To: to, Days: groupByDate(items), TotalAssignments: len(items)}

	if s.cfg.CacheEnabled && s.cache != nil {
		if err := s.cache.Set(ctx, key, view, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("planning cache write failed", zap.Error(err))
		}
	}
	return view, nil
}

// ExportDataset flattens the window's assignments into a tabular dataset
// for CSV or PDF rendering.
func (s *PlanningService) ExportDataset(ctx context.Context, from, to string) (export.Dataset, string, error) {
	from, to, err := s.resolveWindow(from, to)
	if err != nil {
		return export.Dataset{}, "", err
	}

	items, err := s.assignments.ListDetailedBetween(ctx, from, to)
	if err != nil {
		return export.Dataset{}, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load planning assignments")
	}

	dataset := export.Dataset{
		Headers: []string{"Date", "Training", "Room", "Headcount", "Capacity"},
	}
	for _, item := range items {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Date":      item.Date,
			"Training":  item.TrainingName,
			"Room":      item.RoomName,
			"Headcount": strconv.Itoa(item.Headcount),
			"Capacity":  strconv.Itoa(item.Capacity),
		})
	}

	title := fmt.Sprintf("Planning %s - %s", from, to)
	return dataset, title, nil
}

func (s *PlanningService) resolveWindow(from, to string) (string, string, error) {
	if from == "" && to == "" {
		now := time.Now().UTC()
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		last := first.AddDate(0, 1, -1)
		return first.Format(dateLayout), last.Format(dateLayout), nil
	}
	if from == "" || to == "" {
		return "", "", appErrors.Clone(appErrors.ErrValidation, "from and to must be provided together")
	}
	if err := validateDateRange(from, to); err != nil {
		return "", "", err
	}
	return from, to, nil
}

func groupByDate(items []models.AssignmentDetail) []PlanningDay {
	days := make([]PlanningDay, 0)
	for _, item := range items {
		if n := len(days); n > 0 && days[n-1].Date == item.Date {
			days[n-1].Assignments = append(days[n-1].Assignments, item)
			continue
		}
		days = append(days, PlanningDay{Date: item.Date, Assignments: []models.AssignmentDetail{item}})
	}
	return days
}
