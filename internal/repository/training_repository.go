package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/formaplan/formaplan-api/internal/models"
)

const trainingColumns = "id, name, headcount, to_char(start_date, 'YYYY-MM-DD') AS start_date, to_char(end_date, 'YYYY-MM-DD') AS end_date, needs, created_at, updated_at"

// TrainingRepository handles persistence for trainings.
type TrainingRepository struct {
	db *sqlx.DB
}

// NewTrainingRepository instantiates a training repository.
func NewTrainingRepository(db *sqlx.DB) *TrainingRepository {
	return &TrainingRepository{db: db}
}

// List returns trainings ordered by start date with pagination metadata.
func (r *TrainingRepository) List(ctx context.Context, filter models.TrainingFilter) ([]models.Training, int, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s FROM trainings ORDER BY start_date LIMIT %d OFFSET %d", trainingColumns, size, offset)

	var trainings []models.Training
	if err := r.db.SelectContext(ctx, &trainings, query); err != nil {
		return nil, 0, fmt.Errorf("list trainings: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM trainings"); err != nil {
		return nil, 0, fmt.Errorf("count trainings: %w", err)
	}

	return trainings, total, nil
}

// ListAll returns every training ordered by start date ascending; the
// optimizer relies on this read order for proposal ordering.
func (r *TrainingRepository) ListAll(ctx context.Context) ([]models.Training, error) {
	query := fmt.Sprintf("SELECT %s FROM trainings ORDER BY start_date", trainingColumns)
	var trainings []models.Training
	if err := r.db.SelectContext(ctx, &trainings, query); err != nil {
		return nil, fmt.Errorf("list all trainings: %w", err)
	}
	return trainings, nil
}

// FindByID loads a training by identifier.
func (r *TrainingRepository) FindByID(ctx context.Context, id string) (*models.Training, error) {
	query := fmt.Sprintf("SELECT %s FROM trainings WHERE id = $1", trainingColumns)
	var training models.Training
	if err := r.db.GetContext(ctx, &training, query, id); err != nil {
		return nil, err
	}
	return &training, nil
}

// Create inserts a new training record.
func (r *TrainingRepository) Create(ctx context.Context, training *models.Training) error {
	if training.ID == "" {
		training.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if training.CreatedAt.IsZero() {
		training.CreatedAt = now
	}
	training.UpdatedAt = now

	const query = `INSERT INTO trainings (id, name, headcount, start_date, end_date, needs, created_at, updated_at) VALUES (:id, :name, :headcount, :start_date, :end_date, :needs, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, training); err != nil {
		return fmt.Errorf("create training: %w", err)
	}
	return nil
}

// Update modifies an existing training.
func (r *TrainingRepository) Update(ctx context.Context, training *models.Training) error {
	training.UpdatedAt = time.Now().UTC()
	const query = `UPDATE trainings SET name = :name, headcount = :headcount, start_date = :start_date, end_date = :end_date, needs = :needs, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, training); err != nil {
		return fmt.Errorf("update training: %w", err)
	}
	return nil
}

// DeleteCascade removes a training and all of its assignments in one
// transaction. Either both disappear or neither does.
func (r *TrainingRepository) DeleteCascade(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cascade delete tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM assignments WHERE training_id = $1`, id); err != nil {
		return fmt.Errorf("delete training assignments: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM trainings WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete training: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit cascade delete tx: %w", err)
	}
	return nil
}
