package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/formaplan/formaplan-api/internal/models"
)

const assignmentDetailQuery = `
SELECT a.id, to_char(a.date, 'YYYY-MM-DD') AS date, a.created_at,
       t.id AS training_id, t.name AS training_name, t.headcount,
       to_char(t.start_date, 'YYYY-MM-DD') AS start_date, to_char(t.end_date, 'YYYY-MM-DD') AS end_date, t.needs,
       r.id AS room_id, r.name AS room_name, r.capacity, r.equipments AS room_equipments
FROM assignments a
JOIN trainings t ON a.training_id = t.id
JOIN rooms r ON a.room_id = r.id`

// AssignmentRepository handles persistence for room assignments.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository instantiates an assignment repository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// ListDetailed returns every assignment joined with its training and room,
// ordered by date ascending.
func (r *AssignmentRepository) ListDetailed(ctx context.Context) ([]models.AssignmentDetail, error) {
	query := assignmentDetailQuery + " ORDER BY a.date"
	var items []models.AssignmentDetail
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return items, nil
}

// ListDetailedBetween returns assignments whose date falls inside the
// inclusive [from, to] window, ordered by date ascending.
func (r *AssignmentRepository) ListDetailedBetween(ctx context.Context, from, to string) ([]models.AssignmentDetail, error) {
	query := assignmentDetailQuery + " WHERE a.date >= $1 AND a.date <= $2 ORDER BY a.date"
	var items []models.AssignmentDetail
	if err := r.db.SelectContext(ctx, &items, query, from, to); err != nil {
		return nil, fmt.Errorf("list assignments between %s and %s: %w", from, to, err)
	}
	return items, nil
}

// Create inserts a new assignment record.
func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO assignments (id, training_id, room_id, date, created_at) VALUES (:id, :training_id, :room_id, :date, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, assignment); err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	return nil
}

// ExistsForRoomOnDate reports whether the room is already booked on the date.
func (r *AssignmentRepository) ExistsForRoomOnDate(ctx context.Context, roomID, date string) (bool, error) {
	const query = `SELECT COUNT(*) FROM assignments WHERE room_id = $1 AND date = $2`
	var count int
	if err := r.db.GetContext(ctx, &count, query, roomID, date); err != nil {
		return false, fmt.Errorf("check room booking: %w", err)
	}
	return count > 0, nil
}
