package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formaplan/formaplan-api/internal/models"
)

func assignmentDetailRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "date", "created_at",
		"training_id", "training_name", "headcount", "start_date", "end_date", "needs",
		"room_id", "room_name", "capacity", "room_equipments",
	})
}

func TestAssignmentRepositoryListDetailed(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	rows := assignmentDetailRows().
		AddRow("a1", "2026-09-07", time.Now(), "t1", "Go", 10, "2026-09-07", "2026-09-11", nil, "r1", "Salle A", 20, nil)
	mock.ExpectQuery("SELECT a.id, .+ FROM assignments a").
		WillReturnRows(rows)

	items, err := repo.ListDetailed(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Go", items[0].TrainingName)
	assert.Equal(t, "Salle A", items[0].RoomName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryListDetailedBetween(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	rows := assignmentDetailRows().
		AddRow("a1", "2026-09-08", time.Now(), "t1", "Go", 10, "2026-09-07", "2026-09-11", nil, "r1", "Salle A", 20, nil)
	mock.ExpectQuery("SELECT a.id, .+ WHERE a.date >= .+ AND a.date <=").
		WithArgs("2026-09-01", "2026-09-30").
		WillReturnRows(rows)

	items, err := repo.ListDetailedBetween(context.Background(), "2026-09-01", "2026-09-30")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectExec("INSERT INTO assignments").
		WithArgs(sqlmock.AnyArg(), "t1", "r1", "2026-09-08", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assignment := &models.Assignment{TrainingID: "t1", RoomID: "r1", Date: "2026-09-08"}
	require.NoError(t, repo.Create(context.Background(), assignment))
	assert.NotEmpty(t, assignment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryExistsForRoomOnDate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM assignments WHERE room_id = $1 AND date = $2")).
		WithArgs("r1", "2026-09-08").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsForRoomOnDate(context.Background(), "r1", "2026-09-08")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
