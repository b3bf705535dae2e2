package repository_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"qualiboard/internal/repository"
)

func TestLabelRepository_Add_ReturnsStoredID(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	labelRepo := repository.NewLabelRepository(gormDB)

	taskID := uuid.New()
	labelID := uuid.New()
	mock.ExpectQuery(`INSERT INTO task_labels \(task_id, name, color\) VALUES \(\$1, \$2, \$3\) ON CONFLICT DO NOTHING RETURNING id`).
		WithArgs(taskID, "URGENTE", "orange").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(labelID.String()))

	// Act
	label, err := labelRepo.Add(context.Background(), taskID, "URGENTE", "orange")

	// Assert: the server-assigned id is read back, never left zero
	assert.NoError(t, err)
	assert.Equal(t, labelID, label.ID)
	assert.NotEqual(t, uuid.Nil, label.ID)
	assert.Equal(t, "URGENTE", label.Name)
	assert.Equal(t, taskID, label.TaskID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLabelRepository_Add_ConflictFetchesExistingRow(t *testing.T) {
	// Arrange: the label already exists, so the insert returns no row
	gormDB, mock := setupMockDB(t)
	labelRepo := repository.NewLabelRepository(gormDB)

	taskID := uuid.New()
	existingID := uuid.New()
	mock.ExpectQuery(`INSERT INTO task_labels \(task_id, name, color\) VALUES \(\$1, \$2, \$3\) ON CONFLICT DO NOTHING RETURNING id`).
		WithArgs(taskID, "URGENTE", "orange").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT .* FROM "task_labels" WHERE task_id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "task_id", "name", "color"}).
			AddRow(existingID.String(), taskID.String(), "URGENTE", "orange"))

	// Act
	label, err := labelRepo.Add(context.Background(), taskID, "URGENTE", "orange")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, existingID, label.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLabelRepository_RemoveByName(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	labelRepo := repository.NewLabelRepository(gormDB)

	taskID := uuid.New()
	mock.ExpectExec(`DELETE FROM task_labels WHERE task_id = \$1 AND name = \$2`).
		WithArgs(taskID, "URGENTE").
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Act
	err := labelRepo.RemoveByName(context.Background(), taskID, "URGENTE")

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssigneeRepository_Add_ReturnsStoredID(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	assigneeRepo := repository.NewAssigneeRepository(gormDB)

	taskID := uuid.New()
	userID := uuid.New()
	assigneeID := uuid.New()
	mock.ExpectQuery(`INSERT INTO task_assignees \(task_id, user_id, user_initials\) VALUES \(\$1, \$2, \$3\) ON CONFLICT DO NOTHING RETURNING id`).
		WithArgs(taskID, userID, "MG").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(assigneeID.String()))

	// Act
	assignee, err := assigneeRepo.Add(context.Background(), taskID, userID, "MG")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, assigneeID, assignee.ID)
	assert.NotEqual(t, uuid.Nil, assignee.ID)
	assert.Equal(t, userID, assignee.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssigneeRepository_Add_ConflictFetchesExistingRow(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	assigneeRepo := repository.NewAssigneeRepository(gormDB)

	taskID := uuid.New()
	userID := uuid.New()
	existingID := uuid.New()
	mock.ExpectQuery(`INSERT INTO task_assignees \(task_id, user_id, user_initials\) VALUES \(\$1, \$2, \$3\) ON CONFLICT DO NOTHING RETURNING id`).
		WithArgs(taskID, userID, "MG").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT .* FROM "task_assignees" WHERE task_id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "task_id", "user_id", "user_initials"}).
			AddRow(existingID.String(), taskID.String(), userID.String(), "MG"))

	// Act
	assignee, err := assigneeRepo.Add(context.Background(), taskID, userID, "MG")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, existingID, assignee.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssigneeRepository_Remove(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	assigneeRepo := repository.NewAssigneeRepository(gormDB)

	taskID := uuid.New()
	userID := uuid.New()
	mock.ExpectExec(`DELETE FROM task_assignees WHERE task_id = \$1 AND user_id = \$2`).
		WithArgs(taskID, userID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Act
	err := assigneeRepo.Remove(context.Background(), taskID, userID)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
