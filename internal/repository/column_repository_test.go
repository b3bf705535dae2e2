package repository_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"qualiboard/internal/repository"
)

func TestColumnRepository_CreateDefaults(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	columnRepo := repository.NewColumnRepository(gormDB)

	boardID := uuid.New()
	titles := []string{"Pendiente", "En Proceso", "Completado"}

	// One sequential insert per default column
	for range titles {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "board_columns"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
		mock.ExpectCommit()
	}

	// Act
	columns, err := columnRepo.CreateDefaults(context.Background(), boardID, titles)

	// Assert: created in title order with ascending positions
	assert.NoError(t, err)
	assert.Len(t, columns, 3)
	for i, title := range titles {
		assert.Equal(t, title, columns[i].Title)
		assert.Equal(t, i, columns[i].Position)
		assert.Equal(t, boardID, columns[i].BoardID)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestColumnRepository_CreateDefaults_PartialFailure(t *testing.T) {
	// Arrange: the second insert fails; the first stays persisted
	gormDB, mock := setupMockDB(t)
	columnRepo := repository.NewColumnRepository(gormDB)

	boardID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "board_columns"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "board_columns"`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	// Act
	columns, err := columnRepo.CreateDefaults(context.Background(), boardID, []string{"Pendiente", "En Proceso"})

	// Assert
	assert.Error(t, err)
	assert.Nil(t, columns)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestColumnRepository_GetByBoardID(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	columnRepo := repository.NewColumnRepository(gormDB)

	boardID := uuid.New()
	mock.ExpectQuery(`SELECT .* FROM "board_columns" WHERE board_id = .* ORDER BY position`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "board_id", "title", "position"}).
			AddRow(uuid.New().String(), boardID.String(), "Pendiente", 0).
			AddRow(uuid.New().String(), boardID.String(), "En Proceso", 1))

	// Act
	columns, err := columnRepo.GetByBoardID(context.Background(), boardID)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, columns, 2)
	assert.Equal(t, "Pendiente", columns[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}
