package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"qualiboard/internal/model"
)

type ColumnRepository struct {
	db *gorm.DB
}

func NewColumnRepository(db *gorm.DB) *ColumnRepository {
	return &ColumnRepository{db: db}
}

func (r *ColumnRepository) Create(ctx context.Context, column *model.Column) error {
	return r.db.WithContext(ctx).Create(column).Error
}

func (r *ColumnRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Column, error) {
	var column model.Column
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&column).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColumnNotFound
		}
		return nil, err
	}
	return &column, nil
}

func (r *ColumnRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Column, error) {
	var columns []model.Column
	err := r.db.WithContext(ctx).Where("board_id = ?", boardID).Order("position").Find(&columns).Error
	return columns, err
}

// CreateDefaults inserts the configured default columns one by one with
// ascending positions. Inserts are sequential, not transactional: a failure
// at column n leaves columns 0..n-1 persisted.
func (r *ColumnRepository) CreateDefaults(ctx context.Context, boardID uuid.UUID, titles []string) ([]model.Column, error) {
	columns := make([]model.Column, 0, len(titles))
	for i, title := range titles {
		column := model.Column{
			BoardID:  boardID,
			Title:    title,
			Position: i,
		}
		if err := r.db.WithContext(ctx).Create(&column).Error; err != nil {
			return nil, err
		}
		columns = append(columns, column)
	}
	return columns, nil
}
